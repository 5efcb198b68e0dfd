/*
 * @Description: 四类目偏好台账（来源/作者/关键词/实体）
 * @Author: 安知鱼
 * @Date: 2025-11-21 15:40:12
 * @LastEditTime: 2025-12-04 11:30:45
 * @LastEditors: 安知鱼
 */
package favorite

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// Service 维护用户对来源、作者、关键词、实体的亲和度台账。
// 同一 (user_id, identifier) 在一个类目集合里至多一条记录。
type Service struct {
	store repository.DocumentStore
}

func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

// CollectionFor 把对外的类目名映射到集合名
func CollectionFor(category string) (string, error) {
	switch category {
	case "source":
		return constant.CollectionFavoriteSource, nil
	case "author":
		return constant.CollectionFavoriteAuthor, nil
	case "keyword":
		return constant.CollectionFavoriteKeyword, nil
	case "entity":
		return constant.CollectionFavoriteEntity, nil
	default:
		return "", fmt.Errorf("%w: 未知的偏好类目 %q", constant.ErrBadRequest, category)
	}
}

// UpdateFromStory 由反馈传播驱动的台账更新：
// 已有记录时对 relevancy_rate 做原子累加；没有时以传播单位为初值创建，
// 新记录标记为系统推荐（is_recommended=true），其余标志为 false。
// 记录身份只由 (user_id, identifier) 决定，language 是记录上的标签而非身份的一部分。
func (s *Service) UpdateFromStory(ctx context.Context, userID, identifier, value string, reward float64, collection, language string) error {
	filter := bson.M{"user_id": userID, "identifier": identifier}
	setOnInsert := bson.M{
		"user_id":        userID,
		"identifier":     identifier,
		"value":          value,
		"is_favorite":    false,
		"is_deleted":     false,
		"is_recommended": true,
		"is_added":       false,
		"language":       language,
	}
	inc := bson.M{"relevancy_rate": reward}
	if err := s.store.ApplyDelta(ctx, collection, filter, inc, setOnInsert, true); err != nil {
		return fmt.Errorf("更新偏好台账 %s 失败: %w", collection, err)
	}
	return nil
}

// UpdateFromUser 由用户显式操作驱动的更新：置顶、移除、确认推荐。
// 已有记录时整体替换标志位与分值；没有时按用户给的标志创建。
func (s *Service) UpdateFromUser(ctx context.Context, favorite model.Favorite, collection string) error {
	filter := bson.M{"user_id": favorite.UserID, "identifier": favorite.Identifier}
	var existing []model.Favorite
	if err := s.store.Get(ctx, collection, filter, &existing, &repository.QueryOptions{Limit: 1}); err != nil {
		return fmt.Errorf("查询偏好记录失败: %w", err)
	}
	if len(existing) > 0 {
		updated := existing[0]
		updated.IsFavorite = favorite.IsFavorite
		updated.IsDeleted = favorite.IsDeleted
		updated.IsRecommended = favorite.IsRecommended
		updated.IsAdded = favorite.IsAdded
		updated.RelevancyRate = favorite.RelevancyRate
		if err := s.store.AddOrUpdate(ctx, collection, filter, updated); err != nil {
			return fmt.Errorf("更新偏好记录失败: %w", err)
		}
		return nil
	}
	if err := s.store.AddOrUpdate(ctx, collection, filter, favorite); err != nil {
		return fmt.Errorf("创建偏好记录失败: %w", err)
	}
	return nil
}

// ItemGetter 是一类偏好的取数函数，GetItems 对四个类目做并行扇出
type ItemGetter func(ctx context.Context, userID, collection string, count int64, language string) ([]model.Favorite, error)

// GetFavorites 返回用户显式置顶且未移除的偏好，按亲和度倒序
func (s *Service) GetFavorites(ctx context.Context, userID, collection string, count int64, language string) ([]model.Favorite, error) {
	filter := bson.M{"user_id": userID, "is_favorite": true, "is_deleted": false}
	if language != "" {
		filter["language"] = language
	}
	return s.getSorted(ctx, collection, filter, count)
}

// GetHated 返回用户显式移除的偏好（负信号）
func (s *Service) GetHated(ctx context.Context, userID, collection string, count int64, language string) ([]model.Favorite, error) {
	filter := bson.M{"user_id": userID, "is_favorite": false, "is_deleted": true}
	if language != "" {
		filter["language"] = language
	}
	return s.getSorted(ctx, collection, filter, count)
}

func (s *Service) getSorted(ctx context.Context, collection string, filter bson.M, count int64) ([]model.Favorite, error) {
	var favorites []model.Favorite
	opts := &repository.QueryOptions{Limit: count, Sort: "relevancy_rate", Reverse: true}
	if err := s.store.Get(ctx, collection, filter, &favorites, opts); err != nil {
		return nil, fmt.Errorf("查询偏好台账 %s 失败: %w", collection, err)
	}
	return favorites, nil
}

// GetRecommended 从其他用户的台账里按 identifier 分组取高分项，
// 作为给当前用户的推荐；返回前改写归属并重置标志位。
// 其他用户已移除的记录不参与，用户自己拉黑过的 identifier 也不会被再次推荐。
func (s *Service) GetRecommended(ctx context.Context, userID, collection string, count int64, language string) ([]model.Favorite, error) {
	var hated []model.Favorite
	if err := s.store.Get(ctx, collection, bson.M{"user_id": userID, "is_deleted": true}, &hated, nil); err != nil {
		return nil, fmt.Errorf("查询已拉黑偏好失败: %w", err)
	}
	hatedIdentifiers := make([]string, 0, len(hated))
	for _, item := range hated {
		hatedIdentifiers = append(hatedIdentifiers, item.Identifier)
	}

	filter := bson.M{"user_id": bson.M{"$ne": userID}, "is_deleted": false}
	if len(hatedIdentifiers) > 0 {
		filter["identifier"] = bson.M{"$nin": hatedIdentifiers}
	}
	if language != "" {
		filter["language"] = language
	}
	var recommended []model.Favorite
	opts := &repository.QueryOptions{Limit: count, Sort: "relevancy_rate", Reverse: true}
	if err := s.store.GetGrouped(ctx, collection, filter, "identifier", &recommended, opts); err != nil {
		return nil, fmt.Errorf("查询推荐偏好失败: %w", err)
	}
	for i := range recommended {
		recommended[i].UserID = userID
		recommended[i].IsRecommended = true
		recommended[i].IsFavorite = false
		recommended[i].IsAdded = false
	}
	return recommended, nil
}

// GetItems 对四个类目并行取数并打包。
// 四个集合互不相交且只读，无需协调顺序。
func (s *Service) GetItems(ctx context.Context, userID string, count int64, language string, getter ItemGetter) (model.FavoriteItems, error) {
	var items model.FavoriteItems
	var errSources, errAuthors, errKeywords, errEntities error
	var waitGroup sync.WaitGroup
	waitGroup.Add(4)
	go func() {
		defer waitGroup.Done()
		items.FavoriteSources, errSources = getter(ctx, userID, constant.CollectionFavoriteSource, count, language)
	}()
	go func() {
		defer waitGroup.Done()
		items.FavoriteAuthors, errAuthors = getter(ctx, userID, constant.CollectionFavoriteAuthor, count, language)
	}()
	go func() {
		defer waitGroup.Done()
		items.FavoriteKeywords, errKeywords = getter(ctx, userID, constant.CollectionFavoriteKeyword, count, language)
	}()
	go func() {
		defer waitGroup.Done()
		items.FavoriteEntities, errEntities = getter(ctx, userID, constant.CollectionFavoriteEntity, count, language)
	}()
	waitGroup.Wait()
	if err := errors.Join(errSources, errAuthors, errKeywords, errEntities); err != nil {
		return model.FavoriteItems{}, fmt.Errorf("拉取偏好集合失败: %w", err)
	}
	return items, nil
}

// RemoveOfUser 清空某用户在某类目下的全部台账
func (s *Service) RemoveOfUser(ctx context.Context, userID, collection string) (int64, error) {
	return s.store.Remove(ctx, collection, bson.M{"user_id": userID})
}
