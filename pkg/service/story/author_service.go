/*
 * @Description: 作者服务
 * @Author: 安知鱼
 * @Date: 2025-11-21 14:35:40
 * @LastEditTime: 2025-11-21 14:35:40
 * @LastEditors: 安知鱼
 */
package story

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// AuthorService 管理作者及其全站声誉分
type AuthorService struct {
	store repository.DocumentStore
}

func NewAuthorService(store repository.DocumentStore) *AuthorService {
	return &AuthorService{store: store}
}

// AddNew 只写入库里还没有的作者，已存在的跳过
func (s *AuthorService) AddNew(ctx context.Context, authors []model.Author) error {
	byID := make(map[string]model.Author)
	ids := make([]string, 0, len(authors))
	for _, author := range authors {
		if author.AuthorID == "" {
			continue
		}
		if _, ok := byID[author.AuthorID]; !ok {
			ids = append(ids, author.AuthorID)
		}
		byID[author.AuthorID] = author
	}
	if len(ids) == 0 {
		return nil
	}

	var existing []model.Author
	filter := bson.M{"author_id": bson.M{"$in": ids}}
	if err := s.store.Get(ctx, constant.CollectionAuthor, filter, &existing, nil); err != nil {
		return fmt.Errorf("查询已有作者失败: %w", err)
	}
	for _, author := range existing {
		delete(byID, author.AuthorID)
	}

	for _, author := range byID {
		if err := s.store.AddOrUpdate(ctx, constant.CollectionAuthor, bson.M{"author_id": author.AuthorID}, author); err != nil {
			return fmt.Errorf("写入作者 %s 失败: %w", author.Name, err)
		}
	}
	return nil
}

// GetByName 按名称查作者，查不到返回 constant.ErrNotFound
func (s *AuthorService) GetByName(ctx context.Context, name string) (*model.Author, error) {
	return s.getOne(ctx, bson.M{"name": name})
}

// GetByID 按作者 ID 查作者
func (s *AuthorService) GetByID(ctx context.Context, authorID string) (*model.Author, error) {
	return s.getOne(ctx, bson.M{"author_id": authorID})
}

func (s *AuthorService) getOne(ctx context.Context, filter bson.M) (*model.Author, error) {
	var authors []model.Author
	if err := s.store.Get(ctx, constant.CollectionAuthor, filter, &authors, &repository.QueryOptions{Limit: 1}); err != nil {
		return nil, fmt.Errorf("查询作者失败: %w", err)
	}
	if len(authors) == 0 {
		return nil, constant.ErrNotFound
	}
	return &authors[0], nil
}

// GetByIDs 批量查作者
func (s *AuthorService) GetByIDs(ctx context.Context, authorIDs []string) ([]model.Author, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"author_id": bson.M{"$in": authorIDs}}
	var authors []model.Author
	if err := s.store.Get(ctx, constant.CollectionAuthor, filter, &authors, nil); err != nil {
		return nil, fmt.Errorf("批量查询作者失败: %w", err)
	}
	return authors, nil
}

// UpdateReputation 对作者声誉做原子增量
func (s *AuthorService) UpdateReputation(ctx context.Context, authorID string, reward float64) error {
	filter := bson.M{"author_id": authorID}
	inc := bson.M{"reputation": reward}
	if err := s.store.ApplyDelta(ctx, constant.CollectionAuthor, filter, inc, nil, false); err != nil {
		return fmt.Errorf("更新作者 %s 的声誉失败: %w", authorID, err)
	}
	return nil
}
