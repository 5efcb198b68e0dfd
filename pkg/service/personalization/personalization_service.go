/*
 * @Description: 个性化配置页数据：推荐/收藏/拉黑三路并行扇出
 * @Author: 安知鱼
 * @Date: 2025-11-21 17:02:14
 * @LastEditTime: 2025-12-04 16:20:33
 * @LastEditors: 安知鱼
 */
package personalization

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/favorite"
)

// Service 汇总个性化页面需要的全部偏好数据
type Service struct {
	favorites *favorite.Service
}

func NewService(favorites *favorite.Service) *Service {
	return &Service{favorites: favorites}
}

// Get 并行拉取三组数据：系统推荐、用户收藏、用户拉黑。
// 三路只读且互不依赖，一路失败整体报错。
func (s *Service) Get(ctx context.Context, userID, language string) (model.Personalization, error) {
	var recommended, favorites, hated model.FavoriteItems
	var errRecommended, errFavorites, errHated error
	var waitGroup sync.WaitGroup
	waitGroup.Add(3)
	go func() {
		defer waitGroup.Done()
		recommended, errRecommended = s.favorites.GetItems(ctx, userID,
			constant.FavoriteItemCount, language, s.favorites.GetRecommended)
	}()
	go func() {
		defer waitGroup.Done()
		favorites, errFavorites = s.favorites.GetItems(ctx, userID,
			constant.FavoriteItemCount, language, s.favorites.GetFavorites)
	}()
	go func() {
		defer waitGroup.Done()
		hated, errHated = s.favorites.GetItems(ctx, userID,
			constant.FavoriteItemCount, language, s.favorites.GetHated)
	}()
	waitGroup.Wait()
	if err := errors.Join(errRecommended, errFavorites, errHated); err != nil {
		return model.Personalization{}, fmt.Errorf("拉取个性化数据失败: %w", err)
	}
	return model.Personalization{
		RecommendedItems: recommended,
		FavoriteItems:    favorites,
		HatedItems:       hated,
	}, nil
}

// FindMostSimilarProfile 在候选用户里找收藏重合度最高的一位（Jaccard 相似度）。
// 没有任何重合时返回空串。
func FindMostSimilarProfile(target model.FavoriteItems, candidates map[string]model.FavoriteItems) string {
	targetSet := identifierSet(target)
	if len(targetSet) == 0 {
		return ""
	}
	bestUser := ""
	bestScore := 0.0
	for userID, items := range candidates {
		candidateSet := identifierSet(items)
		if len(candidateSet) == 0 {
			continue
		}
		intersection := 0
		for id := range targetSet {
			if candidateSet[id] {
				intersection++
			}
		}
		union := len(targetSet) + len(candidateSet) - intersection
		if union == 0 {
			continue
		}
		score := float64(intersection) / float64(union)
		if score > bestScore {
			bestScore = score
			bestUser = userID
		}
	}
	return bestUser
}

func identifierSet(items model.FavoriteItems) map[string]bool {
	set := make(map[string]bool)
	for _, group := range [][]model.Favorite{
		items.FavoriteSources,
		items.FavoriteAuthors,
		items.FavoriteKeywords,
		items.FavoriteEntities,
	} {
		for _, item := range group {
			set[item.Identifier] = true
		}
	}
	return set
}
