/*
 * @Description: 阅读历史服务
 * @Author: 安知鱼
 * @Date: 2025-11-21 14:02:33
 * @LastEditTime: 2025-11-21 14:02:33
 * @LastEditors: 安知鱼
 */
package readstory

import (
	"context"
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// Service 维护 append-only 的阅读历史，只在滚动窗口内查询。
// 旧记录不在线清理，保留策略交给集合级 TTL。
type Service struct {
	store repository.DocumentStore
}

func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

// Add 追加一条阅读记录
func (s *Service) Add(ctx context.Context, record model.ReadStory) error {
	if err := s.store.Insert(ctx, constant.CollectionReadStory, record); err != nil {
		return fmt.Errorf("写入阅读历史失败: %w", err)
	}
	return nil
}

// GetStoryIDs 返回用户近一天读过的故事 ID（去重），用于个性化排除
func (s *Service) GetStoryIDs(ctx context.Context, userID string) ([]string, error) {
	now := time.Now()
	filter := bson.M{
		"user_id": userID,
		"read_time": bson.M{
			"$gte": now.AddDate(0, 0, -constant.DaysOfReadStories),
			"$lt":  now,
		},
	}
	var records []model.ReadStory
	if err := s.store.Get(ctx, constant.CollectionReadStory, filter, &records, nil); err != nil {
		return nil, fmt.Errorf("查询阅读历史失败: %w", err)
	}
	seen := make(map[string]bool, len(records))
	storyIDs := make([]string, 0, len(records))
	for _, record := range records {
		if seen[record.StoryID] {
			continue
		}
		seen[record.StoryID] = true
		storyIDs = append(storyIDs, record.StoryID)
	}
	return storyIDs, nil
}
