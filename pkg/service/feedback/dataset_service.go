/*
 * @Description: 训练集组装：把反馈历史压成逐故事的排序训练记录
 * @Author: 安知鱼
 * @Date: 2025-11-21 16:40:51
 * @LastEditTime: 2025-12-04 15:10:26
 * @LastEditors: 安知鱼
 */
package feedback

import (
	"context"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/search"
)

// GetTrainingData 组装某用户（或共享模型）的排序训练集。
// 同一故事的多条反馈把分值求和、时间取最新；
// 已经查不到的故事（被清理任务删除）静默跳过，缺关联的故事产出部分特征。
func (s *Service) GetTrainingData(ctx context.Context, userID string) ([]model.RankingData, error) {
	feedbacks, err := s.GetFeedbackList(ctx, userID)
	if err != nil {
		return nil, err
	}

	relevancyByStory := make(map[string]float64)
	latestByStory := make(map[string]time.Time)
	storyOrder := make([]string, 0)
	for _, feedback := range feedbacks {
		if _, seen := relevancyByStory[feedback.StoryID]; !seen {
			storyOrder = append(storyOrder, feedback.StoryID)
		}
		relevancyByStory[feedback.StoryID] += ScoreFor(feedback.FeedbackType)
		if feedback.FeedbackDatetime.After(latestByStory[feedback.StoryID]) {
			latestByStory[feedback.StoryID] = feedback.FeedbackDatetime
		}
	}

	records := make([]model.RankingData, 0, len(storyOrder))
	for _, storyID := range storyOrder {
		story, err := s.stories.GetByID(ctx, storyID)
		if err != nil {
			continue
		}
		record := model.RankingData{
			StoryID:       storyID,
			UserID:        userID,
			RelevancyRate: relevancyByStory[storyID],
			TimeStamp:     float64(latestByStory[storyID].Unix()),
		}
		record.FillFeatures(search.ExtractRankingFeatures(story))
		records = append(records, record)
	}
	return records, nil
}
