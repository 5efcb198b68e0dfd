/*
 * @Description: 反馈引擎：事件落库、计数累加、偏好与声誉传播
 * @Author: 安知鱼
 * @Date: 2025-11-21 16:10:08
 * @LastEditTime: 2025-12-04 14:52:19
 * @LastEditors: 安知鱼
 */
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// StoryProvider 提供装配完整的故事与互动计数更新
type StoryProvider interface {
	GetByID(ctx context.Context, storyID string) (*model.Story, error)
	UpdateFeedbackCounts(ctx context.Context, storyID string, feedbackType int) error
}

// FavoriteUpdater 是偏好台账的传播入口
type FavoriteUpdater interface {
	UpdateFromStory(ctx context.Context, userID, identifier, value string, reward float64, collection, language string) error
}

// ReputationUpdater 调整来源/作者的全站声誉
type ReputationUpdater interface {
	UpdateSourceReputation(ctx context.Context, sourceID string, reward float64) error
	UpdateAuthorReputation(ctx context.Context, authorID string, reward float64) error
}

// ReadStoryAdder 追加阅读历史
type ReadStoryAdder interface {
	Add(ctx context.Context, record model.ReadStory) error
}

// Service 是反馈/奖励引擎
type Service struct {
	store       repository.DocumentStore
	stories     StoryProvider
	favorites   FavoriteUpdater
	reputations ReputationUpdater
	readStories ReadStoryAdder
}

// NewService 组装反馈引擎
func NewService(
	store repository.DocumentStore,
	stories StoryProvider,
	favorites FavoriteUpdater,
	reputations ReputationUpdater,
	readStories ReadStoryAdder,
) *Service {
	return &Service{
		store:       store,
		stories:     stories,
		favorites:   favorites,
		reputations: reputations,
		readStories: readStories,
	}
}

// ScoreFor 把反馈类型映射成训练标签的奖励分值
func ScoreFor(feedbackType int) float64 {
	switch feedbackType {
	case constant.FeedbackURLClicked:
		return constant.URLClickedScore
	case constant.FeedbackShared:
		return constant.SharedScore
	case constant.FeedbackAngry:
		return constant.AngryScore
	case constant.FeedbackCry:
		return constant.CryScore
	case constant.FeedbackNeutral:
		return constant.NeutralScore
	case constant.FeedbackSmile:
		return constant.SmileScore
	case constant.FeedbackHappy:
		return constant.HappyScore
	default:
		return 0
	}
}

// propagationReward 返回在线传播单位。
// 只有分享、开心、愤怒三种反馈触发传播，愤怒取负号；
// 其余类型返回 0 表示不传播。训练分值表与这里是两套刻度。
func propagationReward(feedbackType int) float64 {
	switch feedbackType {
	case constant.FeedbackShared, constant.FeedbackHappy:
		return constant.FeedbackReceivedReward
	case constant.FeedbackAngry:
		return -constant.FeedbackReceivedReward
	default:
		return 0
	}
}

// Received 处理一次反馈事件，副作用按固定顺序执行：
// 记阅读历史 → 存事件 → 计数加一 → 按需传播到四类偏好与声誉。
func (s *Service) Received(ctx context.Context, event model.UserFeedback) error {
	if event.FeedbackDatetime.IsZero() {
		event.FeedbackDatetime = time.Now()
	}

	if err := s.readStories.Add(ctx, model.ReadStory{
		UserID:   event.UserID,
		StoryID:  event.StoryID,
		ReadTime: time.Now(),
	}); err != nil {
		return err
	}

	if err := s.store.Insert(ctx, constant.CollectionUserFeedback, event); err != nil {
		return fmt.Errorf("写入反馈事件失败: %w", err)
	}

	// 故事可能已被清理任务删掉。事件本身照常保留，
	// 只是计数与传播没有落点，静默跳过。
	story, err := s.stories.GetByID(ctx, event.StoryID)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			log.Printf("⚠️  反馈引用的故事 %s 已不存在，跳过计数与传播", event.StoryID)
			return nil
		}
		return fmt.Errorf("查询反馈引用的故事 %s 失败: %w", event.StoryID, err)
	}

	if err := s.stories.UpdateFeedbackCounts(ctx, event.StoryID, event.FeedbackType); err != nil {
		return err
	}

	reward := propagationReward(event.FeedbackType)
	if reward == 0 {
		return nil
	}

	for _, keyword := range story.Keywords {
		if err := s.favorites.UpdateFromStory(ctx, event.UserID, keyword.Keyword.Text, keyword.Keyword.Text,
			reward, constant.CollectionFavoriteKeyword, story.Language); err != nil {
			return err
		}
	}
	for _, entity := range story.Entities {
		if err := s.favorites.UpdateFromStory(ctx, event.UserID, entity.Entity.Links, entity.Entity.Text,
			reward, constant.CollectionFavoriteEntity, story.Language); err != nil {
			return err
		}
	}
	if story.Source != nil {
		if err := s.favorites.UpdateFromStory(ctx, event.UserID, story.Source.SourceID, story.Source.Name,
			reward, constant.CollectionFavoriteSource, story.Language); err != nil {
			return err
		}
		if err := s.reputations.UpdateSourceReputation(ctx, story.Source.SourceID, reward); err != nil {
			return err
		}
	}
	if story.Author != nil {
		if err := s.favorites.UpdateFromStory(ctx, event.UserID, story.Author.AuthorID, story.Author.Name,
			reward, constant.CollectionFavoriteAuthor, story.Language); err != nil {
			return err
		}
		if err := s.reputations.UpdateAuthorReputation(ctx, story.Author.AuthorID, reward); err != nil {
			return err
		}
	}
	return nil
}

// GetFeedbackList 取用户最近的反馈事件，最多 200 条。
// 共享模型名表示拉全量反馈（训练默认模型用）。
func (s *Service) GetFeedbackList(ctx context.Context, userID string) ([]model.UserFeedback, error) {
	filter := bson.M{}
	if userID != constant.DefaultModelName {
		filter["user_id"] = userID
	}
	var feedbacks []model.UserFeedback
	opts := &repository.QueryOptions{
		Limit:   constant.UserFeedbackCount,
		Sort:    "feedback_datetime",
		Reverse: true,
	}
	if err := s.store.Get(ctx, constant.CollectionUserFeedback, filter, &feedbacks, opts); err != nil {
		return nil, fmt.Errorf("查询反馈历史失败: %w", err)
	}
	return feedbacks, nil
}

// RemoveOfUser 清空某用户的全部反馈事件
func (s *Service) RemoveOfUser(ctx context.Context, userID string) (int64, error) {
	return s.store.Remove(ctx, constant.CollectionUserFeedback, bson.M{"user_id": userID})
}
