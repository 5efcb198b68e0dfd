/*
 * @Description: 故事服务：入库、装配、公共列表与个性化推荐
 * @Author: 安知鱼
 * @Date: 2025-11-21 15:05:27
 * @LastEditTime: 2025-12-04 10:18:36
 * @LastEditors: 安知鱼
 */
package story

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	publicStoriesCacheKey = "anheyu-news:public_stories:"
	publicStoriesCacheTTL = 5 * time.Minute
	recommendedStoryCount = 12
)

// Recommender 是外部推荐服务的能力抽象
type Recommender interface {
	GetRecommendations(ctx context.Context, userID, language string) ([]string, error)
	Available() bool
}

// ReadHistory 提供用户近期读过的故事 ID
type ReadHistory interface {
	GetStoryIDs(ctx context.Context, userID string) ([]string, error)
}

// Service 是故事领域的门面
type Service struct {
	store       repository.DocumentStore
	redis       *redis.Client // 可为 nil，此时公共列表不走缓存
	sources     *SourceService
	authors     *AuthorService
	keywords    *KeywordService
	entities    *EntityService
	recommender Recommender
	readHistory ReadHistory
}

// NewService 组装故事服务
func NewService(
	store repository.DocumentStore,
	rdb *redis.Client,
	sources *SourceService,
	authors *AuthorService,
	keywords *KeywordService,
	entities *EntityService,
	recommender Recommender,
	readHistory ReadHistory,
) *Service {
	return &Service{
		store:       store,
		redis:       rdb,
		sources:     sources,
		authors:     authors,
		keywords:    keywords,
		entities:    entities,
		recommender: recommender,
		readHistory: readHistory,
	}
}

// InsertStories 入库一批装配完整的故事：
// 先补齐作者/关键词/实体字典，再写故事本体，最后清掉过期故事。
func (s *Service) InsertStories(ctx context.Context, stories []model.Story) error {
	if len(stories) == 0 {
		log.Println("没有需要入库的故事")
		return nil
	}
	var authors []model.Author
	var keywords []model.Keyword
	var entities []model.Entity
	for _, story := range stories {
		if story.Author != nil {
			authors = append(authors, *story.Author)
		}
		for _, keyword := range story.Keywords {
			keywords = append(keywords, keyword.Keyword)
		}
		for _, entity := range story.Entities {
			entities = append(entities, entity.Entity)
		}
	}
	if err := s.authors.AddNew(ctx, authors); err != nil {
		return err
	}
	if err := s.keywords.AddNew(ctx, stories[0].Language, keywords); err != nil {
		return err
	}
	if err := s.entities.AddNew(ctx, entities); err != nil {
		return err
	}
	if err := s.AddOrUpdateStories(ctx, stories); err != nil {
		return err
	}
	if _, err := s.RemoveOldStories(ctx); err != nil {
		return err
	}
	return nil
}

// AddOrUpdateStories 按 story_id 幂等写入故事
func (s *Service) AddOrUpdateStories(ctx context.Context, stories []model.Story) error {
	for i := range stories {
		inDB := model.ConvertStoryToStoryInDB(&stories[i])
		identity := bson.M{"story_id": inDB.StoryID}
		if err := s.store.AddOrUpdate(ctx, constant.CollectionStory, identity, inDB); err != nil {
			return fmt.Errorf("写入故事 %s 失败: %w", inDB.StoryID, err)
		}
	}
	return nil
}

// RemoveOldStories 清理超过保留期的故事，返回删除条数
func (s *Service) RemoveOldStories(ctx context.Context) (int64, error) {
	filter := bson.M{
		"published_at": bson.M{
			"$lte": time.Now().AddDate(0, 0, -constant.StoryDaysToExpiry),
		},
	}
	return s.store.Remove(ctx, constant.CollectionStory, filter)
}

// GetByID 按 story_id 取单篇并装配完整
func (s *Service) GetByID(ctx context.Context, storyID string) (*model.Story, error) {
	filter := bson.M{"story_id": storyID}
	var docs []model.StoryInDB
	if err := s.store.Get(ctx, constant.CollectionStory, filter, &docs, &repository.QueryOptions{Limit: 1}); err != nil {
		return nil, fmt.Errorf("查询故事 %s 失败: %w", storyID, err)
	}
	if len(docs) == 0 {
		return nil, constant.ErrNotFound
	}
	stories, err := s.BuildStoriesFromDB(ctx, docs)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return nil, constant.ErrNotFound
	}
	return &stories[0], nil
}

// storyDependencies 是一批故事的全部关联对象，按标识建好索引
type storyDependencies struct {
	authors  map[string]model.Author
	sources  map[string]model.Source
	keywords map[string]model.Keyword
	entities map[string]model.Entity
}

// getDependencies 并行拉取四类关联对象。
// 四个查询落在互不相交的集合上，只读，无需加锁之外的协调。
func (s *Service) getDependencies(ctx context.Context, docs []model.StoryInDB) (*storyDependencies, error) {
	authorIDSet := make(map[string]bool)
	sourceIDSet := make(map[string]bool)
	keywordSet := make(map[string]bool)
	entitySet := make(map[string]bool)
	var authorIDs, sourceIDs, keywordTexts, entityLinks []string
	for _, doc := range docs {
		if doc.AuthorID != "" && !authorIDSet[doc.AuthorID] {
			authorIDSet[doc.AuthorID] = true
			authorIDs = append(authorIDs, doc.AuthorID)
		}
		if doc.SourceID != "" && !sourceIDSet[doc.SourceID] {
			sourceIDSet[doc.SourceID] = true
			sourceIDs = append(sourceIDs, doc.SourceID)
		}
		for _, keyword := range doc.Keywords {
			if !keywordSet[keyword.Text] {
				keywordSet[keyword.Text] = true
				keywordTexts = append(keywordTexts, keyword.Text)
			}
		}
		for _, entity := range doc.Entities {
			if !entitySet[entity.Links] {
				entitySet[entity.Links] = true
				entityLinks = append(entityLinks, entity.Links)
			}
		}
	}

	language := ""
	if len(docs) > 0 {
		language = docs[0].Language
	}

	deps := &storyDependencies{
		authors:  make(map[string]model.Author),
		sources:  make(map[string]model.Source),
		keywords: make(map[string]model.Keyword),
		entities: make(map[string]model.Entity),
	}
	var errAuthors, errSources, errKeywords, errEntities error
	var waitGroup sync.WaitGroup
	waitGroup.Add(4)
	go func() {
		defer waitGroup.Done()
		authors, err := s.authors.GetByIDs(ctx, authorIDs)
		errAuthors = err
		for _, author := range authors {
			deps.authors[author.AuthorID] = author
		}
	}()
	go func() {
		defer waitGroup.Done()
		sources, err := s.sources.GetByIDs(ctx, sourceIDs)
		errSources = err
		for _, source := range sources {
			deps.sources[source.SourceID] = source
		}
	}()
	go func() {
		defer waitGroup.Done()
		keywords, err := s.keywords.GetByTexts(ctx, keywordTexts, language)
		errKeywords = err
		for _, keyword := range keywords {
			deps.keywords[keyword.Text] = keyword
		}
	}()
	go func() {
		defer waitGroup.Done()
		entities, err := s.entities.GetByLinks(ctx, entityLinks)
		errEntities = err
		for _, entity := range entities {
			deps.entities[entity.Links] = entity
		}
	}()
	waitGroup.Wait()
	for _, err := range []error{errAuthors, errSources, errKeywords, errEntities} {
		if err != nil {
			return nil, fmt.Errorf("拉取故事关联对象失败: %w", err)
		}
	}
	return deps, nil
}

// BuildStoriesFromDB 把入库形态批量装配成完整对象。
// 缺来源或缺作者的故事跳过；缺个别关键词/实体只产生部分关联，不报错。
func (s *Service) BuildStoriesFromDB(ctx context.Context, docs []model.StoryInDB) ([]model.Story, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	deps, err := s.getDependencies(ctx, docs)
	if err != nil {
		return nil, err
	}
	stories := make([]model.Story, 0, len(docs))
	for _, doc := range docs {
		author, hasAuthor := deps.authors[doc.AuthorID]
		source, hasSource := deps.sources[doc.SourceID]
		if !hasAuthor || !hasSource {
			continue
		}
		story := model.Story{
			StoryID:      doc.StoryID,
			Title:        doc.Title,
			Body:         doc.Body,
			Summary:      doc.Summary,
			Source:       &source,
			Author:       &author,
			Images:       doc.Images,
			Language:     doc.Language,
			PublishedAt:  doc.PublishedAt,
			URL:          doc.URL,
			ReadCount:    doc.ReadCount,
			SharedCount:  doc.SharedCount,
			AngryCount:   doc.AngryCount,
			CryCount:     doc.CryCount,
			NeutralCount: doc.NeutralCount,
			SmileCount:   doc.SmileCount,
			HappyCount:   doc.HappyCount,
		}
		for _, keywordInDB := range doc.Keywords {
			if keyword, ok := deps.keywords[keywordInDB.Text]; ok {
				story.Keywords = append(story.Keywords, model.KeywordInStory{
					Keyword:   keyword,
					Frequency: keywordInDB.Frequency,
				})
			}
		}
		for _, entityInDB := range doc.Entities {
			if entity, ok := deps.entities[entityInDB.Links]; ok {
				story.Entities = append(story.Entities, model.EntityInStory{
					Entity:    entity,
					Frequency: entityInDB.Frequency,
				})
			}
		}
		stories = append(stories, story)
	}
	return stories, nil
}

// BuildShortStoriesFromDB 批量装配成前端形态
func (s *Service) BuildShortStoriesFromDB(ctx context.Context, docs []model.StoryInDB) ([]model.ShortStory, error) {
	stories, err := s.BuildStoriesFromDB(ctx, docs)
	if err != nil {
		return nil, err
	}
	shortStories := make([]model.ShortStory, 0, len(stories))
	for i := range stories {
		shortStories = append(shortStories, model.ConvertStoryToShortStory(&stories[i]))
	}
	return shortStories, nil
}

// UpdateFeedbackCounts 对故事的互动计数做原子加一
func (s *Service) UpdateFeedbackCounts(ctx context.Context, storyID string, feedbackType int) error {
	var field string
	switch feedbackType {
	case constant.FeedbackURLClicked:
		field = "read_count"
	case constant.FeedbackShared:
		field = "shared_count"
	case constant.FeedbackAngry:
		field = "angry_count"
	case constant.FeedbackCry:
		field = "cry_count"
	case constant.FeedbackNeutral:
		field = "neutral_count"
	case constant.FeedbackSmile:
		field = "smile_count"
	case constant.FeedbackHappy:
		field = "happy_count"
	default:
		return fmt.Errorf("%w: 未知的反馈类型 %d", constant.ErrBadRequest, feedbackType)
	}
	filter := bson.M{"story_id": storyID}
	if err := s.store.ApplyDelta(ctx, constant.CollectionStory, filter, bson.M{field: 1}, nil, false); err != nil {
		return fmt.Errorf("更新故事 %s 的互动计数失败: %w", storyID, err)
	}
	return nil
}

// UpdateSourceReputation 调整来源的全站声誉
func (s *Service) UpdateSourceReputation(ctx context.Context, sourceID string, reward float64) error {
	return s.sources.UpdateReputation(ctx, sourceID, reward)
}

// UpdateAuthorReputation 调整作者的全站声誉
func (s *Service) UpdateAuthorReputation(ctx context.Context, authorID string, reward float64) error {
	return s.authors.UpdateReputation(ctx, authorID, reward)
}

// GetPublicStories 返回公共新闻列表：近一天、每来源一篇。
// 结果进 Redis 缓存，Redis 未配置时直查。
func (s *Service) GetPublicStories(ctx context.Context, language string) ([]model.ShortStory, error) {
	if language == "" {
		language = "en"
	}
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, publicStoriesCacheKey+language).Result()
		if err == nil {
			var stories []model.ShortStory
			if unmarshalErr := json.Unmarshal([]byte(cached), &stories); unmarshalErr == nil {
				return stories, nil
			}
		}
	}

	now := time.Now()
	filter := bson.M{
		"language": language,
		"published_at": bson.M{
			"$gte": now.AddDate(0, 0, -constant.PreviousDaysOfNews),
			"$lt":  now,
		},
	}
	var docs []model.StoryInDB
	opts := &repository.QueryOptions{Sort: "published_at", Reverse: true}
	if err := s.store.GetGrouped(ctx, constant.CollectionStory, filter, "source_id", &docs, opts); err != nil {
		return nil, fmt.Errorf("查询公共新闻列表失败: %w", err)
	}
	stories, err := s.BuildShortStoriesFromDB(ctx, docs)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, marshalErr := json.Marshal(stories); marshalErr == nil {
			if err := s.redis.Set(ctx, publicStoriesCacheKey+language, payload, publicStoriesCacheTTL).Err(); err != nil {
				log.Printf("⚠️  写入公共新闻缓存失败: %v", err)
			}
		}
	}
	return stories, nil
}

// GetRecommendedStories 返回用户的个性化推荐列表。
// 推荐服务不可用或用户未登录时，降级为公共的按来源分组列表。
func (s *Service) GetRecommendedStories(ctx context.Context, userID, language string) ([]model.ShortStory, error) {
	if language == "" {
		language = "en"
	}
	if userID == "" {
		return s.GetPublicStories(ctx, language)
	}

	filter := bson.M{"language": language}
	var excludeIDs []string
	if s.readHistory != nil {
		readIDs, err := s.readHistory.GetStoryIDs(ctx, userID)
		if err != nil {
			log.Printf("⚠️  获取用户 %s 的阅读历史失败: %v", userID, err)
		} else {
			excludeIDs = readIDs
		}
	}

	if s.recommender != nil && s.recommender.Available() {
		recommendedIDs, err := s.recommender.GetRecommendations(ctx, userID, language)
		if err == nil {
			excluded := make(map[string]bool, len(excludeIDs))
			for _, id := range excludeIDs {
				excluded[id] = true
			}
			includeIDs := make([]string, 0, len(recommendedIDs))
			for _, id := range recommendedIDs {
				if !excluded[id] {
					includeIDs = append(includeIDs, id)
				}
			}
			filter["story_id"] = bson.M{"$in": includeIDs}
			var docs []model.StoryInDB
			opts := &repository.QueryOptions{Limit: recommendedStoryCount}
			if getErr := s.store.Get(ctx, constant.CollectionStory, filter, &docs, opts); getErr != nil {
				return nil, fmt.Errorf("查询推荐故事失败: %w", getErr)
			}
			return s.BuildShortStoriesFromDB(ctx, docs)
		}
		log.Printf("⚠️  推荐服务不可用，降级为公共列表: %v", err)
	}

	// 降级路径：近一天、每来源一篇，仍然排除读过的
	now := time.Now()
	filter["published_at"] = bson.M{
		"$gte": now.AddDate(0, 0, -constant.PreviousDaysOfNews),
		"$lt":  now,
	}
	if len(excludeIDs) > 0 {
		filter["story_id"] = bson.M{"$nin": excludeIDs}
	}
	var docs []model.StoryInDB
	if err := s.store.GetGrouped(ctx, constant.CollectionStory, filter, "source_id", &docs, nil); err != nil {
		return nil, fmt.Errorf("查询降级推荐列表失败: %w", err)
	}
	return s.BuildShortStoriesFromDB(ctx, docs)
}
