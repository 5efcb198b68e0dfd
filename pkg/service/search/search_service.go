/*
 * @Description: 搜索编排器：执行翻译后的查询，失败时重置索引并重试一次
 * @Author: 安知鱼
 * @Date: 2025-11-21 12:10:46
 * @LastEditTime: 2025-12-02 11:22:30
 * @LastEditors: 安知鱼
 */
package search

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

//go:embed solrdata/*.json
var solrData embed.FS

// schemaFiles 按依赖顺序列出重置索引时要重放的 schema 变更：
// 先建字段类型，再删旧字段、建新字段，最后挂 copyField。
var schemaFiles = []string{
	"text_tfidf.json",
	"querytext.json",
	"published_at_delete.json",
	"published_at.json",
	"title_tfidf.json",
	"title_copy.json",
	"body_tfidf.json",
	"body_copy.json",
	"keywords.json",
	"keywords_tfidf.json",
	"keywords_copy.json",
	"entities.json",
	"entities_tfidf.json",
	"entities_copy.json",
}

// ModelRegistry 是外部 ML 服务中与模型仓库相关的能力
type ModelRegistry interface {
	RegisterModel(ctx context.Context, modelID string) error
	ResetModelStore(ctx context.Context, modelIDs []string) error
}

// UserIDLister 提供全量用户 ID（即全量 LTR 模型名）
type UserIDLister interface {
	GetIDs(ctx context.Context) ([]string, error)
}

// ReadHistory 提供某用户近期读过的故事 ID，用于个性化排除
type ReadHistory interface {
	GetStoryIDs(ctx context.Context, userID string) ([]string, error)
}

// StoryHydrator 把入库形态的故事批量装配成完整对象
type StoryHydrator interface {
	BuildStoriesFromDB(ctx context.Context, docs []model.StoryInDB) ([]model.Story, error)
}

// Service 是搜索编排器
type Service struct {
	index       Index
	store       repository.DocumentStore
	registry    ModelRegistry
	users       UserIDLister
	readHistory ReadHistory
	hydrator    StoryHydrator
}

// NewService 组装搜索编排器及其协作方
func NewService(
	index Index,
	store repository.DocumentStore,
	registry ModelRegistry,
	users UserIDLister,
	readHistory ReadHistory,
	hydrator StoryHydrator,
) *Service {
	return &Service{
		index:       index,
		store:       store,
		registry:    registry,
		users:       users,
		readHistory: readHistory,
		hydrator:    hydrator,
	}
}

// GenericSearch 翻译并执行查询。
// 第一次执行遇到 Solr 侧错误（典型是引用了尚未注册的模型或特征字段）时，
// 做一轮完整的重置-回填，必要时重新注册当前模型，然后重试同一查询。
// 重试预算为 1，第二次失败原样抛给调用方。
func (s *Service) GenericSearch(ctx context.Context, query *model.SearchQuery) ([]model.SolrDocument, error) {
	queryString, params := Translate(query)

	result, err := s.index.Select(ctx, queryString, params)
	if err != nil {
		var solrErr *SolrError
		if !errors.As(err, &solrErr) {
			return nil, err
		}
		log.Printf("⚠️  Solr 查询失败，开始重置索引后重试: %v", err)
		if resetErr := s.Reset(ctx); resetErr != nil {
			return nil, fmt.Errorf("重置索引失败: %w", resetErr)
		}
		if query.LearnToRank != nil && query.LearnToRank.ModelName != "" {
			if regErr := s.registry.RegisterModel(ctx, query.LearnToRank.ModelName); regErr != nil {
				log.Printf("⚠️  重新注册模型 %s 失败: %v", query.LearnToRank.ModelName, regErr)
			}
		}
		result, err = s.index.Select(ctx, queryString, params)
		if err != nil {
			return nil, err
		}
	}
	return resultsFromSolr(result, query.Grouped), nil
}

// resultsFromSolr 整理查询结果：分组查询取每组第一篇，平铺查询原样返回
func resultsFromSolr(result *SelectResult, grouped string) []model.SolrDocument {
	if grouped == "" {
		return result.Docs
	}
	var docs []model.SolrDocument
	for _, group := range result.Grouped[grouped].Groups {
		if len(group.DocList.Docs) > 0 {
			docs = append(docs, group.DocList.Docs[0])
		}
	}
	return docs
}

// SimpleSearch 执行无个性化的检索并按发布时间倒序返回。
// 分组响应不保证组间顺序，取回后显式重排。
func (s *Service) SimpleSearch(ctx context.Context, query *model.SearchQuery) ([]model.ShortStory, error) {
	docs, err := s.GenericSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	stories := make([]model.ShortStory, 0, len(docs))
	for _, doc := range docs {
		stories = append(stories, model.SolrStoryToShortStory(doc))
	}
	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].PublishedAt.After(stories[j].PublishedAt)
	})
	return stories, nil
}

// SearchWithPersonalization 在请求上注入个性化信号后检索：
// 模型名取用户 ID（未登录退回共享模型），查询词进 efi.querytext，
// 用户近期读过的故事并入排除列表。结果顺序交给 LTR 模型，不再重排。
func (s *Service) SearchWithPersonalization(ctx context.Context, query *model.SearchQuery, userID string) ([]model.ShortStory, error) {
	modelName := userID
	if modelName == "" {
		modelName = constant.DefaultModelName
	}
	if query.LearnToRank == nil {
		query.LearnToRank = model.NewLtrParams()
	}
	query.LearnToRank.ModelName = modelName
	if query.Terms != "" {
		setLtrParam(query.LearnToRank, "efi.querytext", query.Terms)
	}
	if userID != "" && s.readHistory != nil {
		readIDs, err := s.readHistory.GetStoryIDs(ctx, userID)
		if err != nil {
			log.Printf("⚠️  获取用户 %s 的阅读历史失败: %v", userID, err)
		} else {
			query.NotIDList = append(query.NotIDList, readIDs...)
		}
	}
	docs, err := s.GenericSearch(ctx, query)
	if err != nil {
		return nil, err
	}
	stories := make([]model.ShortStory, 0, len(docs))
	for _, doc := range docs {
		stories = append(stories, model.SolrStoryToShortStory(doc))
	}
	return stories, nil
}

func setLtrParam(ltr *model.LtrParams, key, value string) {
	for i := range ltr.Params {
		if ltr.Params[i].Key == key {
			ltr.Params[i].Value = value
			return
		}
	}
	ltr.Params = append(ltr.Params, model.LtrParam{Key: key, Value: value})
}

// Reset 重建整个索引：清空文档、重放 schema 变更、重写特征仓库、
// 让 ML 服务重新注册全部用户模型，最后从库里回填文档。
func (s *Service) Reset(ctx context.Context) error {
	if err := s.index.DeleteAll(ctx); err != nil {
		return fmt.Errorf("清空索引失败: %w", err)
	}
	for _, name := range schemaFiles {
		payload, err := solrData.ReadFile("solrdata/" + name)
		if err != nil {
			return fmt.Errorf("读取 schema 定义 %s 失败: %w", name, err)
		}
		if err := s.index.PostSchema(ctx, payload); err != nil {
			return fmt.Errorf("提交 schema 定义 %s 失败: %w", name, err)
		}
	}
	featureStore, err := solrData.ReadFile("solrdata/efi_feature_store.json")
	if err != nil {
		return fmt.Errorf("读取特征仓库定义失败: %w", err)
	}
	if err := s.index.PutFeatureStore(ctx, featureStore); err != nil {
		return fmt.Errorf("写入特征仓库失败: %w", err)
	}

	modelIDs, err := s.users.GetIDs(ctx)
	if err != nil {
		log.Printf("⚠️  获取用户 ID 列表失败，跳过模型仓库重置: %v", err)
	} else if err := s.registry.ResetModelStore(ctx, modelIDs); err != nil {
		log.Printf("⚠️  重置模型仓库失败: %v", err)
	}

	return s.Refill(ctx)
}

// Refill 按来源逐日回填索引：最近 10 天，每来源每天最多 90 篇
func (s *Service) Refill(ctx context.Context) error {
	var sources []model.Source
	if err := s.store.Get(ctx, constant.CollectionSource, bson.M{}, &sources, nil); err != nil {
		return fmt.Errorf("读取来源列表失败: %w", err)
	}
	for _, source := range sources {
		if err := s.refillStories(ctx, source.SourceID); err != nil {
			return fmt.Errorf("回填来源 %s 的故事失败: %w", source.Name, err)
		}
	}
	return nil
}

func (s *Service) refillStories(ctx context.Context, sourceID string) error {
	now := time.Now().UTC()
	for day := 0; day < constant.DaysOfStoriesInSolr; day++ {
		end := now.AddDate(0, 0, -(day - 1))
		start := end.AddDate(0, 0, -1)
		filter := bson.M{
			"published_at": bson.M{"$gte": start, "$lt": end},
			"source_id":    sourceID,
		}
		var docs []model.StoryInDB
		opts := &repository.QueryOptions{Limit: constant.StoriesPerSource}
		if err := s.store.Get(ctx, constant.CollectionStory, filter, &docs, opts); err != nil {
			return err
		}
		if len(docs) == 0 {
			continue
		}
		stories, err := s.hydrator.BuildStoriesFromDB(ctx, docs)
		if err != nil {
			return err
		}
		solrDocs := make([]*model.StoryInSolr, 0, len(stories))
		for i := range stories {
			solrDocs = append(solrDocs, model.ConvertStoryToStoryInSolr(&stories[i]))
		}
		if err := s.index.Add(ctx, solrDocs); err != nil {
			return err
		}
	}
	return nil
}

// AddStories 把装配完整的故事推入索引，抓取入库后调用
func (s *Service) AddStories(ctx context.Context, stories []model.Story) error {
	solrDocs := make([]*model.StoryInSolr, 0, len(stories))
	for i := range stories {
		solrDocs = append(solrDocs, model.ConvertStoryToStoryInSolr(&stories[i]))
	}
	return s.index.Add(ctx, solrDocs)
}
