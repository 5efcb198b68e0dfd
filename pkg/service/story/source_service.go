/*
 * @Description: 新闻来源服务
 * @Author: 安知鱼
 * @Date: 2025-11-21 14:20:18
 * @LastEditTime: 2025-12-03 16:41:52
 * @LastEditors: 安知鱼
 */
package story

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

//go:embed data/sources_list.json
var sourceData embed.FS

// SourceService 管理新闻来源及其全站声誉分
type SourceService struct {
	store repository.DocumentStore
}

func NewSourceService(store repository.DocumentStore) *SourceService {
	return &SourceService{store: store}
}

// GetByName 按名称查来源，查不到返回 constant.ErrNotFound
func (s *SourceService) GetByName(ctx context.Context, name string) (*model.Source, error) {
	return s.getOne(ctx, bson.M{"name": name})
}

// GetByID 按来源 ID 查来源
func (s *SourceService) GetByID(ctx context.Context, sourceID string) (*model.Source, error) {
	return s.getOne(ctx, bson.M{"source_id": sourceID})
}

func (s *SourceService) getOne(ctx context.Context, filter bson.M) (*model.Source, error) {
	var sources []model.Source
	if err := s.store.Get(ctx, constant.CollectionSource, filter, &sources, &repository.QueryOptions{Limit: 1}); err != nil {
		return nil, fmt.Errorf("查询来源失败: %w", err)
	}
	if len(sources) == 0 {
		return nil, constant.ErrNotFound
	}
	return &sources[0], nil
}

// GetByIDs 批量查来源，装配故事时使用
func (s *SourceService) GetByIDs(ctx context.Context, sourceIDs []string) ([]model.Source, error) {
	if len(sourceIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"source_id": bson.M{"$in": sourceIDs}}
	var sources []model.Source
	if err := s.store.Get(ctx, constant.CollectionSource, filter, &sources, nil); err != nil {
		return nil, fmt.Errorf("批量查询来源失败: %w", err)
	}
	return sources, nil
}

// GetAll 返回某语言的全部来源，集合为空时先用内置列表播种
func (s *SourceService) GetAll(ctx context.Context, language string) ([]model.Source, error) {
	filter := bson.M{"language": language}
	var sources []model.Source
	if err := s.store.Get(ctx, constant.CollectionSource, filter, &sources, nil); err != nil {
		return nil, fmt.Errorf("查询来源列表失败: %w", err)
	}
	if len(sources) == 0 {
		if err := s.ResetSources(ctx); err != nil {
			return nil, err
		}
		if err := s.store.Get(ctx, constant.CollectionSource, filter, &sources, nil); err != nil {
			return nil, fmt.Errorf("查询来源列表失败: %w", err)
		}
	}
	return sources, nil
}

type sourcesFile struct {
	Sources []model.Source `json:"sources"`
}

// ResetSources 用打包的来源清单重建 Source 集合
func (s *SourceService) ResetSources(ctx context.Context) error {
	raw, err := sourceData.ReadFile("data/sources_list.json")
	if err != nil {
		return fmt.Errorf("读取内置来源清单失败: %w", err)
	}
	var file sourcesFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("解析内置来源清单失败: %w", err)
	}
	if _, err := s.store.Remove(ctx, constant.CollectionSource, bson.M{}); err != nil {
		return fmt.Errorf("清空来源集合失败: %w", err)
	}
	for _, source := range file.Sources {
		if err := s.store.AddOrUpdate(ctx, constant.CollectionSource, bson.M{"source_id": source.SourceID}, source); err != nil {
			return fmt.Errorf("写入来源 %s 失败: %w", source.Name, err)
		}
	}
	log.Printf("✅ 已用内置清单重建 %d 个新闻来源", len(file.Sources))
	return nil
}

// UpdateReputation 对来源声誉做原子增量
func (s *SourceService) UpdateReputation(ctx context.Context, sourceID string, reward float64) error {
	filter := bson.M{"source_id": sourceID}
	inc := bson.M{"reputation": reward}
	if err := s.store.ApplyDelta(ctx, constant.CollectionSource, filter, inc, nil, false); err != nil {
		return fmt.Errorf("更新来源 %s 的声誉失败: %w", sourceID, err)
	}
	return nil
}
