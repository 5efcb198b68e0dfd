/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-21 14:48:51
 * @LastEditTime: 2025-11-21 14:48:51
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

// EntityService 维护实体字典，实体按链接标识唯一
type EntityService struct {
	store repository.DocumentStore
}

func NewEntityService(store repository.DocumentStore) *EntityService {
	return &EntityService{store: store}
}

// AddNew 写入库里还没有的实体
func (s *EntityService) AddNew(ctx context.Context, entities []model.Entity) error {
	byLinks := make(map[string]model.Entity)
	links := make([]string, 0, len(entities))
	for _, entity := range entities {
		if entity.Links == "" {
			continue
		}
		if _, ok := byLinks[entity.Links]; !ok {
			links = append(links, entity.Links)
		}
		byLinks[entity.Links] = entity
	}
	if len(links) == 0 {
		return nil
	}

	existing, err := s.GetByLinks(ctx, links)
	if err != nil {
		return err
	}
	for _, entity := range existing {
		delete(byLinks, entity.Links)
	}

	for _, entity := range byLinks {
		identity := bson.M{"links": entity.Links}
		if err := s.store.AddOrUpdate(ctx, constant.CollectionEntity, identity, entity); err != nil {
			return fmt.Errorf("写入实体 %q 失败: %w", entity.Links, err)
		}
	}
	return nil
}

// GetByLinks 批量查实体
func (s *EntityService) GetByLinks(ctx context.Context, links []string) ([]model.Entity, error) {
	if len(links) == 0 {
		return nil, nil
	}
	filter := bson.M{"links": bson.M{"$in": links}}
	var entities []model.Entity
	if err := s.store.Get(ctx, constant.CollectionEntity, filter, &entities, nil); err != nil {
		return nil, fmt.Errorf("批量查询实体失败: %w", err)
	}
	return entities, nil
}
