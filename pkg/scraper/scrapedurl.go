/*
 * @Description: 已抓取地址台账
 * @Author: 安知鱼
 * @Date: 2025-12-09 11:20:41
 * @LastEditTime: 2025-12-09 11:20:41
 * @LastEditors: 安知鱼
 */
package scraper

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// ScrapedURLService 记录每个来源已抓取过的文章地址，抓取器据此做增量
type ScrapedURLService struct {
	store repository.DocumentStore
}

func NewScrapedURLService(store repository.DocumentStore) *ScrapedURLService {
	return &ScrapedURLService{store: store}
}

// GetURLs 返回某来源的全部已抓取地址
func (s *ScrapedURLService) GetURLs(ctx context.Context, sourceName string) ([]string, error) {
	filter := bson.M{"source_name": sourceName}
	var records []model.ScrapedURL
	if err := s.store.Get(ctx, constant.CollectionScrapedURL, filter, &records, nil); err != nil {
		return nil, fmt.Errorf("查询来源 %s 的已抓取地址失败: %w", sourceName, err)
	}
	urls := make([]string, 0, len(records))
	for _, record := range records {
		urls = append(urls, record.URL)
	}
	return urls, nil
}

// Add 按 (来源, 地址) 幂等登记一批已抓取地址
func (s *ScrapedURLService) Add(ctx context.Context, records []model.ScrapedURL) error {
	for _, record := range records {
		identity := bson.M{"source_name": record.SourceName, "url": record.URL}
		if err := s.store.AddOrUpdate(ctx, constant.CollectionScrapedURL, identity, record); err != nil {
			return fmt.Errorf("登记已抓取地址 %s 失败: %w", record.URL, err)
		}
	}
	return nil
}
