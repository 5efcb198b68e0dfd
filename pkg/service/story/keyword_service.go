/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-11-21 14:44:06
 * @LastEditTime: 2025-11-21 14:44:06
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

// KeywordService 维护关键词字典，关键词按 (text, language) 唯一
type KeywordService struct {
	store repository.DocumentStore
}

func NewKeywordService(store repository.DocumentStore) *KeywordService {
	return &KeywordService{store: store}
}

// AddNew 写入库里还没有的关键词
func (s *KeywordService) AddNew(ctx context.Context, language string, keywords []model.Keyword) error {
	byText := make(map[string]model.Keyword)
	texts := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if keyword.Text == "" {
			continue
		}
		if _, ok := byText[keyword.Text]; !ok {
			texts = append(texts, keyword.Text)
		}
		keyword.Language = language
		byText[keyword.Text] = keyword
	}
	if len(texts) == 0 {
		return nil
	}

	existing, err := s.GetByTexts(ctx, texts, language)
	if err != nil {
		return err
	}
	for _, keyword := range existing {
		delete(byText, keyword.Text)
	}

	for _, keyword := range byText {
		identity := bson.M{"text": keyword.Text, "language": language}
		if err := s.store.AddOrUpdate(ctx, constant.CollectionKeyword, identity, keyword); err != nil {
			return fmt.Errorf("写入关键词 %q 失败: %w", keyword.Text, err)
		}
	}
	return nil
}

// GetByTexts 批量查关键词
func (s *KeywordService) GetByTexts(ctx context.Context, texts []string, language string) ([]model.Keyword, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	filter := bson.M{"text": bson.M{"$in": texts}, "language": language}
	var keywords []model.Keyword
	if err := s.store.Get(ctx, constant.CollectionKeyword, filter, &keywords, nil); err != nil {
		return nil, fmt.Errorf("批量查询关键词失败: %w", err)
	}
	return keywords, nil
}
