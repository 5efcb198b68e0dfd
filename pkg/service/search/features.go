/*
 * @Description: 特征抽取：Solr 相关性子分与排序特征
 * @Author: 安知鱼
 * @Date: 2025-11-21 11:50:02
 * @LastEditTime: 2025-11-21 11:50:02
 * @LastEditors: 安知鱼
 */
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

// ExtractSolrFeatures 解析 Solr 特征日志扩展返回的
// `key1=val1,key2=val2,...` 串。逗号是硬分隔符，没有转义。
// 缺失的键保持零值；缺少等号的条目是硬错误。
func ExtractSolrFeatures(raw string) (model.SolrFeatures, error) {
	var features model.SolrFeatures
	if raw == "" {
		return features, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return model.SolrFeatures{}, fmt.Errorf("%w: 条目 %q 缺少等号", constant.ErrFeatureFormat, pair)
		}
		number, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return model.SolrFeatures{}, fmt.Errorf("%w: 条目 %q 的值不是数字", constant.ErrFeatureFormat, pair)
		}
		switch key {
		case "tfidf_sim_title":
			features.TfidfSimTitle = number
		case "bm25_sim_title":
			features.Bm25SimTitle = number
		case "tfidf_sim_body":
			features.TfidfSimBody = number
		case "bm25_sim_body":
			features.Bm25SimBody = number
		case "documentRecency":
			features.DocumentRecency = number
		case "tfidf_sim_keywords":
			features.TfidfSimKeywords = number
		case "bm25_sim_keywords":
			features.Bm25SimKeywords = number
		case "tfidf_sim_entities":
			features.TfidfSimEntities = number
		case "bm25_sim_entities":
			features.Bm25SimEntities = number
		}
	}
	return features, nil
}

// ExtractRankingFeatures 从装配完整的 Story 提取排序特征。
// 全函数：缺来源、缺作者、空关联列表都只产生部分记录，绝不报错。
// 最高频关键词/实体并列时取先扫描到的那个。
func ExtractRankingFeatures(story *model.Story) model.RankingFeatures {
	features := model.RankingFeatures{
		StoryTitle:   story.Title,
		ReadCount:    story.ReadCount,
		SharedCount:  story.SharedCount,
		AngryCount:   story.AngryCount,
		CryCount:     story.CryCount,
		NeutralCount: story.NeutralCount,
		SmileCount:   story.SmileCount,
		HappyCount:   story.HappyCount,
	}
	if story.Source != nil {
		features.SourceAlexaRank = story.Source.RankInAlexa
		features.SourceID = story.Source.SourceID
	}
	if story.Author != nil {
		features.AuthorID = story.Author.AuthorID
	}
	if len(story.Keywords) > 0 {
		best := story.Keywords[0]
		for _, keyword := range story.Keywords {
			if best.Frequency < keyword.Frequency {
				best = keyword
			}
		}
		features.MostFrequentKeyword = best.Keyword.Text
	}
	if len(story.Entities) > 0 {
		best := story.Entities[0]
		for _, entity := range story.Entities {
			if best.Frequency < entity.Frequency {
				best = entity
			}
		}
		features.MostFrequentEntity = best.Entity.Links
	}
	return features
}
