package search

import (
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

func TestExtractSolrFeatures(t *testing.T) {
	t.Run("缺失的键保持零值", func(t *testing.T) {
		got, err := ExtractSolrFeatures("tfidf_sim_title=0.0,bm25_sim_title=0.0,tfidf_sim_body=0.0")
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		want := model.SolrFeatures{}
		if got != want {
			t.Errorf("全零输入应得到零值记录, 实际 %+v", got)
		}
	})

	t.Run("解析多个特征值", func(t *testing.T) {
		got, err := ExtractSolrFeatures("tfidf_sim_title=1.5,bm25_sim_body=2.25,documentRecency=0.9")
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if got.TfidfSimTitle != 1.5 || got.Bm25SimBody != 2.25 || got.DocumentRecency != 0.9 {
			t.Errorf("解析结果不符: %+v", got)
		}
		if got.Bm25SimTitle != 0 {
			t.Errorf("未出现的键应保持零值, 实际 %v", got.Bm25SimTitle)
		}
	})

	t.Run("缺少等号是硬错误", func(t *testing.T) {
		_, err := ExtractSolrFeatures("tfidf_sim_title=1.0,bm25_sim_title")
		if !errors.Is(err, constant.ErrFeatureFormat) {
			t.Errorf("期望 ErrFeatureFormat, 实际 %v", err)
		}
	})

	t.Run("空串得到零值记录", func(t *testing.T) {
		got, err := ExtractSolrFeatures("")
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if got != (model.SolrFeatures{}) {
			t.Errorf("空串应得到零值记录, 实际 %+v", got)
		}
	})
}

func TestExtractRankingFeatures(t *testing.T) {
	story := &model.Story{
		StoryID: "story-1",
		Title:   "苹果发布新品",
		Source:  &model.Source{SourceID: "src-1", Name: "BBC", RankInAlexa: 87},
		Author:  &model.Author{AuthorID: "auth-1", Name: "Alice"},
		Keywords: []model.KeywordInStory{
			{Keyword: model.Keyword{Text: "Apple"}, Frequency: 3},
			{Keyword: model.Keyword{Text: "Orange"}, Frequency: 1},
		},
		Entities: []model.EntityInStory{
			{Entity: model.Entity{Text: "Apple Inc", Links: "AppleORG"}, Frequency: 2},
			{Entity: model.Entity{Text: "Tim Cook", Links: "TimCookPER"}, Frequency: 2},
		},
		ReadCount:  7,
		HappyCount: 2,
	}

	got := ExtractRankingFeatures(story)

	if got.MostFrequentKeyword != "Apple" {
		t.Errorf("最高频关键词 = %q, 期望 Apple", got.MostFrequentKeyword)
	}
	// 频次并列时取先扫描到的
	if got.MostFrequentEntity != "AppleORG" {
		t.Errorf("最高频实体 = %q, 期望 AppleORG", got.MostFrequentEntity)
	}
	if got.SourceAlexaRank != 87 || got.SourceID != "src-1" || got.AuthorID != "auth-1" {
		t.Errorf("来源/作者特征不符: %+v", got)
	}
	if got.ReadCount != 7 || got.HappyCount != 2 {
		t.Errorf("计数特征不符: %+v", got)
	}
}

func TestExtractRankingFeatures_缺关联不报错(t *testing.T) {
	story := &model.Story{StoryID: "story-2", Title: "无关联"}
	got := ExtractRankingFeatures(story)
	if got.MostFrequentKeyword != "" || got.MostFrequentEntity != "" {
		t.Errorf("空关联列表应留空, 实际 %+v", got)
	}
	if got.SourceAlexaRank != 0 || got.SourceID != "" || got.AuthorID != "" {
		t.Errorf("缺来源/作者时应保持零值, 实际 %+v", got)
	}
}
