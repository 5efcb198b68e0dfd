package search

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-news/internal/testutil"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

// scriptedIndex 按脚本决定每次 Select 的结果，并记录全部调用
type scriptedIndex struct {
	selectErrs    []error // 第 n 次 Select 返回的错误，越界后全部成功
	selectCalls   int
	selectResult  *SelectResult
	deleteCalls   int
	schemaCalls   int
	featureCalls  int
	addCalls      int
	addedDocCount int
}

func (f *scriptedIndex) Select(ctx context.Context, query string, params url.Values) (*SelectResult, error) {
	call := f.selectCalls
	f.selectCalls++
	if call < len(f.selectErrs) && f.selectErrs[call] != nil {
		return nil, f.selectErrs[call]
	}
	if f.selectResult != nil {
		return f.selectResult, nil
	}
	return &SelectResult{}, nil
}

func (f *scriptedIndex) Add(ctx context.Context, docs []*model.StoryInSolr) error {
	f.addCalls++
	f.addedDocCount += len(docs)
	return nil
}

func (f *scriptedIndex) DeleteAll(ctx context.Context) error {
	f.deleteCalls++
	return nil
}

func (f *scriptedIndex) PostSchema(ctx context.Context, payload []byte) error {
	f.schemaCalls++
	return nil
}

func (f *scriptedIndex) PutFeatureStore(ctx context.Context, payload []byte) error {
	f.featureCalls++
	return nil
}

type fakeRegistry struct {
	registered []string
	resetIDs   [][]string
}

func (f *fakeRegistry) RegisterModel(ctx context.Context, modelID string) error {
	f.registered = append(f.registered, modelID)
	return nil
}

func (f *fakeRegistry) ResetModelStore(ctx context.Context, modelIDs []string) error {
	f.resetIDs = append(f.resetIDs, modelIDs)
	return nil
}

type fakeUsers struct{ ids []string }

func (f *fakeUsers) GetIDs(ctx context.Context) ([]string, error) { return f.ids, nil }

type fakeReadHistory struct{ ids []string }

func (f *fakeReadHistory) GetStoryIDs(ctx context.Context, userID string) ([]string, error) {
	return f.ids, nil
}

type fakeHydrator struct{}

func (f *fakeHydrator) BuildStoriesFromDB(ctx context.Context, docs []model.StoryInDB) ([]model.Story, error) {
	stories := make([]model.Story, 0, len(docs))
	for _, doc := range docs {
		stories = append(stories, model.Story{
			StoryID:     doc.StoryID,
			Title:       doc.Title,
			Language:    doc.Language,
			PublishedAt: doc.PublishedAt,
		})
	}
	return stories, nil
}

func newTestService(index Index) (*Service, *fakeRegistry) {
	registry := &fakeRegistry{}
	return NewService(
		index,
		testutil.NewMemStore(),
		registry,
		&fakeUsers{ids: []string{"user-1", "user-2"}},
		&fakeReadHistory{},
		&fakeHydrator{},
	), registry
}

func solrDoc(storyID string, published time.Time) model.SolrDocument {
	return model.SolrDocument{
		"StoryId":     []interface{}{storyID},
		"Title":       []interface{}{"标题 " + storyID},
		"PublishedAt": []interface{}{published.UTC().Format(time.RFC3339)},
	}
}

func TestGenericSearch_重试策略(t *testing.T) {
	t.Run("失败一次后成功，且只触发一轮重置", func(t *testing.T) {
		index := &scriptedIndex{
			selectErrs:   []error{&SolrError{StatusCode: 400, Message: "unknown model"}},
			selectResult: &SelectResult{Docs: []model.SolrDocument{solrDoc("s-1", time.Now())}},
		}
		svc, registry := newTestService(index)

		query := model.NewSearchQuery()
		query.Grouped = ""
		query.LearnToRank = model.NewLtrParams()
		query.LearnToRank.ModelName = "user-1"

		docs, err := svc.GenericSearch(context.Background(), query)
		if err != nil {
			t.Fatalf("第二次尝试应成功: %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("结果数 = %d, 期望 1", len(docs))
		}
		if index.selectCalls != 2 {
			t.Errorf("Select 调用次数 = %d, 期望 2", index.selectCalls)
		}
		if index.deleteCalls != 1 {
			t.Errorf("重置次数 = %d, 期望恰好 1", index.deleteCalls)
		}
		if index.schemaCalls != len(schemaFiles) || index.featureCalls != 1 {
			t.Errorf("schema/特征仓库重放次数 = %d/%d", index.schemaCalls, index.featureCalls)
		}
		if len(registry.registered) != 1 || registry.registered[0] != "user-1" {
			t.Errorf("重试前应重新注册当前模型, 实际 %v", registry.registered)
		}
		if len(registry.resetIDs) != 1 {
			t.Errorf("模型仓库重置次数 = %d, 期望 1", len(registry.resetIDs))
		}
	})

	t.Run("持续失败时两次尝试后原样抛错", func(t *testing.T) {
		solrErr := &SolrError{StatusCode: 400, Message: "unknown model"}
		index := &scriptedIndex{selectErrs: []error{solrErr, solrErr}}
		svc, _ := newTestService(index)

		query := model.NewSearchQuery()
		_, err := svc.GenericSearch(context.Background(), query)
		if err == nil {
			t.Fatal("期望错误")
		}
		var got *SolrError
		if !errors.As(err, &got) {
			t.Errorf("应原样抛出 SolrError, 实际 %v", err)
		}
		if index.selectCalls != 2 {
			t.Errorf("Select 调用次数 = %d, 期望恰好 2（重试预算为 1）", index.selectCalls)
		}
		if index.deleteCalls != 1 {
			t.Errorf("重置次数 = %d, 期望 1", index.deleteCalls)
		}
	})

	t.Run("网络类错误不触发重置", func(t *testing.T) {
		index := &scriptedIndex{selectErrs: []error{errors.New("connection refused")}}
		svc, _ := newTestService(index)

		_, err := svc.GenericSearch(context.Background(), model.NewSearchQuery())
		if err == nil {
			t.Fatal("期望错误")
		}
		if index.deleteCalls != 0 {
			t.Errorf("非 Solr 错误不应触发重置, 实际重置 %d 次", index.deleteCalls)
		}
		if index.selectCalls != 1 {
			t.Errorf("Select 调用次数 = %d, 期望 1", index.selectCalls)
		}
	})
}

func TestGenericSearch_分组结果取每组第一篇(t *testing.T) {
	now := time.Now()
	index := &scriptedIndex{
		selectResult: &SelectResult{
			Grouped: map[string]GroupedField{
				"Source": {Groups: []GroupedDocList{
					{DocList: DocList{Docs: []model.SolrDocument{solrDoc("s-1", now), solrDoc("s-2", now)}}},
					{DocList: DocList{Docs: []model.SolrDocument{solrDoc("s-3", now)}}},
				}},
			},
		},
	}
	svc, _ := newTestService(index)

	query := model.NewSearchQuery() // Grouped 默认为 Source
	docs, err := svc.GenericSearch(context.Background(), query)
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("结果数 = %d, 期望每组一篇共 2 篇", len(docs))
	}
	if docs[0].First("StoryId") != "s-1" || docs[1].First("StoryId") != "s-3" {
		t.Errorf("应取每组第一篇, 实际 %q, %q", docs[0].First("StoryId"), docs[1].First("StoryId"))
	}
}

func TestSimpleSearch_按发布时间倒序(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	index := &scriptedIndex{
		selectResult: &SelectResult{Docs: []model.SolrDocument{
			solrDoc("old", now.Add(-2*time.Hour)),
			solrDoc("new", now),
			solrDoc("mid", now.Add(-time.Hour)),
		}},
	}
	svc, _ := newTestService(index)

	query := model.NewSearchQuery()
	query.Grouped = ""
	stories, err := svc.SimpleSearch(context.Background(), query)
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(stories) != 3 {
		t.Fatalf("结果数 = %d", len(stories))
	}
	if stories[0].StoryID != "new" || stories[1].StoryID != "mid" || stories[2].StoryID != "old" {
		t.Errorf("顺序不符: %s, %s, %s", stories[0].StoryID, stories[1].StoryID, stories[2].StoryID)
	}
}

func TestSearchWithPersonalization(t *testing.T) {
	t.Run("注入用户模型与阅读历史排除", func(t *testing.T) {
		index := &scriptedIndex{selectResult: &SelectResult{}}
		svc := NewService(
			index,
			testutil.NewMemStore(),
			&fakeRegistry{},
			&fakeUsers{},
			&fakeReadHistory{ids: []string{"read-1", "read-2"}},
			&fakeHydrator{},
		)

		query := model.NewSearchQuery()
		query.Grouped = ""
		query.Terms = "apple"
		if _, err := svc.SearchWithPersonalization(context.Background(), query, "user-9"); err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if query.LearnToRank == nil || query.LearnToRank.ModelName != "user-9" {
			t.Errorf("模型名应为用户 ID, 实际 %+v", query.LearnToRank)
		}
		if len(query.NotIDList) != 2 {
			t.Errorf("阅读历史应并入排除列表, 实际 %v", query.NotIDList)
		}
		var querytext string
		for _, p := range query.LearnToRank.Params {
			if p.Key == "efi.querytext" {
				querytext = p.Value
			}
		}
		if querytext != "apple" {
			t.Errorf("efi.querytext = %q, 期望 apple", querytext)
		}
	})

	t.Run("未登录退回共享模型", func(t *testing.T) {
		index := &scriptedIndex{selectResult: &SelectResult{}}
		svc, _ := newTestService(index)

		query := model.NewSearchQuery()
		query.Grouped = ""
		if _, err := svc.SearchWithPersonalization(context.Background(), query, ""); err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if query.LearnToRank.ModelName != "defaultmodel" {
			t.Errorf("模型名 = %q, 期望 defaultmodel", query.LearnToRank.ModelName)
		}
	})
}
