package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/ml"

	"github.com/mmcdole/gofeed"
)

// fakeAnnotator 返回脚本化的 NLP 标注结果
type fakeAnnotator struct {
	annotations ml.StoryAnnotations
	gotTitle    string
	gotBody     string
}

func (f *fakeAnnotator) ExtractStoryAnnotations(ctx context.Context, title, body, language string) (*ml.StoryAnnotations, error) {
	f.gotTitle = title
	f.gotBody = body
	return &f.annotations, nil
}

func (f *fakeAnnotator) Available() bool { return true }

type fakeAuthorFinder struct {
	author *model.Author
	err    error
}

func (f *fakeAuthorFinder) GetByName(ctx context.Context, name string) (*model.Author, error) {
	return f.author, f.err
}

const articleHTML = `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Apple unveils a new chip">
<meta property="og:description" content="The company announced it today">
<meta property="og:image" content="https://example.com/chip.jpg">
<meta property="article:published_time" content="2026-08-30T09:30:00Z">
<meta name="author" content="Alice">
</head><body>
<article>
<p>First paragraph.</p>
<p>Second <b>paragraph</b>.</p>
</article>
</body></html>`

func newArticleServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("User-Agent = %s", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(html))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestParseStory(t *testing.T) {
	server := newArticleServer(t, articleHTML)
	annotator := &fakeAnnotator{annotations: ml.StoryAnnotations{
		Keywords: []model.KeywordInStory{
			{Keyword: model.Keyword{Text: "chip", Language: "en"}, Frequency: 2},
			{Keyword: model.Keyword{Text: "chip", Language: "en"}, Frequency: 1},
		},
		Entities: []model.EntityInStory{
			{Entity: model.Entity{Text: "Apple", Type: "ORG", Links: "appleORG"}, Frequency: 3},
		},
	}}
	parser := NewParser(annotator, &fakeAuthorFinder{err: context.Canceled})

	source := &model.Source{SourceID: "src-1", Name: "Unknown Site", Language: "en"}
	story, err := parser.ParseStory(context.Background(), source, server.URL, nil)
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}

	if story.Title != "Apple unveils a new chip" {
		t.Errorf("标题 = %q", story.Title)
	}
	if story.Summary != "The company announced it today" {
		t.Errorf("摘要 = %q", story.Summary)
	}
	if story.Body != "First paragraph. Second paragraph." {
		t.Errorf("正文 = %q", story.Body)
	}
	want := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	if !story.PublishedAt.Equal(want) {
		t.Errorf("发布时间 = %v, 期望 %v", story.PublishedAt, want)
	}
	if len(story.Images) != 1 || story.Images[0] != "https://example.com/chip.jpg" {
		t.Errorf("配图 = %v", story.Images)
	}
	if story.Author == nil || story.Author.Name != "Alice" || story.Author.AuthorID == "" {
		t.Errorf("作者 = %+v", story.Author)
	}
	if story.StoryID == "" || story.URL != server.URL {
		t.Errorf("标识不符: id=%q url=%q", story.StoryID, story.URL)
	}

	// 标注送审的是清洗后的标题与正文
	if annotator.gotTitle != story.Title || annotator.gotBody != story.Body {
		t.Errorf("标注入参不符: %q / %q", annotator.gotTitle, annotator.gotBody)
	}
	// 重复关键词按词面合并词频
	if len(story.Keywords) != 1 || story.Keywords[0].Frequency != 3 {
		t.Errorf("关键词未合并: %+v", story.Keywords)
	}
	if len(story.Entities) != 1 || story.Entities[0].Entity.Links != "appleORG" {
		t.Errorf("实体不符: %+v", story.Entities)
	}
}

func TestParseStory_兜底逻辑(t *testing.T) {
	t.Run("页面缺字段时回退到RSS条目", func(t *testing.T) {
		published := time.Date(2026, 8, 29, 8, 0, 0, 0, time.UTC)
		server := newArticleServer(t, `<html><body><article><p>Body only.</p></article></body></html>`)
		parser := NewParser(nil, nil)

		source := &model.Source{SourceID: "src-1", Name: "Unknown Site", Language: "en"}
		item := &gofeed.Item{
			Title:           "RSS <em>title</em>",
			Description:     "RSS description",
			PublishedParsed: &published,
		}
		story, err := parser.ParseStory(context.Background(), source, server.URL, item)
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if story.Title != "RSS title" {
			t.Errorf("标题应取自 RSS 并清洗标签: %q", story.Title)
		}
		if story.Summary != "RSS description" {
			t.Errorf("摘要 = %q", story.Summary)
		}
		if !story.PublishedAt.Equal(published) {
			t.Errorf("发布时间应取自 RSS: %v", story.PublishedAt)
		}
		// 页面无署名时把来源当作者
		if story.Author == nil || story.Author.Name != "Unknown Site" {
			t.Errorf("作者 = %+v", story.Author)
		}
	})

	t.Run("无摘要时截断正文", func(t *testing.T) {
		longBody := strings.Repeat("word ", 100)
		server := newArticleServer(t, "<html><body><article><p>"+longBody+"</p></article></body></html>")
		parser := NewParser(nil, nil)

		source := &model.Source{SourceID: "src-1", Name: "Unknown Site", Language: "en"}
		story, err := parser.ParseStory(context.Background(), source, server.URL, nil)
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if len([]rune(story.Summary)) != summaryMaxLength+3 || !strings.HasSuffix(story.Summary, "...") {
			t.Errorf("摘要应截断到 %d 字并加省略号, 实际长度 %d", summaryMaxLength, len(story.Summary))
		}
	})

	t.Run("已入库作者直接复用", func(t *testing.T) {
		server := newArticleServer(t, articleHTML)
		existing := &model.Author{AuthorID: "auth-1", Name: "Alice", Reputation: 2.5}
		parser := NewParser(nil, &fakeAuthorFinder{author: existing})

		source := &model.Source{SourceID: "src-1", Name: "Unknown Site", Language: "en"}
		story, err := parser.ParseStory(context.Background(), source, server.URL, nil)
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if story.Author.AuthorID != "auth-1" || story.Author.Reputation != 2.5 {
			t.Errorf("应复用已有作者: %+v", story.Author)
		}
	})
}

func TestRulesFor_注册覆盖与默认回退(t *testing.T) {
	Register("Test Source", Rules{Author: Text(".custom-byline")})
	t.Cleanup(func() { delete(registry, "Test Source") })

	rules := RulesFor("Test Source")
	if rules.Author == nil || rules.Title == nil || rules.Body == nil {
		t.Fatal("缺失字段应回退到默认规则")
	}

	server := newArticleServer(t, `<html><head>
<meta property="og:title" content="og title">
</head><body><span class="custom-byline"> Bob </span></body></html>`)
	parser := NewParser(nil, nil)
	doc, err := parser.fetchDocument(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if got := rules.Author(doc); got != "Bob" {
		t.Errorf("定制作者规则 = %q, 期望 Bob", got)
	}
	if got := rules.Title(doc); got != "og title" {
		t.Errorf("默认标题规则 = %q", got)
	}
}
