package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-news/internal/testutil"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeSourceProvider struct {
	sources []model.Source
	resets  int
}

func (f *fakeSourceProvider) ResetSources(ctx context.Context) error {
	f.resets++
	return nil
}

func (f *fakeSourceProvider) GetAll(ctx context.Context, language string) ([]model.Source, error) {
	return f.sources, nil
}

type fakeStorySink struct {
	stories []model.Story
}

func (f *fakeStorySink) InsertStories(ctx context.Context, stories []model.Story) error {
	f.stories = append(f.stories, stories...)
	return nil
}

type fakeIndexer struct {
	stories []model.Story
}

func (f *fakeIndexer) AddStories(ctx context.Context, stories []model.Story) error {
	f.stories = append(f.stories, stories...)
	return nil
}

func rssFeed(items ...string) string {
	feed := `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel><title>Test Feed</title>`
	for _, item := range items {
		feed += item
	}
	return feed + `</channel></rss>`
}

func rssItem(title, link string, published time.Time) string {
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link><pubDate>%s</pubDate></item>`,
		title, link, published.Format(time.RFC1123Z))
}

func TestRun(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	article := func(title string) string {
		return fmt.Sprintf(`<html><head><meta property="og:title" content="%s">
<meta property="article:published_time" content="%s">
</head><body><article><p>Body of %s.</p></article></body></html>`,
			title, now.Add(-time.Hour).Format(time.RFC3339), title)
	}
	mux.HandleFunc("/articles/fresh", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(article("Fresh story")))
	})
	mux.HandleFunc("/articles/known", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(article("Known story")))
	})
	mux.HandleFunc("/articles/stale", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(`<html><head><meta property="og:title" content="Stale story">
<meta property="article:published_time" content="%s">
</head><body><article><p>Old body.</p></article></body></html>`,
			now.AddDate(0, 0, -10).Format(time.RFC3339))))
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed(
			rssItem("Fresh story", server.URL+"/articles/fresh", now.Add(-time.Hour)),
			rssItem("Known story", server.URL+"/articles/known", now.Add(-2*time.Hour)),
			rssItem("Stale story", server.URL+"/articles/stale", now.AddDate(0, 0, -10)),
		)))
	})

	store := testutil.NewMemStore()
	scrapedURLs := NewScrapedURLService(store)
	if err := scrapedURLs.Add(context.Background(), []model.ScrapedURL{{
		SourceName:  "Test Source",
		URL:         server.URL + "/articles/known",
		PublishedAt: now,
	}}); err != nil {
		t.Fatal(err)
	}

	sources := &fakeSourceProvider{sources: []model.Source{{
		SourceID: "src-1",
		Name:     "Test Source",
		Language: "en",
		RSSFeed:  server.URL + "/feed",
	}}}
	sink := &fakeStorySink{}
	indexer := &fakeIndexer{}
	scraper := NewScraper(sources, sink, indexer, scrapedURLs, NewParser(nil, nil))

	if err := scraper.Run(context.Background(), "en"); err != nil {
		t.Fatalf("不期望错误: %v", err)
	}

	if sources.resets != 1 {
		t.Errorf("应先重载来源列表, 重载次数 = %d", sources.resets)
	}
	// 三个条目里：一篇新故事入库，一篇已抓过跳过，一篇太旧丢弃
	if len(sink.stories) != 1 || sink.stories[0].Title != "Fresh story" {
		t.Fatalf("入库故事不符: %+v", sink.stories)
	}
	if len(indexer.stories) != 1 || indexer.stories[0].Title != "Fresh story" {
		t.Errorf("进索引故事不符: %+v", indexer.stories)
	}
	// 新抓的地址登记到台账
	if store.Count(constant.CollectionScrapedURL, bson.M{"url": server.URL + "/articles/fresh"}) != 1 {
		t.Error("新地址应登记到已抓取台账")
	}
	if n := store.Count(constant.CollectionScrapedURL, nil); n != 2 {
		t.Errorf("台账记录数 = %d, 期望 2", n)
	}
}

func TestRun_重复执行不重复入库(t *testing.T) {
	now := time.Now()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/articles/one", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf(`<html><head><meta property="og:title" content="Only story">
<meta property="article:published_time" content="%s">
</head><body><article><p>Body.</p></article></body></html>`,
			now.Add(-time.Hour).Format(time.RFC3339))))
	})
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssFeed(rssItem("Only story", server.URL+"/articles/one", now.Add(-time.Hour)))))
	})

	store := testutil.NewMemStore()
	sources := &fakeSourceProvider{sources: []model.Source{{
		SourceID: "src-1", Name: "Test Source", Language: "en", RSSFeed: server.URL + "/feed",
	}}}
	sink := &fakeStorySink{}
	scraper := NewScraper(sources, sink, nil, NewScrapedURLService(store), NewParser(nil, nil))

	for i := 0; i < 2; i++ {
		if err := scraper.Run(context.Background(), "en"); err != nil {
			t.Fatalf("第 %d 次抓取出错: %v", i+1, err)
		}
	}
	if len(sink.stories) != 1 {
		t.Errorf("两次抓取后入库故事数 = %d, 期望增量抓取只有 1", len(sink.stories))
	}
}
