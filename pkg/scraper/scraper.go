/*
 * @Description: RSS 增量抓取编排
 * @Author: 安知鱼
 * @Date: 2025-12-09 11:31:02
 * @LastEditTime: 2025-12-09 15:22:40
 * @LastEditors: 安知鱼
 */
package scraper

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"

	"github.com/mmcdole/gofeed"
)

const (
	// 超过这个天数的 RSS 条目视为旧闻，不再抓取
	maxStoryAgeDays = 4
	// 同时抓取的来源数上限
	defaultConcurrency = 4
)

// SourceProvider 提供待抓取的来源列表
type SourceProvider interface {
	ResetSources(ctx context.Context) error
	GetAll(ctx context.Context, language string) ([]model.Source, error)
}

// StorySink 接收抓取到的故事
type StorySink interface {
	InsertStories(ctx context.Context, stories []model.Story) error
}

// SearchIndexer 把新故事推进检索索引
type SearchIndexer interface {
	AddStories(ctx context.Context, stories []model.Story) error
}

// Scraper 对全部来源做增量抓取：RSS 发现新文章，逐篇解析后入库并进索引
type Scraper struct {
	sources     SourceProvider
	stories     StorySink
	search      SearchIndexer
	scrapedURLs *ScrapedURLService
	parser      *Parser
	feedParser  *gofeed.Parser
	concurrency int
}

func NewScraper(
	sources SourceProvider,
	stories StorySink,
	search SearchIndexer,
	scrapedURLs *ScrapedURLService,
	parser *Parser,
) *Scraper {
	feedParser := gofeed.NewParser()
	feedParser.UserAgent = userAgent
	return &Scraper{
		sources:     sources,
		stories:     stories,
		search:      search,
		scrapedURLs: scrapedURLs,
		parser:      parser,
		feedParser:  feedParser,
		concurrency: defaultConcurrency,
	}
}

// Run 抓取某语言下的全部来源。
// 先重载来源列表保证改动生效，来源之间有界并行，单个来源失败不影响其他来源。
func (s *Scraper) Run(ctx context.Context, language string) error {
	if err := s.sources.ResetSources(ctx); err != nil {
		log.Printf("⚠️  重载来源列表失败: %v", err)
	}
	sources, err := s.sources.GetAll(ctx, language)
	if err != nil {
		return err
	}

	semaphore := make(chan struct{}, s.concurrency)
	var waitGroup sync.WaitGroup
	for i := range sources {
		source := sources[i]
		waitGroup.Add(1)
		semaphore <- struct{}{}
		go func() {
			defer waitGroup.Done()
			defer func() { <-semaphore }()
			if err := s.scrapeSource(ctx, &source); err != nil {
				log.Printf("⚠️  抓取来源 %s 失败: %v", source.Name, err)
			}
		}()
	}
	waitGroup.Wait()
	return nil
}

// scrapeSource 抓取单个来源：RSS 里没抓过的条目逐篇解析，太旧的丢弃
func (s *Scraper) scrapeSource(ctx context.Context, source *model.Source) error {
	scrapedURLs, err := s.scrapedURLs.GetURLs(ctx, source.Name)
	if err != nil {
		return err
	}
	scraped := make(map[string]bool, len(scrapedURLs))
	for _, url := range scrapedURLs {
		scraped[url] = true
	}

	feed, err := s.feedParser.ParseURLWithContext(source.RSSFeed, ctx)
	if err != nil {
		return err
	}

	oldest := time.Now().AddDate(0, 0, -maxStoryAgeDays)
	var stories []model.Story
	for _, item := range feed.Items {
		articleURL := item.Link
		if articleURL == "" && item.GUID != "" {
			articleURL = item.GUID
		}
		if articleURL == "" || scraped[articleURL] {
			continue
		}
		story, err := s.parser.ParseStory(ctx, source, articleURL, item)
		if err != nil {
			log.Printf("⚠️  解析文章 %s 失败: %v", articleURL, err)
			continue
		}
		scraped[story.URL] = true
		if story.PublishedAt.Before(oldest) {
			continue
		}
		stories = append(stories, *story)
	}
	log.Printf("✅ 来源 %s 抓取到 %d 篇新故事", source.Name, len(stories))
	if len(stories) == 0 {
		return nil
	}

	if err := s.stories.InsertStories(ctx, stories); err != nil {
		return err
	}
	records := make([]model.ScrapedURL, 0, len(stories))
	for _, story := range stories {
		records = append(records, model.ScrapedURL{
			SourceName:  source.Name,
			URL:         story.URL,
			PublishedAt: story.PublishedAt,
		})
	}
	if err := s.scrapedURLs.Add(ctx, records); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.AddStories(ctx, stories); err != nil {
			log.Printf("⚠️  新故事进索引失败: %v", err)
		}
	}
	return nil
}
