/*
 * @Description: 文章页面解析：抽取字段、清洗 HTML、补全 NLP 标注
 * @Author: 安知鱼
 * @Date: 2025-12-09 11:02:30
 * @LastEditTime: 2025-12-09 15:10:22
 * @LastEditors: 安知鱼
 */
package scraper

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/ml"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	userAgent        = "anheyu-news-scraper/1.0"
	summaryMaxLength = 280
)

// 各站点常见的发布时间格式，按顺序尝试
var publishedAtLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Annotator 对正文做关键词与实体抽取
type Annotator interface {
	ExtractStoryAnnotations(ctx context.Context, title, body, language string) (*ml.StoryAnnotations, error)
	Available() bool
}

// AuthorFinder 按名称查找已入库的作者
type AuthorFinder interface {
	GetByName(ctx context.Context, name string) (*model.Author, error)
}

// Parser 把一个文章页面解析成装配完整的 Story
type Parser struct {
	annotator  Annotator
	authors    AuthorFinder
	sanitizer  *bluemonday.Policy
	httpClient *http.Client
}

func NewParser(annotator Annotator, authors AuthorFinder) *Parser {
	return &Parser{
		annotator: annotator,
		authors:   authors,
		sanitizer: bluemonday.StrictPolicy(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ParseStory 抓取并解析一篇文章。RSS 条目作为页面抽取失败时的兜底。
func (p *Parser) ParseStory(ctx context.Context, source *model.Source, articleURL string, item *gofeed.Item) (*model.Story, error) {
	doc, err := p.fetchDocument(ctx, articleURL)
	if err != nil {
		return nil, err
	}
	rules := RulesFor(source.Name)

	title := rules.Title(doc)
	if title == "" && item != nil {
		title = p.sanitizer.Sanitize(item.Title)
	}
	description := rules.Description(doc)
	if description == "" && item != nil {
		description = p.sanitizer.Sanitize(item.Description)
	}
	body := p.sanitizer.Sanitize(rules.Body(doc))
	if description == "" {
		description = truncate(body, summaryMaxLength)
	}

	story := &model.Story{
		StoryID:     uuid.NewString(),
		Title:       title,
		Body:        body,
		Summary:     description,
		Source:      source,
		Language:    source.Language,
		PublishedAt: p.parsePublishedAt(rules.PublishedAt(doc), item),
		URL:         articleURL,
	}
	if image := rules.Image(doc); image != "" {
		story.Images = []string{image}
	}
	story.Author = p.resolveAuthor(ctx, source, rules.Author(doc))

	if p.annotator != nil && p.annotator.Available() {
		annotations, err := p.annotator.ExtractStoryAnnotations(ctx, title, body, source.Language)
		if err != nil {
			return nil, fmt.Errorf("抽取文章标注失败: %w", err)
		}
		story.Keywords = mergeKeywords(annotations.Keywords)
		story.Entities = mergeEntities(annotations.Entities)
	}
	return story, nil
}

func (p *Parser) fetchDocument(ctx context.Context, articleURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, fmt.Errorf("构建文章请求失败: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("抓取文章 %s 失败: %w", articleURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("抓取文章 %s 失败: 站点返回 %d", articleURL, resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析文章页面失败: %w", err)
	}
	return doc, nil
}

// resolveAuthor 优先复用库里已有的作者；署名缺失时把来源本身当作者
func (p *Parser) resolveAuthor(ctx context.Context, source *model.Source, authorName string) *model.Author {
	if authorName == "" {
		authorName = source.Name
	}
	if p.authors != nil {
		if existing, err := p.authors.GetByName(ctx, authorName); err == nil {
			return existing
		}
	}
	return &model.Author{
		AuthorID:    uuid.NewString(),
		Name:        authorName,
		Affiliation: []model.Source{*source},
	}
}

// parsePublishedAt 解析发布时间，页面值不可解析时回退到 RSS 条目，再回退到当前时间
func (p *Parser) parsePublishedAt(raw string, item *gofeed.Item) time.Time {
	for _, layout := range publishedAtLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	if item != nil && item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return time.Now()
}

// mergeKeywords 按词面去重并合并词频
func mergeKeywords(keywords []model.KeywordInStory) []model.KeywordInStory {
	index := make(map[string]int)
	var merged []model.KeywordInStory
	for _, keyword := range keywords {
		if at, ok := index[keyword.Keyword.Text]; ok {
			merged[at].Frequency += keyword.Frequency
			continue
		}
		index[keyword.Keyword.Text] = len(merged)
		merged = append(merged, keyword)
	}
	return merged
}

// mergeEntities 按 links 去重并合并词频
func mergeEntities(entities []model.EntityInStory) []model.EntityInStory {
	index := make(map[string]int)
	var merged []model.EntityInStory
	for _, entity := range entities {
		if at, ok := index[entity.Entity.Links]; ok {
			merged[at].Frequency += entity.Frequency
			continue
		}
		index[entity.Entity.Links] = len(merged)
		merged = append(merged, entity)
	}
	return merged
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
