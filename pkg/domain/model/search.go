/*
 * @Description: 搜索请求与 Solr 文档模型
 * @Author: 安知鱼
 * @Date: 2025-09-05 09:31:27
 * @LastEditTime: 2025-12-12 15:10:08
 * @LastEditors: 安知鱼
 */
package model

import "time"

// 搜索词之间的布尔连接符编码
const (
	SearchOperatorAnd = 0
	SearchOperatorOr  = 1
)

// LtrParam 是 LTR 查询里的一个 name=value 参数（如 efi.querytext）
type LtrParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LtrParams 描述 Learning-to-Rank 的查询增强配置。
// ModelName 为空时不做 LTR 增强，查询退化为普通全文检索。
type LtrParams struct {
	ModelName      string     `json:"model_name"`
	RequestHandler string     `json:"request_handler"`
	Params         []LtrParam `json:"params"`
	Fields         []string   `json:"fields"`
}

// NewLtrParams 返回带默认值的 LTR 配置
func NewLtrParams() *LtrParams {
	return &LtrParams{
		RequestHandler: "query",
		Params:         []LtrParam{{Key: "efi.querytext", Value: "*"}},
		Fields:         []string{"*", "score", "[features]"},
	}
}

// SearchQuery 是抽象搜索请求，由查询翻译器转换为 Solr 原生查询
type SearchQuery struct {
	Terms          string     `json:"terms"`
	UserID         string     `json:"user_id,omitempty"`
	Count          int        `json:"count"`
	StoryIDList    []string   `json:"story_id_list,omitempty"` // 显式包含的 StoryId
	NotIDList      []string   `json:"not_id_list,omitempty"`   // 显式排除的 StoryId
	Language       string     `json:"language,omitempty"`
	StartDate      int        `json:"start_date"` // 距今天数，窗口起点
	EndDate        int        `json:"end_date"`   // 距今天数，窗口终点
	SourceNames    []string   `json:"source_names,omitempty"`
	AuthorNames    []string   `json:"author_names,omitempty"`
	LearnToRank    *LtrParams `json:"learn_to_rank_params,omitempty"`
	SearchOperator int        `json:"search_operator"`
	Grouped        string     `json:"grouped"` // 按该字段分组去重，空串表示不分组
	Sort           string     `json:"sort"`
}

// NewSearchQuery 返回带默认值的搜索请求：
// 匹配全部、取 24 条、近一天、按 Source 分组、按发布时间倒序。
func NewSearchQuery() *SearchQuery {
	return &SearchQuery{
		Terms:     "*",
		Count:     24,
		StartDate: 1,
		EndDate:   0,
		Grouped:   "Source",
		Sort:      "PublishedAt desc",
	}
}

// StoryInSolr 是推送进 Solr 索引的文档形态
type StoryInSolr struct {
	ID          string   `json:"id"`
	StoryID     string   `json:"StoryId"`
	Title       string   `json:"Title"`
	Body        string   `json:"Body"`
	Summary     string   `json:"Summary,omitempty"`
	PublishedAt string   `json:"PublishedAt,omitempty"`
	Author      string   `json:"Author,omitempty"`
	AuthorID    string   `json:"AuthorId,omitempty"`
	Source      string   `json:"Source,omitempty"`
	SourceID    string   `json:"SourceId,omitempty"`
	StoryURL    string   `json:"StoryUrl"`
	Images      []string `json:"Images,omitempty"`
	Language    string   `json:"Language,omitempty"`
	Keywords    []string `json:"Keywords,omitempty"`
	Entities    []string `json:"Entities,omitempty"`
	EntityLinks []string `json:"EntityLinks,omitempty"`
}

// ConvertStoryToStoryInSolr 把装配形态转换为索引文档
func ConvertStoryToStoryInSolr(story *Story) *StoryInSolr {
	doc := &StoryInSolr{
		ID:          story.StoryID,
		StoryID:     story.StoryID,
		Title:       story.Title,
		Body:        story.Body,
		Summary:     story.Summary,
		PublishedAt: story.PublishedAt.UTC().Format(time.RFC3339),
		StoryURL:    story.URL,
		Images:      story.Images,
		Language:    story.Language,
	}
	if story.Author != nil {
		doc.Author = story.Author.Name
		doc.AuthorID = story.Author.AuthorID
	}
	if story.Source != nil {
		doc.Source = story.Source.Name
		doc.SourceID = story.Source.SourceID
	}
	for _, k := range story.Keywords {
		doc.Keywords = append(doc.Keywords, k.Keyword.Text)
	}
	for _, e := range story.Entities {
		doc.Entities = append(doc.Entities, e.Entity.Text)
		doc.EntityLinks = append(doc.EntityLinks, e.Entity.Links)
	}
	return doc
}

// SolrDocument 是 Solr 返回的原始文档。
// 按 Solr 的 multiValued 约定，标量字段也会被包装成单元素数组，
// 所以任何读取都必须先做防御性判空，缺字段不允许导致崩溃。
type SolrDocument map[string]interface{}

// First 返回字段数组的第一个字符串元素，字段缺失或为空数组时返回空串
func (d SolrDocument) First(field string) string {
	value, ok := d[field]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case []interface{}:
		if len(v) == 0 {
			return ""
		}
		if s, ok := v[0].(string); ok {
			return s
		}
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case string:
		return v
	}
	return ""
}

// Strings 返回字段的全部字符串元素，字段缺失时返回 nil
func (d SolrDocument) Strings(field string) []string {
	value, ok := d[field]
	if !ok {
		return nil
	}
	switch v := value.(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

// SolrStoryToShortStory 把 Solr 原始文档转换为前端形态
func SolrStoryToShortStory(doc SolrDocument) ShortStory {
	short := ShortStory{
		StoryID:  doc.First("StoryId"),
		Title:    doc.First("Title"),
		Summary:  doc.First("Summary"),
		Author:   doc.First("Author"),
		AuthorID: doc.First("AuthorId"),
		Source:   doc.First("Source"),
		SourceID: doc.First("SourceId"),
		URL:      doc.First("StoryUrl"),
		Image:    doc.First("Images"),
		Language: doc.First("Language"),
	}
	short.Keywords = doc.Strings("Keywords")
	short.Entities = doc.Strings("Entities")
	short.EntityLinks = doc.Strings("EntityLinks")
	if published := doc.First("PublishedAt"); published != "" {
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			short.PublishedAt = t
		}
	}
	return short
}
