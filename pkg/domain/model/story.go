/*
 * @Description: 新闻故事的领域模型及各形态之间的转换
 * @Author: 安知鱼
 * @Date: 2025-09-03 10:20:11
 * @LastEditTime: 2025-11-02 16:44:30
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Story 是完整装配后的新闻故事（Source/Author/实体/关键词均为完整对象）。
// 它只存在于内存里，入库时转换为 StoryInDB，进索引时转换为 StoryInSolr。
type Story struct {
	StoryID     string           `json:"story_id"`
	Title       string           `json:"title"`
	Body        string           `json:"body"`
	Summary     string           `json:"summary"`
	Source      *Source          `json:"source,omitempty"`
	Author      *Author          `json:"author,omitempty"`
	Entities    []EntityInStory  `json:"entities,omitempty"`
	Keywords    []KeywordInStory `json:"keywords,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Language    string           `json:"language"`
	PublishedAt time.Time        `json:"published_at"`
	URL         string           `json:"url"`

	// 全站维度的互动计数，由反馈引擎原子累加
	ReadCount    int `json:"read_count"`
	SharedCount  int `json:"shared_count"`
	AngryCount   int `json:"angry_count"`
	CryCount     int `json:"cry_count"`
	NeutralCount int `json:"neutral_count"`
	SmileCount   int `json:"smile_count"`
	HappyCount   int `json:"happy_count"`
}

// StoryInDB 是 Story 的持久化形态：关联对象退化为 id/标识，装配时再批量回填。
type StoryInDB struct {
	StoryID     string             `bson:"story_id" json:"story_id"`
	Title       string             `bson:"title" json:"title"`
	Body        string             `bson:"body" json:"body"`
	Summary     string             `bson:"summary" json:"summary"`
	SourceID    string             `bson:"source_id" json:"source_id"`
	AuthorID    string             `bson:"author_id" json:"author_id"`
	Entities    []EntityInStoryDB  `bson:"entities" json:"entities"`
	Keywords    []KeywordInStoryDB `bson:"keywords" json:"keywords"`
	Images      []string           `bson:"images" json:"images"`
	Language    string             `bson:"language" json:"language"`
	PublishedAt time.Time          `bson:"published_at" json:"published_at"`
	URL         string             `bson:"url" json:"url"`

	ReadCount    int `bson:"read_count" json:"read_count"`
	SharedCount  int `bson:"shared_count" json:"shared_count"`
	AngryCount   int `bson:"angry_count" json:"angry_count"`
	CryCount     int `bson:"cry_count" json:"cry_count"`
	NeutralCount int `bson:"neutral_count" json:"neutral_count"`
	SmileCount   int `bson:"smile_count" json:"smile_count"`
	HappyCount   int `bson:"happy_count" json:"happy_count"`
}

// ShortStory 是对前端输出的精简形态
type ShortStory struct {
	StoryID     string    `json:"story_id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Author      string    `json:"author,omitempty"`
	AuthorID    string    `json:"author_id,omitempty"`
	Source      string    `json:"source,omitempty"`
	SourceID    string    `json:"source_id,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
	Entities    []string  `json:"entities,omitempty"`
	EntityLinks []string  `json:"entity_links,omitempty"`
	URL         string    `json:"url"`
	Image       string    `json:"image,omitempty"`
	Language    string    `json:"language,omitempty"`
}

// ConvertStoryToStoryInDB 把装配形态压平成入库形态
func ConvertStoryToStoryInDB(story *Story) *StoryInDB {
	inDB := &StoryInDB{
		StoryID:      story.StoryID,
		Title:        story.Title,
		Body:         story.Body,
		Summary:      story.Summary,
		Images:       story.Images,
		Language:     story.Language,
		PublishedAt:  story.PublishedAt,
		URL:          story.URL,
		ReadCount:    story.ReadCount,
		SharedCount:  story.SharedCount,
		AngryCount:   story.AngryCount,
		CryCount:     story.CryCount,
		NeutralCount: story.NeutralCount,
		SmileCount:   story.SmileCount,
		HappyCount:   story.HappyCount,
	}
	if story.Source != nil {
		inDB.SourceID = story.Source.SourceID
	}
	if story.Author != nil {
		inDB.AuthorID = story.Author.AuthorID
	}
	for _, k := range story.Keywords {
		inDB.Keywords = append(inDB.Keywords, KeywordInStoryDB{Text: k.Keyword.Text, Frequency: k.Frequency})
	}
	for _, e := range story.Entities {
		inDB.Entities = append(inDB.Entities, EntityInStoryDB{Links: e.Entity.Links, Frequency: e.Frequency})
	}
	return inDB
}

// ConvertStoryToShortStory 把装配形态压平成前端形态
func ConvertStoryToShortStory(story *Story) ShortStory {
	short := ShortStory{
		StoryID:     story.StoryID,
		Title:       story.Title,
		Summary:     story.Summary,
		PublishedAt: story.PublishedAt,
		URL:         story.URL,
		Language:    story.Language,
	}
	if story.Source != nil {
		short.Source = story.Source.Name
		short.SourceID = story.Source.SourceID
	}
	if story.Author != nil {
		short.Author = story.Author.Name
		short.AuthorID = story.Author.AuthorID
	}
	if len(story.Images) > 0 {
		short.Image = story.Images[0]
	}
	for _, k := range story.Keywords {
		short.Keywords = append(short.Keywords, k.Keyword.Text)
	}
	for _, e := range story.Entities {
		short.Entities = append(short.Entities, e.Entity.Text)
		short.EntityLinks = append(short.EntityLinks, e.Entity.Links)
	}
	return short
}
