/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-03 10:16:05
 * @LastEditTime: 2025-09-03 10:16:05
 * @LastEditors: 安知鱼
 */
package model

// Keyword 是 NLP 服务抽取的关键词
type Keyword struct {
	Text     string `bson:"text" json:"text"`
	Language string `bson:"language,omitempty" json:"language,omitempty"`
}

// KeywordInStory 表示关键词在某篇文章中的出现情况
type KeywordInStory struct {
	Keyword   Keyword `bson:"keyword" json:"keyword"`
	Frequency int     `bson:"frequency" json:"frequency"`
}

// KeywordInStoryDB 是入库形态，只保留关键词文本和词频
type KeywordInStoryDB struct {
	Text      string `bson:"text" json:"text"`
	Frequency int    `bson:"frequency" json:"frequency"`
}
