/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-03 10:12:40
 * @LastEditTime: 2025-09-03 10:12:40
 * @LastEditors: 安知鱼
 */
package model

// Source 表示一个新闻来源（一个 RSS 源站点）
type Source struct {
	SourceID    string  `bson:"source_id" json:"source_id"`
	Name        string  `bson:"name" json:"name"`
	HomePageURL string  `bson:"home_page_url" json:"home_page_url"`
	RankInAlexa int     `bson:"rank_in_alexa" json:"rank_in_alexa"`
	Language    string  `bson:"language" json:"language"`
	RSSFeed     string  `bson:"rss_feed" json:"rss_feed"`
	// Reputation 是全站维度的声誉分，由反馈传播累加
	Reputation float64 `bson:"reputation" json:"reputation"`
}
