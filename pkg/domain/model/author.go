/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-03 10:14:02
 * @LastEditTime: 2025-09-03 10:14:02
 * @LastEditors: 安知鱼
 */
package model

// Author 表示一位新闻作者
type Author struct {
	AuthorID    string   `bson:"author_id" json:"author_id"`
	Name        string   `bson:"name" json:"name"`
	// Affiliation 记录作者供稿过的来源
	Affiliation []Source `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
	Reputation  float64  `bson:"reputation" json:"reputation"`
}
