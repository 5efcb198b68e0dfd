/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-12-09 10:21:47
 * @LastEditTime: 2025-12-09 10:21:47
 * @LastEditors: 安知鱼
 */
package model

import "time"

// ScrapedURL 记录某来源已抓取过的文章地址，用于增量抓取去重
type ScrapedURL struct {
	SourceName  string    `bson:"source_name" json:"source_name"`
	URL         string    `bson:"url" json:"url"`
	PublishedAt time.Time `bson:"published_at" json:"published_at"`
}
