/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-05 10:11:09
 * @LastEditTime: 2025-09-05 10:11:09
 * @LastEditors: 安知鱼
 */
package model

import "time"

// UserFeedback 是一次用户交互产生的反馈事件，写入后不可变
type UserFeedback struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	StoryID          string    `bson:"story_id" json:"story_id"`
	SearchTerm       string    `bson:"search_term" json:"search_term"`
	FeedbackDatetime time.Time `bson:"feedback_datetime" json:"feedback_datetime"`
	FeedbackType     int       `bson:"feedback_type" json:"feedback_type"`
}

// ReadStory 是一条阅读历史，只追加，仅在滚动窗口内被查询
type ReadStory struct {
	UserID   string    `bson:"user_id" json:"user_id"`
	StoryID  string    `bson:"story_id" json:"story_id"`
	ReadTime time.Time `bson:"read_time" json:"read_time"`
}
