/*
 * @Description: 定时清理过期故事的任务
 * @Author: 安知鱼
 * @Date: 2025-12-10 14:29:12
 * @LastEditTime: 2025-12-10 14:29:12
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"log"

	"github.com/anzhiyu-c/anheyu-news/pkg/service/story"
)

// OldStoriesCleanupJob 删除超过保留期的故事文档
type OldStoriesCleanupJob struct {
	storySvc *story.Service
}

func NewOldStoriesCleanupJob(storySvc *story.Service) *OldStoriesCleanupJob {
	return &OldStoriesCleanupJob{storySvc: storySvc}
}

func (j *OldStoriesCleanupJob) Run() {
	removed, err := j.storySvc.RemoveOldStories(context.Background())
	if err != nil {
		log.Printf("任务 '%s' 在执行业务逻辑时捕获到错误: %v", j.Name(), err)
		return
	}
	log.Printf("任务 '%s' 业务逻辑执行完毕，共清理了 %d 条记录。", j.Name(), removed)
}

func (j *OldStoriesCleanupJob) Name() string {
	return "OldStoriesCleanupJob"
}
