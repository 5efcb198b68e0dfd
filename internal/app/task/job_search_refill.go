/*
 * @Description: 定时回填搜索索引的任务
 * @Author: 安知鱼
 * @Date: 2025-12-10 14:27:40
 * @LastEditTime: 2025-12-10 14:27:40
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"log"

	"github.com/anzhiyu-c/anheyu-news/pkg/service/search"
)

// SearchRefillJob 清空 Solr 索引并用近期故事回填，
// 保证索引里的特征值（口碑、反馈计数）跟上数据库。
type SearchRefillJob struct {
	searchSvc *search.Service
}

func NewSearchRefillJob(searchSvc *search.Service) *SearchRefillJob {
	return &SearchRefillJob{searchSvc: searchSvc}
}

func (j *SearchRefillJob) Run() {
	if err := j.searchSvc.Reset(context.Background()); err != nil {
		log.Printf("任务 '%s' 在执行业务逻辑时捕获到错误: %v", j.Name(), err)
		return
	}
	log.Printf("任务 '%s' 业务逻辑执行完毕，索引已回填。", j.Name())
}

func (j *SearchRefillJob) Name() string {
	return "SearchRefillJob"
}
