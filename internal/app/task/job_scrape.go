/*
 * @Description: 定时抓取各来源 RSS 的任务
 * @Author: 安知鱼
 * @Date: 2025-12-10 14:25:06
 * @LastEditTime: 2025-12-10 14:25:06
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"log"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/scraper"
)

// ScrapeSourcesJob 按语言依次抓取全部新闻来源
type ScrapeSourcesJob struct {
	scraper *scraper.Scraper
}

// NewScrapeSourcesJob 是任务的构造函数
func NewScrapeSourcesJob(s *scraper.Scraper) *ScrapeSourcesJob {
	return &ScrapeSourcesJob{scraper: s}
}

// Run 是 Job 接口要求实现的方法
func (j *ScrapeSourcesJob) Run() {
	ctx := context.Background()
	for _, language := range constant.SupportedLanguages {
		if err := j.scraper.Run(ctx, language); err != nil {
			// 单个语言失败不影响后续语言继续抓取
			log.Printf("任务 '%s' 抓取语言 %s 时捕获到错误: %v", j.Name(), language, err)
		}
	}
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *ScrapeSourcesJob) Name() string {
	return "ScrapeSourcesJob"
}
