/*
 * @Description: 定时任务调度器
 * @Author: 安知鱼
 * @Date: 2025-12-10 14:36:21
 * @LastEditTime: 2025-12-10 14:36:21
 * @LastEditors: 安知鱼
 */
package task

import (
	"log/slog"
	"os"

	"github.com/anzhiyu-c/anheyu-news/pkg/scraper"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/search"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/story"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/user"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/utility"

	"github.com/robfig/cron/v3"
)

// Scheduler 封装了 cron 实例和其依赖。
// 它是整个定时任务模块的核心协调者，负责任务的注册、启动和停止。
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	// 在这里注入所有任务可能需要的 service 依赖
	scraper   *scraper.Scraper
	storySvc  *story.Service
	searchSvc *search.Service
	userSvc   *user.Service
	emailSvc  utility.EmailService
}

// NewScheduler 是 Scheduler 的构造函数。
func NewScheduler(
	s *scraper.Scraper,
	storySvc *story.Service,
	searchSvc *search.Service,
	userSvc *user.Service,
	emailSvc utility.EmailService,
) *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	return &Scheduler{
		cron:      c,
		logger:    logger,
		scraper:   s,
		storySvc:  storySvc,
		searchSvc: searchSvc,
		userSvc:   userSvc,
		emailSvc:  emailSvc,
	}
}

// RegisterJobs 在调度器中注册所有定义好的定时任务。
func (s *Scheduler) RegisterJobs() {
	s.logger.Info("Registering all periodic jobs...")

	// --- 任务1: 每小时抓取全部来源 ---
	scrapeJob := NewScrapeSourcesJob(s.scraper)
	if _, err := s.cron.AddJob("0 10 * * * *", scrapeJob); err != nil {
		s.logger.Error("Failed to add 'ScrapeSourcesJob'", slog.Any("error", err))
		os.Exit(1)
	}
	s.logger.Info("-> Successfully registered 'ScrapeSourcesJob'", "schedule", "every hour at minute 10")

	// --- 任务2: 每天回填搜索索引 ---
	refillJob := NewSearchRefillJob(s.searchSvc)
	if _, err := s.cron.AddJob("0 0 2 * * *", refillJob); err != nil {
		s.logger.Error("Failed to add 'SearchRefillJob'", slog.Any("error", err))
		os.Exit(1)
	}
	s.logger.Info("-> Successfully registered 'SearchRefillJob'", "schedule", "every day at 2:00:00 AM")

	// --- 任务3: 每天清理过期故事 ---
	cleanupJob := NewOldStoriesCleanupJob(s.storySvc)
	if _, err := s.cron.AddJob("0 0 3 * * *", cleanupJob); err != nil {
		s.logger.Error("Failed to add 'OldStoriesCleanupJob'", slog.Any("error", err))
		os.Exit(1)
	}
	s.logger.Info("-> Successfully registered 'OldStoriesCleanupJob'", "schedule", "every day at 3:00:00 AM")

	// --- 任务4: 每天发送摘要邮件 ---
	if s.emailSvc != nil {
		digestJob := NewDailyDigestJob(s.userSvc, s.storySvc, s.emailSvc)
		if _, err := s.cron.AddJob("0 0 7 * * *", digestJob); err != nil {
			s.logger.Error("Failed to add 'DailyDigestJob'", slog.Any("error", err))
			os.Exit(1)
		}
		s.logger.Info("-> Successfully registered 'DailyDigestJob'", "schedule", "every day at 7:00:00 AM")
	}

	s.logger.Info("All periodic jobs registered.")
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
