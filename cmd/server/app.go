/*
 * @Description: 应用组装：配置、基础设施、服务、路由与定时任务
 * @Author: 安知鱼
 * @Date: 2025-12-10 15:10:27
 * @LastEditTime: 2025-12-10 16:48:13
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/internal/app/task"
	"github.com/anzhiyu-c/anheyu-news/internal/infra/persistence/database"
	"github.com/anzhiyu-c/anheyu-news/internal/infra/persistence/mongodb"
	"github.com/anzhiyu-c/anheyu-news/internal/infra/router"
	"github.com/anzhiyu-c/anheyu-news/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-news/pkg/config"
	auth_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/auth"
	favorite_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/favorite"
	feedback_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/feedback"
	personalization_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/personalization"
	search_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/search"
	story_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/story"
	"github.com/anzhiyu-c/anheyu-news/pkg/scraper"
	favorite_service "github.com/anzhiyu-c/anheyu-news/pkg/service/favorite"
	feedback_service "github.com/anzhiyu-c/anheyu-news/pkg/service/feedback"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/ml"
	personalization_service "github.com/anzhiyu-c/anheyu-news/pkg/service/personalization"
	readstory_service "github.com/anzhiyu-c/anheyu-news/pkg/service/readstory"
	search_service "github.com/anzhiyu-c/anheyu-news/pkg/service/search"
	story_service "github.com/anzhiyu-c/anheyu-news/pkg/service/story"
	user_service "github.com/anzhiyu-c/anheyu-news/pkg/service/user"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/utility"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	scheduler *task.Scheduler
}

// NewApp 按依赖顺序组装整个应用，返回 App 和资源清理函数。
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	// --- Phase 2: 初始化基础设施 ---
	db, closeMongo, err := database.NewMongoDatabase(context.Background(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("MongoDB 初始化失败: %w", err)
	}

	// Redis 未配置时返回 nil，公共列表降级为直查数据库
	redisClient, err := database.NewRedisClient(context.Background(), cfg)
	if err != nil {
		closeMongo()
		return nil, nil, fmt.Errorf("redis 初始化失败: %w", err)
	}

	cleanup := func() {
		log.Println("执行清理操作：关闭数据库连接...")
		closeMongo()
		if redisClient != nil {
			log.Println("关闭 Redis 连接...")
			redisClient.Close()
		}
	}

	store := mongodb.NewStore(db)

	// --- Phase 3: 初始化服务层 ---
	mlClient := ml.NewClient(cfg)
	tokenSvc := auth.NewTokenService(cfg)

	sourceSvc := story_service.NewSourceService(store)
	authorSvc := story_service.NewAuthorService(store)
	keywordSvc := story_service.NewKeywordService(store)
	entitySvc := story_service.NewEntityService(store)
	readStorySvc := readstory_service.NewService(store)
	storySvc := story_service.NewService(store, redisClient, sourceSvc, authorSvc, keywordSvc, entitySvc, mlClient, readStorySvc)

	userSvc := user_service.NewService(store)
	favoriteSvc := favorite_service.NewService(store)
	personalizationSvc := personalization_service.NewService(favoriteSvc)
	feedbackSvc := feedback_service.NewService(store, storySvc, favoriteSvc, storySvc, readStorySvc)

	solrClient := search_service.NewSolrClient(cfg)
	searchSvc := search_service.NewService(solrClient, store, mlClient, userSvc, readStorySvc, storySvc)

	parser := scraper.NewParser(mlClient, authorSvc)
	scrapedURLSvc := scraper.NewScrapedURLService(store)
	newsScraper := scraper.NewScraper(sourceSvc, storySvc, searchSvc, scrapedURLSvc, parser)

	emailSvc := utility.NewEmailService(cfg)

	// --- Phase 4: 初始化 HTTP 层 ---
	authMiddleware := middleware.NewMiddleware(tokenSvc)
	handlers := &router.Handlers{
		Auth:            auth_handler.NewHandler(userSvc, tokenSvc),
		Search:          search_handler.NewHandler(searchSvc),
		Story:           story_handler.NewHandler(storySvc),
		Feedback:        feedback_handler.NewHandler(feedbackSvc),
		Favorite:        favorite_handler.NewHandler(favoriteSvc),
		Personalization: personalization_handler.NewHandler(personalizationSvc),
	}
	engine := router.SetupRouter(cfg, authMiddleware, handlers)

	// --- Phase 5: 初始化定时任务 ---
	scheduler := task.NewScheduler(newsScraper, storySvc, searchSvc, userSvc, emailSvc)

	return &App{
		cfg:       cfg,
		engine:    engine,
		scheduler: scheduler,
	}, cleanup, nil
}

// Config 暴露配置，便于上层按需读取
func (a *App) Config() *config.Config {
	return a.cfg
}

// Engine 暴露 gin 引擎，测试时可直接驱动
func (a *App) Engine() *gin.Engine {
	return a.engine
}

// Run 注册并启动定时任务，然后启动 HTTP 服务（阻塞）。
func (a *App) Run() error {
	a.scheduler.RegisterJobs()
	a.scheduler.Start()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

// Stop 优雅停机：先停调度器，数据库连接由 cleanup 关闭。
func (a *App) Stop() {
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
}
