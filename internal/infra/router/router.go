/*
 * @Description: API 路由注册
 * @Author: 安知鱼
 * @Date: 2025-12-10 11:45:09
 * @LastEditTime: 2025-12-10 14:02:51
 * @LastEditors: 安知鱼
 */
package router

import (
	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/config"
	auth_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/auth"
	favorite_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/favorite"
	feedback_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/feedback"
	personalization_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/personalization"
	search_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/search"
	story_handler "github.com/anzhiyu-c/anheyu-news/pkg/handler/story"

	"github.com/gin-gonic/gin"
)

// Handlers 汇集路由需要的全部处理器
type Handlers struct {
	Auth            *auth_handler.Handler
	Search          *search_handler.Handler
	Story           *story_handler.Handler
	Feedback        *feedback_handler.Handler
	Favorite        *favorite_handler.Handler
	Personalization *personalization_handler.Handler
}

// SetupRouter 注册全部 API 路由：
// /api/public 下游客可访问，/api 其余路径需要登录。
func SetupRouter(cfg *config.Config, authMiddleware *middleware.Middleware, handlers *Handlers) *gin.Engine {
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.Use(middleware.Cors())

	api := engine.Group("/api")
	api.Use(middleware.RateLimit(120, 30))

	public := api.Group("/public")
	{
		public.POST("/register", handlers.Auth.Register)
		public.POST("/login", handlers.Auth.Login)
		public.GET("/stories", handlers.Story.PublicStories)
		public.GET("/stories/:story_id", handlers.Story.Story)
		public.GET("/search", handlers.Search.Search)
	}

	// 个性化读路径：登录与否都可访问，登录后结果带个性化
	optional := api.Group("")
	optional.Use(authMiddleware.JWTAuthOptional())
	{
		optional.GET("/recommended", handlers.Story.RecommendedStories)
		optional.POST("/search", handlers.Search.PersonalizedSearch)
	}

	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/profile", handlers.Auth.Profile)
		authenticated.PUT("/profile/language", handlers.Auth.UpdateLanguage)

		authenticated.POST("/feedback", handlers.Feedback.Received)

		authenticated.GET("/personalization", handlers.Personalization.Get)
		authenticated.GET("/favorites/:category", handlers.Favorite.Favorites)
		authenticated.GET("/favorites/:category/hated", handlers.Favorite.Hated)
		authenticated.PUT("/favorites/:category", handlers.Favorite.Update)
		authenticated.DELETE("/favorites/:category", handlers.Favorite.Remove)
	}

	// 内部接口：ML 服务拉训练数据、运维触发索引重建
	internal := api.Group("/internal")
	{
		internal.GET("/dataset/:user_id", handlers.Feedback.TrainingData)
		internal.POST("/search/reset", handlers.Search.Reset)
	}

	return engine
}
