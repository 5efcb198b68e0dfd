/*
 * @Description: 故事处理器：公共列表、个性化推荐、单篇详情
 * @Author: 安知鱼
 * @Date: 2025-12-10 10:52:33
 * @LastEditTime: 2025-12-10 10:52:33
 * @LastEditors: 安知鱼
 */
package story

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/story"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storyService *story.Service
}

func NewHandler(storyService *story.Service) *Handler {
	return &Handler{storyService: storyService}
}

// PublicStories 返回公共新闻列表：近一天、每来源一篇
func (h *Handler) PublicStories(c *gin.Context) {
	language := c.DefaultQuery("language", "en")
	stories, err := h.storyService.GetPublicStories(c.Request.Context(), language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取新闻列表失败: "+err.Error())
		return
	}
	response.Success(c, stories, "获取成功")
}

// RecommendedStories 返回当前用户的个性化推荐，游客退回公共列表
func (h *Handler) RecommendedStories(c *gin.Context) {
	language := c.Query("language")
	userID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		userID = claims.UserID
		if language == "" {
			language = claims.Language
		}
	}
	if language == "" {
		language = "en"
	}
	stories, err := h.storyService.GetRecommendedStories(c.Request.Context(), userID, language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取推荐列表失败: "+err.Error())
		return
	}
	response.Success(c, stories, "获取成功")
}

// Story 返回装配完整的单篇故事
func (h *Handler) Story(c *gin.Context) {
	storyID := c.Param("story_id")
	found, err := h.storyService.GetByID(c.Request.Context(), storyID)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, "故事不存在")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "获取故事失败: "+err.Error())
		return
	}
	response.Success(c, found, "获取成功")
}
