/*
 * @Description: 搜索处理器
 * @Author: 安知鱼
 * @Date: 2025-12-10 10:40:15
 * @LastEditTime: 2025-12-10 10:40:15
 * @LastEditors: 安知鱼
 */
package search

import (
	"net/http"
	"strconv"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/search"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	searchService *search.Service
}

func NewHandler(searchService *search.Service) *Handler {
	return &Handler{searchService: searchService}
}

// Search 简单搜索接口：关键词 + 可选过滤，无个性化
func (h *Handler) Search(c *gin.Context) {
	query := model.NewSearchQuery()
	if terms := c.Query("q"); terms != "" {
		query.Terms = terms
	}
	if language := c.Query("language"); language != "" {
		query.Language = language
	}
	if countStr := c.Query("count"); countStr != "" {
		if count, err := strconv.Atoi(countStr); err == nil && count > 0 && count <= 100 {
			query.Count = count
		}
	}
	if daysStr := c.Query("days"); daysStr != "" {
		if days, err := strconv.Atoi(daysStr); err == nil && days > 0 {
			query.StartDate = days
		}
	}

	stories, err := h.searchService.SimpleSearch(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "搜索失败: "+err.Error())
		return
	}
	response.Success(c, stories, "搜索成功")
}

// PersonalizedSearch 个性化搜索：完整查询走请求体，排序交给用户的 LTR 模型
func (h *Handler) PersonalizedSearch(c *gin.Context) {
	query := model.NewSearchQuery()
	if err := c.ShouldBindJSON(query); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	if query.Terms == "" {
		query.Terms = "*"
	}

	userID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		userID = claims.UserID
		if query.Language == "" {
			query.Language = claims.Language
		}
	}

	stories, err := h.searchService.SearchWithPersonalization(c.Request.Context(), query, userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "搜索失败: "+err.Error())
		return
	}
	response.Success(c, stories, "搜索成功")
}

// Reset 重建检索索引并回填文档，管理接口
func (h *Handler) Reset(c *gin.Context) {
	if err := h.searchService.Reset(c.Request.Context()); err != nil {
		response.Fail(c, http.StatusInternalServerError, "重置索引失败: "+err.Error())
		return
	}
	response.Success(c, nil, "索引已重建")
}
