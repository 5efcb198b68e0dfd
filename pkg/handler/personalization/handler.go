/*
 * @Description: 个性化配置页处理器
 * @Author: 安知鱼
 * @Date: 2025-12-10 11:31:18
 * @LastEditTime: 2025-12-10 11:31:18
 * @LastEditors: 安知鱼
 */
package personalization

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/personalization"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	personalizationService *personalization.Service
}

func NewHandler(personalizationService *personalization.Service) *Handler {
	return &Handler{personalizationService: personalizationService}
}

// Get 一次拉取个性化页面的全部数据：系统推荐、用户收藏、用户拉黑
func (h *Handler) Get(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	language := c.DefaultQuery("language", claims.Language)
	page, err := h.personalizationService.Get(c.Request.Context(), claims.UserID, language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "拉取个性化数据失败: "+err.Error())
		return
	}
	response.Success(c, page, "获取成功")
}
