/*
 * @Description: 偏好台账处理器
 * @Author: 安知鱼
 * @Date: 2025-12-10 11:20:44
 * @LastEditTime: 2025-12-10 11:20:44
 * @LastEditors: 安知鱼
 */
package favorite

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/favorite"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	favoriteService *favorite.Service
}

func NewHandler(favoriteService *favorite.Service) *Handler {
	return &Handler{favoriteService: favoriteService}
}

type updateRequest struct {
	Identifier    string  `json:"identifier" binding:"required"`
	Value         string  `json:"value"`
	IsFavorite    bool    `json:"is_favorite"`
	IsDeleted     bool    `json:"is_deleted"`
	IsRecommended bool    `json:"is_recommended"`
	IsAdded       bool    `json:"is_added"`
	RelevancyRate float64 `json:"relevancy_rate"`
	Language      string  `json:"language"`
}

// Update 用户显式调整某类目下的一条偏好：置顶、移除或确认推荐
func (h *Handler) Update(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	collection, err := favorite.CollectionFor(c.Param("category"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "未知的偏好类目")
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	if req.Language == "" {
		req.Language = claims.Language
	}
	item := model.Favorite{
		UserID:        claims.UserID,
		Identifier:    req.Identifier,
		Value:         req.Value,
		IsFavorite:    req.IsFavorite,
		IsDeleted:     req.IsDeleted,
		IsRecommended: req.IsRecommended,
		IsAdded:       req.IsAdded,
		RelevancyRate: req.RelevancyRate,
		Language:      req.Language,
	}
	if err := h.favoriteService.UpdateFromUser(c.Request.Context(), item, collection); err != nil {
		response.Fail(c, http.StatusInternalServerError, "更新偏好失败: "+err.Error())
		return
	}
	response.Success(c, nil, "更新成功")
}

// Favorites 返回当前用户某类目下置顶的偏好
func (h *Handler) Favorites(c *gin.Context) {
	h.list(c, h.favoriteService.GetFavorites)
}

// Hated 返回当前用户某类目下移除过的偏好
func (h *Handler) Hated(c *gin.Context) {
	h.list(c, h.favoriteService.GetHated)
}

func (h *Handler) list(c *gin.Context, getter favorite.ItemGetter) {
	claims := middleware.CurrentClaims(c)
	collection, err := favorite.CollectionFor(c.Param("category"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "未知的偏好类目")
		return
	}
	language := c.DefaultQuery("language", claims.Language)
	items, err := getter(c.Request.Context(), claims.UserID, collection, constant.FavoriteItemCount, language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "查询偏好失败: "+err.Error())
		return
	}
	response.Success(c, items, "获取成功")
}

// Remove 清空当前用户某类目下的全部台账
func (h *Handler) Remove(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	collection, err := favorite.CollectionFor(c.Param("category"))
	if err != nil {
		if errors.Is(err, constant.ErrBadRequest) {
			response.Fail(c, http.StatusBadRequest, "未知的偏好类目")
			return
		}
		response.Fail(c, http.StatusInternalServerError, err.Error())
		return
	}
	removed, err := h.favoriteService.RemoveOfUser(c.Request.Context(), claims.UserID, collection)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "清空偏好失败: "+err.Error())
		return
	}
	response.Success(c, gin.H{"removed": removed}, "清空成功")
}
