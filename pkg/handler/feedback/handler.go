/*
 * @Description: 反馈处理器：接收反馈事件、导出训练数据
 * @Author: 安知鱼
 * @Date: 2025-12-10 11:05:27
 * @LastEditTime: 2025-12-10 11:05:27
 * @LastEditors: 安知鱼
 */
package feedback

import (
	"net/http"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/feedback"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	feedbackService *feedback.Service
}

func NewHandler(feedbackService *feedback.Service) *Handler {
	return &Handler{feedbackService: feedbackService}
}

type feedbackRequest struct {
	StoryID      string `json:"story_id" binding:"required"`
	FeedbackType int    `json:"feedback_type"`
	SearchTerm   string `json:"search_term"`
}

// Received 接收一次用户反馈并触发计数与偏好传播
func (h *Handler) Received(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	event := model.UserFeedback{
		UserID:       claims.UserID,
		StoryID:      req.StoryID,
		FeedbackType: req.FeedbackType,
		SearchTerm:   req.SearchTerm,
	}
	if err := h.feedbackService.Received(c.Request.Context(), event); err != nil {
		response.Fail(c, http.StatusInternalServerError, "处理反馈失败: "+err.Error())
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, nil, "反馈已记录")
}

// TrainingData 导出某用户（或共享模型）的训练数据，供 ML 服务拉取
func (h *Handler) TrainingData(c *gin.Context) {
	userID := c.Param("user_id")
	records, err := h.feedbackService.GetTrainingData(c.Request.Context(), userID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "导出训练数据失败: "+err.Error())
		return
	}
	response.Success(c, records, "导出成功")
}
