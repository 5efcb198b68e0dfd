/*
 * @Description: 账号处理器：注册、登录、个人信息
 * @Author: 安知鱼
 * @Date: 2025-12-10 10:12:08
 * @LastEditTime: 2025-12-10 10:12:08
 * @LastEditors: 安知鱼
 */
package auth

import (
	"errors"
	"net/http"

	"github.com/anzhiyu-c/anheyu-news/internal/app/middleware"
	pkgauth "github.com/anzhiyu-c/anheyu-news/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/user"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	userService *user.Service
	tokenSvc    *pkgauth.TokenService
}

func NewHandler(userService *user.Service, tokenSvc *pkgauth.TokenService) *Handler {
	return &Handler{
		userService: userService,
		tokenSvc:    tokenSvc,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname"`
	Language string `json:"language"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Language string `json:"language"`
}

// Register 注册新账号并直接签发令牌
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}
	newUser, err := h.userService.Register(c.Request.Context(), req.Email, req.Password, req.Nickname, req.Language)
	if err != nil {
		if errors.Is(err, constant.ErrEmailExists) {
			response.Fail(c, http.StatusConflict, "该邮箱已被注册")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "注册失败: "+err.Error())
		return
	}
	token, err := h.tokenSvc.GenerateToken(newUser.UserID, newUser.Email, newUser.Language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "签发令牌失败: "+err.Error())
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, tokenResponse{
		Token:    token,
		UserID:   newUser.UserID,
		Nickname: newUser.Nickname,
		Language: newUser.Language,
	}, "注册成功")
}

// Login 校验凭据并签发令牌
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	found, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "邮箱或密码不正确")
		return
	}
	token, err := h.tokenSvc.GenerateToken(found.UserID, found.Email, found.Language)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "签发令牌失败: "+err.Error())
		return
	}
	response.Success(c, tokenResponse{
		Token:    token,
		UserID:   found.UserID,
		Nickname: found.Nickname,
		Language: found.Language,
	}, "登录成功")
}

// Profile 返回当前登录用户的信息
func (h *Handler) Profile(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	found, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, "用户不存在")
		return
	}
	found.PasswordHash = ""
	response.Success(c, found, "获取成功")
}

type languageRequest struct {
	Language string `json:"language" binding:"required"`
}

// UpdateLanguage 切换当前用户的内容语言
func (h *Handler) UpdateLanguage(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数不合法: "+err.Error())
		return
	}
	if err := h.userService.UpdateLanguage(c.Request.Context(), claims.UserID, req.Language); err != nil {
		response.Fail(c, http.StatusInternalServerError, "更新语言失败: "+err.Error())
		return
	}
	response.Success(c, nil, "更新成功")
}
