/*
 * @Description: JWT 认证中间件
 * @Author: 安知鱼
 * @Date: 2025-12-10 09:40:22
 * @LastEditTime: 2025-12-10 09:40:22
 * @LastEditors: 安知鱼
 */
package middleware

import (
	"net/http"
	"strings"

	"github.com/anzhiyu-c/anheyu-news/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-news/pkg/response"

	"github.com/gin-gonic/gin"
)

type Middleware struct {
	tokenSvc *auth.TokenService
}

func NewMiddleware(tokenSvc *auth.TokenService) *Middleware {
	return &Middleware{tokenSvc: tokenSvc}
}

// JWTAuth 是一个强制性的JWT认证中间件
func (m *Middleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseHeader(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "请求未携带有效Token，无权限访问")
			c.Abort()
			return
		}
		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// JWTAuthOptional 是一个可选的JWT认证中间件：
// 没有Token时按游客放行，有Token但无效时不放行。
func (m *Middleware) JWTAuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Header.Get("Authorization") == "" {
			c.Next()
			return
		}
		claims, ok := m.parseHeader(c)
		if !ok {
			response.Fail(c, http.StatusUnauthorized, "无效或过期的Token")
			c.Abort()
			return
		}
		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

func (m *Middleware) parseHeader(c *gin.Context) (*auth.Claims, bool) {
	authHeader := c.Request.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		return nil, false
	}
	claims, err := m.tokenSvc.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// CurrentClaims 取出认证中间件写入的用户身份，游客返回 nil
func CurrentClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
