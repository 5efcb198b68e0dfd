/*
 * @Description: JWT 签发与校验
 * @Author: 安知鱼
 * @Date: 2025-09-03 11:32:19
 * @LastEditTime: 2025-11-21 17:40:02
 * @LastEditors: 安知鱼
 */
package auth

import (
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/config"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// ClaimsKey 是认证中间件往请求上下文写入 Claims 时使用的键
const ClaimsKey = "claims"

// Claims 是访问令牌携带的身份信息
type Claims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Language string `json:"language"`
	jwt.RegisteredClaims
}

// TokenService 负责签发与解析访问令牌
type TokenService struct {
	secret []byte
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{secret: []byte(cfg.GetString(config.KeyJWTSecret))}
}

// GenerateToken 为用户签发一枚 24 小时有效的访问令牌
func (s *TokenService) GenerateToken(userID, email, language string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Language: language,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, nil
}

// ParseToken 解析并校验令牌，失败统一返回 ErrInvalidToken
func (s *TokenService) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("意外的签名算法: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, constant.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, constant.ErrInvalidToken
	}
	return claims, nil
}
