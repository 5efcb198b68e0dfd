package auth

import (
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
)

func TestGenerateAndParseToken(t *testing.T) {
	svc := &TokenService{secret: []byte("test-secret")}

	token, err := svc.GenerateToken("user-1", "alice@example.com", "en")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" || claims.Language != "en" {
		t.Errorf("声明不符: %+v", claims)
	}
}

func TestParseToken_非法令牌(t *testing.T) {
	svc := &TokenService{secret: []byte("test-secret")}

	t.Run("乱码令牌", func(t *testing.T) {
		if _, err := svc.ParseToken("not-a-token"); !errors.Is(err, constant.ErrInvalidToken) {
			t.Errorf("期望 ErrInvalidToken, 实际 %v", err)
		}
	})

	t.Run("密钥不匹配", func(t *testing.T) {
		other := &TokenService{secret: []byte("other-secret")}
		token, err := other.GenerateToken("user-1", "alice@example.com", "en")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.ParseToken(token); !errors.Is(err, constant.ErrInvalidToken) {
			t.Errorf("期望 ErrInvalidToken, 实际 %v", err)
		}
	})
}
