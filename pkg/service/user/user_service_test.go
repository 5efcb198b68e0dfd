package user

import (
	"context"
	"errors"
	"testing"

	"github.com/anzhiyu-c/anheyu-news/internal/testutil"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
)

func TestRegisterAndLogin(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "s3cret", "Alice", "en")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if registered.UserID == "" {
		t.Error("应分配 UserID")
	}
	if registered.PasswordHash == "s3cret" {
		t.Error("密码不应明文入库")
	}

	t.Run("邮箱重复注册被拒绝", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice@example.com", "other", "Alice2", "en")
		if !errors.Is(err, constant.ErrEmailExists) {
			t.Errorf("期望 ErrEmailExists, 实际 %v", err)
		}
	})

	t.Run("正确密码登录成功", func(t *testing.T) {
		found, err := svc.Login(ctx, "alice@example.com", "s3cret")
		if err != nil {
			t.Fatalf("登录失败: %v", err)
		}
		if found.UserID != registered.UserID {
			t.Errorf("登录返回的用户不符: %s", found.UserID)
		}
	})

	t.Run("错误密码登录失败", func(t *testing.T) {
		if _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, constant.ErrPasswordMismatch) {
			t.Errorf("期望 ErrPasswordMismatch, 实际 %v", err)
		}
	})

	t.Run("不存在的邮箱登录失败", func(t *testing.T) {
		if _, err := svc.Login(ctx, "ghost@example.com", "s3cret"); !errors.Is(err, constant.ErrPasswordMismatch) {
			t.Errorf("期望 ErrPasswordMismatch, 实际 %v", err)
		}
	})
}

func TestGetIDs(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewService(store)
	ctx := context.Background()

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, email := range emails {
		if _, err := svc.Register(ctx, email, "pw", "昵称", "en"); err != nil {
			t.Fatal(err)
		}
	}

	ids, err := svc.GetIDs(ctx)
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(ids) != 3 {
		t.Errorf("用户 ID 数 = %d, 期望 3", len(ids))
	}
	seen := make(map[string]bool)
	for _, id := range ids {
		if id == "" || seen[id] {
			t.Errorf("ID 应非空且唯一: %v", ids)
		}
		seen[id] = true
	}
}

func TestUpdateLanguage(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "pw", "Alice", "en")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.UpdateLanguage(ctx, registered.UserID, "fr"); err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	found, err := svc.GetByID(ctx, registered.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if found.Language != "fr" {
		t.Errorf("语言 = %s, 期望 fr", found.Language)
	}

	if err := svc.UpdateLanguage(ctx, "ghost", "fr"); !errors.Is(err, constant.ErrNotFound) {
		t.Errorf("不存在的用户应返回 ErrNotFound, 实际 %v", err)
	}
}
