/*
 * @Description: 用户账号服务
 * @Author: 安知鱼
 * @Date: 2025-11-21 17:50:23
 * @LastEditTime: 2025-12-04 17:02:48
 * @LastEditors: 安知鱼
 */
package user

import (
	"context"
	"fmt"
	"time"

	"github.com/anzhiyu-c/anheyu-news/internal/pkg/security"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Service 管理用户账号。UserID 同时是该用户的 LTR 模型名，
// 重置索引时要把全量 ID 交给 ML 服务重新注册模型。
type Service struct {
	store repository.DocumentStore
}

func NewService(store repository.DocumentStore) *Service {
	return &Service{store: store}
}

// Register 创建新账号，邮箱唯一
func (s *Service) Register(ctx context.Context, email, password, nickname, language string) (*model.User, error) {
	if existing, _ := s.GetByEmail(ctx, email); existing != nil {
		return nil, constant.ErrEmailExists
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}
	newUser := model.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Nickname:     nickname,
		Language:     language,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Insert(ctx, constant.CollectionUser, newUser); err != nil {
		return nil, fmt.Errorf("写入用户失败: %w", err)
	}
	return &newUser, nil
}

// Login 校验邮箱与密码
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	found, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, constant.ErrPasswordMismatch
	}
	if !security.CheckPassword(found.PasswordHash, password) {
		return nil, constant.ErrPasswordMismatch
	}
	return found, nil
}

// GetByEmail 按邮箱查用户
func (s *Service) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getOne(ctx, bson.M{"email": email})
}

// GetByID 按用户 ID 查用户
func (s *Service) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return s.getOne(ctx, bson.M{"user_id": userID})
}

func (s *Service) getOne(ctx context.Context, filter bson.M) (*model.User, error) {
	var users []model.User
	if err := s.store.Get(ctx, constant.CollectionUser, filter, &users, &repository.QueryOptions{Limit: 1}); err != nil {
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}
	if len(users) == 0 {
		return nil, constant.ErrNotFound
	}
	return &users[0], nil
}

// GetIDs 返回全量用户 ID（即全量 LTR 模型名）
func (s *Service) GetIDs(ctx context.Context) ([]string, error) {
	var users []model.User
	if err := s.store.Get(ctx, constant.CollectionUser, bson.M{}, &users, nil); err != nil {
		return nil, fmt.Errorf("查询用户列表失败: %w", err)
	}
	ids := make([]string, 0, len(users))
	for _, item := range users {
		ids = append(ids, item.UserID)
	}
	return ids, nil
}

// UpdateLanguage 切换用户的内容语言
func (s *Service) UpdateLanguage(ctx context.Context, userID, language string) error {
	found, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	found.Language = language
	if err := s.store.AddOrUpdate(ctx, constant.CollectionUser, bson.M{"user_id": userID}, found); err != nil {
		return fmt.Errorf("更新用户语言失败: %w", err)
	}
	return nil
}
