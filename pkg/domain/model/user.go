/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-05 10:13:26
 * @LastEditTime: 2025-09-05 10:13:26
 * @LastEditors: 安知鱼
 */
package model

import "time"

// User 是平台注册用户。UserID 同时充当该用户的 LTR 模型名。
type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Nickname     string    `bson:"nickname" json:"nickname"`
	Language     string    `bson:"language" json:"language"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
