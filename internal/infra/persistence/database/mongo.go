/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-03 09:12:18
 * @LastEditTime: 2025-09-26 20:14:33
 * @LastEditors: 安知鱼
 */
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoDatabase 建立 MongoDB 连接并返回目标数据库句柄。
// 连接失败是致命错误，由调用方决定是否终止进程。
func NewMongoDatabase(ctx context.Context, cfg *config.Config) (*mongo.Database, func(), error) {
	uri := cfg.GetString(config.KeyMongoURI)
	dbName := cfg.GetString(config.KeyMongoDatabase)
	if uri == "" || dbName == "" {
		return nil, nil, fmt.Errorf("MongoDB 配置不完整: URI 或 Database 为空")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("连接 MongoDB 失败: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB Ping 失败: %w", err)
	}

	cleanup := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("警告: 断开 MongoDB 连接失败: %v", err)
		}
	}

	log.Printf("✅ 成功连接到 MongoDB (%s)", dbName)
	return client.Database(dbName), cleanup, nil
}
