/*
 * @Description: 文档存储仓库接口
 * @Author: 安知鱼
 * @Date: 2025-09-03 09:40:55
 * @LastEditTime: 2025-11-20 18:27:41
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// QueryOptions 控制查询的条数、排序与方向
type QueryOptions struct {
	Limit   int64
	Sort    string // 排序字段，空串表示不排序
	Reverse bool   // true 表示倒序
}

// DocumentStore 是文档型存储的抽象。
// 所有领域服务只依赖这个接口，与具体驱动（MongoDB）解耦，测试时用内存实现替换。
type DocumentStore interface {
	// Get 按过滤条件查询集合，结果解码进 out（指向切片的指针）。
	Get(ctx context.Context, collection string, filter bson.M, out interface{}, opts *QueryOptions) error

	// GetGrouped 按 groupBy 字段分组，每组只取排序后的第一条代表文档。
	GetGrouped(ctx context.Context, collection string, filter bson.M, groupBy string, out interface{}, opts *QueryOptions) error

	// Insert 追加写入，不做去重（反馈事件、阅读历史等 append-only 集合使用）。
	Insert(ctx context.Context, collection string, docs ...interface{}) error

	// AddOrUpdate 按 identity 过滤条件整体替换文档，不存在则插入。
	// identity 必须能唯一定位一条记录，借此保证 upsert-by-identity 语义。
	AddOrUpdate(ctx context.Context, collection string, identity bson.M, doc interface{}) error

	// ApplyDelta 按过滤条件对数值字段做原子增量（$inc），可选 upsert。
	// setOnInsert 只在触发插入时生效，用于补齐新文档的其余字段。
	// 计数器与 relevancy_rate 的累加都走这条路径，避免读-改-写丢更新。
	ApplyDelta(ctx context.Context, collection string, filter bson.M, inc bson.M, setOnInsert bson.M, upsert bool) error

	// Remove 删除匹配的全部文档，返回删除条数。
	Remove(ctx context.Context, collection string, filter bson.M) (int64, error)
}
