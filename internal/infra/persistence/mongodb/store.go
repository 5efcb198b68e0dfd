/*
 * @Description: DocumentStore 的 MongoDB 实现
 * @Author: 安知鱼
 * @Date: 2025-09-03 09:45:12
 * @LastEditTime: 2025-11-20 18:30:02
 * @LastEditors: 安知鱼
 */
package mongodb

import (
	"context"
	"fmt"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store 基于 *mongo.Database 实现 repository.DocumentStore
type Store struct {
	db *mongo.Database
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore 创建 MongoDB 文档存储
func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

func sortDirection(reverse bool) int {
	if reverse {
		return -1
	}
	return 1
}

// Get 按过滤条件查询集合
func (s *Store) Get(ctx context.Context, collection string, filter bson.M, out interface{}, opts *repository.QueryOptions) error {
	findOpts := options.Find()
	if opts != nil {
		if opts.Limit > 0 {
			findOpts.SetLimit(opts.Limit)
		}
		if opts.Sort != "" {
			findOpts.SetSort(bson.D{{Key: opts.Sort, Value: sortDirection(opts.Reverse)}})
		}
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter, findOpts)
	if err != nil {
		return fmt.Errorf("查询集合 %s 失败: %w", collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("解码集合 %s 的查询结果失败: %w", collection, err)
	}
	return nil
}

// GetGrouped 用聚合管道实现分组取代表文档：
// $match → $sort → $group($first) → $replaceRoot → $limit
func (s *Store) GetGrouped(ctx context.Context, collection string, filter bson.M, groupBy string, out interface{}, opts *repository.QueryOptions) error {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
	}
	if opts != nil && opts.Sort != "" {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: opts.Sort, Value: sortDirection(opts.Reverse)}}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + groupBy},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
	)
	// 分组会打乱顺序，组间再按同一字段排一次
	if opts != nil && opts.Sort != "" {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: opts.Sort, Value: sortDirection(opts.Reverse)}}}})
	}
	if opts != nil && opts.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: opts.Limit}})
	}

	cursor, err := s.db.Collection(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("聚合查询集合 %s 失败: %w", collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("解码集合 %s 的聚合结果失败: %w", collection, err)
	}
	return nil
}

// Insert 追加写入
func (s *Store) Insert(ctx context.Context, collection string, docs ...interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("写入集合 %s 失败: %w", collection, err)
	}
	return nil
}

// AddOrUpdate 按 identity 整体替换，不存在则插入
func (s *Store) AddOrUpdate(ctx context.Context, collection string, identity bson.M, doc interface{}) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, identity, doc, opts); err != nil {
		return fmt.Errorf("更新集合 %s 失败: %w", collection, err)
	}
	return nil
}

// ApplyDelta 原子增量更新
func (s *Store) ApplyDelta(ctx context.Context, collection string, filter bson.M, inc bson.M, setOnInsert bson.M, upsert bool) error {
	update := bson.M{"$inc": inc}
	if upsert && len(setOnInsert) > 0 {
		update["$setOnInsert"] = setOnInsert
	}
	opts := options.Update().SetUpsert(upsert)
	if _, err := s.db.Collection(collection).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("增量更新集合 %s 失败: %w", collection, err)
	}
	return nil
}

// Remove 删除匹配文档
func (s *Store) Remove(ctx context.Context, collection string, filter bson.M) (int64, error) {
	result, err := s.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("删除集合 %s 的文档失败: %w", collection, err)
	}
	return result.DeletedCount, nil
}
