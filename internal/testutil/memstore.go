/*
 * @Description: 测试用内存版 DocumentStore
 * @Author: 安知鱼
 * @Date: 2025-11-21 10:02:17
 * @LastEditTime: 2025-11-21 10:02:17
 * @LastEditors: 安知鱼
 */
package testutil

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore 在内存中模拟文档存储，支持服务层测试需要的查询子集：
// 字面量相等、$gte/$gt/$lte/$lt/$in/$nin/$ne，以及 $inc upsert。
type MemStore struct {
	mu          sync.Mutex
	collections map[string][]bson.M
}

var _ repository.DocumentStore = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{collections: make(map[string][]bson.M)}
}

// Seed 预置测试数据，等价于 Insert 但忽略错误检查之外的语义
func (m *MemStore) Seed(collection string, docs ...interface{}) error {
	return m.Insert(context.Background(), collection, docs...)
}

// Count 返回集合中匹配文档数，供断言使用
func (m *MemStore) Count(collection string, filter bson.M) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, doc := range m.collections[collection] {
		if matchFilter(doc, filter) {
			n++
		}
	}
	return n
}

// FindOne 取第一条匹配文档的原始 bson.M，没有则返回 nil
func (m *MemStore) FindOne(collection string, filter bson.M) bson.M {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range m.collections[collection] {
		if matchFilter(doc, filter) {
			return doc
		}
	}
	return nil
}

func (m *MemStore) Get(ctx context.Context, collection string, filter bson.M, out interface{}, opts *repository.QueryOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []bson.M
	for _, doc := range m.collections[collection] {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	matched = applyOptions(matched, opts)
	return decodeInto(matched, out)
}

func (m *MemStore) GetGrouped(ctx context.Context, collection string, filter bson.M, groupBy string, out interface{}, opts *repository.QueryOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []bson.M
	for _, doc := range m.collections[collection] {
		if matchFilter(doc, filter) {
			matched = append(matched, doc)
		}
	}
	if opts != nil && opts.Sort != "" {
		sortDocs(matched, opts.Sort, opts.Reverse)
	}
	seen := make(map[string]bool)
	var grouped []bson.M
	for _, doc := range matched {
		key := fmt.Sprintf("%v", doc[groupBy])
		if seen[key] {
			continue
		}
		seen[key] = true
		grouped = append(grouped, doc)
	}
	if opts != nil && opts.Limit > 0 && int64(len(grouped)) > opts.Limit {
		grouped = grouped[:opts.Limit]
	}
	return decodeInto(grouped, out)
}

func (m *MemStore) Insert(ctx context.Context, collection string, docs ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		raw, err := toBsonM(doc)
		if err != nil {
			return err
		}
		m.collections[collection] = append(m.collections[collection], raw)
	}
	return nil
}

func (m *MemStore) AddOrUpdate(ctx context.Context, collection string, identity bson.M, doc interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := toBsonM(doc)
	if err != nil {
		return err
	}
	for i, existing := range m.collections[collection] {
		if matchFilter(existing, identity) {
			m.collections[collection][i] = raw
			return nil
		}
	}
	m.collections[collection] = append(m.collections[collection], raw)
	return nil
}

func (m *MemStore) ApplyDelta(ctx context.Context, collection string, filter bson.M, inc bson.M, setOnInsert bson.M, upsert bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.collections[collection] {
		if matchFilter(existing, filter) {
			for field, delta := range inc {
				existing[field] = toFloat(existing[field]) + toFloat(delta)
			}
			return nil
		}
	}
	if !upsert {
		return nil
	}
	doc := bson.M{}
	for k, v := range filter {
		if _, isOp := v.(bson.M); !isOp {
			doc[k] = v
		}
	}
	for k, v := range setOnInsert {
		doc[k] = v
	}
	for field, delta := range inc {
		doc[field] = toFloat(doc[field]) + toFloat(delta)
	}
	m.collections[collection] = append(m.collections[collection], doc)
	return nil
}

func (m *MemStore) Remove(ctx context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []bson.M
	var removed int64
	for _, doc := range m.collections[collection] {
		if matchFilter(doc, filter) {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	m.collections[collection] = kept
	return removed, nil
}

func toBsonM(doc interface{}) (bson.M, error) {
	if raw, ok := doc.(bson.M); ok {
		clone := bson.M{}
		for k, v := range raw {
			clone[k] = v
		}
		return clone, nil
	}
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("序列化文档失败: %w", err)
	}
	var out bson.M
	if err := bson.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("反序列化文档失败: %w", err)
	}
	return out, nil
}

func decodeInto(docs []bson.M, out interface{}) error {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("out 必须是指向切片的指针，收到 %T", out)
	}
	sliceVal := outVal.Elem()
	elemType := sliceVal.Type().Elem()
	result := reflect.MakeSlice(sliceVal.Type(), 0, len(docs))
	for _, doc := range docs {
		data, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(data, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceVal.Set(result)
	return nil
}

func matchFilter(doc bson.M, filter bson.M) bool {
	for field, cond := range filter {
		value := doc[field]
		ops, isOps := cond.(bson.M)
		if !isOps {
			if !valuesEqual(value, cond) {
				return false
			}
			continue
		}
		for op, operand := range ops {
			switch op {
			case "$gte":
				if compareValues(value, operand) < 0 {
					return false
				}
			case "$gt":
				if compareValues(value, operand) <= 0 {
					return false
				}
			case "$lte":
				if compareValues(value, operand) > 0 {
					return false
				}
			case "$lt":
				if compareValues(value, operand) >= 0 {
					return false
				}
			case "$ne":
				if valuesEqual(value, operand) {
					return false
				}
			case "$in":
				if !valueInList(value, operand) {
					return false
				}
			case "$nin":
				if valueInList(value, operand) {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}

func valueInList(value interface{}, operand interface{}) bool {
	list := reflect.ValueOf(operand)
	if list.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < list.Len(); i++ {
		if valuesEqual(value, list.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	na, aNum := asFloat(a)
	nb, bNum := asFloat(b)
	if aNum && bNum {
		return na == nb
	}
	return fmt.Sprintf("%v", normalize(a)) == fmt.Sprintf("%v", normalize(b))
}

func compareValues(a, b interface{}) int {
	na, aNum := asFloat(a)
	nb, bNum := asFloat(b)
	if aNum && bNum {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprintf("%v", normalize(a)), fmt.Sprintf("%v", normalize(b)))
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

func asFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case primitive.DateTime:
		return float64(t), true
	case time.Time:
		return float64(t.UnixMilli()), true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) float64 {
	f, _ := asFloat(v)
	return f
}

func sortDocs(docs []bson.M, field string, reverse bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		c := compareValues(docs[i][field], docs[j][field])
		if reverse {
			return c > 0
		}
		return c < 0
	})
}

func applyOptions(docs []bson.M, opts *repository.QueryOptions) []bson.M {
	if opts == nil {
		return docs
	}
	if opts.Sort != "" {
		sortDocs(docs, opts.Sort, opts.Reverse)
	}
	if opts.Limit > 0 && int64(len(docs)) > opts.Limit {
		docs = docs[:opts.Limit]
	}
	return docs
}
