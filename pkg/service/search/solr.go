/*
 * @Description: Solr HTTP 客户端
 * @Author: 安知鱼
 * @Date: 2025-11-21 11:32:18
 * @LastEditTime: 2025-12-02 10:05:44
 * @LastEditors: 安知鱼
 */
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/anzhiyu-c/anheyu-news/pkg/config"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

// SolrError 表示 Solr 返回了非 200 响应。
// 引用未注册的 LTR 模型或特征字段时 Solr 会报这一类错误，
// 编排器据此触发重置-重试，普通网络错误不在此列。
type SolrError struct {
	StatusCode int
	Message    string
}

func (e *SolrError) Error() string {
	return fmt.Sprintf("Solr 返回 %d: %s", e.StatusCode, e.Message)
}

// DocList 是 Solr 响应里的文档列表片段
type DocList struct {
	Docs []model.SolrDocument `json:"docs"`
}

// GroupedDocList 对应 Solr 分组响应里的一组
type GroupedDocList struct {
	DocList DocList `json:"doclist"`
}

// GroupedField 对应 grouped.<field> 的内容
type GroupedField struct {
	Groups []GroupedDocList `json:"groups"`
}

// SelectResult 是一次 select 查询的解码结果，平铺与分组两种形态只会出现其一
type SelectResult struct {
	Docs    []model.SolrDocument
	Grouped map[string]GroupedField
}

// Index 抽象 Solr 索引的操作集合，编排器依赖这个接口
type Index interface {
	Select(ctx context.Context, query string, params url.Values) (*SelectResult, error)
	Add(ctx context.Context, docs []*model.StoryInSolr) error
	DeleteAll(ctx context.Context) error
	PostSchema(ctx context.Context, payload []byte) error
	PutFeatureStore(ctx context.Context, payload []byte) error
}

// SolrClient 是 Index 的 HTTP 实现
type SolrClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Index = (*SolrClient)(nil)

// NewSolrClient 根据配置创建 Solr 客户端，baseURL 形如 http://host:port/solr/core
func NewSolrClient(cfg *config.Config) *SolrClient {
	return &SolrClient{
		baseURL: cfg.SolrBaseURL(),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type selectResponse struct {
	Response *struct {
		Docs []model.SolrDocument `json:"docs"`
	} `json:"response"`
	Grouped map[string]GroupedField `json:"grouped"`
	Error   *struct {
		Msg  string `json:"msg"`
		Code int    `json:"code"`
	} `json:"error"`
}

// Select 执行一次查询，params 中的 qt 决定实际命中的请求处理器
func (c *SolrClient) Select(ctx context.Context, query string, params url.Values) (*SelectResult, error) {
	values := url.Values{}
	for key, list := range params {
		for _, v := range list {
			values.Add(key, v)
		}
	}
	values.Set("q", query)
	values.Set("wt", "json")

	endpoint := c.baseURL + "/select?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建 Solr 查询请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Solr 失败: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取 Solr 响应失败: %w", err)
	}

	var decoded selectResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &SolrError{StatusCode: resp.StatusCode, Message: string(body)}
		}
		return nil, fmt.Errorf("解析 Solr 响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK || decoded.Error != nil {
		message := string(body)
		if decoded.Error != nil {
			message = decoded.Error.Msg
		}
		return nil, &SolrError{StatusCode: resp.StatusCode, Message: message}
	}

	result := &SelectResult{Grouped: decoded.Grouped}
	if decoded.Response != nil {
		result.Docs = decoded.Response.Docs
	}
	return result, nil
}

// Add 把文档批量推入索引并立即提交
func (c *SolrClient) Add(ctx context.Context, docs []*model.StoryInSolr) error {
	if len(docs) == 0 {
		return nil
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("序列化索引文档失败: %w", err)
	}
	return c.post(ctx, "/update?commit=true", payload)
}

// DeleteAll 清空整个索引
func (c *SolrClient) DeleteAll(ctx context.Context) error {
	payload := []byte(`{"delete":{"query":"*:*"}}`)
	return c.post(ctx, "/update?commit=true", payload)
}

// PostSchema 向 schema API 提交一条变更（加字段、加字段类型、加 copyField 等）
func (c *SolrClient) PostSchema(ctx context.Context, payload []byte) error {
	return c.post(ctx, "/schema", payload)
}

// PutFeatureStore 覆盖写入 LTR 特征仓库定义
func (c *SolrClient) PutFeatureStore(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/schema/feature-store", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("构建特征仓库请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *SolrClient) post(ctx context.Context, path string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("构建 Solr 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *SolrClient) do(req *http.Request) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求 Solr 失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &SolrError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	return nil
}
