/*
 * @Description: 机器学习服务 HTTP 客户端（模型注册、推荐、NLP 标注）
 * @Author: 安知鱼
 * @Date: 2025-11-21 10:40:09
 * @LastEditTime: 2025-11-21 10:40:09
 * @LastEditors: 安知鱼
 */
package ml

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

// Client 封装对 ML 服务的全部调用。
// 模型名与用户 ID 一一对应，注册接口幂等。
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 从配置读取 ML 服务地址并创建客户端
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.GetString(config.KeyMLServiceURL),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Available 报告 ML 服务是否已配置
func (c *Client) Available() bool {
	return c.baseURL != ""
}

// RegisterModel 把用户的 LTR 模型重新载入 Solr 模型仓库。
// 重置索引会清空模型仓库，检索重试前必须先调用这里。
func (c *Client) RegisterModel(ctx context.Context, modelID string) error {
	endpoint := c.baseURL + "/model-store/" + url.PathEscape(modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("构建模型注册请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("注册模型 %s 失败: %w", modelID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("注册模型 %s 失败: ML 服务返回 %d", modelID, resp.StatusCode)
	}
	return nil
}

// ResetModelStore 让 ML 服务把给定的全部模型重新推入 Solr 模型仓库
func (c *Client) ResetModelStore(ctx context.Context, modelIDs []string) error {
	body, err := json.Marshal(modelIDs)
	if err != nil {
		return fmt.Errorf("序列化模型 ID 列表失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/model-store/reset", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("构建模型仓库重置请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("重置模型仓库失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("重置模型仓库失败: ML 服务返回 %d", resp.StatusCode)
	}
	return nil
}

// GetRecommendations 获取某用户在某语言下的推荐 Story ID 列表
func (c *Client) GetRecommendations(ctx context.Context, userID, language string) ([]string, error) {
	endpoint := c.baseURL + "/recommendations/" + url.PathEscape(userID) + "/" + url.PathEscape(language)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构建推荐请求失败: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("获取用户 %s 的推荐失败: %w", userID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("获取用户 %s 的推荐失败: ML 服务返回 %d", userID, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取推荐响应失败: %w", err)
	}
	var storyIDs []string
	if err := json.Unmarshal(data, &storyIDs); err != nil {
		return nil, fmt.Errorf("解析推荐响应失败: %w", err)
	}
	return storyIDs, nil
}

// StoryAnnotations 是 NLP 标注结果
type StoryAnnotations struct {
	Keywords []model.KeywordInStory `json:"keywords"`
	Entities []model.EntityInStory  `json:"entities"`
}

type annotationRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// ExtractStoryAnnotations 调用 ML 服务对正文做关键词与实体抽取。
// 分词、词性、实体链接等细节全部在 ML 服务侧完成。
func (c *Client) ExtractStoryAnnotations(ctx context.Context, title, storyBody, language string) (*StoryAnnotations, error) {
	body, err := json.Marshal(annotationRequest{Title: title, Body: storyBody})
	if err != nil {
		return nil, fmt.Errorf("序列化标注请求失败: %w", err)
	}
	endpoint := c.baseURL + "/annotations/" + url.PathEscape(language)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("构建标注请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("抽取标注失败: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("抽取标注失败: ML 服务返回 %d", resp.StatusCode)
	}
	var annotations StoryAnnotations
	if err := json.NewDecoder(resp.Body).Decode(&annotations); err != nil {
		return nil, fmt.Errorf("解析标注响应失败: %w", err)
	}
	return &annotations, nil
}
