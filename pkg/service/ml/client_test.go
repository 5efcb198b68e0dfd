package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestRegisterModel(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.RegisterModel(context.Background(), "user-1"); err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if gotPath != "/model-store/user-1" {
		t.Errorf("请求路径 = %s, 期望 /model-store/user-1", gotPath)
	}
}

func TestRegisterModel_非200视为失败(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.RegisterModel(context.Background(), "user-1"); err == nil {
		t.Error("500 响应应返回错误")
	}
}

func TestResetModelStore(t *testing.T) {
	var gotIDs []string
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotIDs); err != nil {
			t.Errorf("请求体解析失败: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ids := []string{"user-1", "user-2"}
	if err := client.ResetModelStore(context.Background(), ids); err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("方法 = %s, 期望 POST", gotMethod)
	}
	if !reflect.DeepEqual(gotIDs, ids) {
		t.Errorf("请求体 = %v, 期望 %v", gotIDs, ids)
	}
}

func TestGetRecommendations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/recommendations/user-1/en" {
			t.Errorf("请求路径 = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode([]string{"story-1", "story-2"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	got, err := client.GetRecommendations(context.Background(), "user-1", "en")
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"story-1", "story-2"}) {
		t.Errorf("推荐列表 = %v", got)
	}
}

func TestExtractStoryAnnotations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/annotations/en" {
			t.Errorf("请求路径 = %s", r.URL.Path)
		}
		var req annotationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("请求体解析失败: %v", err)
		}
		if req.Title != "标题" || req.Body != "正文" {
			t.Errorf("请求体不符: %+v", req)
		}
		w.Write([]byte(`{
			"keywords": [{"keyword": {"text": "Apple", "language": "en"}, "frequency": 3}],
			"entities": [{"entity": {"text": "Apple Inc", "type": "ORG", "links": "AppleORG"}, "frequency": 2}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	annotations, err := client.ExtractStoryAnnotations(context.Background(), "标题", "正文", "en")
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(annotations.Keywords) != 1 || annotations.Keywords[0].Keyword.Text != "Apple" || annotations.Keywords[0].Frequency != 3 {
		t.Errorf("关键词不符: %+v", annotations.Keywords)
	}
	if len(annotations.Entities) != 1 || annotations.Entities[0].Entity.Links != "AppleORG" {
		t.Errorf("实体不符: %+v", annotations.Entities)
	}
}

func TestAvailable(t *testing.T) {
	if newTestClient("").Available() {
		t.Error("未配置地址时应不可用")
	}
	if !newTestClient("http://localhost:8501").Available() {
		t.Error("配置了地址应可用")
	}
}
