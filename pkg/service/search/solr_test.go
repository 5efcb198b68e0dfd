package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func newTestSolrClient(server *httptest.Server) *SolrClient {
	return &SolrClient{baseURL: server.URL, httpClient: server.Client()}
}

func TestSolrClient_Select(t *testing.T) {
	t.Run("解析平铺响应", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("q") != "*:*" {
				t.Errorf("q = %q", r.URL.Query().Get("q"))
			}
			w.Write([]byte(`{"response":{"docs":[{"StoryId":["s-1"]},{"StoryId":["s-2"]}]}}`))
		}))
		defer server.Close()

		result, err := newTestSolrClient(server).Select(context.Background(), "*:*", url.Values{})
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		if len(result.Docs) != 2 || result.Docs[0].First("StoryId") != "s-1" {
			t.Errorf("解析结果不符: %+v", result.Docs)
		}
	})

	t.Run("解析分组响应", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"grouped":{"Source":{"groups":[{"doclist":{"docs":[{"StoryId":["s-1"]}]}}]}}}`))
		}))
		defer server.Close()

		result, err := newTestSolrClient(server).Select(context.Background(), "*:*", url.Values{})
		if err != nil {
			t.Fatalf("不期望错误: %v", err)
		}
		groups := result.Grouped["Source"].Groups
		if len(groups) != 1 || groups[0].DocList.Docs[0].First("StoryId") != "s-1" {
			t.Errorf("分组解析不符: %+v", result.Grouped)
		}
	})

	t.Run("非 200 响应翻译成 SolrError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"msg":"cannot find model user-1","code":400}}`))
		}))
		defer server.Close()

		_, err := newTestSolrClient(server).Select(context.Background(), "*:*", url.Values{})
		var solrErr *SolrError
		if !errors.As(err, &solrErr) {
			t.Fatalf("期望 SolrError, 实际 %v", err)
		}
		if solrErr.StatusCode != 400 || solrErr.Message != "cannot find model user-1" {
			t.Errorf("错误内容不符: %+v", solrErr)
		}
	})
}
