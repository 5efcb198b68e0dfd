/*
 * @Description: 把抽象搜索请求翻译成 Solr 原生查询
 * @Author: 安知鱼
 * @Date: 2025-11-21 11:20:35
 * @LastEditTime: 2025-12-02 09:48:11
 * @LastEditors: 安知鱼
 */
package search

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
)

// operatorString 把布尔连接符编码转成 Solr 语法，0 为 AND，其余为 OR
func operatorString(operator int) string {
	if operator == model.SearchOperatorAnd {
		return " AND "
	}
	return " OR "
}

// Translate 构造 Solr 查询串和参数表。
//
// 查询串按固定顺序拼接：词项、排除 ID、包含 ID、来源名，空列表不产生子句。
// 过滤条件（日期窗口、语言、作者）走 fq 参数，不进查询串。
// LTR 增强只在 ModelName 非空时生效，此时切换请求处理器并注入 rq/fl。
func Translate(query *model.SearchQuery) (string, url.Values) {
	params := url.Values{}
	reqHandler := "query"

	if query.LearnToRank != nil && query.LearnToRank.ModelName != "" {
		ltr := query.LearnToRank
		var rq strings.Builder
		rq.WriteString("{!ltr model=" + ltr.ModelName)
		for _, param := range ltr.Params {
			rq.WriteString(" " + param.Key + "=" + param.Value)
		}
		rq.WriteString("}")
		params.Set("rq", rq.String())
		fields := "*"
		if len(ltr.Fields) > 0 {
			fields = strings.Join(ltr.Fields, ",")
		}
		params.Set("fl", fields)
		if ltr.RequestHandler != "" {
			reqHandler = ltr.RequestHandler
		}
	}

	if query.Sort != "" {
		params.Set("sort", query.Sort)
	}
	params.Set("rows", strconv.Itoa(query.Count))

	if query.StartDate != 0 {
		params.Add("fq", "PublishedAt:[NOW-"+strconv.Itoa(query.StartDate)+
			"DAY/DAY TO NOW-"+strconv.Itoa(query.EndDate)+"DAY]")
	}
	if query.Language != "" {
		params.Add("fq", "Language:"+query.Language)
	}
	if len(query.AuthorNames) > 0 {
		params.Add("fq", "Author:("+strings.Join(query.AuthorNames, " OR ")+")")
	}

	params.Set("qt", "/"+reqHandler)

	if query.Grouped != "" {
		params.Set("group", "true")
		params.Set("group.field", query.Grouped)
	}

	var clauses []string
	if query.Terms != "" {
		if query.Terms == "*" {
			clauses = append(clauses, "*:*")
		} else {
			termsList := strings.Fields(query.Terms)
			clauses = append(clauses, "Body:("+strings.Join(termsList, operatorString(query.SearchOperator))+")")
		}
	}
	if len(query.NotIDList) > 0 {
		clauses = append(clauses, "-StoryId:("+strings.Join(query.NotIDList, " OR ")+")")
	}
	if len(query.StoryIDList) > 0 {
		clauses = append(clauses, "StoryId:("+strings.Join(query.StoryIDList, " OR ")+")")
	}
	if len(query.SourceNames) > 0 {
		clauses = append(clauses, "Source:("+strings.Join(query.SourceNames, " OR ")+")")
	}

	return strings.Join(clauses, " "), params
}
