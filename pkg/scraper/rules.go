/*
 * @Description: 来源抽取规则注册表
 * @Author: 安知鱼
 * @Date: 2025-12-09 10:30:12
 * @LastEditTime: 2025-12-09 14:45:31
 * @LastEditors: 安知鱼
 */
package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extractor 从文章页面里抽取一个字段
type Extractor func(doc *goquery.Document) string

// Rules 描述如何从某来源的文章页面里抽取各字段。
// 零值字段回退到默认规则（og: 元信息 + 通用正文选择器）。
type Rules struct {
	Title       Extractor
	Description Extractor
	Author      Extractor
	PublishedAt Extractor
	Body        Extractor
	Image       Extractor
}

var registry = map[string]Rules{}

// Register 按来源名称登记一套抽取规则。
// 未登记的来源走默认规则。
func Register(sourceName string, rules Rules) {
	registry[sourceName] = rules
}

// RulesFor 返回某来源的抽取规则，缺失的字段用默认规则补齐
func RulesFor(sourceName string) Rules {
	rules := registry[sourceName]
	if rules.Title == nil {
		rules.Title = metaProperty("og:title")
	}
	if rules.Description == nil {
		rules.Description = metaProperty("og:description")
	}
	if rules.Author == nil {
		rules.Author = metaName("author")
	}
	if rules.PublishedAt == nil {
		rules.PublishedAt = metaProperty("article:published_time")
	}
	if rules.Body == nil {
		rules.Body = Paragraphs("article")
	}
	if rules.Image == nil {
		rules.Image = metaProperty("og:image")
	}
	return rules
}

// metaProperty 读取 <meta property="..."> 的 content
func metaProperty(property string) Extractor {
	return func(doc *goquery.Document) string {
		value, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
		return strings.TrimSpace(value)
	}
}

// metaName 读取 <meta name="..."> 的 content
func metaName(name string) Extractor {
	return func(doc *goquery.Document) string {
		value, _ := doc.Find(`meta[name="` + name + `"]`).First().Attr("content")
		return strings.TrimSpace(value)
	}
}

// Text 取第一个匹配节点的纯文本
func Text(selector string) Extractor {
	return func(doc *goquery.Document) string {
		return strings.TrimSpace(doc.Find(selector).First().Text())
	}
}

// Attr 取第一个匹配节点的某属性
func Attr(selector, attribute string) Extractor {
	return func(doc *goquery.Document) string {
		value, _ := doc.Find(selector).First().Attr(attribute)
		return strings.TrimSpace(value)
	}
}

// Paragraphs 把容器下的所有 <p> 连成一段正文
func Paragraphs(containerSelector string) Extractor {
	return func(doc *goquery.Document) string {
		var parts []string
		doc.Find(containerSelector).Find("p").Each(func(_ int, paragraph *goquery.Selection) {
			text := strings.TrimSpace(paragraph.Text())
			if text != "" {
				parts = append(parts, text)
			}
		})
		return strings.Join(parts, " ")
	}
}
