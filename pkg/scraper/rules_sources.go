/*
 * @Description: 内置来源的站点级抽取规则
 * @Author: 安知鱼
 * @Date: 2025-12-09 10:42:55
 * @LastEditTime: 2025-12-09 14:47:08
 * @LastEditors: 安知鱼
 */
package scraper

// 站点改版时只需要调整这里的选择器，未覆盖的字段自动回退到默认规则
func init() {
	Register("BBC News", Rules{
		Author:      Text(".byline__name"),
		PublishedAt: Attr("time.date", "data-datetime"),
		Body:        Paragraphs(`[property="articleBody"]`),
	})
	Register("Reuters", Rules{
		Author:      metaProperty("og:article:author"),
		PublishedAt: metaProperty("og:article:published_time"),
		Body:        Paragraphs(".article-body__content"),
	})
	Register("The Guardian", Rules{
		Body: Paragraphs(".article-body-commercial-selector"),
	})
	Register("Le Monde", Rules{
		Author: Text(".meta__author"),
		Body:   Paragraphs(".article__content"),
	})
	Register("Libération", Rules{
		Body: Paragraphs(".article-body-wrapper"),
	})
}
