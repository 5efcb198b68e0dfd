/*
 * @Description: MongoDB 集合名称常量，所有仓库层共用
 * @Author: 安知鱼
 * @Date: 2025-09-02 11:40:02
 * @LastEditTime: 2025-09-02 11:40:02
 * @LastEditors: 安知鱼
 */
package constant

// 各领域对象所在的 MongoDB 集合。
// Favorite 系列集合名是固定字面量，Solr 训练与推荐链路按名字索引，不可改动。
const (
	CollectionStory      = "Story"
	CollectionSource     = "Source"
	CollectionAuthor     = "Author"
	CollectionEntity     = "Entity"
	CollectionKeyword    = "Keyword"
	CollectionUser       = "User"
	CollectionScrapedURL = "ScrapedUrl"

	CollectionUserFeedback = "UserFeedback"
	CollectionReadStory    = "ReadStory"

	CollectionFavoriteSource  = "FavoriteSource"
	CollectionFavoriteAuthor  = "FavoriteAuthor"
	CollectionFavoriteKeyword = "FavoriteKeyword"
	CollectionFavoriteEntity  = "FavoriteEntity"
)
