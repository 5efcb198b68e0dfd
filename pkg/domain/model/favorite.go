/*
 * @Description: 用户偏好（收藏/推荐/拉黑）台账模型
 * @Author: 安知鱼
 * @Date: 2025-09-05 10:08:31
 * @LastEditTime: 2025-10-09 14:52:17
 * @LastEditors: 安知鱼
 */
package model

// Favorite 是 (用户, 类目, 标识) 维度的偏好台账。
// Identifier 的含义随类目变化：来源用 source_id，作者用 author_id，
// 关键词用词面文本，实体用 links。
// 同一 (user_id, identifier) 在一个类目集合里至多一条记录。
type Favorite struct {
	UserID        string  `bson:"user_id" json:"user_id"`
	Identifier    string  `bson:"identifier" json:"identifier"`
	Value         string  `bson:"value" json:"value"`
	IsFavorite    bool    `bson:"is_favorite" json:"is_favorite"`       // 用户显式置顶
	IsDeleted     bool    `bson:"is_deleted" json:"is_deleted"`         // 用户显式移除（负信号）
	IsRecommended bool    `bson:"is_recommended" json:"is_recommended"` // 系统推荐生成
	IsAdded       bool    `bson:"is_added" json:"is_added"`
	RelevancyRate float64 `bson:"relevancy_rate" json:"relevancy_rate"` // 累加亲和度，无衰减
	Language      string  `bson:"language,omitempty" json:"language,omitempty"`
}

// FavoriteItems 把四个类目的偏好打包返回
type FavoriteItems struct {
	FavoriteSources  []Favorite `json:"favorite_sources"`
	FavoriteAuthors  []Favorite `json:"favorite_authors"`
	FavoriteKeywords []Favorite `json:"favorite_keywords"`
	FavoriteEntities []Favorite `json:"favorite_entities"`
}

// Personalization 是个性化配置页一次拉取的全部数据
type Personalization struct {
	RecommendedItems FavoriteItems `json:"recommended_items"`
	FavoriteItems    FavoriteItems `json:"favorite_items"`
	HatedItems       FavoriteItems `json:"hated_items"`
}
