/*
 * @Description: 排序特征模型
 * @Author: 安知鱼
 * @Date: 2025-09-05 10:02:13
 * @LastEditTime: 2025-09-05 10:02:13
 * @LastEditors: 安知鱼
 */
package model

// SolrFeatures 是 Solr 特征日志扩展（[features] 字段）解析后的相关性子分。
// 输入串中未出现的键保持零值。
type SolrFeatures struct {
	TfidfSimTitle    float64 `json:"tfidf_sim_title"`
	Bm25SimTitle     float64 `json:"bm25_sim_title"`
	TfidfSimBody     float64 `json:"tfidf_sim_body"`
	Bm25SimBody      float64 `json:"bm25_sim_body"`
	DocumentRecency  float64 `json:"documentRecency"`
	TfidfSimKeywords float64 `json:"tfidf_sim_keywords"`
	Bm25SimKeywords  float64 `json:"bm25_sim_keywords"`
	TfidfSimEntities float64 `json:"tfidf_sim_entities"`
	Bm25SimEntities  float64 `json:"bm25_sim_entities"`
}

// RankingFeatures 是从装配后的 Story 提取的排序特征向量，供 TensorFlow 推荐模型使用
type RankingFeatures struct {
	StoryTitle          string `json:"story_title"`
	SourceAlexaRank     int    `json:"source_alexa_rank"`
	ReadCount           int    `json:"read_count"`
	SharedCount         int    `json:"shared_count"`
	AngryCount          int    `json:"angry_count"`
	CryCount            int    `json:"cry_count"`
	NeutralCount        int    `json:"neutral_count"`
	SmileCount          int    `json:"smile_count"`
	HappyCount          int    `json:"happy_count"`
	SourceID            string `json:"source_id"`
	AuthorID            string `json:"author_id"`
	MostFrequentKeyword string `json:"most_frequent_keyword"`
	MostFrequentEntity  string `json:"most_frequent_entity"`
}

// StoryWithFeatures 把故事和它的两组特征打包，供训练链路消费
type StoryWithFeatures struct {
	Story           ShortStory      `json:"story"`
	SolrFeatures    SolrFeatures    `json:"solr_features"`
	RankingFeatures RankingFeatures `json:"ranking_features"`
}
