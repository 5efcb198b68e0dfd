/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-05 10:05:44
 * @LastEditTime: 2025-09-05 10:05:44
 * @LastEditors: 安知鱼
 */
package model

// RankingData 是一条训练样本：用户对某篇故事的累计奖励 + 压平后的排序特征。
// 字段名与 ml 服务的训练脚本对齐，不可随意改动。
type RankingData struct {
	StoryID       string  `bson:"story_id" json:"story_id"`
	UserID        string  `bson:"user_id" json:"user_id"`
	RelevancyRate float64 `bson:"relevancy_rate" json:"relevancy_rate"`
	TimeStamp     float64 `bson:"time_stamp" json:"time_stamp"`

	StoryTitle          string `bson:"story_title" json:"story_title"`
	SourceAlexaRank     int    `bson:"source_alexa_rank" json:"source_alexa_rank"`
	ReadCount           int    `bson:"read_count" json:"read_count"`
	SharedCount         int    `bson:"shared_count" json:"shared_count"`
	AngryCount          int    `bson:"angry_count" json:"angry_count"`
	CryCount            int    `bson:"cry_count" json:"cry_count"`
	NeutralCount        int    `bson:"neutral_count" json:"neutral_count"`
	SmileCount          int    `bson:"smile_count" json:"smile_count"`
	HappyCount          int    `bson:"happy_count" json:"happy_count"`
	SourceID            string `bson:"source_id" json:"source_id"`
	AuthorID            string `bson:"author_id" json:"author_id"`
	MostFrequentKeyword string `bson:"most_frequent_keyword" json:"most_frequent_keyword"`
	MostFrequentEntity  string `bson:"most_frequent_entity" json:"most_frequent_entity"`
}

// FillFeatures 把排序特征拷贝进训练样本
func (d *RankingData) FillFeatures(f RankingFeatures) {
	d.StoryTitle = f.StoryTitle
	d.SourceAlexaRank = f.SourceAlexaRank
	d.ReadCount = f.ReadCount
	d.SharedCount = f.SharedCount
	d.AngryCount = f.AngryCount
	d.CryCount = f.CryCount
	d.NeutralCount = f.NeutralCount
	d.SmileCount = f.SmileCount
	d.HappyCount = f.HappyCount
	d.SourceID = f.SourceID
	d.AuthorID = f.AuthorID
	d.MostFrequentKeyword = f.MostFrequentKeyword
	d.MostFrequentEntity = f.MostFrequentEntity
}
