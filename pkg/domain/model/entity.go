/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-03 10:15:21
 * @LastEditTime: 2025-09-03 10:15:21
 * @LastEditors: 安知鱼
 */
package model

// Entity 是 NLP 服务抽取出来的命名实体。
// Links 是实体的唯一标识（知识库链接），同名不同义的实体靠它区分。
type Entity struct {
	Text  string `bson:"text" json:"text"`
	Type  string `bson:"type" json:"type"`
	Links string `bson:"links" json:"links"`
}

// EntityInStory 表示实体在某篇文章中的出现情况
type EntityInStory struct {
	Entity    Entity `bson:"entity" json:"entity"`
	Frequency int    `bson:"frequency" json:"frequency"`
}

// EntityInStoryDB 是入库形态，只保留实体标识和词频
type EntityInStoryDB struct {
	Links     string `bson:"links" json:"links"`
	Frequency int    `bson:"frequency" json:"frequency"`
}
