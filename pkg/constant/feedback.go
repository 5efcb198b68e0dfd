/*
 * @Description: 用户反馈类型编码与奖励分值
 * @Author: 安知鱼
 * @Date: 2025-09-02 11:40:02
 * @LastEditTime: 2025-11-14 10:08:45
 * @LastEditors: 安知鱼
 */
package constant

// 反馈类型编码。0/1 来自阅读行为，31~35 来自前端的表情反馈组件。
const (
	FeedbackURLClicked = 0
	FeedbackShared     = 1
	FeedbackAngry      = 31
	FeedbackCry        = 32
	FeedbackNeutral    = 33
	FeedbackSmile      = 34
	FeedbackHappy      = 35
)

// 训练标签使用的奖励分值表。
// 注意：这套分值只进训练集，不直接写入收藏的 relevancy_rate；
// 在线传播使用 FeedbackReceivedReward（两套刻度是有意分开的，不要合并）。
const (
	URLClickedScore = 1.0
	SharedScore     = 5.0
	AngryScore      = -5.0
	CryScore        = -2.0
	NeutralScore    = 0.0
	SmileScore      = 2.0
	HappyScore      = 5.0
)

// FeedbackReceivedReward 是收藏与声誉的在线传播单位（±0.1）。
const FeedbackReceivedReward = 0.1
