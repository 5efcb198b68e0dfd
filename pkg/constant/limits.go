/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-09-04 11:08:40
 * @LastEditTime: 2025-11-21 11:15:22
 * @LastEditors: 安知鱼
 */
package constant

const (
	// DaysOfStoriesInSolr 索引回填覆盖的天数
	DaysOfStoriesInSolr = 10
	// StoriesPerSource 回填时每个来源每天最多取的故事数
	StoriesPerSource = 90
	// UserFeedbackCount 组装训练集时最多取的反馈条数
	UserFeedbackCount = 200
	// FavoriteItemCount 个性化接口每类偏好返回的条数
	FavoriteItemCount = 10
	// DaysOfReadStories 阅读历史用于排除的时间窗（天）
	DaysOfReadStories = 1
	// StoryDaysToExpiry 故事在库中的保留天数，过期由清理任务删除
	StoryDaysToExpiry = 90
	// PreviousDaysOfNews 公共新闻列表默认回看的天数
	PreviousDaysOfNews = 1
	// DefaultModelName 未登录或无个人模型时使用的共享 LTR 模型名
	DefaultModelName = "defaultmodel"
)

// SupportedLanguages 平台当前抓取与服务的语言
var SupportedLanguages = []string{"en", "fr"}
