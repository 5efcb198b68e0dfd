/*
 * @Description: 每日新闻摘要邮件任务
 * @Author: 安知鱼
 * @Date: 2025-12-10 14:32:55
 * @LastEditTime: 2025-12-10 14:32:55
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"log"

	"github.com/anzhiyu-c/anheyu-news/pkg/service/story"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/user"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/utility"
)

// DailyDigestJob 为每个用户取当天的个性化推荐并发送摘要邮件
type DailyDigestJob struct {
	userSvc  *user.Service
	storySvc *story.Service
	emailSvc utility.EmailService
}

func NewDailyDigestJob(userSvc *user.Service, storySvc *story.Service, emailSvc utility.EmailService) *DailyDigestJob {
	return &DailyDigestJob{
		userSvc:  userSvc,
		storySvc: storySvc,
		emailSvc: emailSvc,
	}
}

func (j *DailyDigestJob) Run() {
	ctx := context.Background()
	userIDs, err := j.userSvc.GetIDs(ctx)
	if err != nil {
		log.Printf("任务 '%s' 获取用户列表失败: %v", j.Name(), err)
		return
	}

	sent := 0
	for _, userID := range userIDs {
		u, err := j.userSvc.GetByID(ctx, userID)
		if err != nil {
			log.Printf("任务 '%s' 读取用户 %s 失败: %v", j.Name(), userID, err)
			continue
		}
		stories, err := j.storySvc.GetRecommendedStories(ctx, u.UserID, u.Language)
		if err != nil {
			log.Printf("任务 '%s' 获取用户 %s 的推荐失败: %v", j.Name(), userID, err)
			continue
		}
		if err := j.emailSvc.SendDailyDigest(ctx, u.Email, u.Nickname, stories); err != nil {
			log.Printf("任务 '%s' 给用户 %s 发送摘要失败: %v", j.Name(), userID, err)
			continue
		}
		sent++
	}
	log.Printf("任务 '%s' 业务逻辑执行完毕，共发送 %d 封摘要邮件。", j.Name(), sent)
}

func (j *DailyDigestJob) Name() string {
	return "DailyDigestJob"
}
