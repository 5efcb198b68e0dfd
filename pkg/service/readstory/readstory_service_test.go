package readstory

import (
	"context"
	"testing"
	"time"

	"github.com/anzhiyu-c/anheyu-news/internal/testutil"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"

	"go.mongodb.org/mongo-driver/bson"
)

func TestGetStoryIDs_只看近一天窗口(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewService(store)
	ctx := context.Background()
	now := time.Now()

	records := []model.ReadStory{
		{UserID: "user-1", StoryID: "story-fresh", ReadTime: now.Add(-2 * time.Hour)},
		{UserID: "user-1", StoryID: "story-stale", ReadTime: now.AddDate(0, 0, -2)},
		{UserID: "user-2", StoryID: "story-other", ReadTime: now.Add(-1 * time.Hour)},
	}
	for _, record := range records {
		if err := svc.Add(ctx, record); err != nil {
			t.Fatal(err)
		}
	}

	storyIDs, err := svc.GetStoryIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(storyIDs) != 1 || storyIDs[0] != "story-fresh" {
		t.Errorf("近一天窗口内应只有 story-fresh, 实际 %v", storyIDs)
	}
	if store.Count(constant.CollectionReadStory, nil) != 3 {
		t.Error("窗口外与他人的记录也应完整落库")
	}
}

func TestGetStoryIDs_重复阅读只返回一次(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewService(store)
	ctx := context.Background()
	now := time.Now()

	records := []model.ReadStory{
		{UserID: "user-1", StoryID: "story-1", ReadTime: now.Add(-3 * time.Hour)},
		{UserID: "user-1", StoryID: "story-1", ReadTime: now.Add(-2 * time.Hour)},
		{UserID: "user-1", StoryID: "story-2", ReadTime: now.Add(-1 * time.Hour)},
	}
	for _, record := range records {
		if err := svc.Add(ctx, record); err != nil {
			t.Fatal(err)
		}
	}

	storyIDs, err := svc.GetStoryIDs(ctx, "user-1")
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(storyIDs) != 2 {
		t.Fatalf("story_ids = %v, 期望去重后 2 个", storyIDs)
	}
	if storyIDs[0] != "story-1" || storyIDs[1] != "story-2" {
		t.Errorf("story_ids = %v, 期望 [story-1 story-2]", storyIDs)
	}
	if store.Count(constant.CollectionReadStory, bson.M{"user_id": "user-1"}) != 3 {
		t.Error("重复阅读本身应全部落库")
	}
}
