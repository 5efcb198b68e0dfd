package personalization

import (
	"context"
	"testing"

	"github.com/anzhiyu-c/anheyu-news/internal/testutil"
	"github.com/anzhiyu-c/anheyu-news/pkg/constant"
	"github.com/anzhiyu-c/anheyu-news/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-news/pkg/service/favorite"
)

func TestGet(t *testing.T) {
	store := testutil.NewMemStore()
	favorites := favorite.NewService(store)
	svc := NewService(favorites)

	seeds := []struct {
		collection string
		doc        model.Favorite
	}{
		// 用户自己的收藏与拉黑
		{constant.CollectionFavoriteSource, model.Favorite{UserID: "user-1", Identifier: "src-1", Value: "BBC", IsFavorite: true, RelevancyRate: 3, Language: "en"}},
		{constant.CollectionFavoriteKeyword, model.Favorite{UserID: "user-1", Identifier: "Apple", Value: "Apple", IsDeleted: true, RelevancyRate: -2, Language: "en"}},
		// 其他用户的台账，作为推荐来源
		{constant.CollectionFavoriteAuthor, model.Favorite{UserID: "user-2", Identifier: "auth-1", Value: "Alice", RelevancyRate: 5, Language: "en"}},
	}
	for _, seed := range seeds {
		if err := store.Seed(seed.collection, seed.doc); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.Get(context.Background(), "user-1", "en")
	if err != nil {
		t.Fatalf("不期望错误: %v", err)
	}
	if len(page.FavoriteItems.FavoriteSources) != 1 {
		t.Errorf("收藏来源数 = %d, 期望 1", len(page.FavoriteItems.FavoriteSources))
	}
	if len(page.HatedItems.FavoriteKeywords) != 1 {
		t.Errorf("拉黑关键词数 = %d, 期望 1", len(page.HatedItems.FavoriteKeywords))
	}
	if len(page.RecommendedItems.FavoriteAuthors) != 1 {
		t.Fatalf("推荐作者数 = %d, 期望 1", len(page.RecommendedItems.FavoriteAuthors))
	}
	if got := page.RecommendedItems.FavoriteAuthors[0].UserID; got != "user-1" {
		t.Errorf("推荐项归属应改写为当前用户, 实际 %s", got)
	}
}

func TestFindMostSimilarProfile(t *testing.T) {
	profile := func(identifiers ...string) model.FavoriteItems {
		items := model.FavoriteItems{}
		for _, id := range identifiers {
			items.FavoriteSources = append(items.FavoriteSources, model.Favorite{Identifier: id})
		}
		return items
	}

	tests := []struct {
		name       string
		target     model.FavoriteItems
		candidates map[string]model.FavoriteItems
		want       string
	}{
		{
			name:   "重合度最高者胜出",
			target: profile("a", "b", "c"),
			candidates: map[string]model.FavoriteItems{
				"user-2": profile("a", "b", "c", "d"), // 3/4
				"user-3": profile("a"),                // 1/3
			},
			want: "user-2",
		},
		{
			name:   "零重合返回空串",
			target: profile("a"),
			candidates: map[string]model.FavoriteItems{
				"user-2": profile("x", "y"),
			},
			want: "",
		},
		{
			name:       "目标画像为空返回空串",
			target:     model.FavoriteItems{},
			candidates: map[string]model.FavoriteItems{"user-2": profile("a")},
			want:       "",
		},
		{
			name:       "无候选返回空串",
			target:     profile("a"),
			candidates: nil,
			want:       "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindMostSimilarProfile(tt.target, tt.candidates); got != tt.want {
				t.Errorf("FindMostSimilarProfile() = %q, 期望 %q", got, tt.want)
			}
		})
	}
}
