package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActivityFeed_MergesNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	shopID := uuid.New()

	reviews := []*ReviewWithShop{
		{Review: Review{ID: uuid.New(), Rating: 5, Comment: "great", CreatedAt: base.Add(-2 * time.Hour)}, ShopName: "Cafe Cafe"},
		{Review: Review{ID: uuid.New(), Rating: 3, CreatedAt: base, ImageURL: "https://img/x.png"}, ShopName: "Bakery"},
	}
	favorites := []*FavoriteWithShop{
		{Favorite: Favorite{ShopID: shopID, CreatedAt: base.Add(-1 * time.Hour)}, ShopName: "Cafe Cafe"},
	}

	feed := BuildActivityFeed(reviews, favorites, ActivityFeedLimit)
	require.Len(t, feed, 3)

	assert.Equal(t, ActivityReview, feed[0].Type)
	assert.Equal(t, "Rated Bakery 3 stars and uploaded an image", feed[0].Content)
	assert.Equal(t, "https://img/x.png", feed[0].ImageURL)

	assert.Equal(t, ActivityFavorite, feed[1].Type)
	assert.Equal(t, "Favorited the shop: Cafe Cafe", feed[1].Content)

	assert.Equal(t, `Rated Cafe Cafe 5 stars: "great"`, feed[2].Content)
}

func TestBuildActivityFeed_TruncatesLongComments(t *testing.T) {
	comment := strings.Repeat("a", 60)
	reviews := []*ReviewWithShop{
		{Review: Review{ID: uuid.New(), Rating: 4, Comment: comment, CreatedAt: time.Now()}},
	}

	feed := BuildActivityFeed(reviews, nil, ActivityFeedLimit)
	require.Len(t, feed, 1)
	assert.Equal(t, `Rated Unknown shop 4 stars: "`+strings.Repeat("a", 50)+`..."`, feed[0].Content)
	assert.Equal(t, "Unknown shop", feed[0].ShopName)
}

func TestBuildActivityFeed_AppliesLimit(t *testing.T) {
	now := time.Now()
	reviews := make([]*ReviewWithShop, 0, ActivityFetchPerType)
	favorites := make([]*FavoriteWithShop, 0, ActivityFetchPerType)
	for i := range ActivityFetchPerType {
		reviews = append(reviews, &ReviewWithShop{Review: Review{ID: uuid.New(), Rating: 5, CreatedAt: now.Add(-time.Duration(i) * time.Minute)}, ShopName: "R"})
		favorites = append(favorites, &FavoriteWithShop{Favorite: Favorite{ShopID: uuid.New(), CreatedAt: now.Add(-time.Duration(i)*time.Minute - 30*time.Second)}, ShopName: "F"})
	}

	feed := BuildActivityFeed(reviews, favorites, ActivityFeedLimit)
	require.Len(t, feed, ActivityFeedLimit)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Date.After(feed[i-1].Date), "feed must be sorted newest first")
	}
}
