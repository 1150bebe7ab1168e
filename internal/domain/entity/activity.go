package entity

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Activity feed sizing.
const (
	ActivityFetchPerType = 10
	ActivityFeedLimit    = 15
	activityCommentLimit = 50
	unknownShopName      = "Unknown shop"
)

// ActivityType tags an activity feed item.
type ActivityType string

const (
	ActivityReview   ActivityType = "review"
	ActivityFavorite ActivityType = "favorite"
)

// ActivityItem is one line in a profile's recent activity feed.
type ActivityItem struct {
	ID       string       `json:"id"`
	Type     ActivityType `json:"type"`
	Content  string       `json:"content"`
	Date     time.Time    `json:"date"`
	ImageURL string       `json:"image_url,omitempty"`
	ShopName string       `json:"shop_name"`
}

// UserStats counts a user's contributions.
type UserStats struct {
	ReviewsCount   int64 `json:"reviews_count"`
	FavoritesCount int64 `json:"favorites_count"`
}

// FullProfile is everything the profile page renders.
type FullProfile struct {
	Profile          *Profile        `json:"profile"`
	DisplayName      string          `json:"display_name"`
	DisplayLocation  string          `json:"display_location"`
	Stats            UserStats       `json:"stats"`
	RecentActivities []*ActivityItem `json:"recent_activities"`
}

// BuildActivityFeed merges reviews and favorites newest first and keeps at most limit items.
func BuildActivityFeed(reviews []*ReviewWithShop, favorites []*FavoriteWithShop, limit int) []*ActivityItem {
	items := make([]*ActivityItem, 0, len(reviews)+len(favorites))

	for _, r := range reviews {
		shopName := shopNameOrUnknown(r.ShopName)
		items = append(items, &ActivityItem{
			ID:       r.ID.String(),
			Type:     ActivityReview,
			Content:  reviewActivityContent(shopName, r.Rating, r.Comment, r.ImageURL != ""),
			Date:     r.CreatedAt,
			ImageURL: r.ImageURL,
			ShopName: shopName,
		})
	}

	for _, f := range favorites {
		shopName := shopNameOrUnknown(f.ShopName)
		items = append(items, &ActivityItem{
			ID:       "favorite-" + f.ShopID.String(),
			Type:     ActivityFavorite,
			Content:  "Favorited the shop: " + shopName,
			Date:     f.CreatedAt,
			ShopName: shopName,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	return items
}

func reviewActivityContent(shopName string, rating int, comment string, hasImage bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rated %s %d stars", shopName, rating)

	if hasImage {
		b.WriteString(" and uploaded an image")
	}

	if comment != "" {
		runes := []rune(comment)
		excerpt := comment
		suffix := ""
		if len(runes) > activityCommentLimit {
			excerpt = string(runes[:activityCommentLimit])
			suffix = "..."
		}
		fmt.Fprintf(&b, ": \"%s%s\"", excerpt, suffix)
	}

	return b.String()
}

func shopNameOrUnknown(name string) string {
	if strings.TrimSpace(name) == "" {
		return unknownShopName
	}

	return name
}
