package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a buyer's rating of a shop. Reviews are append-only.
type Review struct {
	ID        uuid.UUID `json:"id"`
	ShopID    uuid.UUID `json:"shop_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithAuthor is a review joined with the reviewer's profile fields.
type ReviewWithAuthor struct {
	Review
	AuthorName      string `json:"author_name"`
	AuthorAvatarURL string `json:"author_avatar_url"`
}

// ReviewWithShop is a review joined with the reviewed shop's name, used by activity feeds.
type ReviewWithShop struct {
	Review
	ShopName string
}
