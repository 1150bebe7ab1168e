package entity

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a (user, shop) pair; at most one row exists per pair.
type Favorite struct {
	UserID    uuid.UUID `json:"user_id"`
	ShopID    uuid.UUID `json:"shop_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteWithShop is a favorite joined with the shop's name.
type FavoriteWithShop struct {
	Favorite
	ShopName string
}
