package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to a shop created by approval. The seller moves the pin later.
const (
	DefaultShopDescription = "Welcome to our new shop!"
	DefaultShopLatitude    = 10.745
	DefaultShopLongitude   = 124.79
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// Categories lists the browse tabs offered to buyers.
var Categories = []string{
	"Food",
	"Clothes",
	"Services",
	"Tourism",
	"Entertainment",
	"Stalls",
	"Shopping & Malls",
}

// Shop is an approved business listing, owned by exactly one user.
type Shop struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Address       string    `json:"address"`
	ContactNumber string    `json:"contact_number"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	Rating        float64   `json:"rating"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewShopFromApplication builds the shop inserted by the approval workflow.
func NewShopFromApplication(app *SellerApplication) *Shop {
	return &Shop{
		ID:            uuid.New(),
		OwnerID:       app.UserID,
		Name:          app.BusinessName,
		Address:       app.Address,
		Category:      app.Category,
		ContactNumber: app.ContactNumber,
		Description:   DefaultShopDescription,
		Rating:        0,
		Latitude:      DefaultShopLatitude,
		Longitude:     DefaultShopLongitude,
	}
}

// ShopFilter narrows the buyer's shop list.
type ShopFilter struct {
	Category string // Exact match; empty or CategoryAll disables it.
	Town     string // Case-insensitive substring of the address.
}

// HasCategory reports whether the category filter is active.
func (f ShopFilter) HasCategory() bool {
	c := strings.TrimSpace(f.Category)

	return c != "" && !strings.EqualFold(c, CategoryAll)
}

// HasTown reports whether the town filter is active.
func (f ShopFilter) HasTown() bool {
	return strings.TrimSpace(f.Town) != ""
}

// ShopWithOwner is the admin view of a shop joined with its owner's profile.
type ShopWithOwner struct {
	Shop
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

// ShopSettings are the fields a seller edits on the settings form.
type ShopSettings struct {
	Name        string
	Description string
	Address     string
	Latitude    float64
	Longitude   float64
	ImageURL    string // Empty keeps the current image.
}
