package usecase

import (
	"context"

	"neighborhood/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// MapQuery selects the shops shown on the map.
type MapQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// ShopPage is everything the public shop page shows.
type ShopPage struct {
	Shop       *entity.Shop               `json:"shop"`
	Products   []*entity.Product          `json:"products"`
	Events     []*entity.ShopEvent        `json:"events"`
	Reviews    []*entity.ReviewWithAuthor `json:"reviews"`
	IsFavorite bool                       `json:"is_favorite"`
}

// ShopUsecase serves the buyer-facing browse surfaces.
type ShopUsecase interface {
	// Search lists shops by category and town. Empty on read failure.
	Search(ctx context.Context, filter entity.ShopFilter) []*entity.Shop
	// TopRated lists the highest rated shops. Empty on read failure.
	TopRated(ctx context.Context) []*entity.Shop
	// MapMarkers returns the shops within the radius as GeoJSON points, nearest first.
	MapMarkers(ctx context.Context, query MapQuery) (*geojson.FeatureCollection, error)
	// ShopPage loads a shop with its products, events and reviews. viewerID may be uuid.Nil.
	ShopPage(ctx context.Context, shopID, viewerID uuid.UUID) (*ShopPage, error)
	// ShopQR renders the PNG QR code of a shop's public page.
	ShopQR(ctx context.Context, shopID uuid.UUID) ([]byte, error)
}
