package impl

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"neighborhood/config"
	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	shopRepo     repository.ShopRepository
	productRepo  repository.ProductRepository
	eventRepo    repository.EventRepository
	reviewRepo   repository.ReviewRepository
	favoriteRepo repository.FavoriteRepository
	qrService    service.QRCodeService
	cfg          *config.MarketplaceConfig
	logger       *slog.Logger
}

// ShopServiceParams holds dependencies for ShopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	ShopRepo     repository.ShopRepository
	ProductRepo  repository.ProductRepository
	EventRepo    repository.EventRepository
	ReviewRepo   repository.ReviewRepository
	FavoriteRepo repository.FavoriteRepository
	QRService    service.QRCodeService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	cfg := &config.MarketplaceConfig{
		DefaultLatitude:  entity.DefaultShopLatitude,
		DefaultLongitude: entity.DefaultShopLongitude,
		MapRadiusKm:      25,
		MaxMapRadiusKm:   200,
		TopRatedLimit:    6,
	}
	if params.Config != nil && params.Config.Marketplace != nil {
		cfg = params.Config.Marketplace
	}

	return &shopService{
		shopRepo:     params.ShopRepo,
		productRepo:  params.ProductRepo,
		eventRepo:    params.EventRepo,
		reviewRepo:   params.ReviewRepo,
		favoriteRepo: params.FavoriteRepo,
		qrService:    params.QRService,
		cfg:          cfg,
		logger:       params.Logger,
	}
}

func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Search lists shops matching the category and town filters.
func (srv *shopService) Search(ctx context.Context, filter entity.ShopFilter) []*entity.Shop {
	shops, err := srv.shopRepo.Search(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to search shops", slog.String("category", filter.Category), slog.String("town", filter.Town), slog.Any("error", err))

		return []*entity.Shop{}
	}

	return shops
}

// TopRated lists the best rated shops.
func (srv *shopService) TopRated(ctx context.Context) []*entity.Shop {
	shops, err := srv.shopRepo.TopRated(ctx, srv.cfg.TopRatedLimit)
	if err != nil {
		srv.log(ctx).Error("Failed to list top rated shops", slog.Any("error", err))

		return []*entity.Shop{}
	}

	return shops
}

type shopDistance struct {
	shop   *entity.Shop
	meters float64
}

// MapMarkers returns shops within the radius of the query point as GeoJSON points, nearest first.
func (srv *shopService) MapMarkers(ctx context.Context, query usecase.MapQuery) (*geojson.FeatureCollection, error) {
	center, radiusKm, err := srv.normalizeMapQuery(query)
	if err != nil {
		return nil, err
	}
	radiusMeters := radiusKm * 1000

	shops, err := srv.shopRepo.WithinBound(ctx, geo.NewBoundAroundPoint(center, radiusMeters))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops within bound")
	}

	nearby := make([]shopDistance, 0, len(shops))
	for _, shop := range shops {
		meters := geo.Distance(center, shopPoint(shop))
		if meters <= radiusMeters {
			nearby = append(nearby, shopDistance{shop: shop, meters: meters})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].meters < nearby[j].meters
	})

	fc := geojson.NewFeatureCollection()
	for _, n := range nearby {
		feature := geojson.NewFeature(shopPoint(n.shop))
		feature.ID = n.shop.ID.String()
		feature.Properties = geojson.Properties{
			"name":        n.shop.Name,
			"category":    n.shop.Category,
			"address":     n.shop.Address,
			"rating":      n.shop.Rating,
			"image_url":   n.shop.ImageURL,
			"distance_km": math.Round(n.meters) / 1000,
		}
		fc.Append(feature)
	}

	return fc, nil
}

// normalizeMapQuery applies the default centre and clamps the radius.
func (srv *shopService) normalizeMapQuery(query usecase.MapQuery) (orb.Point, float64, error) {
	lat, lng := query.Latitude, query.Longitude
	if lat == 0 && lng == 0 {
		lat, lng = srv.cfg.DefaultLatitude, srv.cfg.DefaultLongitude
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return orb.Point{}, 0, domainerrors.ErrValidationFailed.WrapMessage("coordinates out of range")
	}

	radius := query.RadiusKm
	if radius <= 0 {
		radius = srv.cfg.MapRadiusKm
	}
	if radius > srv.cfg.MaxMapRadiusKm {
		radius = srv.cfg.MaxMapRadiusKm
	}

	return orb.Point{lng, lat}, radius, nil
}

func shopPoint(shop *entity.Shop) orb.Point {
	return orb.Point{shop.Longitude, shop.Latitude}
}

// ShopPage loads everything the public shop page shows. Secondary lists degrade to empty.
func (srv *shopService) ShopPage(ctx context.Context, shopID, viewerID uuid.UUID) (*usecase.ShopPage, error) {
	shop, err := srv.findShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	page := &usecase.ShopPage{
		Shop:     shop,
		Products: []*entity.Product{},
		Events:   []*entity.ShopEvent{},
		Reviews:  []*entity.ReviewWithAuthor{},
	}

	if products, err := srv.productRepo.ListByShop(ctx, shopID); err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("shopID", shopID), slog.Any("error", err))
	} else {
		page.Products = products
	}

	if events, err := srv.eventRepo.ListByShop(ctx, shopID); err != nil {
		srv.log(ctx).Error("Failed to list events", slog.Any("shopID", shopID), slog.Any("error", err))
	} else {
		page.Events = events
	}

	if reviews, err := srv.reviewRepo.ListByShop(ctx, shopID); err != nil {
		srv.log(ctx).Error("Failed to list reviews", slog.Any("shopID", shopID), slog.Any("error", err))
	} else {
		page.Reviews = reviews
	}

	if viewerID != uuid.Nil {
		isFavorite, err := srv.favoriteRepo.Exists(ctx, viewerID, shopID)
		if err != nil {
			srv.log(ctx).Error("Failed to read favorite state", slog.Any("shopID", shopID), slog.Any("error", err))
		}
		page.IsFavorite = isFavorite
	}

	return page, nil
}

// ShopQR renders the QR code of the shop's public page.
func (srv *shopService) ShopQR(ctx context.Context, shopID uuid.UUID) ([]byte, error) {
	if _, err := srv.findShop(ctx, shopID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateShopQR(shopID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate shop QR code")
	}

	return png, nil
}

func (srv *shopService) findShop(ctx context.Context, shopID uuid.UUID) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, errors.WithStack(domainerrors.ErrShopNotFound)
		}

		return nil, errors.Wrap(err, "failed to find shop")
	}

	return shop, nil
}
