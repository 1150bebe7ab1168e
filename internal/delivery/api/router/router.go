// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"path/filepath"

	"neighborhood/config"
	"neighborhood/internal/delivery/api/middleware"
	"neighborhood/internal/delivery/api/router/handler"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	"neighborhood/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	ShopHandler      *handler.ShopHandler
	ReviewHandler    *handler.ReviewHandler
	FavoriteHandler  *handler.FavoriteHandler
	SellerHandler    *handler.SellerHandler
	AdminHandler     *handler.AdminHandler
	ProfileHandler   *handler.ProfileHandler
	DeviceHandler    *handler.DeviceHandler
	PortalMiddleware *middleware.PortalMiddleware
	Metrics          *metrics.Recorder `optional:"true"`
	Config           *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{RouterParams: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.Metrics != nil && r.Config.Metrics.Enabled {
		e.GET(r.Config.Metrics.Path, echo.WrapHandler(r.Metrics.Handler()))
	}

	// Seller proofs are never served; only the public image buckets are.
	if r.Config.Storage.Driver == constants.StorageDriverFile {
		for _, bucket := range []string{constants.BucketImages, constants.BucketProductImage} {
			e.Static("/storage/"+bucket, filepath.Join(r.Config.Storage.Dir, bucket))
		}
	}

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.AuthHandler.SignUp)
		authGroup.POST("/seller-signup", r.AuthHandler.SignUpSeller)
		authGroup.POST("/signin", r.AuthHandler.SignIn)
		authGroup.POST("/refresh", r.AuthHandler.Refresh)
		authGroup.POST("/signout", r.AuthHandler.SignOut)
	}

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/categories", r.ShopHandler.Categories)

	// Routes shared by every role
	authenticated := r.PortalMiddleware.Authenticate
	{
		apiV1.GET("/me", r.ProfileHandler.Me, authenticated)
		apiV1.GET("/me/header", r.ProfileHandler.Header, authenticated)
		apiV1.PUT("/me", r.ProfileHandler.Update, authenticated)
		apiV1.PUT("/me/privacy", r.ProfileHandler.UpdatePrivacy, authenticated)
		apiV1.GET("/profiles/:id", r.ProfileHandler.Public, authenticated)
	}

	devicesGroup := apiV1.Group("/devices", authenticated)
	{
		devicesGroup.POST("", r.DeviceHandler.RegisterDevice)
		devicesGroup.GET("", r.DeviceHandler.GetUserDevices)
		devicesGroup.PUT("/:id/token", r.DeviceHandler.UpdatePushToken)
		devicesGroup.DELETE("/:id", r.DeviceHandler.RemoveDevice)
	}

	buyerGroup := apiV1.Group("/buyer")
	buyerGroup.Use(r.PortalMiddleware.RequirePortal(entity.PortalBuyer))
	{
		buyerGroup.GET("/session", r.ProfileHandler.Portal(entity.PortalBuyer))
		buyerGroup.GET("/shops", r.ShopHandler.Search)
		buyerGroup.GET("/shops/top-rated", r.ShopHandler.TopRated)
		buyerGroup.GET("/map", r.ShopHandler.Map)
		buyerGroup.GET("/shops/:id", r.ShopHandler.Page)
		buyerGroup.GET("/shops/:id/qr", r.ShopHandler.QR)
		buyerGroup.GET("/shops/:id/reviews", r.ReviewHandler.List)
		buyerGroup.POST("/shops/:id/reviews", r.ReviewHandler.Post)
		buyerGroup.POST("/shops/:id/favorite", r.FavoriteHandler.Toggle)
		buyerGroup.GET("/favorites", r.FavoriteHandler.List)
	}

	sellerGroup := apiV1.Group("/seller")
	sellerGroup.Use(r.PortalMiddleware.RequirePortal(entity.PortalSeller))
	{
		sellerGroup.GET("/session", r.ProfileHandler.Portal(entity.PortalSeller))
		sellerGroup.GET("/shop", r.SellerHandler.GetShop)
		sellerGroup.PUT("/shop", r.SellerHandler.SaveShopSettings)
		sellerGroup.GET("/shop/qr", r.SellerHandler.ShopQR)

		sellerGroup.GET("/products", r.SellerHandler.ListProducts)
		sellerGroup.POST("/products", r.SellerHandler.CreateProduct)
		sellerGroup.PUT("/products/:id", r.SellerHandler.UpdateProduct)
		sellerGroup.DELETE("/products/:id", r.SellerHandler.DeleteProduct)

		sellerGroup.GET("/events", r.SellerHandler.ListEvents)
		sellerGroup.POST("/events", r.SellerHandler.CreateEvent)
		sellerGroup.PUT("/events/:id", r.SellerHandler.UpdateEvent)
		sellerGroup.DELETE("/events/:id", r.SellerHandler.DeleteEvent)
	}

	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(r.PortalMiddleware.RequirePortal(entity.PortalAdmin))
	{
		adminGroup.GET("/session", r.ProfileHandler.Portal(entity.PortalAdmin))
		adminGroup.GET("/dashboard", r.AdminHandler.Snapshot)
		adminGroup.GET("/dashboard/stream", r.AdminHandler.Stream)
		adminGroup.GET("/applications", r.AdminHandler.ListApplications)
		adminGroup.POST("/applications/:id/approve", r.AdminHandler.Approve)
		adminGroup.POST("/applications/:id/reject", r.AdminHandler.Reject)
		adminGroup.GET("/shops", r.AdminHandler.ListShops)
		adminGroup.GET("/export.xlsx", r.AdminHandler.Export)
	}
}
