package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "neighborhood/internal/delivery/context"
	"neighborhood/internal/domain/constants"
	"neighborhood/internal/domain/entity"
	domainerrors "neighborhood/internal/domain/errors"
	"neighborhood/internal/domain/repository"
	"neighborhood/internal/domain/service"
	"neighborhood/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sellerService implements the SellerUsecase interface.
type sellerService struct {
	shopRepo    repository.ShopRepository
	productRepo repository.ProductRepository
	eventRepo   repository.EventRepository
	qrService   service.QRCodeService
	uploader    *uploader
	logger      *slog.Logger
}

// SellerServiceParams holds dependencies for SellerService, injected by Fx.
type SellerServiceParams struct {
	fx.In

	ShopRepo    repository.ShopRepository
	ProductRepo repository.ProductRepository
	EventRepo   repository.EventRepository
	QRService   service.QRCodeService
	Storage     service.ObjectStorage
	Metrics     service.MetricsRecorder
	Logger      *slog.Logger
}

// NewSellerService is the constructor for sellerService.
func NewSellerService(params SellerServiceParams) usecase.SellerUsecase {
	return &sellerService{
		shopRepo:    params.ShopRepo,
		productRepo: params.ProductRepo,
		eventRepo:   params.EventRepo,
		qrService:   params.QRService,
		uploader:    newUploader(params.Storage, params.Metrics, params.Logger),
		logger:      params.Logger,
	}
}

func (srv *sellerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetShop returns the caller's shop.
func (srv *sellerService) GetShop(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	return srv.ownShop(ctx, ownerID)
}

func (srv *sellerService) ownShop(ctx context.Context, ownerID uuid.UUID) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrShopNotFound) {
			return nil, domainerrors.ErrShopNotFound.WrapMessage("seller has no shop yet")
		}

		return nil, errors.Wrap(err, "failed to find shop by owner")
	}

	return shop, nil
}

// SaveShopSettings creates or updates the caller's shop. A new image is stored before the write.
func (srv *sellerService) SaveShopSettings(ctx context.Context, ownerID uuid.UUID, input *usecase.ShopSettingsInput) (*entity.Shop, error) {
	if err := validateShopSettings(&input.ShopSettings); err != nil {
		return nil, err
	}

	existing, err := srv.shopRepo.FindByOwner(ctx, ownerID)
	if err != nil && !errors.Is(err, repository.ErrShopNotFound) {
		return nil, errors.Wrap(err, "failed to find shop by owner")
	}

	imageURL := input.ImageURL
	if !input.Image.IsEmpty() {
		imageURL, err = srv.uploader.uploadImage(ctx, constants.FolderShops, input.Image)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload shop image")
		}
	}

	shop := &entity.Shop{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		ImageURL:    imageURL,
	}
	if existing != nil {
		shop.ID = existing.ID
		shop.Category = existing.Category
		shop.ContactNumber = existing.ContactNumber
		shop.Rating = existing.Rating
		if shop.ImageURL == "" {
			shop.ImageURL = existing.ImageURL
		}
	}

	if err := srv.shopRepo.UpsertByOwner(ctx, shop); err != nil {
		return nil, errors.Wrap(err, "failed to save shop settings")
	}

	srv.log(ctx).Info("Saved shop settings", slog.Any("ownerID", ownerID), slog.Any("shopID", shop.ID))

	return shop, nil
}

func validateShopSettings(settings *entity.ShopSettings) error {
	if strings.TrimSpace(settings.Name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("shop name is required")
	}
	if settings.Latitude < -90 || settings.Latitude > 90 || settings.Longitude < -180 || settings.Longitude > 180 {
		return domainerrors.ErrValidationFailed.WrapMessage("shop location out of range")
	}

	return nil
}

// ShopQR renders the QR code of the caller's shop page.
func (srv *sellerService) ShopQR(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateShopQR(shop.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate shop QR code")
	}

	return png, nil
}

// --- Products ---

func (srv *sellerService) ListProducts(ctx context.Context, ownerID uuid.UUID) ([]*entity.Product, error) {
	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	products, err := srv.productRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *sellerService) CreateProduct(ctx context.Context, ownerID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:     uuid.New(),
		ShopID: shop.ID,
		Name:   strings.TrimSpace(input.Name),
		Price:  input.Price,
	}

	if !input.Image.IsEmpty() {
		product.ImageURL, err = srv.uploader.uploadProductImage(ctx, input.Image)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload product image")
		}
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	return product, nil
}

func (srv *sellerService) UpdateProduct(ctx context.Context, ownerID, productID uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := validateProduct(input); err != nil {
		return nil, err
	}

	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil || product.ShopID != shop.ID {
		return nil, productLookupError(err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price

	if !input.Image.IsEmpty() {
		product.ImageURL, err = srv.uploader.uploadProductImage(ctx, input.Image)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload product image")
		}
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, productLookupError(err)
	}

	return product, nil
}

func (srv *sellerService) DeleteProduct(ctx context.Context, ownerID, productID uuid.UUID) error {
	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return err
	}

	if err := srv.productRepo.Delete(ctx, shop.ID, productID); err != nil {
		return productLookupError(err)
	}

	return nil
}

func validateProduct(input *usecase.ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("product name is required")
	}
	if input.Price < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("price must not be negative")
	}

	return nil
}

// productLookupError hides products of other shops behind not found.
func productLookupError(err error) error {
	if err == nil || errors.Is(err, repository.ErrProductNotFound) {
		return errors.WithStack(domainerrors.ErrProductNotFound)
	}

	return errors.Wrap(err, "failed to access product")
}

// --- Events ---

func (srv *sellerService) ListEvents(ctx context.Context, ownerID uuid.UUID) ([]*entity.ShopEvent, error) {
	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	events, err := srv.eventRepo.ListByShop(ctx, shop.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	return events, nil
}

func (srv *sellerService) CreateEvent(ctx context.Context, ownerID uuid.UUID, input *usecase.EventInput) (*entity.ShopEvent, error) {
	status, err := validateEvent(input)
	if err != nil {
		return nil, err
	}

	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	event := &entity.ShopEvent{
		ID:          uuid.New(),
		ShopID:      shop.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      status,
	}

	if err := srv.eventRepo.Create(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	return event, nil
}

func (srv *sellerService) UpdateEvent(ctx context.Context, ownerID, eventID uuid.UUID, input *usecase.EventInput) (*entity.ShopEvent, error) {
	status, err := validateEvent(input)
	if err != nil {
		return nil, err
	}

	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	event, err := srv.eventRepo.FindByID(ctx, eventID)
	if err != nil || event.ShopID != shop.ID {
		return nil, eventLookupError(err)
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Description = strings.TrimSpace(input.Description)
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.Status = status

	if err := srv.eventRepo.Update(ctx, event); err != nil {
		return nil, eventLookupError(err)
	}

	return event, nil
}

func (srv *sellerService) DeleteEvent(ctx context.Context, ownerID, eventID uuid.UUID) error {
	shop, err := srv.ownShop(ctx, ownerID)
	if err != nil {
		return err
	}

	if err := srv.eventRepo.Delete(ctx, shop.ID, eventID); err != nil {
		return eventLookupError(err)
	}

	return nil
}

// validateEvent checks the input and returns its status, defaulting to upcoming.
func validateEvent(input *usecase.EventInput) (entity.EventStatus, error) {
	if strings.TrimSpace(input.Title) == "" {
		return "", domainerrors.ErrValidationFailed.WrapMessage("event title is required")
	}
	if input.StartDate.IsZero() {
		return "", domainerrors.ErrValidationFailed.WrapMessage("event start date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return "", domainerrors.ErrValidationFailed.WrapMessage("event ends before it starts")
	}

	status := input.Status
	if status == "" {
		status = entity.EventUpcoming
	}
	if !status.IsValid() {
		return "", domainerrors.ErrValidationFailed.WrapMessage("unknown event status " + string(status))
	}

	return status, nil
}

func eventLookupError(err error) error {
	if err == nil || errors.Is(err, repository.ErrEventNotFound) {
		return errors.WithStack(domainerrors.ErrEventNotFound)
	}

	return errors.Wrap(err, "failed to access event")
}
