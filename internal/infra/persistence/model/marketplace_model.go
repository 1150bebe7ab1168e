package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerApplicationModel mirrors the 'seller_applications' table.
type SellerApplicationModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	BusinessName  string    `gorm:"type:varchar(255);not null"`
	OwnerName     string    `gorm:"type:varchar(255);not null"`
	ContactNumber string    `gorm:"type:varchar(50);not null"`
	Category      string    `gorm:"type:varchar(100);not null"`
	Address       string    `gorm:"type:text;not null"`
	ProofURL      string    `gorm:"column:proof_url;type:text;not null"`
	Status        string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerApplicationModel) TableName() string {
	return "seller_applications"
}

// BeforeCreate assigns an id when the caller did not.
func (m *SellerApplicationModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ShopModel mirrors the 'shops' table. owner_id is unique: one shop per owner.
type ShopModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	Address       string    `gorm:"type:text"`
	ContactNumber string    `gorm:"type:varchar(50)"`
	Category      string    `gorm:"type:varchar(100);index"`
	ImageURL      string    `gorm:"column:image_url;type:text"`
	Rating        float64   `gorm:"not null"`
	Latitude      float64   `gorm:"not null"`
	Longitude     float64   `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopModel) TableName() string {
	return "shops"
}

// BeforeCreate assigns an id when the caller did not.
func (m *ShopModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Price     float64   `gorm:"not null"`
	ImageURL  string    `gorm:"column:image_url;type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns an id when the caller did not.
func (m *ProductModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ShopEventModel mirrors the 'shop_events' table.
type ShopEventModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ShopID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	StartDate   time.Time  `gorm:"not null"`
	EndDate     *time.Time
	Status      string     `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ShopEventModel) TableName() string {
	return "shop_events"
}

// BeforeCreate assigns an id when the caller did not.
func (m *ShopEventModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"type:text;not null"`
	ImageURL  string    `gorm:"column:image_url;type:text"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// BeforeCreate assigns an id when the caller did not.
func (m *ReviewModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}

// FavoriteModel mirrors the 'favorites' table; (user_id, shop_id) is the primary key.
type FavoriteModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShopID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}
