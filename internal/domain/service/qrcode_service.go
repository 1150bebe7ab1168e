package service

import (
	"github.com/google/uuid"
)

// QRCodeService generates printable QR codes for shops.
type QRCodeService interface {
	// GenerateShopQR returns a PNG QR code linking to the shop's public page.
	GenerateShopQR(shopID uuid.UUID) ([]byte, error)

	// ShopURL returns the public page URL encoded in the QR code.
	ShopURL(shopID uuid.UUID) string
}
