package service

import "neighborhood/internal/domain/entity"

// BusinessExporter renders the admin's registered-business export.
type BusinessExporter interface {
	// ExportBusinesses returns an xlsx workbook with one sheet of applications and one of shops.
	ExportBusinesses(apps []*entity.SellerApplication, shops []*entity.ShopWithOwner) ([]byte, error)
}
