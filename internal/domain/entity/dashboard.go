package entity

import "time"

// AdminSnapshot is a full read of everything the admin dashboard shows.
type AdminSnapshot struct {
	Applications []*SellerApplication `json:"applications"`
	Shops        []*ShopWithOwner     `json:"shops"`
	PendingCount int                  `json:"pending_count"`
	FetchedAt    time.Time            `json:"fetched_at"`
}

// NewAdminSnapshot counts pending applications and stamps the read time.
func NewAdminSnapshot(apps []*SellerApplication, shops []*ShopWithOwner, fetchedAt time.Time) *AdminSnapshot {
	pending := 0
	for _, a := range apps {
		if a.IsPending() {
			pending++
		}
	}

	return &AdminSnapshot{
		Applications: apps,
		Shops:        shops,
		PendingCount: pending,
		FetchedAt:    fetchedAt,
	}
}
