package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortal_RequiredRole(t *testing.T) {
	tests := []struct {
		portal Portal
		want   Role
	}{
		{PortalBuyer, RoleBuyer},
		{PortalSeller, RoleSeller},
		{PortalAdmin, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.portal.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.portal.RequiredRole())
			assert.True(t, tt.portal.IsValid())
		})
	}

	assert.False(t, Portal("merchant").IsValid())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleBuyer.IsValid())
	assert.True(t, RoleSeller.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("user").IsValid())
}

func TestProfile_DisplayFallbacks(t *testing.T) {
	p := &Profile{Email: "juan@example.com"}
	assert.Equal(t, "juan", p.DisplayName())
	assert.Equal(t, DefaultLocation, p.DisplayLocation())

	p.FullName = "Juan Dela Cruz"
	p.Location = "Tacloban"
	assert.Equal(t, "Juan Dela Cruz", p.DisplayName())
	assert.Equal(t, "Tacloban", p.DisplayLocation())
}

func TestShopFilter(t *testing.T) {
	assert.False(t, ShopFilter{Category: "All"}.HasCategory())
	assert.False(t, ShopFilter{Category: " "}.HasCategory())
	assert.True(t, ShopFilter{Category: "Food"}.HasCategory())
	assert.False(t, ShopFilter{}.HasTown())
	assert.True(t, ShopFilter{Town: "Palo"}.HasTown())
}

func TestNewShopFromApplication(t *testing.T) {
	app := &SellerApplication{BusinessName: "Cafe Cafe", Address: "Palo, Leyte", Category: "Food"}
	shop := NewShopFromApplication(app)

	assert.Equal(t, app.UserID, shop.OwnerID)
	assert.Equal(t, "Cafe Cafe", shop.Name)
	assert.Equal(t, 0.0, shop.Rating)
	assert.Equal(t, 10.745, shop.Latitude)
	assert.Equal(t, 124.79, shop.Longitude)
	assert.Equal(t, DefaultShopDescription, shop.Description)
}
