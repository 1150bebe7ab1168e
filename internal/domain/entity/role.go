package entity

// Role represents the role attribute stored on a profile.
type Role string

const (
	// RoleBuyer is the default role of every new account.
	RoleBuyer Role = "buyer"
	// RoleSeller is granted by the approval workflow.
	RoleSeller Role = "seller"
	// RoleAdmin is granted only by direct administrative action.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// Portal is one of the three disjoint entry surfaces of the marketplace.
type Portal string

const (
	PortalBuyer  Portal = "buyer"
	PortalSeller Portal = "seller"
	PortalAdmin  Portal = "admin"
)

// String returns the string representation of the Portal.
func (p Portal) String() string {
	return string(p)
}

// IsValid checks if the Portal is a known portal.
func (p Portal) IsValid() bool {
	switch p {
	case PortalBuyer, PortalSeller, PortalAdmin:
		return true
	default:
		return false
	}
}

// RequiredRole returns the only role allowed to enter the portal.
func (p Portal) RequiredRole() Role {
	switch p {
	case PortalSeller:
		return RoleSeller
	case PortalAdmin:
		return RoleAdmin
	default:
		return RoleBuyer
	}
}

// LoginRoute is where a denied visitor of the portal is sent.
func (p Portal) LoginRoute() string {
	switch p {
	case PortalSeller:
		return "/auth/seller-login"
	case PortalAdmin:
		return "/admin/login"
	default:
		return "/auth/login"
	}
}
