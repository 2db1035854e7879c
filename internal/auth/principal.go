package auth

// Principal is the identity attached to an authenticated request. It is
// built from a freshly re-read credential record on every request, never
// from token claims alone, so its flags always reflect current state.
type Principal struct {
	ID                 string
	Login              string
	Role               Role
	CanEditProducts    bool
	CanManageLogistics bool
}

// NewPrincipal builds a principal from a live credential record.
func NewPrincipal(cred *Credential) Principal {
	return Principal{
		ID:                 cred.ID,
		Login:              cred.Login,
		Role:               cred.Role,
		CanEditProducts:    cred.CanEditProducts,
		CanManageLogistics: cred.CanManageLogistics,
	}
}

// HasRole reports whether the principal's role is in the allowed set.
func (p Principal) HasRole(allowed ...Role) bool {
	for _, role := range allowed {
		if p.Role == role {
			return true
		}
	}
	return false
}

// HasCapability reports whether the named flag is set on the principal.
func (p Principal) HasCapability(cap Capability) bool {
	switch cap {
	case CapabilityEditProducts:
		return p.CanEditProducts
	case CapabilityManageLogistics:
		return p.CanManageLogistics
	default:
		return false
	}
}
