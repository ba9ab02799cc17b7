package entities

// Claims is the custom claim set attached to a user's identity token.
// Identity providers treat the claim set as an atomic blob, so every write
// must carry the full map; partial writes silently drop unrelated claims.
type Claims map[string]interface{}

const (
	ClaimTenantID   = "tenantId"
	ClaimAdmin      = "admin"
	ClaimSuperAdmin = "superAdmin"
)

// AssignTenant returns a copy of the claim set with only the tenantId claim
// replaced. All other claims, notably admin and superAdmin, carry over.
func AssignTenant(claims Claims, tenantID string) Claims {
	merged := make(Claims, len(claims)+1)
	for k, v := range claims {
		merged[k] = v
	}
	merged[ClaimTenantID] = tenantID
	return merged
}

// NewUserClaims is the claim set seeded at account creation.
func NewUserClaims(tenantID string) Claims {
	return Claims{
		ClaimTenantID:   tenantID,
		ClaimAdmin:      false,
		ClaimSuperAdmin: false,
	}
}

// TenantID returns the tenantId claim, or "" if unset.
func (c Claims) TenantID() string {
	if v, ok := c[ClaimTenantID].(string); ok {
		return v
	}
	return ""
}

// Admin returns the admin claim.
func (c Claims) Admin() bool {
	v, _ := c[ClaimAdmin].(bool)
	return v
}

// SuperAdmin returns the superAdmin claim.
func (c Claims) SuperAdmin() bool {
	v, _ := c[ClaimSuperAdmin].(bool)
	return v
}

// Privileged reports whether the claim set grants management access.
func (c Claims) Privileged() bool {
	return c.Admin() || c.SuperAdmin()
}
