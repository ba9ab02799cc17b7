package entities

// TenantOverview is one row of the per-tenant billing overview.
type TenantOverview struct {
	TenantID   string `json:"tenantId"`
	UserCount  int64  `json:"userCount"`
	ActiveKeys int64  `json:"activeKeys"`
	TotalKeys  int64  `json:"totalKeys"`
}

// TenantKeyCount is the raw key aggregation per tenant.
type TenantKeyCount struct {
	TenantID   string
	TotalKeys  int64
	ActiveKeys int64
}

// TenantUserCount is the raw user aggregation per tenant.
type TenantUserCount struct {
	TenantID  string
	UserCount int64
}
