package repository

import "gorm.io/gorm"

// TenantScope restricts a query to rows owned by the given tenant. Every
// repository method operating on tenant-owned data goes through this scope;
// a row outside the caller's tenant behaves exactly like a missing row.
func TenantScope(tenantID string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
