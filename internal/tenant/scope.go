// Package tenant scopes queries to a single law office.
package tenant

import "gorm.io/gorm"

// Scope restricts a query to rows owned by companyID. An empty id matches
// nothing, so a request that lost its office claim cannot read across offices.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if companyID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("company_id = ?", companyID)
	}
}
