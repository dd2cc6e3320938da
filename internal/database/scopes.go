package database

import "gorm.io/gorm"

// OwnedBy restricts a todo query to rows owned by the given user.
func OwnedBy(ownerID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}
