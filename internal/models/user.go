package models

type User struct {
	ID             uint64  `gorm:"primarykey" json:"id"`
	Username       string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email          *string `gorm:"type:varchar(255)" json:"email"`
	FirstName      string  `gorm:"type:varchar(255)" json:"first_name"`
	LastName       string  `gorm:"type:varchar(255)" json:"last_name"`
	HashedPassword string  `gorm:"type:varchar(255);not null" json:"-"`
	IsActive       bool    `gorm:"not null" json:"is_active"`
}
