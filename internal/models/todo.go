package models

type Todo struct {
	ID          uint64  `gorm:"primarykey" json:"id"`
	Title       string  `gorm:"type:varchar(255);not null" json:"title"`
	Description *string `gorm:"type:text" json:"description"`
	Priority    int     `gorm:"not null" json:"priority"`
	Complete    bool    `gorm:"not null" json:"complete"`
	OwnerID     uint64  `gorm:"index;not null" json:"owner_id"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
