package entity

import "time"

type ChatterStats struct {
	UserID    string `gorm:"primarykey"`
	User      User   `gorm:"foreignKey:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TotalXP       int64 `gorm:"index"`
	BananaBalance int64
}
