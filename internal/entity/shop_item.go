package entity

import "database/sql"

type ShopItem struct {
	Base

	Name        string
	Description string `gorm:"type:text"`
	ImageURL    string
	BananaCost  int64
	// Stock is null when the item is unlimited.
	Stock     sql.NullInt64
	IsActive  bool
	CreatedBy string
}
