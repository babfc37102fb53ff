package entity

import (
	"database/sql"

	"github.com/creatorhq/backend/pkg/enum"
)

type PurchaseStatus string

var (
	PurchaseUnused   = enum.New(PurchaseStatus("unused"))
	PurchaseRedeemed = enum.New(PurchaseStatus("redeemed"))
	PurchaseExpired  = enum.New(PurchaseStatus("expired"))
)

type Purchase struct {
	Base

	UserID     string `gorm:"index"`
	ShopItemID string
	ShopItem   ShopItem `gorm:"foreignKey:ShopItemID"`

	BananaSpent int64
	VoucherCode string `gorm:"unique"`
	Status      PurchaseStatus
	RedeemedAt  sql.NullTime
	RedeemedBy  sql.NullString
}
