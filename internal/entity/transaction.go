package entity

import "github.com/creatorhq/backend/pkg/enum"

type TransactionSource string

var (
	SourceQuestCompletion = enum.New(TransactionSource("quest_completion"))
	SourcePurchase        = enum.New(TransactionSource("purchase"))
)

// XPTransaction and BananaTransaction are append-only ledgers of every change
// applied to ChatterStats.
type XPTransaction struct {
	SnowFlakeBase

	UserID     string `gorm:"index"`
	Amount     int64
	SourceType TransactionSource
	SourceID   string
	Note       string
}

type BananaTransaction struct {
	SnowFlakeBase

	UserID     string `gorm:"index"`
	Amount     int64
	SourceType TransactionSource
	SourceID   string
	Note       string
}
