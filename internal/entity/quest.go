package entity

import "github.com/creatorhq/backend/pkg/enum"

type QuestCadence string

var (
	CadenceDaily   = enum.New(QuestCadence("daily"))
	CadenceWeekly  = enum.New(QuestCadence("weekly"))
	CadenceMonthly = enum.New(QuestCadence("monthly"))
)

type Quest struct {
	Base

	Title          string
	GameName       string
	Description    string       `gorm:"type:text"`
	Cadence        QuestCadence `gorm:"index"`
	XPReward       int64
	BananaReward   int64
	ProgressTarget int
	IsActive       bool `gorm:"index"`
	CreatedBy      string
}
