package testutil

import (
	"context"
	"database/sql"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
)

var (
	// Users
	Admin1 = &entity.User{Base: entity.Base{ID: "admin1"}, Name: "admin1", Role: entity.RoleAdmin}
	User1  = &entity.User{Base: entity.Base{ID: "user1"}, Name: "user1", Role: entity.RoleChatter}
	User2  = &entity.User{Base: entity.Base{ID: "user2"}, Name: "user2", Role: entity.RoleChatter}
	User3  = &entity.User{Base: entity.Base{ID: "user3"}, Name: "user3", Role: entity.RoleChatter}
	Users  = []*entity.User{Admin1, User1, User2, User3}

	// Quests
	DailyQuest1 = &entity.Quest{
		Base:         entity.Base{ID: "daily1"},
		Title:        "Send 50 mass messages",
		Cadence:      entity.CadenceDaily,
		XPReward:     10,
		BananaReward: 1,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	DailyQuest2 = &entity.Quest{
		Base:         entity.Base{ID: "daily2"},
		Title:        "Reply to every fan within an hour",
		Cadence:      entity.CadenceDaily,
		XPReward:     20,
		BananaReward: 2,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	DailyQuest3 = &entity.Quest{
		Base:         entity.Base{ID: "daily3"},
		Title:        "Sell three customs",
		Cadence:      entity.CadenceDaily,
		XPReward:     30,
		BananaReward: 3,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	DailyQuest4 = &entity.Quest{
		Base:         entity.Base{ID: "daily4"},
		Title:        "Use the word of the day",
		Cadence:      entity.CadenceDaily,
		XPReward:     40,
		BananaReward: 4,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	InactiveDailyQuest = &entity.Quest{
		Base:      entity.Base{ID: "daily-inactive"},
		Title:     "Retired daily quest",
		Cadence:   entity.CadenceDaily,
		XPReward:  100,
		IsActive:  false,
		CreatedBy: Admin1.ID,
	}
	WeeklyQuest1 = &entity.Quest{
		Base:         entity.Base{ID: "weekly1"},
		Title:        "Reach 500 dollars of sales",
		Cadence:      entity.CadenceWeekly,
		XPReward:     100,
		BananaReward: 10,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	WeeklyQuest2 = &entity.Quest{
		Base:         entity.Base{ID: "weekly2"},
		Title:        "Bring back ten inactive fans",
		Cadence:      entity.CadenceWeekly,
		XPReward:     120,
		BananaReward: 12,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	MonthlyQuest1 = &entity.Quest{
		Base:         entity.Base{ID: "monthly1"},
		Title:        "Top seller of the month",
		Cadence:      entity.CadenceMonthly,
		XPReward:     500,
		BananaReward: 50,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	MonthlyQuest2 = &entity.Quest{
		Base:         entity.Base{ID: "monthly2"},
		Title:        "Zero missed shifts",
		Cadence:      entity.CadenceMonthly,
		XPReward:     400,
		BananaReward: 40,
		IsActive:     true,
		CreatedBy:    Admin1.ID,
	}
	Quests = []*entity.Quest{
		DailyQuest1, DailyQuest2, DailyQuest3, DailyQuest4, InactiveDailyQuest,
		WeeklyQuest1, WeeklyQuest2, MonthlyQuest1, MonthlyQuest2,
	}

	// Ranks
	RankRookie = &entity.Rank{
		Base:       entity.Base{ID: "rookie"},
		Name:       "Rookie",
		MinXP:      0,
		MaxXP:      sql.NullInt64{Int64: 99, Valid: true},
		BadgeColor: "#9CA3AF",
		SortOrder:  1,
	}
	RankPro = &entity.Rank{
		Base:       entity.Base{ID: "pro"},
		Name:       "Pro",
		MinXP:      100,
		MaxXP:      sql.NullInt64{Int64: 499, Valid: true},
		BadgeColor: "#3B82F6",
		SortOrder:  2,
	}
	RankLegend = &entity.Rank{
		Base:       entity.Base{ID: "legend"},
		Name:       "Legend",
		MinXP:      500,
		BadgeColor: "#F59E0B",
		SortOrder:  3,
	}
	Ranks = []*entity.Rank{RankRookie, RankPro, RankLegend}

	// Shop items
	UnlimitedShopItem = &entity.ShopItem{
		Base:       entity.Base{ID: "item-unlimited"},
		Name:       "Coffee voucher",
		BananaCost: 5,
		IsActive:   true,
		CreatedBy:  Admin1.ID,
	}
	LimitedShopItem = &entity.ShopItem{
		Base:       entity.Base{ID: "item-limited"},
		Name:       "Day off",
		BananaCost: 10,
		Stock:      sql.NullInt64{Int64: 1, Valid: true},
		IsActive:   true,
		CreatedBy:  Admin1.ID,
	}
	InactiveShopItem = &entity.ShopItem{
		Base:       entity.Base{ID: "item-inactive"},
		Name:       "Old merch",
		BananaCost: 1,
		IsActive:   false,
		CreatedBy:  Admin1.ID,
	}
	ShopItems = []*entity.ShopItem{UnlimitedShopItem, LimitedShopItem, InactiveShopItem}
)

// CreateFixtureDb inserts the fixtures into the database of ctx.
func CreateFixtureDb(ctx context.Context) {
	db := xcontext.DB(ctx)

	for _, u := range Users {
		if err := db.Create(u).Error; err != nil {
			panic(err)
		}
	}

	for _, q := range Quests {
		if err := db.Create(q).Error; err != nil {
			panic(err)
		}
	}

	for _, r := range Ranks {
		if err := db.Create(r).Error; err != nil {
			panic(err)
		}
	}

	for _, item := range ShopItems {
		if err := db.Create(item).Error; err != nil {
			panic(err)
		}
	}
}
