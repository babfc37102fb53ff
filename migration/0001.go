package migration

import (
	"context"
	"database/sql"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/google/uuid"
)

// migrate0001 seeds the default ranks when none exist.
func migrate0001(ctx context.Context) error {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.Rank{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	ranks := []entity.Rank{
		{Name: "Rookie", MinXP: 0, MaxXP: sql.NullInt64{Int64: 499, Valid: true}, BadgeColor: "#9CA3AF", SortOrder: 1},
		{Name: "Hustler", MinXP: 500, MaxXP: sql.NullInt64{Int64: 1499, Valid: true}, BadgeColor: "#10B981", SortOrder: 2},
		{Name: "Closer", MinXP: 1500, MaxXP: sql.NullInt64{Int64: 3999, Valid: true}, BadgeColor: "#3B82F6", SortOrder: 3},
		{Name: "Top Banana", MinXP: 4000, BadgeColor: "#F59E0B", SortOrder: 4},
	}
	for i := range ranks {
		ranks[i].ID = uuid.NewString()
	}

	return xcontext.DB(ctx).Create(&ranks).Error
}
