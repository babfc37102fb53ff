package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatterStatsRepository interface {
	// GetOrCreate returns the stats of the user, creating an empty row the
	// first time.
	GetOrCreate(ctx context.Context, userID string) (*entity.ChatterStats, error)
	GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.ChatterStats, error)
	GetLeaderboard(ctx context.Context, offset, limit int) ([]entity.ChatterStats, error)
	Increase(ctx context.Context, userID string, xp, bananas int64) error

	// DecreaseBananas returns gorm.ErrRecordNotFound if the balance is lower
	// than amount.
	DecreaseBananas(ctx context.Context, userID string, amount int64) error
}

type chatterStatsRepository struct{}

func NewChatterStatsRepository() *chatterStatsRepository {
	return &chatterStatsRepository{}
}

func (r *chatterStatsRepository) GetOrCreate(ctx context.Context, userID string) (*entity.ChatterStats, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&entity.ChatterStats{UserID: userID}).Error
	if err != nil {
		return nil, err
	}

	var result entity.ChatterStats
	if err := xcontext.DB(ctx).Preload("User").Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *chatterStatsRepository) GetByUserIDs(ctx context.Context, userIDs []string) ([]entity.ChatterStats, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var result []entity.ChatterStats
	if err := xcontext.DB(ctx).Preload("User").Find(&result, "user_id IN (?)", userIDs).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetLeaderboard orders the stats by xp. A non-positive limit returns every
// row.
func (r *chatterStatsRepository) GetLeaderboard(ctx context.Context, offset, limit int) ([]entity.ChatterStats, error) {
	tx := xcontext.DB(ctx).Preload("User").Order("total_xp DESC").Order("user_id ASC")
	if limit > 0 {
		tx = tx.Offset(offset).Limit(limit)
	}

	var result []entity.ChatterStats
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *chatterStatsRepository) Increase(ctx context.Context, userID string, xp, bananas int64) error {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return err
	}

	return xcontext.DB(ctx).Model(&entity.ChatterStats{}).
		Where("user_id=?", userID).
		Updates(map[string]any{
			"total_xp":       gorm.Expr("total_xp+?", xp),
			"banana_balance": gorm.Expr("banana_balance+?", bananas),
		}).Error
}

func (r *chatterStatsRepository) DecreaseBananas(ctx context.Context, userID string, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.ChatterStats{}).
		Where("user_id=? AND banana_balance >= ?", userID, amount).
		Update("banana_balance", gorm.Expr("banana_balance-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
