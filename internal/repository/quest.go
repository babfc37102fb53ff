package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SearchQuestFilter struct {
	Cadence    entity.QuestCadence
	ActiveOnly bool
	QuestIDs   []string
	Offset     int
	// Limit is ignored when it is not positive.
	Limit int
}

type QuestRepository interface {
	Create(ctx context.Context, quest *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Quest, error)
	GetList(ctx context.Context, filter SearchQuestFilter) ([]entity.Quest, error)
	GetActiveByCadence(ctx context.Context, cadence entity.QuestCadence) ([]entity.Quest, error)
	UpdateByID(ctx context.Context, id string, data map[string]any) error
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, quest *entity.Quest) error {
	return xcontext.DB(ctx).Create(quest).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	var result entity.Quest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Quest, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var result []entity.Quest
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", ids).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetList(ctx context.Context, filter SearchQuestFilter) ([]entity.Quest, error) {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).Order("created_at DESC")
	if filter.Cadence != "" {
		tx = tx.Where("cadence=?", filter.Cadence)
	}

	if filter.ActiveOnly {
		tx = tx.Where("is_active=?", true)
	}

	if len(filter.QuestIDs) > 0 {
		tx = tx.Where("id IN (?)", filter.QuestIDs)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.Quest
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) GetActiveByCadence(
	ctx context.Context, cadence entity.QuestCadence,
) ([]entity.Quest, error) {
	var result []entity.Quest
	err := xcontext.DB(ctx).
		Where("cadence=? AND is_active=?", cadence, true).
		Order("created_at").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) UpdateByID(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).Model(&entity.Quest{}).Where("id=?", id).Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
