package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type QuestCompletionFilter struct {
	UserID string
	Status []entity.CompletionStatus
	Offset int
	Limit  int
}

type QuestCompletionRepository interface {
	Create(ctx context.Context, completion *entity.QuestCompletion) error
	GetByID(ctx context.Context, id string) (*entity.QuestCompletion, error)
	GetList(ctx context.Context, filter QuestCompletionFilter) ([]entity.QuestCompletion, error)

	// Review updates a pending completion. It returns gorm.ErrRecordNotFound if
	// the completion has been reviewed already.
	Review(ctx context.Context, id string, data map[string]any) error
}

type questCompletionRepository struct{}

func NewQuestCompletionRepository() *questCompletionRepository {
	return &questCompletionRepository{}
}

func (r *questCompletionRepository) Create(ctx context.Context, completion *entity.QuestCompletion) error {
	return xcontext.DB(ctx).Omit("QuestAssignment").Create(completion).Error
}

func (r *questCompletionRepository) GetByID(ctx context.Context, id string) (*entity.QuestCompletion, error) {
	var result entity.QuestCompletion
	err := xcontext.DB(ctx).
		Preload("QuestAssignment.Quest").
		Take(&result, "id=?", id).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questCompletionRepository) GetList(
	ctx context.Context, filter QuestCompletionFilter,
) ([]entity.QuestCompletion, error) {
	tx := xcontext.DB(ctx).
		Preload("QuestAssignment.Quest").
		Order("created_at DESC")

	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if len(filter.Status) > 0 {
		tx = tx.Where("status IN (?)", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var result []entity.QuestCompletion
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questCompletionRepository) Review(ctx context.Context, id string, data map[string]any) error {
	tx := xcontext.DB(ctx).Model(&entity.QuestCompletion{}).
		Where("id=? AND status=?", id, entity.CompletionPending).
		Updates(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
