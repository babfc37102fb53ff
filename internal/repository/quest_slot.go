package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestSlotRepository interface {
	// CreateIfNotExists inserts the slots, silently skipping every slot whose
	// (user, date, slot number) already exists.
	CreateIfNotExists(ctx context.Context, slots []*entity.QuestSlot) error
	GetByID(ctx context.Context, id string) (*entity.QuestSlot, error)
	GetByUserAndDate(ctx context.Context, userID, date string, slotNumbers []int) ([]entity.QuestSlot, error)

	// Reroll replaces the quest of a slot which is neither rerolled nor
	// completed and still holds currentQuestID. It returns
	// gorm.ErrRecordNotFound if no slot satisfies these conditions.
	Reroll(ctx context.Context, slotID, currentQuestID, newQuestID string) error
	MarkCompleted(ctx context.Context, slotID string) error
}

type questSlotRepository struct{}

func NewQuestSlotRepository() *questSlotRepository {
	return &questSlotRepository{}
}

func (r *questSlotRepository) CreateIfNotExists(ctx context.Context, slots []*entity.QuestSlot) error {
	if len(slots) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(slots).Error
}

func (r *questSlotRepository) GetByID(ctx context.Context, id string) (*entity.QuestSlot, error) {
	var result entity.QuestSlot
	if err := xcontext.DB(ctx).Preload("Quest").Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questSlotRepository) GetByUserAndDate(
	ctx context.Context, userID, date string, slotNumbers []int,
) ([]entity.QuestSlot, error) {
	var result []entity.QuestSlot
	err := xcontext.DB(ctx).
		Preload("Quest").
		Where("user_id=? AND date=? AND slot_number IN (?)", userID, date, slotNumbers).
		Order("slot_number ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questSlotRepository) Reroll(ctx context.Context, slotID, currentQuestID, newQuestID string) error {
	tx := xcontext.DB(ctx).Model(&entity.QuestSlot{}).
		Where("id=? AND quest_id=? AND has_rerolled=? AND completed=?", slotID, currentQuestID, false, false).
		Updates(map[string]any{
			"quest_id":     newQuestID,
			"has_rerolled": true,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *questSlotRepository) MarkCompleted(ctx context.Context, slotID string) error {
	tx := xcontext.DB(ctx).Model(&entity.QuestSlot{}).
		Where("id=?", slotID).
		Update("completed", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
