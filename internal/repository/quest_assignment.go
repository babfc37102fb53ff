package repository

import (
	"context"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
)

type QuestAssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.QuestAssignment) error
	GetByID(ctx context.Context, id string) (*entity.QuestAssignment, error)

	// GetPublished returns the assignments created by admins which cover date,
	// in creation order. An empty cadence matches every cadence.
	GetPublished(ctx context.Context, cadence entity.QuestCadence, date string) ([]entity.QuestAssignment, error)

	// GetForPeriod returns the oldest assignment of the quest overlapping the
	// period [start, end], whoever created it.
	GetForPeriod(ctx context.Context, questID, start, end string) (*entity.QuestAssignment, error)
}

type questAssignmentRepository struct{}

func NewQuestAssignmentRepository() *questAssignmentRepository {
	return &questAssignmentRepository{}
}

func (r *questAssignmentRepository) Create(ctx context.Context, assignment *entity.QuestAssignment) error {
	return xcontext.DB(ctx).Create(assignment).Error
}

func (r *questAssignmentRepository) GetByID(ctx context.Context, id string) (*entity.QuestAssignment, error) {
	var result entity.QuestAssignment
	if err := xcontext.DB(ctx).Preload("Quest").Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questAssignmentRepository) GetPublished(
	ctx context.Context, cadence entity.QuestCadence, date string,
) ([]entity.QuestAssignment, error) {
	tx := xcontext.DB(ctx).
		Joins("Quest").
		Where("quest_assignments.assigned_by IS NULL").
		Where("quest_assignments.start_date <= ? AND quest_assignments.end_date >= ?", date, date).
		Order("quest_assignments.created_at ASC")

	if cadence != "" {
		tx = tx.Where("Quest.cadence=?", cadence)
	}

	var result []entity.QuestAssignment
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questAssignmentRepository) GetForPeriod(
	ctx context.Context, questID, start, end string,
) (*entity.QuestAssignment, error) {
	var result entity.QuestAssignment
	err := xcontext.DB(ctx).
		Where("quest_id=? AND start_date <= ? AND end_date >= ?", questID, end, start).
		Order("created_at ASC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
