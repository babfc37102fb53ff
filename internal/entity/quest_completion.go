package entity

import (
	"database/sql"

	"github.com/creatorhq/backend/pkg/enum"
)

type CompletionStatus string

var (
	CompletionPending  = enum.New(CompletionStatus("pending"))
	CompletionApproved = enum.New(CompletionStatus("approved"))
	CompletionRejected = enum.New(CompletionStatus("rejected"))
)

type QuestCompletion struct {
	Base

	UserID            string          `gorm:"uniqueIndex:idx_quest_completions_user_assignment"`
	QuestAssignmentID string          `gorm:"uniqueIndex:idx_quest_completions_user_assignment"`
	QuestAssignment   QuestAssignment `gorm:"foreignKey:QuestAssignmentID"`
	QuestSlotID       sql.NullString

	Status        CompletionStatus `gorm:"index"`
	Attachments   Array[string]
	XPEarned      int64
	BananasEarned int64
	ReviewerID    sql.NullString
	ReviewedAt    sql.NullTime
}
