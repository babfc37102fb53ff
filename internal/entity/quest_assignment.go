package entity

import "database/sql"

// QuestAssignment binds a quest to a range of dates. Assignments published by
// an admin have a null AssignedBy, the ones created on completion carry the
// submitting user.
type QuestAssignment struct {
	Base

	QuestID string `gorm:"index"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	StartDate  string `gorm:"type:varchar(10);index"`
	EndDate    string `gorm:"type:varchar(10);index"`
	AssignedBy sql.NullString
	Data       Map
}
