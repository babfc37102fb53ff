package entity

type QuestSlot struct {
	Base

	UserID     string `gorm:"uniqueIndex:idx_quest_slots_user_date_number"`
	Date       string `gorm:"type:varchar(10);uniqueIndex:idx_quest_slots_user_date_number"`
	SlotNumber int    `gorm:"uniqueIndex:idx_quest_slots_user_date_number"`

	QuestID     string
	Quest       Quest `gorm:"foreignKey:QuestID"`
	HasRerolled bool
	Completed   bool
}
