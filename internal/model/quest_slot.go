package model

type GetDailyQuestSlotsRequest struct{}

type GetDailyQuestSlotsResponse struct {
	Date  string      `json:"date"`
	Slots []QuestSlot `json:"slots"`
}

type RerollDailyQuestSlotRequest struct {
	SlotNumber int `json:"slot_number"`
}

type RerollDailyQuestSlotResponse struct {
	Slot QuestSlot `json:"slot"`
}

type GetWeeklyQuestSlotRequest struct{}

type GetWeeklyQuestSlotResponse struct {
	Date string     `json:"date"`
	Slot *QuestSlot `json:"slot"`
}

type RerollWeeklyQuestSlotRequest struct{}

type RerollWeeklyQuestSlotResponse struct {
	Slot QuestSlot `json:"slot"`
}

type GetMonthlyQuestSlotRequest struct{}

type GetMonthlyQuestSlotResponse struct {
	Date string     `json:"date"`
	Slot *QuestSlot `json:"slot"`
}

type RerollMonthlyQuestSlotRequest struct{}

type RerollMonthlyQuestSlotResponse struct {
	Slot QuestSlot `json:"slot"`
}
