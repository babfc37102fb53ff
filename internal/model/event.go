package model

// Events are published as json and decoded by the subscriber into these
// structs.

type CompletionSubmittedEvent struct {
	CompletionID string `json:"completion_id" mapstructure:"completion_id"`
	UserID       string `json:"user_id" mapstructure:"user_id"`
	QuestID      string `json:"quest_id" mapstructure:"quest_id"`
	SlotID       string `json:"slot_id" mapstructure:"slot_id"`
}

type CompletionReviewedEvent struct {
	CompletionID  string `json:"completion_id" mapstructure:"completion_id"`
	UserID        string `json:"user_id" mapstructure:"user_id"`
	Status        string `json:"status" mapstructure:"status"`
	XPEarned      int64  `json:"xp_earned" mapstructure:"xp_earned"`
	BananasEarned int64  `json:"bananas_earned" mapstructure:"bananas_earned"`
}

type PurchaseCreatedEvent struct {
	PurchaseID  string `json:"purchase_id" mapstructure:"purchase_id"`
	UserID      string `json:"user_id" mapstructure:"user_id"`
	ShopItemID  string `json:"shop_item_id" mapstructure:"shop_item_id"`
	BananaSpent int64  `json:"banana_spent" mapstructure:"banana_spent"`
}
