package model

type AccessToken struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

type ShortUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image,omitempty"`
}

type Quest struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	GameName       string `json:"game_name,omitempty"`
	Description    string `json:"description,omitempty"`
	Cadence        string `json:"cadence"`
	XPReward       int64  `json:"xp_reward"`
	BananaReward   int64  `json:"banana_reward"`
	ProgressTarget int    `json:"progress_target"`
	IsActive       bool   `json:"is_active"`
	CreatedBy      string `json:"created_by,omitempty"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type QuestAssignment struct {
	ID                    string `json:"id"`
	QuestID               string `json:"quest_id"`
	Quest                 *Quest `json:"quest,omitempty"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	AssignedBy            string `json:"assigned_by,omitempty"`
	CustomWord            string `json:"custom_word,omitempty"`
	CustomWordDescription string `json:"custom_word_description,omitempty"`
	CreatedAt             string `json:"created_at"`
}

type QuestSlot struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	SlotNumber  int    `json:"slot_number"`
	QuestID     string `json:"quest_id"`
	Quest       *Quest `json:"quest,omitempty"`
	HasRerolled bool   `json:"has_rerolled"`
	Completed   bool   `json:"completed"`
}

type QuestCompletion struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	QuestAssignmentID string           `json:"quest_assignment_id"`
	QuestAssignment   *QuestAssignment `json:"quest_assignment,omitempty"`
	QuestSlotID       string           `json:"quest_slot_id,omitempty"`
	Status            string           `json:"status"`
	Attachments       []string         `json:"attachments"`
	XPEarned          int64            `json:"xp_earned"`
	BananasEarned     int64            `json:"bananas_earned"`
	ReviewerID        string           `json:"reviewer_id,omitempty"`
	ReviewedAt        string           `json:"reviewed_at,omitempty"`
	CreatedAt         string           `json:"created_at"`
}

type Rank struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MinXP      int64  `json:"min_xp"`
	MaxXP      *int64 `json:"max_xp"`
	BadgeColor string `json:"badge_color"`
	SortOrder  int    `json:"sort_order"`
}

type ChatterStats struct {
	User          ShortUser `json:"user"`
	TotalXP       int64     `json:"total_xp"`
	BananaBalance int64     `json:"banana_balance"`
	Rank          *Rank     `json:"rank,omitempty"`
}

type LeaderboardEntry struct {
	Position int       `json:"position"`
	User     ShortUser `json:"user"`
	TotalXP  int64     `json:"total_xp"`
}

type BananaTransaction struct {
	ID         string `json:"id"`
	Amount     int64  `json:"amount"`
	SourceType string `json:"source_type"`
	SourceID   string `json:"source_id"`
	Note       string `json:"note"`
	CreatedAt  string `json:"created_at"`
}

type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	BananaCost  int64  `json:"banana_cost"`
	Stock       *int64 `json:"stock"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type Purchase struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ShopItemID  string    `json:"shop_item_id"`
	ShopItem    *ShopItem `json:"shop_item,omitempty"`
	BananaSpent int64     `json:"banana_spent"`
	VoucherCode string    `json:"voucher_code"`
	Status      string    `json:"status"`
	RedeemedAt  string    `json:"redeemed_at,omitempty"`
	RedeemedBy  string    `json:"redeemed_by,omitempty"`
	CreatedAt   string    `json:"created_at"`
}
