package model

type CreateQuestRequest struct {
	Title          string `json:"title"`
	GameName       string `json:"game_name"`
	Description    string `json:"description"`
	Cadence        string `json:"cadence"`
	XPReward       int64  `json:"xp_reward"`
	BananaReward   int64  `json:"banana_reward"`
	ProgressTarget int    `json:"progress_target"`
	IsActive       *bool  `json:"is_active"`
}

type CreateQuestResponse struct {
	ID string `json:"id"`
}

type UpdateQuestRequest struct {
	ID             string `json:"id" structs:"-"`
	Title          string `json:"title" structs:"title,omitempty"`
	GameName       string `json:"game_name" structs:"game_name,omitempty"`
	Description    string `json:"description" structs:"description,omitempty"`
	XPReward       *int64 `json:"xp_reward" structs:"-"`
	BananaReward   *int64 `json:"banana_reward" structs:"-"`
	ProgressTarget int    `json:"progress_target" structs:"progress_target,omitempty"`
	IsActive       *bool  `json:"is_active" structs:"-"`
}

type UpdateQuestResponse struct{}

type GetQuestRequest struct {
	ID string `json:"id" form:"id"`
}

type GetQuestResponse struct {
	Quest *Quest `json:"quest"`
}

type GetListQuestRequest struct {
	Cadence    string `json:"cadence" form:"cadence"`
	ActiveOnly bool   `json:"active_only" form:"active_only"`
	Offset     int    `json:"offset" form:"offset"`
	Limit      int    `json:"limit" form:"limit"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}

type SearchQuestRequest struct {
	Q     string `json:"q" form:"q"`
	Limit int    `json:"limit" form:"limit"`
}

type SearchQuestResponse struct {
	Quests []Quest `json:"quests"`
}

type CreateAssignmentRequest struct {
	QuestID               string `json:"quest_id" structs:"-"`
	StartDate             string `json:"start_date" structs:"-"`
	EndDate               string `json:"end_date" structs:"-"`
	CustomWord            string `json:"custom_word" structs:"custom_word,omitempty"`
	CustomWordDescription string `json:"custom_word_description" structs:"custom_word_description,omitempty"`
}

type CreateAssignmentResponse struct {
	ID string `json:"id"`
}

type GetActiveAssignmentsRequest struct {
	// Date defaults to today.
	Date    string `json:"date" form:"date"`
	Cadence string `json:"cadence" form:"cadence"`
}

type GetActiveAssignmentsResponse struct {
	Assignments []QuestAssignment `json:"assignments"`
}
