package model

// SubmitQuestCompletionRequest is sent as a multipart form. The evidence
// files are read from the "attachments" parts.
type SubmitQuestCompletionRequest struct {
	SlotID string `json:"slot_id" form:"slot_id"`
}

type SubmitQuestCompletionResponse struct {
	Completion QuestCompletion `json:"completion"`
}

type GetMyCompletionsRequest struct {
	Status string `json:"status" form:"status"`
	Offset int    `json:"offset" form:"offset"`
	Limit  int    `json:"limit" form:"limit"`
}

type GetMyCompletionsResponse struct {
	Completions []QuestCompletion `json:"completions"`
}

type GetPendingCompletionsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetPendingCompletionsResponse struct {
	Completions []QuestCompletion `json:"completions"`
}

type ReviewCompletionRequest struct {
	ID      string `json:"id"`
	Approve bool   `json:"approve"`
}

type ReviewCompletionResponse struct {
	Completion QuestCompletion `json:"completion"`
}
