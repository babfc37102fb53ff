package model

type GetMyStatsRequest struct{}

type GetMyStatsResponse struct {
	Stats ChatterStats `json:"stats"`
}

type GetRanksRequest struct{}

type GetRanksResponse struct {
	Ranks []Rank `json:"ranks"`
}

type GetLeaderboardRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
	// MyPosition is zero if the requesting user is not ranked yet.
	MyPosition int `json:"my_position"`
}

type GetMyBananaTransactionsRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetMyBananaTransactionsResponse struct {
	Transactions []BananaTransaction `json:"transactions"`
}
