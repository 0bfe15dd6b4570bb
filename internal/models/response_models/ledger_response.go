package response_models

type Balance struct {
	AccountID string `json:"account_id"`
	Points    int64  `json:"points"`
}

type LedgerSettings struct {
	VoteThreshold    uint64 `json:"vote_threshold"`
	Paused           bool   `json:"paused"`
	CreationPoints   int64  `json:"creation_points"`
	CheckInPoints    int64  `json:"check_in_points"`
	MinimumVoteStake int64  `json:"minimum_vote_stake"`
	TourCount        uint64 `json:"tour_count"`
}

type Notification struct {
	ID         uint64                 `json:"id"`
	Type       string                 `json:"type"`
	TourID     *uint64                `json:"tour_id,omitempty"`
	Attributes map[string]interface{} `json:"attributes"`
	CreatedAt  string                 `json:"created_at"`
}
