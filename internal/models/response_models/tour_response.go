package response_models

type Tour struct {
	ID        uint64 `json:"id"`
	Owner     string `json:"owner"`
	ImageRef  string `json:"image_ref"`
	Location  string `json:"location"`
	Upvotes   uint64 `json:"upvotes"`
	Verified  bool   `json:"verified"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type CreateTourResponse struct {
	TourID uint64 `json:"tour_id"`
}

type CheckIn struct {
	Participant string `json:"participant"`
	ImageRef    string `json:"image_ref"`
	Location    string `json:"location"`
	Status      string `json:"status"`
	CheckedInAt string `json:"checked_in_at,omitempty"`
}

type VoteStatus struct {
	TourID uint64 `json:"tour_id"`
	Voted  bool   `json:"voted"`
}
