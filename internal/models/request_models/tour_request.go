package request_models

// Empty strings are rejected by the services with INVALID_PARAMETERS, so the
// string fields carry no binding rules.

type CreateTourRequest struct {
	ImageRef string `json:"image_ref"`
	Location string `json:"location"`
}

type UpdateTourRequest struct {
	ImageRef string `json:"image_ref"`
	Location string `json:"location"`
}

type CheckInRequest struct {
	ImageRef string `json:"image_ref"`
	Location string `json:"location"`
}

type SetVoteThresholdRequest struct {
	Threshold uint64 `json:"threshold"`
}
