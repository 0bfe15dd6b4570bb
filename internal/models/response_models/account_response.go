package response_models

type AccountLoginResponse struct {
	Token string `json:"token"`
}

type AccountResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Stake int64  `json:"stake"`
}
