package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Account struct {
	BaseModel
	Name         string
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"default:user"`
	// Stake is the economic weight the identity layer vouches for; votes
	// require at least one unit of it.
	Stake int64 `gorm:"not null;default:0"`
}
