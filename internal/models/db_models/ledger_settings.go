package db_models

const LedgerSettingsID = 1

// LedgerSettings is a singleton row. CreationPoints and CheckInPoints are
// written once at bootstrap; VoteThreshold and Paused are admin-mutable.
type LedgerSettings struct {
	ID             uint   `gorm:"primaryKey;autoIncrement:false"`
	VoteThreshold  uint64 `gorm:"not null"`
	Paused         bool   `gorm:"not null"`
	NextTourID     uint64 `gorm:"not null"`
	CreationPoints int64  `gorm:"not null"`
	CheckInPoints  int64  `gorm:"not null"`
	UpdatedAt      int64  `gorm:"autoUpdateTime"`
}
