package db_models

import "github.com/google/uuid"

// Tour ids are allocated from the ledger settings counter starting at 0, so
// the primary key is never left to a database sequence.
type Tour struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ImageRef  string    `gorm:"not null"`
	Location  string    `gorm:"not null"`
	Upvotes   uint64    `gorm:"not null"`
	Verified  bool      `gorm:"not null"`
	Active    bool      `gorm:"not null"`
	CreatedAt int64     `gorm:"autoCreateTime"`
	UpdatedAt int64     `gorm:"autoUpdateTime"`

	CheckIns []CheckIn `gorm:"foreignKey:TourID"`
}

// TourVote is a write-once membership fact; the composite key is the only
// double-vote guard.
type TourVote struct {
	TourID    uint64    `gorm:"primaryKey;autoIncrement:false"`
	VoterID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt int64     `gorm:"autoCreateTime"`
}
