package dbsql

import (
	"time"

	"friendgraph/internal/relation"
)

// Relationship is one row per unordered user pair; see relation.Pair.
type Relationship struct {
	LowUserID     uint64    `gorm:"primaryKey;column:low_user_id;autoIncrement:false"`
	HighUserID    uint64    `gorm:"primaryKey;column:high_user_id;autoIncrement:false;index:idx_relationships_high"`
	LowRequested  bool      `gorm:"column:low_requested;not null"`
	HighRequested bool      `gorm:"column:high_requested;not null"`
	Friends       bool      `gorm:"column:friends;not null"`
	Version       uint64    `gorm:"column:version;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Relationship) TableName() string {
	return "relationships"
}

func (r *Relationship) ToPair() relation.Pair {
	return relation.Pair{
		Low:           r.LowUserID,
		High:          r.HighUserID,
		LowRequested:  r.LowRequested,
		HighRequested: r.HighRequested,
		Friends:       r.Friends,
		Version:       r.Version,
	}
}

func RelationshipFromPair(p relation.Pair) *Relationship {
	return &Relationship{
		LowUserID:     p.Low,
		HighUserID:    p.High,
		LowRequested:  p.LowRequested,
		HighRequested: p.HighRequested,
		Friends:       p.Friends,
		Version:       p.Version,
	}
}
