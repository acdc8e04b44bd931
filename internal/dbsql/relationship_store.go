package dbsql

import (
	"context"
	"errors"
	"fmt"

	"friendgraph/internal/relation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationshipStore keeps pair records in the relationships table. Swaps are
// conditional on the stored version, so the database row is the unit of
// atomicity and no explicit locks are taken.
type RelationshipStore struct {
	db *gorm.DB
}

func NewRelationshipStore(db *gorm.DB) *RelationshipStore {
	return &RelationshipStore{db: db}
}

var _ relation.PairStore = (*RelationshipStore)(nil)

func (s *RelationshipStore) LoadPair(ctx context.Context, low, high uint64) (relation.Pair, error) {
	var row Relationship
	err := s.db.WithContext(ctx).
		Where("low_user_id = ? AND high_user_id = ?", low, high).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return relation.Pair{Low: low, High: high}, nil
	}
	if err != nil {
		return relation.Pair{}, err
	}
	return row.ToPair(), nil
}

func (s *RelationshipStore) SwapPair(ctx context.Context, prev, next relation.Pair) (bool, error) {
	db := s.db.WithContext(ctx)

	if prev.Version == 0 {
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(RelationshipFromPair(next))
		if res.Error != nil {
			return false, fmt.Errorf("insert relationship: %w", res.Error)
		}
		return res.RowsAffected == 1, nil
	}

	res := db.Model(&Relationship{}).
		Where("low_user_id = ? AND high_user_id = ? AND version = ?", next.Low, next.High, prev.Version).
		Updates(map[string]interface{}{
			"low_requested":  next.LowRequested,
			"high_requested": next.HighRequested,
			"friends":        next.Friends,
			"version":        next.Version,
		})
	if res.Error != nil {
		return false, fmt.Errorf("update relationship: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *RelationshipStore) FriendsOf(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "friends", "friends")
}

// ReceivedBy returns users with a pending request to user: the other side's
// flag is set.
func (s *RelationshipStore) ReceivedBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "high_requested", "low_requested")
}

func (s *RelationshipStore) SentBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "low_requested", "high_requested")
}

// peers collects the counterparts of user in ascending order. lowColumn is
// the flag checked on rows where user is the low member, highColumn where
// user is the high member. Counterparts of the high-side rows are all smaller
// than user, so they come first.
func (s *RelationshipStore) peers(ctx context.Context, user uint64, lowColumn, highColumn string) ([]uint64, error) {
	var below, above []uint64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Relationship{}).
			Where("high_user_id = ?", user).
			Where(clause.Eq{Column: clause.Column{Name: highColumn}, Value: true}).
			Order("low_user_id ASC").
			Pluck("low_user_id", &below).Error; err != nil {
			return err
		}
		return tx.Model(&Relationship{}).
			Where("low_user_id = ?", user).
			Where(clause.Eq{Column: clause.Column{Name: lowColumn}, Value: true}).
			Order("high_user_id ASC").
			Pluck("high_user_id", &above).Error
	})
	if err != nil {
		return nil, err
	}
	return append(below, above...), nil
}
