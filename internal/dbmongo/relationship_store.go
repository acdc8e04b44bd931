package dbmongo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"friendgraph/internal/relation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const relationshipsCollection = "relationships"

// relationshipDoc is one document per unordered pair, keyed "low:high".
// Ids are stored as int64 since BSON has no unsigned integers.
type relationshipDoc struct {
	ID            string `bson:"_id"`
	Low           int64  `bson:"low"`
	High          int64  `bson:"high"`
	LowRequested  bool   `bson:"low_requested"`
	HighRequested bool   `bson:"high_requested"`
	Friends       bool   `bson:"friends"`
	Version       int64  `bson:"version"`
}

func pairID(low, high uint64) string {
	return strconv.FormatUint(low, 10) + ":" + strconv.FormatUint(high, 10)
}

func docFromPair(p relation.Pair) relationshipDoc {
	return relationshipDoc{
		ID:            pairID(p.Low, p.High),
		Low:           int64(p.Low),
		High:          int64(p.High),
		LowRequested:  p.LowRequested,
		HighRequested: p.HighRequested,
		Friends:       p.Friends,
		Version:       int64(p.Version),
	}
}

func (d relationshipDoc) toPair() relation.Pair {
	return relation.Pair{
		Low:           uint64(d.Low),
		High:          uint64(d.High),
		LowRequested:  d.LowRequested,
		HighRequested: d.HighRequested,
		Friends:       d.Friends,
		Version:       uint64(d.Version),
	}
}

// RelationshipStore keeps pair records in a MongoDB collection. Every swap is
// a single-document write guarded by the stored version.
type RelationshipStore struct {
	coll *mongo.Collection
}

func NewRelationshipStore(db *mongo.Database) *RelationshipStore {
	return &RelationshipStore{coll: db.Collection(relationshipsCollection)}
}

var _ relation.PairStore = (*RelationshipStore)(nil)

// EnsureIndexes creates the indexes the list queries rely on.
func (s *RelationshipStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "low", Value: 1}, {Key: "high", Value: 1}}},
		{Keys: bson.D{{Key: "high", Value: 1}, {Key: "low", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create relationship indexes: %w", err)
	}
	return nil
}

func (s *RelationshipStore) LoadPair(ctx context.Context, low, high uint64) (relation.Pair, error) {
	var doc relationshipDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": pairID(low, high)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return relation.Pair{Low: low, High: high}, nil
	}
	if err != nil {
		return relation.Pair{}, fmt.Errorf("find relationship: %w", err)
	}
	return doc.toPair(), nil
}

func (s *RelationshipStore) SwapPair(ctx context.Context, prev, next relation.Pair) (bool, error) {
	doc := docFromPair(next)

	if prev.Version == 0 {
		_, err := s.coll.InsertOne(ctx, doc)
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("insert relationship: %w", err)
		}
		return true, nil
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": doc.ID, "version": int64(prev.Version)},
		bson.M{"$set": bson.M{
			"low_requested":  doc.LowRequested,
			"high_requested": doc.HighRequested,
			"friends":        doc.Friends,
			"version":        doc.Version,
		}})
	if err != nil {
		return false, fmt.Errorf("update relationship: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (s *RelationshipStore) FriendsOf(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "friends", "friends")
}

func (s *RelationshipStore) ReceivedBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "high_requested", "low_requested")
}

func (s *RelationshipStore) SentBy(ctx context.Context, user uint64) ([]uint64, error) {
	return s.peers(ctx, user, "low_requested", "high_requested")
}

// peers works like its SQL counterpart: lowField is checked where user is the
// low member, highField where user is the high member.
func (s *RelationshipStore) peers(ctx context.Context, user uint64, lowField, highField string) ([]uint64, error) {
	id := int64(user)
	filter := bson.M{"$or": bson.A{
		bson.M{"low": id, lowField: true},
		bson.M{"high": id, highField: true},
	}}
	opts := options.Find().SetProjection(bson.M{"low": 1, "high": 1})

	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find relationships of %d: %w", user, err)
	}
	defer cur.Close(ctx)

	var ids []uint64
	for cur.Next(ctx) {
		var doc relationshipDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode relationship: %w", err)
		}
		ids = append(ids, doc.toPair().Other(user))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate relationships of %d: %w", user, err)
	}
	slices.Sort(ids)
	return ids, nil
}
