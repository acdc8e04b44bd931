// Package dbmongo stores relationship pairs in MongoDB.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"friendgraph/internal/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const connectTimeout = 10 * time.Second

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// clientOptions uses majority writes so a swap that returned true survives a
// primary failover.
func clientOptions(c *config.Config) *options.ClientOptions {
	return options.Client().
		ApplyURI(c.GetMongoURI()).
		SetAppName("friendgraph").
		SetServerSelectionTimeout(connectTimeout).
		SetMaxPoolSize(uint64(max(c.Database.MaxOpenConns, 1))).
		SetWriteConcern(writeconcern.Majority())
}

// NewMongoConnection connects and pings the primary before returning.
func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(c))
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb at %s:%s: %w", c.MongoDB.Host, c.MongoDB.Port, err)
	}

	return &MongoClient{
		Client:   client,
		Database: client.Database(c.MongoDB.Database),
	}, nil
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
