package wire

import (
	"context"
	"fmt"
	"time"

	"friendgraph/internal/common"
	"friendgraph/internal/config"
	"friendgraph/internal/dbmongo"
	"friendgraph/internal/dbsql"
	"friendgraph/internal/ratelimit"
	"friendgraph/internal/relation"
	"friendgraph/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Config  *config.Config
	Logger  *zap.Logger
	Tokens  *common.TokenManager
	Handler *user.Handler
}

func ProvideConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := common.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return log, func() { _ = log.Sync() }, nil
}

func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := dbsql.Open(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Warn("closing database", zap.Error(err))
			}
		}
	}
	return db, cleanup, nil
}

// ProvidePairStore picks where relationship pairs live. Users always stay in
// the SQL database.
func ProvidePairStore(cfg *config.Config, db *gorm.DB, log *zap.Logger) (relation.PairStore, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreSQL:
		log.Info("relationships stored in sql", zap.String("driver", cfg.Database.Driver))
		return dbsql.NewRelationshipStore(db), func() {}, nil
	case config.StoreMemory:
		log.Warn("relationships stored in memory and lost on restart")
		return relation.NewMemoryStore(), func() {}, nil
	case config.StoreMongo:
		client, err := dbmongo.NewMongoConnection(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(ctx); err != nil {
				log.Warn("closing mongodb", zap.Error(err))
			}
		}
		store := dbmongo.NewRelationshipStore(client.Database)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureIndexes(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		log.Info("relationships stored in mongodb", zap.String("database", cfg.MongoDB.Database))
		return store, cleanup, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func ProvideRelationStore(pairs relation.PairStore, cfg *config.Config, log *zap.Logger) relation.Store {
	return relation.NewGraph(pairs, log, relation.WithMaxAttempts(cfg.Store.MaxAttempts))
}

func ProvideAdmission(cfg *config.Config, log *zap.Logger) (ratelimit.Admission, func(), error) {
	return ratelimit.New(cfg, log)
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL(), cfg.Auth.Issuer)
}

func ProvidePaginator(cfg *config.Config) common.Paginator {
	return common.NewPaginator(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
}
