package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"studentsites/internal/config"
	"studentsites/internal/health"
	"studentsites/internal/infrastructure/mongo"
	"studentsites/internal/infrastructure/mysql"
)

// Backend is the open persistence handle for the configured driver. Exactly
// one of SQL and Mongo is set.
type Backend struct {
	Driver       string
	SQL          *sqlx.DB
	Mongo        *mongodriver.Database
	QueryTimeout time.Duration

	mongoClient *mongodriver.Client
}

func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Database.Driver, QueryTimeout: cfg.Database.QueryTimeout}

	switch cfg.Database.Driver {
	case config.DriverMySQL:
		db, err := mysql.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := mysql.Migrate(db.DB); err != nil {
				db.Close()
				return nil, err
			}
			logger.Info("mysql migrations applied")
		}
		b.SQL = db

	case config.DriverMongo:
		client, err := mongo.NewConnection(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.Mongo.Database)
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		b.mongoClient = client
		b.Mongo = database

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Database.Driver)
	}

	logger.Info("storage connected", zap.String("driver", b.Driver))
	return b, nil
}

func (b *Backend) Checker() health.Checker {
	if b.SQL != nil {
		return health.NewSQLChecker(b.SQL.DB)
	}
	return health.NewMongoChecker(b.mongoClient)
}

func (b *Backend) Close(ctx context.Context) error {
	if b.SQL != nil {
		return b.SQL.Close()
	}
	if b.mongoClient != nil {
		return b.mongoClient.Disconnect(ctx)
	}
	return nil
}
