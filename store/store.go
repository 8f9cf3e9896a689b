// Package store selects a storage backend and exposes its repositories.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"placement/config"
	"placement/database"
	companyRepo "placement/pkg/company/repository"
	companyRepoImp "placement/pkg/company/repositoryImp"
	questionRepo "placement/pkg/question/repository"
	questionRepoImp "placement/pkg/question/repositoryImp"
)

type Store struct {
	Questions questionRepo.QuestionRepository
	Companies companyRepo.CompanyRepository

	driver string
	ping   func(context.Context) error
	close  func(context.Context) error
}

// Open connects to the backend named by cfg.DBDriver.
func Open(ctx context.Context, cfg config.AppConfig) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite, "":
		db, err := database.Connect(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return NewSQLite(db)
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return NewMongo(client, db), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want %s or %s)", cfg.DBDriver, config.DriverSQLite, config.DriverMongo)
	}
}

func NewSQLite(db *gorm.DB) (*Store, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	return &Store{
		Questions: questionRepoImp.NewSQLite(db),
		Companies: companyRepoImp.NewSQLite(db),
		driver:    config.DriverSQLite,
		ping:      sqlDB.PingContext,
		close:     func(context.Context) error { return sqlDB.Close() },
	}, nil
}

func NewMongo(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Questions: questionRepoImp.NewMongo(db),
		Companies: companyRepoImp.NewMongo(db),
		driver:    config.DriverMongo,
		ping:      func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:     client.Disconnect,
	}
}

func (s *Store) Driver() string { return s.driver }

func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

func (s *Store) Close(ctx context.Context) error { return s.close(ctx) }
