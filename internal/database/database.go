package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/repository/mongorepo"
)

const (
	sqlitePrefix = "sqlite://"
	mongoPrefix  = "mongodb://"
	mongoSRV     = "mongodb+srv://"
)

// IsMongo reports whether dsn selects the document store.
func IsMongo(dsn string) bool {
	return strings.HasPrefix(dsn, mongoPrefix) || strings.HasPrefix(dsn, mongoSRV)
}

// Open returns a Store for dsn: postgres, sqlite:// or mongodb://. When migrate
// is set the schema (or the document indexes) is brought up to date first.
func Open(ctx context.Context, dsn, mongoDatabase string, migrate bool, log *slog.Logger) (*repository.Store, error) {
	if IsMongo(dsn) {
		client, err := mongorepo.Connect(ctx, dsn)
		if err != nil {
			return nil, err
		}
		store := mongorepo.NewStore(client, mongoDatabase)
		if migrate {
			if err := mongorepo.EnsureIndexes(ctx, client.Database(mongoDatabase)); err != nil {
				_ = store.Close(ctx)
				return nil, err
			}
		}
		log.Info("connected to document store", "database", mongoDatabase)
		return store, nil
	}

	conn, err := OpenGorm(dsn, logger.Warn)
	if err != nil {
		return nil, err
	}
	store := repository.NewGormStore(conn)
	if migrate {
		if err := Migrate(conn); err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
	}
	log.Info("connected to relational store", "dialect", conn.Dialector.Name())
	return store, nil
}

// OpenGorm connects to postgres (creating the database if needed) or sqlite.
func OpenGorm(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}

	if strings.HasPrefix(dsn, sqlitePrefix) {
		conn, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}
		// a single connection keeps an in-memory database alive and serializes writers.
		sqlDB.SetMaxOpenConns(1)
		return conn, nil
	}

	if err := ensureDatabase(dsn); err != nil {
		return nil, fmt.Errorf("ensure database: %w", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return conn, nil
}

// Migrate brings the relational schema up to date.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentTransaction{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return fmt.Errorf("migrate %T: %w", migration, err)
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
