package connection

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JoshuaCYin/Event-Echo-Lite/pkg/config"
)

type Database struct {
	*gorm.DB
	dsn string
}

func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	// Verify basic connectivity before handing the DSN to GORM so that
	// misconfiguration fails with a postgres error, not a pool timeout.
	probe, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create sql.DB: %w", err)
	}
	defer probe.Close()

	if err := probe.Ping(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("postgres error: code=%s, message=%s", pqErr.Code, pqErr.Message)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC() // Standardize time
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database with GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}

	maxIdleConns := cfg.Database.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}
	maxOpenConns := cfg.Database.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 100
	}
	connMaxLifetime := cfg.Database.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = time.Hour
	}

	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return &Database{DB: db, dsn: dsn}, nil
}

// Close closes the underlying connection pool.
func (db *Database) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
