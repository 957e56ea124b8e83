package storage

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"feedback-board-server/models"
)

// Client is the store-client facade. Everything the application knows about
// persistence goes through the collection handles it hands out; handlers
// receive a *Client instead of reaching for a package global.
type Client struct {
	db  *gorm.DB
	log *log.Logger
}

// Open connects through the given dialector and migrates the schema. Tests
// pass a sqlite dialector, production goes through Connect.
func Open(dialector gorm.Dialector, logger *log.Logger) (*Client, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Feedback{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	logger.WithField("component", "storage").Info("store client ready")
	return &Client{db: db, log: logger}, nil
}

// Connect opens the production Postgres store.
func Connect(dsn string, logger *log.Logger) (*Client, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store: DB_CONNECTION_STRING is required")
	}
	return Open(postgres.Open(dsn), logger)
}

func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Client) Users() *Users       { return &Users{db: c.db} }
func (c *Client) Feedback() *Feedback { return &Feedback{db: c.db} }
func (c *Client) Audits() *Audits     { return &Audits{db: c.db} }
