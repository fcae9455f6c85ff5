package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/Keoroanthony/go-crm/configs"
	"github.com/Keoroanthony/go-crm/internal/models"
)

// Open connects to the configured database and migrates the schema.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		conn *gorm.DB
		err  error
	)

	switch cfg.Driver {
	case "sqlite":
		conn, err = OpenSQLite(cfg.SQLitePath)
	default:
		conn, err = openPostgres(cfg)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}

	log.Printf("Database (%s) connected and migrated successfully", cfg.Driver)
	return conn, nil
}

func openPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
		cfg.TimeZone,
	)

	conn, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return conn, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

func Migrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.Order{},
		&models.User{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate DB: %w", err)
	}
	return nil
}
