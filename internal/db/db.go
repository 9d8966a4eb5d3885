package db

import (
	"database/sql"
	"log"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/config"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
)

// NewDB opens Postgres through the pgx stdlib connector so the pool and the
// driver-level error codes stay visible, then hands the connection to gorm.
func NewDB(cfg *config.Config) *gorm.DB {
	connCfg, err := pgx.ParseConfig(cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to parse database url: %v", err)
	}

	sqlDB := sql.OpenDB(stdlib.GetConnector(*connCfg))
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
