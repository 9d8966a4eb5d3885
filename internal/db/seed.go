package db

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/config"
	"github.com/serenitymassage/clinic-scheduler/internal/models"
)

// SeedAdmin creates the bootstrap staff account when the users table is
// empty. With no seed credentials configured, registration is the only way
// in.
func SeedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("seed: could not inspect users table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed: could not hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("seed: could not create admin user: %v", err)
		return
	}

	log.Printf("seed: created admin account %s", cfg.AdminEmail)
}
