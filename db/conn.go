// Package db contains the database connection and schema bootstrap
package db

import (
	"fmt"
	"time"

	"github.com/alisontirado/estacionatec/config"
	"github.com/alisontirado/estacionatec/model"
	"github.com/alisontirado/estacionatec/security"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	var dial gorm.Dialector

	switch viper.GetString("db.driver") {
	case "sqlite":
		// Embedded driver for local development. Production runs PostgreSQL
		dial = sqlite.Open(viper.GetString("db.name") + ".db")
	default:
		dial = postgres.Open(config.DSN())
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey so handlers never inspect raw database errors
	db, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database, %w", err)
	}

	if config.DropTables() {
		zap.L().Warn("Running with --drop-tables, all tables will be dropped and recreated")

		err = db.Migrator().DropTable(
			model.AccessLog{}, model.QRCode{}, model.Payment{}, model.Vehicle{}, model.User{},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to drop tables, %w", err)
		}
	}

	err = db.AutoMigrate(model.User{}, model.Vehicle{}, model.Payment{}, model.QRCode{}, model.AccessLog{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// EnsureAdmin creates the administrator account on first run. Credentials
// come from admin.username and admin.password, both required at startup,
// so a fresh deployment never ships a well-known password
func EnsureAdmin(d *gorm.DB, argon *security.ArgonHash) error {
	username := viper.GetString("admin.username")

	var count int64
	err := d.Model(model.User{}).Where("username = ?", username).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check for admin account, %w", err)
	}

	if count > 0 {
		return nil
	}

	hash, err := argon.GenerateFromPassword(viper.GetString("admin.password"))
	if err != nil {
		return fmt.Errorf("failed to hash admin password, %w", err)
	}

	admin := model.User{
		Username:        username,
		PasswordHash:    hash,
		Role:            model.RoleAdmin,
		FirstName:       "Admin",
		PaternalSurname: "Principal",
		Email:           username,
		ControlNumber:   "ADMINTEC001",
		Active:          true,
		RegisteredAt:    time.Now().UTC(),
	}

	if err := d.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account, %w", err)
	}

	zap.L().Info("Created administrator account", zap.String("username", username))
	return nil
}
