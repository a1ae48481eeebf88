package database

import (
	"time"

	"shinepos-backend/internal/config"
	"shinepos-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("could not get sql.DB handle")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	err = DB.AutoMigrate(
		&models.User{},
		&models.SalesPerson{},
		&models.RestaurantRegistration{},
		&models.CommissionLog{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	log.Info().Msg("database connected, migration complete")
}
