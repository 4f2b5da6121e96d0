package config

import (
	"os"
	"time"

	"studiobook-backend/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	dsn := os.Getenv("DB_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to access connection pool")
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	DB = db
}

// EnsureBookingConstraints installs the Postgres exclusion constraint that
// rejects overlapping active bookings per employee at the storage layer. The
// in-process lock in the booking service covers a single instance; this
// constraint covers multi-instance deployments. No-op on other dialects
// (tests run on SQLite, where writes are serialized by the per-employee
// lock alone).
func EnsureBookingConstraints(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn().Err(err).Msg("could not ensure btree_gist extension")
		return
	}

	if db.Migrator().HasConstraint(&models.Booking{}, "bookings_no_overlap") {
		return
	}

	err := db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT bookings_no_overlap
		EXCLUDE USING gist (
			employee_id WITH =,
			tstzrange(start_time, end_time) WITH &&
		) WHERE (status NOT IN ('CANCELLED', 'DECLINED'))
	`).Error
	if err != nil {
		log.Warn().Err(err).Msg("could not install booking overlap constraint")
	}
}
