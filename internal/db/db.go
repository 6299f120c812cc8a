package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/config"
	"github.com/medidesk/hospital-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Doctor{},
		&models.Receptionist{},
		&models.Patient{},
		&models.DoctorSchedule{},
		&models.Appointment{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Report{},
		&models.AuditLog{},
		&models.Counter{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// One booked appointment per (doctor, date, slot). AutoMigrate cannot
	// express a partial index, so the mutual-exclusion guard lives here.
	// Refuse to start without it.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_booked_slot
        ON appointments (doctor_id, date, slot)
        WHERE status = 'booked'
    `).Error; err != nil {
		log.Fatalf("failed to create booked-slot index: %v", err)
	}

	return db
}
