package main

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/medidesk/hospital-api/internal/config"
	"github.com/medidesk/hospital-api/internal/db"
	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/ids"
	"github.com/medidesk/hospital-api/internal/logging"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/timezone"
)

const (
	numDoctors  = 5
	numPatients = 20
	seedDays    = 7
)

var specializations = []string{
	"Cardiology", "Dermatology", "Pediatrics", "Orthopedics", "General Medicine",
}

// Seeds a demo dataset: doctor and patient users with profiles, a week of
// published schedules per doctor, and a handful of bookings. Safe to re-run
// against an empty database only.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)
	database := db.NewDB(cfg)

	gofakeit.Seed(42)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}

	var doctorIDs []string
	var patientIDs []string

	err = database.Transaction(func(tx *gorm.DB) error {
		for i := 0; i < numDoctors; i++ {
			id, err := ids.Next(tx, ids.CounterDoctor)
			if err != nil {
				return err
			}
			email := fmt.Sprintf("dr.%s%d@example.com", gofakeit.LastName(), i)

			if err := tx.Create(&models.User{
				Email:        email,
				PasswordHash: string(hash),
				Role:         "Doctor",
				DoctorID:     id,
			}).Error; err != nil {
				return err
			}

			if err := tx.Create(&models.Doctor{
				DoctorID:       id,
				Name:           "Dr. " + gofakeit.Name(),
				Specialization: specializations[i%len(specializations)],
				PhoneNo:        gofakeit.Numerify("##########"),
				Experience:     gofakeit.Number(2, 30),
				Email:          email,
			}).Error; err != nil {
				return err
			}

			doctorIDs = append(doctorIDs, id)
		}

		for i := 0; i < numPatients; i++ {
			id, err := ids.Next(tx, ids.CounterPatient)
			if err != nil {
				return err
			}
			dob := gofakeit.DateRange(
				time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC),
			)

			if err := tx.Create(&models.Patient{
				PatientID:     id,
				Name:          gofakeit.Name(),
				DOB:           dob,
				Age:           timezone.Now().Year() - dob.Year(),
				Gender:        gofakeit.Gender(),
				PhoneNo:       gofakeit.Numerify("##########"),
				PastHistory:   gofakeit.Sentence(6),
				CurrentStatus: "Stable",
				Address:       gofakeit.Address().Address,
			}).Error; err != nil {
				return err
			}

			patientIDs = append(patientIDs, id)
		}

		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding users failed")
	}

	today := timezone.Now()
	ranges := []domain.TimeRange{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "17:00"},
	}
	slots := domain.ExpandRanges(ranges)

	for _, doctorID := range doctorIDs {
		for day := 0; day < seedDays; day++ {
			date := today.AddDate(0, 0, day).Format(domain.DateLayout)
			if err := database.Create(&models.DoctorSchedule{
				DoctorID:      doctorID,
				Date:          date,
				AvailableTime: slots,
			}).Error; err != nil {
				log.Fatal().Err(err).Str("doctorId", doctorID).Msg("seeding schedule failed")
			}
		}
	}

	err = database.Transaction(func(tx *gorm.DB) error {
		for i, pID := range patientIDs[:10] {
			aptID, err := ids.Next(tx, ids.CounterAppointment)
			if err != nil {
				return err
			}

			if err := tx.Create(&models.Appointment{
				AptID:     aptID,
				PatientID: pID,
				DoctorID:  doctorIDs[i%len(doctorIDs)],
				Date:      today.AddDate(0, 0, 1+i%seedDays).Format(domain.DateLayout),
				Slot:      slots[i%len(slots)],
				Reason:    gofakeit.Sentence(4),
				Status:    string(domain.StatusBooked),
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding appointments failed")
	}

	log.Info().
		Int("doctors", len(doctorIDs)).
		Int("patients", len(patientIDs)).
		Msg("seed complete")
}
