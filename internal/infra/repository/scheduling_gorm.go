package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/ids"
	"github.com/medidesk/hospital-api/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Existence checks
// --------------------------------------------------

func (r *SchedulingGormRepository) GetPatient(
	ctx context.Context,
	pID string,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).
		Where("p_id = ?", pID).
		First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("patient_not_found")
		}
		return nil, err
	}
	return &patient, nil
}

func (r *SchedulingGormRepository) GetDoctor(
	ctx context.Context,
	doctorID string,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("doctor_not_found")
		}
		return nil, err
	}
	return &doctor, nil
}

// --------------------------------------------------
// Availability store
// --------------------------------------------------

func (r *SchedulingGormRepository) GetSchedule(
	ctx context.Context,
	doctorID string,
	date string,
) (*models.DoctorSchedule, error) {

	var sched models.DoctorSchedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&sched).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("schedule_not_found")
		}
		return nil, err
	}
	return &sched, nil
}

func (r *SchedulingGormRepository) PublishSchedule(
	ctx context.Context,
	doctorID string,
	date string,
	slots []string,
) (*models.DoctorSchedule, error) {

	sched := models.DoctorSchedule{
		DoctorID:      doctorID,
		Date:          date,
		AvailableTime: slots,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"available_time", "updated_at"}),
		}).
		Create(&sched).Error; err != nil {
		return nil, err
	}

	return r.GetSchedule(ctx, doctorID, date)
}

// --------------------------------------------------
// Booking ledger
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBookedSlots(
	ctx context.Context,
	doctorID string,
	date string,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND status = ?",
			doctorID, date, string(domain.StatusBooked),
		).
		Pluck("slot", &slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) HasBookedAppointment(
	ctx context.Context,
	pID string,
	doctorID string,
	date string,
	slot string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"p_id = ? AND doctor_id = ? AND date = ? AND slot = ? AND status = ?",
			pID, doctorID, date, slot, string(domain.StatusBooked),
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReserveSlot runs the booking critical section as one transaction:
// lock the schedule row, verify the slot is still published and not booked,
// assign the next aptID, insert, and consume the slot. The partial unique
// index on booked (doctor_id, date, slot) backstops the whole thing.
func (r *SchedulingGormRepository) ReserveSlot(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sched models.DoctorSchedule
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND date = ?", ap.DoctorID, ap.Date).
			First(&sched).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("schedule_not_found")
			}
			return err
		}

		idx := -1
		for i, s := range sched.AvailableTime {
			if s == ap.Slot {
				idx = i
				break
			}
		}
		if idx < 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		var booked int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"doctor_id = ? AND date = ? AND slot = ? AND status = ?",
				ap.DoctorID, ap.Date, ap.Slot, string(domain.StatusBooked),
			).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		aptID, err := ids.Next(tx, ids.CounterAppointment)
		if err != nil {
			return err
		}
		ap.AptID = aptID
		ap.Status = string(domain.StatusBooked)

		if err := tx.Create(ap).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return httperr.ErrBusiness("slot_unavailable")
			}
			return err
		}

		sched.AvailableTime = append(
			sched.AvailableTime[:idx],
			sched.AvailableTime[idx+1:]...,
		)
		return tx.Save(&sched).Error
	})
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	aptID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("apt_id = ?", aptID).
		First(&ap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) DeleteAppointmentCascade(
	ctx context.Context,
	aptID string,
) (*models.Appointment, error) {

	var deleted models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("apt_id = ?", aptID).
			First(&deleted).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("appointment_not_found")
			}
			return err
		}

		if err := tx.Where("apt_id = ?", aptID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}

		// Line items go with the invoice via the FK cascade.
		if err := tx.Where("apt_id = ?", aptID).Delete(&models.Invoice{}).Error; err != nil {
			return err
		}
		return tx.Where("apt_id = ?", aptID).Delete(&models.Report{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
