package scheduling

import (
	"context"
	"errors"

	"github.com/medidesk/hospital-api/internal/audit"
	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/redislock"
)

// ======================================================
// INPUT
// ======================================================

type BookSlotInput struct {
	PatientID string
	DoctorID  string
	Date      string
	Slot      string
	Reason    string
}

// ======================================================
// USE CASE
// ======================================================

type BookSlot struct {
	repo   domain.Repository
	locker redislock.Locker
	audit  *audit.Dispatcher
}

func NewBookSlot(
	repo domain.Repository,
	locker redislock.Locker,
	audit *audit.Dispatcher,
) *BookSlot {
	return &BookSlot{
		repo:   repo,
		locker: locker,
		audit:  audit,
	}
}

// Execute reserves a slot for a patient. The validation chain runs outside
// the lock; the check-and-insert runs inside a per-slot lock wrapping the
// repository's transactional ReserveSlot. Of two concurrent requests for the
// same (doctor, date, slot), at most one creates a booked record - the loser
// sees slot_unavailable (or duplicate_appointment if it already holds one).
func (uc *BookSlot) Execute(
	ctx context.Context,
	in BookSlotInput,
) (*models.Appointment, error) {

	if _, err := uc.repo.GetPatient(ctx, in.PatientID); err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, err
	}

	sched, err := uc.repo.GetSchedule(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	published := false
	for _, s := range sched.AvailableTime {
		if s == in.Slot {
			published = true
			break
		}
	}
	if !published {
		return nil, httperr.ErrBusiness("slot_unavailable")
	}

	dup, err := uc.repo.HasBookedAppointment(ctx, in.PatientID, in.DoctorID, in.Date, in.Slot)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, httperr.ErrBusiness("duplicate_appointment")
	}

	ap := &models.Appointment{
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		Slot:      in.Slot,
		Reason:    in.Reason,
		Status:    string(domain.StatusBooked),
	}

	key := redislock.SlotKey(in.DoctorID, in.Date, in.Slot)
	err = uc.locker.WithLock(ctx, key, func(lockCtx context.Context) error {
		return uc.repo.ReserveSlot(lockCtx, ap)
	})
	if err != nil {
		if errors.Is(err, redislock.ErrNotAcquired) {
			err = httperr.ErrBusiness("slot_unavailable")
		}
		if httperr.IsBusiness(err, "slot_unavailable") {
			uc.audit.Dispatch(audit.Event{
				ActorID: in.PatientID,
				Action:  "appointment_conflict",
				Entity:  "appointment",
				Metadata: map[string]any{
					"doctorId": in.DoctorID,
					"date":     in.Date,
					"slot":     in.Slot,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.PatientID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.AptID,
	})

	return ap, nil
}
