package scheduling

import (
	"context"

	"github.com/medidesk/hospital-api/internal/audit"
	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/models"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the appointment and its dependent invoice and report rows.
// The consumed slot is not restored to availability; the doctor re-publishes
// the day if the time should open up again.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	aptID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.DeleteAppointmentCascade(ctx, aptID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ap.PatientID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: ap.AptID,
	})

	return ap, nil
}
