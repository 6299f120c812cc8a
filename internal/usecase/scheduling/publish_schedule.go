package scheduling

import (
	"context"

	"github.com/medidesk/hospital-api/internal/audit"
	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type PublishScheduleInput struct {
	DoctorID string
	Date     string
	Ranges   []domain.TimeRange
}

// ======================================================
// USE CASE
// ======================================================

type PublishSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPublishSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *PublishSchedule {
	return &PublishSchedule{
		repo:  repo,
		audit: audit,
	}
}

// Execute expands the submitted ranges into slot labels and replaces the
// day's availability with them. The replace is destructive by design: slots
// already consumed by bookings are re-offered here, and FreeSlots filters
// them back out against the ledger. The returned bool is true when the day
// had no schedule before.
func (uc *PublishSchedule) Execute(
	ctx context.Context,
	in PublishScheduleInput,
) (*models.DoctorSchedule, bool, error) {

	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, false, err
	}

	slots := domain.ExpandRanges(in.Ranges)

	created := false
	if _, err := uc.repo.GetSchedule(ctx, in.DoctorID, in.Date); err != nil {
		created = true
	}

	sched, err := uc.repo.PublishSchedule(ctx, in.DoctorID, in.Date, slots)
	if err != nil {
		return nil, false, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.DoctorID,
		Action:   "schedule_published",
		Entity:   "doctor_schedule",
		EntityID: in.DoctorID + "/" + in.Date,
		Metadata: map[string]any{"slots": len(slots)},
	})

	return sched, created, nil
}
