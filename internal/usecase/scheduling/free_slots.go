package scheduling

import (
	"context"
	"time"

	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
)

type FreeSlots struct {
	repo domain.Repository
}

func NewFreeSlots(repo domain.Repository) *FreeSlots {
	return &FreeSlots{repo: repo}
}

// Execute computes availability − booked − past for one (doctor, date).
// The schedule record is only the declared-open-hours template; the booking
// ledger is authoritative for taken slots, so a stale or republished
// schedule can never hand out a booked slot. Order of the published labels
// is preserved. No schedule at all is schedule_not_found; an empty result
// is a normal "no free slots" answer.
func (uc *FreeSlots) Execute(
	ctx context.Context,
	doctorID string,
	date string,
	now time.Time,
) ([]string, error) {

	sched, err := uc.repo.GetSchedule(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.ListBookedSlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, s := range booked {
		bookedSet[s] = struct{}{}
	}

	free := make([]string, 0, len(sched.AvailableTime))
	for _, slot := range sched.AvailableTime {
		if _, taken := bookedSet[slot]; taken {
			continue
		}

		startAt, err := domain.SlotStart(date, slot)
		if err != nil {
			// Malformed label in the store; skip rather than fail the day.
			continue
		}
		if !startAt.After(now) {
			continue
		}

		free = append(free, slot)
	}

	return free, nil
}
