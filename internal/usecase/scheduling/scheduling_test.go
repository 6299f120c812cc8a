package scheduling

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medidesk/hospital-api/internal/audit"
	domain "github.com/medidesk/hospital-api/internal/domain/scheduling"
	"github.com/medidesk/hospital-api/internal/httperr"
	"github.com/medidesk/hospital-api/internal/ids"
	"github.com/medidesk/hospital-api/internal/models"
	"github.com/medidesk/hospital-api/internal/redislock"
	"github.com/medidesk/hospital-api/internal/timezone"
)

// fakeRepo is an in-memory Repository with the same atomicity contract as
// the database-backed one: ReserveSlot re-checks and inserts under one lock.
type fakeRepo struct {
	mu        sync.Mutex
	patients  map[string]*models.Patient
	doctors   map[string]*models.Doctor
	schedules map[string]*models.DoctorSchedule
	booked    map[string]*models.Appointment
	byApt     map[string]*models.Appointment
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		patients:  make(map[string]*models.Patient),
		doctors:   make(map[string]*models.Doctor),
		schedules: make(map[string]*models.DoctorSchedule),
		booked:    make(map[string]*models.Appointment),
		byApt:     make(map[string]*models.Appointment),
	}
}

func schedKey(doctorID, date string) string {
	return doctorID + "|" + date
}

func slotKey(doctorID, date, slot string) string {
	return doctorID + "|" + date + "|" + slot
}

func (r *fakeRepo) GetPatient(_ context.Context, pID string) (*models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[pID]
	if !ok {
		return nil, httperr.ErrBusiness("patient_not_found")
	}
	return p, nil
}

func (r *fakeRepo) GetDoctor(_ context.Context, doctorID string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}
	return d, nil
}

func (r *fakeRepo) GetSchedule(_ context.Context, doctorID, date string) (*models.DoctorSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.schedules[schedKey(doctorID, date)]
	if !ok {
		return nil, httperr.ErrBusiness("schedule_not_found")
	}
	cp := *s
	cp.AvailableTime = append([]string(nil), s.AvailableTime...)
	return &cp, nil
}

func (r *fakeRepo) PublishSchedule(_ context.Context, doctorID, date string, slots []string) (*models.DoctorSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &models.DoctorSchedule{
		DoctorID:      doctorID,
		Date:          date,
		AvailableTime: append([]string(nil), slots...),
	}
	r.schedules[schedKey(doctorID, date)] = s
	return s, nil
}

func (r *fakeRepo) ListBookedSlots(_ context.Context, doctorID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, ap := range r.booked {
		if ap.DoctorID == doctorID && ap.Date == date {
			out = append(out, ap.Slot)
		}
	}
	return out, nil
}

func (r *fakeRepo) HasBookedAppointment(_ context.Context, pID, doctorID, date, slot string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.booked {
		if ap.PatientID == pID && ap.DoctorID == doctorID && ap.Date == date && ap.Slot == slot {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ReserveSlot(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sched, ok := r.schedules[schedKey(ap.DoctorID, ap.Date)]
	if !ok {
		return httperr.ErrBusiness("schedule_not_found")
	}

	published := false
	for _, s := range sched.AvailableTime {
		if s == ap.Slot {
			published = true
			break
		}
	}
	if !published {
		return httperr.ErrBusiness("slot_unavailable")
	}

	key := slotKey(ap.DoctorID, ap.Date, ap.Slot)
	if _, taken := r.booked[key]; taken {
		return httperr.ErrBusiness("slot_unavailable")
	}

	r.nextID++
	ap.AptID = ids.Format("a", r.nextID)
	r.booked[key] = ap
	r.byApt[ap.AptID] = ap

	remaining := sched.AvailableTime[:0]
	for _, s := range sched.AvailableTime {
		if s != ap.Slot {
			remaining = append(remaining, s)
		}
	}
	sched.AvailableTime = remaining
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, aptID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.byApt[aptID]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (r *fakeRepo) DeleteAppointmentCascade(_ context.Context, aptID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.byApt[aptID]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	delete(r.byApt, aptID)
	delete(r.booked, slotKey(ap.DoctorID, ap.Date, ap.Slot))
	return ap, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nil, zerolog.Nop())
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.doctors["d001"] = &models.Doctor{DoctorID: "d001", Name: "Dr. Rao"}
	repo.patients["p001"] = &models.Patient{PatientID: "p001", Name: "Asha"}
	repo.patients["p002"] = &models.Patient{PatientID: "p002", Name: "Vikram"}
	return repo
}

func TestPublishSchedule(t *testing.T) {
	repo := seededRepo()
	uc := NewPublishSchedule(repo, testDispatcher())
	ctx := context.Background()

	t.Run("first publish creates", func(t *testing.T) {
		sched, created, err := uc.Execute(ctx, PublishScheduleInput{
			DoctorID: "d001",
			Date:     "2026-09-10",
			Ranges: []domain.TimeRange{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "09:40", EndTime: "10:20"},
			},
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, []string{"09:00", "09:20", "09:40", "10:00"}, sched.AvailableTime)
	})

	t.Run("identical ranges republish to the same set", func(t *testing.T) {
		in := PublishScheduleInput{
			DoctorID: "d001",
			Date:     "2026-09-10",
			Ranges: []domain.TimeRange{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "09:40", EndTime: "10:20"},
			},
		}
		sched, created, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, []string{"09:00", "09:20", "09:40", "10:00"}, sched.AvailableTime)
	})

	t.Run("republish replaces", func(t *testing.T) {
		sched, created, err := uc.Execute(ctx, PublishScheduleInput{
			DoctorID: "d001",
			Date:     "2026-09-10",
			Ranges:   []domain.TimeRange{{StartTime: "14:00", EndTime: "15:00"}},
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, []string{"14:00", "14:20", "14:40"}, sched.AvailableTime)
	})

	t.Run("unknown doctor rejected", func(t *testing.T) {
		_, _, err := uc.Execute(ctx, PublishScheduleInput{
			DoctorID: "d999",
			Date:     "2026-09-10",
			Ranges:   []domain.TimeRange{{StartTime: "09:00", EndTime: "10:00"}},
		})
		assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
	})
}

func TestFreeSlots(t *testing.T) {
	repo := seededRepo()
	ctx := context.Background()

	_, err := repo.PublishSchedule(ctx, "d001", "2026-09-10",
		[]string{"09:00", "09:20", "09:40", "10:00"})
	require.NoError(t, err)

	require.NoError(t, repo.ReserveSlot(ctx, &models.Appointment{
		PatientID: "p001", DoctorID: "d001", Date: "2026-09-10", Slot: "09:20",
	}))

	uc := NewFreeSlots(repo)

	t.Run("subtracts booked and past", func(t *testing.T) {
		// 09:05 local: 09:00 already started, 09:20 booked.
		now := time.Date(2026, 9, 10, 9, 5, 0, 0, timezone.Location())
		free, err := uc.Execute(ctx, "d001", "2026-09-10", now)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:40", "10:00"}, free)
	})

	t.Run("day fully in the past is empty not an error", func(t *testing.T) {
		now := time.Date(2026, 9, 10, 18, 0, 0, 0, timezone.Location())
		free, err := uc.Execute(ctx, "d001", "2026-09-10", now)
		require.NoError(t, err)
		assert.Empty(t, free)
	})

	t.Run("missing schedule is schedule_not_found", func(t *testing.T) {
		_, err := uc.Execute(ctx, "d001", "2026-09-11", time.Now())
		assert.True(t, httperr.IsBusiness(err, "schedule_not_found"))
	})
}

func TestBookSlot(t *testing.T) {
	repo := seededRepo()
	ctx := context.Background()

	_, err := repo.PublishSchedule(ctx, "d001", "2026-09-10",
		[]string{"09:00", "09:20", "09:40"})
	require.NoError(t, err)

	uc := NewBookSlot(repo, redislock.NewLocal(), testDispatcher())

	t.Run("happy path assigns apt id", func(t *testing.T) {
		ap, err := uc.Execute(ctx, BookSlotInput{
			PatientID: "p001", DoctorID: "d001",
			Date: "2026-09-10", Slot: "09:20", Reason: "Checkup",
		})
		require.NoError(t, err)
		assert.Equal(t, "a001", ap.AptID)
		assert.Equal(t, string(domain.StatusBooked), ap.Status)
	})

	t.Run("booked slot leaves availability", func(t *testing.T) {
		free, err := NewFreeSlots(repo).Execute(ctx, "d001", "2026-09-10",
			time.Date(2026, 9, 10, 0, 0, 0, 0, timezone.Location()))
		require.NoError(t, err)
		assert.NotContains(t, free, "09:20")
	})

	t.Run("consumed slot is unavailable even to its holder", func(t *testing.T) {
		// Booking removed 09:20 from availability, so the membership
		// check fires before the duplicate check.
		_, err := uc.Execute(ctx, BookSlotInput{
			PatientID: "p001", DoctorID: "d001",
			Date: "2026-09-10", Slot: "09:20",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})

	t.Run("republished booked slot rejects its holder as duplicate", func(t *testing.T) {
		// A republish re-offers the whole day, booked slots included.
		_, err := repo.PublishSchedule(ctx, "d001", "2026-09-10",
			[]string{"09:00", "09:20", "09:40"})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, BookSlotInput{
			PatientID: "p001", DoctorID: "d001",
			Date: "2026-09-10", Slot: "09:20",
		})
		assert.True(t, httperr.IsBusiness(err, "duplicate_appointment"))
	})

	t.Run("republished booked slot rejects other patients via the ledger", func(t *testing.T) {
		_, err := uc.Execute(ctx, BookSlotInput{
			PatientID: "p002", DoctorID: "d001",
			Date: "2026-09-10", Slot: "09:20",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})

	t.Run("unpublished slot is unavailable", func(t *testing.T) {
		_, err := uc.Execute(ctx, BookSlotInput{
			PatientID: "p002", DoctorID: "d001",
			Date: "2026-09-10", Slot: "11:00",
		})
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
	})

	t.Run("unknown patient rejected first", func(t *testing.T) {
		_, err := uc.Execute(ctx, BookSlotInput{
			PatientID: "p999", DoctorID: "d001",
			Date: "2026-09-10", Slot: "09:40",
		})
		assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
	})
}

// Two goroutines per slot race for the same (doctor, date, slot); exactly
// one booking per slot may succeed, the rest must see slot_unavailable.
func TestBookSlotMutualExclusion(t *testing.T) {
	repo := newFakeRepo()
	repo.doctors["d001"] = &models.Doctor{DoctorID: "d001"}

	const contenders = 8
	for i := 0; i < contenders; i++ {
		pID := fmt.Sprintf("p%03d", i+1)
		repo.patients[pID] = &models.Patient{PatientID: pID}
	}

	ctx := context.Background()
	_, err := repo.PublishSchedule(ctx, "d001", "2026-09-10", []string{"09:00"})
	require.NoError(t, err)

	uc := NewBookSlot(repo, redislock.NewLocal(), testDispatcher())

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Execute(ctx, BookSlotInput{
				PatientID: fmt.Sprintf("p%03d", i+1),
				DoctorID:  "d001",
				Date:      "2026-09-10",
				Slot:      "09:00",
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "slot_unavailable"),
			"loser must see slot_unavailable, got %v", err)
	}
	assert.Equal(t, 1, wins)
}

func TestDeleteAppointment(t *testing.T) {
	repo := seededRepo()
	ctx := context.Background()

	_, err := repo.PublishSchedule(ctx, "d001", "2026-09-10", []string{"09:00"})
	require.NoError(t, err)

	bookUC := NewBookSlot(repo, redislock.NewLocal(), testDispatcher())
	ap, err := bookUC.Execute(ctx, BookSlotInput{
		PatientID: "p001", DoctorID: "d001",
		Date: "2026-09-10", Slot: "09:00",
	})
	require.NoError(t, err)

	uc := NewDeleteAppointment(repo, testDispatcher())

	deleted, err := uc.Execute(ctx, ap.AptID)
	require.NoError(t, err)
	assert.Equal(t, ap.AptID, deleted.AptID)

	_, err = repo.GetAppointment(ctx, ap.AptID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = uc.Execute(ctx, ap.AptID)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
