package scheduling

import (
	"context"

	"github.com/medidesk/hospital-api/internal/models"
)

// Repository contains the storage operations the scheduling use cases need.
// Implementations map "row not found" to the matching business error code
// (patient_not_found, doctor_not_found, schedule_not_found,
// appointment_not_found) so callers never see driver-level sentinels.
type Repository interface {
	// -------- Existence checks --------
	GetPatient(ctx context.Context, pID string) (*models.Patient, error)
	GetDoctor(ctx context.Context, doctorID string) (*models.Doctor, error)

	// -------- Availability store --------
	GetSchedule(ctx context.Context, doctorID, date string) (*models.DoctorSchedule, error)

	// PublishSchedule upserts the (doctor, date) record, replacing its whole
	// slot set. Destructive on purpose: free-slot computation never trusts
	// this store alone (see FreeSlots).
	PublishSchedule(ctx context.Context, doctorID, date string, slots []string) (*models.DoctorSchedule, error)

	// -------- Booking ledger --------
	ListBookedSlots(ctx context.Context, doctorID, date string) ([]string, error)
	HasBookedAppointment(ctx context.Context, pID, doctorID, date, slot string) (bool, error)

	// ReserveSlot is the atomic unit of booking: inside one transaction it
	// re-checks the slot against the locked schedule row and the ledger,
	// assigns the next aptID, inserts the booked appointment, and removes
	// the slot from availability. Losers get slot_unavailable.
	ReserveSlot(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, aptID string) (*models.Appointment, error)

	// DeleteAppointmentCascade removes the appointment plus its invoice and
	// report rows in one transaction, returning the deleted record.
	DeleteAppointmentCascade(ctx context.Context, aptID string) (*models.Appointment, error)
}
