package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medidesk/hospital-api/internal/httperr"
)

// Human-readable reasons for the business error codes raised below the
// handler layer. The code tells the caller whether a retry with different
// input can help (conflict) or not (validation / not-found).
var businessMessages = map[string]string{
	"patient_not_found":     "Patient does not exist.",
	"doctor_not_found":      "Doctor does not exist.",
	"schedule_not_found":    "No schedule found for this doctor on this date.",
	"appointment_not_found": "No appointment found with this ID.",
	"invoice_not_found":     "Invoice not found.",
	"slot_unavailable":      "Requested slot is not available.",
	"duplicate_appointment": "An appointment already exists for this patient at this slot.",
	"invoice_exists":        "An invoice already exists for this appointment.",
	"profile_exists":        "Profile already exists.",
}

// writeBusinessError maps a business error to its HTTP status. Returns false
// when err carries no business code so the caller can fall through to a 500.
func writeBusinessError(c *gin.Context, err error) bool {
	code := httperr.BusinessCode(err)
	if code == "" {
		return false
	}

	msg, ok := businessMessages[code]
	if !ok {
		msg = "Request could not be processed."
	}

	switch code {
	case "patient_not_found", "doctor_not_found", "schedule_not_found",
		"appointment_not_found", "invoice_not_found":
		httperr.NotFound(c, code, msg)
	case "slot_unavailable", "duplicate_appointment", "invoice_exists", "profile_exists":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
	return true
}

func calculateAge(dob time.Time, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
