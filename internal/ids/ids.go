package ids

import (
	"fmt"

	"gorm.io/gorm"
)

// Counter names and their prefixes for the human-readable sequential IDs.
const (
	CounterAppointment  = "appointment"
	CounterDoctor       = "doctor"
	CounterReceptionist = "receptionist"
	CounterPatient      = "patient"
)

var prefixes = map[string]string{
	CounterAppointment:  "a",
	CounterDoctor:       "d",
	CounterReceptionist: "r",
	CounterPatient:      "p",
}

// Format renders a counter value as prefix + zero-padded number ("a001").
// Values past 999 keep their natural width instead of wrapping or resetting.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// Next atomically increments the named counter and returns the formatted ID.
// The increment is a single statement, so concurrent callers each get a
// distinct value; run it inside the transaction that inserts the record so a
// rollback releases nothing visible.
func Next(tx *gorm.DB, counter string) (string, error) {
	prefix, ok := prefixes[counter]
	if !ok {
		return "", fmt.Errorf("unknown counter %q", counter)
	}

	var value int64
	err := tx.Raw(`
        INSERT INTO counters (name, value)
        VALUES (?, 1)
        ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
        RETURNING value
    `, counter).Scan(&value).Error
	if err != nil {
		return "", err
	}

	return Format(prefix, value), nil
}
