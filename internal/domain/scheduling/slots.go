package scheduling

import (
	"time"

	"github.com/medidesk/hospital-api/internal/timezone"
)

// SlotGrain is the fixed width of a bookable slot.
const SlotGrain = 20 * time.Minute

const (
	SlotLayout = "15:04"
	DateLayout = "2006-01-02"
)

// TimeRange is one contiguous working block a doctor declares for a day.
type TimeRange struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// GenerateSlots expands a start/end wall-clock range into the ordered list of
// slot-start labels spaced at SlotGrain. The loop runs while slot_start < end,
// so the final slot may extend past end; it is not clipped. A range with
// end <= start (or a malformed time) yields no slots rather than an error.
func GenerateSlots(startTime, endTime string) []string {
	start, err := time.Parse(SlotLayout, startTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(SlotLayout, endTime)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(SlotGrain) {
		slots = append(slots, cur.Format(SlotLayout))
	}
	return slots
}

// ExpandRanges generates slots for every range in input order and
// concatenates the results. A label already produced by an earlier range is
// dropped so the published availability stays a true set even when the
// doctor submits overlapping blocks.
func ExpandRanges(ranges []TimeRange) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range ranges {
		for _, s := range GenerateSlots(r.StartTime, r.EndTime) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// SlotStart resolves a (date, label) pair to the slot's start instant in the
// hospital's operative timezone.
func SlotStart(date, label string) (time.Time, error) {
	return time.ParseInLocation(
		DateLayout+" "+SlotLayout,
		date+" "+label,
		timezone.Location(),
	)
}

// ValidDate reports whether date is a well-formed calendar date (YYYY-MM-DD).
func ValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}
