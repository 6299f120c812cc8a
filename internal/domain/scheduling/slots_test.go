package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	t.Run("one hour yields three slots", func(t *testing.T) {
		slots := GenerateSlots("09:00", "10:00")
		assert.Equal(t, []string{"09:00", "09:20", "09:40"}, slots)
	})

	t.Run("deterministic for same input", func(t *testing.T) {
		first := GenerateSlots("10:00", "13:00")
		second := GenerateSlots("10:00", "13:00")
		assert.Equal(t, first, second)
	})

	t.Run("final slot may extend past end", func(t *testing.T) {
		// 09:20 starts before 09:30 even though it runs until 09:40.
		slots := GenerateSlots("09:00", "09:30")
		assert.Equal(t, []string{"09:00", "09:20"}, slots)
	})

	t.Run("end equal to start yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("09:00", "09:00"))
	})

	t.Run("end before start yields nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("10:00", "09:00"))
	})

	t.Run("malformed times yield nothing", func(t *testing.T) {
		assert.Empty(t, GenerateSlots("9am", "10:00"))
		assert.Empty(t, GenerateSlots("09:00", "later"))
	})
}

func TestExpandRanges(t *testing.T) {
	t.Run("concatenates ranges in order", func(t *testing.T) {
		slots := ExpandRanges([]TimeRange{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "14:00", EndTime: "15:00"},
		})
		assert.Equal(t,
			[]string{"09:00", "09:20", "09:40", "14:00", "14:20", "14:40"},
			slots,
		)
	})

	t.Run("overlapping ranges stay a set", func(t *testing.T) {
		slots := ExpandRanges([]TimeRange{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "09:40", EndTime: "10:20"},
		})
		assert.Equal(t,
			[]string{"09:00", "09:20", "09:40", "10:00"},
			slots,
		)
	})

	t.Run("empty input yields nothing", func(t *testing.T) {
		assert.Empty(t, ExpandRanges(nil))
	})
}

func TestSlotStart(t *testing.T) {
	at, err := SlotStart("2026-09-10", "09:20")
	require.NoError(t, err)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, "09:20", at.Format(SlotLayout))
	assert.Equal(t, "Asia/Kolkata", at.Location().String())

	_, err = SlotStart("2026-09-10", "nine")
	assert.Error(t, err)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-09-10"))
	assert.False(t, ValidDate("10-09-2026"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate(""))
}
