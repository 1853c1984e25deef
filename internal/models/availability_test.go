package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityWindowValidate(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	valid := AvailabilityWindow{Recurring: true, StartTime: "13:00", EndTime: "14:00"}
	assert.NoError(t, valid.Validate())

	dated := AvailabilityWindow{Date: &day, StartTime: "09:00", EndTime: "12:00"}
	assert.NoError(t, dated.Validate())

	backwards := AvailabilityWindow{Recurring: true, StartTime: "14:00", EndTime: "13:00"}
	assert.ErrorIs(t, backwards.Validate(), ErrWindowEndNotAfterStart)

	zeroWidth := AvailabilityWindow{Recurring: true, StartTime: "13:00", EndTime: "13:00"}
	assert.ErrorIs(t, zeroWidth.Validate(), ErrWindowEndNotAfterStart)

	recurringWithDate := AvailabilityWindow{Recurring: true, Date: &day, StartTime: "13:00", EndTime: "14:00"}
	assert.ErrorIs(t, recurringWithDate.Validate(), ErrRecurringWindowHasDate)

	datedWithoutDate := AvailabilityWindow{StartTime: "13:00", EndTime: "14:00"}
	assert.ErrorIs(t, datedWithoutDate.Validate(), ErrDatedWindowMissingDate)
}

// An unpadded "9:30" sorts after every padded appointment time, so a window
// carrying one would pass the ordering checks yet never exclude anything.
// Validate refuses non-canonical times outright.
func TestAvailabilityWindowValidateRejectsUnpaddedTimes(t *testing.T) {
	unpadded := AvailabilityWindow{Recurring: true, StartTime: "9:30", EndTime: "9:45"}
	assert.ErrorIs(t, unpadded.Validate(), ErrWindowTimeNotNormalized)

	unpaddedEnd := AvailabilityWindow{Recurring: true, StartTime: "09:30", EndTime: "9:45"}
	assert.ErrorIs(t, unpaddedEnd.Validate(), ErrWindowTimeNotNormalized)

	garbage := AvailabilityWindow{Recurring: true, StartTime: "nine", EndTime: "10:00"}
	assert.ErrorIs(t, garbage.Validate(), ErrWindowTimeNotNormalized)
}

func TestAvailabilityWindowCovers(t *testing.T) {
	day := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	otherDay := day.AddDate(0, 0, 1)

	recurring := AvailabilityWindow{Recurring: true, StartTime: "13:00", EndTime: "14:00"}
	assert.True(t, recurring.Covers(day, "13:00"), "start is inclusive")
	assert.True(t, recurring.Covers(day, "13:59"))
	assert.False(t, recurring.Covers(day, "14:00"), "end is exclusive")
	assert.False(t, recurring.Covers(day, "12:59"))
	assert.True(t, recurring.Covers(otherDay, "13:30"), "recurring windows apply every day")

	dated := AvailabilityWindow{Date: &day, StartTime: "09:00", EndTime: "12:00"}
	assert.True(t, dated.Covers(day, "10:00"))
	assert.False(t, dated.Covers(otherDay, "10:00"))
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, 9, 14, 23, 59, 0, 0, time.UTC)
	b := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, b.AddDate(0, 0, 1)))
}
