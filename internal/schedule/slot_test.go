package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotStart(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09:00", "09:00"},
		{"09:07", "09:00"},
		{"09:14", "09:00"},
		{"09:15", "09:15"},
		{"09:29", "09:15"},
		{"09:30", "09:30"},
		{"09:44", "09:30"},
		{"09:45", "09:45"},
		{"09:59", "09:45"},
		{"19:59", "19:45"},
	}
	for _, tc := range cases {
		at, err := ParseTimeOfDay(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, SlotStart(at).String(), "SlotStart(%s)", tc.in)
	}
}

func TestSlotEnd(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"09:00", "09:14"},
		{"09:14", "09:14"},
		{"09:15", "09:29"},
		{"09:30", "09:44"},
		{"09:45", "09:59"},
		{"13:07", "13:14"},
	}
	for _, tc := range cases {
		at, err := ParseTimeOfDay(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, SlotEnd(at).String(), "SlotEnd(%s)", tc.in)
	}
}

// Every minute of the day maps into exactly one slot, and the slot bounds
// always span 14 minutes with the start aligned to a quarter hour.
func TestSlotBoundsPartitionTheDay(t *testing.T) {
	for m := 0; m < 24*60; m++ {
		at := TimeOfDay(m)
		start, end := SlotBounds(at)
		assert.Equal(t, TimeOfDay(0), start%SlotMinutes, "start of slot for %s not aligned", at)
		assert.Equal(t, start+SlotMinutes-1, end)
		assert.LessOrEqual(t, start, at)
		assert.LessOrEqual(t, at, end)
	}
}

func TestWithinOperatingHours(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"08:59", false},
		{"09:00", true},
		{"13:30", true},
		{"19:59", true},
		{"20:00", false},
		{"23:45", false},
		{"00:00", false},
	}
	for _, tc := range cases {
		at, err := ParseTimeOfDay(tc.in)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, WithinOperatingHours(at), "WithinOperatingHours(%s)", tc.in)
	}
}
