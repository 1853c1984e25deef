package schedule

// Operating hours: appointments run from 09:00 inclusive to 20:00 exclusive.
// Time is quantized into fixed 15-minute slots aligned to the hour.
const (
	OpeningTime TimeOfDay = 9 * 60
	ClosingTime TimeOfDay = 20 * 60

	// SlotMinutes is the width of one booking slot.
	SlotMinutes = 15

	// SlotCapacity is the number of SCHEDULED appointments allowed per slot.
	SlotCapacity = 2
)

// SlotStart truncates a time down to the start of its containing slot
// (:00, :15, :30 or :45).
func SlotStart(t TimeOfDay) TimeOfDay {
	return t - t%SlotMinutes
}

// SlotEnd returns the last minute of the slot containing t: a slot starting
// at :00 ends at :14, at :15 ends at :29, at :30 ends at :44, at :45 ends
// at :59.
func SlotEnd(t TimeOfDay) TimeOfDay {
	return SlotStart(t) + SlotMinutes - 1
}

// SlotBounds returns the inclusive [start, end] minute bounds of the slot
// containing t.
func SlotBounds(t TimeOfDay) (TimeOfDay, TimeOfDay) {
	start := SlotStart(t)
	return start, start + SlotMinutes - 1
}

// WithinOperatingHours reports whether t falls inside opening hours.
func WithinOperatingHours(t TimeOfDay) bool {
	return t >= OpeningTime && t < ClosingTime
}
