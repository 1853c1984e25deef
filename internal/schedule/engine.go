package schedule

import (
	"fmt"
	"time"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// AppointmentReader is the engine's read-only view of booked appointments.
type AppointmentReader interface {
	// CountScheduledInSlot counts SCHEDULED appointments for the doctor on
	// the date whose time lies in the inclusive [from, to] range, excluding
	// the appointment with excludeID when non-empty.
	CountScheduledInSlot(doctorID string, date time.Time, from, to TimeOfDay, excludeID string) (int64, error)

	// ScheduledExistsAt reports whether a SCHEDULED appointment exists for
	// the doctor at exactly (date, at), excluding excludeID when non-empty.
	ScheduledExistsAt(doctorID string, date time.Time, at TimeOfDay, excludeID string) (bool, error)

	// ScheduledInInterval lists SCHEDULED appointments for the doctor on the
	// date whose time lies in the half-open [from, until) interval, ordered
	// by time.
	ScheduledInInterval(doctorID string, date time.Time, from, until TimeOfDay) ([]models.Appointment, error)
}

// AvailabilityReader is the engine's read-only view of doctor exclusions.
type AvailabilityReader interface {
	// WindowsFor returns every availability window that can apply to the
	// doctor on the date: recurring windows plus windows pinned to that date.
	WindowsFor(doctorID string, date time.Time) ([]models.AvailabilityWindow, error)
}

// SlotValidator is the single entry point deciding whether an appointment
// may occupy a (doctor, date, time) slot. Booking, rescheduling, follow-up
// creation and bulk reschedule all go through the same implementation.
type SlotValidator interface {
	ValidateSlot(doctorID string, date time.Time, at TimeOfDay, excludeApptID string) error
}

// Engine validates proposed appointment slots against operating hours,
// availability exclusions, slot capacity and exact duplicates. It performs
// no writes; persisting a validated appointment is the caller's job.
type Engine struct {
	appointments AppointmentReader
	availability AvailabilityReader
}

// NewEngine creates an Engine over the given stores.
func NewEngine(appointments AppointmentReader, availability AvailabilityReader) *Engine {
	return &Engine{appointments: appointments, availability: availability}
}

// ValidateSlot applies the four checks in order, failing on the first
// violation:
//
//  1. time inside operating hours, else OUTSIDE_HOURS
//  2. no recurring or date-specific exclusion window covers the time
//     (union of both rules), else DOCTOR_UNAVAILABLE
//  3. fewer than SlotCapacity SCHEDULED appointments already occupy the
//     15-minute slot, else SLOT_FULL
//  4. no SCHEDULED appointment at the identical (date, time), else
//     TIME_ALREADY_BOOKED
//
// excludeApptID names the appointment being moved so it never conflicts with
// itself; pass "" when creating a new appointment.
func (e *Engine) ValidateSlot(doctorID string, date time.Time, at TimeOfDay, excludeApptID string) error {
	if !WithinOperatingHours(at) {
		return NewConflict(ReasonOutsideHours,
			fmt.Sprintf("requested time %s is outside operating hours (%s-%s)", at, OpeningTime, ClosingTime))
	}

	windows, err := e.availability.WindowsFor(doctorID, date)
	if err != nil {
		return err
	}
	for _, w := range windows {
		if w.Covers(date, at.String()) {
			return NewConflict(ReasonDoctorUnavailable,
				fmt.Sprintf("doctor is unavailable between %s and %s", w.StartTime, w.EndTime))
		}
	}

	slotFrom, slotTo := SlotBounds(at)
	count, err := e.appointments.CountScheduledInSlot(doctorID, date, slotFrom, slotTo, excludeApptID)
	if err != nil {
		return err
	}
	if count >= SlotCapacity {
		return NewConflict(ReasonSlotFull,
			fmt.Sprintf("the %s-%s slot already has %d appointments", slotFrom, slotTo, count))
	}

	taken, err := e.appointments.ScheduledExistsAt(doctorID, date, at, excludeApptID)
	if err != nil {
		return err
	}
	if taken {
		return NewConflict(ReasonTimeAlreadyBooked,
			fmt.Sprintf("an appointment at %s on %s is already booked", at, date.Format(DateLayout)))
	}

	return nil
}

// ValidateFutureDate refuses dates before the current calendar date. Applies
// to surgeries and reschedules; booking callers may opt in as well.
func ValidateFutureDate(date time.Time) error {
	if BeforeDate(date, Today()) {
		return NewConflict(ReasonPastDate,
			fmt.Sprintf("date %s is in the past", date.Format(DateLayout)))
	}
	return nil
}
