package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// AvailabilityWindow marks a period during which a doctor cannot take
// appointments. A recurring window (no date) applies every day, for example a
// daily lunch break. A non-recurring window blocks a single date.
type AvailabilityWindow struct {
	BaseModel
	DoctorID  string     `gorm:"size:36;index;not null" json:"doctorId"`
	Recurring bool       `gorm:"default:false" json:"recurring"`
	Date      *time.Time `gorm:"type:date" json:"date,omitempty"`
	StartTime string     `gorm:"size:5;not null" json:"startTime"`
	EndTime   string     `gorm:"size:5;not null" json:"endTime"`
	Reason    string     `gorm:"size:200" json:"reason,omitempty"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

var (
	ErrWindowTimeNotNormalized = errors.New("availability window times must be zero-padded HH:MM")
	ErrWindowEndNotAfterStart  = errors.New("availability window end time must be after start time")
	ErrRecurringWindowHasDate  = errors.New("recurring availability window must not carry a date")
	ErrDatedWindowMissingDate  = errors.New("non-recurring availability window requires a date")
)

// normalizedClockTime reports whether s is a valid clock time in the exact
// zero-padded form the window comparisons rely on.
func normalizedClockTime(s string) bool {
	t, err := time.Parse("15:04", s)
	return err == nil && t.Format("15:04") == s
}

// Validate enforces the window invariants: times in zero-padded HH:MM form,
// end strictly after start, recurring windows never carry a date,
// date-specific windows always do. The normalized form matters because
// Covers compares strings lexicographically; an unpadded "9:30" would sort
// after every appointment time and exclude nothing.
func (w *AvailabilityWindow) Validate() error {
	if !normalizedClockTime(w.StartTime) || !normalizedClockTime(w.EndTime) {
		return ErrWindowTimeNotNormalized
	}
	if w.EndTime <= w.StartTime {
		return ErrWindowEndNotAfterStart
	}
	if w.Recurring && w.Date != nil {
		return ErrRecurringWindowHasDate
	}
	if !w.Recurring && w.Date == nil {
		return ErrDatedWindowMissingDate
	}
	return nil
}

// BeforeSave keeps invalid windows out of the store regardless of caller.
func (w *AvailabilityWindow) BeforeSave(tx *gorm.DB) error {
	return w.Validate()
}

// Covers reports whether the window excludes the given time on the given
// date. Recurring windows apply to every date.
func (w *AvailabilityWindow) Covers(date time.Time, hhmm string) bool {
	if !w.Recurring {
		if w.Date == nil || !SameDate(*w.Date, date) {
			return false
		}
	}
	return w.StartTime <= hhmm && hhmm < w.EndTime
}

// SameDate compares two timestamps by calendar date, ignoring time of day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
