package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Appointment represents a booked consultation for a patient with a doctor.
// Date is a calendar date and Time a zero-padded HH:MM string, which keeps
// slot range queries expressible as plain string comparisons in SQL.
//
// The composite unique index on (doctor, date, time) is the database backstop
// for the duplicate check in the scheduling engine, which is read-then-write
// and not atomic against concurrent bookings on its own.
type Appointment struct {
	BaseModel
	PatientID    string            `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID     string            `gorm:"size:36;index;not null;uniqueIndex:idx_doctor_date_time" json:"doctorId"`
	Date         time.Time         `gorm:"type:date;not null;uniqueIndex:idx_doctor_date_time" json:"date"`
	Time         string            `gorm:"size:5;not null;uniqueIndex:idx_doctor_date_time" json:"time"`
	Status       AppointmentStatus `gorm:"size:20;default:'SCHEDULED'" json:"status"`
	Reason       string            `gorm:"type:text" json:"reason"`
	IsFollowUp   bool              `gorm:"default:false" json:"isFollowUp"`
	ParentID     *string           `gorm:"size:36" json:"parentId,omitempty"`
	ReminderSent bool              `gorm:"default:false" json:"-"`
	CreatedByID  string            `gorm:"size:36" json:"createdById,omitempty"`

	// Relations
	Patient Patient      `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor       `gorm:"foreignKey:DoctorID" json:"-"`
	Parent  *Appointment `gorm:"foreignKey:ParentID" json:"-"`
}

// CanAttachRecord reports whether a medical record may be filed against the
// appointment. Records capture the outcome of a visit, so only completed
// appointments qualify.
func (a *Appointment) CanAttachRecord() bool {
	return a.Status == StatusCompleted
}
