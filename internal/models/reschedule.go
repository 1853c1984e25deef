package models

import (
	"time"
)

// RescheduleRecord is an append-only audit entry written whenever an
// appointment's date or time changes because of an urgent surgery. Records
// are never updated after creation.
type RescheduleRecord struct {
	BaseModel
	AppointmentID   string    `gorm:"size:36;index;not null" json:"appointmentId"`
	OriginalDate    time.Time `gorm:"type:date;not null" json:"originalDate"`
	OriginalTime    string    `gorm:"size:5;not null" json:"originalTime"`
	NewDate         time.Time `gorm:"type:date;not null" json:"newDate"`
	NewTime         string    `gorm:"size:5;not null" json:"newTime"`
	Reason          string    `gorm:"type:text" json:"reason"`
	UrgentSurgeryID *string   `gorm:"size:36;index" json:"urgentSurgeryId,omitempty"`
	RescheduledByID string    `gorm:"size:36" json:"rescheduledById"`

	// Relations
	Appointment   Appointment    `gorm:"foreignKey:AppointmentID" json:"-"`
	UrgentSurgery *UrgentSurgery `gorm:"foreignKey:UrgentSurgeryID" json:"-"`
}
