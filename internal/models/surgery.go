package models

import (
	"time"
)

// SurgeryStatus represents where an urgent surgery sits in its approval
// lifecycle. PENDING moves to APPROVED or REJECTED exactly once; APPROVED
// may later move to COMPLETED.
type SurgeryStatus string

const (
	SurgeryPending   SurgeryStatus = "PENDING"
	SurgeryApproved  SurgeryStatus = "APPROVED"
	SurgeryRejected  SurgeryStatus = "REJECTED"
	SurgeryCompleted SurgeryStatus = "COMPLETED"
)

// UrgentSurgery represents an urgent surgery slotted into a doctor's
// calendar. Its [StartTime, EndTime) interval is half-open: an appointment
// starting exactly at EndTime does not conflict with the surgery.
type UrgentSurgery struct {
	BaseModel
	DoctorID        string        `gorm:"size:36;index;not null" json:"doctorId"`
	Date            time.Time     `gorm:"type:date;not null" json:"date"`
	StartTime       string        `gorm:"size:5;not null" json:"startTime"`
	EndTime         string        `gorm:"size:5;not null" json:"endTime"`
	SurgeryType     string        `gorm:"size:200" json:"surgeryType"`
	PatientName     string        `gorm:"size:200" json:"patientName"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	Status          SurgeryStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	CreatedByID     string        `gorm:"size:36" json:"createdById"`
	ApprovedByID    *string       `gorm:"size:36" json:"approvedById,omitempty"`
	RejectionReason string        `gorm:"type:text" json:"rejectionReason,omitempty"`

	// Relations
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// Resolved reports whether the surgery has left the PENDING state.
func (s *UrgentSurgery) Resolved() bool {
	return s.Status != SurgeryPending
}
