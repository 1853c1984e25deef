package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Patient holds the medical profile of a user with the patient role.
type Patient struct {
	BaseModel
	UserID                string     `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	PatientCode           string     `gorm:"size:10;uniqueIndex" json:"patientCode"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender                string     `gorm:"size:10" json:"gender,omitempty"`
	Address               string     `gorm:"type:text" json:"address,omitempty"`
	BloodGroup            string     `gorm:"size:3" json:"bloodGroup,omitempty"`
	Allergies             string     `gorm:"type:text" json:"allergies,omitempty"`
	ChronicDiseases       string     `gorm:"type:text" json:"chronicDiseases,omitempty"`
	EmergencyContactName  string     `gorm:"size:100" json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string     `gorm:"size:20" json:"emergencyContactPhone,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate assigns the next human-readable patient code (P00001, P00002, ...).
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if err := p.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if p.PatientCode == "" {
		var count int64
		if err := tx.Model(&Patient{}).Count(&count).Error; err != nil {
			return err
		}
		p.PatientCode = fmt.Sprintf("P%05d", count+1)
	}
	return nil
}
