package models

// MedicalRecord captures the outcome of an appointment: diagnosis,
// prescription and free-form notes. File attachments and report rendering
// are handled outside this service.
type MedicalRecord struct {
	BaseModel
	AppointmentID string `gorm:"size:36;index;not null" json:"appointmentId"`
	PatientID     string `gorm:"size:36;index;not null" json:"patientId"`
	DoctorID      string `gorm:"size:36;index;not null" json:"doctorId"`
	Diagnosis     string `gorm:"type:text" json:"diagnosis"`
	Prescription  string `gorm:"type:text" json:"prescription"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Patient     Patient     `gorm:"foreignKey:PatientID" json:"-"`
	Doctor      Doctor      `gorm:"foreignKey:DoctorID" json:"-"`
}
