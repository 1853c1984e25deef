package models

// Doctor holds the professional profile of a user with the doctor role.
type Doctor struct {
	BaseModel
	UserID          string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Specialization  string  `gorm:"size:100" json:"specialization"`
	Qualification   string  `gorm:"size:200" json:"qualification,omitempty"`
	ExperienceYears int     `gorm:"default:0" json:"experienceYears"`
	ConsultationFee float64 `gorm:"type:decimal(10,2);default:0" json:"consultationFee"`

	// Relations
	User                User                 `gorm:"foreignKey:UserID" json:"user,omitempty"`
	AvailabilityWindows []AvailabilityWindow `gorm:"foreignKey:DoctorID" json:"-"`
	Appointments        []Appointment        `gorm:"foreignKey:DoctorID" json:"-"`
	UrgentSurgeries     []UrgentSurgery      `gorm:"foreignKey:DoctorID" json:"-"`
}
