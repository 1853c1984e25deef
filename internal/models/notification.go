package models

// NotificationKind classifies in-app notifications.
type NotificationKind string

const (
	NotifySurgeryApprovalPending NotificationKind = "SURGERY_APPROVAL_PENDING"
	NotifySurgeryApproved        NotificationKind = "SURGERY_APPROVED"
	NotifySurgeryRejected        NotificationKind = "SURGERY_REJECTED"
	NotifyAppointmentRescheduled NotificationKind = "APPOINTMENT_RESCHEDULED"
	NotifyAppointmentReminder    NotificationKind = "APPOINTMENT_REMINDER"
)

// Notification is a fire-and-forget in-app message. It is not authoritative:
// losing one has no effect on scheduling correctness.
type Notification struct {
	BaseModel
	RecipientID   string           `gorm:"size:36;index;not null" json:"recipientId"`
	Kind          NotificationKind `gorm:"size:50;not null" json:"kind"`
	Title         string           `gorm:"size:200" json:"title"`
	Message       string           `gorm:"type:text" json:"message"`
	SurgeryID     *string          `gorm:"size:36" json:"surgeryId,omitempty"`
	AppointmentID *string          `gorm:"size:36" json:"appointmentId,omitempty"`
	IsRead        bool             `gorm:"default:false" json:"isRead"`

	// Relations
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
