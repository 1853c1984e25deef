package schedule

import (
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// Resolver identifies the appointments a newly approved urgent surgery
// collides with.
type Resolver struct {
	appointments AppointmentReader
}

// NewResolver creates a Resolver over the given appointment store.
func NewResolver(appointments AppointmentReader) *Resolver {
	return &Resolver{appointments: appointments}
}

// FindConflicts returns the SCHEDULED appointments of the surgery's doctor
// on the surgery's date whose time falls in the half-open
// [StartTime, EndTime) interval: an appointment starting exactly at EndTime
// is not a conflict, one starting exactly at StartTime is.
//
// The set is recomputed from the store on every call, never cached, since
// appointments may change between surgery approval and rescheduling.
func (r *Resolver) FindConflicts(surgery *models.UrgentSurgery) ([]models.Appointment, error) {
	start, err := ParseTimeOfDay(surgery.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(surgery.EndTime)
	if err != nil {
		return nil, err
	}
	return r.appointments.ScheduledInInterval(surgery.DoctorID, surgery.Date, start, end)
}
