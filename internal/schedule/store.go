package schedule

import (
	"time"

	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// Stores is the GORM-backed implementation of AppointmentReader,
// AvailabilityReader and BatchStore.
type Stores struct {
	db *gorm.DB
}

// NewStores wraps a database handle for use by the engine, resolver and
// coordinator.
func NewStores(db *gorm.DB) *Stores {
	return &Stores{db: db}
}

// NewEngineFor builds an Engine reading through the given database handle.
func NewEngineFor(db *gorm.DB) *Engine {
	s := NewStores(db)
	return NewEngine(s, s)
}

func (s *Stores) CountScheduledInSlot(doctorID string, date time.Time, from, to TimeOfDay, excludeID string) (int64, error) {
	q := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time >= ? AND time <= ? AND status = ?",
			doctorID, date.Format(DateLayout), from.String(), to.String(), models.StatusScheduled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (s *Stores) ScheduledExistsAt(doctorID string, date time.Time, at TimeOfDay, excludeID string) (bool, error) {
	q := s.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time = ? AND status = ?",
			doctorID, date.Format(DateLayout), at.String(), models.StatusScheduled)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (s *Stores) ScheduledInInterval(doctorID string, date time.Time, from, until TimeOfDay) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := s.db.Preload("Patient.User").
		Where("doctor_id = ? AND date = ? AND time >= ? AND time < ? AND status = ?",
			doctorID, date.Format(DateLayout), from.String(), until.String(), models.StatusScheduled).
		Order("time asc").
		Find(&appointments).Error
	return appointments, err
}

func (s *Stores) WindowsFor(doctorID string, date time.Time) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := s.db.
		Where("doctor_id = ? AND (recurring = ? OR date = ?)", doctorID, true, date.Format(DateLayout)).
		Find(&windows).Error
	return windows, err
}

// Transaction runs fn inside a database transaction; a non-nil error from fn
// rolls everything back.
func (s *Stores) Transaction(fn func(tx BatchTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormBatchTx{db: tx})
	})
}

type gormBatchTx struct {
	db *gorm.DB
}

func (t *gormBatchTx) Appointment(id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := t.db.Preload("Patient").First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (t *gormBatchTx) MoveAppointment(a *models.Appointment, date time.Time, at TimeOfDay) error {
	a.Date = date
	a.Time = at.String()
	return t.db.Model(a).
		Updates(map[string]interface{}{"date": date.Format(DateLayout), "time": at.String()}).Error
}

func (t *gormBatchTx) CreateRescheduleRecord(rec *models.RescheduleRecord) error {
	return t.db.Create(rec).Error
}

func (t *gormBatchTx) Validator() SlotValidator {
	return NewEngineFor(t.db)
}
