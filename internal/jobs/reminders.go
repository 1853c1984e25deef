package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/notify"
	"github.com/CodeClashers89/SwasthyaCare/internal/schedule"
)

// Mailer delivers reminder emails. The concrete transport lives outside this
// service; a failed send only means the appointment stays unreminded and is
// retried on the next run.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer stands in for a real mail transport and just logs the send.
type LogMailer struct {
	From string
}

func (m LogMailer) Send(to, subject, _ string) error {
	log.Info().Str("from", m.From).Str("to", to).Str("subject", subject).Msg("mail send (log transport)")
	return nil
}

// NewMailer selects the mail transport named by configuration. "log" is the
// only transport this service ships; SMTP delivery is handled by an external
// relay consuming the log stream in the current deployment.
func NewMailer(transport, defaultFrom string) (Mailer, error) {
	switch transport {
	case "", "log":
		return LogMailer{From: defaultFrom}, nil
	default:
		return nil, fmt.Errorf("unknown mailer transport %q", transport)
	}
}

// ReminderStore is the job's view of the appointment table.
type ReminderStore interface {
	// DueTomorrow lists tomorrow's SCHEDULED, not-yet-reminded appointments
	// with patient and doctor users loaded.
	DueTomorrow() ([]models.Appointment, error)

	// MarkReminded flags the appointment so later sweeps skip it.
	MarkReminded(a *models.Appointment) error
}

// GormReminderStore reads and flags reminders through the database.
type GormReminderStore struct {
	DB *gorm.DB
}

func (s *GormReminderStore) DueTomorrow() ([]models.Appointment, error) {
	tomorrow := schedule.Today().AddDate(0, 0, 1)
	var appointments []models.Appointment
	err := s.DB.Preload("Patient.User").Preload("Doctor.User").
		Where("date = ? AND status = ? AND reminder_sent = ?",
			tomorrow.Format(schedule.DateLayout), models.StatusScheduled, false).
		Find(&appointments).Error
	return appointments, err
}

func (s *GormReminderStore) MarkReminded(a *models.Appointment) error {
	return s.DB.Model(a).Update("reminder_sent", true).Error
}

// ReminderJob reminds the patients of tomorrow's appointments. The sweep is
// stateless, so the job can run from the in-process cron schedule or be
// triggered externally.
type ReminderJob struct {
	Store    ReminderStore
	Mailer   Mailer
	Notifier notify.Notifier
}

// NewReminderJob creates a database-backed reminder job.
func NewReminderJob(db *gorm.DB, mailer Mailer, notifier notify.Notifier) *ReminderJob {
	return &ReminderJob{Store: &GormReminderStore{DB: db}, Mailer: mailer, Notifier: notifier}
}

// Run processes one reminder sweep. It implements cron.Job.
func (j *ReminderJob) Run() {
	appointments, err := j.Store.DueTomorrow()
	if err != nil {
		log.Error().Err(err).Msg("reminder sweep query failed")
		return
	}

	sent := 0
	for i := range appointments {
		appt := &appointments[i]
		patient := appt.Patient.User
		if patient.Email == "" {
			log.Warn().Str("appointment", appt.ID).Msg("skipping reminder, patient has no email")
			continue
		}

		subject := "Appointment Reminder: Tomorrow at " + appt.Time
		body := fmt.Sprintf("Dear %s, this is a reminder of your appointment with Dr. %s (%s) on %s at %s.",
			patient.FullName(), appt.Doctor.User.FullName(), appt.Doctor.Specialization,
			appt.Date.Format(schedule.DateLayout), appt.Time)
		if err := j.Mailer.Send(patient.Email, subject, body); err != nil {
			log.Warn().Err(err).Str("appointment", appt.ID).Msg("reminder mail failed")
			continue
		}

		apptID := appt.ID
		j.Notifier.Notify(&models.Notification{
			RecipientID:   patient.ID,
			Kind:          models.NotifyAppointmentReminder,
			Title:         "Appointment tomorrow",
			Message:       body,
			AppointmentID: &apptID,
		})

		if err := j.Store.MarkReminded(appt); err != nil {
			log.Error().Err(err).Str("appointment", appt.ID).Msg("failed to mark reminder sent")
			continue
		}
		sent++
	}

	log.Info().Int("found", len(appointments)).Int("sent", sent).Msg("reminder sweep completed")
}

// Start schedules the job on the given cron spec and returns the running
// scheduler so the caller can stop it on shutdown.
func Start(job *ReminderJob, spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
