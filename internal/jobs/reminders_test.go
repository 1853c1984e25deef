package jobs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

type fakeReminderStore struct {
	due      []models.Appointment
	reminded []string
}

func (s *fakeReminderStore) DueTomorrow() ([]models.Appointment, error) {
	return s.due, nil
}

func (s *fakeReminderStore) MarkReminded(a *models.Appointment) error {
	s.reminded = append(s.reminded, a.ID)
	return nil
}

type fakeMailer struct {
	failFor map[string]bool
	sent    []string
}

func (m *fakeMailer) Send(to, _, _ string) error {
	if m.failFor[to] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

type captureNotifier struct {
	sent []models.Notification
}

func (n *captureNotifier) Notify(msg *models.Notification) {
	n.sent = append(n.sent, *msg)
}

func dueAppointment(id, email string) models.Appointment {
	a := models.Appointment{
		Date:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:   "10:00",
		Status: models.StatusScheduled,
	}
	a.ID = id
	a.Patient.User.Email = email
	a.Patient.User.ID = "user-" + id
	a.Patient.User.FirstName = "Pat"
	a.Doctor.User.FirstName = "Doc"
	return a
}

func TestReminderJobRemindsAndMarks(t *testing.T) {
	store := &fakeReminderStore{due: []models.Appointment{
		dueAppointment("a1", "one@example.com"),
		dueAppointment("a2", "two@example.com"),
	}}
	mailer := &fakeMailer{}
	notifier := &captureNotifier{}
	job := &ReminderJob{Store: store, Mailer: mailer, Notifier: notifier}

	job.Run()

	assert.Equal(t, []string{"one@example.com", "two@example.com"}, mailer.sent)
	assert.Equal(t, []string{"a1", "a2"}, store.reminded)
	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, models.NotifyAppointmentReminder, notifier.sent[0].Kind)
	assert.Equal(t, "user-a1", notifier.sent[0].RecipientID)
}

// A failed mail leaves the appointment unmarked so the next sweep retries it,
// and never blocks the rest of the batch.
func TestReminderJobMailFailureIsRetriedLater(t *testing.T) {
	store := &fakeReminderStore{due: []models.Appointment{
		dueAppointment("a1", "broken@example.com"),
		dueAppointment("a2", "ok@example.com"),
	}}
	mailer := &fakeMailer{failFor: map[string]bool{"broken@example.com": true}}
	notifier := &captureNotifier{}
	job := &ReminderJob{Store: store, Mailer: mailer, Notifier: notifier}

	job.Run()

	assert.Equal(t, []string{"ok@example.com"}, mailer.sent)
	assert.Equal(t, []string{"a2"}, store.reminded)
	assert.Len(t, notifier.sent, 1)
}

func TestNewMailer(t *testing.T) {
	mailer, err := NewMailer("log", "noreply@swasthyacare.local")
	assert.NoError(t, err)
	assert.Equal(t, LogMailer{From: "noreply@swasthyacare.local"}, mailer)

	mailer, err = NewMailer("", "noreply@swasthyacare.local")
	assert.NoError(t, err)
	assert.NotNil(t, mailer)

	_, err = NewMailer("smtp", "noreply@swasthyacare.local")
	assert.Error(t, err)
}

func TestReminderJobSkipsPatientsWithoutEmail(t *testing.T) {
	store := &fakeReminderStore{due: []models.Appointment{
		dueAppointment("a1", ""),
	}}
	mailer := &fakeMailer{}
	notifier := &captureNotifier{}
	job := &ReminderJob{Store: store, Mailer: mailer, Notifier: notifier}

	job.Run()

	assert.Empty(t, mailer.sent)
	assert.Empty(t, store.reminded)
	assert.Empty(t, notifier.sent)
}
