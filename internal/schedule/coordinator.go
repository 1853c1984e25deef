package schedule

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/notify"
)

// Proposal is one requested move inside a bulk reschedule: the appointment
// and its new date and time.
type Proposal struct {
	AppointmentID string
	NewDate       time.Time
	NewTime       TimeOfDay
}

// ProposalError reports why a single proposal was refused.
type ProposalError struct {
	AppointmentID string         `json:"appointmentId"`
	Reason        ConflictReason `json:"reason"`
	Message       string         `json:"message"`
}

// BatchValidationError is returned when one or more proposals fail
// validation. The batch is rejected as a whole; no appointment was touched.
type BatchValidationError struct {
	Items []ProposalError `json:"items"`
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("%s: %d of the proposed reschedules failed validation", ReasonValidationFailed, len(e.Items))
}

// BatchTx is the transactional view the coordinator works through. All reads
// and writes inside one RescheduleBatch call see the same transaction.
type BatchTx interface {
	// Appointment loads an appointment with its patient preloaded.
	Appointment(id string) (*models.Appointment, error)

	// MoveAppointment updates the appointment's date and time in place.
	MoveAppointment(a *models.Appointment, date time.Time, at TimeOfDay) error

	// CreateRescheduleRecord appends an audit record for the move.
	CreateRescheduleRecord(rec *models.RescheduleRecord) error

	// Validator returns a slot validator bound to this transaction.
	Validator() SlotValidator
}

// BatchStore opens transactions for the coordinator. A non-nil error from fn
// rolls the transaction back in full.
type BatchStore interface {
	Transaction(fn func(tx BatchTx) error) error
}

// Coordinator applies a batch of reschedule proposals for the appointments
// conflicting with an urgent surgery. The batch is all-or-nothing: either
// every appointment moves, or none does. A doctor must never end up with
// some conflicting appointments moved and others silently left inside the
// surgery window.
type Coordinator struct {
	store    BatchStore
	notifier notify.Notifier
}

// NewCoordinator creates a Coordinator over the given store and notifier.
func NewCoordinator(store BatchStore, notifier notify.Notifier) *Coordinator {
	return &Coordinator{store: store, notifier: notifier}
}

type movedAppointment struct {
	appt     *models.Appointment
	origDate time.Time
	origTime string
}

// RescheduleBatch validates every proposal through the scheduling engine and,
// only if all pass, applies every move in one transaction: an audit record
// per appointment, then the date/time update. It returns the number of
// appointments moved.
//
// Validation runs twice: once against the pre-move state to collect every
// per-item failure up front, and once after the moves so proposals that only
// conflict with each other (three of them crowding one slot, or two landing
// on the same minute) are caught before commit. Failures come back as
// *BatchValidationError carrying per-item reasons. Any store failure during
// the commit phase aborts and rolls back the entire batch. Patient
// notifications go out only after the transaction has durably committed, and
// never fail the call.
func (c *Coordinator) RescheduleBatch(surgery *models.UrgentSurgery, proposals []Proposal, actorID string) (int, error) {
	var moved []movedAppointment

	err := c.store.Transaction(func(tx BatchTx) error {
		// Validation phase: no writes, every failure collected.
		var failures []ProposalError
		appts := make(map[string]*models.Appointment, len(proposals))
		for _, p := range proposals {
			appt, err := tx.Appointment(p.AppointmentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					failures = append(failures, ProposalError{
						AppointmentID: p.AppointmentID,
						Reason:        ReasonValidationFailed,
						Message:       "appointment not found",
					})
					continue
				}
				return err
			}
			if appt.DoctorID != surgery.DoctorID {
				failures = append(failures, ProposalError{
					AppointmentID: p.AppointmentID,
					Reason:        ReasonNotOwner,
					Message:       "appointment does not belong to the surgery's doctor",
				})
				continue
			}
			if err := tx.Validator().ValidateSlot(appt.DoctorID, p.NewDate, p.NewTime, appt.ID); err != nil {
				if ce, ok := AsConflict(err); ok {
					failures = append(failures, ProposalError{
						AppointmentID: p.AppointmentID,
						Reason:        ce.Reason,
						Message:       ce.Message,
					})
					continue
				}
				return err
			}
			appts[p.AppointmentID] = appt
		}
		if len(failures) > 0 {
			return &BatchValidationError{Items: failures}
		}

		// Commit phase: record then move, all inside this transaction.
		for _, p := range proposals {
			appt := appts[p.AppointmentID]
			rec := &models.RescheduleRecord{
				AppointmentID:   appt.ID,
				OriginalDate:    appt.Date,
				OriginalTime:    appt.Time,
				NewDate:         p.NewDate,
				NewTime:         p.NewTime.String(),
				Reason:          "Urgent surgery: " + surgery.SurgeryType,
				UrgentSurgeryID: &surgery.ID,
				RescheduledByID: actorID,
			}
			if err := tx.CreateRescheduleRecord(rec); err != nil {
				return err
			}
			origDate, origTime := appt.Date, appt.Time
			if err := tx.MoveAppointment(appt, p.NewDate, p.NewTime); err != nil {
				return err
			}
			moved = append(moved, movedAppointment{appt: appt, origDate: origDate, origTime: origTime})
		}

		// The first pass saw the pre-move state only, so proposals crowding
		// each other into one slot would all pass it. Re-validate every
		// target against the moved state before the transaction commits.
		for _, p := range proposals {
			appt := appts[p.AppointmentID]
			if err := tx.Validator().ValidateSlot(appt.DoctorID, p.NewDate, p.NewTime, appt.ID); err != nil {
				if ce, ok := AsConflict(err); ok {
					failures = append(failures, ProposalError{
						AppointmentID: p.AppointmentID,
						Reason:        ce.Reason,
						Message:       ce.Message,
					})
					continue
				}
				return err
			}
		}
		if len(failures) > 0 {
			return &BatchValidationError{Items: failures}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// The batch is committed; notifications are best-effort from here on.
	for _, m := range moved {
		apptID := m.appt.ID
		c.notifier.Notify(&models.Notification{
			RecipientID: m.appt.Patient.UserID,
			Kind:        models.NotifyAppointmentRescheduled,
			Title:       "Appointment rescheduled",
			Message: fmt.Sprintf("Your appointment on %s at %s was moved to %s at %s due to an urgent surgery.",
				m.origDate.Format(DateLayout), m.origTime,
				m.appt.Date.Format(DateLayout), m.appt.Time),
			SurgeryID:     &surgery.ID,
			AppointmentID: &apptID,
		})
	}

	return len(moved), nil
}
