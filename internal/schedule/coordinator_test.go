package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// fakeBatchStore gives the coordinator real transaction semantics over the
// in-memory fakeStore: the transaction works on a copy and only a nil error
// from fn publishes the copy back.
type fakeBatchStore struct {
	store    *fakeStore
	records  []models.RescheduleRecord
	failMove bool
}

func (s *fakeBatchStore) Transaction(fn func(tx BatchTx) error) error {
	work := &fakeStore{
		appointments: append([]models.Appointment(nil), s.store.appointments...),
		windows:      s.store.windows,
	}
	tx := &fakeBatchTx{store: work, failMove: s.failMove}
	if err := fn(tx); err != nil {
		return err
	}
	s.store.appointments = work.appointments
	s.records = append(s.records, tx.records...)
	return nil
}

type fakeBatchTx struct {
	store    *fakeStore
	records  []models.RescheduleRecord
	failMove bool
}

func (t *fakeBatchTx) Appointment(id string) (*models.Appointment, error) {
	for i := range t.store.appointments {
		if t.store.appointments[i].ID == id {
			return &t.store.appointments[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (t *fakeBatchTx) MoveAppointment(a *models.Appointment, date time.Time, at TimeOfDay) error {
	if t.failMove {
		return errors.New("write failed")
	}
	a.Date = date
	a.Time = at.String()
	return nil
}

func (t *fakeBatchTx) CreateRescheduleRecord(rec *models.RescheduleRecord) error {
	t.records = append(t.records, *rec)
	return nil
}

func (t *fakeBatchTx) Validator() SlotValidator {
	return NewEngine(t.store, t.store)
}

type recordingNotifier struct {
	sent []models.Notification
}

func (n *recordingNotifier) Notify(msg *models.Notification) {
	n.sent = append(n.sent, *msg)
}

func batchFixture() (*fakeBatchStore, *models.UrgentSurgery) {
	a1 := scheduled("a1", "doc-1", testDate, "13:00")
	a1.Patient = models.Patient{UserID: "patient-user-1"}
	a2 := scheduled("a2", "doc-1", testDate, "13:15")
	a2.Patient = models.Patient{UserID: "patient-user-2"}
	store := &fakeBatchStore{store: &fakeStore{appointments: []models.Appointment{a1, a2}}}
	return store, testSurgery("doc-1", testDate, "13:00", "14:00")
}

func proposalAt(t *testing.T, apptID, hhmm string) Proposal {
	return Proposal{AppointmentID: apptID, NewDate: testDate, NewTime: mustTime(t, hhmm)}
}

func TestRescheduleBatchMovesEverything(t *testing.T) {
	store, surgery := batchFixture()
	notifier := &recordingNotifier{}
	coord := NewCoordinator(store, notifier)

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
		proposalAt(t, "a2", "15:15"),
	}, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	assert.Equal(t, "15:00", store.store.appointments[0].Time)
	assert.Equal(t, "15:15", store.store.appointments[1].Time)

	require.Len(t, store.records, 2)
	rec := store.records[0]
	assert.Equal(t, "a1", rec.AppointmentID)
	assert.Equal(t, "13:00", rec.OriginalTime)
	assert.Equal(t, "15:00", rec.NewTime)
	assert.Equal(t, "Urgent surgery: "+surgery.SurgeryType, rec.Reason)
	require.NotNil(t, rec.UrgentSurgeryID)
	assert.Equal(t, surgery.ID, *rec.UrgentSurgeryID)
	assert.Equal(t, "actor-1", rec.RescheduledByID)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, "patient-user-1", notifier.sent[0].RecipientID)
	assert.Equal(t, models.NotifyAppointmentRescheduled, notifier.sent[0].Kind)
	assert.Equal(t, "patient-user-2", notifier.sent[1].RecipientID)
}

func TestRescheduleBatchRejectsWholeBatchOnOneBadProposal(t *testing.T) {
	store, surgery := batchFixture()
	// 16:00 is blocked for the doctor, so the second proposal must fail.
	day := testDate
	store.store.windows = []models.AvailabilityWindow{
		{DoctorID: "doc-1", Date: &day, StartTime: "16:00", EndTime: "17:00"},
	}
	notifier := &recordingNotifier{}
	coord := NewCoordinator(store, notifier)

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
		proposalAt(t, "a2", "16:00"),
	}, "actor-1")
	assert.Equal(t, 0, moved)

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Items, 1)
	assert.Equal(t, "a2", batchErr.Items[0].AppointmentID)
	assert.Equal(t, ReasonDoctorUnavailable, batchErr.Items[0].Reason)

	// Nothing moved, nothing recorded, nobody notified.
	assert.Equal(t, "13:00", store.store.appointments[0].Time)
	assert.Equal(t, "13:15", store.store.appointments[1].Time)
	assert.Empty(t, store.records)
	assert.Empty(t, notifier.sent)
}

func TestRescheduleBatchCollectsAllFailures(t *testing.T) {
	store, surgery := batchFixture()
	coord := NewCoordinator(store, &recordingNotifier{})

	_, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "missing", "15:00"),
		proposalAt(t, "a1", "21:00"),
		proposalAt(t, "a2", "15:15"),
	}, "actor-1")

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Items, 2)
	assert.Equal(t, ReasonValidationFailed, batchErr.Items[0].Reason)
	assert.Equal(t, ReasonOutsideHours, batchErr.Items[1].Reason)
}

func TestRescheduleBatchRefusesForeignAppointment(t *testing.T) {
	store, surgery := batchFixture()
	foreign := scheduled("a3", "doc-2", testDate, "13:30")
	store.store.appointments = append(store.store.appointments, foreign)
	coord := NewCoordinator(store, &recordingNotifier{})

	_, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a3", "15:00"),
	}, "actor-1")

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.Len(t, batchErr.Items, 1)
	assert.Equal(t, ReasonNotOwner, batchErr.Items[0].Reason)
}

// Two proposals landing in the same target slot are fine, capacity is two.
func TestRescheduleBatchIntoSameSlot(t *testing.T) {
	store, surgery := batchFixture()
	coord := NewCoordinator(store, &recordingNotifier{})

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
		proposalAt(t, "a2", "15:05"),
	}, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, moved)
}

// Three proposals crowding one 15-minute slot each pass against the pre-move
// state, so only the post-move check can refuse the batch. Nothing may
// commit.
func TestRescheduleBatchCannotOverfillSlot(t *testing.T) {
	store, surgery := batchFixture()
	a3 := scheduled("a3", "doc-1", testDate, "13:30")
	a3.Patient = models.Patient{UserID: "patient-user-3"}
	store.store.appointments = append(store.store.appointments, a3)
	notifier := &recordingNotifier{}
	coord := NewCoordinator(store, notifier)

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
		proposalAt(t, "a2", "15:05"),
		proposalAt(t, "a3", "15:10"),
	}, "actor-1")
	assert.Equal(t, 0, moved)

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.NotEmpty(t, batchErr.Items)
	for _, item := range batchErr.Items {
		assert.Equal(t, ReasonSlotFull, item.Reason)
	}

	assert.Equal(t, "13:00", store.store.appointments[0].Time)
	assert.Equal(t, "13:15", store.store.appointments[1].Time)
	assert.Equal(t, "13:30", store.store.appointments[2].Time)
	assert.Empty(t, store.records)
	assert.Empty(t, notifier.sent)

	// The slot under the surgery-free target never exceeds capacity.
	count, countErr := store.store.CountScheduledInSlot("doc-1", testDate, mustTime(t, "15:00"), mustTime(t, "15:14"), "")
	require.NoError(t, countErr)
	assert.LessOrEqual(t, count, int64(SlotCapacity))
}

// Two proposals onto the identical minute conflict with each other even
// though each is clean against the current calendar.
func TestRescheduleBatchDuplicateTargetTime(t *testing.T) {
	store, surgery := batchFixture()
	coord := NewCoordinator(store, &recordingNotifier{})

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
		proposalAt(t, "a2", "15:00"),
	}, "actor-1")
	assert.Equal(t, 0, moved)

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	require.NotEmpty(t, batchErr.Items)
	for _, item := range batchErr.Items {
		assert.Equal(t, ReasonTimeAlreadyBooked, item.Reason)
	}
	assert.Equal(t, "13:00", store.store.appointments[0].Time)
	assert.Equal(t, "13:15", store.store.appointments[1].Time)
}

func TestRescheduleBatchRollsBackOnWriteFailure(t *testing.T) {
	store, surgery := batchFixture()
	store.failMove = true
	notifier := &recordingNotifier{}
	coord := NewCoordinator(store, notifier)

	moved, err := coord.RescheduleBatch(surgery, []Proposal{
		proposalAt(t, "a1", "15:00"),
	}, "actor-1")
	require.Error(t, err)
	var batchErr *BatchValidationError
	assert.False(t, errors.As(err, &batchErr), "a write failure is not a validation failure")
	assert.Equal(t, 0, moved)

	assert.Empty(t, store.records)
	assert.Empty(t, notifier.sent)
	assert.Equal(t, "13:00", store.store.appointments[0].Time)
}

func TestRescheduleBatchEmptyProposals(t *testing.T) {
	store, surgery := batchFixture()
	coord := NewCoordinator(store, &recordingNotifier{})

	moved, err := coord.RescheduleBatch(surgery, nil, "actor-1")
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
	assert.Empty(t, store.records)
}
