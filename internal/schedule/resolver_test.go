package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

func testSurgery(doctorID string, date time.Time, start, end string) *models.UrgentSurgery {
	s := &models.UrgentSurgery{
		DoctorID:  doctorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    models.SurgeryApproved,
	}
	s.ID = "surg-1"
	return s
}

func TestFindConflictsHalfOpenInterval(t *testing.T) {
	store := &fakeStore{
		appointments: []models.Appointment{
			scheduled("before", "doc-1", testDate, "12:45"),
			scheduled("at-start", "doc-1", testDate, "13:00"),
			scheduled("inside", "doc-1", testDate, "13:15"),
			scheduled("at-end", "doc-1", testDate, "13:30"),
			scheduled("other-doc", "doc-2", testDate, "13:15"),
			scheduled("other-day", "doc-1", testDate.AddDate(0, 0, 1), "13:15"),
		},
	}
	resolver := NewResolver(store)

	conflicts, err := resolver.FindConflicts(testSurgery("doc-1", testDate, "13:00", "13:30"))
	require.NoError(t, err)

	ids := make([]string, len(conflicts))
	for i, a := range conflicts {
		ids[i] = a.ID
	}
	// Start is inclusive and end exclusive: 13:00 and 13:15 conflict, 12:45
	// and 13:30 do not.
	assert.ElementsMatch(t, []string{"at-start", "inside"}, ids)
}

func TestFindConflictsIgnoresNonScheduled(t *testing.T) {
	cancelled := scheduled("c1", "doc-1", testDate, "13:15")
	cancelled.Status = models.StatusCancelled
	store := &fakeStore{appointments: []models.Appointment{cancelled}}
	resolver := NewResolver(store)

	conflicts, err := resolver.FindConflicts(testSurgery("doc-1", testDate, "13:00", "14:00"))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

// The conflict set is always recomputed: booking a new appointment inside the
// window after a first query shows up in the next one.
func TestFindConflictsRecomputed(t *testing.T) {
	store := &fakeStore{}
	resolver := NewResolver(store)
	surgery := testSurgery("doc-1", testDate, "13:00", "14:00")

	conflicts, err := resolver.FindConflicts(surgery)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	store.appointments = append(store.appointments, scheduled("late", "doc-1", testDate, "13:45"))
	conflicts, err = resolver.FindConflicts(surgery)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "late", conflicts[0].ID)
}

func TestFindConflictsBadTimes(t *testing.T) {
	resolver := NewResolver(&fakeStore{})

	_, err := resolver.FindConflicts(testSurgery("doc-1", testDate, "25:00", "26:00"))
	assert.Error(t, err)
}
