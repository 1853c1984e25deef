package schedule

import (
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
)

// InitialSurgeryStatus decides the starting state of an urgent surgery: a
// doctor requesting a surgery on their own calendar self-approves, anyone
// else leaves it pending review by the owning doctor.
func InitialSurgeryStatus(requestedBy *models.User, doctorUserID string) models.SurgeryStatus {
	if requestedBy.Role == models.RoleDoctor && requestedBy.ID == doctorUserID {
		return models.SurgeryApproved
	}
	return models.SurgeryPending
}

// ApproveSurgery moves a PENDING surgery to APPROVED. Re-processing an
// already resolved surgery is an error, not a no-op.
func ApproveSurgery(s *models.UrgentSurgery, approverID string) error {
	if s.Resolved() {
		return NewConflict(ReasonAlreadyProcessed,
			"surgery has already been "+string(s.Status))
	}
	s.Status = models.SurgeryApproved
	s.ApprovedByID = &approverID
	return nil
}

// RejectSurgery moves a PENDING surgery to REJECTED with the given reason.
func RejectSurgery(s *models.UrgentSurgery, reviewerID, reason string) error {
	if s.Resolved() {
		return NewConflict(ReasonAlreadyProcessed,
			"surgery has already been "+string(s.Status))
	}
	s.Status = models.SurgeryRejected
	s.ApprovedByID = &reviewerID
	s.RejectionReason = reason
	return nil
}

// CompleteSurgery moves an APPROVED surgery to its terminal COMPLETED state.
func CompleteSurgery(s *models.UrgentSurgery) error {
	if s.Status != models.SurgeryApproved {
		return NewConflict(ReasonAlreadyProcessed,
			"only an approved surgery can be completed, current status is "+string(s.Status))
	}
	s.Status = models.SurgeryCompleted
	return nil
}
