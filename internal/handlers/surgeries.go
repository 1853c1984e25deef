package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/notify"
	"github.com/CodeClashers89/SwasthyaCare/internal/schedule"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// SurgeryHandler handles urgent surgery requests: creation, the approval
// workflow and the bulk rescheduling of conflicting appointments.
type SurgeryHandler struct {
	DB          *gorm.DB
	Resolver    *schedule.Resolver
	Coordinator *schedule.Coordinator
	Notifier    notify.Notifier
}

// NewSurgeryHandler creates a new SurgeryHandler.
func NewSurgeryHandler(db *gorm.DB, notifier notify.Notifier) *SurgeryHandler {
	stores := schedule.NewStores(db)
	return &SurgeryHandler{
		DB:          db,
		Resolver:    schedule.NewResolver(stores),
		Coordinator: schedule.NewCoordinator(stores, notifier),
		Notifier:    notifier,
	}
}

// CreateSurgeryRequest represents the request body for scheduling an urgent surgery.
type CreateSurgeryRequest struct {
	DoctorID    string `json:"doctorId" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	SurgeryType string `json:"surgeryType" binding:"required"`
	PatientName string `json:"patientName" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateSurgery schedules an urgent surgery. A doctor booking their own
// calendar self-approves; requests from anyone else start PENDING and
// notify the doctor. The response includes the appointments currently
// conflicting with the surgery window, which are not auto-resolved.
func (h *SurgeryHandler) CreateSurgery(c *gin.Context) {
	var req CreateSurgeryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, start, ok := parseDateTime(c, req.Date, req.StartTime)
	if !ok {
		return
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if end <= start {
		utils.BadRequest(c, "Surgery end time must be after start time")
		return
	}
	if err := schedule.ValidateFutureDate(date); err != nil {
		respondScheduleError(c, err)
		return
	}

	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	var actor models.User
	if err := h.DB.First(&actor, "id = ?", actorID).Error; err != nil {
		utils.Unauthorized(c, "Requesting user not found")
		return
	}

	surgery := models.UrgentSurgery{
		DoctorID:    doctor.ID,
		Date:        date,
		StartTime:   start.String(),
		EndTime:     end.String(),
		SurgeryType: req.SurgeryType,
		PatientName: req.PatientName,
		Notes:       req.Notes,
		Status:      schedule.InitialSurgeryStatus(&actor, doctor.UserID),
		CreatedByID: actor.ID,
	}
	if surgery.Status == models.SurgeryApproved {
		surgery.ApprovedByID = &actor.ID
	}

	if err := h.DB.Create(&surgery).Error; err != nil {
		utils.InternalServerError(c, "Failed to create surgery: "+err.Error())
		return
	}

	if surgery.Status == models.SurgeryPending {
		surgeryID := surgery.ID
		h.Notifier.Notify(&models.Notification{
			RecipientID: doctor.UserID,
			Kind:        models.NotifySurgeryApprovalPending,
			Title:       "Urgent surgery awaiting approval",
			Message: "An urgent surgery (" + surgery.SurgeryType + ") on " +
				surgery.Date.Format(schedule.DateLayout) + " from " + surgery.StartTime +
				" to " + surgery.EndTime + " requires your approval.",
			SurgeryID: &surgeryID,
		})
	}

	conflicts, err := h.Resolver.FindConflicts(&surgery)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute conflicting appointments: "+err.Error())
		return
	}

	utils.Created(c, "Urgent surgery created successfully", gin.H{
		"surgery":   surgery,
		"conflicts": conflicts,
	})
}

// surgeryForOwner loads a surgery and verifies the acting user is the doctor
// who owns it.
func (h *SurgeryHandler) surgeryForOwner(c *gin.Context) (*models.UrgentSurgery, bool) {
	var surgery models.UrgentSurgery
	if err := h.DB.Preload("Doctor").First(&surgery, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Surgery not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if surgery.Doctor.UserID != userID {
		utils.Forbidden(c, string(schedule.ReasonNotOwner)+": only the doctor owning this surgery may process it")
		return nil, false
	}
	return &surgery, true
}

// ApproveSurgery approves a pending surgery. Only the owning doctor may
// approve, and a surgery is approved or rejected exactly once. The response
// carries the conflicting appointments for the doctor to reschedule.
func (h *SurgeryHandler) ApproveSurgery(c *gin.Context) {
	surgery, ok := h.surgeryForOwner(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if err := schedule.ApproveSurgery(surgery, userID); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.DB.Save(surgery).Error; err != nil {
		utils.InternalServerError(c, "Failed to approve surgery: "+err.Error())
		return
	}

	surgeryID := surgery.ID
	h.Notifier.Notify(&models.Notification{
		RecipientID: surgery.CreatedByID,
		Kind:        models.NotifySurgeryApproved,
		Title:       "Urgent surgery approved",
		Message: "The urgent surgery (" + surgery.SurgeryType + ") on " +
			surgery.Date.Format(schedule.DateLayout) + " has been approved.",
		SurgeryID: &surgeryID,
	})

	conflicts, err := h.Resolver.FindConflicts(surgery)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute conflicting appointments: "+err.Error())
		return
	}

	utils.Success(c, "Surgery approved", gin.H{
		"surgery":   surgery,
		"conflicts": conflicts,
	})
}

// RejectSurgeryRequest represents the request body for rejecting a surgery.
type RejectSurgeryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectSurgery rejects a pending surgery with a reason.
func (h *SurgeryHandler) RejectSurgery(c *gin.Context) {
	var req RejectSurgeryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	surgery, ok := h.surgeryForOwner(c)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	if err := schedule.RejectSurgery(surgery, userID, req.Reason); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.DB.Save(surgery).Error; err != nil {
		utils.InternalServerError(c, "Failed to reject surgery: "+err.Error())
		return
	}

	surgeryID := surgery.ID
	h.Notifier.Notify(&models.Notification{
		RecipientID: surgery.CreatedByID,
		Kind:        models.NotifySurgeryRejected,
		Title:       "Urgent surgery rejected",
		Message: "The urgent surgery (" + surgery.SurgeryType + ") on " +
			surgery.Date.Format(schedule.DateLayout) + " was rejected: " + req.Reason,
		SurgeryID: &surgeryID,
	})

	utils.Success(c, "Surgery rejected", surgery)
}

// CompleteSurgery marks an approved surgery as completed.
func (h *SurgeryHandler) CompleteSurgery(c *gin.Context) {
	surgery, ok := h.surgeryForOwner(c)
	if !ok {
		return
	}

	if err := schedule.CompleteSurgery(surgery); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.DB.Save(surgery).Error; err != nil {
		utils.InternalServerError(c, "Failed to complete surgery: "+err.Error())
		return
	}

	utils.Success(c, "Surgery completed", surgery)
}

// ListSurgeries lists surgeries: doctors see their own, receptionists and
// admins see all, with an optional status filter.
func (h *SurgeryHandler) ListSurgeries(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Doctor.User").Order("date desc, start_time desc")

	if userRole == models.RoleDoctor {
		doctor, err := doctorForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	}
	if statusFilter := c.Query("status"); statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var surgeries []models.UrgentSurgery
	if err := query.Find(&surgeries).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch surgeries: "+err.Error())
		return
	}

	utils.Success(c, "Surgeries fetched successfully", surgeries)
}

// GetSurgeryConflicts returns the appointments currently conflicting with a
// surgery's time window. The set is recomputed on every call.
func (h *SurgeryHandler) GetSurgeryConflicts(c *gin.Context) {
	var surgery models.UrgentSurgery
	if err := h.DB.First(&surgery, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Surgery not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	conflicts, err := h.Resolver.FindConflicts(&surgery)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute conflicting appointments: "+err.Error())
		return
	}

	utils.Success(c, "Conflicting appointments fetched successfully", conflicts)
}

// BulkRescheduleRequest maps appointment ids to their proposed new slot.
type BulkRescheduleRequest struct {
	Proposals map[string]struct {
		Date string `json:"date" binding:"required"`
		Time string `json:"time" binding:"required"`
	} `json:"proposals" binding:"required"`
}

// BulkReschedule moves the appointments conflicting with an approved surgery
// to their proposed new slots, all-or-nothing. If any proposal fails
// validation, no appointment is touched and the per-item reasons come back
// in a 422 response.
func (h *SurgeryHandler) BulkReschedule(c *gin.Context) {
	var req BulkRescheduleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if len(req.Proposals) == 0 {
		utils.BadRequest(c, "At least one reschedule proposal is required")
		return
	}

	var surgery models.UrgentSurgery
	if err := h.DB.Preload("Doctor").First(&surgery, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Surgery not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RoleDoctor && surgery.Doctor.UserID != userID {
		utils.Forbidden(c, string(schedule.ReasonNotOwner)+": you may only reschedule around your own surgeries")
		return
	}

	if surgery.Status != models.SurgeryApproved {
		utils.Conflict(c, "Conflicting appointments can only be rescheduled for an approved surgery")
		return
	}

	proposals := make([]schedule.Proposal, 0, len(req.Proposals))
	for apptID, slot := range req.Proposals {
		date, at, ok := parseDateTime(c, slot.Date, slot.Time)
		if !ok {
			return
		}
		if err := schedule.ValidateFutureDate(date); err != nil {
			respondScheduleError(c, err)
			return
		}
		proposals = append(proposals, schedule.Proposal{
			AppointmentID: apptID,
			NewDate:       date,
			NewTime:       at,
		})
	}

	count, err := h.Coordinator.RescheduleBatch(&surgery, proposals, userID)
	if err != nil {
		respondScheduleError(c, err)
		return
	}

	utils.Success(c, "Appointments rescheduled successfully", gin.H{
		"rescheduled": count,
	})
}
