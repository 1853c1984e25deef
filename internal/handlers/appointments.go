package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/schedule"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB     *gorm.DB
	Engine schedule.SlotValidator
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Engine: schedule.NewEngineFor(db)}
}

// respondScheduleError maps scheduling errors to HTTP responses: typed
// conflicts become structured 4xx results, anything else is a server error.
func respondScheduleError(c *gin.Context, err error) {
	if be, ok := err.(*schedule.BatchValidationError); ok {
		utils.UnprocessableEntity(c, be.Error(), be.Items)
		return
	}
	if ce, ok := schedule.AsConflict(err); ok {
		switch ce.Reason {
		case schedule.ReasonOutsideHours, schedule.ReasonPastDate:
			utils.BadRequest(c, ce.Error())
		case schedule.ReasonNotOwner:
			utils.Forbidden(c, ce.Error())
		default:
			utils.Conflict(c, ce.Error())
		}
		return
	}
	utils.InternalServerError(c, "Scheduling check failed: "+err.Error())
}

// respondAppointmentWrite maps persistence failures on appointment writes.
// The unique (doctor, date, time) index firing means another booking won the
// slot between validation and insert, so it reads as TIME_ALREADY_BOOKED
// rather than a server error.
func respondAppointmentWrite(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		respondScheduleError(c, schedule.NewConflict(schedule.ReasonTimeAlreadyBooked,
			"an appointment at this time was just booked"))
		return
	}
	utils.InternalServerError(c, "Failed to save appointment: "+err.Error())
}

// parseDateTime parses the wire format for (date, time) pairs, responding
// with a 400 on malformed input.
func parseDateTime(c *gin.Context, dateStr, timeStr string) (time.Time, schedule.TimeOfDay, bool) {
	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return time.Time{}, 0, false
	}
	at, err := schedule.ParseTimeOfDay(timeStr)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return time.Time{}, 0, false
	}
	return date, at, true
}

// doctorForUser resolves the doctor profile owned by a user account.
func doctorForUser(db *gorm.DB, userID string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := db.First(&doctor, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

// patientForUser resolves the patient profile owned by a user account.
func patientForUser(db *gorm.DB, userID string) (*models.Patient, error) {
	var patient models.Patient
	if err := db.First(&patient, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// CreateAppointmentRequest represents the request body for creating an appointment.
type CreateAppointmentRequest struct {
	PatientID string `json:"patientId" binding:"required,uuid"`
	DoctorID  string `json:"doctorId" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateAppointment books a new appointment. The proposed slot goes through
// the full scheduling engine check before anything is written.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, at, ok := parseDateTime(c, req.Date, req.Time)
	if !ok {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", req.DoctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	if err := schedule.ValidateFutureDate(date); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.Engine.ValidateSlot(doctor.ID, date, at, ""); err != nil {
		respondScheduleError(c, err)
		return
	}

	creatorID, _ := middleware.GetUserIDFromContext(c)
	appointment := models.Appointment{
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		Date:        date,
		Time:        at.String(),
		Status:      models.StatusScheduled,
		Reason:      req.Reason,
		CreatedByID: creatorID,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		respondAppointmentWrite(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
// Patients and doctors see their own; receptionists and admins see all, with
// optional date and status filters.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Preload("Patient.User").Preload("Doctor.User").
		Order("date desc, time desc")

	switch userRole {
	case models.RolePatient:
		patient, err := patientForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Patient profile not found")
			return
		}
		query = query.Where("patient_id = ?", patient.ID)
	case models.RoleDoctor:
		doctor, err := doctorForUser(h.DB, userID)
		if err != nil {
			utils.NotFound(c, "Doctor profile not found")
			return
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	case models.RoleReceptionist, models.RoleAdmin:
		if dateFilter := c.Query("date"); dateFilter != "" {
			date, err := schedule.ParseDate(dateFilter)
			if err != nil {
				utils.BadRequest(c, err.Error())
				return
			}
			query = query.Where("date = ?", date.Format(schedule.DateLayout))
		}
		if statusFilter := c.Query("status"); statusFilter != "" {
			query = query.Where("status = ?", statusFilter)
		}
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by the involved patient or doctor, receptionists and admins.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	var appointment models.Appointment
	if err := h.DB.Preload("Patient.User").Preload("Doctor.User").
		First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	involved := appointment.Patient.UserID == userID || appointment.Doctor.UserID == userID
	if userRole != models.RoleAdmin && userRole != models.RoleReceptionist && !involved {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// UpdateAppointmentStatusRequest represents the request body for updating an appointment's status.
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=COMPLETED NO_SHOW CANCELLED"`
}

// UpdateAppointmentStatus marks an appointment completed, a no-show or
// cancelled. Doctors resolve their own appointments; receptionists and
// admins handle cancellations.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canUpdate := false
	switch userRole {
	case models.RoleAdmin, models.RoleReceptionist:
		canUpdate = req.Status == models.StatusCancelled
	case models.RoleDoctor:
		doctor, err := doctorForUser(h.DB, userID)
		if err == nil && doctor.ID == appointment.DoctorID {
			canUpdate = req.Status == models.StatusCompleted || req.Status == models.StatusNoShow
		}
	}
	if !canUpdate {
		utils.Forbidden(c, "You are not authorized to perform this status transition")
		return
	}

	if appointment.Status != models.StatusScheduled {
		utils.Conflict(c, "Only scheduled appointments can change status")
		return
	}

	appointment.Status = req.Status
	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated successfully", appointment)
}

// RescheduleAppointmentRequest represents the request body for rescheduling an appointment.
type RescheduleAppointmentRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	NewTime string `json:"newTime" binding:"required"`
}

// RescheduleAppointment moves a single appointment to a new date and time.
// The new slot passes through the same engine checks as a fresh booking,
// with the appointment excluding itself so moving to its own current slot
// succeeds.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	newDate, newTime, ok := parseDateTime(c, req.NewDate, req.NewTime)
	if !ok {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	canReschedule := userRole == models.RoleAdmin || userRole == models.RoleReceptionist
	if userRole == models.RoleDoctor {
		doctor, err := doctorForUser(h.DB, userID)
		canReschedule = err == nil && doctor.ID == appointment.DoctorID
	}
	if !canReschedule {
		utils.Forbidden(c, "You are not authorized to reschedule this appointment")
		return
	}

	if appointment.Status != models.StatusScheduled {
		utils.Conflict(c, "Only scheduled appointments can be rescheduled")
		return
	}

	if err := schedule.ValidateFutureDate(newDate); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.Engine.ValidateSlot(appointment.DoctorID, newDate, newTime, appointment.ID); err != nil {
		respondScheduleError(c, err)
		return
	}

	appointment.Date = newDate
	appointment.Time = newTime.String()
	if err := h.DB.Save(&appointment).Error; err != nil {
		respondAppointmentWrite(c, err)
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", appointment)
}

// CreateFollowUpRequest represents the request body for creating a follow-up appointment.
type CreateFollowUpRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CreateFollowUp books a follow-up to an existing appointment for the same
// patient and doctor. Only the doctor owning the parent appointment may
// create one, and the slot goes through the full engine check.
func (h *AppointmentHandler) CreateFollowUp(c *gin.Context) {
	var req CreateFollowUpRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	date, at, ok := parseDateTime(c, req.Date, req.Time)
	if !ok {
		return
	}

	var parent models.Appointment
	if err := h.DB.First(&parent, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Parent appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil || doctor.ID != parent.DoctorID {
		utils.Forbidden(c, "You can only create follow-ups for your own appointments")
		return
	}

	if err := schedule.ValidateFutureDate(date); err != nil {
		respondScheduleError(c, err)
		return
	}
	if err := h.Engine.ValidateSlot(parent.DoctorID, date, at, ""); err != nil {
		respondScheduleError(c, err)
		return
	}

	parentID := parent.ID
	followUp := models.Appointment{
		PatientID:   parent.PatientID,
		DoctorID:    parent.DoctorID,
		Date:        date,
		Time:        at.String(),
		Status:      models.StatusScheduled,
		Reason:      req.Reason,
		IsFollowUp:  true,
		ParentID:    &parentID,
		CreatedByID: userID,
	}

	if err := h.DB.Create(&followUp).Error; err != nil {
		respondAppointmentWrite(c, err)
		return
	}

	utils.Created(c, "Follow-up appointment created successfully", followUp)
}
