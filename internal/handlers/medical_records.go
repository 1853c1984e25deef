package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// MedicalRecordHandler handles medical record related requests.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// CreateMedicalRecordRequest represents the request body for creating a medical record.
type CreateMedicalRecordRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Prescription  string `json:"prescription" binding:"required"`
	Notes         string `json:"notes"`
}

// CreateMedicalRecord adds a record for one of the doctor's own appointments.
func (h *MedicalRecordHandler) CreateMedicalRecord(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil || doctor.ID != appointment.DoctorID {
		utils.Forbidden(c, "You can only add records for your own appointments")
		return
	}

	if !appointment.CanAttachRecord() {
		utils.Conflict(c, "Medical records can only be added to completed appointments")
		return
	}

	record := models.MedicalRecord{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Notes:         req.Notes,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical record: "+err.Error())
		return
	}

	utils.Created(c, "Medical record created successfully", record)
}

// GetMedicalRecordsForPatient lists a patient's records. Accessible to
// doctors and staff, and to the patient themselves.
func (h *MedicalRecordHandler) GetMedicalRecordsForPatient(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", c.Param("patientId")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if userRole == models.RolePatient && patient.UserID != userID {
		utils.Forbidden(c, "You can only view your own medical records")
		return
	}

	var records []models.MedicalRecord
	if err := h.DB.Preload("Doctor.User").
		Where("patient_id = ?", patient.ID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical records: "+err.Error())
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}
