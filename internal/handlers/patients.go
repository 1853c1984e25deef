package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// PatientHandler handles patient registration and lookups.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// RegisterPatientRequest represents the request body for registering a patient.
type RegisterPatientRequest struct {
	FirstName             string `json:"firstName" binding:"required"`
	LastName              string `json:"lastName" binding:"required"`
	Email                 string `json:"email" binding:"required,email"`
	Password              string `json:"password" binding:"required,min=8"`
	PhoneNumber           string `json:"phoneNumber"`
	DateOfBirth           string `json:"dateOfBirth"`
	Gender                string `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	Address               string `json:"address"`
	BloodGroup            string `json:"bloodGroup" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies             string `json:"allergies"`
	ChronicDiseases       string `json:"chronicDiseases"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

// RegisterPatient creates a patient user account together with its medical
// profile. The two writes share one transaction.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid date of birth, expected YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	user := models.User{
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        models.RolePatient,
		PhoneNumber: req.PhoneNumber,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	var patient models.Patient
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		patient = models.Patient{
			UserID:                user.ID,
			DateOfBirth:           dob,
			Gender:                req.Gender,
			Address:               req.Address,
			BloodGroup:            req.BloodGroup,
			Allergies:             req.Allergies,
			ChronicDiseases:       req.ChronicDiseases,
			EmergencyContactName:  req.EmergencyContactName,
			EmergencyContactPhone: req.EmergencyContactPhone,
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to register patient: "+err.Error())
		return
	}

	patient.User = user
	utils.Created(c, "Patient registered successfully", patient)
}

// ListPatients returns all patients, most recently registered first.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Preload("User").Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientHistory returns a patient with their appointment history and
// medical records.
func (h *PatientHandler) GetPatientHistory(c *gin.Context) {
	var patient models.Patient
	if err := h.DB.Preload("User").First(&patient, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Preload("Doctor.User").
		Where("patient_id = ?", patient.ID).
		Order("date desc, time desc").
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
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

	utils.Success(c, "Patient history fetched successfully", gin.H{
		"patient":        patient,
		"appointments":   appointments,
		"medicalRecords": records,
	})
}
