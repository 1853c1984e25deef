package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/schedule"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// DoctorHandler handles doctor lookups and day views.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// ListDoctors returns every doctor with their profile.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.DB.Preload("User").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorDay returns a doctor's booked appointments and unavailable
// windows for one date, so callers can see which slots remain open.
func (h *DoctorHandler) GetDoctorDay(c *gin.Context) {
	var doctor models.Doctor
	if err := h.DB.Preload("User").First(&doctor, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	date, err := schedule.ParseDate(c.Query("date"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var appointments []models.Appointment
	if err := h.DB.
		Where("doctor_id = ? AND date = ? AND status = ?",
			doctor.ID, date.Format(schedule.DateLayout), models.StatusScheduled).
		Order("time asc").
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	var windows []models.AvailabilityWindow
	if err := h.DB.
		Where("doctor_id = ? AND (recurring = ? OR date = ?)",
			doctor.ID, true, date.Format(schedule.DateLayout)).
		Order("start_time asc").
		Find(&windows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch availability windows: "+err.Error())
		return
	}

	utils.Success(c, "Doctor schedule fetched successfully", gin.H{
		"doctor":       doctor,
		"date":         date.Format(schedule.DateLayout),
		"appointments": appointments,
		"unavailable":  windows,
	})
}
