package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/schedule"
	"github.com/CodeClashers89/SwasthyaCare/internal/utils"
)

// AvailabilityHandler lets doctors manage their non-availability windows:
// recurring daily breaks and date-specific blocks.
type AvailabilityHandler struct {
	DB *gorm.DB
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{DB: db}
}

// CreateAvailabilityRequest represents the request body for adding a window.
type CreateAvailabilityRequest struct {
	Recurring bool   `json:"recurring"`
	Date      string `json:"date"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason"`
}

// CreateAvailability adds a non-availability window for the logged-in doctor.
func (h *AvailabilityHandler) CreateAvailability(c *gin.Context) {
	var req CreateAvailabilityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		utils.NotFound(c, "Doctor profile not found")
		return
	}

	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	end, err := schedule.ParseTimeOfDay(req.EndTime)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var date *time.Time
	if req.Date != "" {
		parsed, err := schedule.ParseDate(req.Date)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		date = &parsed
	}

	window := models.AvailabilityWindow{
		DoctorID:  doctor.ID,
		Recurring: req.Recurring,
		Date:      date,
		StartTime: start.String(),
		EndTime:   end.String(),
		Reason:    req.Reason,
	}
	if err := window.Validate(); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Create(&window).Error; err != nil {
		utils.InternalServerError(c, "Failed to create availability window: "+err.Error())
		return
	}

	utils.Created(c, "Availability window created successfully", window)
}

// ListAvailability returns the logged-in doctor's recurring windows plus
// date-specific windows from today onward.
func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil {
		utils.NotFound(c, "Doctor profile not found")
		return
	}

	var windows []models.AvailabilityWindow
	err = h.DB.
		Where("doctor_id = ? AND (recurring = ? OR date >= ?)",
			doctor.ID, true, schedule.Today().Format(schedule.DateLayout)).
		Order("date asc, start_time asc").
		Find(&windows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch availability windows: "+err.Error())
		return
	}

	utils.Success(c, "Availability windows fetched successfully", windows)
}

// DeleteAvailability removes one of the logged-in doctor's own windows.
func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := h.DB.First(&window, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Availability window not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	doctor, err := doctorForUser(h.DB, userID)
	if err != nil || doctor.ID != window.DoctorID {
		utils.Forbidden(c, string(schedule.ReasonNotOwner)+": you can only delete your own availability windows")
		return
	}

	if err := h.DB.Delete(&window).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete availability window: "+err.Error())
		return
	}

	utils.Success(c, "Availability window deleted", nil)
}
