package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/CodeClashers89/SwasthyaCare/internal/config"
	"github.com/CodeClashers89/SwasthyaCare/internal/handlers"
	"github.com/CodeClashers89/SwasthyaCare/internal/middleware"
	"github.com/CodeClashers89/SwasthyaCare/internal/models"
	"github.com/CodeClashers89/SwasthyaCare/internal/notify"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	notifier := notify.NewInApp(db)

	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(db)
	surgeryHandler := handlers.NewSurgeryHandler(db, notifier)
	patientHandler := handlers.NewPatientHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db)
	medicalRecordHandler := handlers.NewMedicalRecordHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)

	// All API routes require an access token minted by the identity service.
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg))
	{
		staff := middleware.RoleAuthMiddleware(models.RoleReceptionist, models.RoleAdmin)
		doctorOnly := middleware.RoleAuthMiddleware(models.RoleDoctor)

		// Appointment routes
		appointmentRoutes := private.Group("/appointments")
		{
			appointmentRoutes.POST("", staff, appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("", appointmentHandler.GetAppointmentsForUser) // Logic inside handler differentiates by role
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID) // Authorization inside handler
			appointmentRoutes.PATCH("/:id/status", appointmentHandler.UpdateAppointmentStatus)
			appointmentRoutes.PATCH("/:id/reschedule", appointmentHandler.RescheduleAppointment)
			appointmentRoutes.POST("/:id/follow-up", doctorOnly, appointmentHandler.CreateFollowUp)
		}

		// Doctor availability routes (doctors manage their own windows)
		availabilityRoutes := private.Group("/availability")
		availabilityRoutes.Use(doctorOnly)
		{
			availabilityRoutes.POST("", availabilityHandler.CreateAvailability)
			availabilityRoutes.GET("", availabilityHandler.ListAvailability)
			availabilityRoutes.DELETE("/:id", availabilityHandler.DeleteAvailability)
		}

		// Urgent surgery routes
		surgeryRoutes := private.Group("/surgeries")
		{
			surgeryRoutes.POST("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleReceptionist, models.RoleAdmin), surgeryHandler.CreateSurgery)
			surgeryRoutes.GET("", surgeryHandler.ListSurgeries)
			surgeryRoutes.GET("/:id/conflicts", surgeryHandler.GetSurgeryConflicts)
			surgeryRoutes.PATCH("/:id/approve", doctorOnly, surgeryHandler.ApproveSurgery)
			surgeryRoutes.PATCH("/:id/reject", doctorOnly, surgeryHandler.RejectSurgery)
			surgeryRoutes.PATCH("/:id/complete", doctorOnly, surgeryHandler.CompleteSurgery)
			surgeryRoutes.POST("/:id/reschedule", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleReceptionist, models.RoleAdmin), surgeryHandler.BulkReschedule)
		}

		// Patient routes
		patientRoutes := private.Group("/patients")
		{
			patientRoutes.POST("", staff, patientHandler.RegisterPatient)
			patientRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleReceptionist, models.RoleAdmin), patientHandler.ListPatients)
			patientRoutes.GET("/:id/history", middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleReceptionist, models.RoleAdmin), patientHandler.GetPatientHistory)
		}

		// Doctor routes
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("", doctorHandler.ListDoctors)
			doctorRoutes.GET("/:id/day", doctorHandler.GetDoctorDay)
		}

		// Medical record routes
		medicalRecordRoutes := private.Group("/medical-records")
		{
			medicalRecordRoutes.POST("", doctorOnly, medicalRecordHandler.CreateMedicalRecord)
			medicalRecordRoutes.GET("/patient/:patientId", medicalRecordHandler.GetMedicalRecordsForPatient) // Auth in handler
		}

		// Notification routes
		notificationRoutes := private.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.ListNotifications)
			notificationRoutes.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
