package routes

import (
	"agendador-backend/config"
	"agendador-backend/controllers"
	"agendador-backend/utils"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowed := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowed = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Public booking surface, no auth
	booking := r.Group("/booking/:slug")
	{
		booking.GET("", controllers.GetPublicBusiness)
		booking.GET("/dates", controllers.GetBookingDates)
		booking.GET("/availability", controllers.GetPublicAvailability)
		booking.POST("/appointments", controllers.CreatePublicBooking)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Service routes
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		// Business hours routes
		hours := api.Group("/hours")
		{
			hours.GET("", controllers.GetBusinessHours)
			hours.PUT("", controllers.UpsertBusinessHours)
			hours.DELETE("/:id", controllers.DeleteBusinessHour)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/availability", controllers.GetAvailability)
			appointments.POST("", controllers.CreateAppointment)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		profile := api.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
		}

		// Reminder log routes
		api.GET("/reminders/logs", controllers.GetReminderLogs)
	}

	return r
}
