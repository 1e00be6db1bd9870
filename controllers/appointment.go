// controllers/appointment.go
package controllers

import (
	"agendador-backend/config"
	"agendador-backend/models"
	"agendador-backend/services"
	"agendador-backend/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateAppointmentInput struct {
	ServiceID      string `json:"serviceId" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"startTime" binding:"required"`
	ClientName     string `json:"clientName" binding:"required"`
	ClientWhatsApp string `json:"clientWhatsapp" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// GetAppointments lists the business's appointments. Defaults to upcoming
// confirmed ones from today; startDate/endDate/status query params filter.
func GetAppointments(c *gin.Context) {
	businessID, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return
	}

	businessUUID, err := uuid.Parse(businessID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return
	}

	query := config.DB.Preload("Service").Where("business_id = ?", businessUUID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status = ?", models.StatusConfirmed)
	}

	if startDate := c.Query("startDate"); startDate != "" {
		query = query.Where("date >= ?", startDate)
	} else if c.Query("status") == "" {
		// Default: upcoming appointments from today
		query = query.Where("date >= ?", services.SystemClock{}.Today())
	}

	if endDate := c.Query("endDate"); endDate != "" {
		query = query.Where("date <= ?", endDate)
	}

	var appointments []models.Appointment
	if err := query.Order("date asc").Order("start_time asc").Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

// GetAvailability returns the annotated slot grid for one of the owner's
// services on a date. Same engine the public booking page uses.
func GetAvailability(c *gin.Context) {
	businessID, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return
	}

	businessUUID, err := uuid.Parse(businessID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return
	}

	serviceUUID, err := uuid.Parse(c.Query("serviceId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	scheduler := services.NewSchedulingService(services.NewGormStore(config.DB), services.SystemClock{})
	slots, err := scheduler.AvailableSlots(c.Request.Context(), businessUUID, serviceUUID, date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CreateAppointment is the owner's manual booking: same admission path as a
// client booking, so no double-booking can slip in through the dashboard.
func CreateAppointment(c *gin.Context) {
	businessID, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return
	}

	businessUUID, err := uuid.Parse(businessID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceUUID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	if !utils.IsValidWhatsApp(input.ClientWhatsApp) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid WhatsApp number")
		return
	}

	scheduler := services.NewSchedulingService(services.NewGormStore(config.DB), services.SystemClock{})
	appt, err := scheduler.Book(c.Request.Context(), services.BookingRequest{
		BusinessID:     businessUUID,
		ServiceID:      serviceUUID,
		Date:           input.Date,
		StartTime:      input.StartTime,
		ClientName:     input.ClientName,
		ClientWhatsApp: utils.FormatWhatsApp(input.ClientWhatsApp),
	})
	if err != nil {
		if errors.Is(err, services.ErrSlotUnavailable) {
			utils.RespondWithError(c, http.StatusConflict, "This time is no longer available")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// UpdateAppointmentStatus applies a lifecycle transition (complete/cancel).
func UpdateAppointmentStatus(c *gin.Context) {
	businessID, exists := c.Get("businessId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Business ID not found in context")
		return
	}

	businessUUID, err := uuid.Parse(businessID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid business ID format")
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Ownership check
	var existing models.Appointment
	if err := config.DB.Where("business_id = ? AND id = ?", businessUUID, apptUUID).
		First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	guard := services.NewAppointmentService(services.NewGormStore(config.DB), services.SystemClock{})
	appt, err := guard.SetStatus(c.Request.Context(), apptUUID, input.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondWithError(c, http.StatusUnprocessableEntity, "Invalid status transition")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appt)
}
