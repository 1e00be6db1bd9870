// controllers/booking.go
//
// Public booking surface: everything under /booking/:slug is unauthenticated
// and reachable from the business's public page.
package controllers

import (
	"agendador-backend/config"
	"agendador-backend/models"
	"agendador-backend/services"
	"agendador-backend/utils"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PublicBookingInput struct {
	ServiceID      string `json:"serviceId" binding:"required"`
	Date           string `json:"date" binding:"required"`
	StartTime      string `json:"startTime" binding:"required"`
	ClientName     string `json:"clientName" binding:"required"`
	ClientWhatsApp string `json:"clientWhatsapp" binding:"required"`
}

func businessBySlug(c *gin.Context) (*models.User, bool) {
	var business models.User
	err := config.DB.Where("slug = ? AND is_active = true", c.Param("slug")).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Business not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return &business, true
}

// GetPublicBusiness resolves a booking page: business info, active services
// and the open weekdays.
func GetPublicBusiness(c *gin.Context) {
	business, ok := businessBySlug(c)
	if !ok {
		return
	}

	var activeServices []models.Service
	if err := config.DB.Where("business_id = ? AND active = true", business.ID).
		Order("name asc").Find(&activeServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	var hours []models.BusinessHour
	if err := config.DB.Where("business_id = ?", business.ID).
		Order("day_of_week asc").Find(&hours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve business hours")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"name": business.Name,
			"slug": business.Slug,
		},
		"services":      activeServices,
		"businessHours": hours,
	})
}

// GetBookingDates lists the selectable dates, today first. Defaults to the
// next 14 days.
func GetBookingDates(c *gin.Context) {
	if _, ok := businessBySlug(c); !ok {
		return
	}

	days := 14
	if v := c.Query("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 60 {
			days = n
		}
	}

	c.JSON(http.StatusOK, gin.H{"dates": services.BookingDates(days)})
}

// GetPublicAvailability returns the slot grid for an active service on a date.
func GetPublicAvailability(c *gin.Context) {
	business, ok := businessBySlug(c)
	if !ok {
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

	// archived services never book
	var service models.Service
	if err := config.DB.Where("id = ? AND business_id = ? AND active = true", serviceUUID, business.ID).
		First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	scheduler := services.NewSchedulingService(services.NewGormStore(config.DB), services.SystemClock{})
	slots, err := scheduler.AvailableSlots(c.Request.Context(), business.ID, serviceUUID, date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute availability")
		return
	}

	c.JSON(http.StatusOK, slots)
}

// CreatePublicBooking books a slot for a client. The scheduling service
// recomputes availability at commit time, so a stale page cannot
// double-book; a race that slips past the re-check is stopped by the unique
// slot index and surfaces the same way.
func CreatePublicBooking(c *gin.Context) {
	business, ok := businessBySlug(c)
	if !ok {
		return
	}

	var input PublicBookingInput
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

	var service models.Service
	if err := config.DB.Where("id = ? AND business_id = ? AND active = true", serviceUUID, business.ID).
		First(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	scheduler := services.NewSchedulingService(services.NewGormStore(config.DB), services.SystemClock{})
	appt, err := scheduler.Book(c.Request.Context(), services.BookingRequest{
		BusinessID:     business.ID,
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
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": appt,
		"service": gin.H{
			"name":     service.Name,
			"duration": service.Duration,
			"price":    service.Price,
		},
	})
}
