// controllers/hours.go
package controllers

import (
	"agendador-backend/config"
	"agendador-backend/models"
	"agendador-backend/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusinessHourInput struct {
	DayOfWeek int    `json:"dayOfWeek" binding:"required,min=1,max=7"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

type UpsertHoursInput struct {
	Hours []BusinessHourInput `json:"hours" binding:"required,dive"`
}

// GetBusinessHours lists the open weekdays for the business, ordered
// Monday to Sunday. Weekdays without a row are closed.
func GetBusinessHours(c *gin.Context) {
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

	var hours []models.BusinessHour
	if err := config.DB.Where("business_id = ?", businessUUID).
		Order("day_of_week asc").Find(&hours).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve business hours")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// UpsertBusinessHours replaces the business's weekly schedule with the given
// set of open weekdays. A weekday absent from the payload becomes closed.
func UpsertBusinessHours(c *gin.Context) {
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

	var input UpsertHoursInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	seen := make(map[int]bool)
	for _, h := range input.Hours {
		if seen[h.DayOfWeek] {
			utils.RespondWithError(c, http.StatusBadRequest, "Duplicate day of week in payload")
			return
		}
		seen[h.DayOfWeek] = true

		start, err := utils.TimeToMinutes(h.StartTime)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid start time: "+h.StartTime)
			return
		}
		end, err := utils.TimeToMinutes(h.EndTime)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid end time: "+h.EndTime)
			return
		}
		if start >= end {
			utils.RespondWithError(c, http.StatusBadRequest, "Start time must be before end time")
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("business_id = ?", businessUUID).
			Delete(&models.BusinessHour{}).Error; err != nil {
			return err
		}
		for _, h := range input.Hours {
			row := models.BusinessHour{
				BusinessID: businessUUID,
				DayOfWeek:  h.DayOfWeek,
				StartTime:  h.StartTime,
				EndTime:    h.EndTime,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update business hours")
		return
	}

	var hours []models.BusinessHour
	config.DB.Where("business_id = ?", businessUUID).Order("day_of_week asc").Find(&hours)
	c.JSON(http.StatusOK, hours)
}

// DeleteBusinessHour closes one weekday by removing its row.
func DeleteBusinessHour(c *gin.Context) {
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

	hourUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid business hour ID format")
		return
	}

	result := config.DB.Where("business_id = ? AND id = ?", businessUUID, hourUUID).
		Delete(&models.BusinessHour{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete business hour")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Business hour not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Business hour deleted"})
}
