// controllers/dashboard.go
package controllers

import (
	"agendador-backend/config"
	"agendador-backend/models"
	"agendador-backend/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Transaction struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"clientName"`
	ServiceName string    `json:"serviceName"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
}

// GetDashboardOverview aggregates completed-appointment revenue for today,
// the current week (Sunday start) and the current month, plus today's agenda
// and the most recent transactions.
func GetDashboardOverview(c *gin.Context) {
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

	now := time.Now()
	today := utils.FormatDate(now)
	startOfWeek := utils.FormatDate(utils.BeginningOfWeek(now))
	startOfMonth := utils.FormatDate(utils.BeginningOfMonth(now))

	// Earliest civil date the revenue windows need
	earliest := startOfMonth
	if startOfWeek < startOfMonth {
		earliest = startOfWeek
	}

	var completed []models.Appointment
	if err := config.DB.Preload("Service").
		Where("business_id = ? AND status = ? AND date >= ?", businessUUID, models.StatusCompleted, earliest).
		Order("date desc").Order("start_time desc").
		Find(&completed).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	var todayTotal, weekTotal, monthTotal float64
	transactions := make([]Transaction, 0, len(completed))

	for _, appt := range completed {
		price := appt.Service.Price

		if appt.Date == today {
			todayTotal += price
		}
		if appt.Date >= startOfWeek {
			weekTotal += price
		}
		if appt.Date >= startOfMonth {
			monthTotal += price
		}

		transactions = append(transactions, Transaction{
			ID:          appt.ID,
			ClientName:  appt.ClientName,
			ServiceName: appt.Service.Name,
			Date:        appt.Date,
			StartTime:   appt.StartTime,
			Amount:      price,
			Status:      appt.Status,
		})
	}
	if len(transactions) > 10 {
		transactions = transactions[:10]
	}

	// Today's agenda
	var todaysAppointments []models.Appointment
	config.DB.Preload("Service").
		Where("business_id = ? AND date = ? AND status = ?", businessUUID, today, models.StatusConfirmed).
		Order("start_time asc").
		Find(&todaysAppointments)

	var upcomingCount int64
	config.DB.Model(&models.Appointment{}).
		Where("business_id = ? AND status = ? AND date >= ?", businessUUID, models.StatusConfirmed, today).
		Count(&upcomingCount)

	c.JSON(http.StatusOK, gin.H{
		"revenue": gin.H{
			"today": todayTotal,
			"week":  weekTotal,
			"month": monthTotal,
		},
		"recentTransactions":   transactions,
		"todaysAppointments":   todaysAppointments,
		"upcomingAppointments": upcomingCount,
	})
}
