// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"agendador-backend/models"
	"agendador-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends clients a WhatsApp reminder on the morning of their
// appointment and records the outcome in reminder_logs.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 8 AM
	c.AddFunc("0 8 * * *", s.SendDailyReminders)

	c.Start()
	log.Println("Reminder scheduler started")
}

func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	today := utils.FormatDate(time.Now())

	var appointments []models.Appointment
	err := s.db.Preload("Service").
		Where("date = ? AND status = ?", today, models.StatusConfirmed).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Failed to fetch today's appointments: %v", err)
		return
	}

	for _, appt := range appointments {
		// one reminder per appointment
		var sent int64
		s.db.Model(&models.ReminderLog{}).
			Where("appointment_id = ? AND status = ?", appt.ID, "sent").
			Count(&sent)
		if sent > 0 {
			continue
		}
		s.sendReminder(appt)
	}

	log.Println("Daily reminder processing completed")
}

func (s *ReminderService) sendReminder(appt models.Appointment) {
	message := fmt.Sprintf("Olá %s! Lembrete do seu horário de %s hoje às %s.",
		appt.ClientName, appt.Service.Name, appt.StartTime)

	to := "whatsapp:+" + utils.FormatWhatsApp(appt.ClientWhatsApp)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", appt.ClientWhatsApp, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", appt.ClientWhatsApp, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", appt.ClientWhatsApp)
	}

	reminderLog := models.ReminderLog{
		BusinessID:    appt.BusinessID,
		AppointmentID: appt.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       "whatsapp",
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for appointment %s: %v", appt.ID, err)
	}
}
