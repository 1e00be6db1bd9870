package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment statuses. New bookings always start confirmed; completed and
// cancelled are terminal.
const (
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment keeps Date and StartTime as civil strings ("YYYY-MM-DD",
// "HH:MM") rather than timestamps: the calendar is a single local one and
// storing wall-clock values avoids timezone drift on the way in and out of
// the database.
//
// The partial unique index on (business_id, date, start_time) is the
// race-safety backstop for concurrent bookings. It skips cancelled rows so a
// cancelled slot can be booked again.
type Appointment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_booking_slot,priority:1,where:status <> 'cancelled'"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null"`

	Date      string `gorm:"type:varchar(10);not null;uniqueIndex:idx_booking_slot,priority:2,where:status <> 'cancelled'"`
	StartTime string `gorm:"type:varchar(5);not null;uniqueIndex:idx_booking_slot,priority:3,where:status <> 'cancelled'"`

	ClientName     string `gorm:"not null"`
	ClientWhatsApp string `gorm:"not null"`

	Status string `gorm:"type:varchar(20);not null;default:'confirmed'"`

	Service Service `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
