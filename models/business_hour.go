package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessHour is one open weekday for a business. Absence of a row for a
// weekday means the business is closed that day.
type BusinessHour struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_business_weekday,priority:1"`
	DayOfWeek  int       `gorm:"not null;uniqueIndex:idx_business_weekday,priority:2"` // 1=Monday .. 7=Sunday
	StartTime  string    `gorm:"type:varchar(5);not null"`                             // "HH:MM", 24h
	EndTime    string    `gorm:"type:varchar(5);not null"`
}

func (h *BusinessHour) BeforeCreate(tx *gorm.DB) (err error) {
	h.ID = uuid.New()
	return
}
