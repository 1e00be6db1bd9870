package models

import (
	"agendador-backend/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a business owner account. The public booking page lives under the
// user's slug, so the slug is the identifier clients see.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Slug     string    `gorm:"uniqueIndex;not null"`
	Phone    string

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	Services      []Service      `gorm:"foreignKey:BusinessID"`
	BusinessHours []BusinessHour `gorm:"foreignKey:BusinessID"`
	Appointments  []Appointment  `gorm:"foreignKey:BusinessID"`

	gorm.Model
}

// Initialize UUID and hash password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
