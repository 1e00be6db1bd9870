// services/store.go
package services

import (
	"context"

	"agendador-backend/models"

	"github.com/google/uuid"
)

// BookedSlot is an existing non-cancelled appointment as the availability
// calculator sees it: where it starts and how long its own service runs.
type BookedSlot struct {
	StartTime string
	Duration  int // minutes
}

// ScheduleStore is the persistence collaborator of the availability
// calculator and the booking transaction. The production implementation is
// GormStore; tests use an in-memory fake.
type ScheduleStore interface {
	// BusinessHoursForDay returns nil (no error) when the business is closed
	// on that weekday.
	BusinessHoursForDay(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*models.BusinessHour, error)
	ServiceDuration(ctx context.Context, serviceID uuid.UUID) (int, error)
	// BookedSlots returns the non-cancelled appointments for one business day.
	BookedSlots(ctx context.Context, businessID uuid.UUID, date string) ([]BookedSlot, error)
	// InsertAppointment persists a new appointment. A uniqueness violation on
	// the booking slot index is reported as ErrSlotUnavailable.
	InsertAppointment(ctx context.Context, appt *models.Appointment) error
}

// AppointmentStore backs the status transition and service removal guards.
type AppointmentStore interface {
	AppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Appointment, error)
	HasConfirmedFutureAppointments(ctx context.Context, serviceID uuid.UUID, fromDate string) (bool, error)
	CountAppointmentsForService(ctx context.Context, serviceID uuid.UUID) (int64, error)
	DeleteService(ctx context.Context, serviceID uuid.UUID) error
	ArchiveService(ctx context.Context, serviceID uuid.UUID) error
}
