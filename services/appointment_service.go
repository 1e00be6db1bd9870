// services/appointment_service.go
package services

import (
	"context"

	"agendador-backend/models"

	"github.com/google/uuid"
)

// ServiceRemoval reports how DeleteOrArchiveService resolved.
type ServiceRemoval string

const (
	ServiceDeleted  ServiceRemoval = "deleted"
	ServiceArchived ServiceRemoval = "archived"
)

// legalTransitions is the appointment lifecycle: confirmed is the only
// non-terminal state.
var legalTransitions = map[string]map[string]bool{
	models.StatusConfirmed: {
		models.StatusCompleted: true,
		models.StatusCancelled: true,
	},
}

// AppointmentService guards the appointment lifecycle and service removal.
type AppointmentService struct {
	store AppointmentStore
	clock Clock
}

func NewAppointmentService(store AppointmentStore, clock Clock) *AppointmentService {
	return &AppointmentService{store: store, clock: clock}
}

// SetStatus applies a lifecycle transition. Anything other than
// confirmed -> completed or confirmed -> cancelled is ErrInvalidTransition.
func (s *AppointmentService) SetStatus(ctx context.Context, id uuid.UUID, newStatus string) (*models.Appointment, error) {
	appt, err := s.store.AppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !legalTransitions[appt.Status][newStatus] {
		return nil, ErrInvalidTransition
	}
	return s.store.UpdateAppointmentStatus(ctx, id, newStatus)
}

// DeleteOrArchiveService removes a service unless bookings still depend on
// it: confirmed future appointments block removal entirely, any historical
// appointment degrades removal to archiving so reporting keeps resolving.
func (s *AppointmentService) DeleteOrArchiveService(ctx context.Context, serviceID uuid.UUID) (ServiceRemoval, error) {
	pending, err := s.store.HasConfirmedFutureAppointments(ctx, serviceID, s.clock.Today())
	if err != nil {
		return "", err
	}
	if pending {
		return "", ErrServiceHasPendingAppointments
	}

	count, err := s.store.CountAppointmentsForService(ctx, serviceID)
	if err != nil {
		return "", err
	}
	if count > 0 {
		if err := s.store.ArchiveService(ctx, serviceID); err != nil {
			return "", err
		}
		return ServiceArchived, nil
	}

	if err := s.store.DeleteService(ctx, serviceID); err != nil {
		return "", err
	}
	return ServiceDeleted, nil
}
