// services/gorm_store.go
package services

import (
	"context"
	"errors"
	"fmt"

	"agendador-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormStore implements ScheduleStore and AppointmentStore over Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) BusinessHoursForDay(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*models.BusinessHour, error) {
	var hours models.BusinessHour
	err := s.db.WithContext(ctx).
		Where("business_id = ? AND day_of_week = ?", businessID, dayOfWeek).
		First(&hours).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// closed day, not an error
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch business hours: %w", err)
	}
	return &hours, nil
}

func (s *GormStore) ServiceDuration(ctx context.Context, serviceID uuid.UUID) (int, error) {
	var service models.Service
	if err := s.db.WithContext(ctx).First(&service, "id = ?", serviceID).Error; err != nil {
		return 0, fmt.Errorf("fetch service: %w", err)
	}
	return service.Duration, nil
}

func (s *GormStore) BookedSlots(ctx context.Context, businessID uuid.UUID, date string) ([]BookedSlot, error) {
	var rows []BookedSlot
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("appointments.start_time, services.duration").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.business_id = ? AND appointments.date = ? AND appointments.status <> ?",
			businessID, date, models.StatusCancelled).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}
	return rows, nil
}

func (s *GormStore) InsertAppointment(ctx context.Context, appt *models.Appointment) error {
	if err := s.db.WithContext(ctx).Create(appt).Error; err != nil {
		if isUniqueViolation(err) {
			// a concurrent booking won the slot between re-check and insert
			return ErrSlotUnavailable
		}
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (s *GormStore) AppointmentByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.db.WithContext(ctx).Preload("Service").First(&appt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &appt, nil
}

func (s *GormStore) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Appointment, error) {
	tx := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status)
	if tx.Error != nil {
		return nil, fmt.Errorf("update appointment status: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.AppointmentByID(ctx, id)
}

func (s *GormStore) HasConfirmedFutureAppointments(ctx context.Context, serviceID uuid.UUID, fromDate string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_id = ? AND status = ? AND date >= ?", serviceID, models.StatusConfirmed, fromDate).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count pending appointments: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) CountAppointmentsForService(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return count, nil
}

func (s *GormStore) DeleteService(ctx context.Context, serviceID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", serviceID).Error; err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	return nil
}

func (s *GormStore) ArchiveService(ctx context.Context, serviceID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", serviceID).
		Update("active", false).Error
	if err != nil {
		return fmt.Errorf("archive service: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
