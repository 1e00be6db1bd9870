// services/scheduling_service.go
package services

import (
	"context"

	"agendador-backend/models"
	"agendador-backend/utils"

	"github.com/google/uuid"
)

// TimeSlot is one cell of the booking grid for a (business, service, date)
// request. The full annotated grid is returned; callers decide whether to
// show unavailable cells.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// BookingRequest carries everything needed to admit one new appointment.
type BookingRequest struct {
	BusinessID     uuid.UUID
	ServiceID      uuid.UUID
	Date           string // "YYYY-MM-DD"
	StartTime      string // "HH:MM"
	ClientName     string
	ClientWhatsApp string
}

// SchedulingService computes availability and commits bookings against it.
type SchedulingService struct {
	store ScheduleStore
	clock Clock
}

func NewSchedulingService(store ScheduleStore, clock Clock) *SchedulingService {
	return &SchedulingService{store: store, clock: clock}
}

// AvailableSlots returns the 30-minute booking grid for one business day,
// annotated with whether a booking of the requested service could start at
// each cell. A weekday without business hours yields an empty grid.
//
// An existing appointment occupies a run of cells proportional to its own
// service's duration; a candidate start is available only when the requested
// service's full run fits before closing time and crosses no occupied cell.
func (s *SchedulingService) AvailableSlots(ctx context.Context, businessID, serviceID uuid.UUID, date string) ([]TimeSlot, error) {
	day, err := utils.DayOfWeek(date)
	if err != nil {
		return nil, err
	}

	hours, err := s.store.BusinessHoursForDay(ctx, businessID, day)
	if err != nil {
		return nil, err
	}
	if hours == nil {
		// closed on this weekday
		return []TimeSlot{}, nil
	}

	duration, err := s.store.ServiceDuration(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	grid := utils.GenerateTimeSlots(hours.StartTime, hours.EndTime, utils.SlotInterval)
	index := make(map[string]int, len(grid))
	for i, t := range grid {
		index[t] = i
	}

	booked, err := s.store.BookedSlots(ctx, businessID, date)
	if err != nil {
		return nil, err
	}

	// Occupancy is additive: overlapping rows that slipped in mark the same
	// cells twice without harm.
	occupied := make([]bool, len(grid))
	for _, b := range booked {
		start, ok := index[b.StartTime]
		if !ok {
			continue
		}
		for i := start; i < start+slotsNeeded(b.Duration) && i < len(grid); i++ {
			occupied[i] = true
		}
	}

	needed := slotsNeeded(duration)
	slots := make([]TimeSlot, 0, len(grid))
	for i, t := range grid {
		available := i+needed <= len(grid)
		for j := i; available && j < i+needed; j++ {
			if occupied[j] {
				available = false
			}
		}
		slots = append(slots, TimeSlot{Time: t, Available: available})
	}

	// Occupancy was computed on the full open interval so an in-progress
	// appointment still blocks its tail; only now are past cells dropped.
	if date == s.clock.Today() {
		now := s.clock.Now()
		upcoming := make([]TimeSlot, 0, len(slots))
		for _, slot := range slots {
			if slot.Time > now {
				upcoming = append(upcoming, slot)
			}
		}
		slots = upcoming
	}

	return slots, nil
}

// Book re-validates availability against the current state and commits the
// appointment. The recomputation is mandatory: the slot list the client saw
// may predate concurrent bookings or the passage of time. A slot lost to a
// racing insert surfaces as ErrSlotUnavailable, never as a partial write.
func (s *SchedulingService) Book(ctx context.Context, req BookingRequest) (*models.Appointment, error) {
	slots, err := s.AvailableSlots(ctx, req.BusinessID, req.ServiceID, req.Date)
	if err != nil {
		return nil, err
	}

	found := false
	for _, slot := range slots {
		if slot.Time == req.StartTime {
			found = slot.Available
			break
		}
	}
	if !found {
		return nil, ErrSlotUnavailable
	}

	appt := &models.Appointment{
		BusinessID:     req.BusinessID,
		ServiceID:      req.ServiceID,
		Date:           req.Date,
		StartTime:      req.StartTime,
		ClientName:     req.ClientName,
		ClientWhatsApp: req.ClientWhatsApp,
		Status:         models.StatusConfirmed,
	}
	if err := s.store.InsertAppointment(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// slotsNeeded is how many grid cells a service occupies, rounding partial
// cells up.
func slotsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 1
	}
	return (durationMinutes + utils.SlotInterval - 1) / utils.SlotInterval
}

// BookingDates lists the dates offered by the public booking page: today and
// the following days, local calendar.
func BookingDates(days int) []string {
	if days <= 0 {
		return []string{}
	}
	return utils.NextDates(days)
}
