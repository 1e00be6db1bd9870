package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"agendador-backend/models"

	"github.com/google/uuid"
)

// fakeScheduleStore is an in-memory ScheduleStore for one business. Insert
// enforces the same partial unique constraint the Postgres schema carries.
type fakeScheduleStore struct {
	mu           sync.Mutex
	hours        map[int]models.BusinessHour // keyed by weekday
	durations    map[uuid.UUID]int
	appointments []models.Appointment
	failWith     error
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{
		hours:     make(map[int]models.BusinessHour),
		durations: make(map[uuid.UUID]int),
	}
}

func (f *fakeScheduleStore) BusinessHoursForDay(ctx context.Context, businessID uuid.UUID, dayOfWeek int) (*models.BusinessHour, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.hours[dayOfWeek]; ok {
		return &h, nil
	}
	return nil, nil
}

func (f *fakeScheduleStore) ServiceDuration(ctx context.Context, serviceID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.durations[serviceID]
	if !ok {
		return 0, errors.New("service not found")
	}
	return d, nil
}

func (f *fakeScheduleStore) BookedSlots(ctx context.Context, businessID uuid.UUID, date string) ([]BookedSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var booked []BookedSlot
	for _, a := range f.appointments {
		if a.Date == date && a.Status != models.StatusCancelled {
			booked = append(booked, BookedSlot{StartTime: a.StartTime, Duration: f.durations[a.ServiceID]})
		}
	}
	return booked, nil
}

func (f *fakeScheduleStore) InsertAppointment(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.BusinessID == appt.BusinessID && a.Date == appt.Date &&
			a.StartTime == appt.StartTime && a.Status != models.StatusCancelled {
			return ErrSlotUnavailable
		}
	}
	appt.ID = uuid.New()
	f.appointments = append(f.appointments, *appt)
	return nil
}

type fixedClock struct {
	today string
	now   string
}

func (c fixedClock) Today() string { return c.today }
func (c fixedClock) Now() string   { return c.now }

// Monday 2025-06-02, business open 09:00-17:00 unless a test says otherwise.
const (
	monday   = "2025-06-02"
	farClock = "2025-01-01" // a "today" that never matches the test dates
)

func newTestService(store *fakeScheduleStore) (*SchedulingService, uuid.UUID) {
	businessID := uuid.New()
	store.hours[1] = models.BusinessHour{BusinessID: businessID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	return NewSchedulingService(store, fixedClock{today: farClock, now: "00:00"}), businessID
}

func addService(store *fakeScheduleStore, duration int) uuid.UUID {
	id := uuid.New()
	store.durations[id] = duration
	return id
}

func addAppointment(store *fakeScheduleStore, businessID, serviceID uuid.UUID, date, start, status string) {
	store.appointments = append(store.appointments, models.Appointment{
		ID:         uuid.New(),
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		StartTime:  start,
		Status:     status,
	})
}

func slotByTime(t *testing.T, slots []TimeSlot, at string) TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not in grid", at)
	return TimeSlot{}
}

func TestAvailableSlots_ClosedDay(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)

	// 2025-06-08 is a Sunday and no hours row exists for it
	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, "2025-06-08")
	if err != nil {
		t.Fatalf("closed day must not be an error, got %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("closed day returned %d slots, want 0", len(slots))
	}
}

func TestAvailableSlots_OpenDayNoBookings(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 60)

	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}

	// full grid 09:00 .. 16:30
	if len(slots) != 16 {
		t.Fatalf("grid has %d cells, want 16", len(slots))
	}
	if slots[0].Time != "09:00" || slots[15].Time != "16:30" {
		t.Errorf("grid bounds = %s .. %s, want 09:00 .. 16:30", slots[0].Time, slots[15].Time)
	}

	// 16:00 + 60min ends exactly at close and is the last available start
	for _, s := range slots[:15] {
		if !s.Available {
			t.Errorf("slot %s should be available", s.Time)
		}
	}
	if slots[15].Available {
		t.Error("16:30 must be unavailable, a 60min service would end past close")
	}
}

func TestAvailableSlots_ExistingBookingBlocksOwnRun(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	short := addService(store, 30)

	addAppointment(store, businessID, short, monday, "10:00", models.StatusConfirmed)

	slots, err := svc.AvailableSlots(context.Background(), businessID, short, monday)
	if err != nil {
		t.Fatal(err)
	}

	if slotByTime(t, slots, "10:00").Available {
		t.Error("10:00 is booked and must be unavailable")
	}
	if !slotByTime(t, slots, "09:30").Available || !slotByTime(t, slots, "10:30").Available {
		t.Error("neighbors of a 30min booking must stay available")
	}
}

func TestAvailableSlots_OccupancyUsesBookedServiceDuration(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	long := addService(store, 90)
	short := addService(store, 30)

	// the 90min appointment occupies 10:00, 10:30 and 11:00
	addAppointment(store, businessID, long, monday, "10:00", models.StatusConfirmed)

	slots, err := svc.AvailableSlots(context.Background(), businessID, short, monday)
	if err != nil {
		t.Fatal(err)
	}

	for _, at := range []string{"10:00", "10:30", "11:00"} {
		if slotByTime(t, slots, at).Available {
			t.Errorf("%s falls inside the 90min booking and must be unavailable", at)
		}
	}
	if !slotByTime(t, slots, "09:30").Available || !slotByTime(t, slots, "11:30").Available {
		t.Error("slots outside the 90min run must stay available")
	}
}

func TestAvailableSlots_RequestedRunMustClearBookings(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	short := addService(store, 30)
	hour := addService(store, 60)

	addAppointment(store, businessID, short, monday, "10:00", models.StatusConfirmed)

	slots, err := svc.AvailableSlots(context.Background(), businessID, hour, monday)
	if err != nil {
		t.Fatal(err)
	}

	// a 60min booking starting 09:30 would run into the 10:00 appointment
	if slotByTime(t, slots, "09:30").Available {
		t.Error("09:30 must be unavailable for a 60min service")
	}
	if !slotByTime(t, slots, "10:30").Available {
		t.Error("10:30 must be available for a 60min service")
	}
}

func TestAvailableSlots_CancelledDoesNotOccupy(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)

	addAppointment(store, businessID, serviceID, monday, "10:00", models.StatusCancelled)

	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if !slotByTime(t, slots, "10:00").Available {
		t.Error("a cancelled appointment must not occupy its slot")
	}
}

func TestAvailableSlots_DurationExactlyFillsRemainingWindow(t *testing.T) {
	store := newFakeScheduleStore()
	businessID := uuid.New()
	store.hours[1] = models.BusinessHour{BusinessID: businessID, DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"}
	svc := NewSchedulingService(store, fixedClock{today: farClock})
	twoHours := addService(store, 120)

	slots, err := svc.AvailableSlots(context.Background(), businessID, twoHours, monday)
	if err != nil {
		t.Fatal(err)
	}

	if !slotByTime(t, slots, "09:00").Available {
		t.Error("a service filling the whole window must be bookable at open")
	}
	for _, at := range []string{"09:30", "10:00", "10:30"} {
		if slotByTime(t, slots, at).Available {
			t.Errorf("%s cannot fit a 120min service before close", at)
		}
	}
}

func TestAvailableSlots_DurationLongerThanDay(t *testing.T) {
	store := newFakeScheduleStore()
	businessID := uuid.New()
	store.hours[1] = models.BusinessHour{BusinessID: businessID, DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"}
	svc := NewSchedulingService(store, fixedClock{today: farClock})
	marathon := addService(store, 180)

	slots, err := svc.AvailableSlots(context.Background(), businessID, marathon, monday)
	if err != nil {
		t.Fatalf("an oversized service is not an error, got %v", err)
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("slot %s cannot fit a 180min service in a 60min day", s.Time)
		}
	}
}

func TestAvailableSlots_TodayDropsPastSlots(t *testing.T) {
	store := newFakeScheduleStore()
	businessID := uuid.New()
	store.hours[1] = models.BusinessHour{BusinessID: businessID, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"}
	svc := NewSchedulingService(store, fixedClock{today: monday, now: "12:15"})
	serviceID := addService(store, 30)

	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) == 0 || slots[0].Time != "12:30" {
		t.Fatalf("first slot after 12:15 must be 12:30, grid starts at %v", slots)
	}

	// exactly-now is not bookable either
	svc = NewSchedulingService(store, fixedClock{today: monday, now: "12:30"})
	slots, err = svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if slots[0].Time != "13:00" {
		t.Errorf("a slot equal to the current instant must be dropped, got %s", slots[0].Time)
	}
}

func TestAvailableSlots_RepeatedReadsAreIdentical(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 60)
	addAppointment(store, businessID, serviceID, monday, "11:00", models.StatusConfirmed)

	first, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("grid sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("slot %d differs between reads: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestAvailableSlots_StoreFailurePropagates(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)

	upstream := errors.New("connection refused")
	store.failWith = upstream

	if _, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday); !errors.Is(err, upstream) {
		t.Errorf("storage failures must propagate unchanged, got %v", err)
	}
}

func TestBook_RoundTrip(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 60)

	appt, err := svc.Book(context.Background(), BookingRequest{
		BusinessID:     businessID,
		ServiceID:      serviceID,
		Date:           monday,
		StartTime:      "10:00",
		ClientName:     "Maria",
		ClientWhatsApp: "5511999990000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if appt.ID == uuid.Nil {
		t.Error("booked appointment must carry its generated id")
	}
	if appt.Status != models.StatusConfirmed {
		t.Errorf("new booking status = %s, want confirmed", appt.Status)
	}

	// the very next read reflects the booking
	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	for _, at := range []string{"10:00", "10:30"} {
		if slotByTime(t, slots, at).Available {
			t.Errorf("%s must be unavailable right after booking", at)
		}
	}
}

func TestBook_SlotUnavailable(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)
	addAppointment(store, businessID, serviceID, monday, "10:00", models.StatusConfirmed)

	cases := []struct {
		name  string
		date  string
		start string
	}{
		{name: "already booked", date: monday, start: "10:00"},
		{name: "off-grid time", date: monday, start: "10:17"},
		{name: "closed day", date: "2025-06-08", start: "10:00"},
		{name: "after closing", date: monday, start: "17:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Book(context.Background(), BookingRequest{
				BusinessID: businessID,
				ServiceID:  serviceID,
				Date:       tc.date,
				StartTime:  tc.start,
				ClientName: "João",
			})
			if !errors.Is(err, ErrSlotUnavailable) {
				t.Errorf("want ErrSlotUnavailable, got %v", err)
			}
		})
	}
}

func TestBook_StaleSnapshotIsRechecked(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)

	// client saw 10:00 free...
	slots, err := svc.AvailableSlots(context.Background(), businessID, serviceID, monday)
	if err != nil {
		t.Fatal(err)
	}
	if !slotByTime(t, slots, "10:00").Available {
		t.Fatal("precondition: 10:00 free")
	}

	// ...but someone else books it before they submit
	addAppointment(store, businessID, serviceID, monday, "10:00", models.StatusConfirmed)

	_, err = svc.Book(context.Background(), BookingRequest{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       monday,
		StartTime:  "10:00",
		ClientName: "Ana",
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("stale slot must be rejected at commit, got %v", err)
	}
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	store := newFakeScheduleStore()
	svc, businessID := newTestService(store)
	serviceID := addService(store, 30)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Book(context.Background(), BookingRequest{
				BusinessID: businessID,
				ServiceID:  serviceID,
				Date:       monday,
				StartTime:  "14:00",
				ClientName: "Corrida",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			losses++
		default:
			t.Fatalf("racing booking returned unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Errorf("want exactly one winner and one ErrSlotUnavailable, got %d/%d", wins, losses)
	}
}
