package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"agendamed/internal/events"
	"agendamed/internal/model"
)

type mockProfs struct {
	mock.Mock
}

func (m *mockProfs) ActiveProfessionals(ctx context.Context) ([]model.Professional, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Professional), args.Error(1)
}

func (m *mockProfs) GetProfessional(ctx context.Context, id string) (*model.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Professional), args.Error(1)
}

type mockBookings struct {
	mock.Mock
}

func (m *mockBookings) ListBookings(ctx context.Context) ([]model.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookings) BookingsOnDate(ctx context.Context, date, professionalID string) ([]model.Booking, error) {
	args := m.Called(ctx, date, professionalID)
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookings) CreateBooking(ctx context.Context, b *model.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = "generated-id"
		if b.Status == "" {
			b.Status = model.StatusConfirmed
		}
	}
	return args.Error(0)
}

func (m *mockBookings) CancelBooking(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func anaSilva() *model.Professional {
	return &model.Professional{
		ID:                  "p1",
		Name:                "Dra. Ana Silva",
		Specialty:           "Cardiologia",
		Active:              true,
		ConsultationMinutes: 30,
		Schedules: []model.SchedulePeriod{
			// 2025-09-15 is a segunda.
			{ID: "h1", Weekday: "segunda", Start: "08:00", End: "12:00"},
		},
		Breaks: []model.Break{
			{ID: "a1", Weekday: "segunda", Start: "10:00", End: "10:30"},
		},
	}
}

func newTestService(profs *mockProfs, bookings *mockBookings) *BookingService {
	logger := zerolog.New(io.Discard)
	return NewBookingService(profs, bookings, events.NewBus(), &logger)
}

func TestAvailability(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	profs.On("GetProfessional", ctx, "p1").Return(anaSilva(), nil).Once()

	avail, err := svc.Availability(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"08:00", "08:30", "09:00", "09:30", "10:30", "11:00", "11:30"},
		avail["segunda"])
	profs.AssertExpectations(t)
}

func TestAvailability_InactiveProfessional(t *testing.T) {
	profs := new(mockProfs)
	svc := newTestService(profs, new(mockBookings))
	ctx := context.Background()

	inactive := anaSilva()
	inactive.Active = false
	profs.On("GetProfessional", ctx, "p1").Return(inactive, nil).Once()

	avail, err := svc.Availability(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, avail)
}

func TestSpecialtyAvailability_Union(t *testing.T) {
	profs := new(mockProfs)
	svc := newTestService(profs, new(mockBookings))
	ctx := context.Background()

	a := *anaSilva()
	b := model.Professional{
		ID:                  "p4",
		Name:                "Dr. Davi Rocha",
		Specialty:           "cardiologia",
		Active:              true,
		ConsultationMinutes: 60,
		Schedules: []model.SchedulePeriod{
			{Weekday: "segunda", Start: "11:00", End: "13:00"},
		},
	}
	other := model.Professional{
		ID:        "p5",
		Specialty: "Neurologia",
		Active:    true,
		Schedules: []model.SchedulePeriod{
			{Weekday: "segunda", Start: "14:00", End: "15:00"},
		},
	}
	profs.On("ActiveProfessionals", ctx).Return([]model.Professional{a, b, other}, nil).Once()

	avail, err := svc.SpecialtyAvailability(ctx, "Cardiologia")
	require.NoError(t, err)

	// Union of both cardiologists, specialty matched case-insensitively,
	// neurology excluded. 11:00 offered by both appears once.
	assert.Equal(t,
		[]string{"08:00", "08:30", "09:00", "09:30", "10:30", "11:00", "11:30", "12:00"},
		avail["segunda"])
	assert.NotContains(t, avail["segunda"], "14:00")
}

func TestBook(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	profs.On("GetProfessional", ctx, "p1").Return(anaSilva(), nil).Once()
	bookings.On("BookingsOnDate", ctx, "2025-09-15", "p1").Return([]model.Booking{}, nil).Once()
	bookings.On("CreateBooking", ctx, mock.AnythingOfType("*model.Booking")).Return(nil).Once()

	b, err := svc.Book(ctx, BookRequest{
		Patient:        "João Silva",
		ProfessionalID: "p1",
		Date:           "2025-09-15",
		Time:           "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-09-15T09:00", b.Start)
	assert.Equal(t, "2025-09-15T09:30", b.End)
	assert.Equal(t, "Dra. Ana Silva", b.ProfessionalName)
	assert.Equal(t, "Cardiologia", b.Specialty)
	bookings.AssertExpectations(t)
}

func TestBook_SlotTaken(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	profs.On("GetProfessional", ctx, "p1").Return(anaSilva(), nil).Once()
	bookings.On("BookingsOnDate", ctx, "2025-09-15", "p1").Return([]model.Booking{
		{ID: "b1", ProfessionalID: "p1", Start: "2025-09-15T09:00", Status: model.StatusConfirmed},
	}, nil).Once()

	_, err := svc.Book(ctx, BookRequest{
		Patient:        "Maria",
		ProfessionalID: "p1",
		Date:           "2025-09-15",
		Time:           "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestBook_CancelledBookingDoesNotBlock(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	profs.On("GetProfessional", ctx, "p1").Return(anaSilva(), nil).Once()
	bookings.On("BookingsOnDate", ctx, "2025-09-15", "p1").Return([]model.Booking{
		{ID: "b1", ProfessionalID: "p1", Start: "2025-09-15T09:00", Status: model.StatusCancelled},
	}, nil).Once()
	bookings.On("CreateBooking", ctx, mock.AnythingOfType("*model.Booking")).Return(nil).Once()

	_, err := svc.Book(ctx, BookRequest{
		Patient:        "Maria",
		ProfessionalID: "p1",
		Date:           "2025-09-15",
		Time:           "09:00",
	})
	assert.NoError(t, err)
}

func TestBook_SlotNotOffered(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	profs.On("GetProfessional", ctx, "p1").Return(anaSilva(), nil)

	tests := []struct {
		name string
		date string
		time string
	}{
		{"break time", "2025-09-15", "10:00"},
		{"off grid time", "2025-09-15", "09:10"},
		{"wrong weekday", "2025-09-16", "09:00"},
		{"after hours", "2025-09-15", "18:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Book(ctx, BookRequest{
				Patient:        "Maria",
				ProfessionalID: "p1",
				Date:           tt.date,
				Time:           tt.time,
			})
			assert.ErrorIs(t, err, ErrSlotNotOffered)
		})
	}
}

func TestBook_Validation(t *testing.T) {
	profs := new(mockProfs)
	svc := newTestService(profs, new(mockBookings))
	ctx := context.Background()

	_, err := svc.Book(ctx, BookRequest{Patient: "Maria"})
	assert.ErrorIs(t, err, ErrMissingRequiredFields)

	_, err = svc.Book(ctx, BookRequest{
		Patient: "Maria", ProfessionalID: "p1", Date: "15/09/2025", Time: "09:00",
	})
	assert.ErrorIs(t, err, ErrInvalidDateTime)

	_, err = svc.Book(ctx, BookRequest{
		Patient: "Maria", ProfessionalID: "p1", Date: "2025-09-15", Time: "9am",
	})
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestBook_InactiveProfessional(t *testing.T) {
	profs := new(mockProfs)
	svc := newTestService(profs, new(mockBookings))
	ctx := context.Background()

	inactive := anaSilva()
	inactive.Active = false
	profs.On("GetProfessional", ctx, "p1").Return(inactive, nil).Once()

	_, err := svc.Book(ctx, BookRequest{
		Patient: "Maria", ProfessionalID: "p1", Date: "2025-09-15", Time: "09:00",
	})
	assert.ErrorIs(t, err, ErrInactiveProfessional)
}

func TestCancel_PublishesEvent(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	logger := zerolog.New(io.Discard)
	bus := events.NewBus()
	svc := NewBookingService(profs, bookings, bus, &logger)
	ctx := context.Background()

	var cancelled []string
	bus.Subscribe(events.BookingCancelled, func(e events.Event) error {
		cancelled = append(cancelled, e.BookingID)
		return nil
	})

	bookings.On("CancelBooking", ctx, "b1").Return(nil).Once()
	require.NoError(t, svc.Cancel(ctx, "b1"))
	assert.Equal(t, []string{"b1"}, cancelled)

	storeErr := errors.New("not found")
	bookings.On("CancelBooking", ctx, "b2").Return(storeErr).Once()
	assert.ErrorIs(t, svc.Cancel(ctx, "b2"), storeErr)
	assert.Len(t, cancelled, 1)
}

func TestAgenda(t *testing.T) {
	profs := new(mockProfs)
	bookings := new(mockBookings)
	svc := newTestService(profs, bookings)
	ctx := context.Background()

	day := []model.Booking{
		{ID: "b1", ProfessionalID: "p1", Start: "2025-09-16T14:00", Status: model.StatusConfirmed},
		{ID: "b2", ProfessionalID: "ghost", Start: "2025-09-16T14:00", Status: model.StatusPending},
	}
	bookings.On("BookingsOnDate", ctx, "2025-09-16", "").Return(day, nil).Once()
	profs.On("ActiveProfessionals", ctx).Return([]model.Professional{*anaSilva()}, nil).Once()

	agenda, err := svc.Agenda(ctx, "2025-09-16", "")
	require.NoError(t, err)

	assert.Equal(t, "Dra. Ana Silva", agenda.Bookings[0].ProfessionalName)
	// Unknown professional is not an error; the name just stays empty.
	assert.Empty(t, agenda.Bookings[1].ProfessionalName)

	cell := agenda.Grid["14:00"]
	require.Len(t, cell, 2)
	assert.Equal(t, 0.5, cell[0].Width)
	assert.Equal(t, 0.5, cell[1].Offset)
}

func TestAgenda_InvalidDate(t *testing.T) {
	svc := newTestService(new(mockProfs), new(mockBookings))
	_, err := svc.Agenda(context.Background(), "16-09-2025", "")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}
