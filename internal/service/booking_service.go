package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agendamed/internal/events"
	"agendamed/internal/metrics"
	"agendamed/internal/model"
	"agendamed/internal/placement"
	"agendamed/internal/schedule"
)

var (
	ErrSlotTaken             = errors.New("slot is already booked")
	ErrSlotNotOffered        = errors.New("slot is not offered on that weekday")
	ErrInactiveProfessional  = errors.New("professional is not accepting bookings")
	ErrInvalidDateTime       = errors.New("invalid date or time")
	ErrMissingRequiredFields = errors.New("patient, professional, date and time are required")
)

// ProfessionalReader loads professional snapshots.
type ProfessionalReader interface {
	ActiveProfessionals(ctx context.Context) ([]model.Professional, error)
	GetProfessional(ctx context.Context, id string) (*model.Professional, error)
}

// BookingStore reads and mutates bookings.
type BookingStore interface {
	ListBookings(ctx context.Context) ([]model.Booking, error)
	BookingsOnDate(ctx context.Context, date, professionalID string) ([]model.Booking, error)
	CreateBooking(ctx context.Context, b *model.Booking) error
	CancelBooking(ctx context.Context, id string) error
}

// BookingService orchestrates availability lookups and booking
// mutations. Every computation runs on a fresh snapshot loaded from
// the stores; the service itself holds no mutable state.
type BookingService struct {
	profs    ProfessionalReader
	bookings BookingStore
	bus      *events.Bus
	log      *zerolog.Logger
}

func NewBookingService(profs ProfessionalReader, bookings BookingStore, bus *events.Bus, logger *zerolog.Logger) *BookingService {
	return &BookingService{profs: profs, bookings: bookings, bus: bus, log: logger}
}

// Availability returns the weekday availability map for one
// professional. Inactive professionals expose no slots.
func (s *BookingService) Availability(ctx context.Context, professionalID string) (schedule.Availability, error) {
	metrics.IncAvailabilityRequest()

	prof, err := s.profs.GetProfessional(ctx, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load professional: %w", err)
	}
	if !prof.Active {
		return schedule.Availability{}, nil
	}
	return schedule.ProfessionalAvailability(*prof), nil
}

// SpecialtyAvailability unions availability across every active
// professional of a specialty: a time is offered when at least one of
// them offers it.
func (s *BookingService) SpecialtyAvailability(ctx context.Context, specialty string) (schedule.Availability, error) {
	metrics.IncAvailabilityRequest()

	profs, err := s.profs.ActiveProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load professionals: %w", err)
	}

	var maps []schedule.Availability
	for _, p := range profs {
		if !strings.EqualFold(p.Specialty, specialty) {
			continue
		}
		maps = append(maps, schedule.ProfessionalAvailability(p))
	}
	return schedule.MergeAvailability(maps...), nil
}

// BookRequest describes a booking attempt for a concrete slot.
type BookRequest struct {
	Patient        string `json:"patient"`
	PatientPhone   string `json:"patient_phone,omitempty"`
	PatientEmail   string `json:"patient_email,omitempty"`
	ProfessionalID string `json:"professional_id"`
	Date           string `json:"date"` // "YYYY-MM-DD"
	Time           string `json:"time"` // "HH:MM"
	Status         string `json:"status,omitempty"`
}

// Book validates that the requested slot is offered by the
// professional's schedule and not already occupied, then creates the
// booking. The occupancy check is an exact start-time match against
// the professional's non-cancelled bookings on that date.
func (s *BookingService) Book(ctx context.Context, req BookRequest) (*model.Booking, error) {
	if req.Patient == "" || req.ProfessionalID == "" || req.Date == "" || req.Time == "" {
		return nil, ErrMissingRequiredFields
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateTime
	}
	if _, err := schedule.ParseClock(req.Time); err != nil {
		return nil, ErrInvalidDateTime
	}

	prof, err := s.profs.GetProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("load professional: %w", err)
	}
	if !prof.Active {
		return nil, ErrInactiveProfessional
	}

	avail := schedule.ProfessionalAvailability(*prof)
	if !slices.Contains(avail[model.WeekdayOf(day)], req.Time) {
		return nil, ErrSlotNotOffered
	}

	existing, err := s.bookings.BookingsOnDate(ctx, req.Date, req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if placement.Occupied(req.Date, req.Time, existing) {
		metrics.IncBookingConflict()
		return nil, ErrSlotTaken
	}

	duration := prof.ConsultationMinutes
	if duration <= 0 {
		duration = schedule.DefaultConsultationMinutes
	}
	start, err := time.Parse(model.BookingTimeLayout, req.Date+"T"+req.Time)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	booking := &model.Booking{
		Patient:          req.Patient,
		PatientPhone:     req.PatientPhone,
		PatientEmail:     req.PatientEmail,
		ProfessionalID:   prof.ID,
		ProfessionalName: prof.Name,
		Specialty:        prof.Specialty,
		Start:            start.Format(model.BookingTimeLayout),
		End:              start.Add(time.Duration(duration) * time.Minute).Format(model.BookingTimeLayout),
		Status:           req.Status,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBookingCreated(booking.Status)
	s.publish(events.BookingCreated, booking)
	return booking, nil
}

// Cancel marks a booking cancelled.
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	if err := s.bookings.CancelBooking(ctx, id); err != nil {
		return err
	}
	metrics.IncBookingCancelled()
	s.publish(events.BookingCancelled, &model.Booking{ID: id})
	return nil
}

// DayAgenda is the rendered view of one clinic day: the bookings plus
// the per-cell placement assignments.
type DayAgenda struct {
	Date     string                           `json:"date"`
	Bookings []model.Booking                  `json:"bookings"`
	Grid     map[string][]placement.Placement `json:"grid"`
}

// Agenda builds the day agenda for a date, optionally scoped to one
// professional. Bookings whose professional is no longer registered
// keep their stored metadata; the gap is the presentation layer's
// concern, not an error here.
func (s *BookingService) Agenda(ctx context.Context, date, professionalID string) (*DayAgenda, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDateTime
	}

	bookings, err := s.bookings.BookingsOnDate(ctx, date, professionalID)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	profs, err := s.profs.ActiveProfessionals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load professionals: %w", err)
	}
	names := make(map[string]string, len(profs))
	for _, p := range profs {
		names[p.ID] = p.Name
	}
	for i := range bookings {
		if bookings[i].ProfessionalName == "" {
			bookings[i].ProfessionalName = names[bookings[i].ProfessionalID]
		}
	}

	return &DayAgenda{
		Date:     date,
		Bookings: bookings,
		Grid:     placement.DayGrid(date, bookings),
	}, nil
}

func (s *BookingService) publish(eventType string, b *model.Booking) {
	if s.bus == nil {
		return
	}
	payload, _ := json.Marshal(b)
	s.bus.Publish(events.Event{Type: eventType, BookingID: b.ID, Payload: payload})
}
