// Package store persists clinic documents in Redis. Professionals,
// bookings, and clinic configuration each live under a fixed key as a
// JSON document, mirroring how the clinic front-end reads them. The
// scheduling engine never touches this package directly; it receives
// snapshots loaded here.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"agendamed/internal/model"
)

// Redis keys for clinic documents.
const (
	keyProfessionals = "clinic:professionals"
	keyBookings      = "clinic:bookings"
	keyInfo          = "clinic:info"
	keyHours         = "clinic:hours"
	keyAddress       = "clinic:address"
	keyContacts      = "clinic:contacts"
	keyCustomHours   = "clinic:custom_hours"
)

var (
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrBookingNotFound      = errors.New("booking not found")
)

// Store reads and writes clinic documents in Redis.
type Store struct {
	rdb *redis.Client
	log *zerolog.Logger
}

// New creates a store over an existing Redis client.
func New(rdb *redis.Client, logger *zerolog.Logger) *Store {
	return &Store{rdb: rdb, log: logger}
}

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) getJSON(ctx context.Context, key string, out any) (bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// ListProfessionals returns all professionals, active or not.
func (s *Store) ListProfessionals(ctx context.Context) ([]model.Professional, error) {
	var profs []model.Professional
	if _, err := s.getJSON(ctx, keyProfessionals, &profs); err != nil {
		return nil, err
	}
	return profs, nil
}

// ActiveProfessionals returns only professionals accepting bookings.
func (s *Store) ActiveProfessionals(ctx context.Context) ([]model.Professional, error) {
	profs, err := s.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	active := profs[:0]
	for _, p := range profs {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetProfessional returns one professional by id.
func (s *Store) GetProfessional(ctx context.Context, id string) (*model.Professional, error) {
	profs, err := s.ListProfessionals(ctx)
	if err != nil {
		return nil, err
	}
	for i := range profs {
		if profs[i].ID == id {
			return &profs[i], nil
		}
	}
	return nil, ErrProfessionalNotFound
}

// SaveProfessionals replaces the professionals document.
func (s *Store) SaveProfessionals(ctx context.Context, profs []model.Professional) error {
	return s.setJSON(ctx, keyProfessionals, profs)
}

// ListBookings returns all bookings.
func (s *Store) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if _, err := s.getJSON(ctx, keyBookings, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// BookingsOnDate returns bookings starting on a "YYYY-MM-DD" date,
// optionally filtered by professional. Input order is preserved so
// placement indices stay stable across reads.
func (s *Store) BookingsOnDate(ctx context.Context, date, professionalID string) ([]model.Booking, error) {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return nil, err
	}

	var out []model.Booking
	for _, b := range bookings {
		if !b.OnDate(date) {
			continue
		}
		if professionalID != "" && b.ProfessionalID != professionalID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// CreateBooking appends a booking, assigning id, creation timestamp,
// and a default status of confirmado.
func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return err
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().Format(time.RFC3339)
	if b.Status == "" {
		b.Status = model.StatusConfirmed
	}

	bookings = append(bookings, *b)
	if err := s.setJSON(ctx, keyBookings, bookings); err != nil {
		return err
	}

	s.log.Info().
		Str("booking_id", b.ID).
		Str("professional_id", b.ProfessionalID).
		Str("start", b.Start).
		Msg("booking created")
	return nil
}

// UpdateBooking replaces a booking by id.
func (s *Store) UpdateBooking(ctx context.Context, b model.Booking) error {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return err
	}
	for i := range bookings {
		if bookings[i].ID == b.ID {
			bookings[i] = b
			return s.setJSON(ctx, keyBookings, bookings)
		}
	}
	return ErrBookingNotFound
}

// CancelBooking marks a booking cancelled, keeping it in the document
// so calendars can still render it.
func (s *Store) CancelBooking(ctx context.Context, id string) error {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return err
	}
	for i := range bookings {
		if bookings[i].ID == id {
			bookings[i].Status = model.StatusCancelled
			if err := s.setJSON(ctx, keyBookings, bookings); err != nil {
				return err
			}
			s.log.Info().Str("booking_id", id).Msg("booking cancelled")
			return nil
		}
	}
	return ErrBookingNotFound
}

// DeleteBooking removes a booking entirely.
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	bookings, err := s.ListBookings(ctx)
	if err != nil {
		return err
	}
	filtered := bookings[:0]
	for _, b := range bookings {
		if b.ID != id {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == len(bookings) {
		return ErrBookingNotFound
	}
	return s.setJSON(ctx, keyBookings, filtered)
}

// GetClinicConfig assembles the clinic configuration documents.
func (s *Store) GetClinicConfig(ctx context.Context) (*model.ClinicConfig, error) {
	var cfg model.ClinicConfig
	if _, err := s.getJSON(ctx, keyInfo, &cfg.Info); err != nil {
		return nil, err
	}
	if _, err := s.getJSON(ctx, keyHours, &cfg.Hours); err != nil {
		return nil, err
	}
	if _, err := s.getJSON(ctx, keyAddress, &cfg.Address); err != nil {
		return nil, err
	}
	if _, err := s.getJSON(ctx, keyContacts, &cfg.Contacts); err != nil {
		return nil, err
	}
	if _, err := s.getJSON(ctx, keyCustomHours, &cfg.CustomHours); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveClinicConfig writes all clinic configuration documents.
func (s *Store) SaveClinicConfig(ctx context.Context, cfg model.ClinicConfig) error {
	if err := s.setJSON(ctx, keyInfo, cfg.Info); err != nil {
		return err
	}
	if err := s.setJSON(ctx, keyHours, cfg.Hours); err != nil {
		return err
	}
	if err := s.setJSON(ctx, keyAddress, cfg.Address); err != nil {
		return err
	}
	if err := s.setJSON(ctx, keyContacts, cfg.Contacts); err != nil {
		return err
	}
	return s.setJSON(ctx, keyCustomHours, cfg.CustomHours)
}
