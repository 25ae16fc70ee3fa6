package model

import (
	"strings"
	"time"
)

// Booking statuses as stored in the clinic documents.
const (
	StatusConfirmed = "confirmado"
	StatusPending   = "pendente"
	StatusCancelled = "cancelado"
)

// Weekday keys as persisted in schedule and break records.
// Order follows the calendar convention Sunday = 0.
var WeekdayNames = []string{
	"domingo",
	"segunda",
	"terca",
	"quarta",
	"quinta",
	"sexta",
	"sabado",
}

// WeekdayOf returns the persisted weekday key for a calendar date.
func WeekdayOf(date time.Time) string {
	return WeekdayNames[int(date.Weekday())]
}

// IsWeekday reports whether s is a known weekday key.
func IsWeekday(s string) bool {
	for _, name := range WeekdayNames {
		if name == s {
			return true
		}
	}
	return false
}

// SchedulePeriod is a recurring working window on one weekday.
type SchedulePeriod struct {
	ID      string `json:"id"`
	Weekday string `json:"weekday"`
	Start   string `json:"start"` // "HH:MM"
	End     string `json:"end"`   // "HH:MM"
}

// Break is a recurring blocked window inside a working day,
// typically lunch. No slot may start inside it or overlap it.
type Break struct {
	ID      string `json:"id"`
	Weekday string `json:"weekday"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Label   string `json:"label,omitempty"`
}

// Professional is a clinic professional with their recurring schedule.
// The scheduling engine treats it as an immutable input snapshot.
type Professional struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Specialty           string           `json:"specialty"`
	Color               string           `json:"color,omitempty"`
	Phone               string           `json:"phone,omitempty"`
	Email               string           `json:"email,omitempty"`
	Active              bool             `json:"active"`
	Schedules           []SchedulePeriod `json:"schedules"`
	Breaks              []Break          `json:"breaks,omitempty"`
	ConsultationMinutes int              `json:"consultation_minutes"`
}

// Booking is an appointment. Start and End use the local wall-clock
// form "2006-01-02T15:04" with no timezone, matching the stored
// documents. Lexicographic order on Start equals chronological order.
type Booking struct {
	ID               string `json:"id"`
	Patient          string `json:"patient"`
	PatientPhone     string `json:"patient_phone,omitempty"`
	PatientEmail     string `json:"patient_email,omitempty"`
	ProfessionalID   string `json:"professional_id"`
	ProfessionalName string `json:"professional_name,omitempty"`
	Specialty        string `json:"specialty,omitempty"`
	Start            string `json:"start"`
	End              string `json:"end"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at,omitempty"`
}

// BookingTimeLayout is the wall-clock layout of Booking.Start and End.
const BookingTimeLayout = "2006-01-02T15:04"

// OnDate reports whether the booking starts on the given
// "YYYY-MM-DD" calendar date.
func (b Booking) OnDate(date string) bool {
	return strings.HasPrefix(b.Start, date+"T")
}

// Date returns the "YYYY-MM-DD" part of the booking start.
func (b Booking) Date() string {
	if i := strings.IndexByte(b.Start, 'T'); i > 0 {
		return b.Start[:i]
	}
	return b.Start
}

// StartClock returns the "HH:MM" part of the booking start.
func (b Booking) StartClock() string {
	if i := strings.IndexByte(b.Start, 'T'); i >= 0 && len(b.Start) >= i+6 {
		return b.Start[i+1 : i+6]
	}
	return ""
}

// EndClock returns the "HH:MM" part of the booking end.
func (b Booking) EndClock() string {
	if i := strings.IndexByte(b.End, 'T'); i >= 0 && len(b.End) >= i+6 {
		return b.End[i+1 : i+6]
	}
	return ""
}

// Active reports whether the booking still occupies its slot.
// Cancelled bookings do not block re-booking.
func (b Booking) Active() bool {
	return b.Status != StatusCancelled
}
