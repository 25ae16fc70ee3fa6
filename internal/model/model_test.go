package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		{"2025-09-14", "domingo"},
		{"2025-09-15", "segunda"},
		{"2025-09-16", "terca"},
		{"2025-09-17", "quarta"},
		{"2025-09-18", "quinta"},
		{"2025-09-19", "sexta"},
		{"2025-09-20", "sabado"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse("2006-01-02", tt.date)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, WeekdayOf(d))
		})
	}
}

func TestIsWeekday(t *testing.T) {
	for _, name := range WeekdayNames {
		assert.True(t, IsWeekday(name))
	}
	assert.False(t, IsWeekday("monday"))
	assert.False(t, IsWeekday(""))
}

func TestBooking_Helpers(t *testing.T) {
	b := Booking{
		ID:             "b1",
		Patient:        "João Silva",
		ProfessionalID: "p1",
		Start:          "2025-09-16T14:00",
		End:            "2025-09-16T14:30",
		Status:         StatusConfirmed,
	}

	t.Run("OnDate", func(t *testing.T) {
		assert.True(t, b.OnDate("2025-09-16"))
		assert.False(t, b.OnDate("2025-09-1"))
		assert.False(t, b.OnDate("2025-09-17"))
	})

	t.Run("Date", func(t *testing.T) {
		assert.Equal(t, "2025-09-16", b.Date())
	})

	t.Run("Clocks", func(t *testing.T) {
		assert.Equal(t, "14:00", b.StartClock())
		assert.Equal(t, "14:30", b.EndClock())
	})

	t.Run("ClocksMalformed", func(t *testing.T) {
		broken := Booking{Start: "2025-09-16", End: ""}
		assert.Equal(t, "", broken.StartClock())
		assert.Equal(t, "", broken.EndClock())
		assert.Equal(t, "2025-09-16", broken.Date())
	})

	t.Run("Active", func(t *testing.T) {
		assert.True(t, b.Active())
		assert.True(t, Booking{Status: StatusPending}.Active())
		assert.False(t, Booking{Status: StatusCancelled}.Active())
	})
}
