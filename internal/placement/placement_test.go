package placement

import (
	"reflect"
	"testing"

	"agendamed/internal/model"
)

func booking(id, profID, start, status string) model.Booking {
	return model.Booking{
		ID:             id,
		ProfessionalID: profID,
		Start:          start,
		Status:         status,
	}
}

func TestResolve_ThreeBookingsShareCell(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-16T14:00", model.StatusConfirmed),
		booking("b2", "pB", "2025-09-16T14:00", model.StatusPending),
		booking("b3", "pC", "2025-09-16T14:00", model.StatusConfirmed),
	}

	res := Resolve("2025-09-16", "14:00", bookings)

	if !res.Occupied {
		t.Error("expected cell to be occupied")
	}
	if len(res.Placements) != 3 {
		t.Fatalf("expected 3 placements, got %d", len(res.Placements))
	}

	third := 1.0 / 3.0
	for i, p := range res.Placements {
		if p.BookingID != bookings[i].ID {
			t.Errorf("placement %d: booking %s, want %s", i, p.BookingID, bookings[i].ID)
		}
		if p.Index != i || p.Total != 3 {
			t.Errorf("placement %d: index/total = %d/%d", i, p.Index, p.Total)
		}
		if p.Width != third {
			t.Errorf("placement %d: width = %v, want %v", i, p.Width, third)
		}
		if p.Offset != float64(i)*third {
			t.Errorf("placement %d: offset = %v", i, p.Offset)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-16T14:00", model.StatusConfirmed),
		booking("b2", "pB", "2025-09-16T14:00", model.StatusPending),
	}

	first := Resolve("2025-09-16", "14:00", bookings)
	second := Resolve("2025-09-16", "14:00", bookings)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolutions differ: %+v vs %+v", first, second)
	}
}

func TestResolve_CancelledDoesNotOccupyButIsPlaced(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-16T14:00", model.StatusCancelled),
	}

	res := Resolve("2025-09-16", "14:00", bookings)

	if res.Occupied {
		t.Error("cancelled booking must not occupy the slot")
	}
	if len(res.Placements) != 1 {
		t.Fatalf("cancelled booking still gets a placement, got %d", len(res.Placements))
	}
	if res.Placements[0].Width != 1.0 {
		t.Errorf("single booking width = %v, want 1", res.Placements[0].Width)
	}
}

func TestResolve_ExactStartMatchOnly(t *testing.T) {
	// A booking running 14:00-15:00 overlaps the 14:30 cell but does
	// not start in it, so 14:30 stays free.
	bookings := []model.Booking{
		{
			ID:             "b1",
			ProfessionalID: "pA",
			Start:          "2025-09-16T14:00",
			End:            "2025-09-16T15:00",
			Status:         model.StatusConfirmed,
		},
	}

	res := Resolve("2025-09-16", "14:30", bookings)

	if res.Occupied {
		t.Error("overlapping booking must not occupy a cell it does not start in")
	}
	if len(res.Placements) != 0 {
		t.Errorf("expected no placements, got %v", res.Placements)
	}
}

func TestResolve_OtherDateIgnored(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-17T14:00", model.StatusConfirmed),
	}

	res := Resolve("2025-09-16", "14:00", bookings)

	if res.Occupied || len(res.Placements) != 0 {
		t.Errorf("booking on another date leaked in: %+v", res)
	}
}

func TestResolve_UnknownProfessionalIsNotAnError(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "ghost", "2025-09-16T14:00", model.StatusConfirmed),
	}

	res := Resolve("2025-09-16", "14:00", bookings)

	if !res.Occupied || len(res.Placements) != 1 {
		t.Errorf("placement must succeed without professional metadata: %+v", res)
	}
}

func TestOccupied(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-16T09:00", model.StatusConfirmed),
		booking("b2", "pA", "2025-09-16T10:00", model.StatusCancelled),
	}

	tests := []struct {
		time     string
		expected bool
	}{
		{"09:00", true},
		{"10:00", false}, // cancelled
		{"11:00", false},
	}

	for _, tt := range tests {
		if got := Occupied("2025-09-16", tt.time, bookings); got != tt.expected {
			t.Errorf("Occupied(%s) = %v, want %v", tt.time, got, tt.expected)
		}
	}
}

func TestDayGrid(t *testing.T) {
	bookings := []model.Booking{
		booking("b1", "pA", "2025-09-16T09:00", model.StatusConfirmed),
		booking("b2", "pB", "2025-09-16T14:00", model.StatusConfirmed),
		booking("b3", "pC", "2025-09-16T14:00", model.StatusPending),
		booking("b4", "pA", "2025-09-17T14:00", model.StatusConfirmed),
		{ID: "b5", ProfessionalID: "pD", Start: "2025-09-16", Status: model.StatusConfirmed},
	}

	grid := DayGrid("2025-09-16", bookings)

	if len(grid) != 2 {
		t.Fatalf("expected 2 cells, got %d: %v", len(grid), grid)
	}
	if len(grid["09:00"]) != 1 {
		t.Errorf("09:00 cell: %v", grid["09:00"])
	}
	if len(grid["14:00"]) != 2 {
		t.Fatalf("14:00 cell: %v", grid["14:00"])
	}
	if grid["14:00"][0].BookingID != "b2" || grid["14:00"][1].BookingID != "b3" {
		t.Errorf("14:00 cell order broken: %v", grid["14:00"])
	}
	if grid["14:00"][0].Width != 0.5 || grid["14:00"][1].Offset != 0.5 {
		t.Errorf("14:00 cell shares wrong: %v", grid["14:00"])
	}
}
