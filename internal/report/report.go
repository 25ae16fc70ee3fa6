// Package report exports clinic agendas to Excel workbooks, one sheet
// per day with the bookings laid out in start-time order.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"agendamed/internal/model"
)

// SheetWriter writes tabular data to a spreadsheet format.
type SheetWriter interface {
	// AddSheet starts a new sheet with the given name.
	AddSheet(name string) error

	// WriteHeader writes column headers to the current sheet.
	WriteHeader(columns []string) error

	// WriteRow writes a data row to the current sheet.
	WriteRow(row []interface{}) error

	// Save writes the workbook to the writer.
	Save(w io.Writer) error

	// Close releases resources.
	Close() error
}

// BookingLister supplies bookings for a date.
type BookingLister interface {
	BookingsOnDate(ctx context.Context, date, professionalID string) ([]model.Booking, error)
}

var agendaColumns = []string{
	"Horário", "Paciente", "Telefone", "Profissional", "Especialidade", "Status",
}

// Builder assembles agenda workbooks.
type Builder struct {
	bookings BookingLister
	writer   func() SheetWriter
}

// NewBuilder creates a report builder with a writer factory; each
// report gets a fresh writer.
func NewBuilder(bookings BookingLister, writerFactory func() SheetWriter) *Builder {
	return &Builder{bookings: bookings, writer: writerFactory}
}

// AgendaWorkbook writes the agenda for [from, to] (inclusive calendar
// dates, "YYYY-MM-DD") to w. Days without bookings still get a sheet
// so the exported period reads complete.
func (b *Builder) AgendaWorkbook(ctx context.Context, from, to string, w io.Writer) error {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	if start.After(end) {
		return fmt.Errorf("from %s is after to %s", from, to)
	}

	sw := b.writer()
	defer sw.Close()

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if err := b.writeDay(ctx, sw, date); err != nil {
			return err
		}
	}

	return sw.Save(w)
}

func (b *Builder) writeDay(ctx context.Context, sw SheetWriter, date string) error {
	bookings, err := b.bookings.BookingsOnDate(ctx, date, "")
	if err != nil {
		return fmt.Errorf("load bookings for %s: %w", date, err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Start < bookings[j].Start
	})

	if err := sw.AddSheet(date); err != nil {
		return err
	}
	if err := sw.WriteHeader(agendaColumns); err != nil {
		return err
	}

	for _, bk := range bookings {
		row := []interface{}{
			bk.StartClock() + " - " + bk.EndClock(),
			bk.Patient,
			bk.PatientPhone,
			bk.ProfessionalName,
			bk.Specialty,
			bk.Status,
		}
		if err := sw.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}
