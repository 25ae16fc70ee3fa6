package store

import (
	"context"

	"agendamed/internal/model"
)

// SeedProfessionals is the initial clinic roster used to bootstrap an
// empty deployment.
var SeedProfessionals = []model.Professional{
	{
		ID:                  "p1",
		Name:                "Dra. Ana Silva",
		Specialty:           "Cardiologia",
		Color:               "#3b82f6",
		Phone:               "(11) 99999-1234",
		Email:               "ana@clinica.com",
		Active:              true,
		ConsultationMinutes: 30,
		Schedules: []model.SchedulePeriod{
			{ID: "h1", Weekday: "segunda", Start: "08:00", End: "12:00"},
			{ID: "h2", Weekday: "quarta", Start: "14:00", End: "18:00"},
			{ID: "h3", Weekday: "sexta", Start: "08:00", End: "16:00"},
		},
		Breaks: []model.Break{
			{ID: "a1", Weekday: "segunda", Start: "12:00", End: "13:00", Label: "Almoço"},
			{ID: "a2", Weekday: "quarta", Start: "12:00", End: "13:00", Label: "Almoço"},
			{ID: "a3", Weekday: "sexta", Start: "12:00", End: "13:00", Label: "Almoço"},
		},
	},
	{
		ID:                  "p2",
		Name:                "Dr. Bruno Costa",
		Specialty:           "Dermatologia",
		Color:               "#6366f1",
		Phone:               "(11) 98888-5678",
		Email:               "bruno@clinica.com",
		Active:              true,
		ConsultationMinutes: 45,
		Schedules: []model.SchedulePeriod{
			{ID: "h4", Weekday: "terca", Start: "09:00", End: "17:00"},
			{ID: "h5", Weekday: "quinta", Start: "13:00", End: "18:00"},
		},
		Breaks: []model.Break{
			{ID: "a4", Weekday: "terca", Start: "12:00", End: "13:00", Label: "Almoço"},
			{ID: "a5", Weekday: "quinta", Start: "12:00", End: "13:00", Label: "Almoço"},
		},
	},
	{
		ID:                  "p3",
		Name:                "Dra. Carla Mendes",
		Specialty:           "Neurologia",
		Color:               "#10b981",
		Phone:               "(11) 97777-9012",
		Email:               "carla@clinica.com",
		Active:              true,
		ConsultationMinutes: 60,
		Schedules: []model.SchedulePeriod{
			{ID: "h6", Weekday: "segunda", Start: "14:00", End: "18:00"},
			{ID: "h7", Weekday: "quarta", Start: "08:00", End: "12:00"},
		},
		Breaks: []model.Break{
			{ID: "a6", Weekday: "segunda", Start: "12:00", End: "13:00", Label: "Almoço"},
			{ID: "a7", Weekday: "quarta", Start: "12:00", End: "13:00", Label: "Almoço"},
		},
	},
}

// Seed writes initial professionals and clinic configuration. Existing
// professionals are left untouched unless force is set.
func (s *Store) Seed(ctx context.Context, force bool) error {
	if !force {
		existing, err := s.ListProfessionals(ctx)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return nil
		}
	}

	if err := s.SaveProfessionals(ctx, SeedProfessionals); err != nil {
		return err
	}

	cfg := model.ClinicConfig{
		Info: model.ClinicInfo{
			Name:  "Clínica Médica Central",
			Phone: "(11) 3333-4444",
			Email: "contato@clinicacentral.com.br",
		},
		Hours: model.ClinicHours{
			Start:    "07:00",
			End:      "19:00",
			Saturday: true,
			Sunday:   false,
		},
	}
	if err := s.SaveClinicConfig(ctx, cfg); err != nil {
		return err
	}

	s.log.Info().Int("professionals", len(SeedProfessionals)).Msg("seed data written")
	return nil
}
