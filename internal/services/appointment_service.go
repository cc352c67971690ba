// Package services – AppointmentService
//
// AppointmentService answers "which appointments exist on this date" by
// walking every known patient in table order and asking the AppointmentCache
// for that patient's memoized appointment. The date is validated before the
// walk starts, so a malformed request never touches the cache.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

// PatientLister returns the known patients in table order.
type PatientLister interface {
	Patients() []domain.Patient
}

// AppointmentService lists memoized appointments.
type AppointmentService struct {
	Patients PatientLister
	Cache    *AppointmentCache
}

// NewAppointmentService wires the patient table and the appointment cache.
func NewAppointmentService(patients PatientLister, cache *AppointmentCache) *AppointmentService {
	return &AppointmentService{Patients: patients, Cache: cache}
}

// ParseAppointmentDate parses a strict YYYY-MM-DD date. Dates are naive
// calendar days, so they are read in UTC.
func ParseAppointmentDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrMissingDate
	}
	d, err := time.ParseInLocation(domain.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// List returns, in patient table order, the appointment of every patient that
// has one. Patients without an appointment are skipped. The result is never
// nil.
func (s *AppointmentService) List(ctx context.Context, rawDate string) ([]domain.Appointment, error) {
	date, err := ParseAppointmentDate(rawDate)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer("services/AppointmentService").Start(ctx, "List",
		trace.WithAttributes(attribute.String("appointment.date", rawDate)),
	)
	defer span.End()

	patients := s.Patients.Patients()
	out := make([]domain.Appointment, 0, len(patients))
	for _, p := range patients {
		if a, ok := s.Cache.GetOrCreate(ctx, p.HN, date); ok {
			out = append(out, a)
		}
	}
	span.SetAttributes(attribute.Int("appointment.count", len(out)))
	return out, nil
}
