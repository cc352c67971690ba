// Package services – AppointmentCache
//
// This file implements the per-patient appointment memo. Each known patient
// owns one slot, created when the cache is built:
//
//   - SlotNoAppointment: the patient never gets an appointment (terminal)
//   - SlotUnset:         nothing generated yet
//   - SlotGenerated:     an appointment was generated and is served forever
//
// GetOrCreate performs the only transition, Unset → Generated, under the
// slot's own mutex, so concurrent first requests for one patient generate a
// single appointment and every caller sees it. Later calls return the stored
// value and ignore the requested date (first write wins).
package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

// SlotState is the lifecycle state of a patient's appointment slot.
type SlotState int

const (
	SlotNoAppointment SlotState = iota
	SlotUnset
	SlotGenerated
)

// String implements fmt.Stringer.
func (s SlotState) String() string {
	switch s {
	case SlotNoAppointment:
		return "no_appointment"
	case SlotUnset:
		return "unset"
	case SlotGenerated:
		return "generated"
	default:
		return "unknown"
	}
}

// AppointmentGenerator creates a new appointment for a patient and date.
type AppointmentGenerator interface {
	Appointment(hn string, date time.Time) domain.Appointment
}

type appointmentSlot struct {
	mu    sync.Mutex
	state SlotState
	appt  domain.Appointment
}

// AppointmentCache memoizes one appointment per patient for the lifetime of
// the process. The slot map is built once and never resized, so lookups need
// no cache-wide lock.
type AppointmentCache struct {
	gen   AppointmentGenerator
	slots map[string]*appointmentSlot
}

// NewAppointmentCache creates a slot for every patient. Patients with
// HasAppointment start Unset; the rest are permanently NoAppointment.
func NewAppointmentCache(gen AppointmentGenerator, patients []domain.Patient) *AppointmentCache {
	slots := make(map[string]*appointmentSlot, len(patients))
	for _, p := range patients {
		st := SlotNoAppointment
		if p.HasAppointment {
			st = SlotUnset
		}
		slots[p.HN] = &appointmentSlot{state: st}
	}
	return &AppointmentCache{gen: gen, slots: slots}
}

// GetOrCreate returns the patient's appointment, generating it from date on
// the first call. The boolean is false when the patient has no appointment or
// is unknown to the cache.
//
// Once generated, the stored appointment is returned for every later date.
func (c *AppointmentCache) GetOrCreate(ctx context.Context, hn string, date time.Time) (domain.Appointment, bool) {
	slot, ok := c.slots[hn]
	if !ok {
		cacheLookups.WithLabelValues(lookupUnknown).Inc()
		return domain.Appointment{}, false
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	switch slot.state {
	case SlotGenerated:
		cacheLookups.WithLabelValues(lookupHit).Inc()
		return slot.appt.Clone(), true
	case SlotUnset:
		cacheLookups.WithLabelValues(lookupMiss).Inc()

		_, span := otel.Tracer("services/AppointmentCache").Start(ctx, "GenerateAppointment",
			trace.WithAttributes(attribute.String("appointment.date", date.Format(domain.DateLayout))),
		)
		slot.appt = c.gen.Appointment(hn, date).Clone()
		slot.state = SlotGenerated
		span.End()

		appointmentsGenerated.Inc()
		log.Debug().
			Str("en", slot.appt.EncounterNumber).
			Str("appointment_datetime", slot.appt.AppointmentDatetime).
			Msg("appointment generated")
		return slot.appt.Clone(), true
	default:
		cacheLookups.WithLabelValues(lookupNone).Inc()
		return domain.Appointment{}, false
	}
}

// State reports the current slot state for hn. The boolean is false for
// patients the cache does not know.
func (c *AppointmentCache) State(hn string) (SlotState, bool) {
	slot, ok := c.slots[hn]
	if !ok {
		return SlotNoAppointment, false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.state, true
}
