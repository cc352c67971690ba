package services

import "github.com/prometheus/client_golang/prometheus"

// Lookup outcomes for his_appointment_cache_lookups_total.
const (
	lookupHit     = "hit"
	lookupMiss    = "miss"
	lookupNone    = "no_appointment"
	lookupUnknown = "unknown_patient"
)

var (
	// cacheLookups counts AppointmentCache.GetOrCreate calls by outcome.
	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "his_appointment_cache_lookups_total",
			Help: "Appointment cache lookups by result.",
		},
		[]string{"result"},
	)

	// appointmentsGenerated counts Unset → Generated transitions.
	appointmentsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "his_appointments_generated_total",
			Help: "Appointments generated and memoized.",
		},
	)

	// doctorProfilesGenerated counts doctor schedule responses.
	doctorProfilesGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "his_doctor_profiles_generated_total",
			Help: "Random doctor profiles generated.",
		},
	)

	// loginAttempts counts login attempts by outcome.
	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "his_login_attempts_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(cacheLookups, appointmentsGenerated, doctorProfilesGenerated, loginAttempts)
}
