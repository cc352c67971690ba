// Package services – doctor, patient and login services
//
// These services are stateless: DoctorService returns a fresh random profile
// per call, PatientService looks patients up in the fixture snapshot, and
// AuthService checks one hardcoded credential pair.
package services

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

// DoctorGenerator builds a random doctor profile.
type DoctorGenerator interface {
	DoctorProfile() domain.DoctorProfile
}

// DoctorService serves randomly generated doctor schedules.
type DoctorService struct {
	Gen DoctorGenerator
}

// NewDoctorService constructs a DoctorService.
func NewDoctorService(gen DoctorGenerator) *DoctorService {
	return &DoctorService{Gen: gen}
}

// Schedule returns one random doctor profile with its schedule blocks.
func (s *DoctorService) Schedule(ctx context.Context) domain.DoctorProfile {
	_, span := otel.Tracer("services/DoctorService").Start(ctx, "Schedule")
	defer span.End()

	doctorProfilesGenerated.Inc()
	return s.Gen.DoctorProfile()
}

// PatientFinder resolves a patient by national id, passport number or HN.
type PatientFinder interface {
	FindPatient(id string) (domain.Patient, bool)
}

// PatientService looks up fixture patients.
type PatientService struct {
	Finder PatientFinder
}

// NewPatientService constructs a PatientService.
func NewPatientService(f PatientFinder) *PatientService {
	return &PatientService{Finder: f}
}

// Find returns the patient identified by id.
func (s *PatientService) Find(ctx context.Context, id string) (domain.Patient, error) {
	if id == "" {
		return domain.Patient{}, ErrMissingPatientID
	}
	_, span := otel.Tracer("services/PatientService").Start(ctx, "Find")
	defer span.End()

	p, ok := s.Finder.FindPatient(id)
	if !ok {
		return domain.Patient{}, ErrPatientNotFound
	}
	return p, nil
}

// Mock credentials accepted by AuthService.
const (
	MockUsername = "admin"
	MockPassword = "admin1234"
)

// MockStaffProfile is returned for every successful login.
var MockStaffProfile = domain.StaffProfile{
	Code:       "0999",
	FullNameTH: "นายดีใจ แสนดี",
	FullNameEN: "Mr.deejai sandee",
	Department: "Medication Unit",
	Role:       "OPD Medication",
}

// AuthService checks the mock credential pair.
type AuthService struct{}

// NewAuthService constructs an AuthService.
func NewAuthService() *AuthService { return &AuthService{} }

// Login returns the fixed staff profile when username and password match the
// mock pair. A blank username or a nil password is ErrMissingCredentials; an
// empty password is checked like any other value.
func (s *AuthService) Login(ctx context.Context, username string, password *string) (domain.StaffProfile, error) {
	_, span := otel.Tracer("services/AuthService").Start(ctx, "Login")
	defer span.End()

	if username == "" || password == nil {
		loginAttempts.WithLabelValues("bad_request").Inc()
		return domain.StaffProfile{}, ErrMissingCredentials
	}
	if username != MockUsername || *password != MockPassword {
		loginAttempts.WithLabelValues("unauthorized").Inc()
		return domain.StaffProfile{}, ErrInvalidCredentials
	}
	loginAttempts.WithLabelValues("success").Inc()
	return MockStaffProfile, nil
}
