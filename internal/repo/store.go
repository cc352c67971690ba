package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

// ErrInvalidFixtures is wrapped by every fixture validation failure.
var ErrInvalidFixtures = errors.New("invalid fixtures")

// FixtureStore is an immutable snapshot of the fixture tables, taken once at
// startup. It is safe for concurrent use without locking: nothing mutates it
// after construction and every accessor returns a copy.
type FixtureStore struct {
	doctors     []string
	specialties []string
	locations   []domain.Location
	patients    []domain.Patient
}

// Snapshot is the exported, JSON-friendly view of a FixtureStore.
type Snapshot struct {
	Doctors     []string          `json:"doctors"`
	Specialties []string          `json:"specialties"`
	Locations   []domain.Location `json:"locations"`
	Patients    []PatientFixture  `json:"patients"`
}

// PatientFixture pairs a patient with its initial appointment slot setting.
type PatientFixture struct {
	domain.Patient
	HasAppointment bool `json:"hasAppointment"`
}

// NewFixtureStore validates the given tables and returns a snapshot holding
// private copies of them.
//
// Validation:
//   - doctors, specialties and locations must be non-empty
//   - location ids and patient HNs must be unique and non-blank
//   - a patient carries at most one of national id / passport number
//   - language codes must parse as BCP 47 tags
func NewFixtureStore(doctors, specialties []string, locations []domain.Location, patients []domain.Patient) (*FixtureStore, error) {
	if len(doctors) == 0 {
		return nil, fmt.Errorf("%w: no doctors", ErrInvalidFixtures)
	}
	if len(specialties) == 0 {
		return nil, fmt.Errorf("%w: no specialties", ErrInvalidFixtures)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no locations", ErrInvalidFixtures)
	}

	seenLoc := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		if strings.TrimSpace(l.LocationID) == "" {
			return nil, fmt.Errorf("%w: blank location id", ErrInvalidFixtures)
		}
		if _, dup := seenLoc[l.LocationID]; dup {
			return nil, fmt.Errorf("%w: duplicate location %q", ErrInvalidFixtures, l.LocationID)
		}
		seenLoc[l.LocationID] = struct{}{}
	}

	seenHN := make(map[string]struct{}, len(patients))
	for i, p := range patients {
		if strings.TrimSpace(p.HN) == "" {
			return nil, fmt.Errorf("%w: blank hn at row %d", ErrInvalidFixtures, i+1)
		}
		if _, dup := seenHN[p.HN]; dup {
			return nil, fmt.Errorf("%w: duplicate hn %q", ErrInvalidFixtures, p.HN)
		}
		if nonEmpty(p.NationalID) && nonEmpty(p.PassportNumber) {
			return nil, fmt.Errorf("%w: patient %s has both national id and passport", ErrInvalidFixtures, p.HN)
		}
		if _, err := language.Parse(p.LanguageCode); err != nil {
			return nil, fmt.Errorf("%w: patient %s language %q: %v", ErrInvalidFixtures, p.HN, p.LanguageCode, err)
		}
		seenHN[p.HN] = struct{}{}
	}

	return &FixtureStore{
		doctors:     append([]string(nil), doctors...),
		specialties: append([]string(nil), specialties...),
		locations:   append([]domain.Location(nil), locations...),
		patients:    append([]domain.Patient(nil), patients...),
	}, nil
}

// DefaultFixtureStore builds a store from the built-in fixtures without a
// database.
func DefaultFixtureStore() *FixtureStore {
	s, err := NewFixtureStore(DefaultDoctorNames, DefaultSpecialties, DefaultLocations(), DefaultPatients())
	if err != nil {
		panic(err)
	}
	return s
}

// LoadFixtures reads every fixture table in table order and returns a
// validated snapshot.
func LoadFixtures(ctx context.Context, db *gorm.DB) (*FixtureStore, error) {
	q := db.WithContext(ctx)

	var doctors []domain.Doctor
	if err := q.Order("position, id").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("load doctors: %w", err)
	}
	var specialties []domain.Specialty
	if err := q.Order("position, id").Find(&specialties).Error; err != nil {
		return nil, fmt.Errorf("load specialties: %w", err)
	}
	var locations []domain.Location
	if err := q.Order("position, location_id").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	var patients []domain.Patient
	if err := q.Order("position, hn").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("load patients: %w", err)
	}

	names := make([]string, 0, len(doctors))
	for _, d := range doctors {
		names = append(names, d.Name)
	}
	specs := make([]string, 0, len(specialties))
	for _, s := range specialties {
		specs = append(specs, s.Name)
	}
	return NewFixtureStore(names, specs, locations, patients)
}

// Doctors returns the doctor names in table order.
func (s *FixtureStore) Doctors() []string { return append([]string(nil), s.doctors...) }

// Specialties returns the specialty names in table order.
func (s *FixtureStore) Specialties() []string { return append([]string(nil), s.specialties...) }

// Locations returns the locations in table order.
func (s *FixtureStore) Locations() []domain.Location {
	return append([]domain.Location(nil), s.locations...)
}

// Patients returns the patients in table order.
func (s *FixtureStore) Patients() []domain.Patient {
	return append([]domain.Patient(nil), s.patients...)
}

// FindPatient returns the first patient, in table order, whose national id,
// passport number, or HN equals id.
func (s *FixtureStore) FindPatient(id string) (domain.Patient, bool) {
	for _, p := range s.patients {
		if p.Matches(id) {
			return p, true
		}
	}
	return domain.Patient{}, false
}

// Snapshot returns a copy of all tables for display.
func (s *FixtureStore) Snapshot() Snapshot {
	ps := make([]PatientFixture, 0, len(s.patients))
	for _, p := range s.patients {
		ps = append(ps, PatientFixture{Patient: p, HasAppointment: p.HasAppointment})
	}
	return Snapshot{
		Doctors:     s.Doctors(),
		Specialties: s.Specialties(),
		Locations:   s.Locations(),
		Patients:    ps,
	}
}

func nonEmpty(p *string) bool { return p != nil && strings.TrimSpace(*p) != "" }
