// Package domain defines the fixture tables and the mock value types served by
// the API. Fixture rows are mapped with GORM and seeded once at startup; the
// remaining types are built per request by the generator and never persisted.
package domain

// Doctor is a fixture row holding a display name used for generated doctor
// profiles and appointments.
//
// Fields:
//   - ID: surrogate primary key.
//   - Position: stable table order.
//   - Name: full display name (Thai).
type Doctor struct {
	ID       uint   `json:"-"    gorm:"primaryKey"`
	Position int    `json:"-"    gorm:"not null;index"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Doctor.
func (Doctor) TableName() string { return "doctors" }

// Specialty is a fixture row naming a medical specialty.
type Specialty struct {
	ID       uint   `json:"-"    gorm:"primaryKey"`
	Position int    `json:"-"    gorm:"not null;index"`
	Name     string `json:"name" gorm:"type:varchar(255);not null"`
}

// TableName returns the database table name for Specialty.
func (Specialty) TableName() string { return "specialties" }

// Location is a clinic or service point a doctor works at or an appointment
// takes place in.
//
// Fields:
//   - LocationID: stable external code (e.g. "00GI"); primary key.
//   - Position: stable table order.
//   - LocationName: display name.
//   - ParentDepartmentName: optional owning department.
type Location struct {
	LocationID           string  `json:"locationId"                     gorm:"type:varchar(32);primaryKey"`
	Position             int     `json:"-"                              gorm:"not null;index"`
	LocationName         string  `json:"locationName"                   gorm:"type:varchar(255);not null"`
	ParentDepartmentName *string `json:"parentDepartmentName,omitempty" gorm:"type:varchar(255)"`
}

// TableName returns the database table name for Location.
func (Location) TableName() string { return "locations" }

// Patient is a registered patient. Exactly one of NationalID and
// PassportNumber is set; HN is always set and unique.
//
// HasAppointment decides the patient's initial appointment slot state: true
// starts the slot unset (an appointment is generated on first request), false
// marks the patient as never having one.
type Patient struct {
	HN             string  `json:"hn"          gorm:"type:varchar(32);primaryKey"`
	Position       int     `json:"-"           gorm:"not null;index"`
	NationalID     *string `json:"national_id" gorm:"type:varchar(32);index"`
	PassportNumber *string `json:"passboard"   gorm:"type:varchar(32);index"`
	FullName       string  `json:"fullname"    gorm:"type:varchar(255);not null"`
	LanguageCode   string  `json:"language"    gorm:"type:varchar(8);not null"`
	HasAppointment bool    `json:"-"           gorm:"not null"`
}

// TableName returns the database table name for Patient.
func (Patient) TableName() string { return "patients" }

// Matches reports whether id equals the patient's national id, passport
// number, or HN.
func (p Patient) Matches(id string) bool {
	if id == "" {
		return false
	}
	if p.NationalID != nil && *p.NationalID == id {
		return true
	}
	if p.PassportNumber != nil && *p.PassportNumber == id {
		return true
	}
	return p.HN == id
}
