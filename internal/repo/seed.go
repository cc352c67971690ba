package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/his-mockup-api/internal/domain"
)

func strp(s string) *string { return &s }

// DefaultDoctorNames are the built-in doctor fixtures.
var DefaultDoctorNames = []string{
	"นายมานะ มานี",
	"นางสาวสุนี สวัสดิ์",
	"นายสมชาย ใจดี",
	"นางสาวลลิตา แสงทอง",
	"นายวรวิทย์ เก่งการ",
}

// DefaultSpecialties are the built-in specialty fixtures.
var DefaultSpecialties = []string{"อายุรกรรม", "กุมารเวชกรรม", "ศัลยกรรม", "จักษุวิทยา", "ทันตกรรม"}

// DefaultLocations returns the built-in location fixtures in table order.
func DefaultLocations() []domain.Location {
	return []domain.Location{
		{LocationID: "00GI", Position: 1, LocationName: "GI & Liver Center", ParentDepartmentName: strp("Internal Medicine")},
		{LocationID: "01OPD", Position: 2, LocationName: "OPD Eye", ParentDepartmentName: strp("Ophthalmology")},
		{LocationID: "02MED", Position: 3, LocationName: "Medication Unit"},
	}
}

// DefaultPatients returns the built-in patient fixtures in table order.
// 00-00-00003 never gets an appointment; 00-00-00004 is only reachable by HN.
func DefaultPatients() []domain.Patient {
	return []domain.Patient{
		{HN: "00-00-00001", Position: 1, NationalID: strp("1111111111111"), FullName: "นายดีใจ แสนดี", LanguageCode: "th", HasAppointment: true},
		{HN: "00-00-00002", Position: 2, PassportNumber: strp("P11223344"), FullName: "Mr. Deejai Sandee", LanguageCode: "en", HasAppointment: true},
		{HN: "00-00-00003", Position: 3, PassportNumber: strp("P55667788"), FullName: "张伟", LanguageCode: "ch", HasAppointment: false},
		{HN: "00-00-00004", Position: 4, FullName: "นางสาวสมศรี มีสุข", LanguageCode: "th", HasAppointment: true},
	}
}

// Seed inserts the built-in fixtures into every table that is still empty.
// Tables an operator already filled are left untouched.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if empty, err := isEmpty(tx, &domain.Doctor{}); err != nil {
			return err
		} else if empty {
			rows := make([]domain.Doctor, 0, len(DefaultDoctorNames))
			for i, n := range DefaultDoctorNames {
				rows = append(rows, domain.Doctor{Position: i + 1, Name: n})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if empty, err := isEmpty(tx, &domain.Specialty{}); err != nil {
			return err
		} else if empty {
			rows := make([]domain.Specialty, 0, len(DefaultSpecialties))
			for i, n := range DefaultSpecialties {
				rows = append(rows, domain.Specialty{Position: i + 1, Name: n})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if empty, err := isEmpty(tx, &domain.Location{}); err != nil {
			return err
		} else if empty {
			rows := DefaultLocations()
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if empty, err := isEmpty(tx, &domain.Patient{}); err != nil {
			return err
		} else if empty {
			rows := DefaultPatients()
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func isEmpty(tx *gorm.DB, model any) (bool, error) {
	var n int64
	if err := tx.Model(model).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
