// Package catalog serves the static shift and candidature data backing the
// dashboards. There is no matching engine behind it; the entries are fixed
// at startup and reads return copies.
package catalog

import (
	"time"

	"session-hub/internal/domain"
)

// Catalog holds the in-memory shift listings. All data is seeded once and
// never mutated, so reads need no locking.
type Catalog struct {
	shifts       []domain.Shift
	candidatures []domain.Candidature
}

// New seeds the fixed listings shown on the doctor and hospital dashboards.
func New() *Catalog {
	return &Catalog{
		shifts: []domain.Shift{
			{
				ID:           "shift-001",
				HospitalID:   "hosp-sao-lucas",
				Date:         time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
				StartTime:    "07:00",
				EndTime:      "19:00",
				Specialty:    "Clínica Médica",
				Status:       domain.ShiftOpen,
				PaymentValue: 1500,
			},
			{
				ID:           "shift-002",
				HospitalID:   "hosp-santa-casa",
				Date:         time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC),
				StartTime:    "19:00",
				EndTime:      "07:00",
				Specialty:    "Pediatria",
				Status:       domain.ShiftOpen,
				PaymentValue: 1800,
			},
			{
				ID:           "shift-003",
				HospitalID:   "hosp-sao-lucas",
				DoctorID:     "doc-previous",
				Date:         time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
				StartTime:    "07:00",
				EndTime:      "19:00",
				Specialty:    "Cardiologia",
				Status:       domain.ShiftAssigned,
				PaymentValue: 2000,
			},
		},
		candidatures: []domain.Candidature{
			{
				UserID:    "doc-previous",
				ShiftID:   "shift-003",
				UserName:  "Dr. Ricardo Mendes",
				UserCRM:   "CRM/SP 123456",
				Status:    domain.CandidatureApproved,
				CreatedAt: time.Date(2024, time.March, 10, 14, 30, 0, 0, time.UTC),
			},
			{
				UserID:    "doc-previous",
				ShiftID:   "shift-001",
				UserName:  "Dr. Ricardo Mendes",
				UserCRM:   "CRM/SP 123456",
				Status:    domain.CandidaturePending,
				CreatedAt: time.Date(2024, time.March, 18, 9, 15, 0, 0, time.UTC),
			},
		},
	}
}

// OpenShifts returns the shifts still accepting candidatures.
func (c *Catalog) OpenShifts() []domain.Shift {
	out := make([]domain.Shift, 0, len(c.shifts))
	for _, s := range c.shifts {
		if s.Status == domain.ShiftOpen {
			out = append(out, s)
		}
	}
	return out
}

// ShiftsByHospital returns every shift published by the given hospital.
func (c *Catalog) ShiftsByHospital(hospitalID string) []domain.Shift {
	out := make([]domain.Shift, 0, len(c.shifts))
	for _, s := range c.shifts {
		if s.HospitalID == hospitalID {
			out = append(out, s)
		}
	}
	return out
}

// CandidaturesByUser returns the given doctor's applications, newest first
// not guaranteed; the seed order is preserved.
func (c *Catalog) CandidaturesByUser(userID string) []domain.Candidature {
	out := make([]domain.Candidature, 0, len(c.candidatures))
	for _, cd := range c.candidatures {
		if cd.UserID == userID {
			out = append(out, cd)
		}
	}
	return out
}
