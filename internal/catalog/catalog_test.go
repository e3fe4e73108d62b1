package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"session-hub/internal/domain"
)

func TestOpenShifts(t *testing.T) {
	c := New()

	open := c.OpenShifts()

	assert.Len(t, open, 2)
	for _, s := range open {
		assert.Equal(t, domain.ShiftOpen, s.Status)
	}
}

func TestShiftsByHospital(t *testing.T) {
	c := New()

	shifts := c.ShiftsByHospital("hosp-sao-lucas")

	assert.Len(t, shifts, 2)
	for _, s := range shifts {
		assert.Equal(t, "hosp-sao-lucas", s.HospitalID)
	}

	assert.Empty(t, c.ShiftsByHospital("hosp-unknown"))
}

func TestCandidaturesByUser(t *testing.T) {
	c := New()

	cands := c.CandidaturesByUser("doc-previous")

	assert.Len(t, cands, 2)
	for _, cd := range cands {
		assert.Equal(t, "doc-previous", cd.UserID)
	}

	assert.Empty(t, c.CandidaturesByUser("doc-other"))
}
