package domain

import "time"

// ShiftStatus tracks a shift through its mocked lifecycle.
type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftAssigned  ShiftStatus = "assigned"
	ShiftCompleted ShiftStatus = "completed"
	ShiftCancelled ShiftStatus = "cancelled"
)

// Shift is a hospital shift listing shown on the dashboards. Matching,
// assignment and payment are not implemented; the catalog is static.
type Shift struct {
	ID           string      `json:"id"`
	HospitalID   string      `json:"hospitalId"`
	DoctorID     string      `json:"doctorId,omitempty"`
	Date         time.Time   `json:"date"`
	StartTime    string      `json:"startTime"`
	EndTime      string      `json:"endTime"`
	Specialty    string      `json:"specialty"`
	Status       ShiftStatus `json:"status"`
	PaymentValue float64     `json:"paymentValue"`
}

// CandidatureStatus tracks a doctor's application to a shift.
type CandidatureStatus string

const (
	CandidaturePending  CandidatureStatus = "pending"
	CandidatureApproved CandidatureStatus = "approved"
	CandidatureRejected CandidatureStatus = "rejected"
)

// Candidature is a doctor's application to an open shift.
type Candidature struct {
	UserID    string            `json:"userId"`
	ShiftID   string            `json:"shiftId"`
	UserName  string            `json:"userName"`
	UserCRM   string            `json:"userCrm,omitempty"`
	Status    CandidatureStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}
