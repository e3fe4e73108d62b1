package domain

import "time"

// Role classifies an account for role-specific dashboard views.
type Role string

const (
	RoleDoctor   Role = "doctor"
	RoleHospital Role = "hospital"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known account roles.
func (r Role) Valid() bool {
	switch r {
	case RoleDoctor, RoleHospital, RoleAdmin:
		return true
	}
	return false
}

// User is the published session entity. Exactly one authoritative copy
// exists at a time: the value held by the session manager. Its ID always
// equals the identity provider's subject id for the active session.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      Role       `json:"role"`
	Phone     string     `json:"phone"`
	Specialty string     `json:"specialty,omitempty"`
	CRM       string     `json:"crm,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Identity holds the claims the identity provider returns for an
// authenticated session.
type Identity struct {
	SubjectID    string
	Email        string
	DisplayName  string
	Avatar       string
	SessionToken string
	CreatedAt    time.Time
}

// FromClaims synthesizes a User from provider claims alone, used when no
// profile document exists for the subject. Role defaults to doctor and
// phone to empty; the document store is not consulted or written.
func FromClaims(identity *Identity) *User {
	return &User{
		ID:     identity.SubjectID,
		Name:   identity.DisplayName,
		Email:  identity.Email,
		Role:   RoleDoctor,
		Phone:  "",
		Avatar: identity.Avatar,
	}
}
