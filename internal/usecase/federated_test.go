package usecase

import (
	"context"
	"errors"
	"testing"

	"session-hub/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSignInWithGoogle_FirstSignInSeedsDefaults(t *testing.T) {
	gw := newMockGateway()
	gw.federatedIdentity = &domain.Identity{
		SubjectID:   "g1",
		DisplayName: "Dr. G",
		Email:       "g@x.com",
		Avatar:      "https://lh3.example/pic",
	}
	store := newMockStore()
	m := newManager(gw, store)

	user, err := m.SignInWithGoogle(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "g1", user.ID)
	assert.Equal(t, domain.RoleDoctor, user.Role)

	stored := store.docs["g1"]
	assert.NotNil(t, stored)
	assert.Equal(t, domain.RoleDoctor, stored.Role)
	assert.Equal(t, "https://lh3.example/pic", stored.Avatar)
}

func TestSignInWithGoogle_MergePreservesUnrelatedFields(t *testing.T) {
	gw := newMockGateway()
	gw.federatedIdentity = &domain.Identity{
		SubjectID:   "g2",
		DisplayName: "St. Mary Admin",
		Email:       "admin@stmary.com",
	}
	store := newMockStore()
	store.docs["g2"] = &domain.User{
		ID:    "g2",
		Name:  "Old Name",
		Email: "old@stmary.com",
		Role:  domain.RoleHospital,
		Phone: "11999999999",
		CRM:   "55555",
	}
	m := newManager(gw, store)

	user, err := m.SignInWithGoogle(context.Background())

	assert.NoError(t, err)
	// claims overwrite identity fields, merge keeps the rest
	assert.Equal(t, "St. Mary Admin", user.Name)
	assert.Equal(t, "admin@stmary.com", user.Email)
	assert.Equal(t, domain.RoleHospital, user.Role)
	assert.Equal(t, "11999999999", user.Phone)
	assert.Equal(t, "55555", user.CRM)

	assert.Equal(t, domain.RoleHospital, store.docs["g2"].Role)
}

func TestSignInWithGoogle_CancelledFlowIsSurfaced(t *testing.T) {
	gw := newMockGateway()
	gw.federatedErr = domain.ErrPopupCancelled
	m := newManager(gw, newMockStore())

	user, err := m.SignInWithGoogle(context.Background())

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domain.ErrPopupCancelled))
	current, _ := m.Current()
	assert.Nil(t, current)
}

func TestSignInWithGoogle_ProfileWriteFailureIsSurfaced(t *testing.T) {
	gw := newMockGateway()
	gw.federatedIdentity = &domain.Identity{SubjectID: "g3", Email: "g3@x.com"}
	store := newMockStore()
	store.upsertErr = domain.ErrPermissionDenied
	m := newManager(gw, store)

	user, err := m.SignInWithGoogle(context.Background())

	assert.Nil(t, user)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}
