package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandleSignIn_PublishesClaims(t *testing.T) {
	identity := &domain.Identity{
		SubjectID:    "u1",
		Email:        "doc@example.com",
		DisplayName:  "Dr. A",
		SessionToken: "tok-1",
	}
	h := NewAuthHandler(newTestManager(&stubGateway{identity: identity}), "/")

	c, rec := postJSON("/auth/sign-in", `{"email":"doc@example.com","password":"pw"}`)
	require.NoError(t, h.HandleSignIn(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Dr. A", user.Name)
	assert.Equal(t, domain.RoleDoctor, user.Role)
}

func TestHandleSignIn_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(newTestManager(&stubGateway{signInErr: domain.ErrInvalidCredentials}), "/")

	c, _ := postJSON("/auth/sign-in", `{"email":"doc@example.com","password":"wrong"}`)
	err := h.HandleSignIn(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestHandleSignUp_Created(t *testing.T) {
	identity := &domain.Identity{SubjectID: "u2", Email: "new@example.com", SessionToken: "tok-2"}
	h := NewAuthHandler(newTestManager(&stubGateway{identity: identity}), "/")

	c, rec := postJSON("/auth/sign-up",
		`{"email":"new@example.com","password":"strongpw1","name":"Dr. B","crm":"CRM/SP 99"}`)
	require.NoError(t, h.HandleSignUp(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "Dr. B", user.Name)
	assert.Equal(t, "CRM/SP 99", user.CRM)
}

func TestHandleSignUp_EmailConflict(t *testing.T) {
	h := NewAuthHandler(newTestManager(&stubGateway{signInErr: domain.ErrEmailAlreadyInUse}), "/")

	c, _ := postJSON("/auth/sign-up", `{"email":"dup@example.com","password":"strongpw1","name":"Dr. C"}`)
	err := h.HandleSignUp(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestHandleGoogle_PopupCancelled(t *testing.T) {
	h := NewAuthHandler(newTestManager(&stubGateway{signInErr: domain.ErrPopupCancelled}), "/")

	c, _ := postJSON("/auth/google", "")
	err := h.HandleGoogle(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	payload, ok := httpErr.Message.(errorPayload)
	require.True(t, ok)
	assert.Equal(t, "low", payload.Severity)
}

func TestHandleSignOut_RedirectsToLanding(t *testing.T) {
	identity := &domain.Identity{SubjectID: "u1", Email: "doc@example.com", SessionToken: "tok-1"}
	m := authenticatedManager(t, identity)
	h := NewAuthHandler(m, "/landing")

	c, rec := postJSON("/auth/sign-out", "")
	require.NoError(t, h.HandleSignOut(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/landing", rec.Header().Get(echo.HeaderLocation))

	user, _ := m.Current()
	assert.Nil(t, user)
}

func TestHandleSignOut_AnonymousStillRedirects(t *testing.T) {
	h := NewAuthHandler(newTestManager(&stubGateway{}), "/landing")

	c, rec := postJSON("/auth/sign-out", "")
	require.NoError(t, h.HandleSignOut(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestHandleSignOut_ProviderFailureKeepsSession(t *testing.T) {
	identity := &domain.Identity{SubjectID: "u1", Email: "doc@example.com", SessionToken: "tok-1"}
	gw := &stubGateway{identity: identity, signOutErr: domain.ErrNetworkFailure}
	m := newTestManager(gw)
	_, err := m.SignIn(context.Background(), identity.Email, "pw")
	require.NoError(t, err)

	h := NewAuthHandler(m, "/landing")
	c, _ := postJSON("/auth/sign-out", "")
	signOutErr := h.HandleSignOut(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, signOutErr, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.Code)

	user, _ := m.Current()
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
}
