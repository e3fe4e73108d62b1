package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"session-hub/internal/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionHandle_LoadingBeforeFirstRestore(t *testing.T) {
	h := NewSessionHandler(newTestManager(&stubGateway{}), &stubIssuer{})

	c, rec := getRequest("/session")
	require.NoError(t, h.Handle(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK             bool         `json:"ok"`
		Loading        bool         `json:"loading"`
		User           *domain.User `json:"user"`
		DashboardToken string       `json:"dashboardToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.True(t, resp.Loading)
	assert.Nil(t, resp.User)
	assert.Empty(t, resp.DashboardToken)
}

func TestSessionHandle_AuthenticatedIncludesToken(t *testing.T) {
	identity := &domain.Identity{SubjectID: "u1", Email: "doc@example.com", SessionToken: "tok-1"}
	m := authenticatedManager(t, identity)
	h := NewSessionHandler(m, &stubIssuer{token: "jwt-abc"})

	c, rec := getRequest("/session")
	require.NoError(t, h.Handle(c))

	var resp struct {
		User           *domain.User `json:"user"`
		DashboardToken string       `json:"dashboardToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "jwt-abc", resp.DashboardToken)
}

func TestSessionHandle_TokenGenerationFailure(t *testing.T) {
	identity := &domain.Identity{SubjectID: "u1", Email: "doc@example.com", SessionToken: "tok-1"}
	m := authenticatedManager(t, identity)
	h := NewSessionHandler(m, &stubIssuer{err: domain.ErrTokenGeneration})

	c, _ := getRequest("/session")
	err := h.Handle(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
}
