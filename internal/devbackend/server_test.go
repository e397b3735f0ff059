package devbackend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-console/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := New(Config{
		JWTSecret:     "test-secret",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		BcryptCost:    bcrypt.MinCost,
	})
	require.NoError(t, err)
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, s *Server, username, password string) model.LoginResponse {
	t.Helper()
	w := doJSON(t, s.Handler(), http.MethodPost, "/login", "", model.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	resp := login(t, s, "admin", "admin123")
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, model.RoleAdmin, resp.Role)
	assert.Equal(t, model.BranchCentral, resp.Branch)

	w := doJSON(t, s.Handler(), http.MethodPost, "/login", "", model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "detail")
}

func TestUsersRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s.Handler(), http.MethodGet, "/users/?role=doctor", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s.Handler(), http.MethodGet, "/users/?role=doctor", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	_, err := s.AddAccount("dr.sarah", "secret", model.RoleDoctor, model.BranchA)
	require.NoError(t, err)

	token := login(t, s, "dr.sarah", "secret").AccessToken
	w := doJSON(t, s.Handler(), http.MethodGet, "/users/", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "admin", "admin123").AccessToken

	w := doJSON(t, s.Handler(), http.MethodPost, "/users/", token, model.CreateAccountRequest{
		Username: "dr.chen", Password: "pw1", Role: model.RoleDoctor, Branch: model.BranchA,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created model.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, s.Handler(), http.MethodPost, "/users/", token, model.CreateAccountRequest{
		Username: "dr.chen", Password: "pw2", Role: model.RoleDoctor, Branch: model.BranchA,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPut, "/users/"+itoa(created.ID), token, map[string]any{
		"role": "doctor", "branch": "branch_b",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, s.CheckPassword("dr.chen", "pw1"))
	assert.Equal(t, model.BranchB, s.Accounts(model.RoleDoctor)[0].Branch)

	w = doJSON(t, s.Handler(), http.MethodDelete, "/users/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.Accounts(model.RoleDoctor))

	w = doJSON(t, s.Handler(), http.MethodDelete, "/users/"+itoa(created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 2, s.Hits(http.MethodDelete, "/users/:id"))
}

func TestCreateUserValidation(t *testing.T) {
	s := newTestServer(t)
	token := login(t, s, "admin", "admin123").AccessToken

	w := doJSON(t, s.Handler(), http.MethodPost, "/users/", token, map[string]any{
		"username": "x", "password": "y", "role": "doctor", "branch": "moon",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, s.Handler(), http.MethodPost, "/users/", token, map[string]any{"username": "x"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
