//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"library-api/internal/handler/dto/response"
	"library-api/tests/common/httptest"
	"library-api/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL   = "/auth/register"
	loginURL      = "/auth/login"
	createBookURL = "/createBook"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func (s *AuthSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func credentials(email string) map[string]any {
	return map[string]any{
		"email":    email,
		"password": "password123",
	}
}

func (s *AuthSuite) TestRegisterAndLogin() {
	s.Run("Normal case: register then login returns a usable token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, credentials("member@example.com"), "")
		require.Equal(t, http.StatusCreated, w.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var registered response.RegisterResponse
		require.NoError(t, json.Unmarshal(env.Data, &registered))
		require.NotEqual(t, uuid.Nil, registered.InsertedID)

		lw := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, credentials("member@example.com"), "")
		require.Equal(t, http.StatusOK, lw.Code)

		var loginEnv envelope
		require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &loginEnv))
		var logged response.LoginResponse
		require.NoError(t, json.Unmarshal(loginEnv.Data, &logged))
		require.NotEmpty(t, logged.AccessToken)
		require.Equal(t, registered.InsertedID, logged.UserID)

		// The token opens the protected catalog mutation routes
		bookBody := map[string]any{"title": "Members Only", "bookQuantity": 1}
		bw := httptest.PerformRequest(t, s.Router, http.MethodPost, createBookURL, bookBody, logged.AccessToken)
		require.Equal(t, http.StatusCreated, bw.Code)
	})

	s.Run("Error case: duplicate email is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, credentials("dup@example.com"), "")
		require.Equal(t, http.StatusCreated, w.Code)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, credentials("dup@example.com"), "")
		require.Equal(t, http.StatusConflict, w2.Code)
	})

	s.Run("Error case: wrong password", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, credentials("victim@example.com"), "")
		require.Equal(t, http.StatusCreated, w.Code)

		body := credentials("victim@example.com")
		body["password"] = "wrong-password"
		lw := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, body, "")
		require.Equal(t, http.StatusUnauthorized, lw.Code)
	})

	s.Run("Error case: unknown email looks the same as a wrong password", func() {
		t := s.T()

		lw := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, credentials("ghost@example.com"), "")
		require.Equal(t, http.StatusUnauthorized, lw.Code)
	})

	s.Run("Error case: catalog mutations require a token", func() {
		t := s.T()

		bookBody := map[string]any{"title": "No Token", "bookQuantity": 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, createBookURL, bookBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
