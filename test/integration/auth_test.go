package integration_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"munka_backend/test/helpers"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	ts := GetTestServer(t)

	email := fmt.Sprintf("register_%d@test.com", time.Now().UnixNano())
	registerBody := map[string]interface{}{
		"email":    email,
		"password": "password123",
		"name":     "New Worker",
		"role":     "worker",
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "access_token")
	assert.NotContains(t, bodyStr, "password", "password hash must never leak")

	// Duplicate registration conflicts
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", registerBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, bodyStr)

	// Login with the right password
	loginBody := map[string]interface{}{
		"email":    email,
		"password": "password123",
	}
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "access_token")

	// Wrong password is a 401 with the same message as an unknown email
	loginBody["password"] = "wrong-password"
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, bodyStr)
}

func TestAuth_RejectsInvalidRegistration(t *testing.T) {
	ts := GetTestServer(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing email", map[string]interface{}{"password": "password123", "name": "X Y", "role": "worker"}},
		{"bad email", map[string]interface{}{"email": "not-an-email", "password": "password123", "name": "X Y", "role": "worker"}},
		{"short password", map[string]interface{}{"email": "short@test.com", "password": "123", "name": "X Y", "role": "worker"}},
		{"bad role", map[string]interface{}{"email": "role@test.com", "password": "password123", "name": "X Y", "role": "superadmin"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
		})
	}
}

func TestAuth_ProtectedRouteRequiresToken(t *testing.T) {
	ts := GetTestServer(t)

	res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/works", "", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/works", "garbage-token", map[string]interface{}{})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestAuth_RoleEnforcement(t *testing.T) {
	ts := GetTestServer(t)

	workerToken, _ := helpers.CreateAndLoginWorker(t, ts)

	// A worker cannot publish works
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works", workerToken, map[string]interface{}{
		"title":        "Should be rejected",
		"wage":         1000,
		"payment_type": "cash",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}
