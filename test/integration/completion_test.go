package integration_test

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munka_backend/internal/models"
	"munka_backend/test/helpers"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func assignWorker(t *testing.T, ts *helpers.TestServer, employerToken string, workID, workerID string) {
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+workID+"/assign", employerToken, map[string]interface{}{
		"employee_id": workerID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func generateCode(t *testing.T, ts *helpers.TestServer, employerToken, workID string) string {
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+workID+"/completion-code", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var codeResponse struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &codeResponse))
	require.Regexp(t, sixDigits, codeResponse.Code, "code must be 6 digits, zero-padded")
	return codeResponse.Code
}

// wrongCode returns a 6-digit code guaranteed to differ from the given one.
func wrongCode(code string) string {
	if code == "000000" {
		return "000001"
	}
	return "000000"
}

func TestCompletion_HappyPath(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Completion happy path", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work.ID, worker.ID)

	// Generating a code moves the work into awaiting_verification
	code := generateCode(t, ts, employerToken, work.ID)

	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"awaiting_verification"`)

	// The employer can re-display the active code
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID+"/completion-code", employerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, code)

	// Verifying the right code completes the work
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/completion-code/verify", employerToken, map[string]interface{}{
		"code": code,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"completed"`)
	assert.Contains(t, bodyStr, `"progress":1`)
	assert.Contains(t, bodyStr, "ended_at")

	// The code is consumed; a second verification finds nothing
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/completion-code/verify", employerToken, map[string]interface{}{
		"code": code,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID+"/completion-code", employerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
}

func TestCompletion_RegenerateOverwrites(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Regenerate test", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work.ID, worker.ID)

	first := generateCode(t, ts, employerToken, work.ID)
	second := generateCode(t, ts, employerToken, work.ID)

	// Only one code row exists per work
	var count int64
	ts.DB.Model(&models.CompletionCode{}).Where("work_id = ?", work.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// The stored code is the latest one
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID+"/completion-code", employerToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, second)

	// The first code no longer verifies, unless the draw repeated it
	if first != second {
		res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/completion-code/verify", employerToken, map[string]interface{}{
			"code": first,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	}
}

func TestCompletion_WrongCodeAndLockout(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Lockout test", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work.ID, worker.ID)

	code := generateCode(t, ts, employerToken, work.ID)
	bad := wrongCode(code)

	// Five wrong guesses are each rejected
	for i := 0; i < 5; i++ {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/completion-code/verify", employerToken, map[string]interface{}{
			"code": bad,
		})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
	}

	// The sixth attempt is locked out even with the right code
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/completion-code/verify", employerToken, map[string]interface{}{
		"code": code,
	})
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode, bodyStr)

	// The work is still awaiting verification
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"awaiting_verification"`)
}

func TestCompletion_Guards(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	workerToken, worker := helpers.CreateAndLoginWorker(t, ts)

	// A published work has no one to verify against
	published := CreateTestWork(t, ts.DB, employer, "Guards published", models.WorkStatusPublished)
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+published.ID+"/completion-code", employerToken, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	work := CreateTestWork(t, ts.DB, employer, "Guards in progress", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work.ID, worker.ID)

	// The worker role has no access to the code endpoints
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/completion-code", workerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	// Another employer does not own the work
	otherToken, _ := helpers.CreateAndLoginEmployer(t, ts)
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/completion-code", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)

	// Verifying before any code was generated is a miss
	work2 := CreateTestWork(t, ts.DB, employer, "Guards no code", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work2.ID, worker.ID)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work2.ID+"/completion-code/verify", employerToken, map[string]interface{}{
		"code": "123456",
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)

	// A malformed code fails validation before touching storage
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work2.ID+"/completion-code/verify", employerToken, map[string]interface{}{
		"code": "12345",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}
