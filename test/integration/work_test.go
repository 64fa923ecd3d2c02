package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munka_backend/internal/models"
	"munka_backend/test/helpers"
)

func TestWork_PublishAndRead(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)

	title := fmt.Sprintf("Garden fence repair %d", time.Now().UnixNano())
	workBody := map[string]interface{}{
		"title":        title,
		"description":  "Replace broken panels",
		"wage":         "12500.50",
		"payment_type": "cash",
		"location":     "Szeged",
		"skills":       []string{"carpentry"},
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works", employerToken, workBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created models.Work
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, models.WorkStatusPublished, created.Status, "new work starts published")
	assert.Equal(t, employer.ID, created.EmployerID)
	assert.Equal(t, employer.Name, created.EmployerName)

	// Public read without a token
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, title)

	// Listing filtered by employer
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works?employer_id="+employer.ID, "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, title)
}

func TestWork_UpdateAllowList(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	work := CreateTestWork(t, ts.DB, employer, "Original title", models.WorkStatusPublished)

	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID, employerToken, map[string]interface{}{
		"title":    "Renamed work",
		"location": "Debrecen",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, "Renamed work")
	assert.Contains(t, bodyStr, "Debrecen")

	// Empty patch is rejected
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID, employerToken, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// Non-owner cannot update
	otherToken, _ := helpers.CreateAndLoginEmployer(t, ts)
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID, otherToken, map[string]interface{}{
		"title": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestWork_StatusTransitions(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Transition test", models.WorkStatusPublished)

	// published -> in_progress needs an assigned employee
	res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/status", employerToken, map[string]interface{}{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": worker.ID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, `"status":"in_progress"`)
	assert.Contains(t, bodyStr, worker.ID)

	// completed cannot be reached through the status endpoint
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/status", employerToken, map[string]interface{}{
		"status": "completed",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// published again is an illegal backward move
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/status", employerToken, map[string]interface{}{
		"status": "published",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// Same-status retry is idempotent
	res, bodyStr = ts.SendRequest(t, http.MethodPut, "/api/v1/works/"+work.ID+"/status", employerToken, map[string]interface{}{
		"status": "in_progress",
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
}

func TestWork_AssignEmployee(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Assignment test", models.WorkStatusPublished)

	// Assign by QR payload
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"payload": "munka:user:" + worker.ID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, worker.ID)
	assert.Contains(t, bodyStr, "started_at")

	// Retrying the same assignment is a no-op
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": worker.ID,
	})
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// Garbage payload is rejected
	work2 := CreateTestWork(t, ts.DB, employer, "Assignment test 2", models.WorkStatusPublished)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work2.ID+"/assign", employerToken, map[string]interface{}{
		"payload": "not-a-valid-payload",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// Self-assignment is rejected
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work2.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": employer.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)
}

func TestWork_AssignEmployeeLocksAfterPublished(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)
	_, worker2 := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Reassignment test", models.WorkStatusPublished)
	assignWorker(t, ts, employerToken, work.ID, worker.ID)

	// An in-progress work cannot be handed to someone else
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": worker2.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	// Nor can one waiting on its completion code
	generateCode(t, ts, employerToken, work.ID)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": worker2.ID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, bodyStr)

	var stored models.Work
	require.NoError(t, ts.DB.First(&stored, "id = ?", work.ID).Error)
	assert.Equal(t, models.WorkStatusAwaitingVerification, stored.Status)
	require.NotNil(t, stored.EmployeeID)
	assert.Equal(t, worker.ID, *stored.EmployeeID, "original assignment survives")
}

func TestWork_ActiveForEmployee(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	workerToken, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Active lookup test", models.WorkStatusPublished)
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/works/"+work.ID+"/assign", employerToken, map[string]interface{}{
		"employee_id": worker.ID,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/employee/"+worker.ID+"/active", workerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, work.ID)

	// Cannot read someone else's active work
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/employee/"+employer.ID+"/active", workerToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode, bodyStr)
}

func TestWork_ResolveManualCode(t *testing.T) {
	ts := GetTestServer(t)

	_, employer := helpers.CreateAndLoginEmployer(t, ts)
	workerToken, _ := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Manual code test", models.WorkStatusPublished)

	prefix := work.ID[:8]
	res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/works/code/"+prefix, workerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)
	assert.Contains(t, bodyStr, work.ID)

	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/works/code/zzzzzzzz", workerToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, bodyStr)
}

func TestWork_Delete(t *testing.T) {
	ts := GetTestServer(t)

	employerToken, employer := helpers.CreateAndLoginEmployer(t, ts)
	_, worker := helpers.CreateAndLoginWorker(t, ts)

	work := CreateTestWork(t, ts.DB, employer, "Delete test", models.WorkStatusPublished)
	CreateTestApplication(t, ts.DB, &work, worker, models.ApplicationStatusPending)

	res, bodyStr := ts.SendRequest(t, http.MethodDelete, "/api/v1/works/"+work.ID, employerToken, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	// The work and its applications are gone
	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/works/"+work.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	var count int64
	ts.DB.Model(&models.Application{}).Where("work_id = ?", work.ID).Count(&count)
	assert.Equal(t, int64(0), count, "applications must be deleted with the work")
}
