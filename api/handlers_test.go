/*
handlers_test.go - HTTP API tests

Exercises the routed handlers end to end against an in-memory SQLite store:
reference-data writes, ledger rebuild, window reads, and error mapping.
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killswit3h/my-calendar-sub002/labor"
	"github.com/Killswit3h/my-calendar-sub002/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := labor.DefaultConfig()
	driver, err := labor.NewDriver(cfg, store.Stores())
	require.NoError(t, err)

	srv := httptest.NewServer(NewRouter(NewHandler(store, driver, nil), nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

// seedWeek creates an employee, a rate, a one-day event, and an assignment.
func seedWeek(t *testing.T, srv *httptest.Server) {
	t.Helper()

	resp := doJSON(t, srv, http.MethodPost, "/api/employees",
		CreateEmployeeRequest{ID: "emp-a", Name: "Ada"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/employees/emp-a/rates",
		CreateRateRequest{EffectiveDate: "2025-01-01", Rate: 40}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		ID: "evt-1", JobID: "job-1", JobName: "Route 9", Title: "Paving",
		StartsAt: "2025-06-03T11:00:00Z", EndsAt: "2025-06-03T19:00:00Z",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/events/evt-1/assignments",
		CreateAssignmentRequest{ID: "asg-a", EmployeeID: "emp-a"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// =============================================================================
// REBUILD & LEDGER READS
// =============================================================================

func TestRebuildEndpoint_HappyPath(t *testing.T) {
	// GIVEN: Seeded reference data
	// WHEN: POSTing a rebuild for the covering window
	// THEN: 200 with the inserted row count, and the ledger read returns the row

	srv := newTestServer(t)
	seedWeek(t, srv)

	var result labor.RebuildResult
	resp := doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-01", EndDate: "2025-06-07"}, &result)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, result.RowsInserted)
	assert.Empty(t, result.MissingRates)

	var rows []LaborRowDTO
	resp = doJSON(t, srv, http.MethodGet, "/api/labor?start=2025-06-01&end=2025-06-07", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, rows, 1)

	assert.Equal(t, "2025-06-03-evt-1-emp-a", rows[0].ID)
	assert.Equal(t, "job-1", rows[0].JobID)
	assert.Equal(t, "Ada", rows[0].EmployeeName)
	assert.Equal(t, "8", rows[0].Hours)
	assert.Equal(t, "320", rows[0].TotalCost)
}

func TestRebuildEndpoint_InvalidWindowIs400(t *testing.T) {
	// GIVEN: An inverted window
	// WHEN: POSTing the rebuild
	// THEN: 400 with an error body, not a 500

	srv := newTestServer(t)

	var errResp ErrorResponse
	resp := doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-07", EndDate: "2025-06-01"}, &errResp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, errResp.Error)
}

func TestLedgerByJobEndpoint_FiltersRows(t *testing.T) {
	// GIVEN: A rebuilt ledger for one job
	// WHEN: Reading by the right and wrong job ids
	// THEN: Only the right job returns rows

	srv := newTestServer(t)
	seedWeek(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-01", EndDate: "2025-06-07"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []LaborRowDTO
	resp = doJSON(t, srv, http.MethodGet, "/api/labor/jobs/job-1?start=2025-06-01&end=2025-06-07", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, rows, 1)

	resp = doJSON(t, srv, http.MethodGet, "/api/labor/jobs/job-other?start=2025-06-01&end=2025-06-07", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, rows)
}

func TestLedgerEndpoint_MissingParamsIs400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/labor", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// REFERENCE DATA ENDPOINTS
// =============================================================================

func TestCreateEmployee_GeneratesIDWhenOmitted(t *testing.T) {
	srv := newTestServer(t)

	var created EmployeeDTO
	resp := doJSON(t, srv, http.MethodPost, "/api/employees",
		CreateEmployeeRequest{Name: "No ID Given"}, &created)

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "No ID Given", created.Name)
}

func TestCreateEmployee_RequiresName(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees", CreateEmployeeRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateRate_UnknownEmployeeIs404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/employees/emp-ghost/rates",
		CreateRateRequest{EffectiveDate: "2025-01-01", Rate: 40}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAssignment_UnknownEventIs404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/events/evt-ghost/assignments",
		CreateAssignmentRequest{EmployeeID: "emp-a"}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateEvent_RejectsBadTimestamps(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		JobID: "job-1", Title: "Bad", StartsAt: "yesterday", EndsAt: "2025-06-03T19:00:00Z",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteEvent_RebuildClearsItsRows(t *testing.T) {
	// GIVEN: A rebuilt ledger, then the event is deleted
	// WHEN: Rebuilding the same window again
	// THEN: The window comes back empty

	srv := newTestServer(t)
	seedWeek(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-01", EndDate: "2025-06-07"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodDelete, "/api/events/evt-1", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-01", EndDate: "2025-06-07"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []LaborRowDTO
	resp = doJSON(t, srv, http.MethodGet, "/api/labor?start=2025-06-01&end=2025-06-07", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, rows)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_LoadAndRead(t *testing.T) {
	// GIVEN: The scenario catalog
	// WHEN: Loading the rate-change scenario
	// THEN: The load rebuilds the ledger and the window is readable

	srv := newTestServer(t)

	var list []ScenarioDTO
	resp := doJSON(t, srv, http.MethodGet, "/api/scenarios", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, list)

	var loaded struct {
		Status   string `json:"status"`
		Scenario string `json:"scenario"`
		Start    string `json:"start"`
		End      string `json:"end"`
	}
	resp = doJSON(t, srv, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "rate-change"}, &loaded)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "loaded", loaded.Status)

	var rows []LaborRowDTO
	resp = doJSON(t, srv, http.MethodGet,
		"/api/labor?start="+loaded.Start+"&end="+loaded.End, nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, rows)
}

func TestScenarios_UnknownIDIs400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/scenarios/load",
		map[string]string{"scenario_id": "does-not-exist"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScenarios_ResetClearsLedger(t *testing.T) {
	srv := newTestServer(t)
	seedWeek(t, srv)

	resp := doJSON(t, srv, http.MethodPost, "/api/labor/rebuild",
		RebuildRequest{StartDate: "2025-06-01", EndDate: "2025-06-07"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, srv, http.MethodPost, "/api/scenarios/reset", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []LaborRowDTO
	resp = doJSON(t, srv, http.MethodGet, "/api/labor?start=2025-06-01&end=2025-06-07", nil, &rows)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, rows)

	var employees []EmployeeDTO
	resp = doJSON(t, srv, http.MethodGet, "/api/employees", nil, &employees)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, employees)
}
