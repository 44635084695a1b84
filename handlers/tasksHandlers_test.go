package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"tarefas-producao/database"
	"tarefas-producao/models"
	"tarefas-producao/repository"
	"tarefas-producao/services"
	"tarefas-producao/utilities"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	db, err := database.ConnectSQLite(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.Migrate(ctx, db, database.SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	logger := utilities.Discard()
	store := repository.NewSQLTaskStore(db, database.SQLite, logger)
	h := NewTaskHandler(services.NewTaskService(store, logger), logger)

	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.HandleFunc("/health", HealthHandler(db, logger)).Methods("GET")
	h.Register(r.PathPrefix("/api/tasks").Subrouter())
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestTaskHandlers_CRUD(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, "POST", "/api/tasks", `{"taskName":"Cable Installation","responsible":"Operator A","startDate":"2024-01-10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("create: want 200 got %d (%s)", rec.Code, rec.Body)
	}
	created := decode[models.TaskDTO](t, rec)
	if *created.Status != models.StatusNotStarted || created.StartDate.String() != "2024-01-10" {
		t.Fatalf("unexpected created task: %+v", created)
	}
	path := "/api/tasks/" + jsonID(created.ID)

	rec = do(t, h, "GET", path, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: want 200 got %d", rec.Code)
	}

	rec = do(t, h, "PUT", path, `{"taskName":"Cable Installation v2","responsible":"Operator A"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update: want 200 got %d (%s)", rec.Code, rec.Body)
	}
	updated := decode[models.TaskDTO](t, rec)
	if updated.TaskName != "Cable Installation v2" || *updated.Status != models.StatusNotStarted {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	rec = do(t, h, "GET", "/api/tasks", "")
	if tasks := decode[[]models.TaskDTO](t, rec); len(tasks) != 1 {
		t.Fatalf("want 1 task, got %d", len(tasks))
	}

	rec = do(t, h, "DELETE", path, "")
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("delete: want 200 with empty body, got %d %q", rec.Code, rec.Body)
	}
	if rec = do(t, h, "GET", path, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: want 404 got %d", rec.Code)
	}
}

func TestTaskHandlers_NotFound(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct{ method, body string }{
		{"GET", ""},
		{"PUT", `{"taskName":"x"}`},
		{"DELETE", ""},
	}
	for _, tc := range cases {
		if rec := do(t, h, tc.method, "/api/tasks/404", tc.body); rec.Code != http.StatusNotFound {
			t.Errorf("%s: want 404 got %d", tc.method, rec.Code)
		}
	}
}

func TestTaskHandlers_BadRequest(t *testing.T) {
	h := newTestRouter(t)

	cases := []struct{ name, method, path, body string }{
		{"malformed json", "POST", "/api/tasks", `{"taskName":`},
		{"unknown status", "POST", "/api/tasks", `{"taskName":"x","status":"DONE"}`},
		{"defaulted create malformed", "POST", "/api/tasks/create", `not json`},
		{"bad filter", "GET", "/api/tasks?status=DONE", ""},
		{"bad critical filter", "GET", "/api/tasks?critical=maybe", ""},
		{"id overflow", "GET", "/api/tasks/99999999999999999999", ""},
	}
	for _, tc := range cases {
		if rec := do(t, h, tc.method, tc.path, tc.body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: want 400 got %d", tc.name, rec.Code)
		}
	}
}

func TestTaskHandlers_CreateWithDefaults(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, "POST", "/api/tasks/create", `{"taskName":"UPS Setup","responsible":"Operator B"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200 got %d (%s)", rec.Code, rec.Body)
	}
	got := decode[models.TaskDTO](t, rec)
	if *got.Status != models.StatusNotStarted || *got.Priority != models.PriorityMedium ||
		*got.Department != "Production" || *got.IsCritical || *got.CompletionPercentage != 0 ||
		*got.Category != "General" || *got.EstimatedHours != 8 {
		t.Fatalf("defaults missing: %+v", got)
	}
}

func TestTaskHandlers_EmptyPriority(t *testing.T) {
	h := newTestRouter(t)
	body := `{"taskName":"x","responsible":"y","priority":""}`

	for _, path := range []string{"/api/tasks", "/api/tasks/create"} {
		rec := do(t, h, "POST", path, body)
		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s: want 200 got %d (%s)", path, rec.Code, rec.Body)
		}
		got := decode[models.TaskDTO](t, rec)
		if got.Priority == nil || *got.Priority != models.PriorityMedium {
			t.Fatalf("POST %s: want priority %s, got %v", path, models.PriorityMedium, got.Priority)
		}
	}

	rec := do(t, h, "PUT", "/api/tasks/1", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: want 200 got %d (%s)", rec.Code, rec.Body)
	}
	if got := decode[models.TaskDTO](t, rec); got.Priority != nil {
		t.Fatalf("PUT: empty priority should clear the field, got %q", *got.Priority)
	}

	rec = do(t, h, "GET", "/api/tasks?priority=MEDIUM", "")
	if tasks := decode[[]models.TaskDTO](t, rec); len(tasks) != 1 {
		t.Fatalf("priority filter: want 1 got %d", len(tasks))
	}
}

func TestTaskHandlers_InitializeAndSummary(t *testing.T) {
	h := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := do(t, h, "POST", "/api/tasks/initialize", "")
		if rec.Code != http.StatusOK || rec.Body.String() != SampleDataMessage {
			t.Fatalf("initialize #%d: got %d %q", i, rec.Code, rec.Body)
		}
	}

	rec := do(t, h, "GET", "/api/tasks/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: want 200 got %d", rec.Code)
	}
	summary := decode[models.TaskSummary](t, rec)
	want := models.TaskSummary{TotalTasks: 4, CompletedTasks: 1, InProgressTasks: 1, OnHoldTasks: 1, NotStartedTasks: 1}
	if summary != want {
		t.Fatalf("want %+v got %+v", want, summary)
	}

	rec = do(t, h, "GET", "/api/tasks?department=IT", "")
	if tasks := decode[[]models.TaskDTO](t, rec); len(tasks) != 2 {
		t.Fatalf("department filter: want 2 got %d", len(tasks))
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	h := newTestRouter(t)

	rec := do(t, h, "GET", "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: want 200 got %d", rec.Code)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected generated %s header", RequestIDHeader)
	}

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("want propagated request id, got %q", got)
	}
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler_Unavailable(t *testing.T) {
	var out, errOut bytes.Buffer
	h := HealthHandler(downDB{}, utilities.NewLogger(&out, &errOut, false))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503 got %d", rec.Code)
	}
	if !strings.Contains(errOut.String(), "connection refused") {
		t.Fatalf("expected failure on injected logger, got %q", errOut.String())
	}
}
