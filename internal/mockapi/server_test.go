package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasksync/internal/mockapi"
	"tasksync/internal/service"
)

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeTasks(t *testing.T, rec *httptest.ResponseRecorder) []service.Task {
	t.Helper()
	var tasks []service.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	return tasks
}

func TestServer_EmptyListIsArray(t *testing.T) {
	srv := mockapi.New(nil)

	rec := do(t, srv.Handler(), http.MethodGet, "/tasks", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestServer_CreateAssignsIDAndDefaults(t *testing.T) {
	srv := mockapi.New(nil)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/tasks", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	tasks := decodeTasks(t, do(t, h, http.MethodGet, "/tasks", ""))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.False(t, tasks[0].Completed)
	assert.False(t, tasks[0].ID.IsZero())
}

func TestServer_CreateRejectsBadInput(t *testing.T) {
	srv := mockapi.New(nil)
	h := srv.Handler()

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/tasks", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/tasks", `{"title":"  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/tasks", `{}`).Code)
	assert.Empty(t, srv.Tasks())
}

func TestServer_UpdateAndDelete(t *testing.T) {
	srv := mockapi.New(nil)
	h := srv.Handler()
	id := srv.Seed("Complete Task X", false)

	rec := do(t, h, http.MethodPut, "/tasks/"+id.String(), `{"completed":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.Tasks()[0].Completed)

	rec = do(t, h, http.MethodDelete, "/tasks/"+id.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, srv.Tasks())
}

func TestServer_UnknownIDIsNotFound(t *testing.T) {
	srv := mockapi.New(nil)
	h := srv.Handler()

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/tasks/nope", `{"completed":true}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/tasks/nope", "").Code)
}

func TestServer_FailNextIsConsumedOnce(t *testing.T) {
	srv := mockapi.New(nil)
	h := srv.Handler()
	srv.FailNext(http.StatusInternalServerError)

	assert.Equal(t, http.StatusInternalServerError, do(t, h, http.MethodGet, "/tasks", "").Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/tasks", "").Code)
	assert.Equal(t, 2, srv.Hits(http.MethodGet, "/tasks"))
}

func TestServer_KeepsInsertionOrder(t *testing.T) {
	srv := mockapi.New(nil)
	srv.Seed("first", false)
	second := srv.Seed("second", true)
	srv.Seed("third", false)

	h := srv.Handler()
	do(t, h, http.MethodDelete, "/tasks/"+second.String(), "")

	var titles []string
	for _, task := range srv.Tasks() {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"first", "third"}, titles)
}

func TestServer_CORSPreflight(t *testing.T) {
	srv := mockapi.New(nil)

	req := httptest.NewRequest(http.MethodOptions, "/tasks", nil)
	req.Header.Set("Origin", "http://example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
