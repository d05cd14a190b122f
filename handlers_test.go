package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockapi/internal/auth"
	"mockapi/internal/logging"
	"mockapi/internal/mockgen"
	"mockapi/internal/store"
)

const (
	aliceKey = "alice-key"
	bobKey   = "bob-key"
)

var testNow = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

// spyStore counts Load calls on top of a real store.
type spyStore struct {
	store.Store
	loads atomic.Int32
}

func (s *spyStore) Load(ctx context.Context, subject, endpoint string) ([]mockgen.Field, error) {
	s.loads.Add(1)
	return s.Store.Load(ctx, subject, endpoint)
}

type testEnv struct {
	router http.Handler
	store  *spyStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	spy := &spyStore{Store: store.NewMemoryStore()}
	reg := prometheus.NewRegistry()
	engine := mockgen.NewEngine(mockgen.WithSeed(7), mockgen.WithClock(func() time.Time { return testNow }))
	h := NewHandler(spy, engine, logging.Nop(), newMetrics(reg), mockgen.MaxCount)
	verifier := auth.NewAPIKeyVerifier([]string{"alice:" + aliceKey, "bob:" + bobKey})
	return &testEnv{router: newRouter(h, verifier, reg, "/api"), store: spy}
}

func (e *testEnv) do(method, path, key, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) saveUsers(t *testing.T, key string) {
	t.Helper()
	rec := e.do(http.MethodPost, "/api/users/config", key,
		`{"fields":[{"name":"name","type":"string"},{"name":"age","type":"number"},{"name":"FirstName","type":"string"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

type recordsBody struct {
	Data       []map[string]any   `json:"data"`
	Pagination mockgen.Pagination `json:"pagination"`
}

func decodeRecords(t *testing.T, rec *httptest.ResponseRecorder) recordsBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body recordsBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetRecords_Shape(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	body := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=3", aliceKey, ""))
	require.Len(t, body.Data, 3)
	assert.Equal(t, mockgen.Pagination{Count: 3, Total: 3}, body.Pagination)

	for i, r := range body.Data {
		assert.Equal(t, "users_"+strconv.Itoa(i+1), r["id"])
		assert.Equal(t, "2024-03-01T12:30:00.000Z", r["createdAt"])
		assert.Equal(t, r["createdAt"], r["updatedAt"])
		assert.IsType(t, "", r["name"])
		assert.IsType(t, float64(0), r["age"], "number fields round-trip as JSON numbers")
		assert.Contains(t, r, "FirstName", "declared case is kept")
	}
}

func TestGetRecords_KeyOrder(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	rec := env.do(http.MethodGet, "/api/users?count=1", aliceKey, "")
	require.Equal(t, http.StatusOK, rec.Code)
	raw := rec.Body.String()
	order := []string{`"id"`, `"createdAt"`, `"updatedAt"`, `"name"`, `"age"`, `"FirstName"`}
	last := -1
	for _, k := range order {
		idx := strings.Index(raw, k)
		require.Greater(t, idx, last, "key %s out of order in %s", k, raw)
		last = idx
	}
}

func TestGetRecords_CountClamping(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	tests := []struct {
		query string
		want  int
	}{
		{"?count=0", 1},
		{"?count=500", 100},
		{"?count=-5", 1},
		{"?count=7", 7},
		{"?count=abc", 100},
		{"", 100},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			body := decodeRecords(t, env.do(http.MethodGet, "/api/users"+tt.query, aliceKey, ""))
			assert.Len(t, body.Data, tt.want)
			assert.Equal(t, tt.want, body.Pagination.Count)
		})
	}
}

func TestGetRecords_Select(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	body := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=4&select=AGE,unknown", aliceKey, ""))
	require.Len(t, body.Data, 4)
	for _, r := range body.Data {
		assert.Len(t, r, 2)
		assert.Contains(t, r, "id")
		assert.Contains(t, r, "age")
	}
}

func TestGetRecords_Filters(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	t.Run("id substring keeps every record", func(t *testing.T) {
		body := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=5&id=USERS_", aliceKey, ""))
		assert.Len(t, body.Data, 5)
		assert.Equal(t, mockgen.Pagination{Count: 5, Total: 5}, body.Pagination)
	})

	t.Run("exact id", func(t *testing.T) {
		body := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=20&id=users_12", aliceKey, ""))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "users_12", body.Data[0]["id"])
	})

	t.Run("no match", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/users?name=zzzz-no-such-value", aliceKey, "")
		body := decodeRecords(t, rec)
		assert.Empty(t, body.Data)
		assert.Equal(t, mockgen.Pagination{Count: 0, Total: 0}, body.Pagination)
		assert.Contains(t, rec.Body.String(), `"data":[]`)
	})

	t.Run("declared case field filtered by lower-case key", func(t *testing.T) {
		all := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=1", aliceKey, ""))
		first, ok := all.Data[0]["FirstName"].(string)
		require.True(t, ok)
		body := decodeRecords(t, env.do(http.MethodGet, "/api/users?count=100&firstname="+first, aliceKey, ""))
		require.NotEmpty(t, body.Data)
		for _, r := range body.Data {
			assert.Contains(t, strings.ToLower(r["FirstName"].(string)), strings.ToLower(first))
		}
	})
}

func TestGetRecords_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/nothing", aliceKey, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"API configuration not found"}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/nothing/config", aliceKey, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnauthenticated_NoStoreAccess(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	for _, key := range []string{"", "wrong-key"} {
		rec := env.do(http.MethodGet, "/api/users", key, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

		rec = env.do(http.MethodPost, "/api/users/config", key, `{"fields":[]}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	assert.Zero(t, env.store.loads.Load())
}

func TestSaveConfig_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"not json", "/api/users/config", `fields: nope`},
		{"fields missing", "/api/users/config", `{}`},
		{"fields not array", "/api/users/config", `{"fields":"name"}`},
		{"fields object", "/api/users/config", `{"fields":{"name":"string"}}`},
		{"body is array", "/api/users/config", `[{"name":"a","type":"string"}]`},
		{"trailing data", "/api/users/config", `{"fields":[]}{"fields":[]}`},
		{"blank name", "/api/users/config", `{"fields":[{"name":" ","type":"string"}]}`},
		{"duplicate name", "/api/users/config", `{"fields":[{"name":"a","type":"string"},{"name":"A","type":"number"}]}`},
		{"reserved name", "/api/users/config", `{"fields":[{"name":"id","type":"string"}]}`},
		{"bad endpoint", "/api/.hidden/config", `{"fields":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, tt.path, aliceKey, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}

	rec := env.do(http.MethodGet, "/api/", aliceKey, "")
	assert.JSONEq(t, `{"endpoints":[]}`, rec.Body.String(), "rejected saves store nothing")
}

func TestSaveConfig_EmptyFieldsAndOverwrite(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/bare/config", aliceKey, `{"fields":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeRecords(t, env.do(http.MethodGet, "/api/bare?count=2", aliceKey, ""))
	require.Len(t, body.Data, 2)
	assert.Len(t, body.Data[0], 3)

	rec = env.do(http.MethodPost, "/api/bare/config", aliceKey, `{"fields":[{"name":"active","type":"boolean"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeRecords(t, env.do(http.MethodGet, "/api/bare?count=2", aliceKey, ""))
	assert.IsType(t, true, body.Data[0]["active"])
}

func TestGetConfigAndList(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)
	rec := env.do(http.MethodPost, "/api/orders/config", aliceKey, `{"fields":[{"name":"total","type":"float"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/api/orders/config", aliceKey, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"endpoint":"orders","fields":[{"name":"total","type":"float"}]}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/", aliceKey, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"endpoints":["orders","users"]}`, rec.Body.String())
}

func TestSubjectIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	rec := env.do(http.MethodGet, "/api/users", bobKey, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/api/", bobKey, "")
	assert.JSONEq(t, `{"endpoints":[]}`, rec.Body.String())
}

func TestPreflight(t *testing.T) {
	env := newTestEnv(t)

	t.Run("cors preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)

		assert.Contains(t, []int{http.StatusOK, http.StatusNoContent}, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("bare options", func(t *testing.T) {
		rec := env.do(http.MethodOptions, "/api/users/config", "", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Empty(t, rec.Body.String())
	})

	assert.Zero(t, env.store.loads.Load())
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	env.saveUsers(t, aliceKey)

	rec := env.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mockapi_schemas_saved_total 1")
	assert.Contains(t, rec.Body.String(), `route="/api/{endpoint}/config"`)
}
