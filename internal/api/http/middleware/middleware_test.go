package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adamitejs/service-auth/internal/logger"
	"github.com/adamitejs/service-auth/internal/testutil"
)

func TestLogging_Handle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithWriter(&buf, 0, logger.FormatJSON))

	h := lg.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/commands/auth.createUser?secret=hidden", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	assert.Contains(t, out, `"path":"/commands/auth.createUser"`)
	assert.Contains(t, out, `"status":418`)
	assert.NotContains(t, out, "hidden")
}

func TestLogging_Handle_DefaultStatus(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg := NewLogging(logger.NewWithWriter(&buf, 0, logger.FormatJSON))

	h := lg.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRecovery_Handle(t *testing.T) {
	t.Parallel()

	m := NewRecovery(testutil.MakeNoopLogger())
	h := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRecovery_Handle_NoPanic(t *testing.T) {
	t.Parallel()

	m := NewRecovery(testutil.MakeNoopLogger())
	h := m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}
