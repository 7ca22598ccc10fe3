package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/petalstack/florist/internal/api/middleware"
	"github.com/petalstack/florist/internal/auth"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env["error"].(map[string]interface{})["code"].(string)
}

// --- RequestID ---

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestID_ReusesClientID(t *testing.T) {
	h := middleware.RequestID(okHandler)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-abc-123")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	assert.Equal(t, "client-abc-123", w.Header().Get("X-Request-ID"))
}

func TestRequestID_ReplacesInvalidClientID(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"too long", strings.Repeat("a", 200)},
		{"contains space", "bad id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := middleware.RequestID(okHandler)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Request-ID", tt.id)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
			assert.NoError(t, err)
		})
	}
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.Equal(t, "", middleware.GetRequestID(req.Context()))
}

// --- Recovery ---

func TestRecovery_NoPanic(t *testing.T) {
	w := httptest.NewRecorder()

	middleware.Recovery(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRecovery_HandlesPanic(t *testing.T) {
	panicker := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	w := httptest.NewRecorder()

	middleware.RequestID(middleware.Recovery(panicker)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

// --- RequireAPIKey ---

func TestRequireAPIKey(t *testing.T) {
	gen := auth.NewService("", bcrypt.MinCost)
	rawKey, hash, err := gen.GenerateKey()
	require.NoError(t, err)
	h := middleware.RequireAPIKey(auth.NewService(hash, bcrypt.MinCost))(okHandler)

	tests := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "flr_wrong", http.StatusUnauthorized},
		{"valid key", rawKey, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/flowers", nil)
			if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "UNAUTHORIZED", errorCode(t, w))
			}
		})
	}
}

func TestRequireAPIKey_DisabledPassesThrough(t *testing.T) {
	h := middleware.RequireAPIKey(auth.NewService("", bcrypt.MinCost))(okHandler)
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/flowers/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMutatingOnly_SkipsSafeMethods(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})
	}
	h := middleware.MutatingOnly(deny)(okHandler)

	for method, want := range map[string]int{
		http.MethodGet:    http.StatusOK,
		http.MethodHead:   http.StatusOK,
		http.MethodPost:   http.StatusForbidden,
		http.MethodPut:    http.StatusForbidden,
		http.MethodDelete: http.StatusForbidden,
	} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(method, "/", nil))
		assert.Equal(t, want, w.Code, method)
	}
}

// --- RateLimit ---

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	h := middleware.RateLimit(0.001, 2)(okHandler)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "RATE_LIMITED", errorCode(t, w))
			assert.Equal(t, "1", w.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	h := middleware.RateLimit(0, 0)(okHandler)

	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
}

// --- Logging ---

func TestLogging_RecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	teapot := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	w := httptest.NewRecorder()

	middleware.Logging(logger)(teapot).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flowers", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "handled request", line["msg"])
	assert.Equal(t, "/flowers", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
}

func TestLogging_RecordsBytesAndDefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	var flushable bool
	hello := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, flushable = w.(http.Flusher)
		_, _ = w.Write([]byte("hello"))
	})
	w := httptest.NewRecorder()

	middleware.Logging(logger)(hello).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flowers", nil))

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, float64(http.StatusOK), line["status"])
	assert.Equal(t, float64(5), line["bytes"])
	assert.True(t, flushable, "wrapped writer should still flush")
	assert.Equal(t, "hello", w.Body.String())
}
