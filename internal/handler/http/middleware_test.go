package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-catalog-mirror/internal/logger"
	"github.com/MKhiriev/go-catalog-mirror/models"
)

func TestWithTraceID(t *testing.T) {
	const given = "8a1c4e2e-3b7f-4f0a-9d55-0c5b1f7a2d10"

	tests := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "keeps valid id", header: given, wantSame: true},
		{name: "generates when missing", header: ""},
		{name: "replaces garbage", header: "not-a-uuid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
			if tt.header != "" {
				req.Header.Set(traceIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			require.True(t, called)
			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, given, got)
				return
			}
			assert.NotEqual(t, tt.header, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}

func TestAccessLog_ContainsRouteAndTrace(t *testing.T) {
	var buf bytes.Buffer
	env := newTestEnv(t, fakeAddresses{"r9": "somewhere"})
	env.handler.logger = &logger.Logger{Logger: zerolog.New(&buf)}

	req := httptest.NewRequest(http.MethodGet, "/api/addresses/r9", nil)
	req.Header.Set(traceIDHeader, "8a1c4e2e-3b7f-4f0a-9d55-0c5b1f7a2d10")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := buf.String()
	for _, want := range []string{
		`"level":"info"`,
		`"uri":"/api/addresses/r9"`,
		`"route":"/api/addresses/{id}"`,
		`"method":"GET"`,
		`"status":200`,
		`"trace_id":"8a1c4e2e-3b7f-4f0a-9d55-0c5b1f7a2d10"`,
	} {
		assert.Contains(t, out, want)
	}
}

func TestAccessLog_ServerErrorIsWarning(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(context.Background(), nil, nil, models.AppBuildInfo{}, &logger.Logger{Logger: zerolog.New(&buf)})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	rec := httptest.NewRecorder()
	h.withTraceID(h.withLogging(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"status":502`)
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusBadRequest) // игнорируется
	n, err := w.Write([]byte("ok"))

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, http.StatusAccepted, w.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 2, w.size)
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("a"))
	_, _ = w.Write([]byte("bc"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 3, w.size)
}

func TestResponseWriter_FlushAndUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.Flush()

	assert.True(t, rec.Flushed)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Same(t, rec, w.Unwrap())
}
