package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelsPerEnv(t *testing.T) {
	var buf bytes.Buffer

	New("local", &buf).Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")

	buf.Reset()
	New("dev", &buf).Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)

	buf.Reset()
	New("prod", &buf).Debug("hidden")
	assert.Empty(t, buf.String())
}

func TestMiddleware_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", &buf)

	handler := Middleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ready", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "/api/ready", entry["path"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, slog.LevelInfo.String(), entry["level"])
}

func TestMiddleware_ImplicitOK(t *testing.T) {
	var buf bytes.Buffer
	handler := Middleware(New("prod", &buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, float64(2), entry["bytes"])
}
