package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	posapp "github.com/retailpos/backend/internal/application/pos"
	"github.com/retailpos/backend/internal/domain/pos"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memorySnapshotStore keeps the registry snapshot in memory
type memorySnapshotStore struct {
	mu       sync.Mutex
	snapshot *pos.RegistrySnapshot
}

func (s *memorySnapshotStore) Load(ctx context.Context) (*pos.RegistrySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return &pos.RegistrySnapshot{}, nil
	}
	return s.snapshot, nil
}

func (s *memorySnapshotStore) Save(ctx context.Context, snapshot *pos.RegistrySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	return nil
}

func newSessionTestServer(t *testing.T) (*gin.Engine, *posapp.SessionService) {
	t.Helper()

	sessions := posapp.NewSessionService(&memorySnapshotStore{})
	require.NoError(t, sessions.Restore(context.Background()))

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSessionHandler(sessions).RegisterRoutes(api)
	return engine, sessions
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestSessionHandler_Start(t *testing.T) {
	t.Run("opens a session and makes it active", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)

		w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"customerName": "Walk-in"})

		require.Equal(t, http.StatusCreated, w.Code)
		envelope := decodeEnvelope(t, w)
		assert.Equal(t, true, envelope["success"])
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "Walk-in", data["customerName"])
		assert.Equal(t, true, data["active"])
		assert.Equal(t, "0.00", data["total"])
	})

	t.Run("rejects a missing customer name", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)

		w := doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_GetActive(t *testing.T) {
	t.Run("conflicts when no session is open", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)

		w := doJSON(t, engine, http.MethodGet, "/api/v1/sessions/active", nil)

		require.Equal(t, http.StatusConflict, w.Code)
		envelope := decodeEnvelope(t, w)
		errInfo := envelope["error"].(map[string]any)
		assert.Equal(t, "NO_ACTIVE_SESSION", errInfo["code"])
	})

	t.Run("returns the most recently started session", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)
		doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"customerName": "First"})
		doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"customerName": "Second"})

		w := doJSON(t, engine, http.MethodGet, "/api/v1/sessions/active", nil)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w)["data"].(map[string]any)
		assert.Equal(t, "Second", data["customerName"])
	})
}

func TestSessionHandler_End(t *testing.T) {
	t.Run("unknown session yields 404", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)

		w := doJSON(t, engine, http.MethodDelete, "/api/v1/sessions/7b9f7a39-4c7a-4e6e-9f6b-111111111111", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		errInfo := decodeEnvelope(t, w)["error"].(map[string]any)
		assert.Equal(t, "SESSION_NOT_FOUND", errInfo["code"])
	})

	t.Run("malformed id yields 400", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)

		w := doJSON(t, engine, http.MethodDelete, "/api/v1/sessions/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionHandler_RemoveItem(t *testing.T) {
	t.Run("line not in cart yields 404", func(t *testing.T) {
		engine, _ := newSessionTestServer(t)
		doJSON(t, engine, http.MethodPost, "/api/v1/sessions", gin.H{"customerName": "Walk-in"})

		w := doJSON(t, engine, http.MethodDelete, "/api/v1/sessions/active/items/missing", nil)

		require.Equal(t, http.StatusNotFound, w.Code)
		errInfo := decodeEnvelope(t, w)["error"].(map[string]any)
		assert.Equal(t, "LINE_NOT_FOUND", errInfo["code"])
	})
}
