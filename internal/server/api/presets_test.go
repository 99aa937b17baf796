package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/store"
)

// newTestStore creates a new Store with a temporary database for testing.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-api-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPresetHandler_List(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	preset := &store.Preset{
		ID:            "test-preset-1",
		Name:          "stage",
		Strategy:      "cpu",
		ParticleCount: 30000,
		BlendRate:     0.08,
		Colors: shape.Palette{
			"heart": shape.RGB{R: 1, G: 0.2, B: 0.4},
		},
	}
	if err := s.Presets().Create(preset); err != nil {
		t.Fatalf("failed to create preset: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var response listPresetsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(response.Presets))
	}

	if response.Presets[0].ID != "test-preset-1" {
		t.Errorf("expected preset ID 'test-preset-1', got %q", response.Presets[0].ID)
	}

	if response.Presets[0].Colors["heart"].R != 1 {
		t.Errorf("expected heart color R=1, got %v", response.Presets[0].Colors["heart"].R)
	}
}

func TestPresetHandler_Create(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	reqBody := presetRequest{
		Name:          "performance",
		Strategy:      "pingpong",
		ParticleCount: 262144,
		BlendRate:     0.05,
		Colors: map[string]colorPayload{
			"fireworks": {R: 1, G: 0.8, B: 0.1},
		},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/presets", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var response presetResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.ID == "" {
		t.Error("expected server-assigned preset ID")
	}
	if response.Strategy != "pingpong" {
		t.Errorf("expected strategy 'pingpong', got %q", response.Strategy)
	}

	// Verify it landed in the store
	stored, err := s.Presets().GetByID(response.ID)
	if err != nil {
		t.Fatalf("failed to fetch created preset: %v", err)
	}
	if stored.Name != "performance" {
		t.Errorf("expected stored name 'performance', got %q", stored.Name)
	}
}

func TestPresetHandler_CreateValidation(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	tests := []struct {
		name string
		body presetRequest
	}{
		{"missing name", presetRequest{Strategy: "cpu"}},
		{"unknown strategy", presetRequest{Name: "x", Strategy: "gpu"}},
		{"unknown color label", presetRequest{
			Name:   "x",
			Colors: map[string]colorPayload{"wave": {R: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/presets", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
		})
	}
}

func TestPresetHandler_GetMissing(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/presets/no-such-id", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestPresetHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	preset := &store.Preset{
		ID:            "test-preset-2",
		Name:          "draft",
		Strategy:      "cpu",
		ParticleCount: 10000,
	}
	if err := s.Presets().Create(preset); err != nil {
		t.Fatalf("failed to create preset: %v", err)
	}

	reqBody := presetRequest{
		Name:          "final",
		ParticleCount: 50000,
		Colors: map[string]colorPayload{
			"saturn": {R: 0.9, G: 0.7, B: 0.3},
		},
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPut, "/api/presets/test-preset-2", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	stored, err := s.Presets().GetByID("test-preset-2")
	if err != nil {
		t.Fatalf("failed to fetch updated preset: %v", err)
	}
	if stored.Name != "final" || stored.ParticleCount != 50000 {
		t.Errorf("update not persisted: name=%q count=%d", stored.Name, stored.ParticleCount)
	}
	if stored.Strategy != "cpu" {
		t.Errorf("omitted strategy must be preserved, got %q", stored.Strategy)
	}
	if _, ok := stored.Colors["saturn"]; !ok {
		t.Error("expected saturn palette entry after update")
	}
}

func TestPresetHandler_Delete(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	preset := &store.Preset{ID: "test-preset-3", Name: "gone", Strategy: "cpu"}
	if err := s.Presets().Create(preset); err != nil {
		t.Fatalf("failed to create preset: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/presets/test-preset-3", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/presets/test-preset-3", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d on repeat delete, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestPresetHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewPresetHandler(s)

	req := httptest.NewRequest(http.MethodPatch, "/api/presets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
