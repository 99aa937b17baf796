// Package api provides HTTP API handlers for the Mudra particle field system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/shape"
	"github.com/ayusman/mudra/internal/store"
)

// PresetHandler handles HTTP requests for preset resources.
type PresetHandler struct {
	store *store.Store
}

// NewPresetHandler creates a new PresetHandler with the given store.
func NewPresetHandler(s *store.Store) *PresetHandler {
	return &PresetHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *PresetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/presets or /api/presets/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/presets")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type colorPayload struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
}

type presetRequest struct {
	Name              string                  `json:"name"`
	Strategy          string                  `json:"strategy"`
	ParticleCount     int                     `json:"particle_count"`
	BlendRate         float64                 `json:"blend_rate"`
	ColorBlendRate    float64                 `json:"color_blend_rate"`
	InteractionRadius float64                 `json:"interaction_radius"`
	RepelGain         float64                 `json:"repel_gain"`
	AttractGain       float64                 `json:"attract_gain"`
	Colors            map[string]colorPayload `json:"colors"`
}

type presetResponse struct {
	ID                string                  `json:"id"`
	Name              string                  `json:"name"`
	Strategy          string                  `json:"strategy"`
	ParticleCount     int                     `json:"particle_count"`
	BlendRate         float64                 `json:"blend_rate"`
	ColorBlendRate    float64                 `json:"color_blend_rate"`
	InteractionRadius float64                 `json:"interaction_radius"`
	RepelGain         float64                 `json:"repel_gain"`
	AttractGain       float64                 `json:"attract_gain"`
	Colors            map[string]colorPayload `json:"colors"`
	CreatedAt         string                  `json:"created_at"`
	UpdatedAt         string                  `json:"updated_at"`
}

type listPresetsResponse struct {
	Presets []presetResponse `json:"presets"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Preset to a presetResponse.
func toResponse(p *store.Preset) presetResponse {
	colors := make(map[string]colorPayload, len(p.Colors))
	for label, c := range p.Colors {
		colors[string(label)] = colorPayload{R: c.R, G: c.G, B: c.B}
	}
	return presetResponse{
		ID:                p.ID,
		Name:              p.Name,
		Strategy:          p.Strategy,
		ParticleCount:     p.ParticleCount,
		BlendRate:         p.BlendRate,
		ColorBlendRate:    p.ColorBlendRate,
		InteractionRadius: p.InteractionRadius,
		RepelGain:         p.RepelGain,
		AttractGain:       p.AttractGain,
		Colors:            colors,
		CreatedAt:         p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:         p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// toPalette converts request colors to a shape.Palette, rejecting unknown labels.
func toPalette(colors map[string]colorPayload) (shape.Palette, error) {
	if len(colors) == 0 {
		return nil, nil
	}
	palette := make(shape.Palette, len(colors))
	for name, c := range colors {
		label := gesture.Label(name)
		if !label.Valid() {
			return nil, errors.New("unknown gesture label " + name)
		}
		palette[label] = shape.RGB{R: c.R, G: c.G, B: c.B}
	}
	return palette, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/presets and returns all presets.
func (h *PresetHandler) list(w http.ResponseWriter, r *http.Request) {
	presets, err := h.store.Presets().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list presets")
		return
	}

	response := listPresetsResponse{
		Presets: make([]presetResponse, 0, len(presets)),
	}
	for _, p := range presets {
		response.Presets = append(response.Presets, toResponse(p))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/presets/{id} and returns a single preset.
func (h *PresetHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	preset, err := h.store.Presets().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get preset")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(preset))
}

// create handles POST /api/presets and creates a new preset.
func (h *PresetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = config.StrategyCPU
	}
	if strategy != config.StrategyCPU && strategy != config.StrategyPingPong {
		writeError(w, http.StatusBadRequest, "Invalid strategy")
		return
	}

	palette, err := toPalette(req.Colors)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	preset := &store.Preset{
		ID:                uuid.New().String(),
		Name:              req.Name,
		Strategy:          strategy,
		ParticleCount:     req.ParticleCount,
		BlendRate:         req.BlendRate,
		ColorBlendRate:    req.ColorBlendRate,
		InteractionRadius: req.InteractionRadius,
		RepelGain:         req.RepelGain,
		AttractGain:       req.AttractGain,
		Colors:            palette,
	}

	if err := h.store.Presets().Create(preset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create preset")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(preset))
}

// update handles PUT /api/presets/{id} and updates an existing preset.
func (h *PresetHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	preset, err := h.store.Presets().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get preset")
		return
	}

	var req presetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name != "" {
		preset.Name = req.Name
	}
	if req.Strategy != "" {
		if req.Strategy != config.StrategyCPU && req.Strategy != config.StrategyPingPong {
			writeError(w, http.StatusBadRequest, "Invalid strategy")
			return
		}
		preset.Strategy = req.Strategy
	}
	if req.ParticleCount != 0 {
		preset.ParticleCount = req.ParticleCount
	}
	if req.BlendRate != 0 {
		preset.BlendRate = req.BlendRate
	}
	if req.ColorBlendRate != 0 {
		preset.ColorBlendRate = req.ColorBlendRate
	}
	if req.InteractionRadius != 0 {
		preset.InteractionRadius = req.InteractionRadius
	}
	if req.RepelGain != 0 {
		preset.RepelGain = req.RepelGain
	}
	if req.AttractGain != 0 {
		preset.AttractGain = req.AttractGain
	}
	if req.Colors != nil {
		palette, err := toPalette(req.Colors)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		preset.Colors = palette
	}

	if err := h.store.Presets().Update(preset); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update preset")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(preset))
}

// delete handles DELETE /api/presets/{id} and removes a preset.
func (h *PresetHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Presets().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Preset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
