package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/hermes"
	"github.com/MikeSquared-Agency/Frontier/internal/metrics"
	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
)

// FrontierHandler serves extractions over points posted inline.
type FrontierHandler struct {
	pub     *hermes.Publisher
	metrics *metrics.Metrics
	cfg     config.FrontierConfig
}

func NewFrontierHandler(pub *hermes.Publisher, m *metrics.Metrics, cfg config.FrontierConfig) *FrontierHandler {
	return &FrontierHandler{pub: pub, metrics: m, cfg: cfg}
}

type FrontierRequest struct {
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
	MaxX *bool     `json:"max_x,omitempty"`
	MaxY *bool     `json:"max_y,omitempty"`
}

type FrontierResponse struct {
	Points  []pareto.Point `json:"points"`
	Indices []int          `json:"indices"`
}

type LookupRequest struct {
	FrontierRequest
	AtX *float64 `json:"at_x,omitempty"`
	AtY *float64 `json:"at_y,omitempty"`
}

type LookupResponse struct {
	YAtX *float64 `json:"y_at_x"`
	XAtY *float64 `json:"x_at_y"`
}

// statusFor maps extraction errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pareto.ErrShapeMismatch):
		return http.StatusBadRequest
	case errors.Is(err, pareto.ErrNonFiniteInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *FrontierHandler) decode(w http.ResponseWriter, r *http.Request, req *FrontierRequest) (pareto.Direction, pareto.Direction, bool) {
	if len(req.X) > h.cfg.MaxPoints && h.cfg.MaxPoints > 0 {
		writeError(w, http.StatusRequestEntityTooLarge, "too many points")
		return 0, 0, false
	}
	xDir, yDir, err := directions(r, req.MaxX, req.MaxY, h.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid direction: "+err.Error())
		return 0, 0, false
	}
	return xDir, yDir, true
}

func (h *FrontierHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req FrontierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	xDir, yDir, ok := h.decode(w, r, &req)
	if !ok {
		return
	}

	start := time.Now()
	pairs, err := pareto.Pair(req.X, req.Y)
	if err != nil {
		h.metrics.ObserveComputation("points", start, len(req.X), 0, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	points := pareto.FrontierOf(pairs, xDir, yDir)
	h.metrics.ObserveComputation("points", start, len(pairs), len(points), nil)

	indices := make([]int, len(points))
	for i, p := range points {
		indices[i] = p.Index
	}
	h.pub.Publish(hermes.SubjectAdhocComputed, hermes.FrontierComputedEvent{
		XDirection:   xDir.String(),
		YDirection:   yDir.String(),
		InputPoints:  len(pairs),
		FrontierSize: len(points),
		Indices:      indices,
		DurationMs:   float64(time.Since(start).Microseconds()) / 1000,
		Timestamp:    time.Now().UTC(),
	})

	writeJSON(w, http.StatusOK, FrontierResponse{Points: points, Indices: indices})
}

func (h *FrontierHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AtX == nil && req.AtY == nil {
		writeError(w, http.StatusBadRequest, "at_x or at_y required")
		return
	}
	xDir, yDir, ok := h.decode(w, r, &req.FrontierRequest)
	if !ok {
		return
	}

	start := time.Now()
	q, err := pareto.NewQuery(req.X, req.Y, xDir, yDir)
	if err != nil {
		h.metrics.ObserveComputation("query", start, len(req.X), 0, err)
		writeError(w, statusFor(err), err.Error())
		return
	}
	h.metrics.ObserveComputation("query", start, len(req.X), q.Len(), nil)

	var resp LookupResponse
	if req.AtX != nil {
		resp.YAtX = nullable(q.LookupX(*req.AtX))
		h.metrics.ObserveLookup("x", resp.YAtX != nil)
	}
	if req.AtY != nil {
		resp.XAtY = nullable(q.LookupY(*req.AtY))
		h.metrics.ObserveLookup("y", resp.XAtY != nil)
	}
	writeJSON(w, http.StatusOK, resp)
}
