package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/hermes"
	"github.com/MikeSquared-Agency/Frontier/internal/metrics"
	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
	"github.com/MikeSquared-Agency/Frontier/internal/render"
	"github.com/MikeSquared-Agency/Frontier/internal/store"
)

type DatasetsHandler struct {
	store   store.Store
	pub     *hermes.Publisher
	metrics *metrics.Metrics
	cfg     config.FrontierConfig
	logger  *slog.Logger
}

func NewDatasetsHandler(s store.Store, pub *hermes.Publisher, m *metrics.Metrics, cfg config.FrontierConfig, logger *slog.Logger) *DatasetsHandler {
	return &DatasetsHandler{store: s, pub: pub, metrics: m, cfg: cfg, logger: logger}
}

type CreateDatasetRequest struct {
	Name   string            `json:"name"`
	XLabel string            `json:"x_label,omitempty"`
	YLabel string            `json:"y_label,omitempty"`
	Points []store.DataPoint `json:"points"`
}

// FrontierRow is a frontier point together with the stored row it came from.
type FrontierRow struct {
	Index int                    `json:"index"`
	X     float64                `json:"x"`
	Y     float64                `json:"y"`
	Row   map[string]interface{} `json:"row,omitempty"`
}

type DatasetFrontierResponse struct {
	DatasetID  uuid.UUID     `json:"dataset_id"`
	XDirection string        `json:"x_direction"`
	YDirection string        `json:"y_direction"`
	Points     []FrontierRow `json:"points"`
}

type DatasetLookupResponse struct {
	DatasetID uuid.UUID              `json:"dataset_id"`
	Axis      string                 `json:"axis"`
	At        float64                `json:"at"`
	Value     *float64               `json:"value"`
	Row       map[string]interface{} `json:"row,omitempty"`
}

func (h *DatasetsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || len(req.Points) == 0 {
		writeError(w, http.StatusBadRequest, "name and points required")
		return
	}
	if h.cfg.MaxPoints > 0 && len(req.Points) > h.cfg.MaxPoints {
		writeError(w, http.StatusRequestEntityTooLarge, "too many points")
		return
	}

	d := &store.Dataset{
		Name:   req.Name,
		XLabel: req.XLabel,
		YLabel: req.YLabel,
		Points: req.Points,
	}
	// Non-finite coordinates would poison every later query.
	xs, ys := d.Columns()
	if _, err := pareto.NewQuery(xs, ys, pareto.DefaultXDirection, pareto.DefaultYDirection); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if err := h.store.CreateDataset(r.Context(), d); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.pub.Publish(hermes.SubjectDatasetCreated(d.ID.String()), hermes.DatasetCreatedEvent{
		DatasetID:  d.ID.String(),
		Name:       d.Name,
		PointCount: d.PointCount,
		Timestamp:  time.Now().UTC(),
	})

	d.Points = nil
	writeJSON(w, http.StatusCreated, d)
}

func (h *DatasetsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.DatasetFilter{Name: r.URL.Query().Get("name")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	datasets, err := h.store.ListDatasets(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if datasets == nil {
		datasets = []*store.Dataset{}
	}
	writeJSON(w, http.StatusOK, datasets)
}

func (h *DatasetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DatasetsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dataset id")
		return
	}
	if err := h.store.DeleteDataset(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.pub.Publish(hermes.SubjectDatasetDeleted(id.String()), hermes.DatasetDeletedEvent{
		DatasetID: id.String(),
		Timestamp: time.Now().UTC(),
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id.String()})
}

func (h *DatasetsHandler) Frontier(w http.ResponseWriter, r *http.Request) {
	d, ok := h.load(w, r)
	if !ok {
		return
	}
	table, ok := h.table(w, r, d)
	if !ok {
		return
	}

	indices := table.FrontierIndices()
	rows := make([]FrontierRow, len(indices))
	for i, idx := range indices {
		p := d.Points[idx]
		rows[i] = FrontierRow{Index: idx, X: p.X, Y: p.Y, Row: p.Row}
	}
	xDir, yDir := table.Query().Directions()
	writeJSON(w, http.StatusOK, DatasetFrontierResponse{
		DatasetID:  d.ID,
		XDirection: xDir.String(),
		YDirection: yDir.String(),
		Points:     rows,
	})
}

func (h *DatasetsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	xs, ys := q.Get("x"), q.Get("y")
	if (xs == "") == (ys == "") {
		writeError(w, http.StatusBadRequest, "exactly one of x or y required")
		return
	}
	axis, raw := "x", xs
	if ys != "" {
		axis, raw = "y", ys
	}
	at, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+axis)
		return
	}

	d, ok := h.load(w, r)
	if !ok {
		return
	}
	table, ok := h.table(w, r, d)
	if !ok {
		return
	}

	resp := DatasetLookupResponse{DatasetID: d.ID, Axis: axis, At: at}
	var (
		row   store.DataPoint
		found bool
	)
	if axis == "x" {
		resp.Value = nullable(table.LookupX(at))
		row, found = table.RowAtX(at)
	} else {
		resp.Value = nullable(table.LookupY(at))
		row, found = table.RowAtY(at)
	}
	if found {
		resp.Row = row.Row
	}
	h.metrics.ObserveLookup(axis, resp.Value != nil)
	writeJSON(w, http.StatusOK, resp)
}

func (h *DatasetsHandler) Plot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := render.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	interp := q.Get("interpolation")
	if interp == "" {
		interp = h.cfg.Interpolation
	}
	opts := render.DefaultOptions()
	if opts.Interpolation, err = render.ParseInterpolation(interp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.XDirection, opts.YDirection, err = directions(r, nil, nil, h.cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid direction: "+err.Error())
		return
	}
	if v := q.Get("dots"); v != "" {
		if opts.Dots, err = strconv.ParseBool(v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid dots")
			return
		}
	}
	if opts.XLimit, err = floatParam(q.Get("x_limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid x_limit")
		return
	}
	if opts.YLimit, err = floatParam(q.Get("y_limit")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid y_limit")
		return
	}

	d, ok := h.load(w, r)
	if !ok {
		return
	}
	xs, ys := d.Columns()
	opts.Label = "frontier"

	canvas := render.NewCanvas(d.Name, d.XLabel, d.YLabel, h.cfg.PlotWidth, h.cfg.PlotHeight, h.logger)
	if err := canvas.Scatter(d.Name, xs, ys, ""); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	start := time.Now()
	path, err := canvas.Frontier(xs, ys, opts)
	h.metrics.ObserveComputation("points", start, len(xs), pathSize(path), err)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	// Render into a buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := canvas.Render(&buf, format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.metrics.ObserveRender(string(format))
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *DatasetsHandler) load(w http.ResponseWriter, r *http.Request) (*store.Dataset, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dataset id")
		return nil, false
	}
	d, err := h.store.GetDataset(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if d == nil {
		writeError(w, http.StatusNotFound, "dataset not found")
		return nil, false
	}
	return d, true
}

// table builds the frontier over a dataset's rows and reports the
// computation to metrics and the event stream.
func (h *DatasetsHandler) table(w http.ResponseWriter, r *http.Request, d *store.Dataset) (*pareto.Table[store.DataPoint], bool) {
	xDir, yDir, err := directions(r, nil, nil, h.cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid direction: "+err.Error())
		return nil, false
	}

	start := time.Now()
	table, err := pareto.NewTable(d.Points,
		func(p store.DataPoint) float64 { return p.X },
		func(p store.DataPoint) float64 { return p.Y },
		xDir, yDir)
	if err != nil {
		h.metrics.ObserveComputation("indices", start, len(d.Points), 0, err)
		writeError(w, statusFor(err), err.Error())
		return nil, false
	}
	indices := table.FrontierIndices()
	h.metrics.ObserveComputation("indices", start, len(d.Points), len(indices), nil)

	h.pub.Publish(hermes.SubjectFrontierComputed(d.ID.String()), hermes.FrontierComputedEvent{
		DatasetID:    d.ID.String(),
		XDirection:   xDir.String(),
		YDirection:   yDir.String(),
		InputPoints:  len(d.Points),
		FrontierSize: len(indices),
		Indices:      indices,
		DurationMs:   float64(time.Since(start).Microseconds()) / 1000,
		Timestamp:    time.Now().UTC(),
	})
	return table, true
}

func floatParam(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func pathSize(p *render.Path) int {
	if p == nil {
		return 0
	}
	return len(p.Frontier)
}
