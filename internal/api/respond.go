package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/pareto"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// nullable maps the lookup sentinel to JSON null.
func nullable(v float64) *float64 {
	if pareto.NoResult(v) {
		return nil
	}
	return &v
}

// directions resolves the axis directions for a request: explicit values
// win, then query parameters, then the configured defaults.
func directions(r *http.Request, maxX, maxY *bool, cfg config.FrontierConfig) (pareto.Direction, pareto.Direction, error) {
	x, y := cfg.MaxX, cfg.MaxY
	q := r.URL.Query()
	if v := q.Get("max_x"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return 0, 0, err
		}
		x = b
	}
	if v := q.Get("max_y"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return 0, 0, err
		}
		y = b
	}
	if maxX != nil {
		x = *maxX
	}
	if maxY != nil {
		y = *maxY
	}
	return pareto.DirectionOf(x), pareto.DirectionOf(y), nil
}
