package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Frontier/internal/config"
	"github.com/MikeSquared-Agency/Frontier/internal/hermes"
	"github.com/MikeSquared-Agency/Frontier/internal/metrics"
	"github.com/MikeSquared-Agency/Frontier/internal/store"
)

// Mocks
type recordingHermes struct {
	mu       sync.Mutex
	subjects []string
}

func (m *recordingHermes) Publish(subject string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return nil
}
func (m *recordingHermes) Subscribe(_ string, _ func(string, []byte)) error { return nil }
func (m *recordingHermes) Close()                                           {}

func (m *recordingHermes) published() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.subjects...)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateDataset(ctx context.Context, d *store.Dataset) error {
	return m.Called(ctx, d).Error(0)
}
func (m *mockStore) GetDataset(ctx context.Context, id uuid.UUID) (*store.Dataset, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*store.Dataset)
	return d, args.Error(1)
}
func (m *mockStore) ListDatasets(ctx context.Context, f store.DatasetFilter) ([]*store.Dataset, error) {
	args := m.Called(ctx, f)
	ds, _ := args.Get(0).([]*store.Dataset)
	return ds, args.Error(1)
}
func (m *mockStore) DeleteDataset(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockStore) Close() error { return nil }

type testEnv struct {
	router  http.Handler
	store   store.Store
	hermes  *recordingHermes
	metrics *metrics.Metrics
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AdminToken: "test-token", RateLimit: 1000},
		Frontier: config.FrontierConfig{
			MaxX:          false,
			MaxY:          true,
			Interpolation: "pessimistic",
			PlotWidth:     320,
			PlotHeight:    240,
			MaxPoints:     50,
		},
	}
}

func setupTestRouter(t *testing.T, s store.Store) *testEnv {
	t.Helper()
	if s == nil {
		s = store.NewMemoryStore()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &recordingHermes{}
	m := metrics.New(prometheus.NewRegistry())
	router := NewRouter(s, hermes.NewPublisher(h, logger), m, testConfig(), logger)
	return &testEnv{router: router, store: s, hermes: h, metrics: m}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer test-token")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// seedDataset stores five points; with x minimized and y maximized the
// frontier is rows a, b and c.
func seedDataset(t *testing.T, e *testEnv) uuid.UUID {
	t.Helper()
	body := `{"name":"runs","x_label":"cost","y_label":"score","points":[
		{"x":0,"y":0,"row":{"name":"a"}},
		{"x":1,"y":1,"row":{"name":"b"}},
		{"x":2,"y":2,"row":{"name":"c"}},
		{"x":2,"y":1,"row":{"name":"d"}},
		{"x":1,"y":0.5,"row":{"name":"e"}}
	]}`
	w := e.do("POST", "/api/v1/datasets", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var d store.Dataset
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	assert.Equal(t, 5, d.PointCount)
	assert.Empty(t, d.Points, "create response omits points")
	return d.ID
}

func TestCreateDatasetValidation(t *testing.T) {
	e := setupTestRouter(t, nil)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing name", `{"points":[{"x":1,"y":1}]}`, http.StatusBadRequest},
		{"no points", `{"name":"empty"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do("POST", "/api/v1/datasets", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestCreateDatasetTooManyPoints(t *testing.T) {
	e := setupTestRouter(t, nil)
	points := make([]string, 51)
	for i := range points {
		points[i] = `{"x":1,"y":1}`
	}
	w := e.do("POST", "/api/v1/datasets", `{"name":"big","points":[`+strings.Join(points, ",")+`]}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCreateDatasetPublishesEvent(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)
	assert.Equal(t, []string{hermes.SubjectDatasetCreated(id.String())}, e.hermes.published())
}

func TestGetAndListDatasets(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)

	w := e.do("GET", "/api/v1/datasets/"+id.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	var d store.Dataset
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	assert.Equal(t, "runs", d.Name)
	assert.Len(t, d.Points, 5)

	w = e.do("GET", "/api/v1/datasets?name=run", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []store.Dataset
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)

	w = e.do("GET", "/api/v1/datasets?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDatasetNotFound(t *testing.T) {
	e := setupTestRouter(t, nil)

	w := e.do("GET", "/api/v1/datasets/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do("GET", "/api/v1/datasets/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDatasetsEmptyIsArray(t *testing.T) {
	e := setupTestRouter(t, nil)
	w := e.do("GET", "/api/v1/datasets", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestDeleteDataset(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)

	req := httptest.NewRequest("DELETE", "/api/v1/datasets/"+id.String(), nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "delete needs the admin token")

	w = e.do("DELETE", "/api/v1/datasets/"+id.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, e.hermes.published(), hermes.SubjectDatasetDeleted(id.String()))

	w = e.do("DELETE", "/api/v1/datasets/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDatasetFrontier(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)

	w := e.do("GET", "/api/v1/datasets/"+id.String()+"/frontier", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp DatasetFrontierResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "minimize", resp.XDirection)
	assert.Equal(t, "maximize", resp.YDirection)

	var names []string
	for _, p := range resp.Points {
		names = append(names, p.Row["name"].(string))
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Contains(t, e.hermes.published(), hermes.SubjectFrontierComputed(id.String()))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Computations.WithLabelValues("indices", "ok")))
}

func TestDatasetFrontierDirectionOverride(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)

	// Maximizing both axes leaves only (2, 2).
	w := e.do("GET", "/api/v1/datasets/"+id.String()+"/frontier?max_x=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp DatasetFrontierResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Points, 1)
	assert.Equal(t, 2, resp.Points[0].Index)

	w = e.do("GET", "/api/v1/datasets/"+id.String()+"/frontier?max_x=sideways", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDatasetLookup(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)
	base := "/api/v1/datasets/" + id.String() + "/lookup"

	w := e.do("GET", base+"?x=1.5", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp DatasetLookupResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Value)
	assert.Equal(t, 1.0, *resp.Value)
	assert.Equal(t, "b", resp.Row["name"])

	w = e.do("GET", base+"?y=1.5", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = DatasetLookupResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotNil(t, resp.Value)
	assert.Equal(t, 2.0, *resp.Value)
	assert.Equal(t, "c", resp.Row["name"])

	w = e.do("GET", base+"?y=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"dataset_id":"`+id.String()+`","axis":"y","at":3,"value":null}`, w.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Lookups.WithLabelValues("y", "empty")))
}

func TestDatasetLookupArguments(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)
	base := "/api/v1/datasets/" + id.String() + "/lookup"

	for _, q := range []string{"", "?x=1&y=1", "?x=abc"} {
		w := e.do("GET", base+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestDatasetPlot(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)
	base := "/api/v1/datasets/" + id.String() + "/plot"

	w := e.do("GET", base, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = e.do("GET", base+"?format=svg&interpolation=linear-convex&dots=true&x_limit=3&y_limit=-1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.Equal(t, 1.0, testutil.ToFloat64(e.metrics.Renders.WithLabelValues("svg")))
}

func TestDatasetPlotBadParams(t *testing.T) {
	e := setupTestRouter(t, nil)
	id := seedDataset(t, e)
	base := "/api/v1/datasets/" + id.String() + "/plot"

	for _, q := range []string{"?format=gif", "?interpolation=cubic", "?dots=maybe", "?x_limit=far"} {
		w := e.do("GET", base+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestStoreErrorsReturn500(t *testing.T) {
	ms := &mockStore{}
	ms.On("GetDataset", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	ms.On("ListDatasets", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))
	ms.On("CreateDataset", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	e := setupTestRouter(t, ms)

	assert.Equal(t, http.StatusInternalServerError, e.do("GET", "/api/v1/datasets/"+uuid.New().String()+"/frontier", "").Code)
	assert.Equal(t, http.StatusInternalServerError, e.do("GET", "/api/v1/datasets", "").Code)
	assert.Equal(t, http.StatusInternalServerError, e.do("POST", "/api/v1/datasets", `{"name":"x","points":[{"x":1,"y":1}]}`).Code)
	assert.Empty(t, e.hermes.published())
	ms.AssertExpectations(t)
}

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveLookup("x", true)
	router := NewMetricsRouter(reg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `frontier_lookups_total{axis="x",result="hit"} 1`)
}
