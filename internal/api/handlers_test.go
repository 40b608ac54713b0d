// LapiPrice - Laptop Price Estimation and Comparable Laptop Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lapiprice

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/lapiprice/internal/artifact"
	"github.com/tomtom215/lapiprice/internal/catalog"
	"github.com/tomtom215/lapiprice/internal/estimator"
	"github.com/tomtom215/lapiprice/internal/history"
	"github.com/tomtom215/lapiprice/internal/middleware"
	"github.com/tomtom215/lapiprice/internal/pricing"
	"github.com/tomtom215/lapiprice/internal/recommend"
)

func syntheticCatalog(n int) *catalog.Catalog {
	makers := []string{"HP", "Dell", "Apple", "Lenovo"}
	classes := []string{"Notebook", "Ultrabook", "Gaming"}
	rams := []int{4, 8, 16, 32}
	makerBonus := map[string]float64{"HP": 0, "Dell": 50, "Apple": 400, "Lenovo": 25}
	classBonus := map[string]float64{"Notebook": 0, "Ultrabook": 300, "Gaming": 500}

	entries := make([]catalog.Entry, n)
	for i := range entries {
		maker := makers[i%len(makers)]
		class := classes[(i/2)%len(classes)]
		ram := rams[(i/3)%len(rams)]
		size := 13 + float64(i%5)
		entries[i] = catalog.Entry{
			ID: i + 1,
			Spec: catalog.Specification{
				Manufacturer:     maker,
				Product:          maker + " Model",
				DeviceClass:      class,
				ScreenSize:       size,
				ScreenResolution: "1920x1080",
				CPU:              "Intel Core i5",
				RAM:              ram,
				GPU:              "Intel UHD",
				OperatingSystem:  "Windows 10",
				Weight:           1.2 + size/20,
			},
			Price: 300 + 40*float64(ram) + makerBonus[maker] + classBonus[class],
		}
	}
	return catalog.New(entries)
}

type testServer struct {
	handler *Handler
	engine  *pricing.Engine
	history history.Store
	http    http.Handler
}

type serverOption func(*HandlerConfig, *ChiMiddlewareConfig)

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	cat := syntheticCatalog(48)

	store, err := artifact.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	cfg := pricing.DefaultConfig()
	cfg.Families = []estimator.Family{estimator.FamilyLinear}
	cfg.Folds = 3
	cfg.Workers = 2
	cfg.Grids = map[estimator.Family]estimator.GridSpec{
		estimator.FamilyRandomForest:     {NEstimators: []int{10}, MaxDepth: []int{0}},
		estimator.FamilyGradientBoosting: {NEstimators: []int{10}, LearningRate: []float64{0.3}},
	}
	engine, err := pricing.NewEngine(cfg, cat, estimator.NewRepository(store), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	rec, err := recommend.NewEngine(recommend.DefaultConfig(), cat, zerolog.Nop())
	if err != nil {
		t.Fatalf("recommend.NewEngine() error = %v", err)
	}
	engine.SetRecommender(rec)

	hcfg := DefaultHandlerConfig()
	hcfg.TrainRatePerMinute = 600
	hcfg.TrainBurst = 10
	mwcfg := DefaultChiMiddlewareConfig()
	mwcfg.CORSAllowedOrigins = []string{"*"}
	mwcfg.RateLimitDisabled = true
	for _, opt := range opts {
		opt(&hcfg, mwcfg)
	}

	hist := history.NewMemoryStore(history.DefaultCapacity)
	perf := middleware.NewPerformanceMonitor(100, 0, zerolog.Nop())
	h := NewHandler(engine, hist, perf, hcfg, zerolog.Nop())
	t.Cleanup(h.Close)

	return &testServer{
		handler: h,
		engine:  engine,
		history: hist,
		http:    NewRouter(h, NewChiMiddleware(mwcfg)).SetupChi(),
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("%s %s: invalid envelope %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", string(env.Data), err)
	}
}

const specJSON = `{"manufacturer":"Apple","product":"Apple Model","device_class":"Ultrabook",` +
	`"screen_size":13.3,"screen_resolution":"1920x1080","cpu":"Intel Core i5","ram":16,` +
	`"gpu":"Intel UHD","operating_system":"Windows 10","weight":1.9}`

func TestHealthReadyTracksModel(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("ready before training status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if env.Success || env.Error == nil || env.Error.Code != ErrCodeServiceUnavailable {
		t.Errorf("ready before training envelope = %+v", env)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/models/train?wait=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("train status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec, env = s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready after training status = %d, want %d", rec.Code, http.StatusOK)
	}
	var status ReadinessStatus
	decodeData(t, env, &status)
	if !status.Ready || status.Model == nil || status.Model.Family != estimator.FamilyLinear {
		t.Errorf("readiness = %+v, want ready with linear model", status)
	}
	if status.CatalogRows != 48 {
		t.Errorf("CatalogRows = %d, want 48", status.CatalogRows)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("live status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPredictRecordsHistory(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/predict", `{"specification":`+specJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Errorf("missing %s header", middleware.RequestIDHeader)
	}
	if env.Meta == nil || env.Meta.RequestID != rec.Header().Get(middleware.RequestIDHeader) {
		t.Errorf("meta request ID = %+v, want response header value", env.Meta)
	}

	var res PredictResponse
	decodeData(t, env, &res)
	if res.Result == nil || res.Price <= 0 {
		t.Fatalf("result = %+v, want a positive price", res.Result)
	}
	if res.Currency != "EUR" || res.Symbol != "€" {
		t.Errorf("currency = %s %s, want EUR €", res.Currency, res.Symbol)
	}
	if res.Interval != nil {
		t.Errorf("Interval = %+v, want nil for linear", res.Interval)
	}
	if res.HistoryID == nil {
		t.Fatal("HistoryID = nil, want the recorded entry")
	}

	rec, env = s.do(t, http.MethodGet, "/api/v1/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d, want %d", rec.Code, http.StatusOK)
	}
	var entries []history.Entry
	decodeData(t, env, &entries)
	if len(entries) != 1 || entries[0].ID != *res.HistoryID {
		t.Fatalf("history = %+v, want the one recorded entry", entries)
	}
	if env.Meta.Count == nil || *env.Meta.Count != 1 {
		t.Errorf("meta count = %v, want 1", env.Meta.Count)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/history/"+res.HistoryID.String(), "")
	if rec.Code != http.StatusOK {
		t.Errorf("get history status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPredictCurrencyConversion(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/v1/predict", `{"skip_history":true,"specification":`+specJSON+`}`)
	var base PredictResponse
	decodeData(t, env, &base)

	rec, env := s.do(t, http.MethodPost, "/api/v1/predict",
		`{"skip_history":true,"currency":"usd","rate":2,"specification":`+specJSON+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var usd PredictResponse
	decodeData(t, env, &usd)

	if usd.Currency != "USD" || usd.Symbol != "$" {
		t.Errorf("currency = %s %s, want USD $", usd.Currency, usd.Symbol)
	}
	if diff := usd.Price - 2*base.Price; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("converted price = %v, want %v", usd.Price, 2*base.Price)
	}
	if usd.HistoryID != nil {
		t.Errorf("HistoryID = %v, want nil with skip_history", usd.HistoryID)
	}
	if n, _ := s.history.Len(t.Context()); n != 0 {
		t.Errorf("history length = %d, want 0", n)
	}
}

func TestPredictRejectsBadInput(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"empty body", "", ErrCodeBadRequest},
		{"malformed json", `{"specification":`, ErrCodeBadRequest},
		{"unknown field", `{"spec":` + specJSON + `}`, ErrCodeBadRequest},
		{"trailing data", `{"specification":` + specJSON + `} {}`, ErrCodeBadRequest},
		{"unknown currency", `{"currency":"XXX","rate":1,"specification":` + specJSON + `}`, ErrCodeValidationFailed},
		{"negative rate", `{"currency":"USD","rate":-1,"specification":` + specJSON + `}`, ErrCodeValidationFailed},
		{"missing rate", `{"currency":"USD","specification":` + specJSON + `}`, ErrCodeBadRequest},
		{"negative weight", `{"specification":` + strings.Replace(specJSON, `"weight":1.9`, `"weight":-1`, 1) + `}`, ErrCodeValidationFailed},
		{"missing manufacturer", `{"specification":` + strings.Replace(specJSON, `"manufacturer":"Apple",`, ``, 1) + `}`, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/v1/predict", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestEncodeBeforeTraining(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	unseen := strings.Replace(specJSON, `"manufacturer":"Apple"`, `"manufacturer":"Framework"`, 1)
	rec, env := s.do(t, http.MethodPost, "/api/v1/encode", `{"specification":`+unseen+`}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var res pricing.EncodeResult
	decodeData(t, env, &res)
	if len(res.Vector) == 0 || len(res.Vector) != len(res.FeatureNames) {
		t.Errorf("len(Vector) = %d, len(FeatureNames) = %d, want equal and non-zero", len(res.Vector), len(res.FeatureNames))
	}
	if res.Source != "catalog" {
		t.Errorf("Source = %q, want catalog", res.Source)
	}
	if len(res.Fallbacks) != 1 || res.Fallbacks[0].Column != catalog.ColManufacturer {
		t.Errorf("Fallbacks = %+v, want one manufacturer fallback", res.Fallbacks)
	}
	if s.engine.Ready() {
		t.Error("Encode should not train a model")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name      string
		body      string
		wantCount int
		maker     string
	}{
		{"default limit", `{"specification":` + specJSON + `}`, 5, ""},
		{"explicit limit", `{"limit":3,"specification":` + specJSON + `}`, 3, ""},
		{"manufacturer filter", `{"limit":8,"filter":{"manufacturer":"Apple"},"specification":` + specJSON + `}`, -1, "Apple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := s.do(t, http.MethodPost, "/api/v1/recommend", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			var results []recommend.Recommendation
			decodeData(t, env, &results)
			if tt.wantCount >= 0 && len(results) != tt.wantCount {
				t.Errorf("len(results) = %d, want %d", len(results), tt.wantCount)
			}
			for i := 1; i < len(results); i++ {
				if results[i].Score > results[i-1].Score {
					t.Errorf("results not sorted at %d: %v > %v", i, results[i].Score, results[i-1].Score)
				}
			}
			if tt.maker != "" {
				if len(results) == 0 {
					t.Fatal("filter removed every result")
				}
				for _, r := range results {
					if r.Entry.Spec.Manufacturer != tt.maker {
						t.Errorf("manufacturer = %q, want %q", r.Entry.Spec.Manufacturer, tt.maker)
					}
				}
			}
		})
	}
}

func TestCompareEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	other := strings.Replace(specJSON, `"manufacturer":"Apple"`, `"manufacturer":"Dell"`, 1)
	rec, env := s.do(t, http.MethodPost, "/api/v1/compare", `{"laptops":[`+specJSON+`,`+other+`]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var cmp recommend.Comparison
	decodeData(t, env, &cmp)
	makers := cmp.Attributes[string(catalog.ColManufacturer)]
	if len(makers) != 2 || makers[0] != "Apple" || makers[1] != "Dell" {
		t.Errorf("manufacturer row = %v, want [Apple Dell]", makers)
	}

	rec, env = s.do(t, http.MethodPost, "/api/v1/compare", `{"laptops":[`+specJSON+`]}`)
	if rec.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("single laptop status = %d error = %+v, want 400 validation failure", rec.Code, env.Error)
	}
}

func TestTrainFamilyEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/models/train?family=gradient_boosting&wait=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp TrainResponse
	decodeData(t, env, &resp)
	if resp.Kind != "gradient_boosting" || resp.Model == nil || resp.Model.Family != estimator.FamilyGradientBoosting {
		t.Errorf("train response = %+v, want a gradient_boosting model", resp)
	}
	if s.engine.Ready() {
		t.Error("single-family training without activate should not serve the model")
	}

	rec, env = s.do(t, http.MethodGet, "/api/v1/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var stored []artifact.Metadata
	decodeData(t, env, &stored)
	if len(stored) != 1 || stored[0].Name != "gradient_boosting" {
		t.Errorf("stored = %+v, want one gradient_boosting artifact", stored)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/models/best", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("best status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	rec, env = s.do(t, http.MethodPost, "/api/v1/models/train?family=svm", "")
	if rec.Code != http.StatusBadRequest || env.Error.Code != ErrCodeValidationFailed {
		t.Errorf("unknown family status = %d error = %+v, want 400 validation failure", rec.Code, env.Error)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/models/train?wait=maybe", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad wait status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTrainActivateServesModel(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodPost, "/api/v1/models/train?family=random_forest&activate=true&wait=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/models/best", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("best status = %d, want %d", rec.Code, http.StatusOK)
	}
	var info pricing.ModelInfo
	decodeData(t, env, &info)
	if info.Family != estimator.FamilyRandomForest || info.Metrics == nil {
		t.Errorf("best = %+v, want random_forest with metrics", info)
	}

	_, env = s.do(t, http.MethodPost, "/api/v1/predict", `{"skip_history":true,"specification":`+specJSON+`}`)
	var res PredictResponse
	decodeData(t, env, &res)
	if res.Interval == nil {
		t.Error("Interval = nil, want an interval from the forest")
	}
}

func TestTrainRateLimited(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(h *HandlerConfig, _ *ChiMiddlewareConfig) {
		h.TrainRatePerMinute = 0.001
		h.TrainBurst = 1
	})

	rec, _ := s.do(t, http.MethodPost, "/api/v1/models/train?wait=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("first status = %d, want %d", rec.Code, http.StatusOK)
	}
	rec, env := s.do(t, http.MethodPost, "/api/v1/models/train?wait=true", "")
	if rec.Code != http.StatusTooManyRequests || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("second status = %d error = %+v, want 429", rec.Code, env.Error)
	}
}

func TestTrainInBackground(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/models/train", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}
	var resp TrainResponse
	decodeData(t, env, &resp)
	if resp.Kind != "select" || !resp.Started {
		t.Errorf("response = %+v, want a started selection", resp)
	}

	s.handler.bgWG.Wait()
	if !s.engine.Ready() {
		t.Error("engine not ready after background selection")
	}
	if st := s.engine.Status(); st.Runs != 1 || st.LastError != "" {
		t.Errorf("status = %+v, want one successful run", st)
	}
}

func TestHistoryEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		s.do(t, http.MethodPost, "/api/v1/predict", `{"specification":`+specJSON+`}`)
	}

	_, env := s.do(t, http.MethodGet, "/api/v1/history?limit=2", "")
	var entries []history.Entry
	decodeData(t, env, &entries)
	if len(entries) != 2 {
		t.Errorf("len(entries) = %d, want 2", len(entries))
	}

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"bad limit", http.MethodGet, "/api/v1/history?limit=abc", http.StatusBadRequest},
		{"limit too large", http.MethodGet, "/api/v1/history?limit=5000", http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/v1/history/not-a-uuid", http.StatusBadRequest},
		{"unknown id", http.MethodGet, "/api/v1/history/7d444840-9dc0-11d1-b245-5ffdce74fad2", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := s.do(t, tt.method, tt.path, "")
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
		})
	}

	rec, env := s.do(t, http.MethodDelete, "/api/v1/history", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear status = %d, want %d", rec.Code, http.StatusOK)
	}
	var cleared map[string]int
	decodeData(t, env, &cleared)
	if cleared["removed"] != 3 {
		t.Errorf("removed = %d, want 3", cleared["removed"])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/catalog/facets/manufacturer", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("facets status = %d, want %d", rec.Code, http.StatusOK)
	}
	var values []string
	decodeData(t, env, &values)
	want := []string{"Apple", "Dell", "HP", "Lenovo"}
	if strings.Join(values, ",") != strings.Join(want, ",") {
		t.Errorf("facets = %v, want %v", values, want)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/catalog/facets/ram", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("numeric facet status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/catalog", "")
	var summary CatalogSummary
	decodeData(t, env, &summary)
	if summary.Rows != 48 || len(summary.Categorical) != len(catalog.CategoricalColumns) {
		t.Errorf("summary = %+v", summary)
	}
}

func TestCurrenciesEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	_, env := s.do(t, http.MethodGet, "/api/v1/currencies", "")
	var resp CurrenciesResponse
	decodeData(t, env, &resp)
	if resp.Base != "EUR" {
		t.Errorf("Base = %q, want EUR", resp.Base)
	}
	if len(resp.Currencies) != len(pricing.CurrencyCodes()) {
		t.Errorf("len(Currencies) = %d, want %d", len(resp.Currencies), len(pricing.CurrencyCodes()))
	}
}

func TestRouterInfrastructure(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route status = %d error = %+v, want 404 envelope", rec.Code, env.Error)
	}

	rec, _ = s.do(t, http.MethodPut, "/api/v1/predict", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("wrong method status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/currencies", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}

	s.do(t, http.MethodGet, "/api/v1/currencies", "")
	rec, _ = s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "lapiprice_api_requests_total") {
		t.Errorf("metrics status = %d, want lapiprice_api_requests_total exposed", rec.Code)
	}

	_, env = s.do(t, http.MethodGet, "/api/v1/performance", "")
	var stats []middleware.EndpointStats
	decodeData(t, env, &stats)
	found := false
	for _, st := range stats {
		if st.Endpoint == "GET /api/v1/currencies" {
			found = true
		}
	}
	if !found {
		t.Errorf("performance stats = %+v, want GET /api/v1/currencies", stats)
	}
}

func TestBodyLimitAndRateLimit(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, func(_ *HandlerConfig, m *ChiMiddlewareConfig) {
		m.MaxBodyBytes = 1024
		m.RateLimitDisabled = false
		m.RateLimitRequests = 2
		m.RateLimitWindow = time.Minute
	})

	big := `{"specification":` + specJSON + `,"pad":"` + strings.Repeat("x", 2048) + `"}`
	rec, env := s.do(t, http.MethodPost, "/api/v1/encode", big)
	if rec.Code != http.StatusRequestEntityTooLarge || env.Error.Code != ErrCodePayloadTooLarge {
		t.Errorf("oversized body status = %d error = %+v, want 413", rec.Code, env.Error)
	}

	s.do(t, http.MethodGet, "/api/v1/currencies", "")
	rec, env = s.do(t, http.MethodGet, "/api/v1/currencies", "")
	if rec.Code != http.StatusTooManyRequests || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("third request status = %d error = %+v, want 429", rec.Code, env.Error)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d, health has its own limit", rec.Code, http.StatusOK)
	}
}
