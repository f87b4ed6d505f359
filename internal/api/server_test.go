package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lox/statemod/internal/api"
	"github.com/lox/statemod/internal/dataset"
	"github.com/lox/statemod/internal/ts"
)

func setupTestDataset(t *testing.T) *dataset.DataSet {
	t.Helper()
	ds := dataset.New()
	ds.BaseName = "gunnison"

	s := ts.New(ts.IntervalMonth)
	s.ID = "640511"
	s.Description = "Big ditch"
	s.DataType = "Demand"
	s.Units = "ACFT"
	s.Start = ts.Date{Year: 1978, Month: 1}
	s.End = ts.Date{Year: 1978, Month: 12}
	if err := s.AllocateDataSpace(); err != nil {
		t.Fatalf("AllocateDataSpace: %v", err)
	}
	for m := 1; m <= 12; m++ {
		s.SetValue(ts.Date{Year: 1978, Month: m}, 100.0+float64(m))
	}

	c := ds.Component(dataset.ComponentDemandTSMonthly)
	c.FileName = "test.ddm"
	c.Data = []*ts.TimeSeries{s}
	return ds
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"gunnison"`) {
		t.Error("expected dataset name in health response")
	}
}

func TestComponentsEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	req := httptest.NewRequest("GET", "/api/components", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var groups map[string][]api.ComponentSummary
	if err := json.Unmarshal(w.Body.Bytes(), &groups); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(groups) != 16 {
		t.Errorf("got %d groups, want 16", len(groups))
	}

	found := false
	for _, cs := range groups["Diversion Data"] {
		if cs.FileName == "test.ddm" {
			found = true
			if cs.Series != 1 {
				t.Errorf("Series = %d, want 1", cs.Series)
			}
			if !cs.HasData {
				t.Error("HasData = false, want true")
			}
		}
	}
	if !found {
		t.Error("demand component missing from Diversion Data group")
	}
}

func TestSeriesEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	url := fmt.Sprintf("/api/series?component=%d&id=640511", int(dataset.ComponentDemandTSMonthly))
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var out api.SeriesJSON
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID != "640511" {
		t.Errorf("ID = %q, want 640511", out.ID)
	}
	if out.Interval != "Month" {
		t.Errorf("Interval = %q, want Month", out.Interval)
	}
	if out.Start != "1978-01" || out.End != "1978-12" {
		t.Errorf("period = %s to %s, want 1978-01 to 1978-12", out.Start, out.End)
	}
	if len(out.Values) != 12 {
		t.Errorf("len(Values) = %d, want 12", len(out.Values))
	}
	if v := out.Values["1978-03"]; v != 103 {
		t.Errorf("Values[1978-03] = %v, want 103", v)
	}
}

func TestSeriesEndpointNotFound(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	tests := []struct {
		name string
		url  string
	}{
		{"unknown station", fmt.Sprintf("/api/series?component=%d&id=NOPE", int(dataset.ComponentDemandTSMonthly))},
		{"component without series", fmt.Sprintf("/api/series?component=%d&id=640511", int(dataset.ComponentDiversionStations))},
		{"non-numeric component", "/api/series?component=demand&id=640511"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, req)
			if w.Code != 404 {
				t.Errorf("expected 404, got %d", w.Code)
			}
		})
	}
}

func TestChartEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	url := fmt.Sprintf("/api/series/chart.png?component=%d&id=640511&width=400&height=200", int(dataset.ComponentDemandTSMonthly))
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 200 {
		t.Errorf("image size = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}

func TestControlEndpoint(t *testing.T) {
	t.Parallel()
	srv := api.NewServer(setupTestDataset(t), "8080")

	req := httptest.NewRequest("GET", "/api/control", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var control map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &control); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := control["Iresop"]; !ok || v != float64(2) {
		t.Errorf("Iresop = %v, want 2", v)
	}
}
