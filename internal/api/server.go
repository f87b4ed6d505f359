// Package api serves a loaded dataset over HTTP as JSON, for browsing
// model inputs without the desktop GUI.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lox/statemod/internal/dataset"
	"github.com/lox/statemod/internal/ts"
)

type Server struct {
	ds   *dataset.DataSet
	port string
}

func NewServer(ds *dataset.DataSet, port string) *Server {
	return &Server{ds: ds, port: port}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/components", s.handleComponents)
	mux.HandleFunc("/api/control", s.handleControl)
	mux.HandleFunc("/api/series", s.handleSeries)
	mux.HandleFunc("/api/series/chart.png", s.handleChart)
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"dataset": s.ds.BaseName,
	})
}

// ComponentSummary is the JSON shape of one dataset component.
type ComponentSummary struct {
	Type     int    `json:"type"`
	Name     string `json:"name"`
	FileName string `json:"file_name,omitempty"`
	Visible  bool   `json:"visible"`
	HasData  bool   `json:"has_data"`
	Series   int    `json:"series,omitempty"`
	Error    bool   `json:"error,omitempty"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	groups := map[string][]ComponentSummary{}
	for _, g := range s.ds.Groups() {
		var list []ComponentSummary
		for _, c := range g.Children {
			cs := ComponentSummary{
				Type:     int(c.Type),
				Name:     c.Name,
				FileName: c.FileName,
				Visible:  c.Visible,
				HasData:  c.HasData(),
				Error:    c.ErrorReading,
			}
			if series, ok := c.Data.([]*ts.TimeSeries); ok {
				cs.Series = len(series)
			}
			list = append(list, cs)
		}
		groups[g.Name] = list
	}
	writeJSON(w, groups)
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.ds.Control)
}

// SeriesJSON is the JSON shape of one time series, with values keyed by
// date string.
type SeriesJSON struct {
	ID          string             `json:"id"`
	Description string             `json:"description,omitempty"`
	DataType    string             `json:"data_type,omitempty"`
	Units       string             `json:"units,omitempty"`
	Interval    string             `json:"interval"`
	Start       string             `json:"start"`
	End         string             `json:"end"`
	Values      map[string]float64 `json:"values,omitempty"`
}

// findSeries resolves the component and station query parameters to one
// series in the loaded dataset.
func (s *Server) findSeries(r *http.Request) (*ts.TimeSeries, error) {
	var compType int
	if _, err := fmt.Sscanf(r.URL.Query().Get("component"), "%d", &compType); err != nil {
		return nil, fmt.Errorf("component parameter must be a component type number")
	}
	id := r.URL.Query().Get("id")
	c := s.ds.Component(dataset.ComponentType(compType))
	if c == nil {
		return nil, fmt.Errorf("unknown component %d", compType)
	}
	list, ok := c.Data.([]*ts.TimeSeries)
	if !ok {
		return nil, fmt.Errorf("component %q holds no time series", c.Name)
	}
	for _, t := range list {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("no series %q in component %q", id, c.Name)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	t, err := s.findSeries(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	out := SeriesJSON{
		ID:          t.ID,
		Description: t.Description,
		DataType:    t.DataType,
		Units:       t.Units,
		Interval:    t.Interval.String(),
		Start:       t.Start.String(),
		End:         t.End.String(),
	}
	if t.HasData() {
		out.Values = map[string]float64{}
		for d := t.Start; !d.After(t.End); d = stepDate(d, t.Interval) {
			if v := t.Value(d); !ts.IsMissing(v) {
				out.Values[d.String()] = v
			}
		}
	}
	writeJSON(w, out)
}

func stepDate(d ts.Date, interval ts.Interval) ts.Date {
	if interval == ts.IntervalDay {
		return d.AddDays(1)
	}
	return d.AddMonths(1)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
