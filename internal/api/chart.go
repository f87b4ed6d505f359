package api

import (
	"net/http"
	"strconv"

	"github.com/lox/statemod/internal/chart"
)

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	t, err := s.findSeries(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	width, height := 900, 400
	if v, err := strconv.Atoi(r.URL.Query().Get("width")); err == nil && v > 0 {
		width = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("height")); err == nil && v > 0 {
		height = v
	}

	w.Header().Set("Content-Type", "image/png")
	if err := chart.RenderPNG(w, t, width, height); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
