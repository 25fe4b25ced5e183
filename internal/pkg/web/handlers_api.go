package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/sensorscope/sensorscope/internal/pkg/chart"
	"github.com/sensorscope/sensorscope/internal/pkg/engine"
	"github.com/sensorscope/sensorscope/internal/pkg/export"
	"github.com/sensorscope/sensorscope/internal/pkg/logger"
	"github.com/sensorscope/sensorscope/internal/pkg/settings"
	"github.com/sensorscope/sensorscope/internal/pkg/version"
)

// Status labels shown in the sidebar status panel.
const (
	labelWaiting = "Waiting for data..."
	labelRunning = "Logging: RUNNING"
	labelPaused  = "PAUSED - Zoom/Pan Enabled"
)

type statusResponse struct {
	engine.Status
	Label string `json:"label"`
}

func (s *Server) statusResponse() statusResponse {
	st := s.engine.Status()
	label := labelPaused
	switch {
	case st.Buffered == 0:
		label = labelWaiting
	case st.Running:
		label = labelRunning
	}
	return statusResponse{Status: st, Label: label}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, s.statusResponse())
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.engine.Toggle()
	writeJSON(w, s.statusResponse())
}

type dashboardChartsResponse struct {
	Figures []chart.Figure `json:"figures"`
	Note    string         `json:"note"`
}

func (s *Server) handleDashboardCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctx, _ := s.registry.Get(settings.DashboardID)
	st := ctx.Settings()
	paused := !s.engine.IsRunning()

	start, end := chart.Window(s.store.Len(), st.DisplayPoints)
	ts, vals := s.store.Slice(start, end)

	channels := s.store.Channels()
	figures := make([]chart.Figure, len(channels))
	for i, name := range channels {
		figures[i] = chart.Assemble(
			fmt.Sprintf("Sensor %d", i+1),
			ts, vals[i],
			st.Style(),
			ctx.Overlay(name),
			paused,
		)
	}
	writeJSON(w, dashboardChartsResponse{Figures: figures, Note: st.Summary()})
}

// sensorUpdateResponse carries at most one of a full figure or a delta
// instruction; the two update paths are mutually exclusive per cycle.
// A tick-poll that observed no new samples carries neither. Total is the
// append total the rendered trace covers after applying the response; the
// client echoes it back as the since parameter on its next tick-poll.
type sensorUpdateResponse struct {
	Figure *chart.Figure `json:"figure,omitempty"`
	Extend *chart.Extend `json:"extend,omitempty"`
	Total  int64         `json:"total"`
}

// handleSensorUpdate serves /api/sensor/<i>/update. The reason query
// parameter tags what caused the cycle: "tick" while running appends the
// samples the trace is behind by; "init", "settings", or a paused tick force
// a full redraw of the current window.
//
// The client's poll interval is not synchronized with the capture ticker, so
// a single poll may span zero or several appends. The since parameter makes
// delivery exact: the delta carries every sample after that position, and a
// position that is missing, stale past eviction, or further behind than the
// display window falls back to a full redraw.
func (s *Server) handleSensorUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/sensor/")
	idxStr, op, ok := strings.Cut(rest, "/")
	if !ok || op != "update" {
		writeJSONError(w, http.StatusNotFound, "not found")
		return
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 1 || idx > len(s.store.Channels()) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown sensor %q", idxStr))
		return
	}

	ctx, _ := s.registry.Get(settings.SensorID(idx))
	st := ctx.Settings()
	running := s.engine.IsRunning()
	reason := r.URL.Query().Get("reason")

	if reason == "tick" && running {
		since, err := strconv.ParseInt(r.URL.Query().Get("since"), 10, 64)
		if err == nil {
			if tail, total, ok := s.store.TailSince(since); ok && len(tail) <= st.DisplayPoints {
				if len(tail) == 0 {
					writeJSON(w, sensorUpdateResponse{Total: total})
					return
				}
				ts := make([]time.Time, len(tail))
				ys := make([]float64, len(tail))
				for i, sample := range tail {
					ts[i] = sample.Timestamp
					ys[i] = sample.Values[idx-1]
				}
				ext := chart.NewExtend(ts, ys, st.DisplayPoints)
				writeJSON(w, sensorUpdateResponse{Extend: &ext, Total: total})
				return
			}
		}
	}

	chartKey := s.store.Channels()[idx-1]
	ts, vals, total := s.store.Tail(st.DisplayPoints)
	fig := chart.AssembleWithHeight(
		fmt.Sprintf("Sensor %d", idx), 0,
		ts, vals[idx-1],
		st.Style(),
		ctx.Overlay(chartKey),
		!running,
	)
	writeJSON(w, sensorUpdateResponse{Figure: &fig, Total: total})
}

type settingsResponse struct {
	Settings settings.Settings `json:"settings"`
	Bounds   settings.Bounds   `json:"bounds"`
	Note     string            `json:"note"`

	// MarkerControlEnabled drives the control surface: the size slider is
	// disabled, not erased, while markers are off.
	MarkerControlEnabled bool `json:"markerControlEnabled"`
}

func settingsPayload(ctx *settings.Context, capacity int) settingsResponse {
	st := ctx.Settings()
	return settingsResponse{
		Settings:             st,
		Bounds:               ctx.Kind().Bounds(capacity),
		Note:                 st.Summary(),
		MarkerControlEnabled: st.ShowMarkers,
	}
}

// handleSettings serves /api/settings/<context>. GET reads; POST replaces
// the whole record. Controls re-submit every field on any change, so
// replacements that change nothing are normal. Values are not re-validated
// here; the sliders own the bounds.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	ctxID := strings.TrimPrefix(r.URL.Path, "/api/settings/")
	ctx, ok := s.registry.Get(ctxID)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown context %q", ctxID))
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, settingsPayload(ctx, s.store.Capacity()))
	case http.MethodPost:
		var st settings.Settings
		if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
			writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode settings: %v", err))
			return
		}
		ctx.Replace(st)
		writeJSON(w, settingsPayload(ctx, s.store.Capacity()))
	default:
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

type relayoutRequest struct {
	Chart  string                     `json:"chart"`
	Ranges map[string]json.RawMessage `json:"ranges"`
}

// handleRelayout serves /api/relayout/<context>: the page posts the plot's
// raw relayout payload whenever the user pans or zooms. Partial payloads
// are normal; missing axis pairs simply leave that axis un-overridden.
func (s *Server) handleRelayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	ctxID := strings.TrimPrefix(r.URL.Path, "/api/relayout/")
	ctx, ok := s.registry.Get(ctxID)
	if !ok {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("unknown context %q", ctxID))
		return
	}
	var req relayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("decode relayout: %v", err))
		return
	}
	if req.Chart == "" {
		writeJSONError(w, http.StatusBadRequest, "missing chart key")
		return
	}
	ctx.SetOverlay(req.Chart, chart.ParseRelayout(req.Ranges))
	w.WriteHeader(http.StatusNoContent)
}

// handleExport streams the current buffer contents as a CSV attachment.
// The snapshot is taken in one step, so rows reflect the buffer exactly as
// of the request. Downloads are throttled; a full buffer is 10k rows.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.exportLimiter.Allow() {
		writeJSONError(w, http.StatusTooManyRequests, "export rate exceeded, retry shortly")
		return
	}

	data, err := export.Assemble(s.store.Channels(), s.store.Snapshot())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("assemble export: %v", err))
		return
	}
	if s.metrics != nil {
		s.metrics.ExportsTotal.Inc()
	}

	filename := export.Filename(s.now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		defer gz.Close()
		if _, err := gz.Write(data); err != nil {
			logger.Warn("export write failed", "error", err)
		}
		return
	}
	if _, err := w.Write(data); err != nil {
		logger.Warn("export write failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "ok",
		"service": "sensorscope",
		"version": version.String(),
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
