package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sensorscope/sensorscope/internal/pkg/settings"
	"github.com/sensorscope/sensorscope/internal/pkg/version"
)

type navLink struct {
	Href   string
	Label  string
	Active bool
}

type pageData struct {
	Title      string
	Nav        []navLink
	TickMillis int64
	Version    string

	// Dashboard page
	Sensors  []int
	Settings settings.Settings
	Bounds   settings.Bounds

	// Detail page
	SensorIndex int
	ContextID   string
	ChartKey    string
}

func (s *Server) navLinks(activePath string) []navLink {
	links := []navLink{{Href: "/", Label: "Dashboard", Active: activePath == "/"}}
	for i := 1; i <= len(s.store.Channels()); i++ {
		href := fmt.Sprintf("/sensor-%d", i)
		links = append(links, navLink{Href: href, Label: fmt.Sprintf("Sensor %d", i), Active: activePath == href})
	}
	return links
}

// handlePage dispatches "/" to the dashboard, "/sensor-<i>" to a detail
// page, and anything else to the not-found page. An unrecognized route
// renders without touching any state.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/" {
		s.renderDashboard(w, r)
		return
	}
	if idx, ok := parseSensorPath(r.URL.Path); ok && idx >= 1 && idx <= len(s.store.Channels()) {
		s.renderSensor(w, r, idx)
		return
	}
	s.renderNotFound(w, r)
}

func parseSensorPath(path string) (int, bool) {
	rest, ok := strings.CutPrefix(path, "/sensor-")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || strconv.Itoa(idx) != rest {
		// Atoi also accepts signs and leading zeros; each page gets exactly
		// one route.
		return 0, false
	}
	return idx, true
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, _ := s.registry.Get(settings.DashboardID)
	sensors := make([]int, len(s.store.Channels()))
	for i := range sensors {
		sensors[i] = i + 1
	}
	s.render(w, "dashboard.html", pageData{
		Title:      "Live Sensor Dashboard",
		Nav:        s.navLinks("/"),
		TickMillis: s.tickInterval.Milliseconds(),
		Version:    version.String(),
		Sensors:    sensors,
		Settings:   ctx.Settings(),
		Bounds:     ctx.Kind().Bounds(s.store.Capacity()),
	})
}

func (s *Server) renderSensor(w http.ResponseWriter, r *http.Request, idx int) {
	ctxID := settings.SensorID(idx)
	ctx, ok := s.registry.Get(ctxID)
	if !ok {
		s.renderNotFound(w, r)
		return
	}
	s.render(w, "sensor.html", pageData{
		Title:       fmt.Sprintf("Sensor %d - Detailed View", idx),
		Nav:         s.navLinks(fmt.Sprintf("/sensor-%d", idx)),
		TickMillis:  s.tickInterval.Milliseconds(),
		Version:     version.String(),
		SensorIndex: idx,
		ContextID:   ctxID,
		ChartKey:    s.store.Channels()[idx-1],
		Settings:    ctx.Settings(),
		Bounds:      ctx.Kind().Bounds(s.store.Capacity()),
	})
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, "notfound.html", pageData{
		Title:      "404: Not found",
		Nav:        s.navLinks(r.URL.Path),
		TickMillis: s.tickInterval.Milliseconds(),
		Version:    version.String(),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
