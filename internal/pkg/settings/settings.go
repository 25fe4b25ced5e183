// Package settings holds user-chosen display parameters. The dashboard and
// each detail page own an independent instance; the instances share one shape
// but differ in defaults and slider bounds.
package settings

import (
	"fmt"
	"sync"

	"github.com/sensorscope/sensorscope/internal/pkg/chart"
	"github.com/sensorscope/sensorscope/internal/pkg/constants"
)

// Kind selects the per-context defaults and bounds.
type Kind int

const (
	// Dashboard is the overview page with four small charts.
	Dashboard Kind = iota
	// Detail is a full-screen single-sensor page.
	Detail
)

// Settings are the display parameters for one page context. The model
// accepts whatever values it is handed; bounds are enforced by the control
// surface (clamped sliders), not re-validated here.
type Settings struct {
	DisplayPoints int    `json:"displayPoints"`
	LineShape     string `json:"lineShape"`
	ShowMarkers   bool   `json:"showMarkers"`
	MarkerSize    int    `json:"markerSize"`
}

// Style projects the settings onto the chart assembly parameters.
func (s Settings) Style() chart.Style {
	return chart.Style{
		LineShape:   s.LineShape,
		ShowMarkers: s.ShowMarkers,
		MarkerSize:  s.MarkerSize,
	}
}

// Summary renders the one-line description shown under the settings modal.
func (s Settings) Summary() string {
	markers := "Off"
	if s.ShowMarkers {
		markers = "On"
	}
	shape := s.LineShape
	if shape != "" {
		shape = string(shape[0]-'a'+'A') + shape[1:]
	}
	return fmt.Sprintf("Displaying last %d points | Shape: %s | Markers: %s (Size: %d)",
		s.DisplayPoints, shape, markers, s.MarkerSize)
}

// Bounds describe the control surface's slider ranges for one context kind.
type Bounds struct {
	MinPoints     int `json:"minPoints"`
	MaxPoints     int `json:"maxPoints"`
	PointsStep    int `json:"pointsStep"`
	MinMarkerSize int `json:"minMarkerSize"`
	MaxMarkerSize int `json:"maxMarkerSize"`
}

// Defaults returns the initial settings for a context of this kind.
func (k Kind) Defaults() Settings {
	switch k {
	case Detail:
		return Settings{
			DisplayPoints: constants.DetailDisplayPoints,
			LineShape:     chart.ShapeSpline,
			ShowMarkers:   false,
			MarkerSize:    constants.DefaultMarkerSize,
		}
	default:
		return Settings{
			DisplayPoints: constants.DashboardDisplayPoints,
			LineShape:     chart.ShapeLinear,
			ShowMarkers:   false,
			MarkerSize:    constants.DefaultMarkerSize,
		}
	}
}

// Bounds returns the control bounds for a context of this kind.
func (k Kind) Bounds(bufferCapacity int) Bounds {
	b := Bounds{
		MinMarkerSize: constants.MinMarkerSize,
		MaxMarkerSize: constants.MaxMarkerSize,
	}
	switch k {
	case Detail:
		b.MinPoints = constants.DetailMinPoints
		b.MaxPoints = bufferCapacity
		b.PointsStep = 100
	default:
		b.MinPoints = constants.DashboardMinPoints
		b.MaxPoints = constants.DashboardMaxPoints
		b.PointsStep = 10
	}
	return b
}

// Context is one page's settings instance plus the axis overlays last
// captured from that page's chart interactions, keyed by chart. The
// dashboard page carries one overlay per sensor chart; a detail page
// carries one.
type Context struct {
	mu       sync.RWMutex
	kind     Kind
	settings Settings
	overlays map[string]*chart.AxisOverlay
}

// NewContext creates a context with the kind's defaults.
func NewContext(kind Kind) *Context {
	return &Context{
		kind:     kind,
		settings: kind.Defaults(),
		overlays: make(map[string]*chart.AxisOverlay),
	}
}

// Kind returns the context kind.
func (c *Context) Kind() Kind {
	return c.kind
}

// Settings returns the current settings.
func (c *Context) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Replace swaps in a whole new settings record. Controls re-submit all four
// fields whenever any one changes, so no-op replacements are normal.
func (c *Context) Replace(s Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = s
}

// SetOverlay retains the latest captured axis range for one of this
// context's charts. An overlay with no complete axis pair clears the
// retained one.
func (c *Context) SetOverlay(chartID string, o chart.AxisOverlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o.Empty() {
		delete(c.overlays, chartID)
		return
	}
	c.overlays[chartID] = &o
}

// Overlay returns the retained axis range for one chart, or nil.
func (c *Context) Overlay(chartID string) *chart.AxisOverlay {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.overlays[chartID]
}

// ClearOverlays drops every retained axis range for this context.
func (c *Context) ClearOverlays() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.overlays)
}

// Registry holds every page context. IDs are "dashboard" and "sensor-<i>".
type Registry struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

// DashboardID is the registry key of the overview context.
const DashboardID = "dashboard"

// SensorID returns the registry key of one detail-page context.
func SensorID(i int) string {
	return fmt.Sprintf("sensor-%d", i)
}

// NewRegistry creates the dashboard context plus one detail context per
// sensor, each with its kind's defaults.
func NewRegistry(sensorCount int) *Registry {
	contexts := map[string]*Context{
		DashboardID: NewContext(Dashboard),
	}
	for i := 1; i <= sensorCount; i++ {
		contexts[SensorID(i)] = NewContext(Detail)
	}
	return &Registry{contexts: contexts}
}

// Get returns the context for id.
func (r *Registry) Get(id string) (*Context, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contexts[id]
	return c, ok
}

// ClearOverlays drops every context's retained axis ranges. Called when
// capture resumes: a range frozen for old data is stale once the window
// moves forward.
func (r *Registry) ClearOverlays() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.contexts {
		c.ClearOverlays()
	}
}
