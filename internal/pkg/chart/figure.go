// Package chart derives renderable chart definitions from buffered samples.
// A Figure is a Plotly-compatible description; the browser only feeds it to
// the plotting library and reports pan/zoom ranges back.
package chart

import (
	"time"
)

// TimeFormat is how x-axis timestamps are serialized for the plot.
const TimeFormat = "2006-01-02 15:04:05.000"

// Dark layout palette, matching the page chrome.
const (
	panelColor = "#1F2937"
	textColor  = "#F9FAFB"
	gridColor  = "rgba(255,255,255,0.1)"
	traceColor = "#3B82F6"
)

// LineShape values accepted by the plot's interpolation mode.
const (
	ShapeLinear = "linear"
	ShapeSpline = "spline"
)

// Style carries the display parameters chart assembly needs. It is the
// settings projection relevant to one trace.
type Style struct {
	LineShape   string
	ShowMarkers bool
	MarkerSize  int
}

// Figure is a complete chart definition.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one plotted line, optionally with markers.
type Trace struct {
	Type   string    `json:"type"`
	Mode   string    `json:"mode"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	Line   *Line     `json:"line,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
}

// Line styles the trace's interpolation.
type Line struct {
	Shape string  `json:"shape"`
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Marker styles the per-point markers.
type Marker struct {
	Size  int    `json:"size"`
	Color string `json:"color"`
}

// Layout is the figure chrome: title, axes, colors.
type Layout struct {
	Title        Title  `json:"title"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
	PlotBGColor  string `json:"plot_bgcolor"`
	PaperBGColor string `json:"paper_bgcolor"`
	Font         Font   `json:"font"`
	Margin       Margin `json:"margin"`
	Height       int    `json:"height,omitempty"`
	ShowLegend   bool   `json:"showlegend"`
}

type Title struct {
	Text    string  `json:"text"`
	X       float64 `json:"x"`
	XAnchor string  `json:"xanchor"`
	Font    Font    `json:"font"`
}

// Axis describes one axis. Range is empty unless an overlay pinned it; x
// ranges hold date strings, y ranges hold numbers.
type Axis struct {
	Title     string `json:"title,omitempty"`
	GridColor string `json:"gridcolor"`
	ZeroLine  bool   `json:"zeroline"`
	Range     []any  `json:"range,omitempty"`
}

type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Extend is a delta instruction for an already-rendered chart: append points
// to one trace and cap the visual trace length. The cap is independent of
// the store's own eviction. A poll may observe more than one new sample, so
// the delta carries every sample the rendered trace is behind by.
type Extend struct {
	X            [][]string  `json:"x"`
	Y            [][]float64 `json:"y"`
	TraceIndices []int       `json:"traceIndices"`
	MaxPoints    int         `json:"maxPoints"`
}

// NewExtend builds the delta appending the given samples, oldest first, to
// the figure's only trace. ts and ys must be the same length.
func NewExtend(ts []time.Time, ys []float64, maxPoints int) Extend {
	x := make([]string, len(ts))
	for i, t := range ts {
		x[i] = t.Format(TimeFormat)
	}
	return Extend{
		X:            [][]string{x},
		Y:            [][]float64{ys},
		TraceIndices: []int{0},
		MaxPoints:    maxPoints,
	}
}

// baseFigure builds the empty chart shell: axes, title and palette, no trace.
// This is also the steady state before any capture has happened.
func baseFigure(title string, height int) Figure {
	return Figure{
		Data: []Trace{},
		Layout: Layout{
			Title:        Title{Text: title, X: 0.05, XAnchor: "left", Font: Font{Size: 18}},
			XAxis:        Axis{Title: "Time", GridColor: gridColor},
			YAxis:        Axis{Title: "Value", GridColor: gridColor},
			PlotBGColor:  panelColor,
			PaperBGColor: panelColor,
			Font:         Font{Color: textColor},
			Margin:       Margin{L: 40, R: 20, T: 50, B: 40},
			Height:       height,
		},
	}
}

// Assemble turns a window slice and display settings into a figure. xs and
// ys must be the same length; when they are empty the figure is an empty
// shell rather than an error. The overlay is applied last and only while
// paused. Assemble is pure: same inputs, same figure.
func Assemble(title string, xs []time.Time, ys []float64, style Style, overlay *AxisOverlay, paused bool) Figure {
	return AssembleWithHeight(title, 360, xs, ys, style, overlay, paused)
}

// AssembleWithHeight is Assemble with an explicit figure height. height 0
// leaves the height to the page layout (full-screen detail view).
func AssembleWithHeight(title string, height int, xs []time.Time, ys []float64, style Style, overlay *AxisOverlay, paused bool) Figure {
	fig := baseFigure(title, height)
	if len(xs) > 0 {
		fig.Data = append(fig.Data, buildTrace(xs, ys, style))
	}
	return overlay.Apply(fig, paused)
}

func buildTrace(xs []time.Time, ys []float64, style Style) Trace {
	x := make([]string, len(xs))
	for i, ts := range xs {
		x[i] = ts.Format(TimeFormat)
	}
	shape := style.LineShape
	if shape != ShapeLinear && shape != ShapeSpline {
		shape = ShapeLinear
	}
	tr := Trace{
		Type: "scatter",
		Mode: "lines",
		X:    x,
		Y:    ys,
		Line: &Line{Shape: shape, Width: 2, Color: traceColor},
	}
	if style.ShowMarkers {
		tr.Mode = "lines+markers"
		tr.Marker = &Marker{Size: style.MarkerSize, Color: traceColor}
	}
	return tr
}
