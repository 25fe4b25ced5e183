package chart

import (
	"encoding/json"
	"fmt"
)

// Relayout keys emitted by the plot's pan/zoom interaction. A pan that only
// moved one axis delivers only that axis's pair, so each pair is handled
// independently.
const (
	relayoutXLow  = "xaxis.range[0]"
	relayoutXHigh = "xaxis.range[1]"
	relayoutYLow  = "yaxis.range[0]"
	relayoutYHigh = "yaxis.range[1]"
)

// AxisOverlay is a user-selected axis range captured from the rendering
// surface. X bounds are date strings (the x axis plots timestamps), y bounds
// are numeric. Any field may be absent.
type AxisOverlay struct {
	X0, X1 *string
	Y0, Y1 *float64
}

// HasX reports whether a complete x-axis pair was captured.
func (o *AxisOverlay) HasX() bool {
	return o != nil && o.X0 != nil && o.X1 != nil
}

// HasY reports whether a complete y-axis pair was captured.
func (o *AxisOverlay) HasY() bool {
	return o != nil && o.Y0 != nil && o.Y1 != nil
}

// Empty reports whether the overlay carries no complete axis pair.
func (o *AxisOverlay) Empty() bool {
	return !o.HasX() && !o.HasY()
}

// ParseRelayout extracts an overlay from a raw relayout payload. Missing or
// unparseable fields are treated as "no override for that axis"; the payload
// is never an error.
func ParseRelayout(payload map[string]json.RawMessage) AxisOverlay {
	var o AxisOverlay
	o.X0 = rawString(payload[relayoutXLow])
	o.X1 = rawString(payload[relayoutXHigh])
	o.Y0 = rawFloat(payload[relayoutYLow])
	o.Y1 = rawFloat(payload[relayoutYHigh])
	return o
}

// rawString accepts either a JSON string (date axis) or a number.
func rawString(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		s = fmt.Sprintf("%g", f)
		return &s
	}
	return nil
}

func rawFloat(raw json.RawMessage) *float64 {
	if raw == nil {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil
	}
	return &f
}

// Apply merges the overlay into a figure. When paused is false the figure is
// returned untouched: a range frozen for old data goes stale the moment the
// visible window moves forward again. Each axis is applied independently, so
// a pan that only moved the x axis keeps the y axis as assembled.
func (o *AxisOverlay) Apply(fig Figure, paused bool) Figure {
	if !paused || o == nil {
		return fig
	}
	if o.HasX() {
		fig.Layout.XAxis.Range = []any{*o.X0, *o.X1}
	}
	if o.HasY() {
		fig.Layout.YAxis.Range = []any{*o.Y0, *o.Y1}
	}
	return fig
}
