package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorscope/sensorscope/internal/pkg/chart"
)

func TestDefaultsPerKind(t *testing.T) {
	dash := Dashboard.Defaults()
	assert.Equal(t, 100, dash.DisplayPoints)
	assert.Equal(t, chart.ShapeLinear, dash.LineShape)
	assert.False(t, dash.ShowMarkers)
	assert.Equal(t, 6, dash.MarkerSize)

	detail := Detail.Defaults()
	assert.Equal(t, 500, detail.DisplayPoints)
	assert.Equal(t, chart.ShapeSpline, detail.LineShape)
}

func TestBoundsPerKind(t *testing.T) {
	dash := Dashboard.Bounds(10000)
	assert.Equal(t, 10, dash.MinPoints)
	assert.Equal(t, 500, dash.MaxPoints)

	detail := Detail.Bounds(10000)
	assert.Equal(t, 100, detail.MinPoints)
	assert.Equal(t, 10000, detail.MaxPoints, "detail window may span the whole buffer")
	assert.Equal(t, 2, detail.MinMarkerSize)
	assert.Equal(t, 12, detail.MaxMarkerSize)
}

func TestContext_MarkerToggleKeepsSize(t *testing.T) {
	c := NewContext(Dashboard)

	s := c.Settings()
	s.ShowMarkers = true
	s.MarkerSize = 9
	c.Replace(s)

	// Turning markers off re-submits the whole record with the size intact.
	s = c.Settings()
	s.ShowMarkers = false
	c.Replace(s)
	assert.Equal(t, 9, c.Settings().MarkerSize, "size retained while markers are off")

	s = c.Settings()
	s.ShowMarkers = true
	c.Replace(s)
	assert.Equal(t, 9, c.Settings().MarkerSize, "toggling markers back on restores the last size")
}

func TestContext_NoOpReplaceTolerated(t *testing.T) {
	c := NewContext(Detail)
	before := c.Settings()
	c.Replace(before)
	assert.Equal(t, before, c.Settings())
}

func TestContext_ModelDoesNotValidate(t *testing.T) {
	// Bounds are the control surface's job; the model accepts what it is handed.
	c := NewContext(Dashboard)
	c.Replace(Settings{DisplayPoints: -40, LineShape: "zigzag", MarkerSize: 999})
	assert.Equal(t, -40, c.Settings().DisplayPoints)
	assert.Equal(t, 999, c.Settings().MarkerSize)
}

func TestContext_OverlayRetention(t *testing.T) {
	c := NewContext(Dashboard)
	assert.Nil(t, c.Overlay("s1"))

	x0, x1 := "a", "b"
	c.SetOverlay("s1", chart.AxisOverlay{X0: &x0, X1: &x1})
	require.NotNil(t, c.Overlay("s1"))
	assert.True(t, c.Overlay("s1").HasX())
	assert.Nil(t, c.Overlay("s2"), "overlays are independent per chart")

	// An overlay with no complete pair clears the retained one.
	c.SetOverlay("s1", chart.AxisOverlay{})
	assert.Nil(t, c.Overlay("s1"))
}

func TestRegistry_IndependentContexts(t *testing.T) {
	r := NewRegistry(4)

	dash, ok := r.Get(DashboardID)
	require.True(t, ok)
	s1, ok := r.Get(SensorID(1))
	require.True(t, ok)

	s := dash.Settings()
	s.DisplayPoints = 250
	dash.Replace(s)

	assert.Equal(t, 250, dash.Settings().DisplayPoints)
	assert.Equal(t, 500, s1.Settings().DisplayPoints, "detail context must not see dashboard writes")

	_, ok = r.Get("sensor-9")
	assert.False(t, ok)
}

func TestRegistry_ClearOverlays(t *testing.T) {
	r := NewRegistry(4)
	y0, y1 := 1.0, 2.0

	for _, id := range []string{DashboardID, SensorID(2)} {
		c, ok := r.Get(id)
		require.True(t, ok)
		c.SetOverlay("s1", chart.AxisOverlay{Y0: &y0, Y1: &y1})
	}

	r.ClearOverlays()

	for _, id := range []string{DashboardID, SensorID(1), SensorID(2)} {
		c, _ := r.Get(id)
		assert.Nil(t, c.Overlay("s1"))
	}
}

func TestSummary(t *testing.T) {
	s := Settings{DisplayPoints: 50, LineShape: "spline", ShowMarkers: true, MarkerSize: 8}
	assert.Equal(t, "Displaying last 50 points | Shape: Spline | Markers: On (Size: 8)", s.Summary())

	s = Settings{DisplayPoints: 100, LineShape: "linear", ShowMarkers: false, MarkerSize: 6}
	assert.Equal(t, "Displaying last 100 points | Shape: Linear | Markers: Off (Size: 6)", s.Summary())
}
