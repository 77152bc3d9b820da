package app

import (
	"testing"

	"geomark/typedef"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestView() *MapView {
	return NewMapView(DefaultScheme(), typedef.Coordinate{Latitude: 40.4168, Longitude: -3.7038}, zerolog.Nop())
}

// stepSeconds advances the view's animation clock by the given duration in
// 60ths of a second.
func stepSeconds(m *MapView, seconds float64) {
	steps := int(seconds * 60)
	for i := 0; i < steps; i++ {
		m.updateAnimations(1.0 / 60.0)
	}
}

func TestMapView_InitialViewportCentersOnFallback(t *testing.T) {
	m := newTestView()

	c := m.Center()

	assert.InDelta(t, 40.4168, c.Latitude, 1e-9)
	assert.InDelta(t, -3.7038, c.Longitude, 1e-9)
}

func TestMapView_GeoToScreenInverse(t *testing.T) {
	m := newTestView()

	coords := []typedef.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 40.4168, Longitude: -3.7038},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: -179.9},
	}
	for _, in := range coords {
		sx, sy := m.GeoToScreen(in)
		out := m.ScreenToGeo(sx, sy)
		assert.InDelta(t, in.Latitude, out.Latitude, 1e-9)
		assert.InDelta(t, in.Longitude, out.Longitude, 1e-9)
	}
}

func TestMapView_JumpToCentersImmediately(t *testing.T) {
	m := newTestView()

	m.JumpTo(typedef.Coordinate{Latitude: 10, Longitude: 20}, centerSpanDeg)

	c := m.Center()
	assert.InDelta(t, 10.0, c.Latitude, 1e-9)
	assert.InDelta(t, 20.0, c.Longitude, 1e-9)
	assert.False(t, m.isAnimating)
}

func TestMapView_CenterOnCompletesInOneSecond(t *testing.T) {
	m := newTestView()
	target := typedef.Coordinate{Latitude: 1, Longitude: 2}

	m.CenterOn(target)
	require.True(t, m.isAnimating)

	// Halfway through, the tween is still in flight.
	stepSeconds(m, 0.5)
	assert.True(t, m.isAnimating)

	// After the full second the viewport sits exactly on the target at the
	// fixed centering span.
	stepSeconds(m, 0.6)
	assert.False(t, m.isAnimating)
	c := m.Center()
	assert.InDelta(t, target.Latitude, c.Latitude, 1e-9)
	assert.InDelta(t, target.Longitude, c.Longitude, 1e-9)
	assert.InDelta(t, centerSpanDeg, m.spanDeg(), 1e-9)
}

func TestMapView_CenterOnSamePointDoesNotAnimate(t *testing.T) {
	m := newTestView()
	target := typedef.Coordinate{Latitude: 10, Longitude: 20}
	m.JumpTo(target, centerSpanDeg)

	m.CenterOn(target)

	assert.False(t, m.isAnimating)
}

func TestMapView_SetScreenSizeKeepsCenter(t *testing.T) {
	m := newTestView()
	m.JumpTo(typedef.Coordinate{Latitude: 10, Longitude: 20}, centerSpanDeg)

	m.SetScreenSize(1920, 1080)

	c := m.Center()
	assert.InDelta(t, 10.0, c.Latitude, 1e-9)
	assert.InDelta(t, 20.0, c.Longitude, 1e-9)
}

func TestMapView_ScaleForSpanClamps(t *testing.T) {
	m := newTestView()

	assert.Equal(t, m.maxScale, m.scaleForSpan(1e-12))
	assert.Equal(t, m.minScale, m.scaleForSpan(1e12))
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, easeOutCubic(-1))
	assert.Equal(t, 0.0, easeOutCubic(0))
	assert.Equal(t, 1.0, easeOutCubic(1))
	assert.Equal(t, 1.0, easeOutCubic(2))

	// Monotonically increasing on [0, 1].
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := easeOutCubic(float64(i) / 10)
		assert.Greater(t, v, prev)
		prev = v
	}
}

func TestGraticuleStep_ShrinksWithZoom(t *testing.T) {
	m := newTestView()

	m.JumpTo(typedef.Coordinate{}, 120) // whole-world view
	wide := m.graticuleStep()

	m.JumpTo(typedef.Coordinate{}, centerSpanDeg)
	narrow := m.graticuleStep()

	assert.Greater(t, wide, narrow)
}
