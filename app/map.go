package app

import (
	"fmt"
	"math"

	"geomark/typedef"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
)

// World-space dimensions of the equirectangular projection, in map units.
// 10 units per degree keeps the math readable.
const (
	worldWidth  = 3600.0
	worldHeight = 1800.0
	unitsPerDeg = worldHeight / 180.0
)

// centerSpanDeg is the latitude/longitude span the viewport zooms to when
// centering on a coordinate.
const centerSpanDeg = 0.01

// centerAnimSpeed completes a centering animation in one second.
const centerAnimSpeed = 1.0

// zoomAnimSpeed is the snappier speed used for wheel zoom transitions.
const zoomAnimSpeed = 4.0

// MapView owns the visible map region: a scale plus screen-space offsets over
// the projected world, with tweened transitions between viewports.
type MapView struct {
	scale   float64
	offsetX float64
	offsetY float64

	minScale float64
	maxScale float64
	screenW  int
	screenH  int

	dragging   bool
	lastMouseX int
	lastMouseY int

	marker *typedef.Coordinate // render source, owned by the screen controller
	fix    *typedef.Coordinate // last live position fix, if any

	showCoordinates bool
	scheme          ColorScheme

	targetScale   float64
	targetOffsetX float64
	targetOffsetY float64
	startScale    float64
	startOffsetX  float64
	startOffsetY  float64
	isAnimating   bool
	animProgress  float64
	animSpeed     float64

	log zerolog.Logger
}

// NewMapView creates a map view centered on the given coordinate.
func NewMapView(scheme ColorScheme, center typedef.Coordinate, logger zerolog.Logger) *MapView {
	m := &MapView{
		minScale:        0.2,
		maxScale:        100000,
		screenW:         1280,
		screenH:         720,
		showCoordinates: true,
		scheme:          scheme,
		animSpeed:       centerAnimSpeed,
		log:             logger,
	}
	m.JumpTo(center, centerSpanDeg)
	return m
}

// SetScreenSize updates the viewport dimensions, keeping the current center
// fixed on screen.
func (m *MapView) SetScreenSize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == m.screenW && h == m.screenH {
		return
	}
	center := m.Center()
	m.screenW = w
	m.screenH = h
	if !m.isAnimating {
		m.JumpTo(center, m.spanDeg())
	}
}

// Scheme returns the active palette.
func (m *MapView) Scheme() ColorScheme {
	return m.scheme
}

// SetMarker points the renderer at the controller-owned marker value.
func (m *MapView) SetMarker(c *typedef.Coordinate) {
	m.marker = c
}

// SetFix records the most recent live position fix for rendering.
func (m *MapView) SetFix(c typedef.Coordinate) {
	m.fix = &c
}

// ToggleCoordinates toggles the cursor coordinate readout.
func (m *MapView) ToggleCoordinates() {
	m.showCoordinates = !m.showCoordinates
}

func lonToWorldX(lon float64) float64 {
	return (lon + 180) / 360 * worldWidth
}

func latToWorldY(lat float64) float64 {
	return (90 - lat) / 180 * worldHeight
}

func worldXToLon(x float64) float64 {
	return x/worldWidth*360 - 180
}

func worldYToLat(y float64) float64 {
	return 90 - y/worldHeight*180
}

// GeoToScreen projects a coordinate to screen pixels under the current viewport.
func (m *MapView) GeoToScreen(c typedef.Coordinate) (float64, float64) {
	return lonToWorldX(c.Longitude)*m.scale + m.offsetX,
		latToWorldY(c.Latitude)*m.scale + m.offsetY
}

// ScreenToGeo is the inverse of GeoToScreen.
func (m *MapView) ScreenToGeo(sx, sy float64) typedef.Coordinate {
	return typedef.Coordinate{
		Latitude:  worldYToLat((sy - m.offsetY) / m.scale),
		Longitude: worldXToLon((sx - m.offsetX) / m.scale),
	}
}

// Center returns the coordinate currently at the middle of the screen.
func (m *MapView) Center() typedef.Coordinate {
	return m.ScreenToGeo(float64(m.screenW)/2, float64(m.screenH)/2)
}

// spanDeg returns the latitude span currently visible.
func (m *MapView) spanDeg() float64 {
	return float64(m.screenH) / (m.scale * unitsPerDeg)
}

// scaleForSpan converts a latitude span in degrees to a viewport scale.
func (m *MapView) scaleForSpan(span float64) float64 {
	return m.clampScale(float64(m.screenH) / (span * unitsPerDeg))
}

func (m *MapView) clampScale(s float64) float64 {
	return math.Min(m.maxScale, math.Max(m.minScale, s))
}

// offsetsFor computes the offsets that place c at the screen center for the
// given scale.
func (m *MapView) offsetsFor(c typedef.Coordinate, scale float64) (float64, float64) {
	return float64(m.screenW)/2 - lonToWorldX(c.Longitude)*scale,
		float64(m.screenH)/2 - latToWorldY(c.Latitude)*scale
}

// JumpTo moves the viewport immediately, without animation.
func (m *MapView) JumpTo(c typedef.Coordinate, span float64) {
	m.scale = m.scaleForSpan(span)
	m.offsetX, m.offsetY = m.offsetsFor(c, m.scale)
	m.targetScale, m.targetOffsetX, m.targetOffsetY = m.scale, m.offsetX, m.offsetY
	m.startScale, m.startOffsetX, m.startOffsetY = m.scale, m.offsetX, m.offsetY
	m.isAnimating = false
	m.animProgress = 0
}

// CenterOn animates the viewport to the coordinate over one second at the
// fixed centering span.
func (m *MapView) CenterOn(c typedef.Coordinate) {
	scale := m.scaleForSpan(centerSpanDeg)
	ox, oy := m.offsetsFor(c, scale)
	m.animateTo(scale, ox, oy, centerAnimSpeed)
	m.log.Debug().
		Float64("lat", c.Latitude).
		Float64("lon", c.Longitude).
		Msg("centering viewport")
}

// animateTo starts a tweened transition to the target viewport.
func (m *MapView) animateTo(targetScale, targetOffsetX, targetOffsetY, speed float64) {
	m.startScale = m.scale
	m.startOffsetX = m.offsetX
	m.startOffsetY = m.offsetY
	m.targetScale = targetScale
	m.targetOffsetX = targetOffsetX
	m.targetOffsetY = targetOffsetY

	// Skip the tween when there is no meaningful change.
	if math.Abs(targetScale-m.scale) < 1e-6 &&
		math.Abs(targetOffsetX-m.offsetX) < 1.0 &&
		math.Abs(targetOffsetY-m.offsetY) < 1.0 {
		m.scale = targetScale
		m.offsetX = targetOffsetX
		m.offsetY = targetOffsetY
		m.isAnimating = false
		return
	}

	m.animProgress = 0
	m.animSpeed = speed
	m.isAnimating = true
}

// updateAnimations advances any in-flight viewport tween.
func (m *MapView) updateAnimations(deltaTime float64) {
	if !m.isAnimating {
		return
	}

	m.animProgress += deltaTime * m.animSpeed
	if m.animProgress >= 1.0 {
		m.scale = m.targetScale
		m.offsetX = m.targetOffsetX
		m.offsetY = m.targetOffsetY
		m.isAnimating = false

		// Re-sync start values so chained animations cannot corrupt state.
		m.startScale = m.scale
		m.startOffsetX = m.offsetX
		m.startOffsetY = m.offsetY
		return
	}

	t := easeOutCubic(m.animProgress)
	m.scale = m.startScale + (m.targetScale-m.startScale)*t
	m.offsetX = m.startOffsetX + (m.targetOffsetX-m.startOffsetX)*t
	m.offsetY = m.startOffsetY + (m.targetOffsetY-m.startOffsetY)*t
}

// easeOutCubic provides smooth easing for viewport and menu tweens.
func easeOutCubic(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return 1 - math.Pow(1-t, 3)
}

// Update processes pan/zoom input and advances animations. Input is skipped
// while a modal or another UI element owns the pointer.
func (m *MapView) Update(deltaTime float64, inputBlocked bool) {
	if !inputBlocked {
		m.handleMouse()
	}
	m.updateAnimations(deltaTime)
}

func (m *MapView) handleMouse() {
	mx, my := ebiten.CursorPosition()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if m.dragging {
			m.offsetX += float64(mx - m.lastMouseX)
			m.offsetY += float64(my - m.lastMouseY)
			m.targetOffsetX = m.offsetX
			m.targetOffsetY = m.offsetY
			m.isAnimating = false
		}
		m.dragging = true
		m.lastMouseX = mx
		m.lastMouseY = my
	} else {
		m.dragging = false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		m.zoomAt(mx, my, wheelY)
	}
}

// zoomAt zooms toward the cursor, chaining off the target scale so rapid
// wheel ticks accumulate instead of fighting the tween.
func (m *MapView) zoomAt(mx, my int, wheelY float64) {
	base := m.scale
	if m.isAnimating {
		base = m.targetScale
	}
	newScale := m.clampScale(base * math.Pow(1.12, wheelY))
	if newScale == base {
		return
	}

	// Keep the world point under the cursor stationary.
	worldX := (float64(mx) - m.offsetX) / m.scale
	worldY := (float64(my) - m.offsetY) / m.scale
	ox := float64(mx) - worldX*newScale
	oy := float64(my) - worldY*newScale

	m.animateTo(newScale, ox, oy, zoomAnimSpeed)
}

// Draw renders the map, graticule, marker and fix under the current viewport.
func (m *MapView) Draw(screen *ebiten.Image) {
	screen.Fill(m.scheme.Background)
	m.drawGraticule(screen)
	m.drawWorldEdge(screen)

	if m.fix != nil {
		m.drawFix(screen, *m.fix)
	}
	if m.marker != nil {
		m.drawMarker(screen, *m.marker)
	}
	if m.showCoordinates {
		m.drawCursorReadout(screen)
	}
}

// graticuleStep picks a line spacing in degrees that keeps lines at least
// ~60 px apart at the current zoom.
func (m *MapView) graticuleStep() float64 {
	steps := []float64{30, 10, 5, 1, 0.5, 0.1, 0.05, 0.01, 0.005, 0.001}
	pxPerDeg := m.scale * unitsPerDeg
	step := steps[0]
	for _, s := range steps {
		if s*pxPerDeg < 60 {
			break
		}
		step = s
	}
	return step
}

func (m *MapView) drawGraticule(screen *ebiten.Image) {
	step := m.graticuleStep()
	topLeft := m.ScreenToGeo(0, 0)
	bottomRight := m.ScreenToGeo(float64(m.screenW), float64(m.screenH))

	minLat := math.Max(-90, math.Floor(bottomRight.Latitude/step)*step)
	maxLat := math.Min(90, math.Ceil(topLeft.Latitude/step)*step)
	minLon := math.Max(-180, math.Floor(topLeft.Longitude/step)*step)
	maxLon := math.Min(180, math.Ceil(bottomRight.Longitude/step)*step)

	for lat := minLat; lat <= maxLat+step/2; lat += step {
		_, sy := m.GeoToScreen(typedef.Coordinate{Latitude: lat})
		clr := m.scheme.Grid
		if math.Abs(lat) < step/2 {
			clr = m.scheme.GridMajor // equator
		}
		vector.StrokeLine(screen, 0, float32(sy), float32(m.screenW), float32(sy), 1, clr, false)
		if m.showCoordinates {
			text.Draw(screen, trimDeg(lat), uiFont(), 4, int(sy)-3, m.scheme.TextMuted)
		}
	}

	for lon := minLon; lon <= maxLon+step/2; lon += step {
		sx, _ := m.GeoToScreen(typedef.Coordinate{Longitude: lon})
		clr := m.scheme.Grid
		if math.Abs(lon) < step/2 {
			clr = m.scheme.GridMajor // prime meridian
		}
		vector.StrokeLine(screen, float32(sx), 0, float32(sx), float32(m.screenH), 1, clr, false)
		if m.showCoordinates {
			text.Draw(screen, trimDeg(lon), uiFont(), int(sx)+3, 13, m.scheme.TextMuted)
		}
	}
}

func (m *MapView) drawWorldEdge(screen *ebiten.Image) {
	x0, y0 := m.GeoToScreen(typedef.Coordinate{Latitude: 90, Longitude: -180})
	x1, y1 := m.GeoToScreen(typedef.Coordinate{Latitude: -90, Longitude: 180})
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, m.scheme.WorldEdge, false)
}

func (m *MapView) drawMarker(screen *ebiten.Image, c typedef.Coordinate) {
	sx, sy := m.GeoToScreen(c)
	if sx < -40 || sy < -40 || sx > float64(m.screenW)+40 || sy > float64(m.screenH)+40 {
		return
	}

	// Pin: stem plus a ringed head above the anchor point.
	vector.StrokeLine(screen, float32(sx), float32(sy), float32(sx), float32(sy-14), 2, m.scheme.Marker, true)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy-18), 7, m.scheme.Marker, true)
	vector.StrokeCircle(screen, float32(sx), float32(sy-18), 7, 2, m.scheme.MarkerRing, true)
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), 2, m.scheme.Marker, true)

	label := c.String()
	bounds := text.BoundString(uiFont(), label)
	text.Draw(screen, label, uiFont(), int(sx)-bounds.Dx()/2, int(sy)+16, m.scheme.Text)
}

func (m *MapView) drawFix(screen *ebiten.Image, c typedef.Coordinate) {
	sx, sy := m.GeoToScreen(c)
	if sx < -20 || sy < -20 || sx > float64(m.screenW)+20 || sy > float64(m.screenH)+20 {
		return
	}
	vector.DrawFilledCircle(screen, float32(sx), float32(sy), 5, m.scheme.Fix, true)
	vector.StrokeCircle(screen, float32(sx), float32(sy), 9, 1.5, m.scheme.Fix, true)
}

func (m *MapView) drawCursorReadout(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= m.screenW || my >= m.screenH {
		return
	}
	c := m.ScreenToGeo(float64(mx), float64(my))
	if !c.Valid() {
		return
	}
	text.Draw(screen, c.String(), uiFont(), 8, m.screenH-8, m.scheme.TextMuted)
}

// trimDeg formats a graticule label without trailing zeros.
func trimDeg(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s + "°"
}
