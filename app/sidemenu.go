package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// sideMenuAnimSpeed completes the slide tween in ~0.3 seconds.
const sideMenuAnimSpeed = 3.3

// SideMenu is a panel that slides in from the left screen edge. It carries no
// state beyond visible/hidden and the tween progress.
type SideMenu struct {
	visible      bool
	animProgress float64
	animTarget   float64

	width   int
	screenH int
	scheme  ColorScheme
	lines   []string
}

// NewSideMenu creates a hidden side menu.
func NewSideMenu(scheme ColorScheme) *SideMenu {
	return &SideMenu{
		width:  260,
		scheme: scheme,
		lines: []string{
			"Geomark",
			"",
			"Drop a marker at your position",
			"and find it again later.",
			"",
			"Left drag   pan",
			"Wheel       zoom",
			"C           copy marker",
			"G           toggle readout",
			"M / Esc     toggle this menu",
		},
	}
}

// Toggle flips the menu between visible and hidden.
func (sm *SideMenu) Toggle() {
	sm.setVisible(!sm.visible)
}

// Hide slides the menu out.
func (sm *SideMenu) Hide() {
	sm.setVisible(false)
}

// IsVisible reports whether the menu is shown or sliding in.
func (sm *SideMenu) IsVisible() bool {
	return sm.visible
}

func (sm *SideMenu) setVisible(visible bool) {
	sm.visible = visible
	sm.animTarget = 0
	if visible {
		sm.animTarget = 1
	}
}

// advance moves the slide tween toward its target.
func (sm *SideMenu) advance(deltaTime float64) {
	if sm.animProgress < sm.animTarget {
		sm.animProgress += deltaTime * sideMenuAnimSpeed
		if sm.animProgress > sm.animTarget {
			sm.animProgress = sm.animTarget
		}
	} else if sm.animProgress > sm.animTarget {
		sm.animProgress -= deltaTime * sideMenuAnimSpeed
		if sm.animProgress < sm.animTarget {
			sm.animProgress = sm.animTarget
		}
	}
}

// Update advances the slide tween and reports whether the menu consumed the
// pointer this frame.
func (sm *SideMenu) Update(deltaTime float64, screenH int) bool {
	sm.screenH = screenH
	sm.advance(deltaTime)

	if !sm.visible && sm.animProgress == 0 {
		return false
	}

	// The pointer belongs to the menu while it covers the cursor.
	mx, my := ebiten.CursorPosition()
	over := mx < sm.panelRight() && my >= 0 && my < sm.screenH
	if over && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return over && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// panelRight returns the x position of the panel's right edge for the current
// tween progress.
func (sm *SideMenu) panelRight() int {
	return int(float64(sm.width) * easeOutCubic(sm.animProgress))
}

// Draw renders the sliding panel and its placeholder content.
func (sm *SideMenu) Draw(screen *ebiten.Image) {
	if sm.animProgress == 0 {
		return
	}

	right := sm.panelRight()
	x := right - sm.width
	h := screen.Bounds().Dy()

	vector.DrawFilledRect(screen, float32(x), 0, float32(sm.width), float32(h), sm.scheme.Panel, false)
	vector.StrokeLine(screen, float32(right), 0, float32(right), float32(h), 2, sm.scheme.PanelEdge, false)

	y := 28
	for i, line := range sm.lines {
		clr := sm.scheme.TextMuted
		if i == 0 {
			clr = sm.scheme.Text
		}
		text.Draw(screen, line, uiFont(), x+16, y, clr)
		y += lineHeight
	}
}
