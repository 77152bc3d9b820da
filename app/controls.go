package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// controlButton is one tappable action in the bottom bar.
type controlButton struct {
	label   string
	onClick func()
	danger  bool

	x, y, w, h int
}

// ControlBar lays out the screen's action buttons along the bottom edge, plus
// an optional menu toggle in the top-left corner.
type ControlBar struct {
	buttons    []controlButton
	menuToggle *controlButton
	scheme     ColorScheme
	screenW    int
	screenH    int
}

// NewControlBar creates the bar with the three marker actions.
func NewControlBar(scheme ColorScheme, onSave, onRemove, onCenter func()) *ControlBar {
	return &ControlBar{
		scheme: scheme,
		buttons: []controlButton{
			{label: "Save position", onClick: onSave},
			{label: "Remove marker", onClick: onRemove, danger: true},
			{label: "Center on me", onClick: onCenter},
		},
	}
}

// EnableMenuToggle adds the side-menu toggle button.
func (cb *ControlBar) EnableMenuToggle(onToggle func()) {
	cb.menuToggle = &controlButton{label: "Menu", onClick: onToggle}
}

const (
	controlWidth   = 130
	controlHeight  = 34
	controlSpacing = 12
	controlMargin  = 16
)

func (cb *ControlBar) layout(screenW, screenH int) {
	cb.screenW = screenW
	cb.screenH = screenH

	total := len(cb.buttons)*controlWidth + (len(cb.buttons)-1)*controlSpacing
	x := (screenW - total) / 2
	y := screenH - controlHeight - controlMargin
	for i := range cb.buttons {
		cb.buttons[i].x = x
		cb.buttons[i].y = y
		cb.buttons[i].w = controlWidth
		cb.buttons[i].h = controlHeight
		x += controlWidth + controlSpacing
	}

	if cb.menuToggle != nil {
		cb.menuToggle.x = controlMargin
		cb.menuToggle.y = controlMargin
		cb.menuToggle.w = 70
		cb.menuToggle.h = 30
	}
}

// Update handles clicks and reports whether the bar consumed the pointer.
func (cb *ControlBar) Update(screenW, screenH int) bool {
	cb.layout(screenW, screenH)

	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return cb.hovered() != nil && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	if b := cb.hovered(); b != nil {
		b.onClick()
		return true
	}
	return false
}

func (cb *ControlBar) hovered() *controlButton {
	mx, my := ebiten.CursorPosition()
	for i := range cb.buttons {
		b := &cb.buttons[i]
		if mx >= b.x && mx < b.x+b.w && my >= b.y && my < b.y+b.h {
			return b
		}
	}
	if b := cb.menuToggle; b != nil {
		if mx >= b.x && mx < b.x+b.w && my >= b.y && my < b.y+b.h {
			return b
		}
	}
	return nil
}

// Draw renders the bar.
func (cb *ControlBar) Draw(screen *ebiten.Image) {
	hot := cb.hovered()
	for i := range cb.buttons {
		cb.drawButton(screen, &cb.buttons[i], hot == &cb.buttons[i])
	}
	if cb.menuToggle != nil {
		cb.drawButton(screen, cb.menuToggle, hot == cb.menuToggle)
	}
}

func (cb *ControlBar) drawButton(screen *ebiten.Image, b *controlButton, hot bool) {
	clr := cb.scheme.Button
	hotClr := cb.scheme.ButtonHot
	if b.danger {
		clr = cb.scheme.Danger
		hotClr = cb.scheme.DangerHot
	}
	if hot {
		clr = hotClr
	}

	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), clr, false)
	vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1, cb.scheme.PanelEdge, false)

	bounds := text.BoundString(uiFont(), b.label)
	text.Draw(screen, b.label, uiFont(),
		b.x+(b.w-bounds.Dx())/2,
		b.y+(b.h+bounds.Dy())/2-2,
		cb.scheme.MarkerRing)
}
