package app

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// noticeButton is a clickable choice inside a modal notice.
type noticeButton struct {
	label   string
	onClick func()
	danger  bool

	x, y, w, h int
}

// modalNotice blocks the screen until the user picks a button.
type modalNotice struct {
	title   string
	message []string
	buttons []noticeButton
}

// toast is a short non-blocking message in the top-right corner.
type toast struct {
	message   string
	expiresAt time.Time
}

// NoticeCenter owns the single active modal and the toast stack.
type NoticeCenter struct {
	modal   *modalNotice
	toasts  []toast
	scheme  ColorScheme
	screenW int
	screenH int
}

// NewNoticeCenter creates an empty notice center.
func NewNoticeCenter(scheme ColorScheme) *NoticeCenter {
	return &NoticeCenter{scheme: scheme}
}

// Blocking reports whether a modal notice is on screen.
func (nc *NoticeCenter) Blocking() bool {
	return nc.modal != nil
}

// BlockingNotice shows a modal with a single OK button.
func (nc *NoticeCenter) BlockingNotice(title, message string) {
	nc.modal = &modalNotice{
		title:   title,
		message: splitLines(message),
		buttons: []noticeButton{
			{label: "OK", onClick: func() { nc.modal = nil }},
		},
	}
}

// PromptPermission shows the Allow/Deny location-access modal.
func (nc *NoticeCenter) PromptPermission(onAllow, onDeny func()) {
	nc.modal = &modalNotice{
		title: "Allow location access?",
		message: []string{
			"Geomark uses your position to place the",
			"marker and to center the map on you.",
		},
		buttons: []noticeButton{
			{label: "Allow", onClick: func() { nc.modal = nil; onAllow() }},
			{label: "Deny", danger: true, onClick: func() { nc.modal = nil; onDeny() }},
		},
	}
}

// Toast shows a short-lived message.
func (nc *NoticeCenter) Toast(message string) {
	nc.toasts = append(nc.toasts, toast{
		message:   message,
		expiresAt: time.Now().Add(4 * time.Second),
	})
	if len(nc.toasts) > 5 {
		nc.toasts = nc.toasts[1:]
	}
}

// Update expires toasts and handles modal clicks. It returns true while a
// modal consumes all input.
func (nc *NoticeCenter) Update(screenW, screenH int) bool {
	nc.screenW = screenW
	nc.screenH = screenH

	now := time.Now()
	live := nc.toasts[:0]
	for _, t := range nc.toasts {
		if now.Before(t.expiresAt) {
			live = append(live, t)
		}
	}
	nc.toasts = live

	if nc.modal == nil {
		return false
	}

	nc.layoutModal()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for _, b := range nc.modal.buttons {
			if mx >= b.x && mx < b.x+b.w && my >= b.y && my < b.y+b.h {
				b.onClick()
				break
			}
		}
	}
	return true
}

const (
	modalWidth   = 360
	buttonWidth  = 90
	buttonHeight = 28
	modalPadding = 16
)

func (nc *NoticeCenter) layoutModal() {
	m := nc.modal
	height := modalPadding + lineHeight + len(m.message)*lineHeight + 12 + buttonHeight + modalPadding
	x := (nc.screenW - modalWidth) / 2
	y := (nc.screenH - height) / 2

	totalW := len(m.buttons)*buttonWidth + (len(m.buttons)-1)*12
	bx := x + (modalWidth-totalW)/2
	by := y + height - modalPadding - buttonHeight
	for i := range m.buttons {
		m.buttons[i].x = bx
		m.buttons[i].y = by
		m.buttons[i].w = buttonWidth
		m.buttons[i].h = buttonHeight
		bx += buttonWidth + 12
	}
}

// Draw renders toasts and, on top of everything, the active modal.
func (nc *NoticeCenter) Draw(screen *ebiten.Image) {
	nc.drawToasts(screen)

	if nc.modal == nil {
		return
	}
	m := nc.modal

	// Dim the whole screen: the notice is blocking.
	vector.DrawFilledRect(screen, 0, 0, float32(nc.screenW), float32(nc.screenH), nc.scheme.Overlay, false)

	height := modalPadding + lineHeight + len(m.message)*lineHeight + 12 + buttonHeight + modalPadding
	x := (nc.screenW - modalWidth) / 2
	y := (nc.screenH - height) / 2

	vector.DrawFilledRect(screen, float32(x), float32(y), modalWidth, float32(height), nc.scheme.Panel, false)
	vector.StrokeRect(screen, float32(x), float32(y), modalWidth, float32(height), 2, nc.scheme.PanelEdge, false)

	ty := y + modalPadding + 10
	text.Draw(screen, m.title, uiFont(), x+modalPadding, ty, nc.scheme.Text)
	ty += lineHeight
	for _, line := range m.message {
		text.Draw(screen, line, uiFont(), x+modalPadding, ty, nc.scheme.TextMuted)
		ty += lineHeight
	}

	mx, my := ebiten.CursorPosition()
	for _, b := range m.buttons {
		clr := nc.scheme.Button
		hot := nc.scheme.ButtonHot
		if b.danger {
			clr = nc.scheme.Danger
			hot = nc.scheme.DangerHot
		}
		if mx >= b.x && mx < b.x+b.w && my >= b.y && my < b.y+b.h {
			clr = hot
		}
		vector.DrawFilledRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), clr, false)
		bounds := text.BoundString(uiFont(), b.label)
		text.Draw(screen, b.label, uiFont(),
			b.x+(b.w-bounds.Dx())/2,
			b.y+(b.h+bounds.Dy())/2-2,
			nc.scheme.MarkerRing)
	}
}

func (nc *NoticeCenter) drawToasts(screen *ebiten.Image) {
	y := 12
	for _, t := range nc.toasts {
		bounds := text.BoundString(uiFont(), t.message)
		w := bounds.Dx() + 24
		h := 30
		x := nc.screenW - w - 12

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), nc.scheme.Panel, false)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 1, nc.scheme.PanelEdge, false)
		text.Draw(screen, t.message, uiFont(), x+12, y+h/2+5, nc.scheme.Text)
		y += h + 8
	}
}

// splitLines wraps a message at ~46 characters so modal text stays inside the box.
func splitLines(message string) []string {
	const limit = 46
	var lines []string
	line := ""
	for _, word := range strings.Fields(message) {
		if line == "" {
			line = word
			continue
		}
		if len(line)+1+len(word) > limit {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
