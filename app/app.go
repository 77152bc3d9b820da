package app

import (
	"time"

	"geomark/config"
	"geomark/location"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

// State holds everything the map screen needs per frame.
type State struct {
	view       *MapView
	controller *ScreenController
	notices    *NoticeCenter
	controls   *ControlBar
	sideMenu   *SideMenu // nil when the variant is disabled
	debug      *DebugOverlay

	screenW    int
	screenH    int
	lastUpdate time.Time

	log zerolog.Logger
}

// Game implements ebiten.Game over the screen state.
type Game struct {
	state *State
}

// New wires the map screen from its dependencies. The viewport starts at the
// persisted marker when one exists, else at the configured fallback.
func New(cfg config.Config, store MarkerStore, loc *location.Service, logger zerolog.Logger) *Game {
	scheme := SchemeByName(cfg.UI.ColorScheme)

	view := NewMapView(scheme, cfg.Fallback(), logger)
	notices := NewNoticeCenter(scheme)
	controller := NewScreenController(store, loc, view, notices, logger)

	controls := NewControlBar(scheme,
		controller.SaveCurrentPosition,
		controller.RemoveMarker,
		controller.CenterOnMe,
	)

	state := &State{
		view:       view,
		controller: controller,
		notices:    notices,
		controls:   controls,
		debug:      NewDebugOverlay(),
		screenW:    cfg.Window.Width,
		screenH:    cfg.Window.Height,
		log:        logger,
	}

	if cfg.UI.SideMenu {
		state.sideMenu = NewSideMenu(scheme)
		controls.EnableMenuToggle(state.sideMenu.Toggle)
	}

	return &Game{state: state}
}

// Update advances the screen by one tick.
func (g *Game) Update() error {
	return g.state.update()
}

func (s *State) update() error {
	now := time.Now()
	deltaTime := now.Sub(s.lastUpdate).Seconds()
	if s.lastUpdate.IsZero() || deltaTime > 0.25 {
		deltaTime = 1.0 / 60.0
	}
	s.lastUpdate = now

	s.handleKeys()

	// A modal notice owns all input while visible.
	blocked := s.notices.Update(s.screenW, s.screenH)

	handled := blocked
	if !handled {
		handled = s.controls.Update(s.screenW, s.screenH)
	}
	if s.sideMenu != nil {
		if s.sideMenu.Update(deltaTime, s.screenH) && !blocked {
			handled = true
		}
	}

	s.view.Update(deltaTime, handled)
	return nil
}

func (s *State) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.debug.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.view.ToggleCoordinates()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.controller.CopyMarker()
	}
	if s.sideMenu != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			s.sideMenu.Toggle()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && s.sideMenu.IsVisible() {
			s.sideMenu.Hide()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// Draw renders the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.state

	s.view.Draw(screen)
	s.controls.Draw(screen)
	if s.sideMenu != nil {
		s.sideMenu.Draw(screen)
	}
	s.debug.Draw(screen)

	// Notices render last so a blocking modal really sits on top of everything.
	s.notices.Draw(screen)
}

// Layout propagates the window size to the viewport and UI.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.state.screenW, g.state.screenH
	}
	g.state.screenW = outsideWidth
	g.state.screenH = outsideHeight
	g.state.view.SetScreenSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
