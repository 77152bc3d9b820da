package app

import (
	"errors"

	"geomark/location"
	"geomark/typedef"

	"github.com/rs/zerolog"
)

// Notifier is how the screen controller talks to the user. *NoticeCenter
// implements it; tests substitute a recorder.
type Notifier interface {
	BlockingNotice(title, message string)
	PromptPermission(onAllow, onDeny func())
	Toast(message string)
}

// MarkerStore is the persistence surface the controller writes through to.
// *storage.MarkerGateway implements it.
type MarkerStore interface {
	Load() (typedef.Coordinate, bool)
	Save(typedef.Coordinate) error
	Clear() error
}

// ScreenController owns the single optional marker and keeps it synchronized
// with the persisted copy. Every mutation writes through before the
// interaction is considered complete.
type ScreenController struct {
	marker *typedef.Coordinate

	store    MarkerStore
	loc      *location.Service
	view     *MapView
	notifier Notifier
	log      zerolog.Logger
}

// NewScreenController loads the persisted marker (absence is not an error)
// and, when one exists, re-centers the view on it.
func NewScreenController(store MarkerStore, loc *location.Service, view *MapView, notifier Notifier, logger zerolog.Logger) *ScreenController {
	s := &ScreenController{
		store:    store,
		loc:      loc,
		view:     view,
		notifier: notifier,
		log:      logger,
	}

	if c, ok := store.Load(); ok {
		s.marker = &c
		view.SetMarker(s.marker)
		view.JumpTo(c, centerSpanDeg)
		logger.Info().Stringer("marker", c).Msg("restored persisted marker")
	}
	return s
}

// Marker returns the current marker, or nil when none exists.
func (s *ScreenController) Marker() *typedef.Coordinate {
	return s.marker
}

// SaveCurrentPosition acquires a position fix and replaces the marker with it.
func (s *ScreenController) SaveCurrentPosition() {
	s.withPermission(s.saveAtCurrentFix)
}

func (s *ScreenController) saveAtCurrentFix() {
	fix, err := s.loc.Acquire()
	if err != nil {
		s.reportAcquireError(err)
		return
	}
	s.view.SetFix(fix)

	c := fix
	s.marker = &c
	s.view.SetMarker(s.marker)
	if err := s.store.Save(c); err != nil {
		s.log.Error().Err(err).Msg("failed to persist marker")
		s.notifier.Toast("Marker saved, but could not be persisted")
	} else {
		s.notifier.Toast("Marker saved")
	}
	s.view.CenterOn(c)
	s.log.Info().Stringer("marker", c).Msg("marker saved")
}

// RemoveMarker clears both the in-memory marker and the persisted record.
func (s *ScreenController) RemoveMarker() {
	if s.marker == nil {
		s.notifier.Toast("No marker to remove")
		return
	}
	s.marker = nil
	s.view.SetMarker(nil)
	if err := s.store.Clear(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear persisted marker")
	}
	s.notifier.Toast("Marker removed")
	s.log.Info().Msg("marker removed")
}

// CenterOnMe acquires a position fix and animates the viewport to it. The
// marker is untouched.
func (s *ScreenController) CenterOnMe() {
	s.withPermission(func() {
		fix, err := s.loc.Acquire()
		if err != nil {
			s.reportAcquireError(err)
			return
		}
		s.view.SetFix(fix)
		s.view.CenterOn(fix)
	})
}

// CopyMarker puts the marker coordinate on the system clipboard.
func (s *ScreenController) CopyMarker() {
	if s.marker == nil {
		return
	}
	if copyToClipboard(s.marker.String()) {
		s.notifier.Toast("Coordinates copied")
	}
}

// withPermission runs action only with granted foreground access, prompting
// the user on first use and aborting with a blocking notice on denial.
func (s *ScreenController) withPermission(action func()) {
	gate := s.loc.Gate()
	switch gate.Status() {
	case location.PermissionGranted:
		action()
	case location.PermissionDenied:
		s.noticeDenied()
	default:
		s.notifier.PromptPermission(
			func() {
				gate.Grant()
				action()
			},
			func() {
				gate.Deny()
				s.noticeDenied()
			},
		)
	}
}

func (s *ScreenController) noticeDenied() {
	s.notifier.BlockingNotice(
		"Location access denied",
		"Geomark cannot read your position without location access, so this action was cancelled.",
	)
}

func (s *ScreenController) reportAcquireError(err error) {
	if errors.Is(err, location.ErrPermissionDenied) {
		s.noticeDenied()
		return
	}
	s.log.Warn().Err(err).Msg("position fix failed")
	s.notifier.Toast("Could not get a position fix")
}
