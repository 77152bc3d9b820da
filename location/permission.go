package location

import (
	"github.com/rs/zerolog"
)

// Permission is the user's answer to the location-access prompt.
type Permission int

const (
	// PermissionUnset means the user has never been asked.
	PermissionUnset Permission = iota
	// PermissionGranted allows position fixes while the app is in the foreground.
	PermissionGranted
	// PermissionDenied blocks position fixes until the user changes their mind.
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "unset"
	}
}

const permissionKey = "location_permission"

// permissionRecord is the persisted form of the permission decision.
type permissionRecord struct {
	Granted bool `json:"granted"`
}

// Store is the subset of the persistence layer the gate needs.
// *storage.FileStore satisfies it.
type Store interface {
	Read(key string, v any) (bool, error)
	Write(key string, v any) error
	Delete(key string) error
}

// Gate holds the foreground location permission. The decision is persisted so
// the user is only prompted once.
type Gate struct {
	store  Store
	status Permission
	log    zerolog.Logger
}

// NewGate creates a gate, restoring any previously persisted decision.
func NewGate(store Store, logger zerolog.Logger) *Gate {
	g := &Gate{store: store, status: PermissionUnset, log: logger}

	var rec permissionRecord
	ok, err := store.Read(permissionKey, &rec)
	if err != nil {
		logger.Warn().Err(err).Msg("stored permission is unreadable, treating as unset")
		return g
	}
	if ok {
		if rec.Granted {
			g.status = PermissionGranted
		} else {
			g.status = PermissionDenied
		}
	}
	return g
}

// Status returns the current permission state.
func (g *Gate) Status() Permission {
	return g.status
}

// Grant records that the user allowed location access.
func (g *Gate) Grant() {
	g.set(PermissionGranted)
}

// Deny records that the user refused location access.
func (g *Gate) Deny() {
	g.set(PermissionDenied)
}

func (g *Gate) set(p Permission) {
	g.status = p
	rec := permissionRecord{Granted: p == PermissionGranted}
	if err := g.store.Write(permissionKey, rec); err != nil {
		g.log.Error().Err(err).Msg("failed to persist permission decision")
	}
	g.log.Info().Stringer("permission", p).Msg("location permission updated")
}
