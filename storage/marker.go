package storage

import (
	"geomark/typedef"

	"github.com/rs/zerolog"
)

// MarkerKey is the key the single persisted marker lives under.
const MarkerKey = "marker"

// MarkerGateway reads and writes the single marker record.
type MarkerGateway struct {
	store Store
	log   zerolog.Logger
}

// NewMarkerGateway creates a gateway over the given store.
func NewMarkerGateway(store Store, logger zerolog.Logger) *MarkerGateway {
	return &MarkerGateway{store: store, log: logger}
}

// Load returns the stored marker, or ok=false when none was ever stored.
// A record that fails to decode is treated the same as an absent one; the
// failure is logged but never surfaced.
func (g *MarkerGateway) Load() (typedef.Coordinate, bool) {
	var c typedef.Coordinate
	ok, err := g.store.Read(MarkerKey, &c)
	if err != nil {
		g.log.Warn().Err(err).Msg("stored marker is unreadable, treating as absent")
		return typedef.Coordinate{}, false
	}
	return c, ok
}

// Save replaces the stored marker with c.
func (g *MarkerGateway) Save(c typedef.Coordinate) error {
	return g.store.Write(MarkerKey, c)
}

// Clear removes the stored marker. Clearing an absent marker succeeds.
func (g *MarkerGateway) Clear() error {
	return g.store.Delete(MarkerKey)
}
