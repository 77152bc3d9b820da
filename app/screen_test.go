package app

import (
	"encoding/json"
	"errors"
	"testing"

	"geomark/location"
	"geomark/typedef"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMarkerStore is an in-memory MarkerStore.
type fakeMarkerStore struct {
	marker   *typedef.Coordinate
	saveErr  error
	clearErr error
}

func (f *fakeMarkerStore) Load() (typedef.Coordinate, bool) {
	if f.marker == nil {
		return typedef.Coordinate{}, false
	}
	return *f.marker, true
}

func (f *fakeMarkerStore) Save(c typedef.Coordinate) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cc := c
	f.marker = &cc
	return nil
}

func (f *fakeMarkerStore) Clear() error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.marker = nil
	return nil
}

// fakeNotifier records what the user would have seen. Permission prompts are
// answered according to allow.
type fakeNotifier struct {
	blocking []string
	toasts   []string
	prompts  int
	allow    bool
}

func (f *fakeNotifier) BlockingNotice(title, _ string) {
	f.blocking = append(f.blocking, title)
}

func (f *fakeNotifier) PromptPermission(onAllow, onDeny func()) {
	f.prompts++
	if f.allow {
		onAllow()
	} else {
		onDeny()
	}
}

func (f *fakeNotifier) Toast(message string) {
	f.toasts = append(f.toasts, message)
}

// memStore backs the permission gate in tests.
type memStore struct {
	records map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{records: map[string][]byte{}}
}

func (s *memStore) Read(key string, v any) (bool, error) {
	data, ok := s.records[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, v)
}

func (s *memStore) Write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.records[key] = data
	return nil
}

func (s *memStore) Delete(key string) error {
	delete(s.records, key)
	return nil
}

// stubProvider returns a canned position fix.
type stubProvider struct {
	loc   location.Location
	err   error
	calls int
}

func (p *stubProvider) GetLocation() (location.Location, error) {
	p.calls++
	return p.loc, p.err
}

type screenFixture struct {
	controller *ScreenController
	view       *MapView
	store      *fakeMarkerStore
	notifier   *fakeNotifier
	provider   *stubProvider
	gateStore  *memStore
}

func newScreenFixture(t *testing.T, stored *typedef.Coordinate, perm location.Permission, fix typedef.Coordinate, fixErr error) *screenFixture {
	t.Helper()

	gateStore := newMemStore()
	gate := location.NewGate(gateStore, zerolog.Nop())
	switch perm {
	case location.PermissionGranted:
		gate.Grant()
	case location.PermissionDenied:
		gate.Deny()
	}

	provider := &stubProvider{
		loc: location.Location{Latitude: fix.Latitude, Longitude: fix.Longitude},
		err: fixErr,
	}
	svc := location.NewService(gate, provider, zerolog.Nop())

	store := &fakeMarkerStore{marker: stored}
	notifier := &fakeNotifier{}
	view := NewMapView(DefaultScheme(), typedef.Coordinate{Latitude: 40.4168, Longitude: -3.7038}, zerolog.Nop())

	return &screenFixture{
		controller: NewScreenController(store, svc, view, notifier, zerolog.Nop()),
		view:       view,
		store:      store,
		notifier:   notifier,
		provider:   provider,
		gateStore:  gateStore,
	}
}

func coord(lat, lon float64) *typedef.Coordinate {
	return &typedef.Coordinate{Latitude: lat, Longitude: lon}
}

func TestScreen_InitWithoutStoredMarker(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionUnset, typedef.Coordinate{}, nil)

	assert.Nil(t, f.controller.Marker())
	c := f.view.Center()
	assert.InDelta(t, 40.4168, c.Latitude, 1e-9)
	assert.InDelta(t, -3.7038, c.Longitude, 1e-9)
}

func TestScreen_InitWithStoredMarker(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionUnset, typedef.Coordinate{}, nil)

	require.NotNil(t, f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.controller.Marker())

	c := f.view.Center()
	assert.InDelta(t, 10.0, c.Latitude, 1e-9)
	assert.InDelta(t, 20.0, c.Longitude, 1e-9)
}

func TestScreen_SavePersistsFix(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionGranted, typedef.Coordinate{Latitude: 1, Longitude: 2}, nil)

	f.controller.SaveCurrentPosition()

	require.NotNil(t, f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 1, Longitude: 2}, *f.controller.Marker())
	require.NotNil(t, f.store.marker)
	assert.Equal(t, typedef.Coordinate{Latitude: 1, Longitude: 2}, *f.store.marker)

	// The viewport animates onto the saved marker.
	stepSeconds(f.view, 1.1)
	c := f.view.Center()
	assert.InDelta(t, 1.0, c.Latitude, 1e-9)
	assert.InDelta(t, 2.0, c.Longitude, 1e-9)
}

func TestScreen_SaveDeniedLeavesEverythingUnchanged(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionDenied, typedef.Coordinate{Latitude: 1, Longitude: 2}, nil)
	before := f.view.Center()

	f.controller.SaveCurrentPosition()

	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.store.marker)
	assert.Equal(t, before, f.view.Center())
	assert.Zero(t, f.provider.calls)
	assert.Len(t, f.notifier.blocking, 1, "denial must produce a user-visible notice")
}

func TestScreen_CenterOnMeDeniedLeavesViewportUnchanged(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionDenied, typedef.Coordinate{Latitude: 1, Longitude: 2}, nil)
	before := f.view.Center()

	f.controller.CenterOnMe()

	assert.Equal(t, before, f.view.Center())
	assert.Len(t, f.notifier.blocking, 1)
}

func TestScreen_CenterOnMeMovesViewportOnly(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionGranted, typedef.Coordinate{Latitude: 1, Longitude: 2}, nil)

	f.controller.CenterOnMe()
	stepSeconds(f.view, 1.1)

	c := f.view.Center()
	assert.InDelta(t, 1.0, c.Latitude, 1e-9)
	assert.InDelta(t, 2.0, c.Longitude, 1e-9)

	// The marker stays where it was.
	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.store.marker)
}

func TestScreen_RemoveClearsMemoryAndStorage(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionUnset, typedef.Coordinate{}, nil)

	f.controller.RemoveMarker()

	assert.Nil(t, f.controller.Marker())
	assert.Nil(t, f.store.marker)

	// A subsequent reload yields no marker.
	reloaded := NewScreenController(f.store, location.NewService(location.NewGate(newMemStore(), zerolog.Nop()), nil, zerolog.Nop()),
		NewMapView(DefaultScheme(), typedef.Coordinate{}, zerolog.Nop()), &fakeNotifier{}, zerolog.Nop())
	assert.Nil(t, reloaded.Marker())
}

func TestScreen_RemoveWithoutMarkerOnlyToasts(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionUnset, typedef.Coordinate{}, nil)

	f.controller.RemoveMarker()

	assert.Nil(t, f.controller.Marker())
	assert.NotEmpty(t, f.notifier.toasts)
}

func TestScreen_FirstUsePromptAllow(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionUnset, typedef.Coordinate{Latitude: 3, Longitude: 4}, nil)
	f.notifier.allow = true

	f.controller.SaveCurrentPosition()

	assert.Equal(t, 1, f.notifier.prompts)
	require.NotNil(t, f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 3, Longitude: 4}, *f.controller.Marker())

	// The grant is persisted for the next launch.
	restored := location.NewGate(f.gateStore, zerolog.Nop())
	assert.Equal(t, location.PermissionGranted, restored.Status())
}

func TestScreen_FirstUsePromptDenyAborts(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionUnset, typedef.Coordinate{Latitude: 3, Longitude: 4}, nil)
	f.notifier.allow = false

	f.controller.SaveCurrentPosition()

	assert.Equal(t, 1, f.notifier.prompts)
	assert.Nil(t, f.controller.Marker())
	assert.Zero(t, f.provider.calls)
	assert.Len(t, f.notifier.blocking, 1)

	restored := location.NewGate(f.gateStore, zerolog.Nop())
	assert.Equal(t, location.PermissionDenied, restored.Status())
}

func TestScreen_FixFailureLeavesMarkerAndToasts(t *testing.T) {
	f := newScreenFixture(t, coord(10, 20), location.PermissionGranted, typedef.Coordinate{}, errors.New("gps unplugged"))

	f.controller.SaveCurrentPosition()

	assert.Equal(t, typedef.Coordinate{Latitude: 10, Longitude: 20}, *f.controller.Marker())
	assert.Empty(t, f.notifier.blocking)
	assert.NotEmpty(t, f.notifier.toasts)
}

func TestScreen_StorageWriteFailureStillUpdatesMemory(t *testing.T) {
	f := newScreenFixture(t, nil, location.PermissionGranted, typedef.Coordinate{Latitude: 1, Longitude: 2}, nil)
	f.store.saveErr = errors.New("disk full")

	f.controller.SaveCurrentPosition()

	require.NotNil(t, f.controller.Marker())
	assert.Equal(t, typedef.Coordinate{Latitude: 1, Longitude: 2}, *f.controller.Marker())
	assert.NotEmpty(t, f.notifier.toasts)
}
