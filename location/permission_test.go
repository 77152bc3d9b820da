package location

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	records  map[string][]byte
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{records: map[string][]byte{}}
}

func (s *memStore) Read(key string, v any) (bool, error) {
	data, ok := s.records[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func (s *memStore) Write(key string, v any) error {
	if s.writeErr != nil {
		return s.writeErr
	}
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

func TestGate_StartsUnset(t *testing.T) {
	g := NewGate(newMemStore(), zerolog.Nop())

	assert.Equal(t, PermissionUnset, g.Status())
}

func TestGate_GrantPersistsAcrossRestarts(t *testing.T) {
	store := newMemStore()

	NewGate(store, zerolog.Nop()).Grant()

	restored := NewGate(store, zerolog.Nop())
	assert.Equal(t, PermissionGranted, restored.Status())
}

func TestGate_DenyPersistsAcrossRestarts(t *testing.T) {
	store := newMemStore()

	NewGate(store, zerolog.Nop()).Deny()

	restored := NewGate(store, zerolog.Nop())
	assert.Equal(t, PermissionDenied, restored.Status())
}

func TestGate_UnreadableRecordTreatedAsUnset(t *testing.T) {
	store := newMemStore()
	store.records[permissionKey] = []byte("not json")

	g := NewGate(store, zerolog.Nop())

	assert.Equal(t, PermissionUnset, g.Status())
}

func TestGate_WriteFailureStillUpdatesInMemoryState(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("disk full")

	g := NewGate(store, zerolog.Nop())
	g.Grant()

	require.Equal(t, PermissionGranted, g.Status())
}

func TestPermission_String(t *testing.T) {
	assert.Equal(t, "unset", PermissionUnset.String())
	assert.Equal(t, "granted", PermissionGranted.String())
	assert.Equal(t, "denied", PermissionDenied.String())
}
