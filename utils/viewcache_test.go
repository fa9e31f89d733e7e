package utils

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type habitsFixture struct {
	Date string          `json:"date"`
	Logs map[string]bool `json:"logs"`
}

func TestMutateSuccessInvalidates(t *testing.T) {
	store := NewMemoryViewStore()
	vc := NewViewCache(store, time.Minute)

	vc.Put("k", []byte(`{"date":"2025-03-10","logs":{}}`))

	err := MutateJSON(vc, "k", func(v *habitsFixture) {
		v.Logs["fajr"] = true
	}, func() error { return nil })
	require.NoError(t, err)

	// Success drops the view so the next read refetches authoritative
	// state.
	_, ok := vc.Get("k")
	assert.False(t, ok)
}

func TestMutateFailureRestoresSnapshot(t *testing.T) {
	store := NewMemoryViewStore()
	vc := NewViewCache(store, time.Minute)

	snapshot := []byte(`{"date":"2025-03-10","logs":{"dhuhr":true}}`)
	vc.Put("k", snapshot)

	var speculative []byte
	err := MutateJSON(vc, "k", func(v *habitsFixture) {
		v.Logs["fajr"] = true
	}, func() error {
		speculative, _ = vc.Get("k")
		return errors.New("write failed")
	})
	require.Error(t, err)

	// The patch was visible while the write ran.
	assert.Contains(t, string(speculative), "fajr")

	// After rollback the view equals the pre-mutation snapshot exactly.
	restored, ok := vc.Get("k")
	require.True(t, ok)
	assert.Equal(t, snapshot, restored)
}

func TestMutateFailureWithColdCacheLeavesNoView(t *testing.T) {
	store := NewMemoryViewStore()
	vc := NewViewCache(store, time.Minute)

	err := vc.Mutate("k", func(current []byte) []byte {
		assert.Nil(t, current)
		return []byte("speculative")
	}, func() error { return errors.New("write failed") })
	require.Error(t, err)

	_, ok := vc.Get("k")
	assert.False(t, ok)
}

func TestMutateSkipsPatchOnUndecodableView(t *testing.T) {
	store := NewMemoryViewStore()
	vc := NewViewCache(store, time.Minute)
	vc.Put("k", []byte("not json"))

	wrote := false
	err := MutateJSON(vc, "k", func(v *habitsFixture) {
		t.Fatal("patch must not run for an undecodable view")
	}, func() error {
		wrote = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, wrote)
}

func TestMutateSerializesPerKey(t *testing.T) {
	store := NewMemoryViewStore()
	vc := NewViewCache(store, time.Minute)
	vc.Put("k", []byte(`{"date":"d","logs":{}}`))

	inWrite := 0
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = vc.Mutate("k", nil, func() error {
				mu.Lock()
				inWrite++
				assert.Equal(t, 1, inWrite)
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inWrite--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
}
