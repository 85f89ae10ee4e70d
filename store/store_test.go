package store_test

import (
	"testing"

	"github.com/ripplekit/ripple"
	"github.com/ripplekit/ripple/store"
	"github.com/stretchr/testify/assert"
)

// map reads subscribe and writes re-run the readers
func TestMapReadWrite(t *testing.T) {
	tc := ripple.NewTrackingContext()
	m := store.NewMap(tc)
	m.Set("name", "ada")

	var seen []any
	ripple.Effect(tc, func() {
		seen = append(seen, m.Get("name"))
	})

	m.Set("name", "grace")
	m.Set("other", 1)
	assert.Equal(t, []any{"ada", "grace"}, seen)

	// writing the same value back is not a change
	m.Set("name", "grace")
	assert.Len(t, seen, 2)
}

// size readers react to shape changes, not value replacement
func TestMapLenSubscription(t *testing.T) {
	tc := ripple.NewTrackingContext()
	m := store.NewMap(tc)
	m.Set("a", 1)

	var sizes []int
	ripple.Effect(tc, func() {
		sizes = append(sizes, m.Len())
	})

	m.Set("a", 2)
	assert.Equal(t, []int{1}, sizes)
	m.Set("b", 3)
	assert.Equal(t, []int{1, 2}, sizes)
	m.Delete("a")
	assert.Equal(t, []int{1, 2, 1}, sizes)
}

// key-set readers ignore value replacement entirely
func TestMapKeysSubscription(t *testing.T) {
	tc := ripple.NewTrackingContext()
	m := store.NewMap(tc)
	m.Set("a", 1)

	keyRuns := 0
	ripple.Effect(tc, func() {
		keyRuns++
		m.Keys()
	})

	m.Set("a", 99)
	assert.Equal(t, 1, keyRuns)
	m.Set("b", 1)
	assert.Equal(t, 2, keyRuns)
	m.Delete("b")
	assert.Equal(t, 3, keyRuns)
}

// clearing re-runs every subscriber the map ever had
func TestMapClear(t *testing.T) {
	tc := ripple.NewTrackingContext()
	m := store.NewMap(tc)
	m.Set("a", 1)
	m.Set("b", 2)

	aRuns, hasRuns := 0, 0
	ripple.Effect(tc, func() {
		aRuns++
		m.Get("a")
	})
	ripple.Effect(tc, func() {
		hasRuns++
		m.Has("b")
	})

	m.Clear()
	assert.Equal(t, 2, aRuns)
	assert.Equal(t, 2, hasRuns)

	// clearing an empty map is not a change
	m.Clear()
	assert.Equal(t, 2, aRuns)
}

// list appends reach length readers, element writes reach index readers
func TestListAppendAndSet(t *testing.T) {
	tc := ripple.NewTrackingContext()
	l := store.NewList(tc)
	l.Append("a")
	l.Append("b")

	var lengths []int
	var firsts []any
	ripple.Effect(tc, func() {
		lengths = append(lengths, l.Len())
	})
	ripple.Effect(tc, func() {
		firsts = append(firsts, l.Get(0))
	})

	l.Append("c")
	assert.Equal(t, []int{2, 3}, lengths)
	assert.Equal(t, []any{"a"}, firsts)

	l.Set(0, "z")
	assert.Equal(t, []int{2, 3}, lengths)
	assert.Equal(t, []any{"a", "z"}, firsts)
}

// truncation invalidates dropped indices and the length, nothing else
func TestListTruncate(t *testing.T) {
	tc := ripple.NewTrackingContext()
	l := store.NewList(tc)
	for _, v := range []any{"a", "b", "c", "d"} {
		l.Append(v)
	}

	lowRuns, highRuns, lenRuns := 0, 0, 0
	ripple.Effect(tc, func() {
		lowRuns++
		l.Get(0)
	})
	ripple.Effect(tc, func() {
		highRuns++
		l.Get(3)
	})
	ripple.Effect(tc, func() {
		lenRuns++
		l.Len()
	})

	l.Truncate(2)
	assert.Equal(t, 1, lowRuns)
	assert.Equal(t, 2, highRuns)
	assert.Equal(t, 2, lenRuns)

	// out-of-range reads settle to nil after the shrink
	assert.Nil(t, l.Get(3))
}

// out-of-range writes are ignored
func TestListBounds(t *testing.T) {
	tc := ripple.NewTrackingContext()
	l := store.NewList(tc)
	l.Append("a")

	runs := 0
	ripple.Effect(tc, func() {
		runs++
		l.Len()
	})

	l.Set(5, "x")
	l.Set(-1, "x")
	l.Truncate(9)
	l.Truncate(-1)
	assert.Equal(t, 1, runs)
}
