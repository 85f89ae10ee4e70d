// Package store holds thin observed collections that call into the tracking
// engine the way an interception layer would: Track on every read, Trigger
// on every mutation. They exist for tests and benchmarks; the engine itself
// never depends on them.
package store

import (
	"reflect"

	"github.com/ripplekit/ripple"
)

// Map is an observed associative collection.
type Map struct {
	tc   *ripple.TrackingContext
	data map[string]any
}

func NewMap(tc *ripple.TrackingContext) *Map {
	return &Map{tc: tc, data: map[string]any{}}
}

func (m *Map) SourceKind() ripple.SourceKind { return ripple.KindMap }

func (m *Map) Get(key string) any {
	m.tc.Track(m, key)
	return m.data[key]
}

func (m *Map) Has(key string) bool {
	m.tc.Track(m, key)
	_, ok := m.data[key]
	return ok
}

// Len subscribes to the key set: size changes on add and delete, never on
// value replacement.
func (m *Map) Len() int {
	m.tc.Track(m, ripple.MapKeyIterate)
	return len(m.data)
}

// Keys subscribes to just the key set; value replacements do not re-trigger.
func (m *Map) Keys() []string {
	m.tc.Track(m, ripple.MapKeyIterate)
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}

func (m *Map) Set(key string, value any) {
	old, existed := m.data[key]
	if existed && reflect.DeepEqual(old, value) {
		return
	}
	m.data[key] = value
	if existed {
		m.tc.Trigger(m, ripple.OpUpdate, key, value, old)
	} else {
		m.tc.Trigger(m, ripple.OpAdd, key, value, nil)
	}
}

func (m *Map) Delete(key string) {
	old, existed := m.data[key]
	if !existed {
		return
	}
	delete(m.data, key)
	m.tc.Trigger(m, ripple.OpDelete, key, nil, old)
}

func (m *Map) Clear() {
	if len(m.data) == 0 {
		return
	}
	m.data = map[string]any{}
	m.tc.Trigger(m, ripple.OpClear, nil, nil, nil)
}

// List is an observed ordered sequence.
type List struct {
	tc    *ripple.TrackingContext
	items []any
}

func NewList(tc *ripple.TrackingContext) *List {
	return &List{tc: tc}
}

func (l *List) SourceKind() ripple.SourceKind { return ripple.KindSequence }

func (l *List) Get(i int) any {
	l.tc.Track(l, i)
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return l.items[i]
}

func (l *List) Len() int {
	l.tc.Track(l, ripple.LengthKey)
	return len(l.items)
}

// Set writes index i, growing the list by one when i == len.
func (l *List) Set(i int, value any) {
	switch {
	case i < 0 || i > len(l.items):
		return
	case i == len(l.items):
		l.items = append(l.items, value)
		l.tc.Trigger(l, ripple.OpAdd, i, value, nil)
	default:
		old := l.items[i]
		if reflect.DeepEqual(old, value) {
			return
		}
		l.items[i] = value
		l.tc.Trigger(l, ripple.OpUpdate, i, value, old)
	}
}

func (l *List) Append(value any) {
	l.Set(len(l.items), value)
}

// Truncate shrinks the list to n items, invalidating dropped indices and
// length subscribers.
func (l *List) Truncate(n int) {
	if n < 0 || n >= len(l.items) {
		return
	}
	old := len(l.items)
	l.items = l.items[:n]
	l.tc.Trigger(l, ripple.OpUpdate, ripple.LengthKey, n, old)
}
