package ripple

import (
	"reflect"
	"runtime"
)

type keyDeps map[any]*Dep

// sourceIdent is the registry key for a source. Reference-typed sources are
// identified by (type, address); the type disambiguates pointers that share
// an address, like a struct and its first field. Comparable value sources
// are identified by the value itself.
type sourceIdent struct {
	typ reflect.Type
	ptr uintptr
	val any
}

// identOf resolves a source to its registry identity. The second result
// reports whether the registry may claim the source's finalizer to purge the
// entry once the source is collected; only plain pointers qualify. Sources
// with no usable identity (non-comparable values) yield ok=false and are
// treated as untrackable.
func identOf(source any) (id sourceIdent, weakable, ok bool) {
	if source == nil {
		return id, false, false
	}
	v := reflect.ValueOf(source)
	switch v.Kind() {
	case reflect.Pointer:
		return sourceIdent{typ: v.Type(), ptr: v.Pointer()}, true, true
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return sourceIdent{typ: v.Type(), ptr: v.Pointer()}, false, true
	}
	if !v.Comparable() {
		return id, false, false
	}
	return sourceIdent{val: source}, false, true
}

// hashableKey reports whether key can live in a keyDeps map. Unhashable
// keys are malformed per the protocol and the call ignoring them a no-op.
func hashableKey(key any) bool {
	if key == nil {
		return true
	}
	return reflect.ValueOf(key).Comparable()
}

// depFor resolves or creates the dep for (source, key). Entries are created
// lazily and never removed eagerly; pointer sources get a finalizer that
// purges their inner map once the source itself is unreachable, so the
// registry never keeps a source alive.
func (tc *TrackingContext) depFor(source, key any) *Dep {
	id, weakable, ok := identOf(source)
	if !ok || !hashableKey(key) {
		return nil
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	deps, ok := tc.targets[id]
	if !ok {
		deps = keyDeps{}
		tc.targets[id] = deps
		if weakable {
			runtime.SetFinalizer(source, func(any) { tc.forget(id) })
		}
	}
	dep, ok := deps[key]
	if !ok {
		dep = newDep()
		deps[key] = dep
	}
	return dep
}

// depsOf returns the inner map for a source, or nil if nothing was ever
// tracked on it.
func (tc *TrackingContext) depsOf(source any) keyDeps {
	id, _, ok := identOf(source)
	if !ok {
		return nil
	}
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return tc.targets[id]
}

// forget runs on the finalizer goroutine, the one caller outside the single
// execution stream; the registry mutex exists for it alone.
func (tc *TrackingContext) forget(id sourceIdent) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	delete(tc.targets, id)
}
