package ripple

// Track records that the active effect read (source, key). No-op when
// tracking is paused or no effect is running.
func (tc *TrackingContext) Track(source, key any) {
	if !tc.shouldTrack || tc.activeEffect == nil {
		return
	}
	dep := tc.depFor(source, key)
	if dep == nil {
		return
	}
	tc.trackEffects(dep, source, key)
}

// trackEffects links the active effect and dep bidirectionally, at most once
// per run. Within the bitfield range the now-bit dedupes re-reads; past it a
// plain membership test does.
func (tc *TrackingContext) trackEffects(dep *Dep, source, key any) {
	e := tc.activeEffect
	shouldAdd := false
	if tc.depth <= maxMarkerBits {
		if !dep.newTracked(tc.depthBit) {
			dep.now |= tc.depthBit
			shouldAdd = !dep.wasTracked(tc.depthBit)
		}
	} else {
		shouldAdd = !dep.subs.Contains(e)
	}
	if !shouldAdd {
		return
	}
	dep.subs.Add(e)
	e.deps = append(e.deps, dep)
	if tc.onTrack != nil {
		tc.onTrack(DebuggerEvent{Effect: e, Source: source, Op: OpGet, Key: key})
	}
}
