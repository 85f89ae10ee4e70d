package ripple

import mapset "github.com/deckarep/golang-set/v2"

// Trigger fans a mutation of (source, key) out to every subscribed effect.
// A source nothing ever tracked is a no-op, not an error. A single trigger
// never re-runs the same effect twice, even when several deps are affected.
func (tc *TrackingContext) Trigger(source any, op OpKind, key, newValue, oldValue any) {
	depsMap := tc.depsOf(source)
	if depsMap == nil || !hashableKey(key) {
		return
	}
	kind := kindOf(source)

	var affected []*Dep
	switch {
	case op == OpClear:
		// Every key of the source becomes stale at once.
		for _, dep := range depsMap {
			affected = append(affected, dep)
		}
	case kind == KindSequence && op == OpUpdate && key == LengthKey:
		// Shrinking a sequence invalidates its length plus every index that
		// fell off the end.
		newLen, _ := asIndex(newValue)
		for depKey, dep := range depsMap {
			if depKey == LengthKey {
				affected = append(affected, dep)
				continue
			}
			if depKey == IterateKey || depKey == MapKeyIterate {
				continue
			}
			if idx, ok := asIndex(depKey); ok && idx >= newLen {
				affected = append(affected, dep)
			}
		}
	default:
		if dep, ok := depsMap[key]; ok {
			affected = append(affected, dep)
		}
		// Sentinel fan-out: mutations that change iteration shape also hit
		// the iteration subscribers.
		switch op {
		case OpAdd:
			if kind != KindSequence {
				if dep, ok := depsMap[IterateKey]; ok {
					affected = append(affected, dep)
				}
				if kind == KindMap {
					if dep, ok := depsMap[MapKeyIterate]; ok {
						affected = append(affected, dep)
					}
				}
			} else if _, ok := asIndex(key); ok {
				if dep, ok := depsMap[LengthKey]; ok {
					affected = append(affected, dep)
				}
			}
		case OpDelete:
			if kind != KindSequence {
				if dep, ok := depsMap[IterateKey]; ok {
					affected = append(affected, dep)
				}
				if kind == KindMap {
					if dep, ok := depsMap[MapKeyIterate]; ok {
						affected = append(affected, dep)
					}
				}
			}
		case OpUpdate:
			// Replacing a value changes iteration results for maps only.
			if kind == KindMap {
				if dep, ok := depsMap[IterateKey]; ok {
					affected = append(affected, dep)
				}
			}
		}
	}

	info := DebuggerEvent{Source: source, Op: op, Key: key, NewValue: newValue, OldValue: oldValue}
	switch len(affected) {
	case 0:
	case 1:
		tc.triggerEffects(affected[0].subs, info)
	default:
		union := mapset.NewThreadUnsafeSet[*ReactiveEffect]()
		for _, dep := range affected {
			dep.subs.Each(func(e *ReactiveEffect) bool {
				union.Add(e)
				return false
			})
		}
		tc.triggerEffects(union, info)
	}
}

// triggerEffects re-runs each subscribed effect, via its scheduler when it
// has one. Membership is snapshotted first: an effect's own run mutates the
// live set and must not affect this pass. The active effect is skipped
// unless it opted into recursion.
func (tc *TrackingContext) triggerEffects(subs mapset.Set[*ReactiveEffect], info DebuggerEvent) {
	for _, e := range subs.ToSlice() {
		if e == tc.activeEffect && !e.allowRecurse {
			continue
		}
		if tc.onTrigger != nil {
			ev := info
			ev.Effect = e
			tc.onTrigger(ev)
		}
		if e.scheduler != nil {
			e.scheduler()
		} else {
			e.Run()
		}
	}
}
