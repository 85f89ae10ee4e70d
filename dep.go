package ripple

import mapset "github.com/deckarep/golang-set/v2"

// maxMarkerBits caps the recursion depth served by the was/now bitfields.
// Deeper nesting falls back to eager cleanup plus membership tests.
const maxMarkerBits = 30

// Dep is the set of effects subscribed to one source/key pair. The was/now
// bitfields record, per recursion depth, whether the dep was held before the
// current run and whether it has been re-observed during it. Bit b is only
// meaningful while an effect at depth b is running.
type Dep struct {
	subs mapset.Set[*ReactiveEffect]
	was  uint32
	now  uint32
}

func newDep() *Dep {
	return &Dep{subs: mapset.NewThreadUnsafeSet[*ReactiveEffect]()}
}

func (d *Dep) wasTracked(bit uint32) bool { return d.was&bit != 0 }
func (d *Dep) newTracked(bit uint32) bool { return d.now&bit != 0 }

// markWasTracked flags every dep the effect currently holds as previously
// tracked at the given depth, before the body re-runs.
func markWasTracked(e *ReactiveEffect, bit uint32) {
	for _, dep := range e.deps {
		dep.was |= bit
	}
}

// finalizeDepMarkers drops the effect from every dep that was held before
// the run but not re-observed during it, compacts the effect's own list to
// the survivors, and clears this depth's bits on every visited dep.
func finalizeDepMarkers(e *ReactiveEffect, bit uint32) {
	kept := e.deps[:0]
	for _, dep := range e.deps {
		if dep.wasTracked(bit) && !dep.newTracked(bit) {
			dep.subs.Remove(e)
		} else {
			kept = append(kept, dep)
		}
		dep.was &^= bit
		dep.now &^= bit
	}
	for i := len(kept); i < len(e.deps); i++ {
		e.deps[i] = nil
	}
	e.deps = kept
}
