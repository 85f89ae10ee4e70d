package ripple

// Scheduler overrides direct re-execution when an effect is triggered. The
// scheduler decides whether and when to call Run, which is how batching and
// computed-value caching are built on top of the engine.
type Scheduler func()

// EffectFunc is an effect body. It may read sources, write sources, and
// produce a value.
type EffectFunc func() any

// ReactiveEffect is a re-runnable unit of work. It holds the deps it
// currently belongs to, mirrored by its membership in each dep's subscriber
// set; Run re-validates that edge list on every invocation.
type ReactiveEffect struct {
	tc *TrackingContext
	fn EffectFunc

	deps   []*Dep
	parent *ReactiveEffect

	active       bool
	allowRecurse bool
	deferStop    bool
	lazy         bool
	scheduler    Scheduler
	scope        *Scope
	onStop       func()
}

type EffectOption func(*ReactiveEffect)

// WithScheduler makes triggers invoke s instead of re-running the body.
func WithScheduler(s Scheduler) EffectOption {
	return func(e *ReactiveEffect) { e.scheduler = s }
}

// AllowRecurse permits the effect to re-trigger itself by writing a source
// it also reads. Default is to skip the active effect during fan-out.
func AllowRecurse() EffectOption {
	return func(e *ReactiveEffect) { e.allowRecurse = true }
}

// OnStop registers a callback invoked once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *ReactiveEffect) { e.onStop = fn }
}

// Lazy skips the initial run; the caller runs the effect when ready.
func Lazy() EffectOption {
	return func(e *ReactiveEffect) { e.lazy = true }
}

// InScope adds the effect to a disposal group.
func InScope(s *Scope) EffectOption {
	return func(e *ReactiveEffect) { e.scope = s }
}

func NewEffect(tc *TrackingContext, fn EffectFunc, opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{tc: tc, fn: fn, active: true}
	for _, opt := range opts {
		opt(e)
	}
	if e.scope != nil {
		e.scope.add(e)
	}
	return e
}

// Run executes the body with tracking armed and returns its value. After it
// returns, the effect's dep list equals exactly the sources read during this
// invocation. Bookkeeping is deferred so a panicking body still restores the
// context before the panic propagates.
func (e *ReactiveEffect) Run() any {
	if !e.active {
		// Detached execution, no tracking.
		return e.fn()
	}
	tc := e.tc
	for parent := tc.activeEffect; parent != nil; parent = parent.parent {
		if parent == e {
			// Already somewhere on the active chain; re-entering would
			// corrupt the marker bits for the outer invocation.
			return nil
		}
	}

	prevEffect := tc.activeEffect
	prevShouldTrack := tc.shouldTrack

	e.parent = prevEffect
	tc.activeEffect = e
	tc.shouldTrack = true
	tc.depth++
	tc.depthBit = 1 << uint(tc.depth)

	if tc.depth <= maxMarkerBits {
		markWasTracked(e, tc.depthBit)
	} else {
		// Past the bitfield range: rebuild the edge list from empty.
		e.cleanup()
	}

	defer func() {
		if tc.depth <= maxMarkerBits {
			finalizeDepMarkers(e, tc.depthBit)
		}
		tc.depth--
		tc.depthBit = 1 << uint(tc.depth)
		tc.activeEffect = prevEffect
		tc.shouldTrack = prevShouldTrack
		e.parent = nil
		if e.deferStop {
			e.deferStop = false
			e.Stop()
		}
	}()

	return e.fn()
}

// Stop severs every dep membership and retires the effect for good. A
// stopped effect still executes its body when run manually but no longer
// tracks or re-triggers. Idempotent.
func (e *ReactiveEffect) Stop() {
	if !e.active {
		return
	}
	for a := e.tc.activeEffect; a != nil; a = a.parent {
		if a == e {
			// Severing mid-run would strand this frame's marker bits on the
			// deps it holds; the stop lands when the frame finalizes.
			e.deferStop = true
			return
		}
	}
	e.cleanup()
	if e.onStop != nil {
		e.onStop()
	}
	e.active = false
}

// Active reports whether the effect still participates in tracking.
func (e *ReactiveEffect) Active() bool { return e.active }

// Deps reports how many dependency sets the effect currently belongs to.
func (e *ReactiveEffect) Deps() int { return len(e.deps) }

func (e *ReactiveEffect) cleanup() {
	for _, dep := range e.deps {
		dep.subs.Remove(e)
	}
	e.deps = e.deps[:0]
}

// Runner is the bound handle returned by Effect, exposing the effect for
// introspection and disposal.
type Runner struct {
	Effect *ReactiveEffect
}

func (r *Runner) Run() any { return r.Effect.Run() }
func (r *Runner) Stop()    { r.Effect.Stop() }

// Effect wraps fn in a new effect and runs it immediately unless Lazy.
func Effect(tc *TrackingContext, fn func(), opts ...EffectOption) *Runner {
	e := NewEffect(tc, func() any {
		fn()
		return nil
	}, opts...)
	if !e.lazy {
		e.Run()
	}
	return &Runner{Effect: e}
}
