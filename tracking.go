package ripple

import "sync"

// TrackingContext is the ambient state every entry point shares: the
// currently-running effect, the should-track flag with its save/restore
// stack, the recursion depth driving the dep bitfields, and the source
// registry. It is an explicit object rather than package globals so tests
// can run isolated graphs side by side. Single execution stream assumed;
// see registry.go for the one exception.
type TrackingContext struct {
	activeEffect *ReactiveEffect
	shouldTrack  bool
	trackStack   []bool

	depth    int
	depthBit uint32

	mu      sync.Mutex
	targets map[sourceIdent]keyDeps

	onTrack   DebugFunc
	onTrigger DebugFunc
}

func NewTrackingContext() *TrackingContext {
	return &TrackingContext{
		shouldTrack: true,
		depthBit:    1,
		targets:     map[sourceIdent]keyDeps{},
	}
}

// PauseTracking disables read recording until the matching ResetTracking.
func (tc *TrackingContext) PauseTracking() {
	tc.trackStack = append(tc.trackStack, tc.shouldTrack)
	tc.shouldTrack = false
}

// EnableTracking re-enables read recording until the matching ResetTracking.
func (tc *TrackingContext) EnableTracking() {
	tc.trackStack = append(tc.trackStack, tc.shouldTrack)
	tc.shouldTrack = true
}

// ResetTracking restores the flag saved by the last PauseTracking or
// EnableTracking. Pairs nest like a classic stack; an unmatched reset
// restores the default.
func (tc *TrackingContext) ResetTracking() {
	n := len(tc.trackStack)
	if n == 0 {
		tc.shouldTrack = true
		return
	}
	tc.shouldTrack = tc.trackStack[n-1]
	tc.trackStack = tc.trackStack[:n-1]
}

// Untracked runs fn with tracking paused.
func (tc *TrackingContext) Untracked(fn func()) {
	tc.PauseTracking()
	defer tc.ResetTracking()
	fn()
}

// SetDebugHooks installs observational callbacks fired on every recorded
// read and every fan-out delivery. Either may be nil; hooks never affect
// control flow.
func (tc *TrackingContext) SetDebugHooks(onTrack, onTrigger DebugFunc) {
	tc.onTrack = onTrack
	tc.onTrigger = onTrigger
}
