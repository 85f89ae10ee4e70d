package ripple_test

import (
	"testing"

	"github.com/ripplekit/ripple"
	"github.com/stretchr/testify/assert"
)

// reads between pause and reset create no edges
func TestPauseTrackingCreatesNoEdges(t *testing.T) {
	tc := ripple.NewTrackingContext()
	src := &host{}
	runs := 0

	r := ripple.Effect(tc, func() {
		runs++
		tc.PauseTracking()
		tc.Track(src, "hidden")
		tc.ResetTracking()
		tc.Track(src, "seen")
	})

	assert.Equal(t, 1, r.Effect.Deps())
	tc.Trigger(src, ripple.OpUpdate, "hidden", nil, nil)
	assert.Equal(t, 1, runs)
	tc.Trigger(src, ripple.OpUpdate, "seen", nil, nil)
	assert.Equal(t, 2, runs)
}

// nested pause/enable pairs restore the outer state exactly
func TestNestedPauseEnableRestore(t *testing.T) {
	tc := ripple.NewTrackingContext()
	src := &host{}
	runs := 0

	ripple.Effect(tc, func() {
		runs++
		tc.PauseTracking()
		tc.Track(src, "a")

		tc.EnableTracking()
		tc.Track(src, "b")
		tc.ResetTracking()

		// back to paused
		tc.Track(src, "c")
		tc.ResetTracking()

		// back to tracking
		tc.Track(src, "d")
	})

	tc.Trigger(src, ripple.OpUpdate, "a", nil, nil)
	tc.Trigger(src, ripple.OpUpdate, "c", nil, nil)
	assert.Equal(t, 1, runs)
	tc.Trigger(src, ripple.OpUpdate, "b", nil, nil)
	assert.Equal(t, 2, runs)
	tc.Trigger(src, ripple.OpUpdate, "d", nil, nil)
	assert.Equal(t, 3, runs)
}

// Untracked pauses for exactly the duration of the callback
func TestUntracked(t *testing.T) {
	tc := ripple.NewTrackingContext()
	src := &host{}
	runs := 0

	ripple.Effect(tc, func() {
		runs++
		tc.Untracked(func() {
			tc.Track(src, "quiet")
		})
		tc.Track(src, "loud")
	})

	tc.Trigger(src, ripple.OpUpdate, "quiet", nil, nil)
	assert.Equal(t, 1, runs)
	tc.Trigger(src, ripple.OpUpdate, "loud", nil, nil)
	assert.Equal(t, 2, runs)
}

// an unmatched reset restores the tracking default
func TestUnmatchedResetRestoresDefault(t *testing.T) {
	tc := ripple.NewTrackingContext()
	src := &host{}
	runs := 0

	tc.ResetTracking()
	ripple.Effect(tc, func() {
		runs++
		tc.Track(src, "k")
	})
	tc.Trigger(src, ripple.OpUpdate, "k", nil, nil)
	assert.Equal(t, 2, runs)
}

// reads outside any running effect are not recorded
func TestTrackWithoutActiveEffect(t *testing.T) {
	tc := ripple.NewTrackingContext()
	src := &host{}

	tc.Track(src, "k")
	assert.NotPanics(t, func() {
		tc.Trigger(src, ripple.OpUpdate, "k", nil, nil)
	})
}
