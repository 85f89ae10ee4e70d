package ripple

import "github.com/sirupsen/logrus"

// DebuggerEvent describes one recorded read or one fan-out delivery. Purely
// observational; hooks receiving it must not assume they can steer the
// engine.
type DebuggerEvent struct {
	Effect   *ReactiveEffect
	Source   any
	Op       OpKind
	Key      any
	NewValue any
	OldValue any
}

type DebugFunc func(DebuggerEvent)

// LogHooks builds debug hooks that write every event to the given logger at
// debug level, for wiring into SetDebugHooks during development.
func LogHooks(l logrus.FieldLogger) (onTrack, onTrigger DebugFunc) {
	fields := func(ev DebuggerEvent) logrus.Fields {
		f := logrus.Fields{
			"op":  ev.Op.String(),
			"key": ev.Key,
		}
		if ev.Source != nil {
			f["source"] = ev.Source
		}
		if ev.Op != OpGet {
			f["new"] = ev.NewValue
			f["old"] = ev.OldValue
		}
		return f
	}
	onTrack = func(ev DebuggerEvent) {
		l.WithFields(fields(ev)).Debug("tracked read")
	}
	onTrigger = func(ev DebuggerEvent) {
		l.WithFields(fields(ev)).Debug("triggered effect")
	}
	return onTrack, onTrigger
}
