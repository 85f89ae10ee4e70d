package ripple

// Scope is an external disposal group. Effects created with InScope join it
// and are stopped together when the scope stops.
type Scope struct {
	effects []*ReactiveEffect
	active  bool
}

func NewScope() *Scope {
	return &Scope{active: true}
}

func (s *Scope) add(e *ReactiveEffect) {
	if !s.active {
		return
	}
	s.effects = append(s.effects, e)
}

// Stop stops every effect in the scope. Further effects refuse to join.
// Idempotent.
func (s *Scope) Stop() {
	if !s.active {
		return
	}
	s.active = false
	for _, e := range s.effects {
		e.Stop()
	}
	s.effects = nil
}

// Active reports whether the scope can still accept effects.
func (s *Scope) Active() bool { return s.active }
