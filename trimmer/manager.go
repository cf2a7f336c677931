package trimmer

// Manager keeps at most one Selector active for a media element. Loading a
// new clip destroys the previous selector before the next one binds, so
// document-level listeners never accumulate.
type Manager struct {
	deps    Deps
	opts    []Option
	current *Selector
}

// NewManager creates a Manager that builds selectors from deps.
func NewManager(deps Deps, opts ...Option) *Manager {
	return &Manager{deps: deps, opts: opts}
}

// Load releases the current selector, if any, and creates one for a clip of
// the given duration. An invalid duration leaves the current selector alone.
func (m *Manager) Load(duration float64) (*Selector, error) {
	if err := ValidateDuration(duration); err != nil {
		return nil, err
	}
	if m.current != nil {
		m.current.Destroy()
		m.current = nil
	}
	s, err := New(duration, m.deps, m.opts...)
	if err != nil {
		return nil, err
	}
	m.current = s
	return s, nil
}

// Current returns the active selector, or nil.
func (m *Manager) Current() *Selector {
	return m.current
}

// Close destroys the active selector.
func (m *Manager) Close() {
	if m.current != nil {
		m.current.Destroy()
		m.current = nil
	}
}
