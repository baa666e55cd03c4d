package screens

// screenIDCounter is a plain counter (no atomic: screens are single-threaded).
var screenIDCounter uint32

func nextScreenID() uint32 {
	screenIDCounter++
	return screenIDCounter
}

// Screen is one navigable unit. Its presentation state is set by the
// declarative layer (or a Stack); its container sets the transitioning flag
// during every reconcile pass.
type Screen struct {
	ID   uint32
	Name string

	// View is the screen's retained content. Hosts attach and detach it.
	View *View

	// Transparent keeps the screen below this one attached when pushed on
	// a Stack.
	Transparent bool

	// NativeBackDismissal allows RequestDismiss to pop the screen.
	NativeBackDismissal bool

	state         ActivityState
	transitioning bool
	surfaceID     int

	// Weak back-references: the container owns the adapter, never the
	// other way around.
	container *Container
	adapter   *HostAdapter
}

// NewScreen creates an inactive screen with its own view.
func NewScreen(name string) *Screen {
	return &Screen{
		ID:                  nextScreenID(),
		Name:                name,
		View:                NewView(name),
		NativeBackDismissal: true,
	}
}

// State returns the requested presentation state.
func (s *Screen) State() ActivityState {
	return s.state
}

// SetState records a new presentation state without scheduling anything.
// The declarative layer calls RequestUpdate on the container afterwards.
func (s *Screen) SetState(st ActivityState) {
	s.state = st
}

// ApplyState changes the presentation state out of band and reconciles the
// owning container immediately. Without a container it only records st.
func (s *Screen) ApplyState(st ActivityState) error {
	if s.state == st {
		return nil
	}
	s.state = st
	if s.container == nil {
		return nil
	}
	return s.container.ForceUpdateNow()
}

// IsTransitioning reports whether the last reconcile pass of the owning
// container ran with no screen on top.
func (s *Screen) IsTransitioning() bool {
	return s.transitioning
}

// Container returns the owning container, or nil.
func (s *Screen) Container() *Container {
	return s.container
}

// Adapter returns the host adapter currently wrapping the screen, or nil.
func (s *Screen) Adapter() *HostAdapter {
	return s.adapter
}

// SurfaceID returns the surface of the container the screen was last
// inserted into.
func (s *Screen) SurfaceID() int {
	return s.surfaceID
}

// RequestDismiss asks the owning stack to dismiss this screen, as a native
// back gesture would. It reports false when back dismissal is disabled or
// the screen is not in a container. Panics if the container is not a Stack.
func (s *Screen) RequestDismiss() (bool, error) {
	if !s.NativeBackDismissal || s.container == nil {
		return false, nil
	}
	st := s.container.stack
	if st == nil {
		panic("screens: dismiss requested on a container that is not a stack")
	}
	if err := st.Dismiss(s); err != nil {
		return false, err
	}
	return true, nil
}
