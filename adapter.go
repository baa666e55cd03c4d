package screens

// AdapterFactory creates the host adapter that wraps a screen when it is
// inserted into a container.
type AdapterFactory interface {
	NewAdapter(s *Screen) *HostAdapter
}

// AdapterFactoryFunc adapts a plain function to AdapterFactory.
type AdapterFactoryFunc func(s *Screen) *HostAdapter

// NewAdapter calls f(s).
func (f AdapterFactoryFunc) NewAdapter(s *Screen) *HostAdapter { return f(s) }

// DefaultAdapterFactory wraps every screen in a plain NewHostAdapter.
var DefaultAdapterFactory AdapterFactory = AdapterFactoryFunc(NewHostAdapter)

// HostAdapter bridges one Screen to the retained-view host. It gates and
// emits the screen's lifecycle events, memoizes transition progress and owns
// the containers nested inside the screen.
type HostAdapter struct {
	// OnContainerUpdate is called after each committed pass of the owning
	// container while this adapter's screen is the top screen. Nil by
	// default.
	OnContainerUpdate func(a *HostAdapter)

	screen   *Screen
	gate     LifecycleGate
	progress ProgressEmitter
	children []*Container

	sink  EventSink
	queue *TaskQueue

	animations     int // started and not yet ended; an enter cut short by an exit overlaps it
	destroyPending bool
	destroyed      bool
}

// NewHostAdapter creates an adapter for s with a hidden gate.
func NewHostAdapter(s *Screen) *HostAdapter {
	return &HostAdapter{
		screen:   s,
		gate:     GateHidden,
		progress: NewProgressEmitter(),
		sink:     DiscardSink,
	}
}

// bind wires the adapter to the container that created it.
func (a *HostAdapter) bind(c *Container) {
	a.sink = c.sink
	a.queue = c.queue
}

// Screen returns the wrapped screen.
func (a *HostAdapter) Screen() *Screen {
	return a.screen
}

// Gate returns the current lifecycle gate state.
func (a *HostAdapter) Gate() LifecycleGate {
	return a.gate
}

// Progress returns the last emitted transition progress, or -1.
func (a *HostAdapter) Progress() float64 {
	return a.progress.Last()
}

// IsDestroyed reports whether Destroy has completed.
func (a *HostAdapter) IsDestroyed() bool {
	return a.destroyed
}

// --- Child containers ---

// AddChildContainer registers a container nested inside this screen.
// Adding the same container twice is a no-op.
func (a *HostAdapter) AddChildContainer(c *Container) {
	for _, existing := range a.children {
		if existing == c {
			return
		}
	}
	a.children = append(a.children, c)
}

// RemoveChildContainer forgets a nested container. No-op if absent.
func (a *HostAdapter) RemoveChildContainer(c *Container) {
	for i, existing := range a.children {
		if existing == c {
			copy(a.children[i:], a.children[i+1:])
			a.children[len(a.children)-1] = nil
			a.children = a.children[:len(a.children)-1]
			return
		}
	}
}

// ChildContainers returns the nested containers. The returned slice MUST NOT
// be mutated by the caller.
func (a *HostAdapter) ChildContainers() []*Container {
	return a.children
}

// --- Dispatch ---

// Dispatch fires kind if the gate allows it, then forwards the same event to
// the top screen of every non-empty child container. It reports whether the
// event fired on this screen.
func (a *HostAdapter) Dispatch(kind EventKind) bool {
	if a.destroyed || !a.gate.CanDispatch(kind) {
		return false
	}
	a.gate = a.gate.Record(kind)
	a.emit(Event{Kind: kind})
	for _, c := range a.children {
		if c.ScreenCount() == 0 {
			continue
		}
		if top := c.TopScreen(); top != nil && top.adapter != nil {
			top.adapter.Dispatch(kind)
		}
	}
	return true
}

func (a *HostAdapter) emit(e Event) {
	e.SurfaceID = a.screen.surfaceID
	e.ScreenID = a.screen.ID
	a.sink.Emit(e)
}

func (a *HostAdapter) emitProgress(raw float64, closing bool) {
	goingForward := false
	if c := a.screen.container; c != nil {
		goingForward = c.GoingForward()
	}
	if e, ok := a.progress.Emit(raw, closing, goingForward); ok {
		a.emit(e)
	}
}

// parentTransitioning reports whether the screen hosting this screen's
// container is mid-transition. The parent then drives dispatch through
// propagation and this screen's own animation callbacks stay silent.
func (a *HostAdapter) parentTransitioning() bool {
	c := a.screen.container
	if c == nil || c.parent == nil {
		return false
	}
	return c.parent.screen.transitioning
}

// --- Host animation callbacks ---

// OnAnimationStart is called by the host when the screen's view starts its
// enter (adding) or exit animation.
func (a *HostAdapter) OnAnimationStart(adding bool) {
	a.animations++
	if a.parentTransitioning() {
		return
	}
	if adding {
		a.Dispatch(EventWillAppear)
		a.emitProgress(0, false)
		return
	}
	a.Dispatch(EventWillDisappear)
	a.emitProgress(0, true)
}

// OnTransitionProgress reports an intermediate animation value.
func (a *HostAdapter) OnTransitionProgress(p float64, closing bool) {
	if a.destroyed || a.parentTransitioning() {
		return
	}
	a.emitProgress(p, closing)
}

// OnAnimationEnd is called by the host when the enter or exit animation
// finished. Appear is deferred to the end of the current turn so the
// Disappear of a sibling leaving in the same transition is observed first.
func (a *HostAdapter) OnAnimationEnd(adding bool) {
	suppressed := a.parentTransitioning()
	if !adding {
		if !suppressed {
			a.Dispatch(EventDisappear)
			a.emitProgress(1, true)
		}
		a.animationDone()
		return
	}
	appear := func() {
		if !suppressed {
			a.Dispatch(EventAppear)
			a.emitProgress(1, false)
		}
		a.animationDone()
	}
	if a.queue == nil {
		appear()
		return
	}
	a.queue.Post(appear)
}

func (a *HostAdapter) animationDone() {
	if a.animations > 0 {
		a.animations--
	}
	if a.animations == 0 && a.destroyPending {
		a.destroy()
	}
}

// --- Destruction ---

// Destroy tears the adapter down. If the screen left its container (or the
// container no longer lists the screen's current adapter) a single
// EventDismissed is emitted first. While animations are running the
// teardown waits for the last one to end. Idempotent.
func (a *HostAdapter) Destroy() {
	if a.destroyed {
		return
	}
	if a.animations > 0 {
		a.destroyPending = true
		return
	}
	a.destroy()
}

func (a *HostAdapter) destroy() {
	a.destroyPending = false
	if c := a.screen.container; c == nil || !c.hasAdapter(a.screen.adapter) {
		a.emit(Event{Kind: EventDismissed})
	}
	a.destroyed = true
	children := a.children
	a.children = nil
	for _, c := range children {
		c.DetachFromHost()
	}
}
