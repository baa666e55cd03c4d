package screens

import (
	"errors"
	"fmt"
	"log/slog"
)

// ContainerOption configures a Container at construction.
type ContainerOption func(c *Container)

// WithAdapterFactory overrides which adapter wraps inserted screens.
func WithAdapterFactory(f AdapterFactory) ContainerOption {
	return func(c *Container) { c.factory = f }
}

// WithEventSink sets where the container's adapters emit events.
func WithEventSink(sink EventSink) ContainerOption {
	return func(c *Container) { c.sink = sink }
}

// WithSurfaceID sets the surface stamped on every emitted event.
func WithSurfaceID(id int) ContainerOption {
	return func(c *Container) { c.surfaceID = id }
}

// WithLogger sets the container's logger. Defaults to Logger().
func WithLogger(l *slog.Logger) ContainerOption {
	return func(c *Container) { c.logger = l }
}

// PassStats counts the native operations of one reconcile pass.
type PassStats struct {
	Orphans   int // adapters detached because the container no longer owns them
	Detached  int // inactive screens detached
	Attached  int // screens freshly attached
	Reordered int // already attached screens moved above fresh ones
}

// Ops returns the total number of attach and detach operations.
func (p PassStats) Ops() int {
	return p.Orphans + p.Detached + p.Attached + 2*p.Reordered
}

// Container owns an ordered list of screens (front is the bottom of the
// visual stack) and keeps the host's attached set in line with it. All
// methods must be called from the thread that drives its TaskQueue.
type Container struct {
	// OnUpdate is called after every committed pass. Nil by default.
	OnUpdate func(c *Container)

	queue     *TaskQueue
	factory   AdapterFactory
	sink      EventSink
	logger    *slog.Logger
	surfaceID int

	screens []*HostAdapter
	removed []*HostAdapter // destroyed after the next commit

	attached      bool
	needsUpdate   bool
	layoutPending bool
	manager       HostTransactionManager
	parent        *HostAdapter
	stack         *Stack

	passes   uint64
	lastPass PassStats
}

// NewContainer creates a detached, empty container scheduling its passes on q.
func NewContainer(q *TaskQueue, opts ...ContainerOption) *Container {
	if q == nil {
		panic("screens: container needs a task queue")
	}
	c := &Container{
		queue:   q,
		factory: DefaultAdapterFactory,
		sink:    DiscardSink,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Container) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// --- List mutation ---

// InsertScreen inserts s at index and requests an update. Panics if s is
// nil, already owned by a container, or index is out of range.
func (c *Container) InsertScreen(s *Screen, index int) {
	if s == nil {
		panic("screens: cannot insert nil screen")
	}
	if s.container != nil {
		panic("screens: screen already belongs to a container")
	}
	if index < 0 || index > len(c.screens) {
		panic("screens: screen index out of range")
	}
	a := c.factory.NewAdapter(s)
	if a == nil || a.screen != s {
		panic("screens: adapter factory returned an adapter for another screen")
	}
	a.bind(c)
	s.container = c
	s.adapter = a
	s.surfaceID = c.surfaceID

	c.screens = append(c.screens, nil)
	copy(c.screens[index+1:], c.screens[index:])
	c.screens[index] = a
	if globalDebug {
		debugCheckScreenCount(c)
	}
	c.RequestUpdate()
}

// RemoveScreenAt removes the screen at index and requests an update. Its
// adapter is destroyed after the next committed pass.
func (c *Container) RemoveScreenAt(index int) {
	if index < 0 || index >= len(c.screens) {
		panic("screens: screen index out of range")
	}
	a := c.screens[index]
	copy(c.screens[index:], c.screens[index+1:])
	c.screens[len(c.screens)-1] = nil
	c.screens = c.screens[:len(c.screens)-1]
	a.screen.container = nil
	c.removed = append(c.removed, a)
	c.RequestUpdate()
}

// RemoveAll removes every screen and requests an update.
func (c *Container) RemoveAll() {
	for _, a := range c.screens {
		a.screen.container = nil
		c.removed = append(c.removed, a)
	}
	c.screens = nil
	c.RequestUpdate()
}

// --- Queries ---

// ScreenCount returns the number of screens in the list.
func (c *Container) ScreenCount() int {
	return len(c.screens)
}

// ScreenAt returns the screen at index.
func (c *Container) ScreenAt(index int) *Screen {
	return c.screens[index].screen
}

// Screens returns a copy of the screen list in stacking order.
func (c *Container) Screens() []*Screen {
	out := make([]*Screen, len(c.screens))
	for i, a := range c.screens {
		out[i] = a.screen
	}
	return out
}

// IndexOf returns the list index of s, or -1.
func (c *Container) IndexOf(s *Screen) int {
	for i, a := range c.screens {
		if a.screen == s {
			return i
		}
	}
	return -1
}

// TopScreen returns the first screen in list order whose state is
// ActivityOnTop, or nil when the container is mid-transition.
func (c *Container) TopScreen() *Screen {
	if a := c.topAdapter(); a != nil {
		return a.screen
	}
	return nil
}

func (c *Container) topAdapter() *HostAdapter {
	for _, a := range c.screens {
		if a.screen.state == ActivityOnTop {
			return a
		}
	}
	return nil
}

func (c *Container) hasAdapter(a *HostAdapter) bool {
	if a == nil {
		return false
	}
	for _, owned := range c.screens {
		if owned == a {
			return true
		}
	}
	return false
}

// IsAttached reports whether the container is attached to a host.
func (c *Container) IsAttached() bool {
	return c.attached
}

// IsStack reports whether the container is the list of a Stack.
func (c *Container) IsStack() bool {
	return c.stack != nil
}

// GoingForward returns the direction flag of the owning stack. Plain
// containers always report false.
func (c *Container) GoingForward() bool {
	return c.stack != nil && c.stack.goingForward
}

// ParentAdapter returns the adapter of the screen this container is nested
// in, or nil.
func (c *Container) ParentAdapter() *HostAdapter {
	return c.parent
}

// SurfaceID returns the surface stamped on emitted events.
func (c *Container) SurfaceID() int {
	return c.surfaceID
}

// Passes returns how many passes have committed.
func (c *Container) Passes() uint64 {
	return c.passes
}

// LastPass returns the operation counts of the last committed pass.
func (c *Container) LastPass() PassStats {
	return c.lastPass
}

// --- Host attachment ---

// AttachToHost attaches the container to the host behind m and runs an
// immediate pass. parent is the adapter of the enclosing screen when the
// container is nested, else nil. A nil m is accepted here; the pass then
// panics because an attached container must have a manager.
func (c *Container) AttachToHost(m HostTransactionManager, parent *HostAdapter) error {
	if c.attached {
		panic("screens: container is already attached")
	}
	c.attached = true
	c.manager = m
	c.parent = parent
	if parent != nil {
		parent.AddChildContainer(c)
	}
	return c.ForceUpdateNow()
}

// DetachFromHost removes every screen of this container from the host (when
// the host is still alive), destroys adapters already removed from the
// list and forgets the manager.
func (c *Container) DetachFromHost() {
	if !c.attached {
		return
	}
	if m := c.manager; m != nil && !m.IsDestroyed() {
		tx := m.Begin()
		for _, a := range m.Attached() {
			tx.Detach(a)
		}
		if err := tx.Commit(); err != nil {
			c.logCommitError(err)
		}
	}
	c.attached = false
	c.manager = nil
	c.destroyRemoved()
	if c.parent != nil {
		c.parent.RemoveChildContainer(c)
		c.parent = nil
	}
}

// --- Update scheduling ---

// RequestUpdate marks the container dirty and schedules one pass on the
// next frame. Further requests before that frame collapse into it.
func (c *Container) RequestUpdate() {
	c.needsUpdate = true
	if c.layoutPending {
		return
	}
	c.layoutPending = true
	c.queue.OnNextFrame(func() {
		c.layoutPending = false
		if err := c.reconcile(); err != nil {
			c.log().Error("screens: reconcile failed", "surface", c.surfaceID, "error", err)
		}
	})
}

// ForceUpdateNow marks the container dirty and reconciles synchronously.
func (c *Container) ForceUpdateNow() error {
	c.needsUpdate = true
	return c.reconcile()
}

// --- Reconciliation ---

func (c *Container) reconcile() error {
	if !c.needsUpdate || !c.attached {
		return nil
	}
	if c.manager == nil {
		panic("screens: reconcile on an attached container without a transaction manager")
	}
	if c.manager.IsDestroyed() {
		c.log().Debug("screens: host torn down, skipping pass", "surface", c.surfaceID)
		return nil
	}
	c.needsUpdate = false

	var stats PassStats
	tx := c.manager.Begin()

	// Orphans: attached natively but not (or no longer) owned here.
	current := c.manager.Attached()
	attached := make(map[*HostAdapter]bool, len(current))
	for _, a := range current {
		attached[a] = true
	}
	// Adapters whose screen moved on are dropped from the list; they are
	// destroyed with the removed ones after the commit.
	owned := make(map[*HostAdapter]bool, len(c.screens))
	kept := c.screens[:0]
	for _, a := range c.screens {
		if a.screen.container == c {
			owned[a] = true
			kept = append(kept, a)
		} else if !attached[a] {
			c.removed = append(c.removed, a)
		}
	}
	clear(c.screens[len(kept):])
	c.screens = kept
	var orphans []*HostAdapter
	for _, a := range current {
		if !owned[a] {
			tx.Detach(a)
			delete(attached, a)
			orphans = append(orphans, a)
			stats.Orphans++
		}
	}

	for _, a := range c.screens {
		if a.screen.state == ActivityInactive && attached[a] {
			tx.Detach(a)
			delete(attached, a)
			stats.Detached++
		}
	}

	transitioning := c.topAdapter() == nil

	// Once a screen is freshly attached, every active screen after it in
	// the list is queued and attached in list order behind it; attached ones
	// are detached first. List order stays z-order.
	addedBefore := false
	var pendingFront []*HostAdapter
	for _, a := range c.screens {
		if !owned[a] {
			continue
		}
		active := a.screen.state != ActivityInactive
		switch {
		case active && !attached[a] && !addedBefore:
			tx.Attach(a)
			addedBefore = true
			stats.Attached++
		case active && !attached[a]:
			pendingFront = append(pendingFront, a)
			stats.Attached++
		case active && addedBefore:
			tx.Detach(a)
			pendingFront = append(pendingFront, a)
			stats.Reordered++
		}
		a.screen.transitioning = transitioning
	}
	for _, a := range pendingFront {
		tx.Attach(a)
	}

	if err := tx.Commit(); err != nil {
		if !errors.Is(err, ErrStateLoss) {
			return fmt.Errorf("screens: commit pass on surface %d: %w", c.surfaceID, err)
		}
		c.logCommitError(err)
	}
	c.passes++
	c.lastPass = stats
	if globalDebug {
		debugLogPass(c, stats, transitioning)
	}

	for _, a := range orphans {
		a.Destroy()
	}
	c.destroyRemoved()

	if top := c.topAdapter(); top != nil && top.OnContainerUpdate != nil {
		top.OnContainerUpdate(top)
	}
	if c.OnUpdate != nil {
		c.OnUpdate(c)
	}
	return nil
}

func (c *Container) destroyRemoved() {
	removed := c.removed
	c.removed = nil
	for _, a := range removed {
		a.Destroy()
	}
}

func (c *Container) logCommitError(err error) {
	if errors.Is(err, ErrStateLoss) {
		c.log().Debug("screens: commit after state loss", "surface", c.surfaceID)
		return
	}
	c.log().Error("screens: commit failed", "surface", c.surfaceID, "error", err)
}
