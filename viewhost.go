package screens

// ViewHost is a HostTransactionManager that attaches screen views as
// children of one parent View. The child order of parent mirrors the
// attached list; views leaving the stack stay in the tree until their exit
// transition ends.
type ViewHost struct {
	parent   *View
	animator *Animator

	attached   []*HostAdapter
	destroyed  bool
	stateSaved bool
	commits    int
}

// NewViewHost creates a host attaching into parent. animator may be nil, in
// which case every transition completes synchronously during Commit.
func NewViewHost(parent *View, animator *Animator) *ViewHost {
	if parent == nil {
		panic("screens: view host needs a parent view")
	}
	return &ViewHost{parent: parent, animator: animator}
}

// Parent returns the view screens are attached into.
func (h *ViewHost) Parent() *View {
	return h.parent
}

// IsDestroyed reports whether Destroy was called or the parent view was
// disposed.
func (h *ViewHost) IsDestroyed() bool {
	return h.destroyed || h.parent.IsDisposed()
}

// Destroy tears the host down. Later passes against it are skipped.
func (h *ViewHost) Destroy() {
	h.destroyed = true
	h.attached = nil
}

// SetStateSaved marks whether the host has already saved its state. Commits
// made while saved are applied but report ErrStateLoss.
func (h *ViewHost) SetStateSaved(saved bool) {
	h.stateSaved = saved
}

// Commits returns how many transactions were committed.
func (h *ViewHost) Commits() int {
	return h.commits
}

// Attached returns a copy of the attached adapters, bottom first.
func (h *ViewHost) Attached() []*HostAdapter {
	out := make([]*HostAdapter, len(h.attached))
	copy(out, h.attached)
	return out
}

// Begin opens a transaction.
func (h *ViewHost) Begin() HostTransaction {
	return &viewTransaction{host: h}
}

type viewOp struct {
	adapter *HostAdapter
	attach  bool
}

type viewTransaction struct {
	host      *ViewHost
	ops       []viewOp
	committed bool
}

func (t *viewTransaction) Attach(a *HostAdapter) {
	t.ops = append(t.ops, viewOp{adapter: a, attach: true})
}

func (t *viewTransaction) Detach(a *HostAdapter) {
	t.ops = append(t.ops, viewOp{adapter: a})
}

// Commit nets the buffered operations against the attached list. Adapters
// that end up detached run an exit transition, newly attached ones an enter
// transition, and adapters present before and after are only re-ordered.
func (t *viewTransaction) Commit() error {
	if t.committed {
		panic("screens: transaction committed twice")
	}
	t.committed = true
	h := t.host
	if h.IsDestroyed() {
		return nil
	}

	prev := h.attached
	next := make([]*HostAdapter, 0, len(prev)+len(t.ops))
	next = append(next, prev...)
	for _, op := range t.ops {
		next = removeAdapter(next, op.adapter)
		if op.attach {
			next = append(next, op.adapter)
		}
	}
	h.attached = next
	h.commits++

	before := make(map[*HostAdapter]bool, len(prev))
	for _, a := range prev {
		before[a] = true
	}
	after := make(map[*HostAdapter]bool, len(next))
	for _, a := range next {
		after[a] = true
	}

	// Exits first: a leaving screen's Disappear precedes the entering
	// screen's deferred Appear.
	for _, a := range prev {
		if !after[a] {
			h.exit(a)
		}
	}
	for _, a := range next {
		h.parent.AddChild(a.screen.View)
	}
	for _, a := range next {
		if !before[a] {
			h.enter(a)
		}
	}

	if h.stateSaved {
		return ErrStateLoss
	}
	return nil
}

func (h *ViewHost) enter(a *HostAdapter) {
	h.animator.start(a, a.screen.View, true, nil)
}

func (h *ViewHost) exit(a *HostAdapter) {
	v := a.screen.View
	h.animator.start(a, v, false, func() {
		// Re-attached while leaving, possibly through a new adapter for the
		// same screen: the view stays.
		if h.ownsView(v) || v.Parent != h.parent {
			return
		}
		h.parent.RemoveChild(v)
	})
}

// ownsView reports whether an attached adapter presents v.
func (h *ViewHost) ownsView(v *View) bool {
	for _, x := range h.attached {
		if x.screen.View == v {
			return true
		}
	}
	return false
}

func removeAdapter(list []*HostAdapter, a *HostAdapter) []*HostAdapter {
	for i, x := range list {
		if x == a {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
