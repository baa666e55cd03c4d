package screens

import (
	"strings"
	"testing"
)

// --- Fake host ---

// fakeHost is an in-memory HostTransactionManager that records every
// operation and never runs animation callbacks.
type fakeHost struct {
	attached  []*HostAdapter
	destroyed bool
	begins    int
	commits   int
	ops       []string
	commitErr error
}

func (h *fakeHost) IsDestroyed() bool { return h.destroyed }

func (h *fakeHost) Attached() []*HostAdapter {
	return append([]*HostAdapter(nil), h.attached...)
}

func (h *fakeHost) Begin() HostTransaction {
	h.begins++
	return &fakeTx{host: h}
}

func (h *fakeHost) resetCounts() {
	h.begins = 0
	h.commits = 0
	h.ops = nil
}

type fakeTx struct {
	host *fakeHost
	ops  []viewOp
}

func (t *fakeTx) Attach(a *HostAdapter) { t.ops = append(t.ops, viewOp{adapter: a, attach: true}) }
func (t *fakeTx) Detach(a *HostAdapter) { t.ops = append(t.ops, viewOp{adapter: a}) }

func (t *fakeTx) Commit() error {
	h := t.host
	for _, op := range t.ops {
		h.attached = removeAdapter(h.attached, op.adapter)
		if op.attach {
			h.attached = append(h.attached, op.adapter)
			h.ops = append(h.ops, "attach:"+op.adapter.screen.Name)
		} else {
			h.ops = append(h.ops, "detach:"+op.adapter.screen.Name)
		}
	}
	h.commits++
	return h.commitErr
}

func adapterNames(list []*HostAdapter) string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.screen.Name
	}
	return strings.Join(names, ",")
}

// --- Recording sink ---

type recordingSink struct {
	events []Event
	names  map[uint32]string
}

func newRecordingSink() *recordingSink {
	return &recordingSink{names: make(map[uint32]string)}
}

func (r *recordingSink) Emit(e Event) { r.events = append(r.events, e) }

// track registers screens so lifecycle() can print readable names.
func (r *recordingSink) track(screens ...*Screen) {
	for _, s := range screens {
		r.names[s.ID] = s.Name
	}
}

// lifecycle returns "Name:kind" for every lifecycle and dismissal event.
func (r *recordingSink) lifecycle() string {
	var parts []string
	for _, e := range r.events {
		if e.Kind == EventTransitionProgress {
			continue
		}
		parts = append(parts, r.names[e.ScreenID]+":"+e.Kind.String())
	}
	return strings.Join(parts, " ")
}

// lifecycleOf is lifecycle restricted to one screen.
func (r *recordingSink) lifecycleOf(id uint32) string {
	var parts []string
	for _, e := range r.events {
		if e.Kind != EventTransitionProgress && e.ScreenID == id {
			parts = append(parts, e.Kind.String())
		}
	}
	return strings.Join(parts, " ")
}

func (r *recordingSink) progress(id uint32) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == EventTransitionProgress && e.ScreenID == id {
			out = append(out, e)
		}
	}
	return out
}

func (r *recordingSink) count(kind EventKind, id uint32) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind && e.ScreenID == id {
			n++
		}
	}
	return n
}

func (r *recordingSink) reset() { r.events = nil }

// --- Constructors ---

func screenWithState(name string, st ActivityState) *Screen {
	s := NewScreen(name)
	s.SetState(st)
	return s
}

func attachedContainer(t *testing.T, opts ...ContainerOption) (*Container, *fakeHost, *TaskQueue) {
	t.Helper()
	q := NewTaskQueue()
	c := NewContainer(q, opts...)
	h := &fakeHost{}
	if err := c.AttachToHost(h, nil); err != nil {
		t.Fatalf("AttachToHost: %v", err)
	}
	h.resetCounts()
	return c, h, q
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
