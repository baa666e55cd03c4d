package screens

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestReconcileAttachOrderAndTop(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()

	if got := adapterNames(h.attached); got != "A,B" {
		t.Errorf("attached = %q, want %q", got, "A,B")
	}
	if c.TopScreen() != b {
		t.Errorf("TopScreen = %v, want B", c.TopScreen())
	}

	a.SetState(ActivityInactive)
	h.resetCounts()
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatalf("ForceUpdateNow: %v", err)
	}
	if got := adapterNames(h.attached); got != "B" {
		t.Errorf("attached = %q, want %q", got, "B")
	}
	if !reflect.DeepEqual(h.ops, []string{"detach:A"}) {
		t.Errorf("ops = %v, want [detach:A]", h.ops)
	}
	if h.commits != 1 {
		t.Errorf("commits = %d, want 1", h.commits)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	c, h, q := attachedContainer(t)
	c.InsertScreen(screenWithState("A", ActivityBelowTop), 0)
	c.InsertScreen(screenWithState("B", ActivityOnTop), 1)
	q.Tick()

	h.resetCounts()
	if err := c.reconcile(); err != nil {
		t.Fatal(err)
	}
	if h.begins != 0 {
		t.Errorf("clean reconcile opened %d transactions, want 0", h.begins)
	}

	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	if len(h.ops) != 0 {
		t.Errorf("forced pass without mutation ran ops %v", h.ops)
	}
	if c.LastPass().Ops() != 0 {
		t.Errorf("LastPass = %+v, want no ops", c.LastPass())
	}
}

func TestReconcileMovesAttachedScreensAboveFreshOnes(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityOnTop)
	c.InsertScreen(a, 0)
	q.Tick()

	n := screenWithState("N", ActivityBelowTop)
	c.InsertScreen(n, 0)
	h.resetCounts()
	q.Tick()

	if got := adapterNames(h.attached); got != "N,A" {
		t.Errorf("attached = %q, want %q", got, "N,A")
	}
	want := []string{"attach:N", "detach:A", "attach:A"}
	if !reflect.DeepEqual(h.ops, want) {
		t.Errorf("ops = %v, want %v", h.ops, want)
	}
	if got := c.LastPass(); got.Attached != 1 || got.Reordered != 1 {
		t.Errorf("LastPass = %+v", got)
	}
}

func TestReconcileOrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, h, q := attachedContainer(t)
	states := []ActivityState{ActivityInactive, ActivityBelowTop, ActivityOnTop}

	for step := 0; step < 300; step++ {
		switch op := rng.Intn(4); {
		case op == 0 || c.ScreenCount() == 0:
			s := screenWithState("s", states[rng.Intn(len(states))])
			c.InsertScreen(s, rng.Intn(c.ScreenCount()+1))
		case op == 1:
			c.RemoveScreenAt(rng.Intn(c.ScreenCount()))
		default:
			s := c.ScreenAt(rng.Intn(c.ScreenCount()))
			s.SetState(states[rng.Intn(len(states))])
			c.RequestUpdate()
		}
		if rng.Intn(3) == 0 {
			continue // let mutations pile up across frames
		}
		q.Tick()

		var want []*HostAdapter
		for _, a := range c.screens {
			if a.screen.state != ActivityInactive {
				want = append(want, a)
			}
		}
		if !reflect.DeepEqual(h.attached, want) && !(len(h.attached) == 0 && len(want) == 0) {
			t.Fatalf("step %d: attached order diverged from list order (%d vs %d screens)",
				step, len(h.attached), len(want))
		}
	}
}

func TestRequestUpdateCoalesces(t *testing.T) {
	c, h, q := attachedContainer(t)
	for i := 0; i < 5; i++ {
		c.InsertScreen(screenWithState("s", ActivityBelowTop), i)
	}
	if frame, _ := q.Pending(); frame != 1 {
		t.Errorf("pending frame callbacks = %d, want 1", frame)
	}
	if h.begins != 0 {
		t.Fatal("mutations reconciled before the frame")
	}
	q.Tick()
	if h.begins != 1 {
		t.Errorf("passes = %d, want 1", h.begins)
	}
	if len(h.attached) != 5 {
		t.Errorf("attached %d screens, want 5", len(h.attached))
	}
}

func TestDetachedContainerNeverTouchesHost(t *testing.T) {
	q := NewTaskQueue()
	c := NewContainer(q)
	c.InsertScreen(screenWithState("A", ActivityOnTop), 0)
	q.Tick()
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	if c.Passes() != 0 {
		t.Errorf("Passes = %d on a detached container", c.Passes())
	}

	h := &fakeHost{}
	if err := c.AttachToHost(h, nil); err != nil {
		t.Fatal(err)
	}
	if got := adapterNames(h.attached); got != "A" {
		t.Errorf("attach-to-host pass attached %q, want A", got)
	}
}

func TestReconcileSkipsTornDownHost(t *testing.T) {
	c, h, _ := attachedContainer(t)
	c.InsertScreen(screenWithState("A", ActivityOnTop), 0)
	h.destroyed = true
	if err := c.ForceUpdateNow(); err != nil {
		t.Errorf("ForceUpdateNow on torn-down host = %v, want nil", err)
	}
	if h.begins != 0 {
		t.Error("torn-down host was used")
	}
}

func TestReconcileWithoutManagerPanics(t *testing.T) {
	q := NewTaskQueue()
	c := NewContainer(q)
	expectPanic(t, "AttachToHost(nil)", func() {
		_ = c.AttachToHost(nil, nil)
	})
}

func TestReconcileDetachesOrphans(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityOnTop)
	c.InsertScreen(a, 0)
	q.Tick()

	stray := NewHostAdapter(NewScreen("X"))
	h.attached = append(h.attached, stray)
	h.resetCounts()
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	if got := adapterNames(h.attached); got != "A" {
		t.Errorf("attached = %q, want A", got)
	}
	if !stray.IsDestroyed() {
		t.Error("orphan adapter should be destroyed")
	}
	if c.LastPass().Orphans != 1 {
		t.Errorf("Orphans = %d, want 1", c.LastPass().Orphans)
	}
}

func TestReconcileDetachesScreenWithStaleContainer(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()

	// The declarative layer spliced A out without telling the container.
	a.container = nil
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	if got := adapterNames(h.attached); got != "B" {
		t.Errorf("attached = %q, want B", got)
	}
	if c.ScreenCount() != 1 || c.ScreenAt(0) != b {
		t.Errorf("ScreenCount = %d, want only B", c.ScreenCount())
	}
}

func TestReconcileDropsStaleScreenThatWasNeverAttached(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityInactive)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()
	if got := adapterNames(h.attached); got != "B" {
		t.Fatalf("attached = %q, want B", got)
	}

	stale := a.Adapter()
	a.container = nil
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	if c.ScreenCount() != 1 || c.TopScreen() != b {
		t.Errorf("ScreenCount = %d, want only B", c.ScreenCount())
	}
	if !stale.IsDestroyed() {
		t.Error("stale adapter should be destroyed")
	}
	if got := adapterNames(h.attached); got != "B" {
		t.Errorf("attached = %q, want B", got)
	}
}

func TestCommitStateLossIsAbsorbed(t *testing.T) {
	c, h, _ := attachedContainer(t)
	h.commitErr = ErrStateLoss
	c.InsertScreen(screenWithState("A", ActivityOnTop), 0)
	if err := c.ForceUpdateNow(); err != nil {
		t.Errorf("ForceUpdateNow = %v, want nil", err)
	}
	if c.Passes() != 2 {
		t.Errorf("Passes = %d, want 2", c.Passes())
	}
}

func TestCommitFailurePropagates(t *testing.T) {
	c, h, _ := attachedContainer(t)
	boom := errors.New("boom")
	h.commitErr = boom
	c.InsertScreen(screenWithState("A", ActivityOnTop), 0)
	if err := c.ForceUpdateNow(); !errors.Is(err, boom) {
		t.Errorf("ForceUpdateNow = %v, want wrapped boom", err)
	}
}

func TestTransitioningWhenNoScreenOnTop(t *testing.T) {
	c, _, q := attachedContainer(t)
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityBelowTop) // mid-animation, not yet on top
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()

	cs := screenWithState("C", ActivityBelowTop)
	c.InsertScreen(cs, 2)
	q.Tick()
	for _, s := range []*Screen{a, b, cs} {
		if !s.IsTransitioning() {
			t.Errorf("%s should be transitioning", s.Name)
		}
	}

	cs.SetState(ActivityOnTop)
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	onTop := 0
	for _, s := range c.Screens() {
		if s.IsTransitioning() {
			t.Errorf("%s still transitioning after settle", s.Name)
		}
		if s.State() == ActivityOnTop {
			onTop++
		}
	}
	if onTop != 1 {
		t.Errorf("%d screens on top, want 1", onTop)
	}
}

func TestTopScreenFirstOnTopWins(t *testing.T) {
	c, _, _ := attachedContainer(t)
	a := screenWithState("A", ActivityOnTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	if c.TopScreen() != a {
		t.Error("first OnTop screen in list order should win")
	}
}

func TestRemovedScreenIsDismissed(t *testing.T) {
	sink := newRecordingSink()
	c, h, q := attachedContainer(t, WithEventSink(sink))
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	sink.track(a, b)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()
	old := b.Adapter()

	c.RemoveScreenAt(1)
	if b.Container() != nil {
		t.Error("removed screen keeps its container reference")
	}
	q.Tick()

	if got := adapterNames(h.attached); got != "A" {
		t.Errorf("attached = %q, want A", got)
	}
	if !old.IsDestroyed() {
		t.Error("removed adapter should be destroyed")
	}
	if n := sink.count(EventDismissed, b.ID); n != 1 {
		t.Errorf("dismissed emitted %d times, want 1", n)
	}
}

func TestReinsertedScreenIsNotDismissed(t *testing.T) {
	sink := newRecordingSink()
	c, h, q := attachedContainer(t, WithEventSink(sink))
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()
	old := a.Adapter()

	c.RemoveScreenAt(0)
	c.InsertScreen(a, 0)
	q.Tick()

	if a.Adapter() == old {
		t.Fatal("reinsert should create a new adapter")
	}
	if !old.IsDestroyed() {
		t.Error("replaced adapter should be destroyed")
	}
	if n := sink.count(EventDismissed, a.ID); n != 0 {
		t.Errorf("replaced screen dismissed %d times, want 0", n)
	}
	if got := adapterNames(h.attached); got != "A,B" {
		t.Errorf("attached = %q, want A,B", got)
	}
}

func TestContainerUpdateHookFiresForTopOnly(t *testing.T) {
	c, _, q := attachedContainer(t)
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)

	var calls []string
	hook := func(ad *HostAdapter) { calls = append(calls, ad.Screen().Name) }
	a.Adapter().OnContainerUpdate = hook
	b.Adapter().OnContainerUpdate = hook
	updates := 0
	c.OnUpdate = func(*Container) { updates++ }
	q.Tick()

	if !reflect.DeepEqual(calls, []string{"B"}) {
		t.Errorf("hook calls = %v, want [B]", calls)
	}
	if updates != 1 {
		t.Errorf("OnUpdate calls = %d, want 1", updates)
	}
}

func TestAdapterFactoryIsUsed(t *testing.T) {
	made := 0
	factory := AdapterFactoryFunc(func(s *Screen) *HostAdapter {
		made++
		return NewHostAdapter(s)
	})
	c, _, _ := attachedContainer(t, WithAdapterFactory(factory), WithSurfaceID(9))
	s := NewScreen("A")
	c.InsertScreen(s, 0)
	if made != 1 {
		t.Errorf("factory called %d times, want 1", made)
	}
	if s.SurfaceID() != 9 {
		t.Errorf("SurfaceID = %d, want 9", s.SurfaceID())
	}
}

func TestInsertScreenPanics(t *testing.T) {
	c, _, _ := attachedContainer(t)
	s := NewScreen("A")
	c.InsertScreen(s, 0)

	expectPanic(t, "nil screen", func() { c.InsertScreen(nil, 0) })
	expectPanic(t, "duplicate", func() { c.InsertScreen(s, 0) })
	expectPanic(t, "index", func() { c.InsertScreen(NewScreen("B"), 5) })
	expectPanic(t, "remove index", func() { c.RemoveScreenAt(3) })
	expectPanic(t, "foreign adapter", func() {
		other := NewContainer(NewTaskQueue(), WithAdapterFactory(AdapterFactoryFunc(func(*Screen) *HostAdapter {
			return NewHostAdapter(NewScreen("imposter"))
		})))
		other.InsertScreen(NewScreen("C"), 0)
	})
}

func TestRemoveAll(t *testing.T) {
	c, h, q := attachedContainer(t)
	a := screenWithState("A", ActivityBelowTop)
	b := screenWithState("B", ActivityOnTop)
	c.InsertScreen(a, 0)
	c.InsertScreen(b, 1)
	q.Tick()

	c.RemoveAll()
	q.Tick()
	if c.ScreenCount() != 0 || len(h.attached) != 0 {
		t.Errorf("after RemoveAll: %d screens, %d attached", c.ScreenCount(), len(h.attached))
	}
	if a.Container() != nil || b.Container() != nil {
		t.Error("RemoveAll should clear container references")
	}
}

func TestDetachFromHost(t *testing.T) {
	c, h, q := attachedContainer(t)
	c.InsertScreen(screenWithState("A", ActivityOnTop), 0)
	q.Tick()

	c.DetachFromHost()
	if c.IsAttached() {
		t.Error("container still attached")
	}
	if len(h.attached) != 0 {
		t.Errorf("host still has %q attached", adapterNames(h.attached))
	}

	h.resetCounts()
	c.RequestUpdate()
	q.Tick()
	if h.begins != 0 {
		t.Error("detached container touched the host")
	}
}

func TestApplyStateReconcilesImmediately(t *testing.T) {
	c, h, _ := attachedContainer(t)
	a := screenWithState("A", ActivityOnTop)
	c.InsertScreen(a, 0)
	if err := c.ForceUpdateNow(); err != nil {
		t.Fatal(err)
	}
	h.resetCounts()

	if err := a.ApplyState(ActivityOnTop); err != nil || h.commits != 0 {
		t.Errorf("unchanged state: err=%v commits=%d, want no pass", err, h.commits)
	}
	if err := a.ApplyState(ActivityInactive); err != nil {
		t.Fatal(err)
	}
	if h.commits != 1 || len(h.attached) != 0 {
		t.Errorf("commits=%d attached=%q, want one pass detaching A", h.commits, adapterNames(h.attached))
	}

	loose := NewScreen("loose")
	if err := loose.ApplyState(ActivityOnTop); err != nil || loose.State() != ActivityOnTop {
		t.Errorf("ApplyState without container = (%v, %v)", err, loose.State())
	}
}
