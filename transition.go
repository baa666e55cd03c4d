package screens

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// transition animates one screen view in or out and reports the animation
// to the screen's adapter: start, intermediate progress, end. If the view is
// disposed mid-way the transition finishes immediately.
type transition struct {
	adapter *HostAdapter
	view    *View
	adding  bool
	tween   *gween.Tween
	slide   float64 // horizontal offset the entering view starts from
	baseX   float64
	onDone  func()
	done    bool
}

func (t *transition) begin() {
	t.adapter.OnAnimationStart(t.adding)
	t.apply(0)
}

// update advances the tween by dt seconds.
func (t *transition) update(dt float32) {
	if t.done {
		return
	}
	if t.view.IsDisposed() {
		t.finish()
		return
	}
	val, finished := t.tween.Update(dt)
	if finished {
		t.finish()
		return
	}
	t.apply(float64(val))
	t.adapter.OnTransitionProgress(float64(val), !t.adding)
}

// finish snaps the view to its final values and reports the end. Safe to
// call more than once.
func (t *transition) finish() {
	if t.done {
		return
	}
	t.done = true
	t.apply(1)
	t.adapter.OnAnimationEnd(t.adding)
	if t.onDone != nil {
		t.onDone()
	}
}

func (t *transition) apply(p float64) {
	p = clamp01(p)
	if t.adding {
		t.view.X = t.baseX + (1-p)*t.slide
		t.view.Alpha = p
		return
	}
	t.view.Alpha = 1 - p
}

// Animator runs the enter and exit transitions of every host sharing it.
// A zero Duration (or a nil Animator) completes transitions synchronously.
type Animator struct {
	Duration float32 // seconds
	Ease     ease.TweenFunc
	Slide    float64 // horizontal distance an entering view travels

	active []*transition
	byView map[*View]*transition
}

// NewAnimator creates an animator. A nil fn defaults to ease.OutCubic.
func NewAnimator(duration float32, fn ease.TweenFunc) *Animator {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &Animator{
		Duration: duration,
		Ease:     fn,
		byView:   make(map[*View]*transition),
	}
}

// Active returns the number of running transitions.
func (an *Animator) Active() int {
	if an == nil {
		return 0
	}
	return len(an.active)
}

// Update advances every running transition by dt seconds and drops the
// finished ones.
func (an *Animator) Update(dt float32) {
	if an == nil || len(an.active) == 0 {
		return
	}
	running := an.active
	an.active = nil
	for _, t := range running {
		t.update(dt)
	}
	kept := an.active
	an.active = running[:0]
	for _, t := range running {
		if t.done {
			an.forget(t)
			continue
		}
		an.active = append(an.active, t)
	}
	// Transitions started by callbacks during this update.
	an.active = append(an.active, kept...)
}

// FinishAll completes every running transition now.
func (an *Animator) FinishAll() {
	for an.Active() > 0 {
		running := an.active
		an.active = nil
		for _, t := range running {
			t.finish()
			an.forget(t)
		}
	}
}

func (an *Animator) forget(t *transition) {
	if an.byView[t.view] == t {
		delete(an.byView, t.view)
	}
}

// start runs a transition for a's view. A transition still running on the
// same view is finished first, whichever adapter started it, so its end
// callback is never lost and only one tween writes the view.
func (an *Animator) start(a *HostAdapter, v *View, adding bool, onDone func()) {
	t := &transition{adapter: a, view: v, adding: adding, baseX: v.X, onDone: onDone}
	if an != nil {
		if prev := an.byView[v]; prev != nil {
			prev.finish()
			t.baseX = v.X
		}
	}
	if an == nil || an.Duration <= 0 {
		t.begin()
		t.finish()
		return
	}
	if adding {
		t.slide = an.Slide
	}
	t.tween = gween.New(0, 1, an.Duration, an.Ease)
	if an.byView == nil {
		an.byView = make(map[*View]*transition)
	}
	an.byView[v] = t
	an.active = append(an.active, t)
	t.begin()
}
