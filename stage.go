package screens

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Stage is the top-level object that owns the root view, the task queue
// every container on this UI thread schedules on, and the animator running
// screen transitions. *Stage implements ebiten.Game.
type Stage struct {
	root     *View
	queue    *TaskQueue
	animator *Animator
	cfg      Config
	sink     EventSink
	logger   *slog.Logger

	runner      *ScriptRunner
	runnerStack *Stack
	updateFunc  func() error

	// ClearColor fills the screen before views are drawn. Zero leaves the
	// frame as ebiten provides it.
	ClearColor Color

	nextSurface int
}

// NewStage validates cfg and creates a stage with a root view sized to it.
func NewStage(cfg Config) (*Stage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, err := cfg.EaseFunc()
	if err != nil {
		return nil, err
	}
	root := NewView("root")
	root.Width = float64(cfg.Width)
	root.Height = float64(cfg.Height)

	an := NewAnimator(cfg.TransitionSeconds, fn)
	an.Slide = float64(cfg.Width) * cfg.SlideFraction

	if cfg.Debug {
		SetDebugMode(true)
	}
	return &Stage{
		root:     root,
		queue:    NewTaskQueue(),
		animator: an,
		cfg:      cfg,
		sink:     DiscardSink,
	}, nil
}

// Root returns the stage's root view.
func (s *Stage) Root() *View {
	return s.root
}

// Queue returns the task queue containers mounted on this stage use.
func (s *Stage) Queue() *TaskQueue {
	return s.queue
}

// Animator returns the animator shared by the stage's hosts.
func (s *Stage) Animator() *Animator {
	return s.animator
}

// Config returns the configuration the stage was built from.
func (s *Stage) Config() Config {
	return s.cfg
}

// SetEventSink sets the sink used by containers mounted after the call.
func (s *Stage) SetEventSink(sink EventSink) {
	if sink == nil {
		sink = DiscardSink
	}
	s.sink = sink
}

// SetLogger sets the logger used by containers mounted after the call.
func (s *Stage) SetLogger(l *slog.Logger) {
	s.logger = l
}

// NewHost creates a view host attaching into parent that shares the
// stage's animator.
func (s *Stage) NewHost(parent *View) *ViewHost {
	return NewViewHost(parent, s.animator)
}

// MountStack creates a stack, a host for it under parent and attaches the
// two. parent defaults to the root view. parentAdapter is the adapter of
// the enclosing screen for nested stacks, else nil. Each mounted stack gets
// its own surface ID unless opts set one.
func (s *Stage) MountStack(parent *View, parentAdapter *HostAdapter, opts ...ContainerOption) (*Stack, *ViewHost, error) {
	if parent == nil {
		parent = s.root
	}
	s.nextSurface++
	base := []ContainerOption{
		WithEventSink(s.sink),
		WithSurfaceID(s.nextSurface),
	}
	if s.logger != nil {
		base = append(base, WithLogger(s.logger))
	}
	st := NewStack(s.queue, append(base, opts...)...)
	host := s.NewHost(parent)
	if err := st.AttachToHost(host, parentAdapter); err != nil {
		return nil, nil, fmt.Errorf("mount stack: %w", err)
	}
	return st, host, nil
}

// SetUpdateFunc sets a callback run at the start of every Advance, before
// scheduled passes. Input handling that pushes or pops screens goes here.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update implements ebiten.Game. It advances the stage by one tick.
func (s *Stage) Update() error {
	return s.Advance(float32(1.0 / float64(ebiten.TPS())))
}

// Advance runs one frame of dt seconds: update callback and script step,
// coalesced passes, transitions, then the end-of-turn callbacks.
func (s *Stage) Advance(dt float32) error {
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	if s.runner != nil && s.runnerStack != nil {
		if err := s.runner.step(s.runnerStack); err != nil {
			return err
		}
	}
	s.queue.Tick()
	s.animator.Update(dt)
	s.queue.Drain()
	return nil
}

// Settle advances frames of dt until no transition, pass or posted callback
// is pending, or maxFrames is reached. It reports whether the stage settled.
func (s *Stage) Settle(dt float32, maxFrames int) (bool, error) {
	for i := 0; i < maxFrames; i++ {
		frame, turn := s.queue.Pending()
		if frame == 0 && turn == 0 && s.animator.Active() == 0 &&
			(s.runner == nil || s.runner.Done()) {
			return true, nil
		}
		if err := s.Advance(dt); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Draw implements ebiten.Game. Every visible view with an area is drawn as
// a filled rectangle in tree order.
func (s *Stage) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA(1))
	}
	drawView(screen, s.root, 0, 0, 1)
}

func drawView(dst *ebiten.Image, v *View, ox, oy, alpha float64) {
	if !v.Visible {
		return
	}
	x, y := ox+v.X, oy+v.Y
	a := alpha * v.Alpha
	if a <= 0 {
		return
	}
	if !v.Bounds().Empty() {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(v.Width), float32(v.Height), v.Color.RGBA(a), false)
	}
	for _, child := range v.children {
		drawView(dst, child, x, y, a)
	}
}

// Layout implements ebiten.Game and returns the configured logical size.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.cfg.Width, s.cfg.Height
}

// Run opens a window sized from the stage's config and runs it as an
// ebiten game until the window closes or Update returns an error.
func Run(s *Stage) error {
	ebiten.SetWindowSize(s.cfg.Width, s.cfg.Height)
	ebiten.SetWindowTitle(s.cfg.Title)
	return ebiten.RunGame(s)
}
