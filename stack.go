package screens

// Stack is a Container whose presentation states follow push/pop order: the
// last screen is on top, the one below it stays attached only when the top
// is transparent, everything else is inactive. It also carries the
// direction flag reported with transition progress.
type Stack struct {
	*Container
	goingForward bool
}

// NewStack creates a detached, empty stack scheduling its passes on q.
func NewStack(q *TaskQueue, opts ...ContainerOption) *Stack {
	s := &Stack{Container: NewContainer(q, opts...)}
	s.Container.stack = s
	return s
}

// Push puts scr on top and requests a coalesced update.
func (s *Stack) Push(scr *Screen) {
	s.goingForward = true
	s.InsertScreen(scr, s.ScreenCount())
	s.restack()
}

// Pop removes the top screen and requests a coalesced update. Returns nil
// on an empty stack.
func (s *Stack) Pop() *Screen {
	n := s.ScreenCount()
	if n == 0 {
		return nil
	}
	top := s.ScreenAt(n - 1)
	s.goingForward = false
	s.RemoveScreenAt(n - 1)
	s.restack()
	return top
}

// Dismiss removes scr and every screen above it, then reconciles
// immediately.
func (s *Stack) Dismiss(scr *Screen) error {
	i := s.IndexOf(scr)
	if i < 0 {
		return ErrNotInContainer
	}
	s.goingForward = false
	for j := s.ScreenCount() - 1; j >= i; j-- {
		s.RemoveScreenAt(j)
	}
	s.restack()
	return s.ForceUpdateNow()
}

// GoingForward reports whether the last stack change was a push.
func (s *Stack) GoingForward() bool {
	return s.goingForward
}

func (s *Stack) restack() {
	n := len(s.screens)
	for i, a := range s.screens {
		switch {
		case i == n-1:
			a.screen.state = ActivityOnTop
		case i == n-2 && s.screens[n-1].screen.Transparent:
			a.screen.state = ActivityBelowTop
		default:
			a.screen.state = ActivityInactive
		}
	}
}
