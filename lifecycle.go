package screens

// LifecycleGate is the per-screen dedup state for the four lifecycle events.
// Each state names which half of the WillAppear/WillDisappear pair and which
// half of the Appear/Disappear pair may fire next, so exactly one event of
// each pair is dispatchable at any time.
type LifecycleGate uint8

const (
	GateHidden       LifecycleGate = iota // WillAppear and Appear next
	GateAppearing                         // WillAppear consumed, Appear pending
	GateVisible                           // WillDisappear and Disappear next
	GateDisappearing                      // WillDisappear consumed, Disappear pending
)

func (g LifecycleGate) String() string {
	switch g {
	case GateHidden:
		return "hidden"
	case GateAppearing:
		return "appearing"
	case GateVisible:
		return "visible"
	case GateDisappearing:
		return "disappearing"
	default:
		return "invalid"
	}
}

// CanWillAppear reports whether WillAppear is the next event of its pair.
func (g LifecycleGate) CanWillAppear() bool {
	return g == GateHidden || g == GateDisappearing
}

// CanAppear reports whether Appear is the next event of its pair.
func (g LifecycleGate) CanAppear() bool {
	return g == GateHidden || g == GateAppearing
}

func gateFrom(canWillAppear, canAppear bool) LifecycleGate {
	switch {
	case canWillAppear && canAppear:
		return GateHidden
	case !canWillAppear && canAppear:
		return GateAppearing
	case !canWillAppear && !canAppear:
		return GateVisible
	default:
		return GateDisappearing
	}
}

// CanDispatch reports whether kind may fire from this state. Non-lifecycle
// kinds are never gated through here and always report false.
func (g LifecycleGate) CanDispatch(kind EventKind) bool {
	switch kind {
	case EventWillAppear:
		return g.CanWillAppear()
	case EventAppear:
		return g.CanAppear()
	case EventWillDisappear:
		return !g.CanWillAppear()
	case EventDisappear:
		return !g.CanAppear()
	default:
		return false
	}
}

// Record returns the state after kind has been dispatched. Recording an
// event flips its pair to the complementary half.
func (g LifecycleGate) Record(kind EventKind) LifecycleGate {
	willAppear, appear := g.CanWillAppear(), g.CanAppear()
	switch kind {
	case EventWillAppear:
		willAppear = false
	case EventAppear:
		appear = false
	case EventWillDisappear:
		willAppear = true
	case EventDisappear:
		appear = true
	default:
		return g
	}
	return gateFrom(willAppear, appear)
}
