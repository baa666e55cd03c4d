package screens

// progressUnset is the sentinel held before the first emission.
const progressUnset = -1.0

// ProgressEmitter memoizes the last transition progress value of one screen
// and drops exact repeats. The zero value is not ready; use NewProgressEmitter.
type ProgressEmitter struct {
	last float64
}

// NewProgressEmitter returns an emitter holding the unset sentinel.
func NewProgressEmitter() ProgressEmitter {
	return ProgressEmitter{last: progressUnset}
}

// Last returns the last emitted value, or -1 before the first emission.
func (p *ProgressEmitter) Last() float64 {
	return p.last
}

// Reset forgets the last value so the next Emit always fires.
func (p *ProgressEmitter) Reset() {
	p.last = progressUnset
}

// Emit clamps raw to [0, 1] and returns the progress event to deliver, or
// false when the value equals the previous one. SurfaceID and ScreenID are
// left for the caller to fill.
func (p *ProgressEmitter) Emit(raw float64, closing, goingForward bool) (Event, bool) {
	v := clamp01(raw)
	if v == p.last {
		return Event{}, false
	}
	p.last = v
	return Event{
		Kind:          EventTransitionProgress,
		Progress:      v,
		Closing:       closing,
		GoingForward:  goingForward,
		CoalescingKey: coalescingKey(v),
	}, true
}

func coalescingKey(v float64) int16 {
	switch v {
	case 0:
		return CoalesceStart
	case 1:
		return CoalesceEnd
	default:
		return CoalesceOngoing
	}
}

func clamp01(v float64) float64 {
	// NaN compares false everywhere; treat it as the start.
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
