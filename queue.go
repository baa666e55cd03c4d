package screens

// TaskQueue is the cooperative scheduler every container and adapter of one
// UI thread shares. Frame callbacks run once per Tick; posted callbacks run
// at the end of the current turn when Drain is called. No locks: the queue
// must only be touched from the owning thread.
type TaskQueue struct {
	frame    []func()
	turn     []func()
	draining bool
	frames   uint64
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// OnNextFrame schedules fn for the next Tick.
func (q *TaskQueue) OnNextFrame(fn func()) {
	q.frame = append(q.frame, fn)
}

// Post schedules fn for the end of the current turn.
func (q *TaskQueue) Post(fn func()) {
	q.turn = append(q.turn, fn)
}

// Pending returns the number of frame and turn callbacks still queued.
func (q *TaskQueue) Pending() (frame, turn int) {
	return len(q.frame), len(q.turn)
}

// Frames returns how many times Tick has run.
func (q *TaskQueue) Frames() uint64 {
	return q.frames
}

// Tick runs the frame callbacks that were queued before the call, then
// drains the turn. Callbacks queued by a frame callback wait for the next
// Tick.
func (q *TaskQueue) Tick() {
	q.frames++
	pending := q.frame
	q.frame = nil
	for _, fn := range pending {
		fn()
	}
	q.Drain()
}

// Drain runs posted callbacks in FIFO order until none remain, including
// ones posted while draining. A nested Drain is a no-op.
func (q *TaskQueue) Drain() {
	if q.draining {
		return
	}
	q.draining = true
	defer func() { q.draining = false }()
	for len(q.turn) > 0 {
		fn := q.turn[0]
		q.turn[0] = nil
		q.turn = q.turn[1:]
		fn()
	}
	q.turn = nil
}
