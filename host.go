package screens

import "errors"

// ErrStateLoss is returned by HostTransaction.Commit when the host applied
// the transaction but could no longer persist its state. Containers treat it
// as an expected outcome.
var ErrStateLoss = errors.New("screens: commit after host state was saved")

// ErrNotInContainer is returned when an operation needs the screen to be
// owned by a container and it is not.
var ErrNotInContainer = errors.New("screens: screen is not in this container")

// HostTransactionManager is the native retained-view side of one container.
// It is only touched while the owning container is attached.
type HostTransactionManager interface {
	// IsDestroyed reports whether the host has been torn down. Reconciling
	// against a destroyed host is a no-op, not an error.
	IsDestroyed() bool

	// Attached returns the adapters the host currently has attached, in
	// stacking order (bottom first).
	Attached() []*HostAdapter

	// Begin opens a transaction. Operations take effect at Commit.
	Begin() HostTransaction
}

// HostTransaction batches attach and detach operations into one atomic
// commit. Attaching an adapter that is already attached moves it to the
// top of the stack.
type HostTransaction interface {
	Attach(a *HostAdapter)
	Detach(a *HostAdapter)

	// Commit applies the operations as one unit. It must not fail because
	// the host can no longer save state; that case returns ErrStateLoss
	// after the operations were applied.
	Commit() error
}
