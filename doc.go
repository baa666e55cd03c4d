// Package screens keeps ordered screen stacks in sync with a retained view
// tree and emits deduplicated lifecycle events while screens attach, detach
// and animate.
//
// A [Container] owns an ordered list of [Screen] values. Its list order is
// the stacking order (index 0 at the bottom). Each screen requests a
// presentation state ([ActivityOnTop], [ActivityBelowTop] or
// [ActivityInactive]); a reconcile pass turns the list into attach and
// detach operations committed atomically through a [HostTransactionManager].
// A [Stack] is a container that derives states from push/pop order.
//
// # Quick start
//
// The simplest way to get going is a [Stage], which owns the root view, the
// scheduling queue and transition animations, and runs as an ebiten game:
//
//	stage, _ := screens.NewStage(screens.DefaultConfig())
//	stage.SetEventSink(screens.SinkFunc(func(e screens.Event) {
//		log.Println(e.Kind, e.ScreenID)
//	}))
//	stack, _, _ := stage.MountStack(nil, nil)
//	stack.Push(screens.NewScreen("home"))
//	screens.Run(stage)
//
// # Scheduling
//
// Everything runs on one thread through a [TaskQueue]. List mutations call
// [Container.RequestUpdate], which collapses into a single pass on the next
// frame. [Container.ForceUpdateNow] reconciles synchronously and is used
// when attaching to a host, on explicit dismissal and for out-of-band state
// changes ([Screen.ApplyState]).
//
// # Lifecycle events
//
// Each screen's [HostAdapter] holds a [LifecycleGate] that lets exactly one
// event of each pair (WillAppear/WillDisappear, Appear/Disappear) fire next,
// so duplicates from racing callbacks are dropped. Events of a screen are
// forwarded to the top screen of every container nested inside it. Appear
// is delivered at the end of the current turn so the leaving screen's
// Disappear is observed first.
//
// Transition progress is reported through a [ProgressEmitter], which drops
// repeated values and tags the 0 and 1 boundaries with their own coalescing
// keys.
//
// Events leave through an [EventSink]. The ecs sub-module publishes them
// into a Donburi world.
package screens
