package screens

import "fmt"

// globalDebug enables the extra checks and per-pass logging below. Only
// valid with a single UI thread, which is the only supported setup.
var globalDebug bool

// SetDebugMode toggles debug checks: disposed views used in tree operations
// panic, deep trees and crowded containers are warned about, and every
// committed pass is logged at debug level.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug checks are enabled.
func DebugMode() bool {
	return globalDebug
}

// debugCheckDisposed panics with a descriptive message when a disposed view
// is used in a tree operation.
func debugCheckDisposed(v *View, op string) {
	if v.disposed {
		panic(fmt.Sprintf("screens debug: %s on disposed view %q", op, v.Name))
	}
}

// debugCheckTreeDepth warns if view nesting exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(v *View) {
	depth := 0
	for p := v; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("screens: view tree too deep", "depth", depth, "threshold", debugMaxTreeDepth, "view", v.Name)
	}
}

// debugCheckScreenCount warns if a container holds more than 64 screens,
// which usually means screens are pushed without ever being removed.
const debugMaxScreenCount = 64

func debugCheckScreenCount(c *Container) {
	if n := len(c.screens); n > debugMaxScreenCount {
		c.log().Warn("screens: container holds many screens", "surface", c.surfaceID, "count", n, "threshold", debugMaxScreenCount)
	}
}

func debugLogPass(c *Container, stats PassStats, transitioning bool) {
	c.log().Debug("screens: pass committed",
		"surface", c.surfaceID,
		"pass", c.passes,
		"screens", len(c.screens),
		"orphans", stats.Orphans,
		"detached", stats.Detached,
		"attached", stats.Attached,
		"reordered", stats.Reordered,
		"transitioning", transitioning,
	)
}
