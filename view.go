package screens

// viewIDCounter is a plain counter (no atomic: views are single-threaded).
var viewIDCounter uint32

func nextViewID() uint32 {
	viewIDCounter++
	return viewIDCounter
}

// View is an element of the retained view tree hosts attach screens into.
// Geometry is local to the parent; Alpha multiplies down the tree.
type View struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *View
	children []*View

	// Geometry (local)
	X, Y          float64
	Width, Height float64

	// Appearance
	Alpha   float64
	Color   Color
	Visible bool

	// Metadata
	UserData any

	disposed bool
}

// NewView creates a visible, fully opaque, zero-sized view.
func NewView(name string) *View {
	return &View{
		ID:      nextViewID(),
		Name:    name,
		Alpha:   1,
		Color:   ColorWhite,
		Visible: true,
	}
}

// Bounds returns the view's rectangle in its parent's space.
func (v *View) Bounds() Rect {
	return Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}

// --- Tree manipulation ---

// AddChild appends child to this view's children, moving it to the top if it
// is already a child. If child has another parent it is removed from it
// first. Panics if child is nil or an ancestor of this view (cycle).
func (v *View) AddChild(child *View) {
	v.AddChildAt(child, -1)
}

// AddChildAt inserts child at index; -1 appends. Same reparenting and cycle
// checks as AddChild.
func (v *View) AddChildAt(child *View, index int) {
	if child == nil {
		panic("screens: cannot add nil view")
	}
	if globalDebug {
		debugCheckDisposed(v, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, v) {
		panic("screens: adding view would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index == -1 {
		index = len(v.children)
	}
	if index < 0 || index > len(v.children) {
		panic("screens: view index out of range")
	}
	child.Parent = v
	v.children = append(v.children, nil)
	copy(v.children[index+1:], v.children[index:])
	v.children[index] = child
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this view.
// Panics if child.Parent != v.
func (v *View) RemoveChild(child *View) {
	if child.Parent != v {
		panic("screens: view's parent is not this view")
	}
	v.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this view from its parent.
// No-op if this view has no parent.
func (v *View) RemoveFromParent() {
	if v.Parent == nil {
		return
	}
	v.Parent.RemoveChild(v)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (v *View) Children() []*View {
	return v.children
}

// NumChildren returns the number of children.
func (v *View) NumChildren() int {
	return len(v.children)
}

// ChildAt returns the child at the given index.
func (v *View) ChildAt(index int) *View {
	return v.children[index]
}

// IndexOf returns the index of child among this view's children, or -1.
func (v *View) IndexOf(child *View) int {
	for i, c := range v.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Disposal ---

// Dispose removes this view from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	v.RemoveFromParent()
	v.dispose()
}

func (v *View) dispose() {
	v.disposed = true
	v.ID = 0
	for _, child := range v.children {
		child.Parent = nil
		child.dispose()
	}
	v.children = nil
	v.Parent = nil
	v.UserData = nil
}

// IsDisposed returns true if this view has been disposed.
func (v *View) IsDisposed() bool {
	return v.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of (or equal to) view.
func isAncestor(candidate, view *View) bool {
	for p := view; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from v.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (v *View) removeChildByPtr(child *View) {
	for i, c := range v.children {
		if c == child {
			copy(v.children[i:], v.children[i+1:])
			v.children[len(v.children)-1] = nil
			v.children = v.children[:len(v.children)-1]
			return
		}
	}
}
