// Package pane implements the split-pane layout tree: a binary tree whose
// leaves hold a terminal session id and whose internal nodes hold a split
// direction, a divider ratio, and two children.
package pane

import (
	"errors"

	"github.com/google/uuid"
)

// SplitDirection describes how a split pane divides its bounds between its
// two children.
type SplitDirection int

const (
	// SplitNone marks a leaf pane.
	SplitNone SplitDirection = iota
	// SplitHorizontal arranges children left/right.
	SplitHorizontal
	// SplitVertical arranges children top/bottom.
	SplitVertical
)

// dividerSize is the thickness, in columns or rows, reserved for the
// draggable divider between a split pane's two children.
const dividerSize = 4

const (
	minSplitRatio = 0.1
	maxSplitRatio = 0.9
	defaultRatio  = 0.5
)

// Rect is an axis-aligned region of the terminal grid, in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Pane is a node in the split tree: either a leaf bound to a session id, or
// a split node with exactly two children.
type Pane struct {
	ID uuid.UUID

	sessionID string // only meaningful when IsLeaf

	direction SplitDirection
	first     *Pane
	second    *Pane
	ratio     float64

	bounds Rect
	parent *Pane
}

// NewLeaf creates a leaf pane bound to the given session id.
func NewLeaf(sessionID string) *Pane {
	return &Pane{ID: uuid.New(), sessionID: sessionID}
}

// IsLeaf reports whether this pane holds a session directly rather than children.
func (p *Pane) IsLeaf() bool {
	return p.direction == SplitNone
}

// SessionID returns the bound session id. Only meaningful for leaf panes.
func (p *Pane) SessionID() string {
	return p.sessionID
}

// Direction returns the split direction (SplitNone for leaves).
func (p *Pane) Direction() SplitDirection {
	return p.direction
}

// First returns the first child (nil for leaves).
func (p *Pane) First() *Pane {
	return p.first
}

// Second returns the second child (nil for leaves).
func (p *Pane) Second() *Pane {
	return p.second
}

// Parent returns the enclosing split pane, or nil at the root.
func (p *Pane) Parent() *Pane {
	return p.parent
}

// Ratio returns the position of the divider, in [0.1, 0.9].
func (p *Pane) Ratio() float64 {
	return p.ratio
}

// SetRatio clamps and sets the divider position.
func (p *Pane) SetRatio(ratio float64) {
	if ratio < minSplitRatio {
		ratio = minSplitRatio
	}
	if ratio > maxSplitRatio {
		ratio = maxSplitRatio
	}
	p.ratio = ratio
}

// Bounds returns the last rectangle computed for this pane by Layout.
func (p *Pane) Bounds() Rect {
	return p.bounds
}

// Layout recomputes bounds for this pane and, recursively, every descendant,
// reserving dividerSize cells between a split's two children.
func (p *Pane) Layout(available Rect) {
	p.bounds = available
	if p.IsLeaf() {
		return
	}

	horizontal := p.direction == SplitHorizontal
	total := available.Width
	if !horizontal {
		total = available.Height
	}
	firstSize := int(float64(total-dividerSize) * p.ratio)
	secondSize := total - firstSize - dividerSize

	firstRect, secondRect := available, available
	if horizontal {
		firstRect.Width = firstSize
		secondRect.X += firstSize + dividerSize
		secondRect.Width = secondSize
	} else {
		firstRect.Height = firstSize
		secondRect.Y += firstSize + dividerSize
		secondRect.Height = secondSize
	}

	if p.first != nil {
		p.first.Layout(firstRect)
	}
	if p.second != nil {
		p.second.Layout(secondRect)
	}
}

// DividerRect returns the rectangle occupied by this split pane's divider.
// Returns the zero Rect for a leaf.
func (p *Pane) DividerRect() Rect {
	if p.IsLeaf() {
		return Rect{}
	}
	horizontal := p.direction == SplitHorizontal
	total := p.bounds.Width
	if !horizontal {
		total = p.bounds.Height
	}
	firstSize := int(float64(total-dividerSize) * p.ratio)

	var d Rect
	if horizontal {
		d = Rect{X: p.bounds.X + firstSize, Y: p.bounds.Y, Width: dividerSize, Height: p.bounds.Height}
	} else {
		d = Rect{X: p.bounds.X, Y: p.bounds.Y + firstSize, Width: p.bounds.Width, Height: dividerSize}
	}
	return d
}

// FindPaneWithSession searches the subtree for the leaf bound to sessionID.
func (p *Pane) FindPaneWithSession(sessionID string) *Pane {
	if p.IsLeaf() {
		if p.sessionID == sessionID {
			return p
		}
		return nil
	}
	if p.first != nil {
		if found := p.first.FindPaneWithSession(sessionID); found != nil {
			return found
		}
	}
	if p.second != nil {
		if found := p.second.FindPaneWithSession(sessionID); found != nil {
			return found
		}
	}
	return nil
}

// FindPaneAt returns the leaf pane containing (x, y), or nil outside the tree.
func (p *Pane) FindPaneAt(x, y int) *Pane {
	if !p.bounds.contains(x, y) {
		return nil
	}
	if p.IsLeaf() {
		return p
	}
	if p.first != nil {
		if found := p.first.FindPaneAt(x, y); found != nil {
			return found
		}
	}
	if p.second != nil {
		if found := p.second.FindPaneAt(x, y); found != nil {
			return found
		}
	}
	return nil
}

// FindDividerAt returns the split pane whose divider contains (x, y), with a
// hitMargin-cell tolerance along the axis perpendicular to the divider, or
// nil if no divider is near that point.
func (p *Pane) FindDividerAt(x, y int) (*Pane, SplitDirection) {
	const hitMargin = 4
	if !p.bounds.contains(x, y) {
		return nil, SplitNone
	}
	if p.IsLeaf() {
		return nil, SplitNone
	}

	d := p.DividerRect()
	var onDivider bool
	if p.direction == SplitHorizontal {
		onDivider = x >= d.X-hitMargin && x < d.X+d.Width+hitMargin && y >= d.Y && y < d.Y+d.Height
	} else {
		onDivider = y >= d.Y-hitMargin && y < d.Y+d.Height+hitMargin && x >= d.X && x < d.X+d.Width
	}
	if onDivider {
		return p, p.direction
	}

	if p.first != nil {
		if found, dir := p.first.FindDividerAt(x, y); found != nil {
			return found, dir
		}
	}
	if p.second != nil {
		if found, dir := p.second.FindDividerAt(x, y); found != nil {
			return found, dir
		}
	}
	return nil, SplitNone
}

// LeafPanes returns every leaf in the subtree, in left-to-right / top-to-
// bottom tree order.
func (p *Pane) LeafPanes() []*Pane {
	if p.IsLeaf() {
		return []*Pane{p}
	}
	var leaves []*Pane
	if p.first != nil {
		leaves = append(leaves, p.first.LeafPanes()...)
	}
	if p.second != nil {
		leaves = append(leaves, p.second.LeafPanes()...)
	}
	return leaves
}

// AdjacentPane returns the next (or, if forward is false, previous) leaf
// pane after from in tree order, wrapping circularly. Returns nil if from
// is not found or it is the only leaf.
func (p *Pane) AdjacentPane(from *Pane, forward bool) *Pane {
	leaves := p.LeafPanes()
	if len(leaves) <= 1 {
		return nil
	}
	index := -1
	for i, leaf := range leaves {
		if leaf == from {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}
	if forward {
		return leaves[(index+1)%len(leaves)]
	}
	return leaves[(index-1+len(leaves))%len(leaves)]
}

// ErrNotLeaf is returned by Split when called on a non-leaf pane.
var ErrNotLeaf = errors.New("pane: cannot split a non-leaf pane")

// Split converts this leaf pane into a split pane with two children: a new
// leaf carrying this pane's original session, and a new leaf for newSessionID.
// Returns the newly created pane.
func (p *Pane) Split(direction SplitDirection, newSessionID string) (*Pane, error) {
	if !p.IsLeaf() {
		return nil, ErrNotLeaf
	}

	existing := NewLeaf(p.sessionID)
	created := NewLeaf(newSessionID)

	p.sessionID = ""
	p.direction = direction
	p.first = existing
	p.second = created
	p.ratio = defaultRatio

	existing.parent = p
	created.parent = p

	return created, nil
}

// CloseChild removes childToClose from this split pane, promoting the
// sibling in its place (the sibling's contents are adopted directly into
// this node, which keeps parent back-links to this node stable across the
// close). Reports false if childToClose is not a direct child.
func (p *Pane) CloseChild(childToClose *Pane) bool {
	if p.IsLeaf() {
		return false
	}

	var keep *Pane
	switch childToClose {
	case p.first:
		keep = p.second
	case p.second:
		keep = p.first
	default:
		return false
	}
	if keep == nil {
		return false
	}

	if keep.IsLeaf() {
		p.sessionID = keep.sessionID
		p.direction = SplitNone
		p.first = nil
		p.second = nil
	} else {
		p.direction = keep.direction
		p.ratio = keep.ratio
		p.first = keep.first
		p.second = keep.second
		if p.first != nil {
			p.first.parent = p
		}
		if p.second != nil {
			p.second.parent = p
		}
	}

	return true
}
