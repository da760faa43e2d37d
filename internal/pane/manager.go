package pane

import term "github.com/vtmux/vtmux"

// ResizeFunc is called with a leaf's new cell dimensions after a layout pass.
type ResizeFunc func(sessionID string, rows, cols int)

// Manager owns the root of a pane tree, the currently focused leaf, zoom
// state, and in-progress divider drags.
type Manager struct {
	root     *Pane
	focused  *Pane
	zoomed   bool

	resizingPane  *Pane
	resizeStart   int
	resizeRatio0  float64
}

// NewManager creates a Manager with a single root leaf bound to sessionID.
func NewManager(sessionID string) *Manager {
	root := NewLeaf(sessionID)
	return &Manager{root: root, focused: root}
}

// Root returns the root of the pane tree.
func (m *Manager) Root() *Pane {
	return m.root
}

// Focused returns the currently focused leaf pane.
func (m *Manager) Focused() *Pane {
	return m.focused
}

// SetFocused sets the focused pane directly, e.g. after a mouse click resolved
// via FindPaneAt.
func (m *Manager) SetFocused(p *Pane) {
	m.focused = p
}

// IsZoomed reports whether the focused pane is currently occupying the full
// available space, hiding its siblings.
func (m *Manager) IsZoomed() bool {
	return m.zoomed
}

// ToggleZoom flips zoom state. Has no effect with a single pane.
func (m *Manager) ToggleZoom() {
	if m.root != nil && !m.root.IsLeaf() {
		m.zoomed = !m.zoomed
	}
}

// SplitFocused splits the focused leaf pane in direction, giving the new
// child sessionID, and focuses the new pane. Returns nil if the focused
// pane isn't a leaf.
func (m *Manager) SplitFocused(direction SplitDirection, sessionID string) *Pane {
	if m.focused == nil || !m.focused.IsLeaf() {
		return nil
	}
	newPane, err := m.focused.Split(direction, sessionID)
	if err != nil {
		return nil
	}
	m.focused = newPane
	return newPane
}

// CloseFocused closes the focused pane, promoting its sibling, and returns
// the session id that was closed. Refuses to close the last remaining pane.
func (m *Manager) CloseFocused() (closedSessionID string, ok bool) {
	if m.focused == nil || m.root == nil {
		return "", false
	}
	if len(m.root.LeafPanes()) <= 1 {
		return "", false
	}

	parent := m.focused.Parent()
	if parent == nil {
		return "", false
	}

	closedSessionID = m.focused.SessionID()
	newFocus := m.root.AdjacentPane(m.focused, true)

	if !parent.CloseChild(m.focused) {
		return "", false
	}

	if newFocus != nil && newFocus != m.focused {
		m.focused = newFocus
	} else if leaves := m.root.LeafPanes(); len(leaves) > 0 {
		m.focused = leaves[0]
	} else {
		m.focused = nil
	}

	return closedSessionID, true
}

// FocusNext moves focus to the next leaf in circular tree order.
func (m *Manager) FocusNext() {
	if m.root == nil || m.focused == nil {
		return
	}
	if next := m.root.AdjacentPane(m.focused, true); next != nil {
		m.focused = next
	}
}

// FocusPrevious moves focus to the previous leaf in circular tree order.
func (m *Manager) FocusPrevious() {
	if m.root == nil || m.focused == nil {
		return
	}
	if prev := m.root.AdjacentPane(m.focused, false); prev != nil {
		m.focused = prev
	}
}

// FindPaneAt returns the leaf pane at (x, y), or nil if outside the tree.
func (m *Manager) FindPaneAt(x, y int) *Pane {
	if m.root == nil {
		return nil
	}
	return m.root.FindPaneAt(x, y)
}

// RouteMouseEvent resolves (x, y) in overall grid coordinates to a leaf pane,
// translates them to that pane's own coordinate space, and encodes the event
// for its PTY using its Terminal's currently active mouse mode. lookup maps a
// session id to its Terminal. Returns the target session id and the encoded
// bytes, or ("", nil) if (x, y) isn't over any pane, the pane's session isn't
// found, or the pane's terminal has no mouse mode enabled.
func (m *Manager) RouteMouseEvent(x, y, button int, press, motion bool, lookup func(sessionID string) *term.Terminal) (string, []byte) {
	p := m.FindPaneAt(x, y)
	if p == nil {
		return "", nil
	}
	t := lookup(p.SessionID())
	if t == nil {
		return "", nil
	}

	bounds := p.Bounds()
	encoded := t.EncodeMouseEvent(button, x-bounds.X+1, y-bounds.Y+1, press, motion)
	if encoded == nil {
		return "", nil
	}
	return p.SessionID(), encoded
}

// HasMultiplePanes reports whether the tree has more than one leaf.
func (m *Manager) HasMultiplePanes() bool {
	return m.root != nil && !m.root.IsLeaf()
}

// LeafPanes returns every leaf in the tree.
func (m *Manager) LeafPanes() []*Pane {
	if m.root == nil {
		return nil
	}
	return m.root.LeafPanes()
}

const (
	minPaneCols = 10
	minPaneRows = 3
)

// UpdateLayout recomputes every pane's bounds within a total area of
// totalRows x totalCols cells and calls resize for each affected leaf with
// its new row/col count. When zoomed, only the focused pane is resized, to
// the full area.
func (m *Manager) UpdateLayout(totalRows, totalCols int, resize ResizeFunc) {
	if m.root == nil {
		return
	}

	available := Rect{X: 0, Y: 0, Width: totalCols, Height: totalRows}

	if m.zoomed && m.focused != nil && m.focused.IsLeaf() {
		m.focused.bounds = available
		if resize != nil {
			resize(m.focused.SessionID(), totalRows, totalCols)
		}
		return
	}

	m.root.Layout(available)

	if resize == nil {
		return
	}
	for _, leaf := range m.root.LeafPanes() {
		b := leaf.Bounds()
		cols := b.Width
		if cols < minPaneCols {
			cols = minPaneCols
		}
		rows := b.Height
		if rows < minPaneRows {
			rows = minPaneRows
		}
		resize(leaf.SessionID(), rows, cols)
	}
}

// FindDividerAt returns the split pane whose divider is at (x, y), and its
// direction, or nil if no divider is there.
func (m *Manager) FindDividerAt(x, y int) (*Pane, SplitDirection) {
	if m.root == nil {
		return nil, SplitNone
	}
	return m.root.FindDividerAt(x, y)
}

// StartDividerResize begins an interactive divider drag at startPos (the
// column for a horizontal split, the row for a vertical one).
func (m *Manager) StartDividerResize(p *Pane, startPos int) {
	m.resizingPane = p
	m.resizeStart = startPos
	m.resizeRatio0 = p.Ratio()
}

// UpdateDividerResize adjusts the ratio of the pane being dragged, given the
// current position and the split's total size along its axis.
func (m *Manager) UpdateDividerResize(currentPos, totalSize int) {
	if m.resizingPane == nil || totalSize <= dividerSize {
		return
	}
	delta := currentPos - m.resizeStart
	ratioDelta := float64(delta) / float64(totalSize-dividerSize)
	m.resizingPane.SetRatio(m.resizeRatio0 + ratioDelta)
}

// EndDividerResize ends the current divider drag, if any.
func (m *Manager) EndDividerResize() {
	m.resizingPane = nil
}

// IsResizingDivider reports whether a divider drag is in progress.
func (m *Manager) IsResizingDivider() bool {
	return m.resizingPane != nil
}
