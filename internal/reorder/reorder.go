// Package reorder converts a continuous drag displacement over a list
// into a discrete target index and per-item visual shifts. It is a pure
// function of the drag state and knows nothing about persistence.
package reorder

import "math"

// DefaultItemExtent is the height of one row, including spacing, in
// the same unit as drag displacements.
const DefaultItemExtent = 60.0

// commitDistance is the minimum absolute displacement for a gesture to
// commit a move; smaller movements are treated as an accidental tap.
const commitDistance = 20.0

// TargetIndex maps a signed drag displacement to the index the dragged
// item would land on. The dragged item advances one slot each time the
// displacement crosses half an item extent beyond a full slot; a
// displacement sitting exactly on a crossing point has not yet crossed
// it. The result is clamped to [0, totalItems-1].
func TargetIndex(originIndex, totalItems int, displacement, itemExtent float64) int {
	if totalItems <= 0 || itemExtent <= 0 {
		return originIndex
	}
	threshold := itemExtent / 2

	raw := originIndex
	switch {
	case displacement > threshold:
		raw = originIndex + int(math.Ceil((displacement-threshold)/itemExtent))
	case displacement < -threshold:
		raw = originIndex - int(math.Ceil((-displacement-threshold)/itemExtent))
	}

	if raw < 0 {
		raw = 0
	}
	if raw > totalItems-1 {
		raw = totalItems - 1
	}
	return raw
}

// Shift reports the visual offset of the non-dragged item at index i
// while the dragged item travels from originIndex toward targetIndex.
// Items the drag passes over slide one slot toward the vacated origin.
func Shift(i, originIndex, targetIndex int, itemExtent float64) float64 {
	switch {
	case originIndex < targetIndex && i > originIndex && i <= targetIndex:
		return -itemExtent
	case originIndex > targetIndex && i >= targetIndex && i < originIndex:
		return itemExtent
	default:
		return 0
	}
}

// state of a Drag.
type state int

const (
	idle state = iota
	dragging
)

// Drag tracks one in-flight reorder gesture. Only one item may be
// dragged at a time; exclusivity is the caller's responsibility.
type Drag struct {
	state        state
	originIndex  int
	totalItems   int
	itemExtent   float64
	displacement float64
}

// Start begins tracking a drag of the item at originIndex.
func (d *Drag) Start(originIndex, totalItems int, itemExtent float64) {
	if itemExtent <= 0 {
		itemExtent = DefaultItemExtent
	}
	d.state = dragging
	d.originIndex = originIndex
	d.totalItems = totalItems
	d.itemExtent = itemExtent
	d.displacement = 0
}

// Move records the latest displacement sample. Most recent wins.
func (d *Drag) Move(displacement float64) {
	if d.state != dragging {
		return
	}
	d.displacement = displacement
}

// Active reports whether a drag is in flight.
func (d *Drag) Active() bool {
	return d.state == dragging
}

// OriginIndex returns the dragged item's index before the gesture.
func (d *Drag) OriginIndex() int {
	return d.originIndex
}

// TargetIndex returns the index the dragged item would land on now.
func (d *Drag) TargetIndex() int {
	if d.state != dragging {
		return d.originIndex
	}
	return TargetIndex(d.originIndex, d.totalItems, d.displacement, d.itemExtent)
}

// ShiftFor returns the current visual offset of the item at index i.
func (d *Drag) ShiftFor(i int) float64 {
	if d.state != dragging || i == d.originIndex {
		return 0
	}
	return Shift(i, d.originIndex, d.TargetIndex(), d.itemExtent)
}

// End finishes the gesture. It reports the move to apply and whether
// the gesture commits: a move is only committed when the displacement
// exceeds the tap tolerance and the target differs from the origin.
// The drag returns to idle either way.
func (d *Drag) End() (from, to int, commit bool) {
	if d.state != dragging {
		return 0, 0, false
	}
	from = d.originIndex
	to = d.TargetIndex()
	commit = math.Abs(d.displacement) > commitDistance && to != from
	d.Reset()
	return from, to, commit
}

// Reset abandons any in-flight gesture unconditionally.
func (d *Drag) Reset() {
	*d = Drag{}
}
