// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package level

import (
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
)

// State is the step of block placement.
type State uint8

const (
	Idle         State = iota
	FirstCorner        // first corner placed
	SecondCorner       // dragging second corner
	HeightAdjust       // dragging height
)

var stateNames = [...]string{"idle", "firstCorner", "secondCorner", "heightAdjust"}

func (state State) String() string {
	if int(state) < len(stateNames) {
		return stateNames[state]
	}
	return "unknown"
}

// Wizard places blocks in four clicks: first corner, second corner, height then commit.
type Wizard struct {
	renderer scene.Renderer
	state    State
	pending  Pending
	nextID   ID
}

func NewWizard(renderer scene.Renderer) *Wizard {
	return &Wizard{renderer: renderer, nextID: 1}
}

func (w *Wizard) State() State {
	return w.state
}

// Pending returns the block being placed, or nil when idle.
func (w *Wizard) Pending() *Pending {
	if w.state == Idle {
		return nil
	}
	return &w.pending
}

// Click advances the wizard. hit is the ground under the cursor, and clicks that need
// a point are ignored without one. A block is returned when the last click commits it.
func (w *Wizard) Click(hit world.Vec3f, ok bool, ndc world.Vec2f) *Block {
	ok = ok && hit.Finite()
	switch w.state {
	case Idle:
		if !ok {
			return nil
		}
		w.pending = Pending{Start: hit, End: hit, GroundY: hit.Y}
		w.state = FirstCorner
	case FirstCorner:
		if !ok {
			return nil
		}
		w.pending.End = hit
		w.pending.outline(w.renderer)
		w.state = SecondCorner
	case SecondCorner:
		if fp := w.pending.Footprint(); !(fp.Width > 0 && fp.Height > 0) {
			return nil
		}
		w.pending.DragOriginY = ndc.Y
		w.pending.Height = HeightFromCursor(ndc.Y)
		w.pending.extrude(w.renderer)
		w.state = HeightAdjust
	case HeightAdjust:
		p := &w.pending
		block := newBlock(w.renderer, w.nextID, p.Footprint(), p.GroundY, p.Height)
		w.nextID++
		w.Reset()
		return block
	}
	return nil
}

// Move follows the cursor. hit is only used while placing the second corner.
func (w *Wizard) Move(hit world.Vec3f, ok bool, ndc world.Vec2f) {
	switch w.state {
	case SecondCorner:
		if ok && hit.Finite() {
			w.pending.End = hit
			w.pending.outline(w.renderer)
		}
	case HeightAdjust:
		w.pending.Height = HeightFromCursor(ndc.Y)
		w.pending.extrude(w.renderer)
	}
}

// Reset discards any block being placed.
func (w *Wizard) Reset() {
	w.pending.discard(w.renderer)
	w.pending = Pending{}
	w.state = Idle
}

// HeightFromCursor maps normalized cursor y in [-1, 1] to a block height.
func HeightFromCursor(y float32) float32 {
	return world.MapRanges(y, -1, 1, MinHeight, MaxHeight, true)
}

// CursorForHeight is the inverse of HeightFromCursor.
func CursorForHeight(h float32) float32 {
	return world.MapRanges(h, MinHeight, MaxHeight, -1, 1, true)
}
