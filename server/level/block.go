// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package level

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/chewxy/math32"
)

const (
	MinHeight = 0.2
	MaxHeight = 6.0
	// PreviewLift raises the footprint outline above the ground so it isn't hidden by it.
	PreviewLift    = 0.01
	PreviewOpacity = 0.5
)

// ErrInvalidParameter is returned for a non-positive or non-finite height.
var ErrInvalidParameter = errors.New("invalid level block parameter")

// ID identifies a committed block within a session.
type ID uint32

// Block is a committed rectangular prism standing on the ground.
// Only its height changes after it is committed, and its bottom stays put when it does.
type Block struct {
	ID        ID         `json:"id"`
	Footprint world.AABB `json:"footprint"`
	Height    float32    `json:"height"`
	BottomY   float32    `json:"bottomY"`
	handle    scene.Handle
}

func newBlock(renderer scene.Renderer, id ID, footprint world.AABB, bottomY, height float32) *Block {
	block := &Block{
		ID:        id,
		Footprint: footprint,
		Height:    height,
		BottomY:   bottomY,
	}
	block.handle = renderer.CreateBox(block.spec())
	renderer.MarkShadowsDirty()
	return block
}

func (block *Block) spec() scene.BoxSpec {
	return scene.BoxSpec{
		Box:        block.Box(),
		Kind:       scene.KindBlock,
		Opacity:    1,
		CastShadow: true,
	}
}

func (block *Block) Box() world.Box {
	return world.BoxOnFootprint(block.Footprint, block.BottomY, block.Height)
}

// Center is the center of the block's volume.
func (block *Block) Center() world.Vec3f {
	return block.Box().Center
}

func (block *Block) Width() float32 {
	return block.Footprint.Width
}

func (block *Block) Depth() float32 {
	return block.Footprint.Height
}

func (block *Block) Top() float32 {
	return block.BottomY + block.Height
}

func (block *Block) Handle() scene.Handle {
	return block.handle
}

// EditHeight replaces the block's geometry with one of height h. An invalid height
// leaves the block untouched.
func (block *Block) EditHeight(renderer scene.Renderer, h float32) error {
	if !(h > 0) || math32.IsInf(h, 0) {
		return fmt.Errorf("%w: height %v", ErrInvalidParameter, h)
	}

	renderer.Destroy(block.handle)
	block.Height = h
	block.handle = renderer.CreateBox(block.spec())
	renderer.MarkShadowsDirty()
	return nil
}

// Destroy removes the block's geometry.
func (block *Block) Destroy(renderer scene.Renderer) {
	renderer.Destroy(block.handle)
	block.handle = 0
}
