// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package level

import (
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
)

// Pending is a block being placed. It owns up to two preview objects.
type Pending struct {
	Start       world.Vec3f
	End         world.Vec3f
	Height      float32
	GroundY     float32 // y of the first corner's hit, where the block's bottom goes
	DragOriginY float32 // normalized cursor y when the footprint was frozen

	preview   scene.Handle // solid, translucent
	wireframe scene.Handle
}

func (p *Pending) Footprint() world.AABB {
	return world.AABBFromCorners(p.Start.XZ(), p.End.XZ())
}

// outline rebuilds the wireframe over the footprint, above whichever corner is higher.
func (p *Pending) outline(renderer scene.Renderer) {
	renderer.Destroy(p.wireframe)
	p.wireframe = 0

	footprint := p.Footprint()
	if footprint.Width <= 0 && footprint.Height <= 0 {
		return
	}

	box := world.BoxOnFootprint(footprint, max(p.GroundY, p.End.Y)+PreviewLift, 0)
	p.wireframe = renderer.CreateBox(scene.BoxSpec{
		Box:     box,
		Kind:    scene.KindWireframe,
		Opacity: 1,
	})
}

// extrude rebuilds the solid preview at the current height.
func (p *Pending) extrude(renderer scene.Renderer) {
	renderer.Destroy(p.preview)
	p.preview = renderer.CreateBox(scene.BoxSpec{
		Box:     world.BoxOnFootprint(p.Footprint(), p.GroundY, p.Height),
		Kind:    scene.KindPreview,
		Opacity: PreviewOpacity,
	})
}

// discard destroys all preview objects.
func (p *Pending) discard(renderer scene.Renderer) {
	renderer.Destroy(p.preview)
	renderer.Destroy(p.wireframe)
	p.preview = 0
	p.wireframe = 0
}
