// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle is an opaque reference to a renderer resource. The zero Handle refers to nothing.
type Handle uint32

// Kind describes what a box or height field is for, so the renderer can pick a material.
type Kind string

const (
	KindPlatform  = Kind("platform")
	KindTerrain   = Kind("terrain")
	KindPreview   = Kind("preview")   // Translucent height preview.
	KindWireframe = Kind("wireframe") // Footprint outline.
	KindBlock     = Kind("block")
	KindBlobs     = Kind("blobs")
)

// Hit is the nearest intersection of a ray with a set of candidates.
type Hit struct {
	Point    world.Vec3f `json:"point"`
	Distance float32     `json:"distance"`
	Handle   Handle      `json:"handle"`
}

type BoxSpec struct {
	Box        world.Box `json:"box"`
	Kind       Kind      `json:"kind"`
	Opacity    float32   `json:"opacity"`
	CastShadow bool      `json:"castShadow"`
}

// Renderer is everything the sandbox needs from whatever draws it.
type Renderer interface {
	// RayIntersect returns the nearest hit among candidates. Handles that don't
	// refer to a surface are ignored.
	RayIntersect(ray world.Ray, candidates []Handle) (Hit, bool)
	CreateBox(spec BoxSpec) Handle
	CreateHeightField(field *world.HeightField, baseY float32) Handle
	Destroy(handle Handle)

	// CreateInstanceBatch creates an instanced sphere mesh. Instances at or past the
	// visible count are not drawn.
	CreateInstanceBatch(radius float32) Handle
	CommitInstance(batch Handle, index int, transform mgl32.Mat4)
	SetVisibleCount(batch Handle, count int)

	MarkShadowsDirty()
	// Highlight outlines one object. The zero Handle clears the highlight.
	Highlight(handle Handle)
}
