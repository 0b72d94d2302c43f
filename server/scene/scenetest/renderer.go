// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scenetest provides a scene.Renderer for tests whose ray hits are chosen by the test.
package scenetest

import (
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer keeps real scene bookkeeping but answers ray queries from Aim/Miss.
type Renderer struct {
	*scene.Scene

	aimed     bool
	point     world.Vec3f
	target    scene.Handle // zero means the first candidate
	Queries   [][]scene.Handle
	Created   int
	Destroyed int
	Committed int
	Shadows   int
}

func New() *Renderer {
	return &Renderer{Scene: scene.New()}
}

// Aim makes subsequent ray queries hit point on target. A zero target hits the first candidate.
func (r *Renderer) Aim(point world.Vec3f, target scene.Handle) {
	r.aimed = true
	r.point = point
	r.target = target
}

// Miss makes subsequent ray queries miss.
func (r *Renderer) Miss() {
	r.aimed = false
}

func (r *Renderer) RayIntersect(ray world.Ray, candidates []scene.Handle) (scene.Hit, bool) {
	r.Queries = append(r.Queries, append([]scene.Handle(nil), candidates...))
	if !r.aimed || len(candidates) == 0 {
		return scene.Hit{}, false
	}

	target := r.target
	if target == 0 {
		target = candidates[0]
	}
	for _, h := range candidates {
		if h == target {
			return scene.Hit{Point: r.point, Distance: ray.Origin.Distance(r.point), Handle: h}, true
		}
	}
	return scene.Hit{}, false
}

func (r *Renderer) CreateBox(spec scene.BoxSpec) scene.Handle {
	r.Created++
	return r.Scene.CreateBox(spec)
}

func (r *Renderer) CreateHeightField(field *world.HeightField, baseY float32) scene.Handle {
	r.Created++
	return r.Scene.CreateHeightField(field, baseY)
}

func (r *Renderer) Destroy(h scene.Handle) {
	r.Destroyed++
	r.Scene.Destroy(h)
}

func (r *Renderer) CommitInstance(batch scene.Handle, index int, transform mgl32.Mat4) {
	r.Committed++
	r.Scene.CommitInstance(batch, index, transform)
}

func (r *Renderer) MarkShadowsDirty() {
	r.Shadows++
	r.Scene.MarkShadowsDirty()
}

// LastQuery returns the candidates of the most recent ray query.
func (r *Renderer) LastQuery() []scene.Handle {
	if len(r.Queries) == 0 {
		return nil
	}
	return r.Queries[len(r.Queries)-1]
}
