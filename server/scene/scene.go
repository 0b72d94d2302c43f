// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/go-gl/mathgl/mgl32"
)

type OpType string

const (
	OpCreateBox         = OpType("createBox")
	OpCreateHeightField = OpType("createHeightField")
	OpDestroy           = OpType("destroy")
	OpCreateBatch       = OpType("createBatch")
	OpCommitInstance    = OpType("commitInstance")
	OpVisibleCount      = OpType("visibleCount")
	OpShadowsDirty      = OpType("shadowsDirty")
	OpHighlight         = OpType("highlight")
)

// Op is one journaled scene change.
type Op struct {
	Type      OpType             `json:"type"`
	Handle    Handle             `json:"handle,omitempty"`
	Box       *BoxSpec           `json:"box,omitempty"`
	Field     *world.HeightField `json:"field,omitempty"`
	BaseY     float32            `json:"baseY,omitempty"`
	Heights   []byte             `json:"heights,omitempty"` // Heights are compressed by the transport.
	Radius    float32            `json:"radius,omitempty"`
	Index     int                `json:"index,omitempty"`
	Transform *mgl32.Mat4        `json:"transform,omitempty"`
	Count     int                `json:"count,omitempty"`
}

type object struct {
	spec  BoxSpec
	field *world.HeightField // nil for boxes
	baseY float32
}

type batch struct {
	radius     float32
	transforms []mgl32.Mat4
	visible    int
}

// Scene is a headless Renderer. It keeps enough geometry to answer ray queries and
// journals every change so a remote renderer can replay it.
// It is not safe for concurrent use.
type Scene struct {
	objects     map[Handle]*object
	batches     map[Handle]*batch
	next        Handle
	highlighted Handle
	journal     []Op
}

func New() *Scene {
	return &Scene{
		objects: make(map[Handle]*object),
		batches: make(map[Handle]*batch),
	}
}

func (scene *Scene) allocate() Handle {
	scene.next++
	return scene.next
}

func (scene *Scene) record(op Op) {
	scene.journal = append(scene.journal, op)
}

// Flush returns and clears the journal.
func (scene *Scene) Flush() []Op {
	ops := scene.journal
	scene.journal = nil
	return ops
}

// Replay returns ops that recreate the current scene from nothing.
func (scene *Scene) Replay() []Op {
	ops := make([]Op, 0, len(scene.objects)+len(scene.batches))
	for h := Handle(1); h <= scene.next; h++ {
		if obj, ok := scene.objects[h]; ok {
			ops = append(ops, obj.create(h))
		} else if b, ok := scene.batches[h]; ok {
			ops = append(ops, Op{Type: OpCreateBatch, Handle: h, Radius: b.radius})
			for i, t := range b.transforms[:b.visible] {
				transform := t
				ops = append(ops, Op{Type: OpCommitInstance, Handle: h, Index: i, Transform: &transform})
			}
			ops = append(ops, Op{Type: OpVisibleCount, Handle: h, Count: b.visible})
		}
	}
	if scene.highlighted != 0 {
		ops = append(ops, Op{Type: OpHighlight, Handle: scene.highlighted})
	}
	return ops
}

func (obj *object) create(h Handle) Op {
	if obj.field != nil {
		return Op{Type: OpCreateHeightField, Handle: h, Field: obj.field, BaseY: obj.baseY}
	}
	spec := obj.spec
	return Op{Type: OpCreateBox, Handle: h, Box: &spec}
}

func (scene *Scene) RayIntersect(ray world.Ray, candidates []Handle) (Hit, bool) {
	var best Hit
	found := false

	for _, h := range candidates {
		obj, ok := scene.objects[h]
		if !ok {
			continue
		}

		var t float32
		if obj.field != nil {
			t, ok = obj.field.Intersect(ray, obj.baseY)
		} else {
			t, ok = obj.spec.Box.Intersect(ray)
		}

		if ok && (!found || t < best.Distance) {
			best = Hit{Point: ray.At(t), Distance: t, Handle: h}
			found = true
		}
	}

	return best, found
}

func (scene *Scene) CreateBox(spec BoxSpec) Handle {
	h := scene.allocate()
	obj := &object{spec: spec}
	scene.objects[h] = obj
	scene.record(obj.create(h))
	return h
}

func (scene *Scene) CreateHeightField(field *world.HeightField, baseY float32) Handle {
	h := scene.allocate()
	obj := &object{spec: BoxSpec{Kind: KindTerrain, Opacity: 1, CastShadow: true}, field: field, baseY: baseY}
	scene.objects[h] = obj
	scene.record(obj.create(h))
	return h
}

// Destroy is a no-op for unknown handles.
func (scene *Scene) Destroy(h Handle) {
	_, isObject := scene.objects[h]
	_, isBatch := scene.batches[h]
	if !isObject && !isBatch {
		return
	}
	delete(scene.objects, h)
	delete(scene.batches, h)
	if scene.highlighted == h {
		scene.highlighted = 0
	}
	scene.record(Op{Type: OpDestroy, Handle: h})
}

func (scene *Scene) CreateInstanceBatch(radius float32) Handle {
	h := scene.allocate()
	scene.batches[h] = &batch{radius: radius}
	scene.record(Op{Type: OpCreateBatch, Handle: h, Radius: radius})
	return h
}

func (scene *Scene) CommitInstance(h Handle, index int, transform mgl32.Mat4) {
	b, ok := scene.batches[h]
	if !ok || index < 0 {
		return
	}
	for len(b.transforms) <= index {
		b.transforms = append(b.transforms, mgl32.Ident4())
	}
	b.transforms[index] = transform
	scene.record(Op{Type: OpCommitInstance, Handle: h, Index: index, Transform: &transform})
}

func (scene *Scene) SetVisibleCount(h Handle, count int) {
	b, ok := scene.batches[h]
	if !ok {
		return
	}
	b.visible = world.ClampInt(count, 0, len(b.transforms))
	scene.record(Op{Type: OpVisibleCount, Handle: h, Count: b.visible})
}

func (scene *Scene) MarkShadowsDirty() {
	scene.record(Op{Type: OpShadowsDirty})
}

func (scene *Scene) Highlight(h Handle) {
	if h == scene.highlighted {
		return
	}
	if _, ok := scene.objects[h]; !ok {
		h = 0
	}
	scene.highlighted = h
	scene.record(Op{Type: OpHighlight, Handle: h})
}

// Highlighted returns the currently highlighted object, or zero.
func (scene *Scene) Highlighted() Handle {
	return scene.highlighted
}

// Count returns the number of live objects of a kind.
func (scene *Scene) Count(kind Kind) (n int) {
	for _, obj := range scene.objects {
		if obj.spec.Kind == kind {
			n++
		}
	}
	return
}

// Box returns the box spec of a live box.
func (scene *Scene) Box(h Handle) (BoxSpec, bool) {
	obj, ok := scene.objects[h]
	if !ok || obj.field != nil {
		return BoxSpec{}, false
	}
	return obj.spec, true
}

// VisibleCount returns the visible count of an instance batch.
func (scene *Scene) VisibleCount(h Handle) int {
	if b, ok := scene.batches[h]; ok {
		return b.visible
	}
	return 0
}
