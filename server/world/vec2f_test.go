// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"github.com/chewxy/math32"
	"math/rand"
	"testing"
)

func BenchmarkVec2f_Distance(b *testing.B) {
	const count = 1024
	vectors := make([]Vec2f, count)
	for i := range vectors {
		vectors[i] = Vec2f{X: rand.Float32()*100 - 50, Y: rand.Float32()*100 - 50}
	}
	b.ResetTimer()

	var acc float32
	for i := 0; i < b.N; i++ {
		acc += vectors[i&(count-1)].Distance(vectors[(i+1)&(count-1)])
	}
	_ = acc
}

func approx(a, b float32) bool {
	return math32.Abs(a-b) < 0.02
}

func TestAABBFromCorners(t *testing.T) {
	tests := []struct {
		a, b   Vec2f
		center Vec2f
		width  float32
		height float32
	}{
		{Vec2f{0, 0}, Vec2f{4, 3}, Vec2f{2, 1.5}, 4, 3},
		{Vec2f{4, 3}, Vec2f{0, 0}, Vec2f{2, 1.5}, 4, 3},
		{Vec2f{-1, 2}, Vec2f{1, -2}, Vec2f{0, 0}, 2, 4},
		{Vec2f{5, 5}, Vec2f{5, 5}, Vec2f{5, 5}, 0, 0},
	}

	for _, test := range tests {
		aabb := AABBFromCorners(test.a, test.b)
		if aabb.Width != test.width || aabb.Height != test.height {
			t.Errorf("expected %v-%v size %vx%v, got %vx%v", test.a, test.b, test.width, test.height, aabb.Width, aabb.Height)
		}
		if c := aabb.Center(); !approx(c.X, test.center.X) || !approx(c.Y, test.center.Y) {
			t.Errorf("expected %v-%v center %v, got %v", test.a, test.b, test.center, c)
		}
	}
}

func TestMapRanges(t *testing.T) {
	tests := []struct {
		in, out float32
	}{
		{-1, 0.2},
		{1, 6},
		{0, 3.1},
		{-5, 0.2},
		{5, 6},
	}

	for _, test := range tests {
		if got := MapRanges(test.in, -1, 1, 0.2, 6, true); !approx(got, test.out) {
			t.Errorf("expected MapRanges(%v) = %v, got %v", test.in, test.out, got)
		}
	}
}

func TestVec2f_Clamp(t *testing.T) {
	tests := []struct {
		in, out Vec2f
	}{
		{Vec2f{X: 0.5, Y: -0.5}, Vec2f{X: 0.5, Y: -0.5}},
		{Vec2f{X: 3, Y: -7}, Vec2f{X: 1, Y: -1}},
		{Vec2f{X: math32.NaN(), Y: math32.Inf(1)}, Vec2f{X: 0, Y: 1}},
	}

	for _, test := range tests {
		if got := test.in.Clamp(); got != test.out {
			t.Errorf("expected %v.Clamp() = %v, got %v", test.in, test.out, got)
		}
	}
}
