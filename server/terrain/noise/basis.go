// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"fmt"
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
	"math"
)

// Basis selects the lattice noise summed by each octave.
type Basis string

const (
	// BasisValue is smoothly interpolated hashed value noise.
	BasisValue   Basis = "value"
	BasisPerlin  Basis = "perlin"
	BasisSimplex Basis = "simplex"
)

// source returns noise in [-1, 1].
type source interface {
	noise2D(x, y float64) float64
}

func newSource(basis Basis, seed int64) (source, error) {
	switch basis {
	case BasisValue, "":
		return valueSource{seed: seed}, nil
	case BasisPerlin:
		// Single octave, fractal() does the layering.
		return perlinSource{perlin.NewPerlin(2, 2, 1, seed)}, nil
	case BasisSimplex:
		return simplexSource{opensimplex.New(seed)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown basis %q", ErrInvalidParameter, basis)
	}
}

// valueSource has no state besides its seed so lattice values are a pure function of
// (x, y, seed).
type valueSource struct {
	seed int64
}

func (s valueSource) noise2D(x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	x1 := x0 + 1
	y1 := y0 + 1

	sx := smooth(x - float64(x0))
	sy := smooth(y - float64(y0))

	n0 := lattice(x0, y0, s.seed)
	n1 := lattice(x1, y0, s.seed)
	ix0 := lerp(n0, n1, sx)

	n2 := lattice(x0, y1, s.seed)
	n3 := lattice(x1, y1, s.seed)
	ix1 := lerp(n2, n3, sx)

	return lerp(ix0, ix1, sy)*2 - 1
}

type perlinSource struct {
	*perlin.Perlin
}

func (s perlinSource) noise2D(x, y float64) float64 {
	return clamp64(s.Noise2D(x, y), -1, 1)
}

type simplexSource struct {
	opensimplex.Noise
}

func (s simplexSource) noise2D(x, y float64) float64 {
	return s.Eval2(x, y)
}

// lattice returns a value in [0, 1) for an integer lattice point.
func lattice(x, y int, seed int64) float64 {
	return float64(hash3(x, y, int(seed))) / float64(math.MaxUint32+1)
}

func hash3(x, y, z int) uint32 {
	h := uint32(x*374761393 + y*668265263 + z*2147483647)
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}
