// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Deterministic(t *testing.T) {
	for _, basis := range []Basis{BasisValue, BasisPerlin, BasisSimplex} {
		params := DefaultParams()
		params.Basis = basis

		a, err := New(params)
		require.NoError(t, err, basis)
		b, err := New(params)
		require.NoError(t, err, basis)

		for _, p := range [][2]float32{{0, 0}, {-12.5, 3.25}, {24, -24}, {7.77, 19.1}} {
			assert.Equal(t, a.HeightAt(p[0], p[1]), b.HeightAt(p[0], p[1]), "%s %v", basis, p)
		}
	}
}

func TestField_Floor(t *testing.T) {
	for _, hilliness := range []float32{MinHilliness, DefaultHilliness, MaxHilliness} {
		field, err := NewDefault(hilliness)
		require.NoError(t, err)

		floor := field.Floor()
		assert.InDelta(t, -0.8, floor, 1e-6)

		for x := float32(-25); x <= 25; x += 0.7 {
			for z := float32(-25); z <= 25; z += 0.7 {
				if h := field.HeightAt(x, z); h < floor {
					t.Fatalf("hilliness %v: height %v at (%v, %v) below floor %v", hilliness, h, x, z, floor)
				}
			}
		}
	}
}

func TestField_Bounded(t *testing.T) {
	field, err := NewDefault(MaxHilliness)
	require.NoError(t, err)

	params := field.Params()
	var amplitude float32
	for _, band := range params.Bands {
		amplitude += band.Amplitude
	}
	ceiling := params.BaseLevel + amplitude*params.Hilliness*params.ScaleFactor + params.Offset

	for x := float32(-25); x <= 25; x += 1.3 {
		for z := float32(-25); z <= 25; z += 1.3 {
			n := field.NoiseAt(x, z)
			assert.LessOrEqual(t, n, amplitude)
			assert.GreaterOrEqual(t, n, -amplitude)
			assert.LessOrEqual(t, field.HeightAt(x, z), ceiling)
		}
	}
}

func TestField_SeedMatters(t *testing.T) {
	params := DefaultParams()
	a, err := New(params)
	require.NoError(t, err)

	params.Seed++
	b, err := New(params)
	require.NoError(t, err)

	different := false
	for x := float32(0); x < 50; x += 3 {
		if a.NoiseAt(x, x*0.5) != b.NoiseAt(x, x*0.5) {
			different = true
			break
		}
	}
	assert.True(t, different)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"low hilliness", func(p *Params) { p.Hilliness = 0.1 }},
		{"high hilliness", func(p *Params) { p.Hilliness = 5.5 }},
		{"no bands", func(p *Params) { p.Bands = nil }},
		{"zero octaves", func(p *Params) { p.Bands[0].Octaves = 0 }},
		{"basis", func(p *Params) { p.Basis = "worley" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			params := DefaultParams()
			test.modify(&params)
			field, err := New(params)
			assert.Nil(t, field)
			assert.True(t, errors.Is(err, ErrInvalidParameter), err)
		})
	}
}

func TestClampHilliness(t *testing.T) {
	assert.Equal(t, float32(MinHilliness), ClampHilliness(0))
	assert.Equal(t, float32(MaxHilliness), ClampHilliness(10))
	assert.Equal(t, float32(2.5), ClampHilliness(2.5))
	assert.Equal(t, float32(DefaultHilliness), ClampHilliness(math32.NaN()))
	assert.Equal(t, float32(MaxHilliness), ClampHilliness(math32.Inf(1)))
}

func BenchmarkField_HeightAt(b *testing.B) {
	field, err := NewDefault(DefaultHilliness)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		field.HeightAt(float32(i%50), float32(i%37))
	}
}
