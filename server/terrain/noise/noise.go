// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

import (
	"errors"
	"fmt"
	"github.com/chewxy/math32"
)

const (
	MinHilliness     = 0.5
	MaxHilliness     = 5.0
	DefaultHilliness = 1.5
	DefaultSeed      = int64(56)
)

// ErrInvalidParameter is returned for parameters outside their documented range.
var ErrInvalidParameter = errors.New("invalid noise parameter")

// Band is one fractal layer: Octaves layers of lattice noise starting at Frequency,
// each octave doubling frequency and scaling amplitude by Persistence.
type Band struct {
	Frequency   float32 `yaml:"frequency" json:"frequency"`
	Amplitude   float32 `yaml:"amplitude" json:"amplitude"`
	Octaves     int     `yaml:"octaves" json:"octaves"`
	Persistence float32 `yaml:"persistence" json:"persistence"`
}

// Params fully determine a Field.
type Params struct {
	Seed        int64   `yaml:"seed"`
	Basis       Basis   `yaml:"basis"`
	Bands       []Band  `yaml:"bands"`
	Hilliness   float32 `yaml:"hilliness"`
	ScaleFactor float32 `yaml:"scale_factor"`
	Offset      float32 `yaml:"offset"`
	MinHeight   float32 `yaml:"min_height"` // Minimum plate thickness above BaseLevel.
	BaseLevel   float32 `yaml:"base_level"`
}

// DefaultBands are base shape, medium hills, small bumps and fine detail.
func DefaultBands() []Band {
	return []Band{
		{Frequency: 0.02, Amplitude: 1.0, Octaves: 4, Persistence: 0.5},
		{Frequency: 0.06, Amplitude: 0.5, Octaves: 3, Persistence: 0.5},
		{Frequency: 0.15, Amplitude: 0.25, Octaves: 2, Persistence: 0.5},
		{Frequency: 0.4, Amplitude: 0.1, Octaves: 2, Persistence: 0.5},
	}
}

func DefaultParams() Params {
	return Params{
		Seed:        DefaultSeed,
		Basis:       BasisValue,
		Bands:       DefaultBands(),
		Hilliness:   DefaultHilliness,
		ScaleFactor: 2.0,
		Offset:      0.5,
		MinHeight:   0.2,
		BaseLevel:   -1.0,
	}
}

// ClampHilliness clamps h to [MinHilliness, MaxHilliness]. NaN becomes DefaultHilliness.
func ClampHilliness(h float32) float32 {
	if h != h {
		return DefaultHilliness
	}
	return clamp(h, MinHilliness, MaxHilliness)
}

// Validate reports the first parameter out of range.
func (params Params) Validate() error {
	if params.Hilliness < MinHilliness || params.Hilliness > MaxHilliness || math32.IsNaN(params.Hilliness) {
		return fmt.Errorf("%w: hilliness %v not in [%v, %v]", ErrInvalidParameter, params.Hilliness, MinHilliness, MaxHilliness)
	}
	if len(params.Bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidParameter)
	}
	for i, band := range params.Bands {
		if band.Octaves <= 0 || band.Frequency <= 0 || band.Persistence <= 0 {
			return fmt.Errorf("%w: band %d: %+v", ErrInvalidParameter, i, band)
		}
	}
	if params.MinHeight < 0 {
		return fmt.Errorf("%w: min height %v", ErrInvalidParameter, params.MinHeight)
	}
	return nil
}

// Field generates a height field using fractal lattice noise.
// It is immutable and safe for concurrent use.
type Field struct {
	params  Params
	sources []source // one per band
}

// NewDefault creates a Field with default parameters and the given hilliness.
func NewDefault(hilliness float32) (*Field, error) {
	params := DefaultParams()
	params.Hilliness = hilliness
	return New(params)
}

// New creates a new Field. Parameters are validated, not clamped.
func New(params Params) (*Field, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	field := &Field{
		params:  params,
		sources: make([]source, len(params.Bands)),
	}
	for i := range params.Bands {
		src, err := newSource(params.Basis, params.Seed+int64(i))
		if err != nil {
			return nil, err
		}
		field.sources[i] = src
	}
	return field, nil
}

func (field *Field) Params() Params {
	return field.params
}

// NoiseAt is the amplitude weighted sum of all bands, before hilliness is applied.
// Each band lies in [-1, 1] so the sum is bounded by the sum of band amplitudes.
func (field *Field) NoiseAt(x, z float32) float32 {
	var sum float32
	for i, band := range field.params.Bands {
		sum += fractal(field.sources[i], band, x, z) * band.Amplitude
	}
	return sum
}

// HeightAt implements terrain.Source.
func (field *Field) HeightAt(x, z float32) float32 {
	p := &field.params
	h := field.NoiseAt(x, z)*p.Hilliness*p.ScaleFactor + p.Offset
	return p.BaseLevel + max(p.MinHeight, h)
}

// Floor is the lowest height HeightAt can return.
func (field *Field) Floor() float32 {
	return field.params.BaseLevel + field.params.MinHeight
}

func fractal(src source, band Band, x, z float32) float32 {
	frequency := float64(band.Frequency)
	amplitude := 1.0
	noiseSum := 0.0
	maxAmplitude := 0.0

	for i := 0; i < band.Octaves; i++ {
		noiseSum += src.noise2D(float64(x)*frequency, float64(z)*frequency) * amplitude
		maxAmplitude += amplitude
		amplitude *= float64(band.Persistence)
		frequency *= 2
	}

	if maxAmplitude == 0 {
		return 0
	}
	return float32(noiseSum / maxAmplitude)
}
