// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/terrain/noise"
	"github.com/SoftbearStudios/sculpt/server/world"
	"sync/atomic"
	"time"
)

// Mode is which representation a Surface has.
type Mode uint8

const (
	Flat Mode = iota
	Generated
)

func (mode Mode) String() string {
	if mode == Generated {
		return "generated"
	}
	return "flat"
}

// Generation is the outcome of one generation run.
type Generation struct {
	Field   *world.HeightField
	Elapsed time.Duration
	Err     error // wraps ErrGenerationFailed
}

// Surface is the terraformable ground. It starts as a flat platform and may be replaced
// any number of times by generated terrain, but never goes back to flat.
//
// All methods except Generating must be called from the same goroutine.
type Surface struct {
	renderer scene.Renderer
	mode     Mode
	field    *world.HeightField // nil when Flat
	handle   scene.Handle

	// Params is the template for generation, Hilliness is overwritten per call.
	Params  noise.Params
	Workers int

	newSource  func(noise.Params) (Source, error)
	generating atomic.Bool
	results    chan Generation
}

// NewSurface creates a flat platform in renderer.
func NewSurface(renderer scene.Renderer) *Surface {
	s := &Surface{
		renderer:  renderer,
		Params:    noise.DefaultParams(),
		newSource: newNoiseSource,
		results:   make(chan Generation, 1),
	}
	s.handle = renderer.CreateBox(scene.BoxSpec{
		Box:        platformBox(),
		Kind:       scene.KindPlatform,
		Opacity:    1,
		CastShadow: false,
	})
	return s
}

func newNoiseSource(params noise.Params) (Source, error) {
	return noise.New(params)
}

func platformBox() world.Box {
	return world.Box{
		Center: world.Vec3(0, PlatformTop-PlatformThickness*0.5, 0),
		Size:   world.Vec3(PlatformSize, PlatformThickness, PlatformSize),
	}
}

func (s *Surface) Mode() Mode {
	return s.mode
}

// Handle is the renderer handle of the live representation.
func (s *Surface) Handle() scene.Handle {
	return s.handle
}

// Field returns the generated height field, or nil if flat.
func (s *Surface) Field() *world.HeightField {
	return s.field
}

// Generating is true from a successful Generate until its result is installed by Poll or Wait.
// Unlike other methods, it may be called from any goroutine.
func (s *Surface) Generating() bool {
	return s.generating.Load()
}

// HeightAt returns the ground height at (x, z). ok is false off the surface.
func (s *Surface) HeightAt(x, z float32) (float32, bool) {
	if s.mode == Generated {
		return s.field.HeightAt(x, z)
	}
	if (world.AABB{Vec2f: world.Vec2f{X: -PlatformSize / 2, Y: -PlatformSize / 2}, Width: PlatformSize, Height: PlatformSize}).ContainsPoint(world.Vec2f{X: x, Y: z}) {
		return PlatformTop, true
	}
	return 0, false
}

// Generate starts generating terrain in the background. The result is installed by Poll.
// Hilliness must be in [noise.MinHilliness, noise.MaxHilliness].
func (s *Surface) Generate(hilliness, size float32, resolution int) error {
	params := s.Params
	params.Hilliness = hilliness
	if err := params.Validate(); err != nil {
		return err
	}
	if !(size > 0 && size <= MaxSize) || resolution < 2 || resolution > MaxResolution {
		return fmt.Errorf("%w: size %v resolution %d", ErrInvalidParameter, size, resolution)
	}

	if !s.generating.CompareAndSwap(false, true) {
		return ErrGenerationInProgress
	}

	go s.generate(params, size, resolution)
	return nil
}

func (s *Surface) generate(params noise.Params, size float32, resolution int) {
	start := time.Now()
	var gen Generation

	defer func() {
		if r := recover(); r != nil {
			gen = Generation{Err: fmt.Errorf("%w: panic: %v", ErrGenerationFailed, r)}
		}
		gen.Elapsed = time.Since(start)
		s.results <- gen
	}()

	source, err := s.newSource(params)
	if err != nil {
		gen.Err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		return
	}

	field, err := Synthesize(source, size, resolution, s.Workers)
	if err != nil {
		gen.Err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		return
	}
	gen.Field = field
}

// Poll installs a finished generation, if any. ok is true if a generation finished,
// whether or not it succeeded.
func (s *Surface) Poll() (gen Generation, ok bool) {
	select {
	case gen = <-s.results:
		s.install(gen)
		return gen, true
	default:
		return Generation{}, false
	}
}

// Wait blocks until the running generation finishes and installs it.
// It returns immediately if nothing is generating.
func (s *Surface) Wait() Generation {
	if !s.Generating() {
		return Generation{}
	}
	gen := <-s.results
	s.install(gen)
	return gen
}

func (s *Surface) install(gen Generation) {
	defer s.generating.Store(false)

	if gen.Err != nil || gen.Field == nil {
		return
	}

	s.renderer.Destroy(s.handle)
	s.handle = 0
	s.field = gen.Field
	s.mode = Generated
	s.handle = s.renderer.CreateHeightField(gen.Field, BaseLevel)
	s.renderer.MarkShadowsDirty()
}

// Close destroys the live representation. It waits for a running generation.
func (s *Surface) Close() {
	s.Wait()
	s.renderer.Destroy(s.handle)
	s.handle = 0
}
