// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/alitto/pond/v2"
	"github.com/chewxy/math32"
	"runtime"
)

// Synthesize samples source on a resolution x resolution grid covering a size x size square
// centered on the origin. Rows are sampled in parallel by up to workers goroutines
// (all CPUs if workers <= 0).
func Synthesize(source Source, size float32, resolution, workers int) (*world.HeightField, error) {
	field, err := world.NewHeightField(size, resolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for j := 0; j < resolution; j++ {
		j := j
		group.SubmitErr(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("row %d: panic: %v", j, r)
				}
			}()

			z := field.Coord(j)
			for i := 0; i < resolution; i++ {
				h := source.HeightAt(field.Coord(i), z)
				if math32.IsNaN(h) || math32.IsInf(h, 0) {
					return fmt.Errorf("height %v at (%d, %d)", h, i, j)
				}
				field.Set(i, j, h)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return field, nil
}
