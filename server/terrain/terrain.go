// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"errors"
	"github.com/SoftbearStudios/sculpt/server/terrain/noise"
)

const (
	// GenerateSize is the width and depth of generated terrain in world units.
	GenerateSize = 50
	// GenerateResolution is the number of vertices along each side of generated terrain.
	GenerateResolution = 140

	// MaxSize and MaxResolution bound what Generate accepts.
	MaxSize       = 1000
	MaxResolution = 1024
)

var (
	// ErrInvalidParameter is noise.ErrInvalidParameter, so errors.Is works with either.
	ErrInvalidParameter = noise.ErrInvalidParameter
	// ErrGenerationInProgress is returned when generation is requested while a generation is running.
	ErrGenerationInProgress = errors.New("terrain generation already in progress")
	// ErrGenerationFailed wraps whatever made a generation fail.
	ErrGenerationFailed = errors.New("terrain generation failed")
)

// Source generates heights. It must be safe for concurrent use.
type Source interface {
	HeightAt(x, z float32) float32
}
