// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

// Heights of the platform and bands used for coloring.
const (
	PlatformSize      = 20
	PlatformThickness = 1
	PlatformTop       = 0
	// BaseLevel is the bottom of the platform, which generated terrain rests on.
	BaseLevel = PlatformTop - PlatformThickness

	SandLevel  = BaseLevel + 0.5
	GrassLevel = PlatformTop + 1.5
	RockLevel  = GrassLevel + 1.5
	SnowLevel  = RockLevel + 2
)
