// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tool

import (
	"github.com/SoftbearStudios/sculpt/server/level"
	"github.com/SoftbearStudios/sculpt/server/scene"
	"github.com/SoftbearStudios/sculpt/server/world"
)

// Status is a snapshot of a Controller for display.
type Status struct {
	Tool       Tool          `json:"tool"`
	Wizard     string        `json:"wizard"`
	Surface    string        `json:"surface"`
	Generating bool          `json:"generating"`
	Hilliness  float32       `json:"hilliness"`
	Blobs      int           `json:"blobs"`
	Blocks     int           `json:"blocks"`
	Selected   level.ID      `json:"selected,omitempty"`
	TimeScale  float32       `json:"timeScale"`
	TimeOfDay  float32       `json:"timeOfDay"`
	Frame      world.Ticks   `json:"frame"`
	Camera     *scene.Camera `json:"camera"`
}

func (c *Controller) Status() Status {
	status := Status{
		Tool:       c.tool,
		Wizard:     c.wizard.State().String(),
		Surface:    c.surface.Mode().String(),
		Generating: c.surface.Generating(),
		Hilliness:  c.options.Params.Hilliness,
		Blobs:      c.blobs.Count(),
		Blocks:     len(c.blocks),
		TimeScale:  c.timeScale,
		TimeOfDay:  c.timeOfDay,
		Frame:      c.frame,
	}
	camera := *c.camera
	status.Camera = &camera
	if c.selected != nil {
		status.Selected = c.selected.ID
	}
	return status
}
