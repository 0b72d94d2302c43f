// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tool

// Tool is the active editing tool. At most one is active.
type Tool uint8

const (
	None Tool = iota
	Terraforming
	LandLeveling
)

var toolNames = [...]string{"none", "terraforming", "landLeveling"}

func (tool Tool) String() string {
	if int(tool) < len(toolNames) {
		return toolNames[tool]
	}
	return "unknown"
}

func (tool Tool) MarshalText() ([]byte, error) {
	return []byte(tool.String()), nil
}
