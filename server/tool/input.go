// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package tool

// Button is a pointer button as numbered by browsers.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)

// Key is a physical key code as reported by browsers.
type Key string

const (
	KeyTerraform = Key("KeyT")
	KeyLevel     = Key("KeyL")
	KeyGenerate  = Key("KeyG")
	KeyClear     = Key("KeyC")

	KeyForward   = Key("KeyW")
	KeyBack      = Key("KeyS")
	KeyLeft      = Key("KeyA")
	KeyRight     = Key("KeyD")
	KeyUp        = Key("Space")
	KeyDown      = Key("ShiftLeft")
	KeyDownRight = Key("ShiftRight")
	KeySpeedUp   = Key("Equal")
	KeySlowDown  = Key("Minus")
)
