// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package scene

import (
	"github.com/SoftbearStudios/sculpt/server/world"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFov   = 75 // degrees
	DefaultNear  = 0.1
	DefaultFar   = 1000
	DefaultSpeed = 6 // units per second

	// LookSensitivity is radians of rotation per unit of normalized cursor movement.
	LookSensitivity = 2.5
	// MaxPitch keeps the camera from looking exactly straight up or down.
	MaxPitch = math32.Pi/2 - 1e-3
)

// Movement is the set of held movement keys.
type Movement struct {
	Forward, Back, Left, Right, Up, Down bool
}

// Camera is a free flying perspective camera.
// Yaw 0 and pitch 0 look down -Z.
type Camera struct {
	Position world.Vec3f `json:"position"`
	Yaw      float32     `json:"yaw"`
	Pitch    float32     `json:"pitch"`
	Fov      float32     `json:"fov"` // vertical, in degrees
	Aspect   float32     `json:"aspect"`
	Speed    float32     `json:"-"`
}

func NewCamera() *Camera {
	return &Camera{
		Position: world.Vec3(0, 5, 10),
		Fov:      DefaultFov,
		Aspect:   16.0 / 9.0,
		Speed:    DefaultSpeed,
	}
}

// Direction is the unit forward vector.
func (cam *Camera) Direction() world.Vec3f {
	cosPitch := math32.Cos(cam.Pitch)
	return world.Vec3(-math32.Sin(cam.Yaw)*cosPitch, math32.Sin(cam.Pitch), -math32.Cos(cam.Yaw)*cosPitch)
}

// Right is the unit vector to the right of Direction, parallel to the ground.
func (cam *Camera) Right() world.Vec3f {
	return cam.Direction().Cross(world.Vec3(0, 1, 0)).Norm()
}

// Rotate turns the camera, keeping pitch just short of straight up and straight down.
func (cam *Camera) Rotate(yaw, pitch float32) {
	cam.Yaw += yaw
	cam.Pitch = world.Clamp(cam.Pitch+pitch, -MaxPitch, MaxPitch)
}

// Move flies the camera for seconds according to held keys.
func (cam *Camera) Move(movement Movement, seconds float32) {
	distance := cam.Speed * seconds
	dir := cam.Direction()
	right := cam.Right()

	if movement.Forward {
		cam.Position = cam.Position.AddScaled(dir, distance)
	}
	if movement.Back {
		cam.Position = cam.Position.AddScaled(dir, -distance)
	}
	if movement.Right {
		cam.Position = cam.Position.AddScaled(right, distance)
	}
	if movement.Left {
		cam.Position = cam.Position.AddScaled(right, -distance)
	}
	if movement.Up {
		cam.Position.Y += distance
	}
	if movement.Down {
		cam.Position.Y -= distance
	}
}

// View is built from yaw and pitch rotations, so it is defined even when looking straight down.
func (cam *Camera) View() mgl32.Mat4 {
	eye := cam.Position.Mgl()
	return mgl32.HomogRotate3DX(-cam.Pitch).
		Mul4(mgl32.HomogRotate3DY(-cam.Yaw)).
		Mul4(mgl32.Translate3D(-eye[0], -eye[1], -eye[2]))
}

func (cam *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(cam.Fov), cam.Aspect, DefaultNear, DefaultFar)
}

// Ray returns the ray through a point in normalized device coordinates ([-1, 1] on both axes,
// +Y up).
func (cam *Camera) Ray(ndc world.Vec2f) world.Ray {
	inverse := cam.Projection().Mul4(cam.View()).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndc.X, ndc.Y, -1}, inverse)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndc.X, ndc.Y, 1}, inverse)
	return world.NewRay(cam.Position, world.FromMgl(far.Sub(near)))
}
