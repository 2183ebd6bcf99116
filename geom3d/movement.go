// seehuhn.de/go/render3d - a software 3D rendering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package geom3d

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Forever marks a Movement without time limit.
const Forever time.Duration = -1

// Movement is a constant speed which applies for a limited time.
type Movement struct {
	Speed     float64       // distance per second
	Remaining time.Duration // time left, or Forever
}

// Set starts a new movement.
func (m *Movement) Set(speed float64, d time.Duration) {
	m.Speed = speed
	m.Remaining = d
}

// Distance returns the distance covered in the given time and uses up the
// corresponding part of the remaining time.
func (m *Movement) Distance(elapsed time.Duration) float64 {
	if m.Remaining == 0 {
		return 0
	}
	if m.Remaining != Forever {
		elapsed = min(elapsed, m.Remaining)
		m.Remaining -= elapsed
	}
	return m.Speed * elapsed.Seconds()
}

// Stopped reports whether the movement has ended.
func (m *Movement) Stopped() bool {
	return m.Speed == 0 || m.Remaining == 0
}

// MovingTransform is a Transform with a linear velocity and angular
// velocities about the three axes.
//
// A MovingTransform is not safe for concurrent use.
type MovingTransform struct {
	Transform

	velocity mgl64.Vec3
	move     Movement
	turnX    Movement
	turnY    Movement
	turnZ    Movement
}

// NewMovingTransform returns a MovingTransform at rest at the given
// placement.
func NewMovingTransform(t Transform) *MovingTransform {
	return &MovingTransform{Transform: t}
}

// Update advances position and rotation by the elapsed time.
func (t *MovingTransform) Update(elapsed time.Duration) {
	if delta := t.move.Distance(elapsed); delta != 0 {
		t.Location = t.Location.Add(t.velocity.Mul(delta))
	}
	t.RotateAngle(
		t.turnX.Distance(elapsed),
		t.turnY.Distance(elapsed),
		t.turnZ.Distance(elapsed),
	)
}

// Stop ends all movement and rotation.
func (t *MovingTransform) Stop() {
	t.velocity = mgl64.Vec3{}
	t.move.Set(0, 0)
	t.turnX.Set(0, 0)
	t.turnY.Set(0, 0)
	t.turnZ.Set(0, 0)
}

// MoveTo starts a straight movement to dest at the given speed.
func (t *MovingTransform) MoveTo(dest mgl64.Vec3, speed float64) {
	diff := dest.Sub(t.Location)
	dist := diff.Len()
	if dist == 0 || speed <= 0 {
		t.SetVelocity(mgl64.Vec3{}, 0)
		return
	}
	t.SetVelocity(diff.Mul(speed/dist), seconds(dist/speed))
}

// IsMoving reports whether the transform is currently changing location.
func (t *MovingTransform) IsMoving() bool {
	return !t.move.Stopped() && t.velocity != mgl64.Vec3{}
}

// IsMovingIgnoringY reports whether the transform is moving horizontally.
func (t *MovingTransform) IsMovingIgnoringY() bool {
	return !t.move.Stopped() && (t.velocity[0] != 0 || t.velocity[2] != 0)
}

// RemainingMoveTime returns the time until the current movement ends.
// The result is Forever for unlimited movements and 0 if the transform
// is not moving.
func (t *MovingTransform) RemainingMoveTime() time.Duration {
	if !t.IsMoving() {
		return 0
	}
	return t.move.Remaining
}

// Velocity returns the current velocity in units per second.
func (t *MovingTransform) Velocity() mgl64.Vec3 {
	return t.velocity
}

// SetVelocity sets the velocity for the duration d, which may be Forever.
func (t *MovingTransform) SetVelocity(v mgl64.Vec3, d time.Duration) {
	t.velocity = v
	if v == (mgl64.Vec3{}) {
		t.move.Set(0, 0)
	} else {
		t.move.Set(1, d)
	}
}

// AddVelocity adds v to the current velocity.  If the transform is at
// rest, it starts moving with velocity v without time limit.
func (t *MovingTransform) AddVelocity(v mgl64.Vec3) {
	if t.IsMoving() {
		t.velocity = t.velocity.Add(v)
	} else {
		t.SetVelocity(v, Forever)
	}
}

// RotateXTo turns about the x axis towards the target angle, taking the
// shorter way round.
func (t *MovingTransform) RotateXTo(target, speed float64) {
	rotateTo(&t.turnX, t.AngleX, target, speed)
}

// RotateYTo turns about the y axis towards the target angle, taking the
// shorter way round.
func (t *MovingTransform) RotateYTo(target, speed float64) {
	rotateTo(&t.turnY, t.AngleY, target, speed)
}

// RotateZTo turns about the z axis towards the target angle, taking the
// shorter way round.
func (t *MovingTransform) RotateZTo(target, speed float64) {
	rotateTo(&t.turnZ, t.AngleZ, target, speed)
}

// RotateXToward turns about the x axis to face the direction (y, z),
// plus an offset angle.
func (t *MovingTransform) RotateXToward(y, z, offset, speed float64) {
	t.RotateXTo(math.Atan2(-z, y)+offset, speed)
}

// RotateYToward turns about the y axis to face the direction (x, z),
// plus an offset angle.
func (t *MovingTransform) RotateYToward(x, z, offset, speed float64) {
	t.RotateYTo(math.Atan2(-z, x)+offset, speed)
}

// RotateZToward turns about the z axis to face the direction (x, y),
// plus an offset angle.
func (t *MovingTransform) RotateZToward(x, y, offset, speed float64) {
	t.RotateZTo(math.Atan2(y, x)+offset, speed)
}

func rotateTo(m *Movement, start, end, speed float64) {
	speed = math.Abs(speed)
	ccw := normalizeAngle(end - start)
	if speed == 0 || ccw == 0 {
		m.Set(0, 0)
		return
	}

	cw := 2*math.Pi - ccw
	if cw < ccw {
		m.Set(-speed, seconds(cw/speed))
	} else {
		m.Set(speed, seconds(ccw/speed))
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
