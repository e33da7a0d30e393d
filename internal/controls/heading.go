package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// HeadingState is the player's walking state. ForwardSpeedX/Z always hold
// cos/sin of DirectionAngle once Sync has run after an angle change.
type HeadingState struct {
	ForwardSpeedX  float32
	ForwardSpeedZ  float32
	DirectionAngle float32 // radians, never normalised
	TurnRate       float32 // radians per input
	MoveSpeed      float32 // units per input
	TargetRadius   float32
}

// NewHeadingState returns a synced heading facing angle.
func NewHeadingState(angle, turnRate, moveSpeed, targetRadius float32) HeadingState {
	h := HeadingState{
		DirectionAngle: angle,
		TurnRate:       turnRate,
		MoveSpeed:      moveSpeed,
		TargetRadius:   targetRadius,
	}
	h.Sync()
	return h
}

// Sync recomputes the forward components from the direction angle.
func (h *HeadingState) Sync() {
	h.ForwardSpeedX = float32(math.Cos(float64(h.DirectionAngle)))
	h.ForwardSpeedZ = float32(math.Sin(float64(h.DirectionAngle)))
}

// Step returns the (x, z) displacement of one move input; sign is +1 for
// forward and -1 for backward.
func (h *HeadingState) Step(sign float32) (dx, dz float32) {
	return sign * h.MoveSpeed * h.ForwardSpeedX, sign * h.MoveSpeed * h.ForwardSpeedZ
}

// Target is the look-at point in the ground plane, derived from the heading
// alone.
func (h *HeadingState) Target() mgl32.Vec2 {
	return mgl32.Vec2{h.TargetRadius * h.ForwardSpeedX, h.TargetRadius * h.ForwardSpeedZ}
}
