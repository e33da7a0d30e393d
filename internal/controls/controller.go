package controls

import (
	"DarkForest/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Scene is the render collaborator the controller drives. It owns the
// camera pose; the controller is its only writer while active.
type Scene interface {
	CameraPose() (position, target mgl32.Vec3)
	SetCameraPose(position, target mgl32.Vec3)
	RenderFrame()
}

// Controller turns directional key input into camera movement.
type Controller struct {
	heading HeadingState
	keys    KeyMap
	scene   Scene
}

func NewController(heading HeadingState, keys KeyMap, scene Scene) *Controller {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	heading.Sync()
	return &Controller{heading: heading, keys: keys, scene: scene}
}

// Heading returns a copy of the current heading state.
func (c *Controller) Heading() HeadingState {
	return c.heading
}

// SetKeyMap swaps the lookup table. A nil table is ignored.
func (c *Controller) SetKeyMap(keys KeyMap) {
	if keys == nil {
		return
	}
	c.keys = keys
}

// Place puts the camera at position and aims it from the current heading.
// No redraw is triggered.
func (c *Controller) Place(position mgl32.Vec3) {
	c.scene.SetCameraPose(position, c.aim(position))
}

// HandleKeyDown maps code to a direction and applies it. It reports whether
// the code was mapped; unmapped codes change nothing and draw nothing.
func (c *Controller) HandleKeyDown(code KeyCode) bool {
	dir, ok := c.keys.Lookup(code)
	if !ok {
		return false
	}
	c.OnDirectionalInput(dir)
	return true
}

// HandleKeyUp only acknowledges the release.
func (c *Controller) HandleKeyUp(code KeyCode) {
	if dir, ok := c.keys.Lookup(code); ok {
		logger.Log.Debug("Stopped moving", zap.Stringer("direction", dir))
	}
}

// OnDirectionalInput moves or turns once, then commits the pose and redraws.
func (c *Controller) OnDirectionalInput(dir Direction) {
	position, _ := c.scene.CameraPose()

	switch dir {
	case Forward:
		dx, dz := c.heading.Step(1)
		position[0] += dx
		position[2] += dz
	case Backward:
		dx, dz := c.heading.Step(-1)
		position[0] += dx
		position[2] += dz
	case TurnLeft:
		c.heading.DirectionAngle += c.heading.TurnRate
	case TurnRight:
		c.heading.DirectionAngle -= c.heading.TurnRate
	default:
		return
	}

	c.heading.Sync()
	c.scene.SetCameraPose(position, c.aim(position))
	c.scene.RenderFrame()
}

// aim lifts the planar target to eye height.
func (c *Controller) aim(position mgl32.Vec3) mgl32.Vec3 {
	t := c.heading.Target()
	return mgl32.Vec3{t.X(), position.Y(), t.Y()}
}
