package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeScene struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	renders  int
	sets     int
}

func (s *fakeScene) CameraPose() (mgl32.Vec3, mgl32.Vec3) { return s.position, s.target }

func (s *fakeScene) SetCameraPose(position, target mgl32.Vec3) {
	s.position = position
	s.target = target
	s.sets++
}

func (s *fakeScene) RenderFrame() { s.renders++ }

const tolerance = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tolerance
}

func newTestController(angle float32) (*Controller, *fakeScene) {
	scene := &fakeScene{position: mgl32.Vec3{0, 3, -7}}
	c := NewController(NewHeadingState(angle, 0.1, 0.2, 40), DefaultKeyMap(), scene)
	return c, scene
}

func TestForwardFromZeroAngle(t *testing.T) {
	c, scene := newTestController(0)

	c.OnDirectionalInput(Forward)

	if !near(scene.position.X(), 0.2) {
		t.Errorf("Expected x=0.2, got %f", scene.position.X())
	}
	if scene.position.Z() != -7 {
		t.Errorf("Expected z unchanged at -7, got %f", scene.position.Z())
	}
	if scene.position.Y() != 3 {
		t.Errorf("Vertical axis should not change, got %f", scene.position.Y())
	}
	if !near(scene.target.X(), 40) || !near(scene.target.Z(), 0) {
		t.Errorf("Expected target (40, 0), got (%f, %f)", scene.target.X(), scene.target.Z())
	}
	if scene.renders != 1 {
		t.Errorf("Expected one redraw, got %d", scene.renders)
	}
}

func TestBackwardSubtractsStep(t *testing.T) {
	c, scene := newTestController(math.Pi / 2)

	c.OnDirectionalInput(Backward)

	if !near(scene.position.X(), 0) || !near(scene.position.Z(), -7.2) {
		t.Errorf("Expected (0, -7.2), got (%f, %f)", scene.position.X(), scene.position.Z())
	}
}

func TestTurnLeftThenRightRestoresAngle(t *testing.T) {
	for _, angle := range []float32{0, 0.5, -1.3, math.Pi, 12.75, -40} {
		c, _ := newTestController(angle)

		c.OnDirectionalInput(TurnLeft)
		if !near(c.Heading().DirectionAngle, angle+0.1) {
			t.Errorf("angle %f: turn-left should add the turn rate, got %f", angle, c.Heading().DirectionAngle)
		}
		c.OnDirectionalInput(TurnRight)

		if !near(c.Heading().DirectionAngle, angle) {
			t.Errorf("angle %f: expected angle restored, got %f", angle, c.Heading().DirectionAngle)
		}
	}
}

func TestForwardSpeedStaysUnitLength(t *testing.T) {
	c, _ := newTestController(0)
	inputs := []Direction{TurnLeft, Forward, TurnLeft, TurnLeft, Backward, TurnRight, Forward}

	for i := 0; i < 200; i++ {
		c.OnDirectionalInput(inputs[i%len(inputs)])
		h := c.Heading()
		length := h.ForwardSpeedX*h.ForwardSpeedX + h.ForwardSpeedZ*h.ForwardSpeedZ
		if !near(length, 1) {
			t.Fatalf("step %d: forward speed squared length = %f", i, length)
		}
	}
}

func TestForwardThenBackwardReturnsToStart(t *testing.T) {
	c, scene := newTestController(0.7)
	start := scene.position

	for i := 0; i < 25; i++ {
		c.OnDirectionalInput(Forward)
	}
	for i := 0; i < 25; i++ {
		c.OnDirectionalInput(Backward)
	}

	if !near(scene.position.X(), start.X()) || !near(scene.position.Z(), start.Z()) {
		t.Errorf("Expected position back at %v, got %v", start, scene.position)
	}
	if scene.position.Y() != start.Y() {
		t.Errorf("Vertical axis changed: %f", scene.position.Y())
	}
}

func TestTargetTracksHeading(t *testing.T) {
	c, scene := newTestController(math.Pi / 2)
	inputs := []Direction{TurnLeft, Forward, TurnRight, TurnRight, Backward, Forward}

	for i, dir := range inputs {
		c.OnDirectionalInput(dir)
		h := c.Heading()
		if !near(scene.target.X(), h.TargetRadius*h.ForwardSpeedX) || !near(scene.target.Z(), h.TargetRadius*h.ForwardSpeedZ) {
			t.Errorf("step %d: target %v drifted from heading", i, scene.target)
		}
		if scene.target.Y() != scene.position.Y() {
			t.Errorf("step %d: target should sit at eye height", i)
		}
	}
}

func TestUnmappedKeyIsIgnored(t *testing.T) {
	c, scene := newTestController(0.3)
	before := *scene
	heading := c.Heading()

	if c.HandleKeyDown(KeySpace) {
		t.Error("HandleKeyDown should report false for an unmapped key")
	}

	if scene.position != before.position || scene.target != before.target {
		t.Error("Unmapped key should leave the pose unchanged")
	}
	if c.Heading() != heading {
		t.Error("Unmapped key should leave the heading unchanged")
	}
	if scene.renders != 0 || scene.sets != 0 {
		t.Error("Unmapped key should not write the pose or redraw")
	}
}

func TestHandleKeyDownMapsArrowsAndWASD(t *testing.T) {
	c, scene := newTestController(0)

	if !c.HandleKeyDown(KeyUp) {
		t.Fatal("Up arrow should be mapped")
	}
	if !c.HandleKeyDown(KeyW) {
		t.Fatal("W should be mapped")
	}
	if !near(scene.position.X(), 0.4) {
		t.Errorf("Expected two forward steps, got x=%f", scene.position.X())
	}

	c.HandleKeyDown(KeyA)
	if !near(c.Heading().DirectionAngle, 0.1) {
		t.Errorf("A should turn left, angle=%f", c.Heading().DirectionAngle)
	}
}

func TestHandleKeyUpDoesNotMove(t *testing.T) {
	c, scene := newTestController(0)

	c.HandleKeyUp(KeyW)
	c.HandleKeyUp(KeySpace)

	if scene.sets != 0 || scene.renders != 0 {
		t.Error("Key up should neither move nor redraw")
	}
}

func TestPlaceAimsWithoutRedraw(t *testing.T) {
	c, scene := newTestController(math.Pi / 2)

	c.Place(mgl32.Vec3{0, 3, -7})

	if !near(scene.target.X(), 0) || scene.target.Y() != 3 || !near(scene.target.Z(), 40) {
		t.Errorf("Expected initial target (0, 3, 40), got %v", scene.target)
	}
	if scene.renders != 0 {
		t.Error("Place should not redraw")
	}
}

func TestSetKeyMap(t *testing.T) {
	c, scene := newTestController(0)

	c.SetKeyMap(KeyMap{KeySpace: Forward})
	if !c.HandleKeyDown(KeySpace) {
		t.Error("Space should be mapped after SetKeyMap")
	}
	if c.HandleKeyDown(KeyW) {
		t.Error("W should be unmapped after SetKeyMap")
	}

	c.SetKeyMap(nil)
	if !c.HandleKeyDown(KeySpace) {
		t.Error("A nil table should be ignored")
	}
	if scene.renders != 2 {
		t.Errorf("Expected 2 redraws, got %d", scene.renders)
	}
}
