package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(704, 480)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	want := float32(704) / float32(480)
	if math.Abs(float64(cam.AspectRatio-want)) > 1e-6 {
		t.Errorf("Expected aspect ratio %f, got %f", want, cam.AspectRatio)
	}

	if cam.Near <= 0 || cam.Far <= cam.Near {
		t.Errorf("Invalid clip planes near=%f far=%f", cam.Near, cam.Far)
	}
}

func TestCameraSetPose(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	cam.SetPose(mgl32.Vec3{0, 3, -7}, mgl32.Vec3{0, 3, 40})
	pos, target := cam.Pose()

	if pos != (mgl32.Vec3{0, 3, -7}) || target != (mgl32.Vec3{0, 3, 40}) {
		t.Errorf("Pose not stored, got %v -> %v", pos, target)
	}
}

func TestCameraFront(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetPose(mgl32.Vec3{0, 3, -7}, mgl32.Vec3{0, 3, 40})

	front := cam.Front()
	if math.Abs(float64(front.Len())-1.0) > 0.001 {
		t.Errorf("Front vector should be normalized, length=%f", front.Len())
	}
	if front.Z() < 0.999 {
		t.Errorf("Expected front along +Z, got %v", front)
	}
}

func TestCameraFrontDegenerateTarget(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetPose(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1})

	if cam.Front() != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("Expected +Z fallback, got %v", cam.Front())
	}

	view := cam.GetViewMatrix()
	for i := 0; i < 16; i++ {
		if math.IsNaN(float64(view[i])) {
			t.Fatal("View matrix should not contain NaN")
		}
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetPose(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0})

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}

	// The target should land straight ahead on the -Z view axis.
	p := view.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if math.Abs(float64(p.X())) > 1e-5 || math.Abs(float64(p.Y())) > 1e-5 || p.Z() > -4.99 {
		t.Errorf("Target should be in front of the camera, got %v", p)
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraSetAspectRatioUpdatesProjection(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	before := cam.Projection

	cam.SetAspectRatio(2.0)

	if cam.Projection == before {
		t.Error("Projection should change with the aspect ratio")
	}
}

func TestFrustumContainsTarget(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.SetPose(mgl32.Vec3{0, 3, -7}, mgl32.Vec3{0, 3, 40})

	frustum := cam.CalculateFrustum()

	if !frustum.IntersectsSphere(mgl32.Vec3{0, 3, 10}, 1) {
		t.Error("A sphere straight ahead should be inside the frustum")
	}
	if frustum.IntersectsSphere(mgl32.Vec3{0, 3, -50}, 1) {
		t.Error("A sphere behind the camera should be culled")
	}
}
