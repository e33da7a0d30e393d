package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Lighting is an ambient term plus a single directional light.
type Lighting struct {
	Ambient          mgl32.Vec3
	DirectionalColor mgl32.Vec3
	Direction        mgl32.Vec3 // Direction the light travels, not where it comes from
}

// Fog is linear distance fog measured from the eye.
type Fog struct {
	Near  float32
	Far   float32
	Color mgl32.Vec3
}

type Render interface {
	Init(width, height int32) error
	Render(camera *Camera)
	AddModel(model *Model)
	UpdateViewport(width, height int32)
	Cleanup()
}
