package scene

import (
	"DarkForest/internal/logger"
	"DarkForest/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ModelSink receives built models. The OpenGL renderer is one.
type ModelSink interface {
	AddModel(model *renderer.Model)
}

// World holds the models built from a layout.
type World struct {
	Ball   *renderer.Model
	Cube   *renderer.Model
	Ground *renderer.Model
	Boxes  []*renderer.Model

	Horizon mgl32.Vec3
	Zenith  mgl32.Vec3
}

// Models returns every model in the world, ground first.
func (w *World) Models() []*renderer.Model {
	models := make([]*renderer.Model, 0, 3+len(w.Boxes))
	models = append(models, w.Ground, w.Cube, w.Ball)
	return append(models, w.Boxes...)
}

// Build creates the ground, ball, cube and scattered boxes of layout and
// hands each to sink. spawn is the player's start on x and z; the scatter
// keeps a clearing around it.
func Build(layout *Layout, seed int64, spawn mgl32.Vec2, sink ModelSink) (*World, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	world := &World{
		Horizon: vec3(layout.Sky.Horizon),
		Zenith:  vec3(layout.Sky.Zenith),
	}

	g := layout.Ground
	world.Ground = renderer.NewPlane(g.XLen, g.ZLen, g.NX, g.NZ)
	world.Ground.SetDiffuseColor(g.Color[0], g.Color[1], g.Color[2])

	b := layout.Ball
	world.Ball = renderer.NewSphere(b.Lat, b.Long, b.Radius)
	world.Ball.SetPosition(b.Position[0], b.Position[1], b.Position[2])
	world.Ball.SetDiffuseColor(b.Color[0], b.Color[1], b.Color[2])

	c := layout.Cube
	world.Cube = renderer.NewCube(c.Size)
	world.Cube.SetPosition(c.Position[0], c.Position[1], c.Position[2])
	world.Cube.SetDiffuseColor(c.Color[0], c.Color[1], c.Color[2])

	keepout := []Circle{
		{X: b.Position[0], Z: b.Position[2], Radius: b.Radius},
		{X: c.Position[0], Z: c.Position[2], Radius: c.Size * sqrt2 / 2},
	}
	f := layout.Forest
	for _, p := range Scatter(f, g, seed, spawn, keepout...) {
		box := renderer.NewCube(1)
		box.SetScale(p.Size, p.Size, p.Size)
		box.SetPosition(p.X, p.Size/2, p.Z)
		box.SetDiffuseColor(f.Color[0], f.Color[1], f.Color[2])
		world.Boxes = append(world.Boxes, box)
	}

	for _, m := range world.Models() {
		sink.AddModel(m)
	}

	logger.Log.Info("Scene built",
		zap.Int("boxes", len(world.Boxes)),
		zap.Int64("seed", seed))
	return world, nil
}

const sqrt2 float32 = 1.4142135
