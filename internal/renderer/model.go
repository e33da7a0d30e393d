package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// vertexStride is the number of floats per interleaved vertex: position
// (3), texture coordinate (2), normal (3).
const vertexStride = 8

// DefaultMaterial provides a basic material to fall back on
var DefaultMaterial = &Material{
	Name:         "default",
	DiffuseColor: [3]float32{1.0, 1.0, 1.0},
}

type Model struct {
	// HOT DATA - Accessed every frame in render loop
	ModelMatrix mgl32.Mat4 // Transformation matrix
	Position    mgl32.Vec3 // Position in world space
	Scale       mgl32.Vec3 // Scale factors
	Rotation    mgl32.Quat // Rotation quaternion
	Material    *Material  // Material properties pointer
	VAO         uint32     // Vertex Array Object
	VBO         uint32     // Vertex Buffer Object
	EBO         uint32     // Element Buffer Object
	IsDirty     bool       // Needs recalculation flag

	// MEDIUM DATA - frustum culling
	BoundingSphereCenter mgl32.Vec3
	BoundingSphereRadius float32

	// COLD DATA - Initialization only
	Name            string
	Vertices        []float32 // Vertex position data
	Faces           []int32   // Triangle indices
	InterleavedData []float32 // Combined vertex data
}

type Material struct {
	DiffuseColor [3]float32 // Base color for lighting
	Name         string     // Material name for debugging
}

// SetPosition sets the position of the model
func (m *Model) SetPosition(x, y, z float32) {
	m.Position = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Model) SetScale(x, y, z float32) {
	m.Scale = mgl32.Vec3{x, y, z}
	m.updateModelMatrix()
}

func (m *Model) SetDiffuseColor(r, g, b float32) {
	m.ensureMaterial()
	m.Material.DiffuseColor = [3]float32{r, g, b}
}

// ensureMaterial gives the model its own material instead of the shared default.
func (m *Model) ensureMaterial() {
	if m.Material == nil || m.Material == DefaultMaterial {
		m.Material = &Material{
			Name:         DefaultMaterial.Name,
			DiffuseColor: DefaultMaterial.DiffuseColor,
		}
	}
}

func (m *Model) CalculateBoundingSphere() {
	numVertices := len(m.Vertices) / 3
	if numVertices == 0 {
		m.BoundingSphereCenter = m.Position
		m.BoundingSphereRadius = 0
		return
	}

	var center mgl32.Vec3
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		center = center.Add(ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation))
	}
	center = center.Mul(1.0 / float32(numVertices))

	var maxDistanceSq float32
	for i := 0; i < numVertices; i++ {
		vertex := mgl32.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
		distanceSq := ApplyModelTransformation(vertex, m.Position, m.Scale, m.Rotation).Sub(center).LenSqr()
		if distanceSq > maxDistanceSq {
			maxDistanceSq = distanceSq
		}
	}

	m.BoundingSphereCenter = center
	m.BoundingSphereRadius = float32(math.Sqrt(float64(maxDistanceSq)))
}

func (m *Model) updateModelMatrix() {
	m.calculateModelMatrix()
	m.CalculateBoundingSphere()
	m.IsDirty = false
}

// calculateModelMatrix builds translation * rotation * scale.
func (m *Model) calculateModelMatrix() {
	rotation := m.Rotation
	if rotation == (mgl32.Quat{}) {
		rotation = mgl32.QuatIdent()
	}
	scaleMatrix := mgl32.Scale3D(m.Scale.X(), m.Scale.Y(), m.Scale.Z())
	translationMatrix := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z())
	m.ModelMatrix = translationMatrix.Mul4(rotation.Mat4()).Mul4(scaleMatrix)
}

func ApplyModelTransformation(vertex, position, scale mgl32.Vec3, rotation mgl32.Quat) mgl32.Vec3 {
	if rotation == (mgl32.Quat{}) {
		rotation = mgl32.QuatIdent()
	}
	scaledVertex := mgl32.Vec3{vertex[0] * scale[0], vertex[1] * scale[1], vertex[2] * scale[2]}
	return rotation.Rotate(scaledVertex).Add(position)
}

// newMesh wraps interleaved vertex data in a model at the origin.
func newMesh(name string, interleaved []float32, indices []int32) *Model {
	count := len(interleaved) / vertexStride
	vertices := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		base := i * vertexStride
		vertices = append(vertices, interleaved[base], interleaved[base+1], interleaved[base+2])
	}

	m := &Model{
		Name:            name,
		Position:        mgl32.Vec3{0, 0, 0},
		Rotation:        mgl32.QuatIdent(),
		Scale:           mgl32.Vec3{1, 1, 1},
		Material:        DefaultMaterial,
		Vertices:        vertices,
		Faces:           indices,
		InterleavedData: interleaved,
	}
	m.updateModelMatrix()
	return m
}
