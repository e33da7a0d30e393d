package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultSkyboxSize float32 = 1.0

// Skybox is a cube around the eye shaded with a vertical gradient. It is
// drawn first, on the far plane, without writing depth.
type Skybox struct {
	VAO     uint32
	VBO     uint32
	Shader  Shader
	Horizon mgl32.Vec3
	Zenith  mgl32.Vec3
}

// skyboxVertices returns the 36 positions of a cube with half extent size.
func skyboxVertices(size float32) []float32 {
	return []float32{
		-size, size, -size,
		-size, -size, -size,
		size, -size, -size,
		size, -size, -size,
		size, size, -size,
		-size, size, -size,

		-size, -size, size,
		-size, -size, -size,
		-size, size, -size,
		-size, size, -size,
		-size, size, size,
		-size, -size, size,

		size, -size, -size,
		size, -size, size,
		size, size, size,
		size, size, size,
		size, size, -size,
		size, -size, -size,

		-size, -size, size,
		-size, size, size,
		size, size, size,
		size, size, size,
		size, -size, size,
		-size, -size, size,

		-size, size, -size,
		size, size, -size,
		size, size, size,
		size, size, size,
		-size, size, size,
		-size, size, -size,

		-size, -size, -size,
		-size, -size, size,
		size, -size, -size,
		size, -size, -size,
		-size, -size, size,
		size, -size, size,
	}
}

// CreateGradientSkybox uploads the sky cube and compiles its shader. It needs
// a current GL context.
func CreateGradientSkybox(horizon, zenith mgl32.Vec3) (*Skybox, error) {
	skybox := &Skybox{Horizon: horizon, Zenith: zenith}

	skybox.Shader = InitSkyboxShader()
	if err := skybox.Shader.Compile(); err != nil {
		return nil, err
	}

	vertices := skyboxVertices(DefaultSkyboxSize)

	gl.GenVertexArrays(1, &skybox.VAO)
	gl.GenBuffers(1, &skybox.VBO)

	gl.BindVertexArray(skybox.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, skybox.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	return skybox, nil
}

func (s *Skybox) Render(camera *Camera) {
	s.Shader.Use()

	// Drop the translation so the sky stays centred on the eye
	view := camera.GetViewMatrix()
	view[12] = 0
	view[13] = 0
	view[14] = 0

	s.Shader.SetMat4("view", view)
	s.Shader.SetMat4("projection", camera.GetProjectionMatrix())
	s.Shader.SetVec3("horizonColor", s.Horizon)
	s.Shader.SetVec3("zenithColor", s.Zenith)

	gl.DepthMask(false)

	gl.BindVertexArray(s.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
}

func (s *Skybox) Cleanup() {
	gl.DeleteVertexArrays(1, &s.VAO)
	gl.DeleteBuffers(1, &s.VBO)
	s.Shader.Delete()
}
