package renderer

import (
	"DarkForest/internal/logger"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var _ Render = (*OpenGLRenderer)(nil)

type OpenGLRenderer struct {
	Lighting       Lighting
	Fog            Fog
	Models         []*Model
	FrustumCulling bool

	defaultShader Shader
	skybox        *Skybox // Optional skybox
}

func NewOpenGLRenderer(lighting Lighting, fog Fog, frustumCulling bool) *OpenGLRenderer {
	return &OpenGLRenderer{
		Lighting:       lighting,
		Fog:            fog,
		FrustumCulling: frustumCulling,
	}
}

// Init loads the GL entry points and compiles the scene shader. The GL
// context must be current on the calling thread.
func (rend *OpenGLRenderer) Init(width, height int32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("OpenGL initialization failed: %w", err)
	}
	logger.Log.Info("OpenGL version", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.ClearDepth(1.0)
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Viewport(0, 0, width, height)

	rend.defaultShader = InitShader()
	if err := rend.defaultShader.Compile(); err != nil {
		return fmt.Errorf("scene shader: %w", err)
	}
	logger.Log.Info("OpenGL render initialized")
	return nil
}

func (rend *OpenGLRenderer) AddModel(model *Model) {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(model.InterleavedData)*4, gl.Ptr(model.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(model.Faces)*4, gl.Ptr(model.Faces), gl.STATIC_DRAW)

	stride := int32(vertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	model.VAO = vao
	model.VBO = vbo
	model.EBO = ebo

	model.updateModelMatrix()

	rend.Models = append(rend.Models, model)
}

func (rend *OpenGLRenderer) SetSkybox(skybox *Skybox) {
	rend.skybox = skybox
}

// Render draws the sky and then every visible model from camera's point of
// view. The caller swaps buffers.
func (rend *OpenGLRenderer) Render(camera *Camera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if rend.skybox != nil {
		rend.skybox.Render(camera)
	}

	viewProjection := camera.GetViewProjection()

	var frustum Frustum
	if rend.FrustumCulling {
		frustum = camera.CalculateFrustum()
	}

	shader := &rend.defaultShader
	shader.Use()
	rend.setFrameUniforms(shader, viewProjection, camera)

	for _, model := range rend.Models {
		if model.IsDirty {
			model.updateModelMatrix()
		}
		if rend.FrustumCulling && !frustum.IntersectsSphere(model.BoundingSphereCenter, model.BoundingSphereRadius) {
			continue
		}

		shader.SetMat4("model", model.ModelMatrix)
		material := model.Material
		if material == nil {
			material = DefaultMaterial
		}
		shader.SetVec3("diffuseColor", mgl32.Vec3(material.DiffuseColor))

		gl.BindVertexArray(model.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(model.Faces)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}
	gl.BindVertexArray(0)
}

func (rend *OpenGLRenderer) setFrameUniforms(shader *Shader, viewProjection mgl32.Mat4, camera *Camera) {
	shader.SetMat4("viewProjection", viewProjection)
	shader.SetVec3("viewPos", camera.Position)

	shader.SetVec3("ambientColor", rend.Lighting.Ambient)
	shader.SetVec3("light.direction", rend.Lighting.Direction)
	shader.SetVec3("light.color", rend.Lighting.DirectionalColor)

	shader.SetFloat("fogNear", rend.Fog.Near)
	shader.SetFloat("fogFar", rend.Fog.Far)
	shader.SetVec3("fogColor", rend.Fog.Color)
}

func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	for _, model := range rend.Models {
		deleteModelBuffers(model)
	}
	rend.Models = nil
	if rend.skybox != nil {
		rend.skybox.Cleanup()
		rend.skybox = nil
	}
	rend.defaultShader.Delete()
}

func deleteModelBuffers(model *Model) {
	gl.DeleteVertexArrays(1, &model.VAO)
	gl.DeleteBuffers(1, &model.VBO)
	gl.DeleteBuffers(1, &model.EBO)
	model.VAO, model.VBO, model.EBO = 0, 0, 0
}
