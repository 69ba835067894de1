// Package scene renders face meshes into an offscreen framebuffer whose
// color texture is displayed by the UI layer.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/mirefield/terrella/internal/engine/mesh"
	"github.com/mirefield/terrella/internal/engine/shader"
)

// Material is the shared presentation state applied to every face.
type Material struct {
	Color     [4]float32
	Wireframe bool
	// Texture is an optional GL texture modulating the base color;
	// zero means untextured.
	Texture uint32
}

// vertex is the interleaved GPU layout: position, normal, texcoord.
type vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// faceBuffer holds the GL objects for one uploaded face mesh.
type faceBuffer struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vNormal = mat3(uModel) * aNormal;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * uModel * vec4(aPosition, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;
in vec2 vTexCoord;

uniform vec4 uBaseColor;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform sampler2D uTexture;
uniform bool uUseTexture;

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    float diff = max(dot(normal, lightDir), 0.0);
    vec4 base = uBaseColor;
    if (uUseTexture) {
        base *= texture(uTexture, vTexCoord);
    }
    vec3 result = (uAmbient + diff * uDiffuse) * base.rgb;
    FragColor = vec4(result, base.a);
}
`

// Viewer owns the offscreen framebuffer, the lit shader and the uploaded
// face geometry. Must be created and used on the thread that owns the GL
// context.
type Viewer struct {
	fbo          uint32
	colorTexture uint32
	depthRBO     uint32
	width        int32
	height       int32

	program       uint32
	locModel      int32
	locView       int32
	locProjection int32
	locBaseColor  int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locTexture    int32
	locUseTexture int32

	buffers []faceBuffer
	fovY    float32
}

// NewViewer creates a viewer with a framebuffer of the given pixel size.
func NewViewer(width, height int32) (*Viewer, error) {
	v := &Viewer{
		width:  width,
		height: height,
		fovY:   mgl32.DegToRad(45),
	}

	if err := v.createFramebuffer(); err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		v.Destroy()
		return nil, fmt.Errorf("shader: %w", err)
	}
	v.program = program
	v.locModel = shader.Uniform(program, "uModel")
	v.locView = shader.Uniform(program, "uView")
	v.locProjection = shader.Uniform(program, "uProjection")
	v.locBaseColor = shader.Uniform(program, "uBaseColor")
	v.locLightDir = shader.Uniform(program, "uLightDir")
	v.locAmbient = shader.Uniform(program, "uAmbient")
	v.locDiffuse = shader.Uniform(program, "uDiffuse")
	v.locTexture = shader.Uniform(program, "uTexture")
	v.locUseTexture = shader.Uniform(program, "uUseTexture")

	return v, nil
}

// Size returns the framebuffer size in pixels.
func (v *Viewer) Size() (int32, int32) { return v.width, v.height }

// Texture returns the color texture the scene is rendered into.
func (v *Viewer) Texture() uint32 { return v.colorTexture }

// Resize recreates the framebuffer attachments at a new pixel size.
// A no-op when the size is unchanged or degenerate.
func (v *Viewer) Resize(width, height int32) error {
	if width <= 0 || height <= 0 || (width == v.width && height == v.height) {
		return nil
	}
	v.destroyFramebuffer()
	v.width = width
	v.height = height
	return v.createFramebuffer()
}

// UploadFaces replaces all face geometry on the GPU. Called once at startup
// and whenever the planet generation counter advances.
func (v *Viewer) UploadFaces(faces []mesh.Face) {
	v.destroyBuffers()
	v.buffers = make([]faceBuffer, 0, len(faces))

	for _, face := range faces {
		if face.VertexCount() == 0 || len(face.Indices) == 0 {
			continue
		}

		vertices := make([]vertex, face.VertexCount())
		for i := range vertices {
			vertices[i] = vertex{
				Position: face.Positions[i],
				Normal:   face.Normals[i],
				TexCoord: face.TexCoords[i],
			}
		}

		var buf faceBuffer
		buf.indexCount = int32(len(face.Indices))

		gl.GenVertexArrays(1, &buf.vao)
		gl.BindVertexArray(buf.vao)

		gl.GenBuffers(1, &buf.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, buf.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(vertex{})), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

		gl.GenBuffers(1, &buf.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(face.Indices)*4, unsafe.Pointer(&face.Indices[0]), gl.STATIC_DRAW)

		stride := int32(unsafe.Sizeof(vertex{}))
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
		gl.EnableVertexAttribArray(2)

		gl.BindVertexArray(0)

		v.buffers = append(v.buffers, buf)
	}
}

// Render draws the uploaded faces with the given view matrix and material,
// returning the color texture ID for display. Surrounding GL state is
// saved and restored so the UI renderer is undisturbed.
func (v *Viewer) Render(view mgl32.Mat4, mat Material) uint32 {
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)
	var prevViewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &prevViewport[0])

	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)
	gl.Viewport(0, 0, v.width, v.height)

	gl.ClearColor(0.10, 0.10, 0.13, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	gl.UseProgram(v.program)

	aspect := float32(v.width) / float32(v.height)
	projection := mgl32.Perspective(v.fovY, aspect, 0.1, 1000.0)
	model := mgl32.Ident4()

	gl.UniformMatrix4fv(v.locProjection, 1, false, &projection[0])
	gl.UniformMatrix4fv(v.locView, 1, false, &view[0])
	gl.UniformMatrix4fv(v.locModel, 1, false, &model[0])

	gl.Uniform4f(v.locBaseColor, mat.Color[0], mat.Color[1], mat.Color[2], mat.Color[3])
	gl.Uniform3f(v.locLightDir, 0.5, 1.0, 0.5)
	gl.Uniform3f(v.locAmbient, 0.45, 0.45, 0.45)
	gl.Uniform3f(v.locDiffuse, 0.65, 0.65, 0.65)

	if mat.Texture != 0 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, mat.Texture)
		gl.Uniform1i(v.locTexture, 0)
		gl.Uniform1i(v.locUseTexture, 1)
	} else {
		gl.Uniform1i(v.locUseTexture, 0)
	}

	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	for _, buf := range v.buffers {
		gl.BindVertexArray(buf.vao)
		gl.DrawElements(gl.TRIANGLES, buf.indexCount, gl.UNSIGNED_INT, nil)
	}
	gl.BindVertexArray(0)

	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))
	gl.Viewport(prevViewport[0], prevViewport[1], prevViewport[2], prevViewport[3])

	return v.colorTexture
}

// ReadPixels returns the framebuffer contents as tightly packed RGBA rows,
// bottom-up as OpenGL delivers them.
func (v *Viewer) ReadPixels() []byte {
	var prevFBO int32
	gl.GetIntegerv(gl.FRAMEBUFFER_BINDING, &prevFBO)

	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)
	pixels := make([]byte, int(v.width)*int(v.height)*4)
	gl.ReadPixels(0, 0, v.width, v.height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(prevFBO))

	return pixels
}

// Destroy releases all GL resources owned by the viewer.
func (v *Viewer) Destroy() {
	v.destroyBuffers()
	v.destroyFramebuffer()
	if v.program != 0 {
		gl.DeleteProgram(v.program)
		v.program = 0
	}
}

func (v *Viewer) createFramebuffer() error {
	gl.GenFramebuffers(1, &v.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, v.fbo)

	gl.GenTextures(1, &v.colorTexture)
	gl.BindTexture(gl.TEXTURE_2D, v.colorTexture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, v.width, v.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, v.colorTexture, 0)

	gl.GenRenderbuffers(1, &v.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, v.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, v.width, v.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, v.depthRBO)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func (v *Viewer) destroyFramebuffer() {
	if v.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &v.depthRBO)
		v.depthRBO = 0
	}
	if v.colorTexture != 0 {
		gl.DeleteTextures(1, &v.colorTexture)
		v.colorTexture = 0
	}
	if v.fbo != 0 {
		gl.DeleteFramebuffers(1, &v.fbo)
		v.fbo = 0
	}
}

func (v *Viewer) destroyBuffers() {
	for i := range v.buffers {
		buf := &v.buffers[i]
		if buf.vao != 0 {
			gl.DeleteVertexArrays(1, &buf.vao)
		}
		if buf.vbo != 0 {
			gl.DeleteBuffers(1, &buf.vbo)
		}
		if buf.ebo != 0 {
			gl.DeleteBuffers(1, &buf.ebo)
		}
	}
	v.buffers = nil
}
