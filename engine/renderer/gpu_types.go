package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-globe/common"
	"github.com/Carmen-Shannon/oxy-globe/engine/render"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereShaderSource is the WGSL source of the textured, lit sphere pipeline.
// Group 0 holds the per-frame camera and light uniforms, group 1 the per-object model
// uniform, albedo texture and sampler.
//
//go:embed assets/sphere.wgsl
var SphereShaderSource string

const (
	frameGroup  = 0
	objectGroup = 1

	cameraBinding  = 0
	lightsBinding  = 1
	modelBinding   = 0
	textureBinding = 1
	samplerBinding = 2

	sphereVertexStrideBytes = common.SphereVertexStride * 4

	cameraUniformSize = 80
	lightUniformSize  = 48
	modelUniformSize  = 64
)

// uniformSlot is a uniform buffer binding and its size in bytes.
type uniformSlot struct {
	binding int
	size    uint64
}

// GPULightUniform is the GPU-aligned representation of the LightUniform struct in the sphere
// shader (48 bytes). Colours are pre-multiplied by intensity; W components are unused.
type GPULightUniform struct {
	Ambient          [4]float32 // offset  0
	DirectionalColor [4]float32 // offset 16
	DirectionalDir   [4]float32 // offset 32: direction the light travels, unit length
}

// NewGPULightUniform folds a scene's lights into the single ambient and directional term the
// shader supports. Ambient lights add up; directional colours add up and their directions are
// averaged, weighted by intensity.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULightUniform: the uniform ready to Marshal
func NewGPULightUniform(lights []render.Light) GPULightUniform {
	var ambient, dirColor, dir mgl32.Vec3
	for _, l := range lights {
		switch l.Kind {
		case render.LightAmbient:
			ambient = ambient.Add(l.Radiance())
		case render.LightDirectional:
			dirColor = dirColor.Add(l.Radiance())
			dir = dir.Add(l.Direction().Mul(float32(l.Intensity)))
		}
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return GPULightUniform{
		Ambient:          [4]float32{ambient[0], ambient[1], ambient[2], 1},
		DirectionalColor: [4]float32{dirColor[0], dirColor[1], dirColor[2], 1},
		DirectionalDir:   [4]float32{dir[0], dir[1], dir[2], 0},
	}
}

// Size returns the size of the GPULightUniform struct in bytes.
func (g *GPULightUniform) Size() int {
	return lightUniformSize
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
func (g *GPULightUniform) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	for _, v := range [][4]float32{g.Ambient, g.DirectionalColor, g.DirectionalDir} {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// GPUModelUniform is the GPU-aligned representation of the ModelUniform struct (64 bytes).
type GPUModelUniform struct {
	Model [16]float32
}

// NewGPUModelUniform builds the model matrix for an object at the origin with the given
// pitch and yaw.
func NewGPUModelUniform(rotX, rotY float64) GPUModelUniform {
	var u GPUModelUniform
	common.BuildModelMatrix(u.Model[:], rotX, rotY)
	return u
}

// Size returns the size of the GPUModelUniform struct in bytes.
func (g *GPUModelUniform) Size() int {
	return modelUniformSize
}

// Marshal serializes the uniform into a byte buffer suitable for GPU upload.
func (g *GPUModelUniform) Marshal() []byte {
	return common.SliceToBytes(g.Model[:])
}

// whiteTexture is the 1x1 placeholder bound until a sphere's texture arrives.
func whiteTexture() common.TextureStagingData {
	return common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}
}
