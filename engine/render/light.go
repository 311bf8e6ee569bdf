package render

import "github.com/go-gl/mathgl/mgl32"

// LightKind distinguishes the light types a scene can hold.
type LightKind int

const (
	LightAmbient LightKind = iota
	LightDirectional
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	default:
		return "unknown"
	}
}

// Light is an ambient or directional light. Position is only meaningful for directional lights,
// which shine from Position towards the origin.
type Light struct {
	Kind      LightKind
	Color     uint32
	Intensity float64
	Position  mgl32.Vec3
}

// AmbientLight returns an ambient light of the given 0xRRGGBB colour and intensity.
func AmbientLight(color uint32, intensity float64) Light {
	return Light{Kind: LightAmbient, Color: color, Intensity: intensity}
}

// DirectionalLight returns a directional light at (x, y, z) aimed at the origin.
func DirectionalLight(color uint32, intensity float64, x, y, z float32) Light {
	return Light{Kind: LightDirectional, Color: color, Intensity: intensity, Position: mgl32.Vec3{x, y, z}}
}

// RGB returns the colour as linear [0, 1] components, not yet scaled by intensity.
func (l Light) RGB() mgl32.Vec3 {
	return mgl32.Vec3{
		float32((l.Color>>16)&0xff) / 255,
		float32((l.Color>>8)&0xff) / 255,
		float32(l.Color&0xff) / 255,
	}
}

// Radiance returns the colour scaled by intensity.
func (l Light) Radiance() mgl32.Vec3 {
	return l.RGB().Mul(float32(l.Intensity))
}

// Direction returns the unit vector the light travels along. Zero for ambient lights.
func (l Light) Direction() mgl32.Vec3 {
	if l.Kind != LightDirectional || l.Position.Len() == 0 {
		return mgl32.Vec3{}
	}
	return l.Position.Mul(-1).Normalize()
}
