// Package shader provides the shader programs run by the raster pipeline:
// a standard physically-based surface shader and a depth-only shadow
// casting shader.
package shader

import (
	gomath "math"

	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/pkg/math"
)

// StandardUniform is the per-draw-call constant block for the standard
// shader. It is self-contained: the shader reads only this block and the
// per-vertex attributes.
type StandardUniform struct {
	LocalToWorld math.Mat4
	WorldToClip  math.Mat4
	// LocalToWorldDirection transforms directions (tangents) to world space.
	LocalToWorldDirection math.Mat3
	// LocalToWorldNormal transforms normals to world space. With no
	// non-uniform scaling it equals LocalToWorldDirection.
	LocalToWorldNormal math.Mat3
	// WorldToLightUV remaps world positions into shadow-map texture space.
	WorldToLightUV math.Mat4

	CameraPosition math.Vec3
	// LightDirection points toward the light and must be normalized and
	// non-zero; the assembler guarantees this by construction.
	LightDirection   math.Vec3
	Illuminance      math.Vec3
	AmbientLuminance math.Vec3

	ShadowMap *raster.Texture

	BaseColor    math.Vec3
	BaseColorMap *raster.Texture
	NormalMap    *raster.Texture
	Metallic     float32
	MetallicMap  *raster.Texture
	Roughness    float32
	RoughnessMap *raster.Texture
	// Reflectance is the dielectric F0 control; 0.5 is the common default.
	Reflectance float32
}

// StandardAttribute is one vertex of the standard shader.
type StandardAttribute struct {
	Position math.Vec3
	Normal   math.Vec3
	// Tangent w holds the bitangent handedness (+1 or -1).
	Tangent  math.Vec4
	TexCoord math.Vec2
}

// Varying layout of the standard shader.
const (
	varWorldPos   = 0  // 3 floats
	varNormal     = 3  // 3 floats
	varTangent    = 6  // 3 floats
	varHandedness = 9  // 1 float
	varTexCoord   = 10 // 2 floats
	varLightUV    = 12 // 3 floats

	// StandardVaryingCount is the number of varying floats the standard
	// shader interpolates.
	StandardVaryingCount = 15
)

// StandardVertex transforms a vertex to clip space and emits the varyings
// the fragment stage consumes.
func StandardVertex(uniform any, attribute any, out []float32) math.Vec4 {
	u := uniform.(*StandardUniform)
	a := attribute.(*StandardAttribute)

	worldPos := u.LocalToWorld.TransformPoint(a.Position)
	normal := u.LocalToWorldNormal.MulVec3(a.Normal).Normalize()
	tangent := u.LocalToWorldDirection.MulVec3(a.Tangent.Vec3()).Normalize()
	lightUV := u.WorldToLightUV.TransformPoint(worldPos)

	out[varWorldPos] = worldPos.X
	out[varWorldPos+1] = worldPos.Y
	out[varWorldPos+2] = worldPos.Z
	out[varNormal] = normal.X
	out[varNormal+1] = normal.Y
	out[varNormal+2] = normal.Z
	out[varTangent] = tangent.X
	out[varTangent+1] = tangent.Y
	out[varTangent+2] = tangent.Z
	out[varHandedness] = a.Tangent.W
	out[varTexCoord] = a.TexCoord.X
	out[varTexCoord+1] = a.TexCoord.Y
	out[varLightUV] = lightUV.X
	out[varLightUV+1] = lightUV.Y
	out[varLightUV+2] = lightUV.Z

	return u.WorldToClip.MulVec4(math.Vec4FromVec3(worldPos, 1))
}

// StandardFragment shades one fragment: tangent-space normal mapping, a
// metallic/roughness BRDF lit by one directional light, an ambient term,
// and a shadow-map visibility lookup.
func StandardFragment(uniform any, in []float32) math.Vec4 {
	u := uniform.(*StandardUniform)

	worldPos := math.Vec3{X: in[varWorldPos], Y: in[varWorldPos+1], Z: in[varWorldPos+2]}
	uv := math.Vec2{X: in[varTexCoord], Y: in[varTexCoord+1]}

	n := shadedNormal(u, in)
	v := u.CameraPosition.Sub(worldPos).Normalize()
	l := u.LightDirection
	h := v.Add(l).Normalize()

	baseSample := u.BaseColorMap.Sample(uv.X, uv.Y)
	baseColor := u.BaseColor.MulComp(baseSample.Vec3())
	metallic := u.Metallic * u.MetallicMap.Sample(uv.X, uv.Y).X
	roughness := u.Roughness * u.RoughnessMap.Sample(uv.X, uv.Y).X
	if roughness < 0.045 {
		// Perfectly smooth surfaces alias the specular highlight away.
		roughness = 0.045
	}

	noL := maxf(n.Dot(l), 0)
	noV := maxf(n.Dot(v), 1e-4)
	noH := maxf(n.Dot(h), 0)
	loH := maxf(l.Dot(h), 0)

	diffuseColor := baseColor.Scale(1 - metallic)
	dielectricF0 := 0.16 * u.Reflectance * u.Reflectance * (1 - metallic)
	f0 := baseColor.Scale(metallic).Add(math.Vec3{X: dielectricF0, Y: dielectricF0, Z: dielectricF0})

	a := roughness * roughness
	d := distributionGGX(noH, a)
	vis := visibilitySmith(noV, noL, a)
	f := fresnelSchlick(loH, f0)

	specular := f.Scale(d * vis)
	diffuse := diffuseColor.Scale(1 / gomath.Pi)

	radiance := diffuse.Add(specular).
		MulComp(u.Illuminance).
		Scale(noL * shadowVisibility(u, in))
	ambient := baseColor.MulComp(u.AmbientLuminance)

	c := radiance.Add(ambient)
	return math.Vec4{X: c.X, Y: c.Y, Z: c.Z, W: baseSample.W}
}

// shadedNormal applies the tangent-space normal map through the
// interpolated TBN frame.
func shadedNormal(u *StandardUniform, in []float32) math.Vec3 {
	n := math.Vec3{X: in[varNormal], Y: in[varNormal+1], Z: in[varNormal+2]}.Normalize()
	t := math.Vec3{X: in[varTangent], Y: in[varTangent+1], Z: in[varTangent+2]}

	// Re-orthogonalize after interpolation.
	t = t.Sub(n.Scale(n.Dot(t))).Normalize()
	if t == (math.Vec3{}) {
		return n
	}
	b := n.Cross(t).Scale(in[varHandedness])

	s := u.NormalMap.Sample(in[varTexCoord], in[varTexCoord+1])
	ts := math.Vec3{X: s.X*2 - 1, Y: s.Y*2 - 1, Z: s.Z*2 - 1}

	return t.Scale(ts.X).Add(b.Scale(ts.Y)).Add(n.Scale(ts.Z)).Normalize()
}

// shadowVisibility returns 0 for fragments the shadow map marks occluded
// and 1 otherwise. Lookups outside the map count as lit.
func shadowVisibility(u *StandardUniform, in []float32) float32 {
	uvx := in[varLightUV]
	uvy := in[varLightUV+1]
	depth := in[varLightUV+2]
	if uvx < 0 || uvx > 1 || uvy < 0 || uvy > 1 || depth > 1 {
		return 1
	}
	// Constant bias against shadow acne.
	const bias = 0.005
	if depth-bias > u.ShadowMap.Sample(uvx, uvy).X {
		return 0
	}
	return 1
}

// distributionGGX is the GGX normal distribution function.
func distributionGGX(noH, a float32) float32 {
	a2 := a * a
	f := noH*noH*(a2-1) + 1
	return a2 / (gomath.Pi * f * f)
}

// visibilitySmith is the height-correlated Smith visibility term
// (combined with the geometry denominator).
func visibilitySmith(noV, noL, a float32) float32 {
	ggxV := noL * (noV*(1-a) + a)
	ggxL := noV * (noL*(1-a) + a)
	if ggxV+ggxL == 0 {
		return 0
	}
	return 0.5 / (ggxV + ggxL)
}

// fresnelSchlick is the Schlick Fresnel approximation.
func fresnelSchlick(loH float32, f0 math.Vec3) math.Vec3 {
	f := float32(gomath.Pow(float64(1-loH), 5))
	return f0.Add(math.Vec3{X: 1 - f0.X, Y: 1 - f0.Y, Z: 1 - f0.Z}.Scale(f))
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
