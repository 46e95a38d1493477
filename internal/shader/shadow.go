package shader

import "github.com/ebzr/turntable/pkg/math"

// ShadowCastingUniform is the constant block for the depth-only shadow
// pass: the light's combined local-to-clip transform.
type ShadowCastingUniform struct {
	LocalToClip math.Mat4
}

// ShadowCastingAttribute is one vertex of the shadow pass.
type ShadowCastingAttribute struct {
	Position math.Vec3
}

// ShadowCastingVaryingCount: the shadow pass interpolates nothing.
const ShadowCastingVaryingCount = 0

// ShadowCastingVertex projects a vertex into the light's clip space. The
// pipeline writes depth; there is no fragment stage.
func ShadowCastingVertex(uniform any, attribute any, _ []float32) math.Vec4 {
	u := uniform.(*ShadowCastingUniform)
	a := attribute.(*ShadowCastingAttribute)
	return u.LocalToClip.MulVec4(math.Vec4FromVec3(a.Position, 1))
}
