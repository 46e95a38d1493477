package render

import (
	"github.com/ebzr/turntable/internal/scene"
	"github.com/ebzr/turntable/pkg/math"
)

// Near and far clip planes. Scene geometry is authored to fit well
// inside this range.
const (
	nearPlane = 0.1
	farPlane  = 5.0
)

// Extent of the light's orthographic volume when a real shadow pass
// runs, and the distance the virtual light camera sits from the origin.
const (
	shadowExtent   = 1.5
	shadowDistance = 2.0
)

// Transforms are the per-frame matrices, rebuilt from the scene state
// every frame with no cached intermediate.
type Transforms struct {
	LocalToWorld math.Mat4
	WorldToClip  math.Mat4
	// LocalToWorldDirection transforms directions; it doubles as the
	// normal matrix because the model transform has no non-uniform scale.
	LocalToWorldDirection math.Mat3
	// LightWorldToClip is identity when no shadow pass runs, keeping
	// every WorldToLightUV lookup in range.
	LightWorldToClip math.Mat4
	WorldToLightUV   math.Mat4
}

// BuildTransforms derives the frame's matrices from the scene state.
// aspect is output width over height. withShadowPass selects a real
// light projection instead of the identity placeholder.
func BuildTransforms(s *scene.State, aspect float32, withShadowPass bool) Transforms {
	var t Transforms

	t.LocalToWorld = math.RotateY(s.RotationY)
	t.LocalToWorldDirection = t.LocalToWorld.Mat3x3()

	view := math.LookAt(s.CameraPosition, s.CameraTarget, math.Vec3{Y: 1})
	proj := math.Perspective(s.FOV, aspect, nearPlane, farPlane)
	t.WorldToClip = proj.Mul(view)

	t.LightWorldToClip = math.Identity()
	if withShadowPass {
		t.LightWorldToClip = lightWorldToClip(s.LightDirection)
	}
	t.WorldToLightUV = math.ScaleBias(0.5).Mul(t.LightWorldToClip)

	return t
}

// lightWorldToClip builds the directional light's view-projection: an
// orthographic volume looking down the light direction at the origin.
func lightWorldToClip(lightDirection math.Vec3) math.Mat4 {
	eye := lightDirection.Normalize().Scale(shadowDistance)
	up := math.Vec3{Y: 1}
	if absf(lightDirection.X) < 1e-6 && absf(lightDirection.Z) < 1e-6 {
		up = math.Vec3{Z: 1}
	}
	view := math.LookAt(eye, math.Vec3{}, up)
	proj := math.Ortho(-shadowExtent, shadowExtent, -shadowExtent, shadowExtent,
		nearPlane, shadowDistance+shadowExtent)
	return proj.Mul(view)
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
