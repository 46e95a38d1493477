package render

import (
	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/internal/scene"
	"github.com/ebzr/turntable/internal/shader"
)

// Common dielectric surfaces F0.
const reflectance = 0.5

// assembleUniform packs the frame's matrices, lighting, and material
// handles into the standard shader's constant block. The block is
// self-contained: the shading stage reads nothing else.
func assembleUniform(v *scene.Variant, s *scene.State, model *scene.Model,
	t *Transforms, shadowMap *raster.Texture) shader.StandardUniform {
	return shader.StandardUniform{
		LocalToWorld:          t.LocalToWorld,
		WorldToClip:           t.WorldToClip,
		LocalToWorldDirection: t.LocalToWorldDirection,
		LocalToWorldNormal:    t.LocalToWorldDirection,
		WorldToLightUV:        t.WorldToLightUV,

		CameraPosition:   s.CameraPosition,
		LightDirection:   s.LightDirection.Normalize(),
		Illuminance:      v.Illuminance,
		AmbientLuminance: v.AmbientLuminance,

		ShadowMap: shadowMap,

		BaseColor:    v.BaseColor,
		BaseColorMap: model.BaseColor,
		NormalMap:    model.Normal,
		Metallic:     v.Metallic,
		MetallicMap:  model.Metallic,
		Roughness:    v.Roughness,
		RoughnessMap: model.Roughness,
		Reflectance:  reflectance,
	}
}
