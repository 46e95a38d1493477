package render

import (
	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/internal/scene"
	"github.com/ebzr/turntable/internal/shader"
	"github.com/ebzr/turntable/pkg/math"
)

// Renderer draws one model per frame into a fixed set of targets.
type Renderer struct {
	Variant *scene.Variant
	Targets *Targets
	// WithShadowPass enables the depth pre-pass from the light's view.
	// Off, the 1x1 placeholder shadow map leaves every fragment lit.
	WithShadowPass bool
}

// Frame renders one frame from the given scene state: the optional
// shadow depth pass, then the lit color pass. Synchronous; when it
// returns the color buffer holds the finished frame.
func (r *Renderer) Frame(model *scene.Model, s *scene.State) {
	t := BuildTransforms(s, float32(r.Variant.Width)/float32(r.Variant.Height), r.WithShadowPass)

	if r.WithShadowPass {
		r.shadowPass(model, &t)
	}
	r.colorPass(model, s, &t)
}

// shadowPass writes the model's depth as seen from the light.
func (r *Renderer) shadowPass(model *scene.Model, t *Transforms) {
	size, _ := r.Targets.Shadow.Size()
	p := raster.Pipeline{
		VertexShader: shader.ShadowCastingVertex,
		VaryingCount: shader.ShadowCastingVaryingCount,
	}
	p.SetViewport(0, 0, size, size)
	r.Targets.Shadow.Clear(math.Vec4{})

	uniform := shader.ShadowCastingUniform{
		LocalToClip: t.LightWorldToClip.Mul(t.LocalToWorld),
	}

	mesh := model.Mesh
	var attributes [3]shader.ShadowCastingAttribute
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		for v := 0; v < 3; v++ {
			attributes[v].Position = mesh.Position(tri, v)
		}
		p.DrawTriangle(r.Targets.Shadow, &uniform,
			[3]any{&attributes[0], &attributes[1], &attributes[2]})
	}
}

// colorPass walks the triangles in storage order, gathering the four
// vertex attributes into a fixed 3-slot buffer and submitting each
// triangle as one atomic draw. No sorting, culling, or batching here.
func (r *Renderer) colorPass(model *scene.Model, s *scene.State, t *Transforms) {
	p := raster.Pipeline{
		VertexShader:   shader.StandardVertex,
		FragmentShader: shader.StandardFragment,
		VaryingCount:   shader.StandardVaryingCount,
	}
	p.SetViewport(0, 0, r.Variant.Width, r.Variant.Height)
	r.Targets.Frame.Clear(math.Vec4{})

	uniform := assembleUniform(r.Variant, s, model, t, r.Targets.ShadowMap())

	mesh := model.Mesh
	var attributes [3]shader.StandardAttribute
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		for v := 0; v < 3; v++ {
			attributes[v] = shader.StandardAttribute{
				Position: mesh.Position(tri, v),
				Normal:   mesh.Normal(tri, v),
				Tangent:  mesh.Tangent(tri, v),
				TexCoord: mesh.TexCoord(tri, v),
			}
		}
		p.DrawTriangle(r.Targets.Frame, &uniform,
			[3]any{&attributes[0], &attributes[1], &attributes[2]})
	}
}
