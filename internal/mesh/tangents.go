package mesh

import "github.com/ebzr/turntable/pkg/math"

// computeTangents generates per-vertex tangents for tangent-space normal
// mapping. Contributions are accumulated per triangle, then Gram-Schmidt
// orthogonalized against the vertex normal. Triangles with a degenerate UV
// area are skipped. Handedness is stored in the tangent w component.
func computeTangents(m *Mesh) {
	tangents := make([]math.Vec3, len(m.Vertices))
	bitangents := make([]math.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := &m.Vertices[i0], &m.Vertices[i1], &m.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)

		du1 := v1.TexCoord.X - v0.TexCoord.X
		dv1 := v1.TexCoord.Y - v0.TexCoord.Y
		du2 := v2.TexCoord.X - v0.TexCoord.X
		dv2 := v2.TexCoord.Y - v0.TexCoord.Y

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue // degenerate UV triangle
		}
		r := 1.0 / denom

		t := e1.Scale(dv2 * r).Sub(e2.Scale(dv1 * r))
		b := e2.Scale(du1 * r).Sub(e1.Scale(du2 * r))

		for _, idx := range []uint32{i0, i1, i2} {
			tangents[idx] = tangents[idx].Add(t)
			bitangents[idx] = bitangents[idx].Add(b)
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := tangents[i]

		// T = normalize(T - N*(N·T))
		t = t.Sub(n.Scale(n.Dot(t)))
		if t.Dot(t) < 1e-8 {
			// Degenerate: choose an arbitrary tangent perpendicular to N.
			if absf(n.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(n.Scale(n.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(n.Scale(n.Y))
			}
		}
		t = t.Normalize()

		handedness := float32(1)
		if n.Cross(t).Dot(bitangents[i]) < 0 {
			handedness = -1
		}
		m.Vertices[i].Tangent = math.Vec4FromVec3(t, handedness)
	}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
