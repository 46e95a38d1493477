// Package mesh provides the triangle-list mesh model and loaders for
// Wavefront OBJ and glTF 2.0 assets.
package mesh

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ebzr/turntable/pkg/math"
)

// Vertex holds the per-vertex attributes consumed by the shading stage.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	// Tangent w holds the bitangent handedness (+1 or -1).
	Tangent  math.Vec4
	TexCoord math.Vec2
}

// Mesh is an indexed triangle list. Triangle submission order equals
// storage order; the mesh defines no sorting or culling.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// vertex returns the vertex at triangle t, slot v (0..2).
func (m *Mesh) vertex(t, v int) *Vertex {
	return &m.Vertices[m.Indices[t*3+v]]
}

// Position returns the position at triangle t, slot v.
func (m *Mesh) Position(t, v int) math.Vec3 { return m.vertex(t, v).Position }

// Normal returns the normal at triangle t, slot v.
func (m *Mesh) Normal(t, v int) math.Vec3 { return m.vertex(t, v).Normal }

// Tangent returns the tangent at triangle t, slot v.
func (m *Mesh) Tangent(t, v int) math.Vec4 { return m.vertex(t, v).Tangent }

// TexCoord returns the texture coordinate at triangle t, slot v.
func (m *Mesh) TexCoord(t, v int) math.Vec2 { return m.vertex(t, v).TexCoord }

// Release frees the vertex storage. Safe to call more than once and on nil.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	m.Vertices = nil
	m.Indices = nil
}

// Load reads a mesh from disk, dispatching on the file extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported mesh format %q", ext)
	}
}

// finalize fills in derived attributes a loader could not read from the
// asset: flat-ish normals accumulated from faces, and UV-aligned tangents.
func (m *Mesh) finalize(hasNormals, hasTangents bool) {
	if !hasNormals {
		computeNormals(m)
	}
	if !hasTangents {
		computeTangents(m)
	}
}

// computeNormals accumulates area-weighted face normals per vertex.
func computeNormals(m *Mesh) {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math.Vec3{}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := &m.Vertices[m.Indices[i]]
		v1 := &m.Vertices[m.Indices[i+1]]
		v2 := &m.Vertices[m.Indices[i+2]]

		n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		v0.Normal = v0.Normal.Add(n)
		v1.Normal = v1.Normal.Add(n)
		v2.Normal = v2.Normal.Add(n)
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
		if m.Vertices[i].Normal == (math.Vec3{}) {
			m.Vertices[i].Normal = math.Vec3{Y: 1}
		}
	}
}
