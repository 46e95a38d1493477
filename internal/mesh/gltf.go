package mesh

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/ebzr/turntable/pkg/math"
)

// LoadGLTF reads a .gltf or .glb file and flattens every mesh primitive
// into one triangle list. Node transforms are ignored: assets for this
// renderer are authored pre-centered and uniformly scaled.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	m := &Mesh{}
	hasNormals := true
	hasTangents := true
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			withNormals, withTangents, err := appendGLTFPrimitive(m, doc, prim)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
			hasNormals = hasNormals && withNormals
			hasTangents = hasTangents && withTangents
		}
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("glTF document contains no triangles")
	}

	m.finalize(hasNormals, hasTangents)
	return m, nil
}

// appendGLTFPrimitive converts one glTF mesh primitive and appends it.
func appendGLTFPrimitive(m *Mesh, doc *gltf.Document, prim *gltf.Primitive) (hasNormals, hasTangents bool, err error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return false, false, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return false, false, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var tangents [][4]float32
	var uvs [][2]float32

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		tangents, _ = modeler.ReadTangent(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	base := uint32(len(m.Vertices))
	for i, p := range positions {
		v := Vertex{Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]}}
		if i < len(normals) {
			v.Normal = math.Vec3{X: normals[i][0], Y: normals[i][1], Z: normals[i][2]}
		}
		if i < len(tangents) {
			v.Tangent = math.Vec4{X: tangents[i][0], Y: tangents[i][1], Z: tangents[i][2], W: tangents[i][3]}
		}
		if i < len(uvs) {
			v.TexCoord = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		m.Vertices = append(m.Vertices, v)
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return false, false, fmt.Errorf("indices: %w", err)
		}
		for _, idx := range indices {
			m.Indices = append(m.Indices, base+idx)
		}
	} else {
		for i := range positions {
			m.Indices = append(m.Indices, base+uint32(i))
		}
	}

	return len(normals) == len(positions), len(tangents) == len(positions), nil
}
