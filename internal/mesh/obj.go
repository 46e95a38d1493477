package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ebzr/turntable/pkg/math"
)

// LoadOBJ parses a Wavefront .obj file into a single triangle list.
// Face groups and materials are ignored; n-gons are fan-triangulated.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// ParseOBJ parses OBJ data from a reader.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2

	m := &Mesh{}
	vertexMap := make(map[string]uint32) // "v/vt/vn" -> vertex index
	hasNormals := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				positions = append(positions, parseVec3(parts[1:4]))
			}
		case "vn":
			if len(parts) >= 4 {
				normals = append(normals, parseVec3(parts[1:4]))
			}
		case "vt":
			if len(parts) >= 3 {
				u, _ := strconv.ParseFloat(parts[1], 32)
				v, _ := strconv.ParseFloat(parts[2], 32)
				uvs = append(uvs, math.Vec2{X: float32(u), Y: float32(v)})
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}

				vertex, withNormal, err := parseFaceVertex(faceStr, positions, normals, uvs)
				if err != nil {
					return nil, err
				}
				hasNormals = hasNormals || withNormal

				newIdx := uint32(len(m.Vertices))
				m.Vertices = append(m.Vertices, vertex)
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}

			// Fan triangulation
			for i := 2; i < len(faceVerts); i++ {
				m.Indices = append(m.Indices, faceVerts[0], faceVerts[i-1], faceVerts[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(m.Indices) == 0 {
		return nil, fmt.Errorf("OBJ contains no faces")
	}

	// OBJ has no tangent channel; tangents are always derived.
	m.finalize(hasNormals, false)
	return m, nil
}

func parseVec3(parts []string) math.Vec3 {
	x, _ := strconv.ParseFloat(parts[0], 32)
	y, _ := strconv.ParseFloat(parts[1], 32)
	z, _ := strconv.ParseFloat(parts[2], 32)
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

// parseFaceVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference.
// Indices are 1-based; negative values count back from the end.
func parseFaceVertex(s string, positions, normals []math.Vec3, uvs []math.Vec2) (Vertex, bool, error) {
	var vertex Vertex
	withNormal := false

	fields := strings.Split(s, "/")
	resolve := func(raw string, n int) (int, bool) {
		if raw == "" {
			return 0, false
		}
		idx, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false
		}
		if idx < 0 {
			idx = n + idx
		} else {
			idx--
		}
		if idx < 0 || idx >= n {
			return 0, false
		}
		return idx, true
	}

	idx, ok := resolve(fields[0], len(positions))
	if !ok {
		return vertex, false, fmt.Errorf("invalid face vertex %q", s)
	}
	vertex.Position = positions[idx]

	if len(fields) > 1 {
		if idx, ok := resolve(fields[1], len(uvs)); ok {
			vertex.TexCoord = uvs[idx]
		}
	}
	if len(fields) > 2 {
		if idx, ok := resolve(fields[2], len(normals)); ok {
			vertex.Normal = normals[idx]
			withNormal = true
		}
	}
	return vertex, withNormal, nil
}
