// Package scene holds the per-frame scene state, the material bundle,
// and the compiled-in scene variants.
package scene

import (
	"fmt"

	"github.com/ebzr/turntable/internal/mesh"
	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/internal/texture"
	"github.com/ebzr/turntable/pkg/math"
)

// State is the animated scene state. It is an explicit value owned by the
// driver and passed by pointer into the render call; only the driver
// mutates it, once per frame.
type State struct {
	LightDirection math.Vec3
	CameraPosition math.Vec3
	CameraTarget   math.Vec3
	RotationY      float32
	FOV            float32
}

// Assets names the files backing a model. An empty texture path selects
// the neutral default map for that channel.
type Assets struct {
	Mesh      string
	BaseColor string
	Normal    string
	Metallic  string
	Roughness string
}

// Model bundles a mesh with its four material maps. After a successful
// LoadModel every handle is non-nil.
type Model struct {
	Mesh      *mesh.Mesh
	BaseColor *raster.Texture
	Normal    *raster.Texture
	Metallic  *raster.Texture
	Roughness *raster.Texture
}

// LoadModel acquires the mesh first, then each texture. On any failure
// everything acquired so far is released and the error names the failed
// asset class.
func LoadModel(assets Assets) (*Model, error) {
	m := &Model{}

	var err error
	m.Mesh, err = mesh.Load(assets.Mesh)
	if err != nil {
		return nil, fmt.Errorf("mesh: %w", err)
	}

	if m.BaseColor, err = loadMap(assets.BaseColor, true, nil); err != nil {
		m.Release()
		return nil, fmt.Errorf("base color map: %w", err)
	}
	if m.Normal, err = loadMap(assets.Normal, false, texture.DefaultNormal); err != nil {
		m.Release()
		return nil, fmt.Errorf("normal map: %w", err)
	}
	if m.Metallic, err = loadMap(assets.Metallic, false, texture.DefaultScalar); err != nil {
		m.Release()
		return nil, fmt.Errorf("metallic map: %w", err)
	}
	if m.Roughness, err = loadMap(assets.Roughness, false, texture.DefaultScalar); err != nil {
		m.Release()
		return nil, fmt.Errorf("roughness map: %w", err)
	}

	return m, nil
}

// loadMap loads one material map, falling back to the channel default
// when no path is authored.
func loadMap(path string, colorData bool, fallback func() (*raster.Texture, error)) (*raster.Texture, error) {
	if path == "" {
		if fallback == nil {
			return nil, fmt.Errorf("no file authored and no default exists")
		}
		return fallback()
	}
	return texture.Load(path, colorData)
}

// Release frees the mesh and every texture. Safe to call more than once
// and on a partially loaded model.
func (m *Model) Release() {
	if m == nil {
		return
	}
	m.Mesh.Release()
	m.BaseColor.Release()
	m.Normal.Release()
	m.Metallic.Release()
	m.Roughness.Release()
}
