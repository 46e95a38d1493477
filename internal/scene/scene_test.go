package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ebzr/turntable/pkg/math"
)

const quadOBJ = `
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

// writeTestAssets lays out a minimal mesh and base color map in a temp dir.
func writeTestAssets(t *testing.T) Assets {
	t.Helper()
	dir := t.TempDir()

	meshPath := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(meshPath, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("write mesh: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	basePath := filepath.Join(dir, "base_color.png")
	f, err := os.Create(basePath)
	if err != nil {
		t.Fatalf("create base color: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode base color: %v", err)
	}

	return Assets{Mesh: meshPath, BaseColor: basePath}
}

func TestLoadModelDefaultsUnauthoredMaps(t *testing.T) {
	model, err := LoadModel(writeTestAssets(t))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	defer model.Release()

	if model.Mesh == nil || model.BaseColor == nil || model.Normal == nil ||
		model.Metallic == nil || model.Roughness == nil {
		t.Fatal("every model handle must be non-nil after load")
	}

	// Defaults: unperturbed normal, white metallic and roughness.
	n := model.Normal.Sample(0, 0)
	if n.Z != 1 {
		t.Errorf("default normal map z: got %f, want 1", n.Z)
	}
	if model.Metallic.Sample(0, 0).X != 1 {
		t.Error("default metallic map should be white")
	}
	if model.Roughness.Sample(0, 0).X != 1 {
		t.Error("default roughness map should be white")
	}
}

func TestLoadModelMeshFailure(t *testing.T) {
	_, err := LoadModel(Assets{Mesh: filepath.Join(t.TempDir(), "missing.obj")})
	if err == nil {
		t.Fatal("expected error for missing mesh")
	}
	if !strings.Contains(err.Error(), "mesh") {
		t.Errorf("error should name the asset class: %v", err)
	}
}

func TestLoadModelTextureFailureNamesAssetClass(t *testing.T) {
	assets := writeTestAssets(t)
	assets.BaseColor = filepath.Join(t.TempDir(), "missing.png")

	_, err := LoadModel(assets)
	if err == nil {
		t.Fatal("expected error for missing base color map")
	}
	if !strings.Contains(err.Error(), "base color") {
		t.Errorf("error should name the asset class: %v", err)
	}
}

func TestModelReleaseIdempotent(t *testing.T) {
	model, err := LoadModel(writeTestAssets(t))
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	model.Release()
	model.Release()

	var nilModel *Model
	nilModel.Release() // must not panic
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		v, err := ByName(name, "assets")
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if v.Name != name {
			t.Errorf("variant name: got %q, want %q", v.Name, name)
		}
		if v.Width < 1 || v.Height < 1 {
			t.Errorf("%s: invalid resolution %dx%d", name, v.Width, v.Height)
		}
	}
	if _, err := ByName("teapot", "assets"); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestEagleAnimateBoundaries(t *testing.T) {
	v, err := ByName("eagle", "assets")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}

	s := v.InitialState()
	v.Animate(0, &s)
	if s.RotationY != 0 {
		t.Errorf("rotation at t=0: got %f, want 0", s.RotationY)
	}
	if s.CameraPosition != (math.Vec3{Z: 2}) {
		t.Errorf("camera at t=0: got %v, want (0, 0, 2)", s.CameraPosition)
	}

	v.Animate(1, &s)
	if s.RotationY != -0.94 {
		t.Errorf("rotation at t=1: got %f, want -0.94", s.RotationY)
	}
	if s.CameraPosition != (math.Vec3{Y: 0.6, Z: 2.2}) {
		t.Errorf("camera at t=1: got %v, want (0, 0.6, 2.2)", s.CameraPosition)
	}

	// The light and target stay fixed for this scene.
	if s.LightDirection != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("light direction should not animate: got %v", s.LightDirection)
	}
	if s.CameraTarget != (math.Vec3{X: -0.06, Y: 0.48}) {
		t.Errorf("camera target should not animate: got %v", s.CameraTarget)
	}
}

func TestViolinAnimateBoundaries(t *testing.T) {
	v, err := ByName("violin", "assets")
	if err != nil {
		t.Fatalf("ByName: %v", err)
	}

	s := v.InitialState()
	v.Animate(0, &s)
	if d := s.CameraPosition.Length(); absf(d-0.4) > 1e-5 {
		t.Errorf("camera distance at t=0: got %f, want 0.4", d)
	}
	if got := s.LightDirection.X; absf(got-0.2) > 1e-6 {
		t.Errorf("light x at t=0: got %f, want 0.2", got)
	}

	v.Animate(1, &s)
	if d := s.CameraPosition.Length(); absf(d-0.3) > 1e-5 {
		t.Errorf("camera distance at t=1: got %f, want 0.3", d)
	}
	if got := s.LightDirection.X; absf(got+0.2) > 1e-6 {
		t.Errorf("light x at t=1: got %f, want -0.2", got)
	}

	// The camera pushes in along a fixed axis.
	v.Animate(0.5, &s)
	axis := s.CameraPosition.Normalize()
	want := math.Vec3{Y: 0.24, Z: 0.326}.Normalize()
	if absf(axis.X-want.X) > 1e-5 || absf(axis.Y-want.Y) > 1e-5 || absf(axis.Z-want.Z) > 1e-5 {
		t.Errorf("camera axis: got %v, want %v", axis, want)
	}
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
