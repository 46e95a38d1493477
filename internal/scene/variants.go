package scene

import (
	"fmt"
	gomath "math"
	"path/filepath"

	"github.com/ebzr/turntable/pkg/math"
)

// Variant is one authored animation: output resolution, material
// constants, asset files, and the interpolation law driven by the
// animation fraction t in [0, 1).
type Variant struct {
	Name          string
	Prefix        string
	Width, Height int

	Assets Assets

	BaseColor        math.Vec3
	Metallic         float32
	Roughness        float32
	Illuminance      math.Vec3
	AmbientLuminance math.Vec3

	initial State
	animate func(t float32, s *State)
}

// InitialState returns the scene state at the start of the animation.
func (v *Variant) InitialState() State { return v.initial }

// Animate writes the state for animation fraction t. Every animated
// parameter is a lerp between its authored endpoints, so t=0 reproduces
// the start values exactly. A variant with no animation leaves the
// state untouched.
func (v *Variant) Animate(t float32, s *State) {
	if v.animate == nil {
		return
	}
	v.animate(t, s)
}

// Define assembles a variant from explicit parameters. The compiled-in
// scenes are authored the same way.
func Define(v Variant, initial State, animate func(t float32, s *State)) *Variant {
	v.initial = initial
	v.animate = animate
	return &v
}

// ByName looks up a compiled-in variant. Scene parameters are authored
// constants, not configuration.
func ByName(name, assetDir string) (*Variant, error) {
	switch name {
	case "eagle":
		return eagleVariant(assetDir), nil
	case "violin":
		return violinVariant(assetDir), nil
	}
	return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
}

// Names lists the compiled-in variants.
func Names() []string {
	return []string{"eagle", "violin"}
}

// eagleVariant is a turntable of an eagle sculpture: the model spins
// while the camera rises. Ambient-dominated lighting, base color map
// only.
func eagleVariant(assetDir string) *Variant {
	const (
		rotationStart = 0.0
		rotationEnd   = -0.94
	)
	cameraStart := math.Vec3{Z: 2}
	cameraEnd := math.Vec3{Y: 0.6, Z: 2.2}

	v := &Variant{
		Name:   "eagle",
		Prefix: "e",
		Width:  1024,
		Height: 1024,
		Assets: Assets{
			Mesh:      filepath.Join(assetDir, "eagle", "eagle.obj"),
			BaseColor: filepath.Join(assetDir, "eagle", "base_color.tga"),
		},
		BaseColor:        math.Vec3{X: 1, Y: 1, Z: 1},
		Metallic:         0,
		Roughness:        1,
		Illuminance:      math.Vec3{},
		AmbientLuminance: math.Vec3{X: 0.98, Y: 0.98, Z: 0.98},
		initial: State{
			LightDirection: math.Vec3{X: 1, Y: 1, Z: 1},
			CameraPosition: cameraStart,
			CameraTarget:   math.Vec3{X: -0.06, Y: 0.48},
			RotationY:      rotationStart,
			FOV:            gomath.Pi / 5,
		},
	}
	v.animate = func(t float32, s *State) {
		s.RotationY = math.Lerp(rotationStart, rotationEnd, t)
		s.CameraPosition = math.Vec3{
			Y: math.Lerp(cameraStart.Y, cameraEnd.Y, t),
			Z: math.Lerp(cameraStart.Z, cameraEnd.Z, t),
		}
	}
	return v
}

// violinVariant is a close-up dolly on a violin: the camera pushes in
// along its own axis while the light direction sweeps across. Fully
// metallic material with all four maps authored.
func violinVariant(assetDir string) *Variant {
	const (
		distanceStart = 0.4
		distanceEnd   = 0.3
		lightDeltaX   = 0.2
	)
	lightBase := math.Vec3{Y: 0.24, Z: -0.326}
	cameraAxis := math.Vec3{Y: 0.24, Z: 0.326}.Normalize()

	v := &Variant{
		Name:   "violin",
		Prefix: "v",
		Width:  1536,
		Height: 1024,
		Assets: Assets{
			Mesh:      filepath.Join(assetDir, "violin", "violin.obj"),
			BaseColor: filepath.Join(assetDir, "violin", "base_color.tga"),
			Normal:    filepath.Join(assetDir, "violin", "normal.tga"),
			Metallic:  filepath.Join(assetDir, "violin", "metallic.tga"),
			Roughness: filepath.Join(assetDir, "violin", "roughness.tga"),
		},
		BaseColor:        math.Vec3{X: 1, Y: 1, Z: 1},
		Metallic:         1,
		Roughness:        1,
		Illuminance:      math.Vec3{X: 1, Y: 1, Z: 1},
		AmbientLuminance: math.Vec3{X: 2.0, Y: 1.2, Z: 0.9},
		initial: State{
			LightDirection: lightBase.Add(math.Vec3{X: lightDeltaX}),
			CameraPosition: cameraAxis.Scale(distanceStart),
			CameraTarget:   math.Vec3{},
			RotationY:      0.796,
			FOV:            gomath.Pi / 3.2,
		},
	}
	v.animate = func(t float32, s *State) {
		s.CameraPosition = cameraAxis.Scale(math.Lerp(distanceStart, distanceEnd, t))
		s.LightDirection = lightBase.Add(math.Vec3{X: math.Lerp(lightDeltaX, -lightDeltaX, t)})
	}
	return v
}
