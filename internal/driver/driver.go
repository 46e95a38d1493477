// Package driver runs one animation: it owns the schedule, the run
// state machine, resource lifetime, and the per-frame loop.
package driver

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ebzr/turntable/internal/export"
	"github.com/ebzr/turntable/internal/render"
	"github.com/ebzr/turntable/internal/scene"
)

// Error classes a run can fail with before any frame is written.
var (
	ErrResourceLoad = errors.New("resource load failed")
	ErrAllocation   = errors.New("render target allocation failed")
)

// RunState tracks the driver through its lifecycle.
type RunState int

const (
	// StateUninitialized: no resources acquired, no targets allocated.
	StateUninitialized RunState = iota
	// StateRunning: all resources loaded and targets allocated; frames
	// are being rendered and exported.
	StateRunning
	// StateFinished: every frame exported, everything released.
	StateFinished
)

// Driver renders one scene variant over one schedule.
type Driver struct {
	Variant  *scene.Variant
	Schedule Schedule
	Sequence *export.Sequence

	// ShadowPass enables the real depth pre-pass; off, the placeholder
	// shadow map leaves every fragment lit.
	ShadowPass    bool
	ShadowMapSize int

	Log *zap.Logger

	state RunState
}

// State returns the driver's current lifecycle state.
func (d *Driver) State() RunState { return d.state }

// Run executes the whole animation. Resources are acquired before the
// run enters StateRunning; any load or allocation failure aborts with
// everything released, zero targets held, and zero frames on disk.
// Mid-run failures only stop the frame loop.
func (d *Driver) Run() error {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	model, err := scene.LoadModel(d.Variant.Assets)
	if err != nil {
		log.Error("cannot load scene resources",
			zap.String("scene", d.Variant.Name), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}

	shadowSize := 1
	if d.ShadowPass {
		shadowSize = d.ShadowMapSize
	}
	targets, err := render.NewTargets(shadowSize, d.Variant.Width, d.Variant.Height)
	if err != nil {
		model.Release()
		log.Error("cannot allocate render targets", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}

	if err := os.MkdirAll(d.Sequence.Dir, 0755); err != nil {
		targets.Teardown()
		model.Release()
		return fmt.Errorf("creating output directory: %w", err)
	}

	d.state = StateRunning
	log.Info("run started",
		zap.String("scene", d.Variant.Name),
		zap.Int("frames", d.Schedule.FrameCount),
		zap.Int("fps", d.Schedule.FPS),
		zap.String("output", d.Sequence.Dir))

	renderer := &render.Renderer{
		Variant:        d.Variant,
		Targets:        targets,
		WithShadowPass: d.ShadowPass,
	}

	state := d.Variant.InitialState()
	var runErr error
	for i := 0; i < d.Schedule.FrameCount; i++ {
		d.Variant.Animate(d.Schedule.Fraction(i), &state)
		renderer.Frame(model, &state)

		if err := d.Sequence.SaveFrame(targets.ColorBuffer(), i); err != nil {
			runErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}
		log.Debug("frame written", zap.Int("frame", i))
	}

	targets.Teardown()
	model.Release()
	if runErr != nil {
		return runErr
	}

	d.state = StateFinished
	log.Info("run finished", zap.Int("frames", d.Schedule.FrameCount))
	return nil
}
