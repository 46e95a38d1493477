package driver

import gomath "math"

// Schedule fixes the frame timing of a run before it starts.
type Schedule struct {
	FPS        int
	Duration   float64 // seconds
	FrameCount int
}

// NewSchedule derives the frame count from duration and rate.
func NewSchedule(duration float64, fps int) Schedule {
	return Schedule{
		FPS:        fps,
		Duration:   duration,
		FrameCount: int(gomath.Round(duration * float64(fps))),
	}
}

// Fraction returns the animation fraction for frame i: strictly
// increasing, 0 for the first frame. The last frame stops one step short
// of 1, matching the authored sequences, which never reach the end pose.
func (s Schedule) Fraction(i int) float32 {
	return float32(i) / float32(s.FrameCount)
}
