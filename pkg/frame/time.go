package frame

import "time"

// Time is the timing snapshot handed to a frame callback.
type Time struct {
	// FPS is the instantaneous rate derived from Delta.
	FPS   float64
	Delta time.Duration
	// Count starts at 1 for the first frame.
	Count uint64
	// Render is how long the previous callback took.
	Render        time.Duration
	RenderAverage time.Duration
	// Elapsed is the frame start time on the scheduler's clock.
	Elapsed time.Duration
}

func (t Time) Seconds() float64 {
	return t.Elapsed.Seconds()
}

// Clock reports monotonic time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type systemClock struct {
	start time.Time
}

// NewSystemClock returns a Clock whose origin is the moment of the call.
func NewSystemClock() Clock {
	return systemClock{start: time.Now()}
}

func (c systemClock) Now() time.Duration {
	return time.Since(c.start)
}

func fps(delta time.Duration) float64 {
	if delta <= 0 {
		return 0
	}
	return 1 / delta.Seconds()
}
