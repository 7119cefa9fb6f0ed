package frame

import (
	"log/slog"
	"time"
)

// renderWindow is the number of recent render durations averaged.
const renderWindow = 30

// Requester arms fn to run once at the next display refresh.
type Requester interface {
	RequestFrame(fn func()) error
}

// Callback draws one frame.
type Callback func(Time) error

// Scheduler runs a callback once per display refresh and keeps timing
// statistics. It is not safe for concurrent use; the host invokes frames one
// at a time.
type Scheduler struct {
	clock     Clock
	requester Requester
	callback  Callback
	logger    *slog.Logger

	count    uint64
	previous time.Duration
	render   time.Duration

	samples [renderWindow]time.Duration
	next    int
	average time.Duration
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewScheduler(clock Clock, requester Requester, callback Callback, opts ...Option) *Scheduler {
	s := &Scheduler{
		clock:     clock,
		requester: requester,
		callback:  callback,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start arms the first frame. Frames keep re-arming themselves until a
// request fails.
func (s *Scheduler) Start() error {
	s.previous = s.clock.Now()
	return s.requester.RequestFrame(s.frame)
}

func (s *Scheduler) Count() uint64 {
	return s.count
}

func (s *Scheduler) RenderAverage() time.Duration {
	return s.average
}

func (s *Scheduler) frame() {
	s.count++

	start := s.clock.Now()
	delta := start - s.previous
	err := s.callback(Time{
		FPS:           fps(delta),
		Delta:         delta,
		Count:         s.count,
		Render:        s.render,
		RenderAverage: s.average,
		Elapsed:       start,
	})
	if err != nil {
		s.logger.Error("frame failed", "frame", s.count, "err", err)
	}

	s.render = s.clock.Now() - start
	s.previous = start
	s.record(s.render)

	if err := s.requester.RequestFrame(s.frame); err != nil {
		s.logger.Error("request animation frame failed, stopping", "frame", s.count, "err", err)
	}
}

func (s *Scheduler) record(d time.Duration) {
	s.samples[s.next] = d
	s.next = (s.next + 1) % renderWindow

	n := min(s.count, renderWindow)
	var sum time.Duration
	for _, sample := range s.samples {
		sum += sample
	}
	s.average = sum / time.Duration(n)
}
