package render

import "time"

// Scheduler paces the animation loop. The default implementation wraps a
// time.Ticker; tests substitute a hand-driven channel.
type Scheduler interface {
	// Frames delivers one value per animation callback.
	Frames() <-chan time.Time
	// Stop releases the scheduler's resources. Frames may stay open.
	Stop()
}

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

type tickerScheduler struct {
	ticker *time.Ticker
}

// NewTickerScheduler returns a wall-clock Scheduler firing at the given
// interval.
func NewTickerScheduler(interval time.Duration) Scheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &tickerScheduler{ticker: time.NewTicker(interval)}
}

func (s *tickerScheduler) Frames() <-chan time.Time { return s.ticker.C }
func (s *tickerScheduler) Stop()                    { s.ticker.Stop() }
