package game

import "time"

// Timer is the one-shot timer the loop arms between ticks
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

// Clock abstracts wall time so the loop can be driven by hand in tests
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

type systemClock struct{}

// SystemClock returns the real-time clock
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{t: time.NewTimer(d)}
}

type systemTimer struct {
	t *time.Timer
}

func (st systemTimer) C() <-chan time.Time {
	return st.t.C
}

func (st systemTimer) Stop() bool {
	return st.t.Stop()
}
