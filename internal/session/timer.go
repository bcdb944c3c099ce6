package session

import "time"

// DefaultInactivityTimeout is the idle gap after which elapsed time stops counting.
const DefaultInactivityTimeout = 5 * time.Minute

// timer tracks elapsed play time. A gap longer than timeout since the last
// activity is excluded entirely: elapsed freezes at its value when the gap
// began and the start reference is shifted by the gap on the next activity.
type timer struct {
	start        time.Time
	lastActivity time.Time
	timeout      time.Duration
}

func (t *timer) reset(now time.Time) {
	t.start = now
	t.lastActivity = now
}

// resumeFrom restarts the timer so that elapsed continues from d.
func (t *timer) resumeFrom(now time.Time, d time.Duration) {
	t.start = now.Add(-d)
	t.lastActivity = now
}

func (t *timer) idle(now time.Time) bool {
	return t.timeout > 0 && now.Sub(t.lastActivity) > t.timeout
}

func (t *timer) elapsed(now time.Time) time.Duration {
	if t.idle(now) {
		return t.lastActivity.Sub(t.start)
	}
	return now.Sub(t.start)
}

// activity records player activity at now, discarding an idle gap if there was one.
func (t *timer) activity(now time.Time) {
	if t.idle(now) {
		t.start = t.start.Add(now.Sub(t.lastActivity))
	}
	t.lastActivity = now
}
