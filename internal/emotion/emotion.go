// Package emotion holds the mascot's transient mood.
//
// Exactly one Mood is current at any time. Every non-neutral mood set through
// SetMood reverts to Neutral after a fixed delay. Two revert policies exist:
// RevertAlways lets every scheduled revert fire at its own deadline, even when
// a newer mood was set in between (an older timer can therefore clear a newer
// mood early). RevertLatestOnly stops superseded timers so only the most recent
// SetMood decides when the mood returns to Neutral.
package emotion

import (
	"sync"
	"time"

	"dawang/internal/logging"
)

// Mood is one of the mascot's display states.
type Mood string

const (
	Neutral     Mood = "neutral"
	Joy         Mood = "joy"
	Embarrassed Mood = "embarrassed"
	Proud       Mood = "proud"
)

// DefaultRevertAfter is how long a mood lasts when no config overrides it.
const DefaultRevertAfter = 5 * time.Second

// ParseMood maps a wire value to a Mood. Unknown values become Neutral.
func ParseMood(s string) Mood {
	switch Mood(s) {
	case Joy, Embarrassed, Proud:
		return Mood(s)
	default:
		return Neutral
	}
}

// Valid reports whether m is one of the four moods.
func (m Mood) Valid() bool {
	switch m {
	case Neutral, Joy, Embarrassed, Proud:
		return true
	}
	return false
}

// Event is an outcome that can be mapped to a mood.
type Event string

const (
	EventSuccess  Event = "success"
	EventComplete Event = "complete"
	EventError    Event = "error"
)

// DecideByEvent maps an outcome to the mood the mascot should show.
func DecideByEvent(evt Event) Mood {
	switch evt {
	case EventSuccess:
		return Joy
	case EventComplete:
		return Proud
	case EventError:
		return Embarrassed
	default:
		return Neutral
	}
}

// RevertPolicy decides what a revert timer does when it fires after being superseded.
type RevertPolicy int

const (
	// RevertAlways forces Neutral whenever any scheduled revert fires.
	RevertAlways RevertPolicy = iota
	// RevertLatestOnly ignores (and stops) reverts scheduled by superseded SetMood calls.
	RevertLatestOnly
)

// Stopper cancels a scheduled callback.
type Stopper interface {
	Stop() bool
}

// Clock schedules callbacks. The real clock wraps time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper { return time.AfterFunc(d, f) }

// RealClock returns the wall-clock scheduler.
func RealClock() Clock { return realClock{} }

// Options configures a Timer.
type Options struct {
	RevertAfter time.Duration
	Policy      RevertPolicy
	Clock       Clock
}

// Timer is the process-wide mood cell. It is shared by reference; never copy it.
type Timer struct {
	mu          sync.Mutex
	mood        Mood
	gen         uint64
	pending     Stopper
	revertAfter time.Duration
	policy      RevertPolicy
	clock       Clock
	listeners   []func(Mood)
}

// NewTimer creates a Timer starting at Neutral.
func NewTimer(opts Options) *Timer {
	if opts.RevertAfter <= 0 {
		opts.RevertAfter = DefaultRevertAfter
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	return &Timer{
		mood:        Neutral,
		revertAfter: opts.RevertAfter,
		policy:      opts.Policy,
		clock:       opts.Clock,
	}
}

// OnChange registers fn to run after every mood transition, outside the lock.
// Listeners may be invoked from timer goroutines.
func (t *Timer) OnChange(fn func(Mood)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// SetMood makes mood current and schedules a revert to Neutral after the configured delay.
func (t *Timer) SetMood(mood Mood, reason string) {
	if !mood.Valid() {
		mood = Neutral
	}
	if reason != "" {
		logging.Emotion("Emotion changed to: %s (%s)", mood, reason)
	} else {
		logging.Emotion("Emotion changed to: %s", mood)
	}

	t.mu.Lock()
	t.gen++
	gen := t.gen
	t.mood = mood
	if t.policy == RevertLatestOnly && t.pending != nil {
		t.pending.Stop()
	}
	t.pending = t.clock.AfterFunc(t.revertAfter, func() { t.revert(gen) })
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	notify(listeners, mood)
}

// ResetToNeutral forces Neutral immediately without scheduling anything.
// Reverts that are already pending still fire.
func (t *Timer) ResetToNeutral() {
	t.mu.Lock()
	t.mood = Neutral
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	notify(listeners, Neutral)
}

// Current returns the live mood.
func (t *Timer) Current() Mood {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mood
}

// Stop cancels the most recent pending revert. Used at shutdown.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

func (t *Timer) revert(gen uint64) {
	t.mu.Lock()
	if t.policy == RevertLatestOnly && gen != t.gen {
		t.mu.Unlock()
		return
	}
	if gen == t.gen {
		t.pending = nil
	}
	t.mood = Neutral
	listeners := t.snapshotListeners()
	t.mu.Unlock()

	logging.Get(logging.CategoryEmotion).Debug("revert fired gen=%d", gen)
	notify(listeners, Neutral)
}

func (t *Timer) snapshotListeners() []func(Mood) {
	if len(t.listeners) == 0 {
		return nil
	}
	out := make([]func(Mood), len(t.listeners))
	copy(out, t.listeners)
	return out
}

func notify(listeners []func(Mood), m Mood) {
	for _, fn := range listeners {
		fn(m)
	}
}
