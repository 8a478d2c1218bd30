package emotion

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeClock fires callbacks only when Advance moves past their deadline.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (f *fakeTimer) Stop() bool {
	if f.stopped || f.fired {
		return false
	}
	f.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{at: c.now + d, fn: fn}
	c.timers = append(c.timers, ft)
	return ft
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*fakeTimer
	for _, ft := range c.timers {
		if !ft.fired && !ft.stopped && ft.at <= c.now {
			ft.fired = true
			due = append(due, ft)
		}
	}
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, ft := range due {
		ft.fn()
	}
}

func newTestTimer(policy RevertPolicy) (*Timer, *fakeClock) {
	clk := &fakeClock{}
	return NewTimer(Options{RevertAfter: 5 * time.Second, Policy: policy, Clock: clk}), clk
}

func TestStartsNeutral(t *testing.T) {
	tm, _ := newTestTimer(RevertAlways)
	assert.Equal(t, Neutral, tm.Current())
}

func TestSetMoodIsImmediatelyVisible(t *testing.T) {
	tm, _ := newTestTimer(RevertAlways)
	for _, m := range []Mood{Joy, Embarrassed, Proud, Neutral, Joy} {
		tm.SetMood(m, "test")
		assert.Equal(t, m, tm.Current())
	}
}

func TestRevertsAtExactlyFiveSeconds(t *testing.T) {
	tm, clk := newTestTimer(RevertAlways)
	tm.SetMood(Joy, "response")

	clk.Advance(4999 * time.Millisecond)
	assert.Equal(t, Joy, tm.Current(), "must not revert before 5000ms")

	clk.Advance(time.Millisecond)
	assert.Equal(t, Neutral, tm.Current(), "must revert at 5000ms")
}

func TestRevertAlways_OlderTimerClearsNewerMood(t *testing.T) {
	tm, clk := newTestTimer(RevertAlways)
	tm.SetMood(Joy, "welcome")
	clk.Advance(3 * time.Second)
	tm.SetMood(Embarrassed, "error")

	// The first revert is due at t=5s even though Embarrassed was set at t=3s.
	clk.Advance(2 * time.Second)
	assert.Equal(t, Neutral, tm.Current())

	tm.SetMood(Proud, "late")
	// Second revert (due t=8s) fires and stomps Proud as well.
	clk.Advance(3 * time.Second)
	assert.Equal(t, Neutral, tm.Current())
}

func TestRevertLatestOnly_SupersededTimerIsIgnored(t *testing.T) {
	tm, clk := newTestTimer(RevertLatestOnly)
	tm.SetMood(Joy, "welcome")
	clk.Advance(3 * time.Second)
	tm.SetMood(Embarrassed, "error")

	clk.Advance(2 * time.Second)
	assert.Equal(t, Embarrassed, tm.Current(), "superseded revert must not fire")

	clk.Advance(3 * time.Second)
	assert.Equal(t, Neutral, tm.Current(), "newest revert fires 5s after its own SetMood")
}

func TestResetToNeutral(t *testing.T) {
	tm, clk := newTestTimer(RevertAlways)
	tm.SetMood(Proud, "done")
	tm.ResetToNeutral()
	assert.Equal(t, Neutral, tm.Current())

	clk.Advance(5 * time.Second)
	assert.Equal(t, Neutral, tm.Current())
}

func TestOnChangeNotifiesEveryTransition(t *testing.T) {
	tm, clk := newTestTimer(RevertAlways)
	var seen []Mood
	tm.OnChange(func(m Mood) { seen = append(seen, m) })

	tm.SetMood(Joy, "welcome")
	clk.Advance(5 * time.Second)
	tm.SetMood(Embarrassed, "error")

	assert.Equal(t, []Mood{Joy, Neutral, Embarrassed}, seen)
}

func TestInvalidMoodBecomesNeutral(t *testing.T) {
	tm, _ := newTestTimer(RevertAlways)
	tm.SetMood(Mood("furious"), "bad payload")
	assert.Equal(t, Neutral, tm.Current())
}

func TestParseMood(t *testing.T) {
	assert.Equal(t, Joy, ParseMood("joy"))
	assert.Equal(t, Embarrassed, ParseMood("embarrassed"))
	assert.Equal(t, Proud, ParseMood("proud"))
	assert.Equal(t, Neutral, ParseMood("neutral"))
	assert.Equal(t, Neutral, ParseMood(""))
	assert.Equal(t, Neutral, ParseMood("JOY"))
}

func TestDecideByEvent(t *testing.T) {
	assert.Equal(t, Joy, DecideByEvent(EventSuccess))
	assert.Equal(t, Proud, DecideByEvent(EventComplete))
	assert.Equal(t, Embarrassed, DecideByEvent(EventError))
	assert.Equal(t, Neutral, DecideByEvent(""))
}

func TestRealClockRevertAndStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	tm := NewTimer(Options{RevertAfter: 20 * time.Millisecond})
	reverted := make(chan struct{}, 1)
	tm.OnChange(func(m Mood) {
		if m == Neutral {
			select {
			case reverted <- struct{}{}:
			default:
			}
		}
	})

	tm.SetMood(Joy, "welcome")
	select {
	case <-reverted:
	case <-time.After(2 * time.Second):
		t.Fatal("revert never fired")
	}
	require.Equal(t, Neutral, tm.Current())

	tm.SetMood(Proud, "again")
	tm.Stop()
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, Proud, tm.Current(), "stopped timer must not revert")
}
