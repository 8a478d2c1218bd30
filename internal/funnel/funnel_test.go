package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dawang/internal/catalog"
	"dawang/internal/emotion"
	"dawang/internal/selection"
)

type moodLog struct {
	moods   []emotion.Mood
	reasons []string
}

func (m *moodLog) SetMood(mood emotion.Mood, reason string) {
	m.moods = append(m.moods, mood)
	m.reasons = append(m.reasons, reason)
}

func convergence(t *testing.T) catalog.ProgramType {
	t.Helper()
	for _, pt := range catalog.ProgramTypes() {
		if pt.Enabled {
			return pt
		}
	}
	t.Fatal("no enabled program type")
	return catalog.ProgramType{}
}

func TestFullWalk(t *testing.T) {
	sel := selection.NewStore()
	mood := &moodLog{}
	f := New(sel, mood)
	f.Open()
	assert.Equal(t, Start, f.Current())
	assert.Equal(t, []emotion.Mood{emotion.Joy}, mood.moods)

	require.True(t, f.Begin())
	require.True(t, f.ChooseType(convergence(t)))
	require.True(t, f.ChooseDepartment(catalog.Business))
	require.True(t, f.ChooseProgram(catalog.Program{ID: "위기관리_전공", Name: "위기관리", Type: "융합전공"}))

	assert.Equal(t, ChatSession, f.Current())
	assert.Equal(t, selection.State{ProgramType: "융합전공", Department: "경영학부", Program: "위기관리"}, sel.Snapshot())
	assert.Equal(t, "위기관리_전공", f.ProgramName())
	assert.Equal(t, []emotion.Mood{emotion.Joy, emotion.Joy}, mood.moods)
	assert.Equal(t, []string{"welcome", "welcome"}, mood.reasons)
}

func TestDisabledTypeIsInert(t *testing.T) {
	sel := selection.NewStore()
	f := New(sel, nil)
	f.Begin()

	for _, pt := range catalog.ProgramTypes() {
		if !pt.Enabled {
			assert.False(t, f.ChooseType(pt), pt.Label)
		}
	}
	assert.Equal(t, TypeSelect, f.Current())
	assert.True(t, sel.Snapshot().IsEmpty())
}

func TestTriggersOnlyFromTheirStep(t *testing.T) {
	sel := selection.NewStore()
	f := New(sel, nil)

	assert.False(t, f.ChooseDepartment(catalog.Business))
	assert.False(t, f.ChooseProgram(catalog.Program{Name: "빅데이터"}))
	assert.Equal(t, Start, f.Current())
	assert.True(t, sel.Snapshot().IsEmpty())

	f.Begin()
	assert.False(t, f.Begin())
}

func TestBackPopsHistory(t *testing.T) {
	mood := &moodLog{}
	f := New(selection.NewStore(), mood)

	assert.False(t, f.Back(), "no-op on first step")

	f.Begin()
	f.ChooseType(convergence(t))
	assert.Equal(t, DepartmentSelect, f.Current())

	assert.True(t, f.Back())
	assert.Equal(t, TypeSelect, f.Current())
	assert.True(t, f.Back())
	assert.Equal(t, Start, f.Current())
	assert.Equal(t, []emotion.Mood{emotion.Joy}, mood.moods, "re-entering start greets again")
	assert.False(t, f.Back())
}

func TestJumpToChatResetsSelection(t *testing.T) {
	sel := selection.NewStore()
	f := New(sel, nil)
	f.Begin()
	f.ChooseType(convergence(t))
	f.ChooseDepartment(catalog.ManagementInformation)

	require.True(t, f.ShortcutAvailable())
	require.True(t, f.JumpToChat())
	assert.Equal(t, ChatSession, f.Current())
	assert.Equal(t, selection.State{}, sel.Snapshot())
	assert.Empty(t, f.ProgramName())

	assert.False(t, f.ShortcutAvailable())
	assert.False(t, f.JumpToChat())

	assert.True(t, f.Back())
	assert.Equal(t, ProgramSelect, f.Current())
}

func TestShortcutHiddenOnStart(t *testing.T) {
	f := New(selection.NewStore(), nil)
	assert.False(t, f.ShortcutAvailable())
	assert.False(t, f.JumpToChat())
	assert.Equal(t, Start, f.Current())
}

func TestProgramNameFallsBackToKnownID(t *testing.T) {
	f := New(selection.NewStore(), nil)
	f.Begin()
	f.ChooseType(convergence(t))
	f.ChooseDepartment(catalog.InternationalBusiness)
	f.ChooseProgram(catalog.Program{Name: "벤처비즈니스", Type: "융합전공"})
	assert.Equal(t, string(catalog.VentureBusiness), f.ProgramName())
}

func TestOnEnterSeesEveryStep(t *testing.T) {
	f := New(selection.NewStore(), nil)
	var seen []Step
	f.OnEnter(func(s Step) { seen = append(seen, s) })

	f.Open()
	f.Begin()
	f.ChooseType(convergence(t))
	f.Back()

	assert.Equal(t, []Step{Start, TypeSelect, DepartmentSelect, TypeSelect}, seen)
	assert.Equal(t, "department", DepartmentSelect.String())
}
