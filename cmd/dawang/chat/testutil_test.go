package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dawang/internal/advisor"
	"dawang/internal/catalog"
	"dawang/internal/emotion"
)

// fakeService answers every question the same way and serves a fixed catalog.
type fakeService struct {
	mu      sync.Mutex
	asked   []advisor.ChatRequest
	resp    advisor.ChatResponse
	askErr  error
	listErr error
}

func (f *fakeService) Ask(_ context.Context, req advisor.ChatRequest) (advisor.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.asked = append(f.asked, req)
	return f.resp, f.askErr
}

func (f *fakeService) AvailablePrograms(ctx context.Context) ([]catalog.Program, error) {
	return f.Catalog(ctx)
}

func (f *fakeService) Catalog(context.Context) ([]catalog.Program, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]catalog.Program, 0, len(catalog.KnownPrograms()))
	for _, id := range catalog.KnownPrograms() {
		out = append(out, catalog.Program{ID: string(id), Name: id.DisplayName(), Type: "융합전공"})
	}
	return out, nil
}

// NewTestModel returns a sized model backed by a fake service.
func NewTestModel() Model {
	m, _ := newTestModel(&fakeService{resp: advisor.ChatResponse{Answer: "**답변**이다왕", Label: "다전공_제도", Emotion: "joy"}})
	return m
}

func newTestModel(svc *fakeService) (Model, *fakeService) {
	timer := emotion.NewTimer(emotion.Options{RevertAfter: time.Hour})
	m := InitChat(Config{Service: svc, Timer: timer, Theme: "light"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), svc
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	return next.(Model), cmd
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlG = tea.KeyMsg{Type: tea.KeyCtrlG}
)

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

// walkToPrograms drives the funnel to the program list and applies the load.
func walkToPrograms(t *testing.T, m Model, dept string) Model {
	t.Helper()
	m, _ = press(t, m, keyEnter) // start -> type
	m, _ = press(t, m, keyEnter) // 융합전공 -> department
	for i, it := range m.list.Items() {
		if it.(departmentItem).name == dept {
			m.list.Select(i)
		}
	}
	m, cmd := press(t, m, keyEnter)
	if cmd == nil {
		t.Fatalf("expected a load command")
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}
