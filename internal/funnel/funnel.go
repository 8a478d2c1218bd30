// Package funnel walks the user from the landing screen through the three
// selection steps into a chat session, writing each choice to the shared
// selection store.
package funnel

import (
	"sync"

	"dawang/internal/catalog"
	"dawang/internal/emotion"
	"dawang/internal/logging"
	"dawang/internal/selection"
)

// Step is one screen of the funnel.
type Step int

const (
	Start Step = iota
	TypeSelect
	DepartmentSelect
	ProgramSelect
	ChatSession
)

var stepNames = [...]string{"start", "type", "department", "program", "chat"}

func (s Step) String() string {
	if s < Start || s > ChatSession {
		return "unknown"
	}
	return stepNames[s]
}

// Mood is set when the user lands on the start or chat screen.
type Mood interface {
	SetMood(mood emotion.Mood, reason string)
}

// Funnel keeps only the visit history. Choices live in the selection store.
type Funnel struct {
	sel *selection.Store

	mu          sync.Mutex
	stack       []Step
	programName string
	hooks       []func(Step)
}

// New creates a funnel positioned on Start. If mood is non-nil, entering Start
// or ChatSession sets it to joy.
func New(sel *selection.Store, mood Mood) *Funnel {
	f := &Funnel{sel: sel, stack: []Step{Start}}
	if mood != nil {
		f.OnEnter(func(s Step) {
			if s == Start || s == ChatSession {
				mood.SetMood(emotion.Joy, "welcome")
			}
		})
	}
	return f
}

// OnEnter registers fn to run after every step entry, including Back.
func (f *Funnel) OnEnter(fn func(Step)) {
	f.mu.Lock()
	f.hooks = append(f.hooks, fn)
	f.mu.Unlock()
}

// Open fires the entry hooks for the current step. Call once when the UI starts.
func (f *Funnel) Open() {
	f.enter(f.Current())
}

// Current returns the step on top of the history.
func (f *Funnel) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stack[len(f.stack)-1]
}

// Depth returns the number of visited steps still on the history.
func (f *Funnel) Depth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stack)
}

// ProgramName is the program id recorded by ChooseProgram, sent as program_name.
func (f *Funnel) ProgramName() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.programName
}

// ShortcutAvailable reports whether the mascot shortcut to general chat is offered.
func (f *Funnel) ShortcutAvailable() bool {
	cur := f.Current()
	return cur != Start && cur != ChatSession
}

// Begin leaves the landing screen.
func (f *Funnel) Begin() bool {
	return f.advance(Start, TypeSelect, nil)
}

// ChooseType records an enabled program type. Disabled types are inert.
func (f *Funnel) ChooseType(opt catalog.ProgramType) bool {
	if !opt.Enabled {
		logging.Get(logging.CategoryFunnel).Debug("Ignoring disabled program type %q", opt.Label)
		return false
	}
	return f.advance(TypeSelect, DepartmentSelect, func() {
		f.sel.SetProgramType(opt.Label)
	})
}

// ChooseDepartment records the home department.
func (f *Funnel) ChooseDepartment(dept string) bool {
	return f.advance(DepartmentSelect, ProgramSelect, func() {
		f.sel.SetDepartment(dept)
	})
}

// ChooseProgram records the target program and opens the chat. The program's
// id becomes program_name; catalog entries without an id fall back to the
// known id for the display name.
func (f *Funnel) ChooseProgram(p catalog.Program) bool {
	return f.advance(ProgramSelect, ChatSession, func() {
		f.sel.SetProgram(p.Name)
		name := p.ID
		if name == "" {
			if id, ok := catalog.LookupProgram(p.Name); ok {
				name = string(id)
			}
		}
		f.mu.Lock()
		f.programName = name
		f.mu.Unlock()
	})
}

// Back returns to the previously visited step. It is a no-op on the first step.
func (f *Funnel) Back() bool {
	f.mu.Lock()
	if len(f.stack) <= 1 {
		f.mu.Unlock()
		return false
	}
	from := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	to := f.stack[len(f.stack)-1]
	f.mu.Unlock()

	logging.Funnel("Back: %s -> %s", from, to)
	f.enter(to)
	return true
}

// JumpToChat clears the selection and opens a general chat. It is a no-op
// where the shortcut is not offered.
func (f *Funnel) JumpToChat() bool {
	if !f.ShortcutAvailable() {
		return false
	}
	f.sel.Reset()

	f.mu.Lock()
	from := f.stack[len(f.stack)-1]
	f.programName = ""
	f.stack = append(f.stack, ChatSession)
	f.mu.Unlock()

	logging.Funnel("Shortcut: %s -> %s (selection reset)", from, ChatSession)
	f.enter(ChatSession)
	return true
}

func (f *Funnel) advance(from, to Step, apply func()) bool {
	f.mu.Lock()
	cur := f.stack[len(f.stack)-1]
	f.mu.Unlock()
	if cur != from {
		logging.Get(logging.CategoryFunnel).Debug("Ignoring %s -> %s while on %s", from, to, cur)
		return false
	}

	if apply != nil {
		apply()
	}

	f.mu.Lock()
	f.stack = append(f.stack, to)
	f.mu.Unlock()

	logging.Funnel("Step: %s -> %s", from, to)
	f.enter(to)
	return true
}

func (f *Funnel) enter(s Step) {
	f.mu.Lock()
	hooks := append(([]func(Step))(nil), f.hooks...)
	f.mu.Unlock()
	for _, fn := range hooks {
		fn(s)
	}
}
