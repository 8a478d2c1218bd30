package chat

import (
	"fmt"
	"time"

	"dawang/internal/catalog"
	"dawang/internal/emotion"
	"dawang/internal/pipeline"
	"dawang/internal/selection"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Service is the remote surface the interface needs.
type Service interface {
	pipeline.Answerer
	catalog.Source
}

// Config holds configuration for initializing the chat interface.
type Config struct {
	Service   Service
	Timer     *emotion.Timer
	Selection *selection.Store

	// UseAvailable lists the pre-filtered "available" programs instead of the full catalog.
	UseAvailable        bool
	PlaceholderInterval time.Duration
	Theme               string
}

// =============================================================================
// MESSAGES
// =============================================================================

// moodMsg asks for a redraw after the mascot's mood changed.
type moodMsg struct{}

// placeholderTickMsg rotates the example question of one chat session.
type placeholderTickMsg struct {
	sessionID string
}

// replyMsg carries an exchange result back to the session that started it.
type replyMsg struct {
	session *pipeline.Session
	result  pipeline.Result
}

// programsMsg carries a program list load. seq discards superseded loads.
type programsMsg struct {
	seq      int
	programs []catalog.Program
	err      error
}

// =============================================================================
// LIST ITEMS
// =============================================================================

type typeItem struct {
	pt catalog.ProgramType
}

func (i typeItem) Title() string {
	if !i.pt.Enabled {
		return i.pt.Label + " (개발중)"
	}
	return i.pt.Label
}
func (i typeItem) Description() string { return i.pt.Description }
func (i typeItem) FilterValue() string { return i.pt.Label }

type departmentItem struct {
	name string
}

func (i departmentItem) Title() string { return i.name }
func (i departmentItem) Description() string {
	return fmt.Sprintf("참여 가능 융합전공 %d개", len(catalog.EligiblePrograms(i.name)))
}
func (i departmentItem) FilterValue() string { return i.name }

type programItem struct {
	p catalog.Program
}

func (i programItem) Title() string       { return i.p.Name }
func (i programItem) Description() string { return i.p.Type }
func (i programItem) FilterValue() string { return i.p.Name }
