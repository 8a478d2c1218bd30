package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"dawang/internal/emotion"
	"dawang/internal/logging"
)

// RunInteractiveChat starts the interactive chat session
func RunInteractiveChat(cfg Config) error {
	model := InitChat(cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Mood changes arrive on timer goroutines and from inside Update; Send
	// blocks until the loop reads it, so hand it off.
	model.timer.OnChange(func(emotion.Mood) {
		go p.Send(moodMsg{})
	})

	logging.UI("starting interactive chat")
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Shutdown()
	} else {
		model.Shutdown()
	}
	return err
}
