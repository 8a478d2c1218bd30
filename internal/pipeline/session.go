// Package pipeline runs one chat session: the transcript, the input buffer,
// the placeholder cursor and the single in-flight exchange with the
// answering service.
package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"dawang/internal/advisor"
	"dawang/internal/chatmsg"
	"dawang/internal/content"
	"dawang/internal/emotion"
	"dawang/internal/logging"
	"dawang/internal/selection"
)

// ApologyText is appended when the answering service fails.
const ApologyText = "오류가 발생했다왕... 😅 잠시 후 다시 시도해보라왕!"

// DefaultPlaceholderInterval is the example-question rotation period. The
// caller drives rotation by calling AdvancePlaceholder on this cadence.
const DefaultPlaceholderInterval = 3 * time.Second

// Answerer is the part of the advisory client a session needs.
type Answerer interface {
	Ask(ctx context.Context, req advisor.ChatRequest) (advisor.ChatResponse, error)
}

// Mood receives the outcome of every exchange.
type Mood interface {
	SetMood(mood emotion.Mood, reason string)
}

// Deps wires a Session to the rest of the client.
type Deps struct {
	Answerer  Answerer
	Selection *selection.Store
	Mood      Mood

	// ProgramName is the program id sent as program_name. Empty in general chat.
	ProgramName string

	// Now defaults to time.Now.
	Now func() time.Time
}

// Session is one chat visit. It is discarded when the user leaves the chat.
type Session struct {
	id       string
	deps     Deps
	inflight *semaphore.Weighted

	mu            sync.Mutex
	messages      []chatmsg.Message
	input         string
	examples      []string
	quickReplies  []content.QuickReply
	placeholder   int
	remoteSession string
	ids           chatmsg.IDSource
	busy          bool
	closed        bool
}

// New starts a session seeded from the current selection.
func New(deps Deps) *Session {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Selection == nil {
		deps.Selection = selection.NewStore()
	}

	c := content.Resolve(deps.Selection.Snapshot())
	now := deps.Now()
	greeting := make([]chatmsg.Message, len(c.Greeting))
	for i, m := range c.Greeting {
		m.CreatedAt = now
		greeting[i] = m
	}

	s := &Session{
		id:           uuid.NewString(),
		deps:         deps,
		inflight:     semaphore.NewWeighted(1),
		messages:     greeting,
		examples:     c.ExampleQuestions,
		quickReplies: c.QuickReplies,
	}
	logging.Session("Chat session %s started (program=%q, greeting=%d)", s.id, deps.ProgramName, len(greeting))
	return s
}

// ID identifies the session locally. Async results carry it so stale ones can be dropped.
func (s *Session) ID() string { return s.id }

// Messages returns a copy of the transcript.
func (s *Session) Messages() []chatmsg.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]chatmsg.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// QuickReplies returns the session's canned questions.
func (s *Session) QuickReplies() []content.QuickReply {
	return append([]content.QuickReply(nil), s.quickReplies...)
}

// Input returns the unsent input buffer.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the input buffer.
func (s *Session) SetInput(v string) {
	s.mu.Lock()
	s.input = v
	s.mu.Unlock()
}

// Busy reports whether an exchange is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Placeholder returns the example question currently shown in the empty input.
func (s *Session) Placeholder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.examples[s.placeholder]
}

// AdvancePlaceholder moves to the next example question, wrapping to the first.
func (s *Session) AdvancePlaceholder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeholder = (s.placeholder + 1) % len(s.examples)
	return s.examples[s.placeholder]
}

// Close ends the session. Any exchange still in flight is discarded when it
// completes, and callers stop advancing the placeholder.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	logging.Session("Chat session %s closed", s.id)
}

// =============================================================================
// SENDING
// =============================================================================

// Turn is one accepted question awaiting its answer.
type Turn struct {
	session *Session
	req     advisor.ChatRequest
	once    sync.Once
}

// Question returns the text that was sent.
func (t *Turn) Question() string { return t.req.Question }

// SessionID returns the id of the session that started the turn.
func (t *Turn) SessionID() string { return t.session.id }

// Result is the outcome of an exchange.
type Result struct {
	turn     *Turn
	Response advisor.ChatResponse
	Err      error
}

// Begin accepts text for sending. It returns false, changing nothing, when the
// text is blank, an exchange is already outstanding, or the session is closed.
// Otherwise the user message is appended, the input is cleared and the session
// is busy until Complete.
func (s *Session) Begin(text string) (*Turn, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	if !s.inflight.TryAcquire(1) {
		logging.SessionDebug("Send dropped, session %s busy", s.id)
		return nil, false
	}

	now := s.deps.Now()
	s.messages = append(s.messages, chatmsg.Message{
		ID:        s.ids.Next(string(chatmsg.KindUser), now),
		Kind:      chatmsg.KindUser,
		Content:   text,
		CreatedAt: now,
	})
	s.input = ""
	s.busy = true

	sel := s.deps.Selection.Snapshot()
	return &Turn{
		session: s,
		req: advisor.ChatRequest{
			Question:        text,
			ProfileDept:     sel.Department,
			SelectedProgram: sel.Program,
			ProgramName:     s.deps.ProgramName,
			SessionID:       s.remoteSession,
		},
	}, true
}

// Exchange calls the answering service. It touches no session state and may
// run on any goroutine.
func (t *Turn) Exchange(ctx context.Context) Result {
	logging.APIDebug("Asking %q (dept=%q program=%q)", t.req.Question, t.req.ProfileDept, t.req.SelectedProgram)
	resp, err := t.session.deps.Answerer.Ask(ctx, t.req)
	return Result{turn: t, Response: resp, Err: err}
}

// Complete applies a result: the bot answer and its mood on success, the
// apology and the embarrassed mood on failure. The session is idle afterwards.
// Results for a closed session are dropped. Completing the same turn twice is a no-op.
func (s *Session) Complete(res Result) {
	if res.turn == nil || res.turn.session != s {
		return
	}
	res.turn.once.Do(func() { s.complete(res) })
}

func (s *Session) complete(res Result) {
	s.mu.Lock()
	s.busy = false
	s.inflight.Release(1)
	if s.closed {
		s.mu.Unlock()
		logging.SessionDebug("Discarding reply for closed session %s", s.id)
		return
	}

	now := s.deps.Now()
	log := logging.Get(logging.CategorySession).With("session_id", s.id)
	var mood emotion.Mood
	var reason string
	if res.Err != nil {
		log.Error("Failed to send message: %v", res.Err)
		s.messages = append(s.messages, chatmsg.Message{
			ID:        s.ids.Next("error", now),
			Kind:      chatmsg.KindBot,
			Content:   ApologyText,
			CreatedAt: now,
		})
		mood, reason = emotion.DecideByEvent(emotion.EventError), "error"
	} else {
		if res.Response.SessionID != "" {
			s.remoteSession = res.Response.SessionID
		}
		label := chatmsg.ParseLabel(res.Response.Label)
		if label != chatmsg.LabelNone && !label.Known() {
			log.Warn("Unrecognized label %q", label)
		}
		s.messages = append(s.messages, chatmsg.Message{
			ID:        s.ids.Next(string(chatmsg.KindBot), now),
			Kind:      chatmsg.KindBot,
			Content:   res.Response.Answer,
			CreatedAt: now,
			Label:     label,
		})
		mood, reason = emotion.ParseMood(res.Response.Emotion), "response"
	}
	s.mu.Unlock()

	if s.deps.Mood != nil {
		s.deps.Mood.SetMood(mood, reason)
	}
}

// Send runs Begin, Exchange and Complete in order on the calling goroutine.
// It reports whether the text was accepted.
func (s *Session) Send(ctx context.Context, text string) bool {
	turn, ok := s.Begin(text)
	if !ok {
		return false
	}
	s.Complete(turn.Exchange(ctx))
	return true
}

// RemoteSessionID returns the conversation id the service assigned, if any.
func (s *Session) RemoteSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remoteSession
}
