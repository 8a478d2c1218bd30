// Package chatmsg defines the transcript entries shared by the resolver,
// the pipeline and the renderer.
package chatmsg

import (
	"fmt"
	"strings"
	"time"
)

// Kind tells the renderer how to draw a message.
type Kind string

const (
	KindUser Kind = "user"
	KindBot  Kind = "bot"
	// KindInfo content is newline-separated bullets.
	KindInfo Kind = "info"
)

// Label is the topic the answering service routed a question to.
type Label string

const (
	LabelNone         Label = ""
	LabelSystem       Label = "다전공_제도"
	LabelStatus       Label = "전공_현황"
	LabelRequirements Label = "융합전공_졸업요건"
	LabelCurriculum   Label = "융합전공_교과과정"
	LabelUnmatched    Label = "Unmatched"
)

// ParseLabel maps a wire label to a Label. Surrounding whitespace is dropped
// and a blank label is LabelNone. Unknown labels are kept so new service
// topics still show up in logs.
func ParseLabel(s string) Label {
	return Label(strings.TrimSpace(s))
}

// Known reports whether the label is one the service documents.
func (l Label) Known() bool {
	switch l {
	case LabelSystem, LabelStatus, LabelRequirements, LabelCurriculum, LabelUnmatched:
		return true
	}
	return false
}

// Message is one transcript entry. ID is unique within a session.
type Message struct {
	ID        string
	Kind      Kind
	Content   string
	CreatedAt time.Time
	Label     Label
}

// IDSource hands out "<kind>-<unix-nano>" ids that never repeat even when the
// clock does not advance between calls. Not safe for concurrent use.
type IDSource struct {
	last int64
}

// Next returns a fresh id for kind stamped at t.
func (s *IDSource) Next(kind string, t time.Time) string {
	n := t.UnixNano()
	if n <= s.last {
		n = s.last + 1
	}
	s.last = n
	return fmt.Sprintf("%s-%d", kind, n)
}
