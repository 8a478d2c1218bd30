// Package content derives the opening transcript, example questions and
// quick replies of a chat session from the current selection.
package content

import (
	"fmt"
	"strings"

	"dawang/internal/catalog"
	"dawang/internal/chatmsg"
	"dawang/internal/selection"
)

// Fixed ids of the opening messages.
const (
	IDGreeting    = "greeting"
	IDDescription = "description"
	IDGuide       = "guide"
	IDWelcome     = "welcome"
)

// QuickReply is a one-tap canned question.
type QuickReply struct {
	ID       string
	Label    string
	Question string
}

// Content is everything a chat session is seeded with.
type Content struct {
	Greeting         []chatmsg.Message
	ExampleQuestions []string
	QuickReplies     []QuickReply
}

// Resolve is pure. Message timestamps are left zero for the caller to stamp.
//
// A program without a descriptor still gets program-specific examples and
// quick replies, but the generic greeting.
func Resolve(st selection.State) Content {
	if st.Program == "" {
		return Content{
			Greeting:         genericGreeting(),
			ExampleQuestions: append([]string(nil), generalExamples...),
			QuickReplies:     append([]QuickReply(nil), generalQuickReplies...),
		}
	}

	greeting := genericGreeting()
	if id, ok := catalog.LookupProgram(st.Program); ok {
		if d, ok := descriptors[id]; ok {
			greeting = []chatmsg.Message{
				{ID: IDGreeting, Kind: chatmsg.KindBot, Content: d.greeting},
				{ID: IDDescription, Kind: chatmsg.KindInfo, Content: strings.Join(d.bullets, "\n")},
				{ID: IDGuide, Kind: chatmsg.KindBot, Content: guideText},
			}
		}
	}

	return Content{
		Greeting:         greeting,
		ExampleQuestions: programExamples(st.Department, st.Program),
		QuickReplies:     programQuickReplies(st.Department, st.Program),
	}
}

func genericGreeting() []chatmsg.Message {
	return []chatmsg.Message{
		{ID: IDWelcome, Kind: chatmsg.KindBot, Content: welcomeText},
		{ID: IDGuide, Kind: chatmsg.KindBot, Content: guideText},
	}
}

func programExamples(dept, program string) []string {
	overlap := fmt.Sprintf("%s 전공 중복 인정 되는 과목 알려주세요", program)
	if dept != "" {
		overlap = fmt.Sprintf("%s 학생이 %s 전공 할 때 중복 인정 되는 과목 알려주세요", dept, program)
	}
	return []string{
		fmt.Sprintf("%s 융합전공 졸업하려면 몇 학점 필요한가요?", program),
		fmt.Sprintf("%s 융합전공의 전공필수 과목이 뭐예요?", program),
		fmt.Sprintf("%s 융합전공은 어느 학과에서 개설되나요?", program),
		fmt.Sprintf("%s 융합전공 이수하면 무슨 학위를 받나요?", program),
		overlap,
	}
}

func programQuickReplies(dept, program string) []QuickReply {
	overlap := fmt.Sprintf("%s 전공 중복 인정되는 과목은?", program)
	if dept != "" {
		overlap = fmt.Sprintf("%s 학생이 %s 전공 할 때 중복 인정되는 과목은?", dept, program)
	}
	return []QuickReply{
		{ID: "requirements", Label: "졸업요건", Question: fmt.Sprintf("%s 융합전공의 졸업요건이 어떻게 되나요?", program)},
		{ID: "curriculum", Label: "교과목", Question: fmt.Sprintf("%s 융합전공에서 어떤 과목을 배우나요?", program)},
		{ID: "overlap", Label: "중복과목", Question: overlap},
		{ID: "professor", Label: "주임교수", Question: fmt.Sprintf("%s 융합전공 주임교수님이 누구예요?", program)},
	}
}
