package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dawang/cmd/dawang/ui"
	"dawang/internal/chatmsg"
	"dawang/internal/funnel"
)

// =============================================================================
// VIEW RENDERING
// =============================================================================

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.funnel.Current() {
	case funnel.Start:
		body = m.renderStart()
	case funnel.ProgramSelect:
		body = m.renderProgramSelect()
	case funnel.ChatSession:
		body = m.renderChat()
	default:
		body = m.styles.Content.Render(m.list.View())
		if m.statusMsg != "" {
			body += "\n" + m.styles.Warning.Render("  "+m.statusMsg)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := " 다왕이 챗봇 "
	if prog := m.sel.Snapshot().Program; prog != "" && m.funnel.Current() == funnel.ChatSession {
		title += "· " + prog + " "
	}
	return m.styles.Header.Render(title) + " " + ui.Mascot(m.styles, m.timer.Current())
}

func (m Model) renderFooter() string {
	hints := []string{"ctrl+c 종료"}
	if m.funnel.Depth() > 1 {
		hints = append(hints, "esc 뒤로")
	}
	if m.funnel.ShortcutAvailable() {
		hints = append(hints, "ctrl+g 다왕이에게 바로 묻기")
	}
	if m.funnel.Current() == funnel.ChatSession {
		hints = append(hints, "alt+1~4 빠른 질문")
	}
	return m.styles.Footer.Render(strings.Join(hints, " · "))
}

func (m Model) renderStart() string {
	var sb strings.Builder
	sb.WriteString(ui.Logo(m.styles))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Bold.Render("충북대학교 다전공 안내 챗봇 다왕이다왕!"))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Prompt.Render("Enter") + m.styles.Muted.Render(" 를 눌러 시작하라왕"))
	return m.styles.Content.Render(sb.String())
}

func (m Model) renderProgramSelect() string {
	if m.loading {
		return m.styles.Content.Render(m.spinner.View() + " 전공 목록을 불러오는 중이다왕...")
	}
	if m.loadErr != nil {
		msg := m.styles.Error.Render("전공 목록을 불러오지 못했다왕... 😅") + "\n" +
			m.styles.Muted.Render("r 다시 시도 · esc 뒤로")
		return m.styles.Content.Render(msg)
	}
	if len(m.list.Items()) == 0 {
		return m.styles.Content.Render(m.list.Title + "\n\n" + m.styles.Muted.Render("참여할 수 있는 융합전공이 없다왕."))
	}
	return m.styles.Content.Render(m.list.View())
}

func (m Model) renderChat() string {
	if m.session == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")

	if m.session.Busy() {
		sb.WriteString(m.spinner.View() + m.styles.Muted.Render(" 다왕이가 생각하는 중..."))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.RenderDivider(m.viewport.Width))
	sb.WriteString("\n")

	capsule := m.styles.Capsule
	if m.session.Busy() {
		capsule = m.styles.Disabled
	}
	replies := m.session.QuickReplies()
	caps := make([]string, 0, len(replies))
	for i, qr := range replies {
		caps = append(caps, capsule.Render(fmt.Sprintf("%d %s", i+1, qr.Label)))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, caps...))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	return sb.String()
}

// renderHistory draws the transcript: user lines on the right rail, bot
// answers through the markdown renderer, info messages as bullets.
func (m Model) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.session.Messages() {
		switch msg.Kind {
		case chatmsg.KindUser:
			sb.WriteString(m.styles.Bold.Foreground(m.styles.Theme.Primary).MarginTop(1).Render("나") + "\n")
			sb.WriteString(m.styles.UserBubble.Render(msg.Content))
			sb.WriteString("\n\n")

		case chatmsg.KindInfo:
			lines := strings.Split(msg.Content, "\n")
			for i, line := range lines {
				lines[i] = m.styles.Bullet.Render("•") + " " + line
			}
			sb.WriteString(m.styles.InfoCard.Render(strings.Join(lines, "\n")))
			sb.WriteString("\n\n")

		default:
			name := m.styles.Bold.Foreground(m.styles.Theme.Accent).MarginTop(1).Render("다왕이")
			if msg.Label == chatmsg.LabelUnmatched {
				name += " " + m.styles.Badge.Render("범위 밖 질문")
			}
			sb.WriteString(name + "\n")
			sb.WriteString(m.styles.BotBubble.Render(strings.TrimRight(m.safeRenderMarkdown(msg.Content), "\n")))
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}
