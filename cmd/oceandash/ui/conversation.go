package ui

import (
	"fmt"
	"strings"

	"oceandash/internal/conversation"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// MarkdownRenderer renders assistant text. *glamour.TermRenderer satisfies it.
type MarkdownRenderer interface {
	Render(string) (string, error)
}

// NewMarkdownRenderer builds a glamour renderer for the theme and wrap width.
func NewMarkdownRenderer(width int, dark bool) (*glamour.TermRenderer, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(20, width)),
	)
}

// ConversationView is everything RenderConversation needs besides the state.
type ConversationView struct {
	Styles   Styles
	Width    int
	Markdown MarkdownRenderer // nil renders plain text
	Spinner  string           // current spinner frame for the typing line
}

// RenderConversation renders the history as chat bubbles. Suggestion chips
// are numbered on the latest message that carries any, since only those are
// selectable.
func RenderConversation(state conversation.State, v ConversationView) string {
	var sb strings.Builder
	styles := v.Styles

	chipOwner := -1
	for i := len(state.History) - 1; i >= 0; i-- {
		if state.History[i].HasSuggestions() {
			chipOwner = i
			break
		}
	}

	for i, msg := range state.History {
		stamp := styles.Muted.Render(msg.Timestamp.Format("15:04"))
		if msg.IsUser() {
			header := styles.UserLabel.Render("You") + " " + stamp
			bubble := styles.UserBubble.MaxWidth(max(10, v.Width-2)).Render(msg.Content)
			sb.WriteString(lipgloss.PlaceHorizontal(v.Width, lipgloss.Right, header))
			sb.WriteString("\n")
			sb.WriteString(lipgloss.PlaceHorizontal(v.Width, lipgloss.Right, bubble))
			sb.WriteString("\n\n")
			continue
		}

		sb.WriteString(styles.AssistantLabel.Render("Assistant") + " " + stamp)
		sb.WriteString("\n")
		body := strings.TrimRight(safeRenderMarkdown(v.Markdown, msg.Content), "\n")
		sb.WriteString(styles.AssistantBody.Width(max(10, v.Width-2)).Render(body))
		sb.WriteString("\n")
		if msg.HasSuggestions() {
			sb.WriteString(renderChips(msg.Suggestions, i == chipOwner, styles))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if state.Pending {
		sb.WriteString(styles.Typing.Render(strings.TrimSpace(v.Spinner + " Assistant is typing...")))
		sb.WriteString("\n")
	}
	if state.Listening {
		sb.WriteString(styles.Listening.Render("● Listening... press ctrl+v to stop"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderChips(suggestions []string, numbered bool, styles Styles) string {
	chips := make([]string, len(suggestions))
	for i, s := range suggestions {
		label := s
		if numbered {
			label = fmt.Sprintf("%d %s", i+1, s)
		}
		style := styles.Chip
		if !numbered {
			style = style.Foreground(styles.Theme.Muted)
		}
		chips[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

// safeRenderMarkdown renders markdown with panic recovery
func safeRenderMarkdown(r MarkdownRenderer, content string) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = content
		}
	}()

	if r != nil && content != "" {
		rendered, err := r.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

// RenderQuickActions renders the quick action cards as a single line.
func RenderQuickActions(labels []string, styles Styles) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = styles.QuickAction.Render(fmt.Sprintf("F%d %s", i+1, l))
	}
	return strings.Join(parts, styles.Muted.Render("·"))
}
