package ui

import (
	"errors"
	"testing"
	"time"

	"oceandash/internal/conversation"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func testConversation() conversation.State {
	return conversation.State{
		History: []conversation.Message{
			{ID: "1", Author: conversation.AuthorAssistant, Content: "Hello! I'm your analytics assistant.", Timestamp: t0,
				Suggestions: []string{"Analyze recent trends", "Compare datasets"}},
			{ID: "2", Author: conversation.AuthorUser, Content: "Show trends", Timestamp: t0},
			{ID: "3", Author: conversation.AuthorAssistant, Content: "Trends look stable.", Timestamp: t0,
				Suggestions: []string{"Tell me more"}},
		},
	}
}

func TestRenderConversation(t *testing.T) {
	out := RenderConversation(testConversation(), ConversationView{Styles: DefaultStyles(), Width: 60})

	assert.Contains(t, out, "You")
	assert.Contains(t, out, "Show trends")
	assert.Contains(t, out, "Assistant")
	assert.Contains(t, out, "09:30")
	assert.Contains(t, out, "1 Tell me more", "latest chips are numbered")
	assert.Contains(t, out, "Analyze recent trends")
	assert.NotContains(t, out, "1 Analyze recent trends", "older chips are not selectable")
	assert.NotContains(t, out, "typing")
}

func TestRenderConversation_Indicators(t *testing.T) {
	s := testConversation()
	s.Pending = true
	s.Listening = true

	out := RenderConversation(s, ConversationView{Styles: DefaultStyles(), Width: 60, Spinner: "⣾"})
	assert.Contains(t, out, "⣾ Assistant is typing...")
	assert.Contains(t, out, "Listening")
}

type fakeMarkdown struct {
	out   string
	err   error
	panic bool
}

func (f fakeMarkdown) Render(string) (string, error) {
	if f.panic {
		panic("renderer exploded")
	}
	return f.out, f.err
}

func TestRenderConversation_Markdown(t *testing.T) {
	s := testConversation()

	out := RenderConversation(s, ConversationView{Styles: DefaultStyles(), Width: 60, Markdown: fakeMarkdown{out: "RENDERED"}})
	assert.Contains(t, out, "RENDERED")

	out = RenderConversation(s, ConversationView{Styles: DefaultStyles(), Width: 60, Markdown: fakeMarkdown{err: errors.New("bad")}})
	assert.Contains(t, out, "Trends look stable.")

	assert.NotPanics(t, func() {
		out = RenderConversation(s, ConversationView{Styles: DefaultStyles(), Width: 60, Markdown: fakeMarkdown{panic: true}})
	})
	assert.Contains(t, out, "Trends look stable.")
}

func TestNewMarkdownRenderer(t *testing.T) {
	r, err := NewMarkdownRenderer(60, true)
	assert.NoError(t, err)
	out, err := r.Render("**bold** text")
	assert.NoError(t, err)
	assert.Contains(t, out, "bold")
}

func TestRenderQuickActions(t *testing.T) {
	out := RenderQuickActions([]string{"Trend Analysis", "Data Comparison"}, DefaultStyles())
	assert.Contains(t, out, "F1 Trend Analysis")
	assert.Contains(t, out, "F2 Data Comparison")
}
