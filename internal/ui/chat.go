package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aida-console/internal/transcript"
	"aida-console/internal/trigger"
)

type inputState int

const (
	inputEnabled inputState = iota
	inputDisabled
)

// chatReplyMsg carries the outcome of one chat request.
type chatReplyMsg struct {
	reply string
	err   error
}

// refreshDueMsg fires when a deferred post-chat meetings refresh comes due.
// Ticks from a superseded send are recognized by their generation and dropped.
type refreshDueMsg struct {
	gen int
}

// chatModel owns the send flow: it renders the user's message, shows a single
// in-flight placeholder, reconciles it into a reply or a warning, and always
// hands the input back to the user.
type chatModel struct {
	gw           Gateway
	log          *transcript.Log
	triggers     *trigger.Matcher
	timeout      time.Duration
	refreshDelay time.Duration

	input    textinput.Model
	viewport viewport.Model

	state          inputState
	waiting        bool // exactly one placeholder is visible while true
	pendingRefresh bool
	refreshGen     int

	// Recall of previously sent inputs, newest last.
	history []string
	histPos int
}

func newChatModel(gw Gateway, log *transcript.Log, triggers *trigger.Matcher, timeout, refreshDelay time.Duration) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask your assistant..."
	ti.Prompt = "> "
	ti.CharLimit = 0
	ti.Focus()

	return chatModel{
		gw:           gw,
		log:          log,
		triggers:     triggers,
		timeout:      timeout,
		refreshDelay: refreshDelay,
		input:        ti,
		viewport:     viewport.New(80, 20),
		state:        inputEnabled,
	}
}

// send starts the chat flow for the current input. Empty or whitespace-only
// input is a no-op: no transcript change, no request.
func (m chatModel) send() (chatModel, tea.Cmd) {
	if m.state == inputDisabled {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.log.Append(transcript.Message{Role: transcript.RoleUser, Text: text})
	m.input.SetValue("")
	m.input.Blur()
	m.state = inputDisabled
	m.waiting = true
	m.pendingRefresh = m.triggers.Match(text)
	m.history = append(m.history, text)
	m.histPos = len(m.history)
	m.syncViewport()

	gw, timeout := m.gw, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		reply, err := gw.Chat(ctx, text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// handleReply removes the placeholder, renders the outcome bubble and
// re-enables the input. It runs on every exit path of the request, so the
// chat view can never be left waiting.
func (m chatModel) handleReply(msg chatReplyMsg) (chatModel, tea.Cmd) {
	m.waiting = false

	switch {
	case msg.err != nil:
		m.log.Append(transcript.Message{
			Role: transcript.RoleAssistant,
			Text: "⚠️ Connection Error: " + msg.err.Error(),
		})
	case msg.reply != "":
		m.log.Append(transcript.Message{Role: transcript.RoleAssistant, Text: msg.reply})
	default:
		m.log.Append(transcript.Message{
			Role: transcript.RoleAssistant,
			Text: "⚠️ Error: No response from agent.",
		})
	}

	m.state = inputEnabled
	m.input.Focus()
	m.syncViewport()

	// The refresh is scheduled regardless of the chat outcome; it is a
	// heuristic, not a confirmation that the gateway changed anything.
	if m.pendingRefresh {
		m.pendingRefresh = false
		m.refreshGen++
		gen := m.refreshGen
		return m, tea.Tick(m.refreshDelay, func(time.Time) tea.Msg {
			return refreshDueMsg{gen: gen}
		})
	}
	return m, nil
}

// currentRefresh reports whether a due tick belongs to the latest scheduled
// refresh. Stale generations were superseded and are dropped.
func (m chatModel) currentRefresh(gen int) bool {
	return gen == m.refreshGen
}

func (m chatModel) recall(key tea.KeyType) chatModel {
	if m.state == inputDisabled || len(m.history) == 0 {
		return m
	}
	switch key {
	case tea.KeyUp:
		if m.histPos > 0 {
			m.histPos--
			m.input.SetValue(m.history[m.histPos])
			m.input.CursorEnd()
		}
	case tea.KeyDown:
		if m.histPos < len(m.history)-1 {
			m.histPos++
			m.input.SetValue(m.history[m.histPos])
			m.input.CursorEnd()
		} else if m.histPos == len(m.history)-1 {
			m.histPos = len(m.history)
			m.input.SetValue("")
		}
	}
	return m
}

func (m chatModel) updateWidgets(msg tea.Msg) (chatModel, tea.Cmd) {
	var cmd tea.Cmd
	if _, isKey := msg.(tea.KeyMsg); isKey {
		// Keys belong to the input while it accepts text; while a request is
		// in flight they scroll the transcript instead.
		if m.state == inputEnabled {
			m.input, cmd = m.input.Update(msg)
		} else {
			m.viewport, cmd = m.viewport.Update(msg)
		}
		return m, cmd
	}
	var cmds []tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *chatModel) setSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.input.Width = width - len(m.input.Prompt) - 1
	m.syncViewport()
}

// syncViewport re-renders the transcript and scrolls to the latest entry.
func (m *chatModel) syncViewport() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m chatModel) renderTranscript() string {
	width := m.viewport.Width
	var lines []string
	for _, msg := range m.log.All() {
		lines = append(lines, renderBubble(msg, width))
	}
	if m.waiting {
		lines = append(lines, placeholderStyle.Render("Typing..."))
	}
	return strings.Join(lines, "\n")
}

func renderBubble(msg transcript.Message, width int) string {
	maxWidth := width * 3 / 4
	if maxWidth < 10 {
		maxWidth = width
	}
	style := assistantBubbleStyle
	if msg.Role == transcript.RoleUser {
		style = userBubbleStyle
	}
	if lipgloss.Width(msg.Text) > maxWidth {
		style = style.Width(maxWidth)
	}
	bubble := style.Render(msg.Text)
	if msg.Role == transcript.RoleUser {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	return bubble
}

func (m chatModel) view() string {
	return m.viewport.View() + "\n" + m.input.View()
}
