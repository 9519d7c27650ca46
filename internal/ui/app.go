// Package ui is the terminal front end: a chat transcript, an
// upcoming-meetings panel and an email compose modal, all driven by the
// assistant gateway. All state changes happen on Bubble Tea's single update
// goroutine; network calls run as commands and come back as messages.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"aida-console/internal/gateway"
	"aida-console/internal/transcript"
	"aida-console/internal/trigger"
)

// Gateway is the slice of the gateway client the UI depends on.
type Gateway interface {
	Chat(ctx context.Context, message string) (string, error)
	Meetings(ctx context.Context) ([]gateway.Meeting, error)
	SendEmail(ctx context.Context, req gateway.EmailRequest) error
	Health(ctx context.Context) error
}

type healthMsg struct {
	err error
}

type Options struct {
	Triggers       *trigger.Matcher
	RequestTimeout time.Duration
	RefreshDelay   time.Duration
	// MaxTranscript bounds the in-memory transcript; 0 keeps everything.
	MaxTranscript int
}

// App composes the three components. Each component owns only its own
// widgets; the app routes events and holds the layout.
type App struct {
	chat     chatModel
	meetings meetingsModel
	email    emailModel

	timeout       time.Duration
	gw            Gateway
	healthChecked bool
	gatewayUp     bool

	width  int
	height int
}

func New(gw Gateway, opts Options) App {
	if opts.Triggers == nil {
		opts.Triggers = trigger.NewMatcher()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 20 * time.Second
	}
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = time.Second
	}
	log := transcript.New(opts.MaxTranscript)

	return App{
		chat:     newChatModel(gw, log, opts.Triggers, opts.RequestTimeout, opts.RefreshDelay),
		meetings: newMeetingsModel(gw, opts.RequestTimeout),
		email:    newEmailModel(gw, opts.RequestTimeout),
		timeout:  opts.RequestTimeout,
		gw:       gw,
		width:    100,
		height:   30,
	}
}

func (a App) Init() tea.Cmd {
	gw, timeout := a.gw, a.timeout
	healthCmd := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return healthMsg{err: gw.Health(ctx)}
	}
	return tea.Batch(a.meetings.issue(), healthCmd, textinput.Blink)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
		return a, nil

	case chatReplyMsg:
		a.chat, cmd = a.chat.handleReply(msg)
		return a, cmd

	case refreshDueMsg:
		if !a.chat.currentRefresh(msg.gen) {
			return a, nil
		}
		a.meetings, cmd = a.meetings.fetch()
		return a, cmd

	case meetingsMsg:
		a.meetings = a.meetings.handleResult(msg)
		return a, nil

	case emailResultMsg:
		a.email = a.email.handleResult(msg)
		return a, nil

	case healthMsg:
		a.healthChecked = true
		a.gatewayUp = msg.err == nil
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Cursor blinks and other widget housekeeping.
	a.chat, cmd = a.chat.updateWidgets(msg)
	var emailCmd tea.Cmd
	a.email, emailCmd = a.email.updateFields(msg)
	return a, tea.Batch(cmd, emailCmd)
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	// A visible notice blocks everything else until acknowledged.
	if a.email.notice != "" {
		a.email = a.email.dismissNotice()
		return a, nil
	}

	if a.email.visible() {
		a.email, cmd = a.email.handleKey(msg)
		return a, cmd
	}

	switch msg.Type {
	case tea.KeyEnter:
		a.chat, cmd = a.chat.send()
		return a, cmd
	case tea.KeyCtrlR:
		a.meetings, cmd = a.meetings.fetch()
		return a, cmd
	case tea.KeyCtrlE:
		a.email, cmd = a.email.open()
		return a, cmd
	case tea.KeyUp, tea.KeyDown:
		a.chat = a.chat.recall(msg.Type)
		return a, nil
	}

	a.chat, cmd = a.chat.updateWidgets(msg)
	return a, cmd
}

const meetingsPanelWidth = 34

func (a *App) layout() {
	chatWidth := a.width - meetingsPanelWidth - 6
	if chatWidth < 20 {
		chatWidth = 20
	}
	chatHeight := a.height - 7
	if chatHeight < 5 {
		chatHeight = 5
	}
	a.chat.setSize(chatWidth, chatHeight)
	a.email.setWidth(min(a.width-12, 60))
}

func (a App) View() string {
	if a.email.notice != "" {
		return a.overlay(noticeStyle.Render(a.email.notice + "\n\n" + statusBarStyle.Render("press any key")))
	}
	if a.email.visible() {
		return a.overlay(a.email.view())
	}

	chatPanel := panelStyle.Render(titleStyle.Render("Assistant") + "\n" + a.chat.view())
	meetingsPanel := panelStyle.Width(meetingsPanelWidth).Render(
		titleStyle.Render("Upcoming Meetings") + "\n\n" + a.meetings.view())

	body := lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, " ", meetingsPanel)
	return body + "\n" + a.statusLine()
}

func (a App) overlay(box string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, box)
}

func (a App) statusLine() string {
	status := statusBarStyle.Render("gateway: ")
	switch {
	case !a.healthChecked:
		status += statusBarStyle.Render("checking...")
	case a.gatewayUp:
		status += statusUpStyle.Render("connected")
	default:
		status += statusDownStyle.Render("unreachable")
	}
	return status + statusBarStyle.Render("  ·  enter send · ctrl+r refresh meetings · ctrl+e email · ctrl+c quit")
}
