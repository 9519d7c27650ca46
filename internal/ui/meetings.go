package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aida-console/internal/gateway"
)

type meetingsState int

const (
	meetingsLoading meetingsState = iota
	meetingsReady
	meetingsError
)

// meetingsMsg carries the outcome of one meetings fetch, tagged with the
// token the fetch was issued under.
type meetingsMsg struct {
	token    int
	meetings []gateway.Meeting
	err      error
}

// meetingsModel renders the upcoming-meetings panel. Every fetch replaces the
// panel wholesale; there is no incremental update and no identity tracking
// between refreshes. Fetches carry a monotonically increasing token so that
// only the newest issued request may update the panel.
type meetingsModel struct {
	gw      Gateway
	timeout time.Duration

	state    meetingsState
	meetings []gateway.Meeting
	errText  string
	token    int
}

// The model starts at token 1 in loading state: the startup fetch issued from
// Init runs under that token.
func newMeetingsModel(gw Gateway, timeout time.Duration) meetingsModel {
	return meetingsModel{gw: gw, timeout: timeout, state: meetingsLoading, token: 1}
}

// fetch puts the panel in its loading state and issues a request under a
// fresh token.
func (m meetingsModel) fetch() (meetingsModel, tea.Cmd) {
	m.token++
	m.state = meetingsLoading
	return m, m.issue()
}

// issue builds the command for the current token without advancing it.
func (m meetingsModel) issue() tea.Cmd {
	tok, gw, timeout := m.token, m.gw, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		meetings, err := gw.Meetings(ctx)
		return meetingsMsg{token: tok, meetings: meetings, err: err}
	}
}

// handleResult applies a fetch outcome unless a newer fetch has been issued
// since, in which case the stale result is discarded.
func (m meetingsModel) handleResult(msg meetingsMsg) meetingsModel {
	if msg.token != m.token {
		return m
	}
	if msg.err != nil {
		m.state = meetingsError
		m.errText = msg.err.Error()
		return m
	}
	m.state = meetingsReady
	m.meetings = msg.meetings
	return m
}

func (m meetingsModel) view() string {
	switch m.state {
	case meetingsLoading:
		return emptyStateStyle.Render("Loading...")
	case meetingsError:
		return errStyle.Render("Error: " + m.errText)
	}
	if len(m.meetings) == 0 {
		return emptyStateStyle.Render("No upcoming meetings.")
	}
	cards := make([]string, 0, len(m.meetings))
	for _, meeting := range m.meetings {
		cards = append(cards, renderMeetingCard(meeting))
	}
	return strings.Join(cards, "\n\n")
}

func renderMeetingCard(m gateway.Meeting) string {
	return cardTitleStyle.Render(m.Title) + "\n" +
		cardTimeStyle.Render(fmt.Sprintf("📅 %s (%dm)", m.StartTime, m.Duration))
}
