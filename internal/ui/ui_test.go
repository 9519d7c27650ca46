package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"aida-console/internal/gateway"
)

// fakeGateway records calls and serves scripted responses.
type fakeGateway struct {
	chatReply string
	chatErr   error
	chatCalls []string

	meetings      []gateway.Meeting
	meetingsErr   error
	meetingsCalls int

	emailErr   error
	emailCalls []gateway.EmailRequest

	healthErr error
}

func (f *fakeGateway) Chat(_ context.Context, message string) (string, error) {
	f.chatCalls = append(f.chatCalls, message)
	return f.chatReply, f.chatErr
}

func (f *fakeGateway) Meetings(_ context.Context) ([]gateway.Meeting, error) {
	f.meetingsCalls++
	return f.meetings, f.meetingsErr
}

func (f *fakeGateway) SendEmail(_ context.Context, req gateway.EmailRequest) error {
	f.emailCalls = append(f.emailCalls, req)
	return f.emailErr
}

func (f *fakeGateway) Health(_ context.Context) error {
	return f.healthErr
}

func newTestApp(t *testing.T, gw Gateway) App {
	t.Helper()
	app := New(gw, Options{RequestTimeout: time.Second, RefreshDelay: time.Millisecond})
	m, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(App)
}

// step feeds one message and returns the new app plus any produced command.
func step(t *testing.T, app App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	return m.(App), cmd
}

// run executes a command synchronously and feeds its message back in.
func run(t *testing.T, app App, cmd tea.Cmd) (App, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return step(t, app, cmd())
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
