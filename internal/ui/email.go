package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"aida-console/internal/gateway"
)

type modalState int

const (
	modalHidden modalState = iota
	modalVisible
)

type submitState int

const (
	submitIdle submitState = iota
	submitSending
)

const (
	fieldTo = iota
	fieldSubject
	fieldBody
	fieldCount
)

type emailResultMsg struct {
	err error
}

// emailModel manages the compose modal: its visibility, the submit flow, and
// the blocking notice that reports the outcome. A failed submission keeps the
// modal open with the entered values intact.
type emailModel struct {
	gw      Gateway
	timeout time.Duration

	state  modalState
	submit submitState

	to      textinput.Model
	subject textinput.Model
	body    textarea.Model
	focus   int

	// A non-empty notice blocks all other input until dismissed by a key.
	notice string
}

func newEmailModel(gw Gateway, timeout time.Duration) emailModel {
	to := textinput.New()
	to.Placeholder = "recipient@example.com"
	to.Prompt = ""

	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Write your message..."
	body.SetHeight(6)

	return emailModel{
		gw:      gw,
		timeout: timeout,
		to:      to,
		subject: subject,
		body:    body,
	}
}

func (m emailModel) open() (emailModel, tea.Cmd) {
	m.state = modalVisible
	m.focus = fieldTo
	return m.applyFocus()
}

func (m emailModel) close() emailModel {
	m.state = modalHidden
	m.blurAll()
	return m
}

func (m emailModel) visible() bool {
	return m.state == modalVisible
}

// submitDraft reads the fields as entered, with no client-side validation,
// and posts the draft. The submit control is locked until the result arrives.
func (m emailModel) submitDraft() (emailModel, tea.Cmd) {
	if m.submit == submitSending {
		return m, nil
	}
	m.submit = submitSending

	req := gateway.EmailRequest{
		To:      m.to.Value(),
		Subject: m.subject.Value(),
		Body:    m.body.Value(),
	}
	gw, timeout := m.gw, m.timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return emailResultMsg{err: gw.SendEmail(ctx, req)}
	}
}

// handleResult restores the submit control on every path. Success hides the
// modal and clears the draft; any failure leaves both untouched so the user
// can correct and resend.
func (m emailModel) handleResult(msg emailResultMsg) emailModel {
	m.submit = submitIdle

	if msg.err == nil {
		m.notice = "✅ Email sent successfully!"
		m.state = modalHidden
		m.to.Reset()
		m.subject.Reset()
		m.body.Reset()
		m.blurAll()
		return m
	}

	var serr *gateway.StatusError
	if errors.As(msg.err, &serr) {
		detail := serr.Detail
		if detail == "" {
			detail = "Failed to send"
		}
		m.notice = "❌ Error: " + detail
	} else {
		m.notice = "❌ Connection Error: " + msg.err.Error()
	}
	return m
}

func (m emailModel) dismissNotice() emailModel {
	m.notice = ""
	return m
}

func (m emailModel) handleKey(msg tea.KeyMsg) (emailModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.close(), nil
	case tea.KeyCtrlS:
		return m.submitDraft()
	case tea.KeyTab:
		m.focus = (m.focus + 1) % fieldCount
		return m.applyFocus()
	case tea.KeyShiftTab:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m.applyFocus()
	case tea.KeyEnter:
		// Enter advances through the single-line fields; in the body it
		// falls through and inserts a newline.
		if m.focus != fieldBody {
			m.focus++
			return m.applyFocus()
		}
	}
	return m.updateFields(msg)
}

func (m emailModel) updateFields(msg tea.Msg) (emailModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.to, cmd = m.to.Update(msg)
	cmds = append(cmds, cmd)
	m.subject, cmd = m.subject.Update(msg)
	cmds = append(cmds, cmd)
	m.body, cmd = m.body.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m emailModel) applyFocus() (emailModel, tea.Cmd) {
	m.blurAll()
	switch m.focus {
	case fieldTo:
		return m, m.to.Focus()
	case fieldSubject:
		return m, m.subject.Focus()
	default:
		return m, m.body.Focus()
	}
}

func (m *emailModel) blurAll() {
	m.to.Blur()
	m.subject.Blur()
	m.body.Blur()
}

func (m *emailModel) setWidth(width int) {
	m.to.Width = width
	m.subject.Width = width
	m.body.SetWidth(width)
}

func (m emailModel) submitLabel() string {
	if m.submit == submitSending {
		return "Sending..."
	}
	return "Send Email"
}

func (m emailModel) view() string {
	content := titleStyle.Render("Compose Email") + "\n\n" +
		labelStyle.Render("To") + "\n" + m.to.View() + "\n" +
		labelStyle.Render("Subject") + "\n" + m.subject.View() + "\n" +
		labelStyle.Render("Body") + "\n" + m.body.View() + "\n\n" +
		"[ " + m.submitLabel() + " ]  " +
		statusBarStyle.Render("ctrl+s send · esc close · tab next field")
	return modalStyle.Render(content)
}
