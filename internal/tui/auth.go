package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gqtodo/gqtodo/internal/api"
)

type authMode int

const (
	modeSignup authMode = iota // default, same as the signup-first flow
	modeLogin
)

// field indices into authModel.inputs
const (
	fieldName = iota
	fieldEmail
	fieldPassword
	fieldCount
)

var fieldLabels = [fieldCount]string{"Name", "Email", "Password"}

// authDoneMsg carries the result of a signup or login call.
type authDoneMsg struct {
	token string
	err   error
}

// logoutMsg asks the root model to drop the session.
type logoutMsg struct{}

type authModel struct {
	mode       authMode
	inputs     [fieldCount]textinput.Model
	focus      int
	fieldErrs  [fieldCount]string
	serverErr  string
	submitting bool
	spin       spinner.Model
}

func newAuthModel() authModel {
	m := authModel{spin: spinner.New(spinner.WithSpinner(spinner.Dot))}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		m.inputs[i] = ti
	}
	m.inputs[fieldName].Placeholder = "Ada Lovelace"
	m.inputs[fieldEmail].Placeholder = "ada@example.com"
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'
	m.focus = m.firstField()
	m.inputs[m.focus].Focus()
	return m
}

func (m authModel) enter() tea.Cmd { return textinput.Blink }

// firstField is the topmost visible field for the active mode.
func (m authModel) firstField() int {
	if m.mode == modeLogin {
		return fieldEmail
	}
	return fieldName
}

func (m authModel) requiredFields() []int {
	if m.mode == modeLogin {
		return []int{fieldEmail, fieldPassword}
	}
	return []int{fieldName, fieldEmail, fieldPassword}
}

func (m authModel) update(msg tea.Msg, client *api.Client) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.serverErr = msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, tea.Quit

		case "ctrl+t":
			// switch Signup <-> Login; entered values survive, any
			// in-flight result context is discarded
			if m.mode == modeSignup {
				m.mode = modeLogin
			} else {
				m.mode = modeSignup
			}
			m.submitting = false
			m.serverErr = ""
			m.fieldErrs = [fieldCount]string{}
			return m.setFocus(m.firstField()), nil

		case "tab", "down":
			return m.cycleFocus(1), nil

		case "shift+tab", "up":
			return m.cycleFocus(-1), nil

		case "enter":
			return m.submit(client)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authModel) cycleFocus(dir int) authModel {
	fields := m.requiredFields()
	cur := 0
	for i, f := range fields {
		if f == m.focus {
			cur = i
		}
	}
	next := (cur + dir + len(fields)) % len(fields)
	return m.setFocus(fields[next])
}

func (m authModel) setFocus(f int) authModel {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	m.inputs[f].Focus()
	return m
}

// submit validates the active mode's required fields and fires exactly one
// remote operation. Submission is suppressed while any required field is
// empty; in-flight submissions are not guarded against.
func (m authModel) submit(client *api.Client) (authModel, tea.Cmd) {
	m.fieldErrs = [fieldCount]string{}
	m.serverErr = ""

	ok := true
	for _, f := range m.requiredFields() {
		if strings.TrimSpace(m.inputs[f].Value()) == "" {
			m.fieldErrs[f] = fieldLabels[f] + " is required"
			ok = false
		}
	}
	if !ok {
		return m, nil
	}

	mode := m.mode
	name := strings.TrimSpace(m.inputs[fieldName].Value())
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()

	m.submitting = true
	call := func() tea.Msg {
		if mode == modeLogin {
			tok, err := client.Login(context.Background(), email, password)
			return authDoneMsg{token: tok, err: err}
		}
		tok, err := client.Signup(context.Background(), name, email, password)
		return authDoneMsg{token: tok, err: err}
	}
	return m, tea.Batch(call, m.spin.Tick)
}

func (m authModel) view(width, height int) string {
	var b strings.Builder

	title := "Sign up"
	other := "log in"
	if m.mode == modeLogin {
		title = "Log in"
		other = "sign up"
	}
	b.WriteString(titleStyle.Render(title) + "\n\n")

	for _, f := range m.requiredFields() {
		label := labelStyle.Render(fieldLabels[f])
		if f == m.focus {
			label = focusedStyle.Render(labelStyle.Render(fieldLabels[f]))
		}
		b.WriteString(label + m.inputs[f].View() + "\n")
		if m.fieldErrs[f] != "" {
			b.WriteString(errorStyle.Render(m.fieldErrs[f]) + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString(m.spin.View() + mutedStyle.Render("submitting...") + "\n")
	case m.serverErr != "":
		b.WriteString(errorStyle.Render(m.serverErr) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(
		"enter submit • tab next field • ctrl+t "+other+" • esc quit"))

	return panelString(b.String())
}
