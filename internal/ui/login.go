package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

// loginForm collects a username and password, plus a confirmation when registering.
type loginForm struct {
	inputs      []textinput.Model
	focus       int
	registering bool
}

func newLoginForm() loginForm {
	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 64
		in.Prompt = "> "
		inputs[i] = in
	}

	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldConfirm].Placeholder = "confirm password"
	inputs[fieldConfirm].EchoMode = textinput.EchoPassword

	f := loginForm{inputs: inputs}
	f.setFocus(fieldUsername)
	return f
}

func (f loginForm) username() string { return strings.TrimSpace(f.inputs[fieldUsername].Value()) }
func (f loginForm) password() string { return f.inputs[fieldPassword].Value() }
func (f loginForm) confirm() string  { return f.inputs[fieldConfirm].Value() }

// fieldCount is the number of inputs in use for the current mode.
func (f loginForm) fieldCount() int {
	if f.registering {
		return 3
	}
	return 2
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	for j := range f.inputs {
		if j == i {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *loginForm) next() { f.setFocus((f.focus + 1) % f.fieldCount()) }
func (f *loginForm) prev() { f.setFocus((f.focus + f.fieldCount() - 1) % f.fieldCount()) }

func (f *loginForm) toggleMode() {
	f.registering = !f.registering
	f.inputs[fieldConfirm].Reset()
	if f.focus >= f.fieldCount() {
		f.setFocus(fieldUsername)
	}
}

// clearPasswords empties the secret fields after a submit so they do not linger on screen.
func (f *loginForm) clearPasswords() {
	f.inputs[fieldPassword].Reset()
	f.inputs[fieldConfirm].Reset()
	f.setFocus(fieldPassword)
}

func (f *loginForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f loginForm) view() string {
	var b strings.Builder
	for i := 0; i < f.fieldCount(); i++ {
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	return b.String()
}
