package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// authMode tags which credential form is shown.
type authMode int

const (
	loginMode authMode = iota
	signupMode
)

// authForm is the login/signup form: a stack of inputs, an in-flight flag
// that disables resubmission, and a notice line for blocking
// success/failure messages.
type authForm struct {
	mode   authMode
	labels []string
	inputs []textinput.Model
	focus  int
	busy   bool
	notice string
	failed bool
}

func newAuthForm(mode authMode) authForm {
	labels := []string{"Email", "Password"}
	if mode == signupMode {
		labels = []string{"Username", "Email", "Password"}
	}

	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = "Enter " + strings.ToLower(label)
		in.CharLimit = 100
		in.Width = 32
		if label == "Password" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		inputs[i] = in
	}
	inputs[0].Focus()

	return authForm{mode: mode, labels: labels, inputs: inputs}
}

// values returns the form fields in declaration order.
func (f authForm) values() []string {
	vals := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		vals[i] = strings.TrimSpace(in.Value())
	}
	return vals
}

func (f authForm) complete() bool {
	for _, v := range f.values() {
		if v == "" {
			return false
		}
	}
	return true
}

func (f *authForm) cycleFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = wrap(f.focus+delta, len(f.inputs))
	return f.inputs[f.focus].Focus()
}

// Update routes key input into the form. The submit flag is set when the
// user submits a complete form and no submission is already in flight.
func (f authForm) Update(msg tea.KeyMsg) (authForm, bool, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return f, false, f.cycleFocus(1)

	case "shift+tab", "up":
		return f, false, f.cycleFocus(-1)

	case "enter":
		if f.busy {
			return f, false, nil
		}
		if !f.complete() {
			f.notice = "All fields are required"
			f.failed = true
			return f, false, nil
		}
		f.busy = true
		f.notice = ""
		f.failed = false
		return f, true, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, false, cmd
}

func (f authForm) buttonLabel() string {
	switch {
	case f.mode == loginMode && f.busy:
		return "Logging in..."
	case f.mode == loginMode:
		return "Login"
	case f.busy:
		return "Signing up..."
	default:
		return "Sign Up"
	}
}

func (f authForm) View() string {
	var b strings.Builder

	title := "Welcome Back"
	hint := "No account? esc, then u to sign up."
	if f.mode == signupMode {
		title = "Create Your Account"
		hint = "Already have an account? esc, then l to login."
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", fieldStyle.Render(f.labels[i]), in.View()))
	}

	button := fmt.Sprintf("[ %s ]", f.buttonLabel())
	if f.busy {
		b.WriteString(styles.help.Render(button))
	} else {
		b.WriteString(styles.ok.Render(button))
	}
	b.WriteString("\n")

	if f.notice != "" {
		b.WriteString("\n")
		if f.failed {
			b.WriteString(styles.err.Render(f.notice))
		} else {
			b.WriteString(styles.ok.Render(f.notice))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render(hint + " esc: back"))

	return b.String()
}
