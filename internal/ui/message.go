package ui

// loginResultMsg reports the outcome of a login or registration attempt.
type loginResultMsg struct {
	username   string
	ok         bool
	registered bool
	err        error
}

// statusMsg replaces the status line shown under the current view.
type statusMsg struct {
	text string
	err  error
}
