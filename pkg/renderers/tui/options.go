package tui

import "github.com/AlecAivazis/survey/v2/terminal"

// Theme holds plain-text prefixes for prompt, info and error messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPromptDriver replaces the survey driver. A nil driver is ignored.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithStdio sets the streams of the default survey driver. It has no effect
// together with WithPromptDriver.
func WithStdio(stdio terminal.Stdio) Option {
	return func(r *Renderer) {
		r.stdio = stdio
	}
}

// WithTheme sets the message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
