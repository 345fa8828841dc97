package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// TextPrompt asks for one line. Check, when set, rejects answers before the
// prompt returns.
type TextPrompt struct {
	Message string
	Default string
	Help    string
	Check   func(string) error
}

// YesNoPrompt asks a boolean question.
type YesNoPrompt struct {
	Message string
	Default bool
	Help    string
}

// ChoicePrompt asks for one of Options. Selected is the preselected index;
// out of range means no preselection.
type ChoicePrompt struct {
	Message  string
	Options  []string
	Selected int
	Help     string
	PageSize int
}

// MultilinePrompt asks for free text spanning several lines.
type MultilinePrompt struct {
	Message string
	Default string
	Help    string
}

// PromptDriver asks single questions. Renderer decides which question fits a
// row; the driver only talks to the terminal.
type PromptDriver interface {
	Text(ctx context.Context, p TextPrompt) (string, error)
	Secret(ctx context.Context, p TextPrompt) (string, error)
	YesNo(ctx context.Context, p YesNoPrompt) (bool, error)
	Choose(ctx context.Context, p ChoicePrompt) (int, error)
	Multiline(ctx context.Context, p MultilinePrompt) (string, error)
	Notify(ctx context.Context, msg string) error
}

// SurveyDriver is the PromptDriver backed by survey.
type SurveyDriver struct {
	stdio terminal.Stdio
}

// NewSurveyDriver binds survey to stdio. Missing streams fall back to the
// process streams.
func NewSurveyDriver(stdio terminal.Stdio) *SurveyDriver {
	if stdio.In == nil {
		stdio.In = os.Stdin
	}
	if stdio.Out == nil {
		stdio.Out = os.Stdout
	}
	if stdio.Err == nil {
		stdio.Err = os.Stderr
	}
	return &SurveyDriver{stdio: stdio}
}

func (d *SurveyDriver) Text(ctx context.Context, p TextPrompt) (string, error) {
	var answer string
	prompt := &survey.Input{Message: p.Message, Default: p.Default, Help: p.Help}
	if err := d.ask(ctx, prompt, &answer, p.Check); err != nil {
		return "", err
	}
	return answer, nil
}

func (d *SurveyDriver) Secret(ctx context.Context, p TextPrompt) (string, error) {
	var answer string
	prompt := &survey.Password{Message: p.Message, Help: p.Help}
	if err := d.ask(ctx, prompt, &answer, p.Check); err != nil {
		return "", err
	}
	// Password prompts have no default; an empty answer keeps the current secret.
	if answer == "" {
		answer = p.Default
	}
	return answer, nil
}

func (d *SurveyDriver) YesNo(ctx context.Context, p YesNoPrompt) (bool, error) {
	var answer bool
	prompt := &survey.Confirm{Message: p.Message, Default: p.Default, Help: p.Help}
	if err := d.ask(ctx, prompt, &answer, nil); err != nil {
		return false, err
	}
	return answer, nil
}

func (d *SurveyDriver) Choose(ctx context.Context, p ChoicePrompt) (int, error) {
	if len(p.Options) == 0 {
		return -1, ErrNoOptions
	}
	prompt := &survey.Select{Message: p.Message, Options: p.Options, Help: p.Help}
	if p.PageSize > 0 {
		prompt.PageSize = p.PageSize
	}
	if p.Selected >= 0 && p.Selected < len(p.Options) {
		prompt.Default = p.Options[p.Selected]
	}
	var answer string
	if err := d.ask(ctx, prompt, &answer, nil); err != nil {
		return -1, err
	}
	return indexOf(p.Options, answer), nil
}

func (d *SurveyDriver) Multiline(ctx context.Context, p MultilinePrompt) (string, error) {
	var answer string
	prompt := &survey.Multiline{Message: p.Message, Default: p.Default, Help: p.Help}
	if err := d.ask(ctx, prompt, &answer, nil); err != nil {
		return "", err
	}
	return answer, nil
}

func (d *SurveyDriver) Notify(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.stdio.Out, msg)
	return err
}

func (d *SurveyDriver) ask(ctx context.Context, prompt survey.Prompt, answer any, check func(string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	opts := []survey.AskOpt{survey.WithStdio(d.stdio.In, d.stdio.Out, d.stdio.Err)}
	if check != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			text, ok := ans.(string)
			if !ok {
				return fmt.Errorf("expected text, got %T", ans)
			}
			return check(text)
		}))
	}
	err := survey.AskOne(prompt, answer, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
