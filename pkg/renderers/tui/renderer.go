package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/goliatone/go-projectgen/pkg/editor"
	"github.com/goliatone/go-projectgen/pkg/wizard"
)

// Renderer turns wizard rows into terminal prompts.
type Renderer struct {
	driver PromptDriver
	theme  Theme
	stdio  terminal.Stdio
}

// New constructs a TUI renderer backed by the survey driver unless another
// driver is supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(r.stdio)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Edit prompts for every row in order and returns the edited copy. The
// prompt depends on the row's editor kind. Values rejected by the editor are
// reported and asked again. The input slice is never modified.
func (r *Renderer) Edit(ctx context.Context, rows []wizard.Row) ([]wizard.Row, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	out := make([]wizard.Row, len(rows))
	copy(out, rows)
	for i := range out {
		value, err := r.promptRow(ctx, out[i])
		if err != nil {
			return nil, err
		}
		out[i].Value = value
	}
	return out, nil
}

// ChooseTemplate asks for one of names, preselecting current.
func (r *Renderer) ChooseTemplate(ctx context.Context, names []string, current string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoOptions
	}
	for {
		idx, err := r.driver.Choose(ctx, ChoicePrompt{
			Message:  r.message("Template"),
			Options:  names,
			Selected: indexOf(names, current),
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(names) {
			_ = r.driver.Notify(ctx, r.errorf("Invalid template selection"))
			continue
		}
		return names[idx], nil
	}
}

// Ask prompts for a line of text. Empty answers are re-asked when required.
func (r *Renderer) Ask(ctx context.Context, message, def string, required bool) (string, error) {
	for {
		value, err := r.driver.Text(ctx, TextPrompt{
			Message: r.message(message),
			Default: def,
		})
		if err != nil {
			return "", err
		}
		if required && value == "" {
			_ = r.driver.Notify(ctx, r.errorf("%s is required", message))
			continue
		}
		return value, nil
	}
}

// Confirm asks a yes/no question.
func (r *Renderer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	return r.driver.YesNo(ctx, YesNoPrompt{
		Message: r.message(message),
		Default: def,
	})
}

// Info prints a status line through the driver.
func (r *Renderer) Info(ctx context.Context, msg string) error {
	return r.driver.Notify(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) promptRow(ctx context.Context, row wizard.Row) (string, error) {
	if !row.HasEditor {
		return r.driver.Text(ctx, TextPrompt{
			Message: r.message(row.Name),
			Default: row.Value,
			Help:    rowHelp(row),
		})
	}

	desc := row.Editor
	for {
		value, err := r.promptDescriptor(ctx, row, desc)
		if err != nil {
			if errors.Is(err, errInvalidSelection) {
				_ = r.driver.Notify(ctx, r.errorf("Invalid %s selection", row.Name))
				continue
			}
			return "", err
		}
		if err := desc.Validate(value); err != nil {
			_ = r.driver.Notify(ctx, r.errorf("Invalid %s: %v", row.Name, err))
			continue
		}
		return desc.Normalize(value), nil
	}
}

var errInvalidSelection = errors.New("tui: invalid selection")

func (r *Renderer) promptDescriptor(ctx context.Context, row wizard.Row, desc editor.Descriptor) (string, error) {
	label := r.message(row.Name)
	help := rowHelp(row)

	switch {
	case desc.Kind == editor.KindBool:
		yes, err := r.driver.YesNo(ctx, YesNoPrompt{
			Message: label,
			Default: desc.Normalize(row.Value) == "true",
			Help:    help,
		})
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(yes), nil
	case desc.Kind == editor.KindItems || desc.HasOptions():
		idx, err := r.driver.Choose(ctx, ChoicePrompt{
			Message:  label,
			Options:  desc.Options,
			Selected: desc.Index(row.Value),
			Help:     help,
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(desc.Options) {
			return "", errInvalidSelection
		}
		return desc.Options[idx], nil
	case desc.Kind == editor.KindText:
		return r.driver.Multiline(ctx, MultilinePrompt{
			Message: label,
			Default: row.Value,
			Help:    help,
		})
	case desc.Kind == editor.KindSecret:
		return r.driver.Secret(ctx, TextPrompt{
			Message: label,
			Default: row.Value,
			Help:    help,
		})
	default:
		return r.driver.Text(ctx, TextPrompt{
			Message: label,
			Default: row.Value,
			Help:    help,
		})
	}
}

func (r *Renderer) message(label string) string {
	return r.theme.PromptPrefix + label
}

func (r *Renderer) errorf(format string, args ...any) string {
	return r.theme.ErrorPrefix + fmt.Sprintf(format, args...)
}

func rowHelp(row wizard.Row) string {
	if row.Type == "" {
		return fmt.Sprintf("placeholder %s", row.Key)
	}
	return fmt.Sprintf("placeholder %s (%s)", row.Key, row.Type)
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}
