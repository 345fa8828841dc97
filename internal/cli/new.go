package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-projectgen/pkg/wizard"
	"github.com/spf13/cobra"
)

type newOptions struct {
	template       string
	path           string
	load           string
	set            []string
	nonInteractive bool
	force          bool
}

func newNewCmd(app *App) *cobra.Command {
	opts := &newOptions{}
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a project from a template",
		Long: `Create a project file from a template.

Placeholder values come from --set key=value flags and, unless
--non-interactive is given, from prompts chosen by each placeholder type.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runNew(cmd, app, opts, name)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template name from the catalog")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Project directory (defaults to <workspace>/projects)")
	cmd.Flags().StringVar(&opts.load, "load", "", "Use a template file outside the catalog")
	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "Placeholder value as key=value (repeatable)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Never prompt; use defaults for unset placeholders")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing project file")
	return cmd
}

func runNew(cmd *cobra.Command, app *App, opts *newOptions, name string) error {
	ctx := cmd.Context()
	settings := app.Store.Settings()

	values, err := parseAssignments(opts.set)
	if err != nil {
		return err
	}

	cat, err := app.Catalog()
	if err != nil {
		return err
	}

	wizardOpts := []wizard.Option{
		wizard.WithSettings(settings),
		wizard.WithLogger(app.Logger),
	}
	if hist, err := app.History(); err != nil {
		app.Logger.Warn("project history unavailable", "error", err)
	} else {
		defer hist.Close()
		wizardOpts = append(wizardOpts, wizard.WithRecorder(hist))
	}
	if opts.force {
		wizardOpts = append(wizardOpts, wizard.WithOverwrite())
	}

	w, err := wizard.New(cat, wizardOpts...)
	if err != nil {
		return err
	}
	if opts.path != "" {
		dir, err := wizard.ResolveProjectPath(opts.path, settings.ProjectsPath())
		if err != nil {
			return err
		}
		w.SetProjectPath(dir)
	}

	if opts.nonInteractive {
		switch {
		case opts.load != "":
			if err := w.LoadTemplate(opts.load); err != nil {
				return err
			}
		case opts.template != "":
			if err := w.SelectTemplate(opts.template); err != nil {
				return err
			}
		default:
			return errors.New("new: --template or --load is required with --non-interactive")
		}
		if strings.TrimSpace(name) == "" {
			return errors.New("new: project name is required with --non-interactive")
		}
		w.SetProjectName(name)
		if err := applyAssignments(w, values); err != nil {
			return err
		}
		return createProject(cmd, w)
	}

	prompter, err := app.Prompter()
	if err != nil {
		return err
	}

	switch {
	case opts.load != "":
		if err := w.LoadTemplate(opts.load); err != nil {
			return err
		}
	case opts.template != "":
		if err := w.SelectTemplate(opts.template); err != nil {
			return err
		}
	default:
		names := cat.Names()
		current := ""
		if len(names) > 0 {
			current = names[0]
		}
		choice, err := prompter.ChooseTemplate(ctx, names, current)
		if err != nil {
			return err
		}
		if err := w.SelectTemplate(choice); err != nil {
			return err
		}
	}

	if name == "" {
		name, err = prompter.Ask(ctx, "Project name", "", true)
		if err != nil {
			return err
		}
	}
	w.SetProjectName(name)

	if err := applyAssignments(w, values); err != nil {
		return err
	}
	rows, err := prompter.Edit(ctx, w.Rows())
	if err != nil {
		return err
	}
	if err := w.SetRows(rows); err != nil {
		return err
	}

	if !opts.force {
		if _, err := os.Stat(w.ProjectFile()); err == nil {
			overwrite, err := prompter.Confirm(ctx, fmt.Sprintf("%s exists. Overwrite?", w.ProjectFile()), false)
			if err != nil {
				return err
			}
			if !overwrite {
				return prompter.Info(ctx, "Nothing created")
			}
			w.SetOverwrite(true)
		}
	}
	return createProject(cmd, w)
}

func createProject(cmd *cobra.Command, w *wizard.Wizard) error {
	if !w.CanCreate() {
		entry, _ := w.Template()
		return fmt.Errorf("new: cannot create %q from template %q: %w", w.ProjectFile(), entry.Name, wizard.ErrIncomplete)
	}
	p, err := w.Create(cmd.Context())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("Created "+p.File))
	return err
}

type assignment struct {
	key   string
	value string
}

// parseAssignments splits key=value pairs. The value may contain "=".
func parseAssignments(raw []string) ([]assignment, error) {
	out := make([]assignment, 0, len(raw))
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", item)
		}
		out = append(out, assignment{key: key, value: value})
	}
	return out, nil
}

func applyAssignments(w *wizard.Wizard, values []assignment) error {
	for _, a := range values {
		if err := w.SetValue(a.key, a.value); err != nil {
			return err
		}
	}
	return nil
}
