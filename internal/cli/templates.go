package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-projectgen/pkg/catalog"
	"github.com/goliatone/go-projectgen/pkg/editor"
	"github.com/goliatone/go-projectgen/pkg/placeholder"
	"github.com/spf13/cobra"
)

type templateInfo struct {
	Name         string            `json:"name" yaml:"name"`
	Source       catalog.Source    `json:"source" yaml:"source"`
	Path         string            `json:"path" yaml:"path"`
	Placeholders []placeholderInfo `json:"placeholders" yaml:"placeholders"`
}

type placeholderInfo struct {
	Name    string             `json:"name" yaml:"name"`
	Key     string             `json:"key" yaml:"key"`
	Type    string             `json:"type,omitempty" yaml:"type,omitempty"`
	Default string             `json:"default,omitempty" yaml:"default,omitempty"`
	Editor  *editor.Descriptor `json:"editor,omitempty" yaml:"editor,omitempty"`
}

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template", "tpl"},
		Short:   "Inspect project templates",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog()
			if err != nil {
				return err
			}
			entries := cat.Entries()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, mutedStyle.Render("No templates found"))
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{entry.Name, string(entry.Source), entry.Path})
			}
			return writeTable(out, []string{"NAME", "SOURCE", "PATH"}, rows)
		},
	}

	var output string
	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the placeholders of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Catalog()
			if err != nil {
				return err
			}
			entry, ok := cat.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", catalog.ErrTemplateNotFound, args[0])
			}
			text, err := entry.Read()
			if err != nil {
				return err
			}
			info := describeTemplate(entry, text)
			if output == "" || output == "text" {
				return printTemplate(cmd.OutOrStdout(), info)
			}
			return encode(cmd.OutOrStdout(), output, info)
		},
	}
	showCmd.Flags().StringVarP(&output, "output", "o", "", "Output format: text, yaml or json")

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func describeTemplate(entry catalog.Entry, text string) templateInfo {
	info := templateInfo{
		Name:         entry.Name,
		Source:       entry.Source,
		Path:         entry.Path,
		Placeholders: []placeholderInfo{},
	}
	for _, p := range placeholder.Extract(text) {
		item := placeholderInfo{
			Name:    p.Name,
			Key:     p.Key,
			Type:    p.Type,
			Default: p.Default,
		}
		kind := p.Type
		if kind == "" {
			kind = editor.KindString
		}
		if desc, ok := editor.Create(kind, p.Default); ok {
			item.Editor = &desc
		}
		info.Placeholders = append(info.Placeholders, item)
	}
	return info
}

func printTemplate(w io.Writer, info templateInfo) error {
	if _, err := fmt.Fprintf(w, "%s %s\n", titleStyle.Render(info.Name), mutedStyle.Render("("+string(info.Source)+") "+info.Path)); err != nil {
		return err
	}
	if len(info.Placeholders) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No placeholders"))
		return err
	}

	rows := make([][]string, 0, len(info.Placeholders))
	for _, p := range info.Placeholders {
		kind, def, choices := p.Type, p.Default, ""
		if p.Editor == nil {
			kind += " (free text)"
		} else {
			kind = p.Editor.Kind
			def = p.Editor.Default
			choices = strings.Join(p.Editor.Options, ", ")
		}
		rows = append(rows, []string{p.Name, kind, def, choices})
	}
	return writeTable(w, []string{"PLACEHOLDER", "KIND", "DEFAULT", "CHOICES"}, rows)
}
