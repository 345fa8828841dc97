package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-projectgen/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and change settings",
	}

	var output string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return encode(cmd.OutOrStdout(), output, app.Store.Settings().Redacted())
		},
	}
	showCmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml or json")

	getCmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting, e.g. editor.tabWidth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := app.Store.Get(args[0])
			if err != nil {
				return err
			}
			if value != "" && isSecretKey(args[0]) {
				value = app.Store.Settings().Redacted().Network.Proxy.Password
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting and save the settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := app.Store.Save(); err != nil {
				return err
			}
			app.Logger.Info("setting saved", "key", args[0], "path", app.Store.Path())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(fmt.Sprintf("Saved %s to %s", args[0], app.Store.Path())))
			return err
		},
	}

	keysCmd := &cobra.Command{
		Use:   "keys",
		Short: "List setting keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range config.KnownKeys() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.AddCommand(showCmd, getCmd, setCmd, keysCmd, schemaCmd)
	return cmd
}

func isSecretKey(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), "network.proxy.password")
}
