package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage minion local config",
		Long: `Manage minion local config stored in .minion/config.local.json

The config holds defaults used when the matching flag is not given:
  from     default caller address (--from)
  store    world state backend, fs or leveldb (--store)
  format   output format, table, json or yaml (--format)

Flags and MINION_* environment variables take precedence.

When run without subcommands, displays the current config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}

	cmd.AddCommand(NewConfigSetCmd())
	cmd.AddCommand(NewConfigRemoveCmd())

	return cmd
}

// NewConfigSetCmd creates the config set subcommand
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Example: `  minion config set from 0x1000000000000000000000000000000000000001
  minion config set store leveldb`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.SetConfig.Run(cmd.Context(), usecase.SetConfigParams{
				Key:   args[0],
				Value: args[1],
			})
			if err != nil {
				return wrap("set config", err)
			}

			return output(cmd, app, result.UpdatedConfig, func() error {
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderSet(result)
			})
		},
	}
}

// NewConfigRemoveCmd creates the config remove subcommand
func NewConfigRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <key>",
		Aliases: []string{"rm", "unset"},
		Short:   "Remove a config value",
		Example: `  minion config remove from`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.RemoveConfig.Run(cmd.Context(), usecase.RemoveConfigParams{Key: args[0]})
			if err != nil {
				return wrap("remove config", err)
			}

			return output(cmd, app, result.UpdatedConfig, func() error {
				return render.NewConfigRenderer(cmd.OutOrStdout()).RenderRemove(result)
			})
		},
	}
}

func showConfig(cmd *cobra.Command) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ShowConfig.Run(cmd.Context())
	if err != nil {
		return wrap("show config", err)
	}

	return output(cmd, app, result.Config, func() error {
		return render.NewConfigRenderer(cmd.OutOrStdout()).RenderConfig(result)
	})
}
