package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewSummonCmd creates the summon command
func NewSummonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summon",
		Short: "Summon the guild described by guild.toml",
		Long: `Summon a guild and its minion using the governance constants in guild.toml.

The caller given with --from becomes the summoner and first member. When
guild.toml lists no approved tokens a tribute token is deployed and
whitelisted.`,
		Example: `  minion summon --from 0x1000000000000000000000000000000000000001`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}

			result, err := app.SummonGuild.Run(cmd.Context(), usecase.SummonGuildParams{Summoner: from})
			if err != nil {
				return wrap("summon guild", err)
			}

			return output(cmd, app, result, func() error {
				if app.Config.GuildFile == "" {
					fmt.Fprintln(cmd.OutOrStdout(), render.FormatWarning("No guild.toml found, using default parameters"))
				}
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderSummon(result)
			})
		},
	}
}

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Drop the local world: guild, tokens, collectibles and clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ResetWorld.Run(cmd.Context())
			if err != nil {
				return wrap("reset world", err)
			}

			return output(cmd, app, result, func() error {
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderReset(result)
			})
		},
	}
}
