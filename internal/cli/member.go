package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewMemberCmd creates the member command group
func NewMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "member",
		Aliases: []string{"guild"},
		Short:   "Inspect members and leave the guild",
	}
	cmd.AddCommand(newMemberListCmd(), newRagequitCmd())
	return cmd
}

func newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the guild, its members and its bank",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			overview, err := app.ListMembers.Run(cmd.Context())
			if err != nil {
				return wrap("list members", err)
			}
			return output(cmd, app, overview, func() error {
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderOverview(overview)
			})
		},
	}
}

func newRagequitCmd() *cobra.Command {
	var (
		shares uint64
		loot   uint64
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "ragequit",
		Short: "Burn shares and loot for a share of the guild bank",
		Long: `Burn shares and loot in exchange for a pro-rata share of every whitelisted
token in the guild bank. Blocked until the last proposal the caller voted
yes on has been processed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}
			if all && (shares > 0 || loot > 0) {
				return domain.Errorf(domain.ErrInvalidInput, "--all cannot be combined with --shares or --loot")
			}

			result, err := app.Ragequit.Run(cmd.Context(), usecase.RagequitParams{From: from, Shares: shares, Loot: loot, All: all})
			if err != nil {
				return wrap("ragequit", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderRagequit(result)
			})
		},
	}

	cmd.Flags().Uint64Var(&shares, "shares", 0, "Shares to burn")
	cmd.Flags().Uint64Var(&loot, "loot", 0, "Loot to burn")
	cmd.Flags().BoolVar(&all, "all", false, "Burn everything the caller holds")

	return cmd
}
