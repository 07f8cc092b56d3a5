package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewNFTCmd creates the nft command group
func NewNFTCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Deploy and mint collectibles gated by the minion",
		Long: `A MinionNFT may be minted by its minion, or by a guild member minting to
another guild member. Anyone else has to go through a minion action.`,
	}
	cmd.AddCommand(newNFTDeployCmd(), newNFTMintCmd(), newNFTBalanceCmd())
	return cmd
}

func newNFTDeployCmd() *cobra.Command {
	var (
		name   string
		symbol string
		minion string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a collectible trusting a minion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}
			params := usecase.DeployCollectibleParams{From: from, Name: name, Symbol: symbol}
			if params.Minion, err = parseAddress("--minion", minion); err != nil {
				return err
			}

			c, err := app.DeployCollectible.Run(cmd.Context(), params)
			if err != nil {
				return wrap("deploy collectible", err)
			}
			return output(cmd, app, c, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderCollectible(c)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Minion NFT", "Collection name")
	cmd.Flags().StringVar(&symbol, "symbol", "MNFT", "Collection symbol")
	cmd.Flags().StringVar(&minion, "minion", "", "Trusted minion (default: the guild's minion)")

	return cmd
}

func newNFTMintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mint <collectible> <to>",
		Short: "Mint directly as the caller",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}
			params := usecase.MintCollectibleParams{From: from}
			if params.Collectible, err = requireAddress("collectible", args[0]); err != nil {
				return err
			}
			if params.To, err = requireAddress("to", args[1]); err != nil {
				return err
			}

			result, err := app.MintCollectible.Run(cmd.Context(), params)
			if err != nil {
				return wrap("mint", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderMint(result)
			})
		},
	}
}

func newNFTBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <collectible> [owner]",
		Short: "Show the tokens an owner holds",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			collectible, err := requireAddress("collectible", args[0])
			if err != nil {
				return err
			}
			owner, err := caller(app)
			if len(args) == 2 {
				owner, err = requireAddress("owner", args[1])
			}
			if err != nil {
				return err
			}

			result, err := app.CollectibleBalance.Run(cmd.Context(), collectible, owner)
			if err != nil {
				return wrap("read collectible balance", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderCollectibleBalance(result)
			})
		},
	}
}
