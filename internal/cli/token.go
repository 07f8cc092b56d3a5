package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewTokenCmd creates the token command group
func NewTokenCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Fund accounts and manage guild allowances of tribute tokens",
		Long: `Work with the ERC20 tribute tokens of the local world. Commands default to
the guild's deposit token; pick another whitelisted token with --token.`,
	}
	cmd.PersistentFlags().StringVar(&token, "token", "", "Token address (default: deposit token)")

	cmd.AddCommand(
		newTokenFundCmd(&token),
		newTokenApproveCmd(&token),
		newTokenBalanceCmd(&token),
	)
	return cmd
}

func newTokenFundCmd(token *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fund <account> <amount>",
		Short: "Mint tokens to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			params := usecase.FundAccountParams{}
			if params.Token, err = parseAddress("--token", *token); err != nil {
				return err
			}
			if params.Account, err = requireAddress("account", args[0]); err != nil {
				return err
			}
			if params.Amount, err = parseAmount("amount", args[1]); err != nil {
				return err
			}

			result, err := app.FundAccount.Run(cmd.Context(), params)
			if err != nil {
				return wrap("fund account", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderBalance(result)
			})
		},
	}
}

func newTokenApproveCmd(token *string) *cobra.Command {
	var spender string

	cmd := &cobra.Command{
		Use:   "approve <amount>",
		Short: "Let the guild (or --spender) pull the caller's tokens",
		Long: `Set the allowance of the guild over the caller's tokens. Submitting a
proposal with tribute and sponsoring one both pull tokens through it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}
			params := usecase.ApproveTokenParams{Owner: from}
			if params.Token, err = parseAddress("--token", *token); err != nil {
				return err
			}
			if params.Spender, err = parseAddress("--spender", spender); err != nil {
				return err
			}
			if params.Amount, err = parseAmount("amount", args[0]); err != nil {
				return err
			}

			result, err := app.ApproveToken.Run(cmd.Context(), params)
			if err != nil {
				return wrap("approve", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderBalance(result)
			})
		},
	}

	cmd.Flags().StringVar(&spender, "spender", "", "Spender address (default: the guild)")
	return cmd
}

func newTokenBalanceCmd(token *string) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [account]",
		Short: "Show an account's balance and guild allowance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			params := usecase.TokenBalanceParams{}
			if params.Token, err = parseAddress("--token", *token); err != nil {
				return err
			}
			if len(args) == 1 {
				params.Account, err = requireAddress("account", args[0])
			} else {
				params.Account, err = caller(app)
			}
			if err != nil {
				return err
			}

			result, err := app.TokenBalance.Run(cmd.Context(), params)
			if err != nil {
				return wrap("read balance", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewTokenRenderer(cmd.OutOrStdout()).RenderBalance(result)
			})
		},
	}
}
