package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewActionCmd creates the action command group
func NewActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Queue and execute calls made by the guild's minion",
	}
	cmd.AddCommand(newActionProposeCmd(), newActionExecuteCmd(), newActionListCmd())
	return cmd
}

func newActionProposeCmd() *cobra.Command {
	var (
		value       string
		data        string
		signature   string
		description string
	)

	cmd := &cobra.Command{
		Use:   "propose <target> [args...]",
		Short: "Propose a call for the minion to make",
		Long: `Submit a guild proposal carrying a call for the minion. Give either raw
calldata with --data or a function signature with --sig and its arguments.
The call runs once the proposal has passed, through 'action execute'.`,
		Example: `  # Have the minion mint a collectible to dave
  minion action propose $NFT $DAVE --sig "mint(address)" -d "badge for dave"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			from, err := caller(app)
			if err != nil {
				return err
			}
			target, err := requireAddress("target", args[0])
			if err != nil {
				return err
			}
			if signature == "" && len(args) > 1 {
				return domain.Errorf(domain.ErrInvalidInput, "call arguments need --sig")
			}

			params := usecase.ProposeActionParams{
				From:        from,
				Target:      target,
				Signature:   signature,
				Args:        args[1:],
				Description: description,
			}
			if params.Value, err = parseAmount("--value", value); err != nil {
				return err
			}
			if params.Data, err = parseCalldata(data); err != nil {
				return err
			}

			view, err := app.ProposeAction.Run(cmd.Context(), params)
			if err != nil {
				return wrap("propose action", err)
			}
			return output(cmd, app, view, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), app.Codec).
					RenderTransition(fmt.Sprintf("Action queued as proposal #%d", view.Proposal.ID), view)
			})
		},
	}

	cmd.Flags().StringVar(&value, "value", "0", "Value sent with the call")
	cmd.Flags().StringVar(&data, "data", "", "Raw 0x-prefixed calldata")
	cmd.Flags().StringVar(&signature, "sig", "", `Function signature, e.g. "mint(address)"`)
	cmd.Flags().StringVarP(&description, "description", "d", "", "Proposal description")

	return cmd
}

func newActionExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <proposal-id>",
		Short: "Execute the call of a passed proposal",
		Long: `Execute the minion call carried by a passed proposal. Each action runs at
most once; a call that fails is recorded as failed and cannot be retried.`,
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
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			action, err := app.ExecuteAction.Run(cmd.Context(), usecase.ExecuteActionParams{From: from, ProposalID: id})
			var actionErr *domain.ActionError
			if err != nil && !errors.As(err, &actionErr) {
				return wrap("execute action", err)
			}
			if renderErr := output(cmd, app, action, func() error {
				return render.NewActionRenderer(cmd.OutOrStdout(), app.Codec).RenderExecution(action)
			}); renderErr != nil {
				return renderErr
			}
			return err
		},
	}
}

func newActionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the minion's actions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			actions, err := app.ListActions.Run(cmd.Context())
			if err != nil {
				return wrap("list actions", err)
			}
			return output(cmd, app, actions, func() error {
				return render.NewActionRenderer(cmd.OutOrStdout(), app.Codec).RenderList(actions)
			})
		},
	}
}
