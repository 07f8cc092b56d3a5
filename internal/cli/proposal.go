package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/domain/models"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewProposalCmd creates the proposal command group
func NewProposalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"p"},
		Short:   "Submit, sponsor, vote on and process proposals",
	}
	cmd.AddCommand(
		newProposalSubmitCmd(),
		newProposalTransitionCmd("sponsor", "Sponsor a proposal, escrowing the deposit and queueing it for a vote"),
		newProposalVoteCmd(),
		newProposalProcessCmd(),
		newProposalTransitionCmd("cancel", "Cancel an unsponsored proposal and refund its tribute"),
		newProposalShowCmd(),
		newProposalListCmd(),
	)
	return cmd
}

func newProposalSubmitCmd() *cobra.Command {
	var (
		applicant    string
		shares       uint64
		loot         uint64
		tribute      string
		tributeToken string
		payment      string
		paymentToken string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a membership, grant or tribute proposal",
		Long: `Submit a proposal. The tribute is escrowed from the caller immediately and
refunded if the proposal fails or is cancelled. Tokens default to the
guild's deposit token.`,
		Example: `  # Ask for 5 shares against 100 tokens of tribute
  minion proposal submit --from $ALICE --shares 5 --tribute 100 -d "alice joins"

  # Grant 50 tokens from the bank to bob
  minion proposal submit --from $ALICE --applicant $BOB --payment 50`,
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

			params := usecase.SubmitProposalParams{
				From:            from,
				Applicant:       from,
				SharesRequested: shares,
				LootRequested:   loot,
				Description:     description,
			}
			if applicant != "" {
				if params.Applicant, err = parseAddress("--applicant", applicant); err != nil {
					return err
				}
			}
			if params.TributeOffered, err = parseAmount("--tribute", tribute); err != nil {
				return err
			}
			if params.PaymentRequested, err = parseAmount("--payment", payment); err != nil {
				return err
			}
			if params.TributeToken, err = parseAddress("--tribute-token", tributeToken); err != nil {
				return err
			}
			if params.PaymentToken, err = parseAddress("--payment-token", paymentToken); err != nil {
				return err
			}

			view, err := app.SubmitProposal.Run(cmd.Context(), params)
			if err != nil {
				return wrap("submit proposal", err)
			}
			return output(cmd, app, view, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), nil).
					RenderTransition(fmt.Sprintf("Proposal #%d submitted", view.Proposal.ID), view)
			})
		},
	}

	cmd.Flags().StringVar(&applicant, "applicant", "", "Address receiving shares, loot or payment (default: caller)")
	cmd.Flags().Uint64Var(&shares, "shares", 0, "Voting shares requested")
	cmd.Flags().Uint64Var(&loot, "loot", 0, "Non-voting loot requested")
	cmd.Flags().StringVar(&tribute, "tribute", "0", "Tribute offered, in base units")
	cmd.Flags().StringVar(&tributeToken, "tribute-token", "", "Tribute token (default: deposit token)")
	cmd.Flags().StringVar(&payment, "payment", "0", "Payment requested from the bank, in base units")
	cmd.Flags().StringVar(&paymentToken, "payment-token", "", "Payment token (default: deposit token)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Proposal description")

	return cmd
}

// newProposalTransitionCmd builds the sponsor and cancel commands, which
// share a shape: caller plus a proposal id in, the proposal out
func newProposalTransitionCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <proposal-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
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

			var view *usecase.ProposalView
			var message string
			switch name {
			case "sponsor":
				view, err = app.SponsorProposal.Run(cmd.Context(), usecase.SponsorProposalParams{From: from, ProposalID: id})
				message = fmt.Sprintf("Proposal #%d sponsored", id)
			case "cancel":
				view, err = app.CancelProposal.Run(cmd.Context(), usecase.CancelProposalParams{From: from, ProposalID: id})
				message = fmt.Sprintf("Proposal #%d cancelled", id)
			}
			if err != nil {
				return wrap(name+" proposal", err)
			}
			return output(cmd, app, view, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), nil).RenderTransition(message, view)
			})
		},
	}
}

func newProposalVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <proposal-id> <yes|no>",
		Short: "Vote on a proposal in its voting window",
		Long: `Vote on a proposal. The vote's weight is the caller's shares when the
proposal was sponsored; each member votes once.`,
		Args: cobra.ExactArgs(2),
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
			choice, err := parseChoice(args[1])
			if err != nil {
				return err
			}

			result, err := app.SubmitVote.Run(cmd.Context(), usecase.SubmitVoteParams{From: from, ProposalID: id, Choice: choice})
			if err != nil {
				return wrap("vote", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), nil).RenderVote(result)
			})
		},
	}
}

func newProposalProcessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process <proposal-id>",
		Short: "Process a proposal after its grace period",
		Long: `Process a proposal once its grace period has ended. Proposals are processed
in queue order. The caller receives the processing reward.`,
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

			result, err := app.ProcessProposal.Run(cmd.Context(), usecase.ProcessProposalParams{From: from, ProposalID: id})
			if err != nil {
				return wrap("process proposal", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), app.Codec).RenderProcess(result)
			})
		},
	}
}

func newProposalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [proposal-id]",
		Short: "Show a proposal with its votes and action",
		Long: `Show one proposal. Without an id the proposal is picked interactively
with fuzzy search.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ShowProposalParams{}
			if len(args) == 1 {
				id, err := parseProposalID(args[0])
				if err != nil {
					return err
				}
				params.ProposalID = &id
			}

			view, err := app.ShowProposal.Run(cmd.Context(), params)
			if err != nil {
				return wrap("show proposal", err)
			}
			return output(cmd, app, view, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), app.Codec).RenderProposal(view)
			})
		},
	}
}

var proposalStatuses = []models.ProposalStatus{
	models.ProposalStatusSubmitted,
	models.ProposalStatusSponsored,
	models.ProposalStatusVoting,
	models.ProposalStatusGrace,
	models.ProposalStatusReady,
	models.ProposalStatusPassed,
	models.ProposalStatusFailed,
	models.ProposalStatusCancelled,
}

func parseStatuses(raw []string) ([]models.ProposalStatus, error) {
	out := make([]models.ProposalStatus, 0, len(raw))
	for _, s := range raw {
		status := models.ProposalStatus(s)
		if !lo.Contains(proposalStatuses, status) {
			return nil, domain.Errorf(domain.ErrInvalidInput, "unknown status %q (valid: %v)", s, proposalStatuses)
		}
		out = append(out, status)
	}
	return out, nil
}

func newProposalListCmd() *cobra.Command {
	var (
		statuses []string
		queued   bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List proposals",
		Example: `  # Proposals that can be processed now
  minion proposal list --status ready

  # The voting queue in order
  minion proposal list --queued`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			filter, err := parseStatuses(statuses)
			if err != nil {
				return err
			}

			result, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{Statuses: filter, Queued: queued})
			if err != nil {
				return wrap("list proposals", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewProposalRenderer(cmd.OutOrStdout(), nil).RenderList(result)
			})
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Only show proposals with these statuses")
	cmd.Flags().BoolVar(&queued, "queued", false, "Only sponsored proposals, in queue order")

	return cmd
}
