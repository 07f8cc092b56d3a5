package cli

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/cli/render"
	"github.com/trebuchet-org/minion/internal/domain"
	"github.com/trebuchet-org/minion/internal/usecase"
)

// NewTimeCmd creates the time command group
func NewTimeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Read and advance the world clock",
		Long: `The local world keeps its own clock: wall time plus an offset that only
moves forward. Advance it to get through voting and grace periods.`,
	}
	cmd.AddCommand(newTimeAdvanceCmd(), newTimeNowCmd())
	return cmd
}

func newTimeAdvanceCmd() *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "advance [duration]",
		Short: "Move the clock forward",
		Example: `  minion time advance 10m
  minion time advance --to 3   # until proposal 3 can be processed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.AdvanceTimeParams{}
			switch {
			case to != "" && len(args) == 1:
				return domain.Errorf(domain.ErrInvalidInput, "give a duration or --to, not both")
			case to != "":
				id, err := parseProposalID(to)
				if err != nil {
					return err
				}
				params.ToProposal = &id
			case len(args) == 1:
				if params.By, err = time.ParseDuration(args[0]); err != nil {
					return domain.Errorf(domain.ErrInvalidInput, "duration %q", args[0])
				}
			default:
				return domain.Errorf(domain.ErrInvalidInput, "give a duration or --to")
			}

			result, err := app.AdvanceTime.Run(cmd.Context(), params)
			if err != nil {
				return wrap("advance time", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderClock(result)
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Advance to the end of this proposal's grace period")
	return cmd
}

func newTimeNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the world clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			result, err := app.CurrentTime.Run(cmd.Context())
			if err != nil {
				return wrap("read clock", err)
			}
			return output(cmd, app, result, func() error {
				return render.NewGuildRenderer(cmd.OutOrStdout()).RenderClock(result)
			})
		},
	}
}
