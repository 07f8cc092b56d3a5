package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/minion/internal/app"
	"github.com/trebuchet-org/minion/internal/config"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minion",
		Short: "Local guild with a minion that acts on passed proposals",
		Long: `minion runs a Moloch-style guild against a local simulated chain.

Members join through proposals, vote with their shares and process
proposals once the grace period has passed. The guild's minion executes
the call of a passed action proposal, for example minting a collectible
that only the minion or members may mint.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (same as --format json)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json or yaml")
	rootCmd.PersistentFlags().StringP("from", "f", "", "Address acting as the caller (or MINION_FROM)")
	rootCmd.PersistentFlags().String("store", "fs", "World state backend: fs or leveldb")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "guild",
		Title: "Guild Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "assets",
		Title: "Asset Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewSummonCmd(), NewProposalCmd(), NewActionCmd(), NewMemberCmd()} {
		c.GroupID = "guild"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewTokenCmd(), NewNFTCmd()} {
		c.GroupID = "assets"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewTimeCmd(), NewConfigCmd(), NewResetCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
