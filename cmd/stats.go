package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/presentation"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Loads a GitHub account's activity view and outputs it as JSON",
	Long: `Loads the profile, repositories and commit activity of a GitHub account and
outputs the result in JSON format. With --repo the activity is the weekly series
of that repository instead of the account-wide daily series.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		logger := cfg.Logger(os.Stderr)

		user, _ := cmd.Flags().GetString("user")
		repo, _ := cmd.Flags().GetString("repo")
		page, _ := cmd.Flags().GetInt("page")

		githubGateway, err := gateway.NewGitHubGateway(cfg.GatewayOptions(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		coordinator := usecase.NewCoordinator(githubGateway, logger)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.WaitTimeout)
		defer cancel()

		coordinator.SetAccount(ctx, user)
		if err := coordinator.SelectRepository(ctx, repo); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to select repository: %v\n", err)
			os.Exit(1)
		}
		if err := coordinator.Wait(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Gave up waiting for GitHub: %v\n", err)
			os.Exit(1)
		}
		coordinator.SetPage(page)

		view := coordinator.Snapshot()
		if view.Err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load activity: %v\n", view.Err)
			os.Exit(1)
		}

		// Marshal the view into a pretty-printed JSON string.
		jsonData, err := sonic.ConfigStd.MarshalIndent(presentation.NewViewDTO(view), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}

		// Print the final JSON to standard output.
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub account name (required)")
	statsCmd.MarkFlagRequired("user")
	statsCmd.Flags().StringP("repo", "r", "", "Repository to show weekly activity for")
	statsCmd.Flags().IntP("page", "p", 1, "Page of the repository list to include")
}
