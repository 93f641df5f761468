// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "github-activity",
	Short: "A CLI tool to inspect a GitHub account's activity.",
	Long: `github-activity shows a GitHub account's profile, its repositories and
its commit activity, either across all repositories (daily, from recent
public push events) or for one selected repository (weekly).`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add persistent flags available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("base-url", "", "GitHub API base URL (defaults to $"+config.BaseURLEnv+" or the public API)")
	rootCmd.PersistentFlags().Duration("rate-limit-wait", 0, "Longest single sleep on a secondary rate limit before failing")
	rootCmd.PersistentFlags().Duration("wait", config.DefaultWaitTimeout, "How long to wait for outstanding requests")
}

// loadConfig reads the persistent flags and the environment.
func loadConfig(cmd *cobra.Command) config.Config {
	flags := cmd.Flags()
	verbose, _ := flags.GetBool("verbose")
	baseURL, _ := flags.GetString("base-url")
	rateLimitWait, _ := flags.GetDuration("rate-limit-wait")
	waitTimeout, _ := flags.GetDuration("wait")
	cfg := config.Config{
		Verbose:       verbose,
		BaseURL:       baseURL,
		RateLimitWait: rateLimitWait,
		WaitTimeout:   waitTimeout,
	}
	if cmd.Flags().Lookup("addr") != nil {
		cfg.Addr, _ = flags.GetString("addr")
	}
	return config.Load(cfg, nil)
}

