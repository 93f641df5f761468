package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/server"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves account activity views over HTTP",
	Long:  `Starts a read-only HTTP JSON API. GET /api/v1/accounts/{account}?repo=&page= returns the same view as the stats command.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		logger := cfg.Logger(os.Stderr)
		if !cfg.Verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GatewayOptions(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr:    cfg.Addr,
			Handler: server.New(githubGateway, cfg.WaitTimeout, logger).Router(),
		}

		go func() {
			logger.Info().Str("addr", cfg.Addr).Msg("Starting server")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
				os.Exit(1)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		<-quit

		logger.Info().Msg("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to shutdown server: %v\n", err)
			os.Exit(1)
		}
		logger.Info().Msg("Server stopped")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", config.DefaultAddr, "Address to listen on")
}
