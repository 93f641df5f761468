package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/presentation"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

const interactiveHelp = `Commands:
  user <account>   analyze an account (clears the repository selection)
  repo <name>      show weekly activity of a repository
  clear            back to overall activity
  page <n>         jump to a page of the repository list
  next, prev       move through the repository list
  show             redraw without waiting
  help             this text
  quit             leave`

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Explores GitHub accounts from a prompt",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(cmd)
		logger := cfg.Logger(os.Stderr)

		githubGateway, err := gateway.NewGitHubGateway(cfg.GatewayOptions(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		coordinator := usecase.NewCoordinator(githubGateway, logger)
		if err := runInteractive(cmd.Context(), os.Stdin, os.Stdout, coordinator, cfg.WaitTimeout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// runInteractive reads one command per line from in until EOF or quit.
func runInteractive(ctx context.Context, in io.Reader, out io.Writer, c *usecase.Coordinator, wait time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, interactiveHelp)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		verb, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(verb) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, interactiveHelp)
			continue
		case "show":
			presentation.RenderText(out, c.Snapshot())
			continue
		case "user", "u":
			c.SetAccount(ctx, arg)
		case "repo", "r":
			if err := c.SelectRepository(ctx, arg); err != nil {
				fmt.Fprintf(out, "Cannot select %q: %v\n", arg, err)
				continue
			}
		case "clear":
			c.ClearSelection()
		case "next", "n":
			c.NextPage()
		case "prev", "p":
			c.PrevPage()
		case "page":
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(out, "Not a page number: %q\n", arg)
				continue
			}
			c.SetPage(n)
		default:
			fmt.Fprintf(out, "Unknown command %q, type help\n", verb)
			continue
		}

		waitCtx, cancel := context.WithTimeout(ctx, wait)
		err := c.Wait(waitCtx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		presentation.RenderText(out, c.Snapshot())
	}
}
