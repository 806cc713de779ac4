package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/github"
	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var verbose bool
	root := &cobra.Command{
		Use:          "repo-view",
		Short:        "Browse a GitHub user's profile and repositories",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := config.Load()
			level := logging.ParseLevel(cfg.LogLevel)
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.New(os.Stderr, level)))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		showCmd(), browseCmd(), serveCmd(),
		schemaCmd(), archiveCmd(), historyCmd(), statsCmd(), summarizeCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newGitHubClient(cfg *config.Config) *github.Client {
	return github.NewClient(
		github.WithBaseURL(cfg.GitHubAPIURL),
		github.WithPerPage(cfg.ReposPerPage),
	)
}

func viewOptions(cfg *config.Config) []view.Option {
	return []view.Option{
		view.WithTopics(cfg.Topics),
		view.WithPageSize(cfg.PageSize),
	}
}
