package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/llm"
	"github.com/kevinmichaelchen/repo-view/internal/models"
	"github.com/kevinmichaelchen/repo-view/internal/pipeline"
	"github.com/kevinmichaelchen/repo-view/internal/session"
	"github.com/kevinmichaelchen/repo-view/internal/surrealdb"
)

func schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Initialize/update SurrealDB schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			if err := db.InitSchema(ctx); err != nil {
				return err
			}
			fmt.Println("Schema initialized")
			return nil
		},
	}
}

func archiveCmd() *cobra.Command {
	var summarize bool

	cmd := &cobra.Command{
		Use:   "archive [username]",
		Short: "Store a user's profile and repositories in SurrealDB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			opts := pipeline.Options{
				Topics:      cfg.Topics,
				Concurrency: cfg.ArchiveConcurrent,
			}
			if summarize {
				opts.Summarizer = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.SummaryMaxRepos)
			}

			res, err := pipeline.Run(ctx, newGitHubClient(cfg), db, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Printf("Archived %s: %d repos (%d on-topic)\n", res.Profile.Login, res.Repos, res.Preselected)
			if res.Summary != nil {
				printSummary(res.Summary)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&summarize, "summarize", false, "Generate and store an AI summary of the profile")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List archived profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			profiles, err := db.ListProfiles(ctx)
			if err != nil {
				return err
			}
			if len(profiles) == 0 {
				fmt.Println("Nothing archived yet")
				return nil
			}

			for _, p := range profiles {
				fmt.Printf("%-24s %4d repos  %5d followers  %s\n",
					p.Login, p.RepoCount, p.Followers, p.ArchivedAt.Time.Local().Format("2006-01-02 15:04"))
				if p.AISummary != nil {
					fmt.Printf("  %s\n", *p.AISummary)
				}
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the language breakdown of archived repos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			db, err := surrealdb.NewClient(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(ctx) }()

			langs, err := db.GetLanguageBreakdown(ctx)
			if err != nil {
				return err
			}
			if len(langs) == 0 {
				fmt.Println("Nothing archived yet")
				return nil
			}

			sortByCount(langs)
			fmt.Println("Language breakdown:")
			for _, l := range langs {
				fmt.Printf("  %-20s %d\n", l.Language, l.Count)
			}
			return nil
		},
	}
}

func summarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [username]",
		Short: "Print an AI summary of a profile without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			ctrl, err := session.NewLoader(newGitHubClient(cfg)).Fetch(ctx, args[0], viewOptions(cfg)...)
			if err != nil {
				return err
			}

			client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.SummaryMaxRepos)
			summary, err := pipeline.Summarize(ctx, client, ctrl)
			if err != nil {
				return fmt.Errorf("summarizing: %w", err)
			}
			printSummary(summary)
			return nil
		},
	}
}

func printSummary(s *models.ProfileSummary) {
	fmt.Printf("\n%s\n", s.Summary)
	if len(s.Focus) > 0 {
		fmt.Printf("Focus: %s\n", strings.Join(s.Focus, ", "))
	}
}

// sortByCount orders by count descending, keeping first-seen order on ties.
func sortByCount(langs []surrealdb.LanguageCount) {
	sort.SliceStable(langs, func(i, j int) bool {
		return langs[i].Count > langs[j].Count
	})
}
