package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kevinmichaelchen/repo-view/internal/config"
	"github.com/kevinmichaelchen/repo-view/internal/logging"
	"github.com/kevinmichaelchen/repo-view/internal/session"
	"github.com/kevinmichaelchen/repo-view/internal/tui"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

func showCmd() *cobra.Command {
	var name, language string
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "show [username]",
		Short: "Print the profile and one page of repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			logger := logging.FromContext(ctx)

			opts := viewOptions(cfg)
			if perPage > 0 {
				opts = append(opts, view.WithPageSize(perPage))
			}
			ctrl, err := session.NewLoader(newGitHubClient(cfg)).Fetch(ctx, args[0], opts...)
			if err != nil {
				return err
			}

			if name != "" {
				ctrl.OnNameFilterChanged(name)
			}
			if language != "" {
				ctrl.OnLanguageFilterChanged(language)
			}
			if page > 1 {
				if _, err := ctrl.OnPageInput(page); err != nil {
					logger.Warn("ignoring page", "page", page, "err", err)
				}
			}

			fmt.Print(tui.RenderPayload(ctrl.Payload()))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Filter by repo name (case-insensitive substring)")
	cmd.Flags().StringVar(&language, "language", "", `Filter by language ("all" for any)`)
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "Repos per page (default from REPO_VIEW_PAGE_SIZE)")
	return cmd
}

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [username]",
		Short: "Interactively filter and page through repositories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()

			ctrl, err := session.NewLoader(newGitHubClient(cfg)).Fetch(ctx, args[0], viewOptions(cfg)...)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(tui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}
