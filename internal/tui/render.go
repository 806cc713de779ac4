package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kevinmichaelchen/repo-view/internal/models"
	"github.com/kevinmichaelchen/repo-view/internal/view"
)

// NoReposMessage is shown instead of the table when nothing matches.
const NoReposMessage = "No repositories match the criteria."

const dateFormat = "Jan 2, 2006"

// RenderProfile draws the profile header.
func RenderProfile(p models.Profile) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(p.Login))
	b.WriteString("\n")

	created := models.NotAvailable
	if !p.CreatedAt.IsZero() {
		created = p.CreatedAt.Format(dateFormat)
	}
	fields := [][2]string{
		{"Name", p.DisplayName()},
		{"Created at", created},
		{"Twitter id", p.Twitter()},
		{"Location", p.Place()},
		{"Followers", strconv.Itoa(p.Followers)},
		{"Following", strconv.Itoa(p.Following)},
	}
	for _, f := range fields {
		b.WriteString(styleLabel.Render(fmt.Sprintf("  %-11s", f[0]+":")))
		b.WriteString(styleValue.Render(f[1]))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderTable draws the visible repos, or NoReposMessage.
func RenderTable(p view.Payload) string {
	if len(p.VisibleItems) == 0 {
		return styleWarning.Render(NoReposMessage)
	}

	rows := make([][]string, 0, len(p.VisibleItems))
	for _, r := range p.VisibleItems {
		rows = append(rows, []string{
			r.Name,
			r.LanguageName(),
			strconv.Itoa(r.Stars),
			formatDate(r.UpdatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Repo Name", "Language", "Stars", "Last Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return styleCell
		})
	return t.Render()
}

// RenderPager draws "page x/y" with the page size and match count.
func RenderPager(p view.Payload) string {
	total := max(p.TotalPages, 1)
	return styleDim.Render(fmt.Sprintf("page %d/%d · %d per page · %d repos",
		p.CurrentPage, total, p.PageSize, p.TotalItems))
}

// RenderPayload draws the complete view for non-interactive output.
func RenderPayload(p view.Payload) string {
	if p.Profile == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(RenderProfile(*p.Profile))
	b.WriteString("\n")
	b.WriteString(RenderTable(p))
	b.WriteString("\n")
	if len(p.VisibleItems) > 0 {
		b.WriteString(RenderPager(p))
		b.WriteString("\n")
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return models.NotAvailable
	}
	return t.Format(dateFormat)
}
