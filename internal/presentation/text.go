package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

const (
	nameColumnWidth = 28
	langColumnWidth = 12
	maxBarWidth     = 40
)

// RenderText writes a plain-text rendering of v for terminals.
func RenderText(w io.Writer, v usecase.View) {
	if v.Account == "" {
		fmt.Fprintln(w, "Enter an account to analyze.")
		return
	}
	if v.Err != nil {
		fmt.Fprintf(w, "Error: %v\n", v.Err)
		return
	}
	if v.Loading {
		fmt.Fprintf(w, "Analyzing %s...\n", v.Account)
	}

	if profile, ok := v.Profile.Data(); ok {
		renderProfile(w, profile)
	}
	if repos, ok := v.Repositories.Data(); ok {
		renderRepositories(w, v, len(repos))
	}
	renderActivity(w, v)
}

func renderProfile(w io.Writer, p domain.Profile) {
	name := p.Name
	if name == "" {
		name = p.Login
	}
	fmt.Fprintf(w, "%s (@%s)\n", name, p.Login)
	if p.Bio != "" {
		fmt.Fprintf(w, "  %s\n", p.Bio)
	}
	fmt.Fprintf(w, "  repos: %d  followers: %d  following: %d\n\n", p.Repos, p.Followers, p.Following)
}

func renderRepositories(w io.Writer, v usecase.View, count int) {
	fmt.Fprintf(w, "Repositories (%d)\n", count)
	if count == 0 {
		fmt.Fprintln(w, "  No repositories found")
		fmt.Fprintln(w)
		return
	}
	selected := ""
	if a, ok := v.Activity.(domain.RepositoryActivity); ok {
		selected = a.Name
	}
	for _, repo := range v.VisibleRepositories {
		marker := " "
		if repo.Name == selected {
			marker = ">"
		}
		name := runewidth.FillRight(runewidth.Truncate(repo.Name, nameColumnWidth, "…"), nameColumnWidth)
		lang := repo.Language
		if lang == "" {
			lang = "-"
		}
		lang = runewidth.FillRight(runewidth.Truncate(lang, langColumnWidth, "…"), langColumnWidth)
		fmt.Fprintf(w, "%s %s  %s ★%-5d ⑂%d\n", marker, name, lang, repo.Stars, repo.Forks)
	}
	if v.Page.Total > 1 {
		fmt.Fprintf(w, "  %s\n", PageBar(v.Page))
	}
	fmt.Fprintln(w)
}

// PageBar renders the page window, bracketing the current page. Unavailable
// prev/next affordances are dropped.
func PageBar(p domain.PageWindow) string {
	parts := make([]string, 0, len(p.Pages)+2)
	if p.HasPrev {
		parts = append(parts, "«")
	}
	for _, n := range p.Pages {
		if n == p.Current {
			parts = append(parts, fmt.Sprintf("[%d]", n))
		} else {
			parts = append(parts, fmt.Sprint(n))
		}
	}
	if p.HasNext {
		parts = append(parts, "»")
	}
	return strings.Join(parts, " ")
}

func renderActivity(w io.Writer, v usecase.View) {
	dto := NewActivityDTO(v.Activity)
	if dto.Kind == RepositoryKind {
		fmt.Fprintf(w, "Commit activity: %s (weekly)\n", dto.Repository)
	} else {
		fmt.Fprintln(w, "Overall commit activity (daily, recent public events)")
	}

	labels, counts := make([]string, 0), make([]int, 0)
	for _, d := range dto.Daily {
		labels, counts = append(labels, d.Date), append(counts, d.Count)
	}
	for _, wk := range dto.Weekly {
		labels, counts = append(labels, wk.Week), append(counts, wk.Count)
	}

	switch {
	case dto.Status == domain.Loading.String():
		fmt.Fprintln(w, "  Loading commit data...")
		return
	case dto.Status != domain.Succeeded.String():
		return
	case len(counts) == 0:
		fmt.Fprintln(w, "  No commit data available")
		return
	}

	peak := 0
	for _, c := range counts {
		peak = max(peak, c)
	}
	for i, label := range labels {
		bar := 0
		if counts[i] > 0 {
			bar = max(counts[i]*maxBarWidth/peak, 1)
		}
		fmt.Fprintf(w, "  %s %s %d\n", label, strings.Repeat("█", bar), counts[i])
	}
	s := v.Summary
	fmt.Fprintf(w, "  total %d, mean %.2f, median %.1f, busiest %s (%d)\n", s.Total, s.Mean, s.Median, s.BusiestKey, s.BusiestSize)
}
