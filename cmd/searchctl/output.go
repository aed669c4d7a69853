package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/paginator"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/ranker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func printResults(w io.Writer, query string, docs []ranker.Document, pageSize int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Results for %q", query)))
	if len(docs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no documents found"))
		return
	}
	pages := paginator.Paginate(docs, pageSize)
	for i, page := range pages {
		var b strings.Builder
		if len(pages) > 1 {
			b.WriteString(headerStyle.Render(fmt.Sprintf("page %d/%d", i+1, len(pages))))
			b.WriteByte('\n')
		}
		for j, d := range page.Items {
			if j > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%s  relevance %s  rating %d",
				idStyle.Render(fmt.Sprintf("#%d", d.ID)),
				dimStyle.Render(fmt.Sprintf("%.6f", d.Relevance)),
				d.Rating,
			)
		}
		fmt.Fprintln(w, pageStyle.Render(b.String()))
	}
}

func printMatch(w io.Writer, id int, m executor.MatchResult) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Document %d", id)))
	terms := dimStyle.Render("(none)")
	if len(m.Terms) > 0 {
		terms = strings.Join(m.Terms, " ")
	}
	fmt.Fprintf(w, "%s %s\n%s %s\n",
		headerStyle.Render("status:"), m.Status,
		headerStyle.Render("matched:"), terms,
	)
}

func printRemoved(w io.Writer, removed []int, remaining int) {
	fmt.Fprintln(w, titleStyle.Render("Duplicate removal"))
	if len(removed) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no duplicates found"))
	}
	for _, id := range removed {
		fmt.Fprintf(w, "Found duplicate document id %s\n", idStyle.Render(fmt.Sprint(id)))
	}
	fmt.Fprintf(w, "%s %d\n", headerStyle.Render("documents left:"), remaining)
}
