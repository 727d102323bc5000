package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/souvikmndl/ott-records/internal/client"
	"github.com/souvikmndl/ott-records/internal/data"
)

const maxTitleWidth = 40

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// renderMovies prints movies as a table, or a notice when there are none
func renderMovies(w io.Writer, movies []data.Movie) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No data found in database.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tTITLE\tDIRECTOR\tBUDGET\tLOCATION\tDURATION\tYEAR")
	fmt.Fprintln(tw, "--\t-----\t--------\t------\t--------\t--------\t----")
	for _, m := range movies {
		title := m.Title
		if len(title) > maxTitleWidth {
			title = title[:maxTitleWidth-3] + "..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID,
			orNA(title),
			orNA(m.Director),
			orNA(m.Budget),
			orNA(m.Location),
			orNA(m.Duration),
			orNA(m.Year),
		)
	}
	_ = tw.Flush()

	for line := range strings.Lines(sb.String()) {
		fmt.Fprintln(w, strings.TrimRight(line, " \n"))
	}
}

// renderPage prints movies followed by where they sit in the whole result
func renderPage(w io.Writer, movies []data.Movie, page, limit, total int) {
	renderMovies(w, movies)
	fmt.Fprintf(w, "page %d of %d (%d records)\n", page, client.State{Total: total, Limit: limit}.LastPage(), total)
}
