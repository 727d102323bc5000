package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/souvikmndl/ott-records/internal/client"
)

const browseHelp = `type to search by title, an empty line shows all records
  :n  next page   :p  previous page   :r  reload   :q  quit`

func newBrowseCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse records interactively",
		Long: `Browse shows a page of records and reads commands from standard input.
Each line typed is the new search text; the search is sent once typing has been
quiet for the debounce period, and the view always shows the latest answer.

` + browseHelp,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, debounce)
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", client.DefaultDebounce, "quiet period before a search is sent")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts *options, debounce time.Duration) error {
	out := cmd.OutOrStdout()

	b := client.NewBrowser(cmd.Context(), opts.client(),
		client.WithDebounce(debounce),
		client.WithLimit(opts.limit),
		client.WithOnChange(func(st client.State) { renderState(out, st) }),
	)
	defer b.Close()

	fmt.Fprintln(out, browseHelp)
	b.SetPage(opts.page)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case ":q":
			return nil
		case ":n":
			b.NextPage()
		case ":p":
			b.PrevPage()
		case ":r":
			b.Refresh()
		default:
			b.SetSearch(line)
		}
	}

	return scanner.Err()
}

// renderState redraws the view for one state change. Loading states only get a
// status line so the table on screen stays put until the answer arrives.
func renderState(w io.Writer, st client.State) {
	mode := "all records"
	if st.Searching() {
		mode = fmt.Sprintf("search %q", st.Query)
	}

	switch st.Status {
	case client.StatusLoading:
		fmt.Fprintf(w, "loading %s, page %d...\n", mode, st.Page)
	case client.StatusError:
		fmt.Fprintf(w, "error: %v\n", st.Err)
	default:
		fmt.Fprintf(w, "%s\n", mode)
		renderPage(w, st.Entries, st.Page, st.Limit, st.Total)
	}
}
