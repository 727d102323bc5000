package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List records a page at a time",
		Long: `List fetches one page of all records, oldest first.

Example:
  ott list
  ott list --page 2 --limit 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.client().List(cmd.Context(), opts.page, opts.limit)
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}

			renderPage(cmd.OutOrStdout(), p.Data, p.Page, p.Limit, p.Total)
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search records by title",
		Long: `Search lists the records whose title contains the given text, ignoring case.

Example:
  ott search knight
  ott search "the dark" --page 2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			if strings.TrimSpace(q) == "" {
				return fmt.Errorf("search text is required")
			}

			p, err := opts.client().Search(cmd.Context(), q, opts.page, opts.limit)
			if err != nil {
				return fmt.Errorf("search records: %w", err)
			}

			renderPage(cmd.OutOrStdout(), p.Data, p.Page, p.Limit, p.Total)
			return nil
		},
	}
}
