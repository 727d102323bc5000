package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/souvikmndl/ott-records/internal/data"
)

// addMovieFlags binds one flag per record field onto movie
func addMovieFlags(cmd *cobra.Command, movie *data.Movie) {
	cmd.Flags().StringVar(&movie.Title, "title", "", "movie title (required)")
	cmd.Flags().StringVar(&movie.Director, "director", "", "director (required)")
	cmd.Flags().StringVar(&movie.Year, "year", "", "release year (required)")
	cmd.Flags().StringVar(&movie.Budget, "budget", "", "budget")
	cmd.Flags().StringVar(&movie.Location, "location", "", "filming location")
	cmd.Flags().StringVar(&movie.Duration, "duration", "", "running time")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("director")
	_ = cmd.MarkFlagRequired("year")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func newAddCmd(opts *options) *cobra.Command {
	var movie data.Movie

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a record",
		Long: `Add saves a new record and prints it with the id the server gave it.

Example:
  ott add --title Inception --director Nolan --year 2010 --budget 160M`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := opts.client().Create(cmd.Context(), movie)
			if err != nil {
				return fmt.Errorf("add record: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved record %d\n", created.ID)
			renderMovies(cmd.OutOrStdout(), []data.Movie{*created})
			return nil
		},
	}
	addMovieFlags(cmd, &movie)

	return cmd
}

func newUpdateCmd(opts *options) *cobra.Command {
	var movie data.Movie

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of a record",
		Long: `Update overwrites all fields of the record with the given id. Optional
fields that are not passed are cleared.

Example:
  ott update 3 --title Inception --director "Christopher Nolan" --year 2010`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			updated, err := opts.client().Update(cmd.Context(), id, movie)
			if err != nil {
				return fmt.Errorf("update record %d: %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated record %d\n", updated.ID)
			renderMovies(cmd.OutOrStdout(), []data.Movie{*updated})
			return nil
		},
	}
	addMovieFlags(cmd, &movie)

	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record by id",
		Long: `Delete removes the record with the given id and prints what it held.

Example:
  ott delete 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			deleted, err := opts.client().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete record %d: %w", id, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %d\n", deleted.ID)
			renderMovies(cmd.OutOrStdout(), []data.Movie{*deleted})
			return nil
		},
	}
}
