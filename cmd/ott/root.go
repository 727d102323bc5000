package main

import (
	"cmp"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/souvikmndl/ott-records/internal/client"
	"github.com/souvikmndl/ott-records/internal/data"
	"github.com/souvikmndl/ott-records/internal/vcs"
)

const defaultServer = "http://localhost:4000"

// options holds the global flag values shared by every subcommand
type options struct {
	server  string
	timeout time.Duration
	page    int
	limit   int
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "ott",
		Short: "ott manages the OTT movie records",
		Long: `ott talks to a running records server. It can list, search, add, update
and delete records, or browse them interactively with a live search box.`,
		Version:       vcs.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", cmp.Or(os.Getenv("OTT_SERVER"), defaultServer), "records server base URL (env OTT_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "per-request timeout")
	rootCmd.PersistentFlags().IntVar(&opts.page, "page", data.DefaultPage, "page to show")
	rootCmd.PersistentFlags().IntVar(&opts.limit, "limit", data.DefaultLimit, "records per page")

	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newUpdateCmd(opts))
	rootCmd.AddCommand(newDeleteCmd(opts))
	rootCmd.AddCommand(newBrowseCmd(opts))

	return rootCmd
}
