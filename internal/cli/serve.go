package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinwoohan/plotgrid/internal/server"
)

// serveCommand creates the serve command for the HTTP evaluation API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP evaluation API",
		Long: `Run the HTTP evaluation API.

Serves POST /v1/evaluate for parcel evaluation, GET /v1/zones for the
regulation table, and GET /healthz for probes. The server shares the CLI's
cache backend, so warm geometry results are reused across both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := c.Config.Table()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			if addr == "" {
				addr = c.Config.Server.Addr
			}

			srv := server.New(runner, table, c.Logger, addr)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
