package main

import (
	"io"
	"strconv"

	"github.com/TFMV/salesgen/api"
	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated datasets over HTTP",
		Long: `The serve command starts an HTTP API:

  GET /health                                  liveness check
  GET /version                                 build information
  GET /dataset?records=N&seed=S&pricing=MODE   generated CSV
  GET /report?records=N&seed=S&format=FORMAT   summary and audit

With --prefork, Fiber spawns one listening process per CPU sharing the port
through SO_REUSEPORT. It stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := api.NewServer(serverOptions(a, cmd.ErrOrStderr()))
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().Int("port", 3000, "Port to listen on")
	cmd.Flags().Int("max-records", 100000, "Largest dataset a request may ask for")
	cmd.Flags().Bool("prefork", false, "Spawn one listening process per CPU")
	a.bind(cmd.Flags().Lookup("port"), "server.port")
	a.bind(cmd.Flags().Lookup("max-records"), "server.max_records")
	a.bind(cmd.Flags().Lookup("prefork"), "server.prefork")

	return cmd
}

// serverOptions maps the loaded configuration onto the API server.
func serverOptions(a *app, accessLog io.Writer) api.ServerOptions {
	return api.ServerOptions{
		Port:       strconv.Itoa(a.cfg.Server.Port),
		Prefork:    a.cfg.Server.Prefork,
		MaxRecords: a.cfg.Server.MaxRecords,
		Pricing:    a.cfg.Generator.PricingMode(),
		Logger:     a.log,
		Seed:       a.cfg.Generator.Seed,
		AccessLog:  accessLog,
	}
}
