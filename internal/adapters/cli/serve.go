package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/fueleu-go/internal/adapters/httpapi"
	"github.com/andrescamacho/fueleu-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand(factory RuntimeFactory) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON HTTP API until interrupted.

Examples:
  fueleu serve
  fueleu serve --host 0.0.0.0 --port 8080

Set server.pid_file to refuse starting a second server on the same file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, factory, func(ctx context.Context, rt *Runtime) error {
				serverCfg := rt.Config.Server
				if cmd.Flags().Changed("host") {
					serverCfg.Host = host
				}
				if cmd.Flags().Changed("port") {
					serverCfg.Port = port
				}

				if serverCfg.PIDFile != "" {
					pf := pidfile.New(serverCfg.PIDFile)
					if err := pf.Acquire(); err != nil {
						return err
					}
					defer func() {
						if err := pf.Release(); err != nil {
							rt.Logger.Warn().Err(err).Msg("Failed to release pid file")
						}
					}()
				}

				opts := []httpapi.Option{httpapi.WithLogger(rt.Logger)}
				if rt.HTTPMetrics != nil {
					opts = append(opts, httpapi.WithMetrics(rt.HTTPMetrics, rt.Config.Metrics.Path))
				}

				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				return httpapi.NewServer(rt.Mediator, serverCfg, opts...).Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Override server.host")
	cmd.Flags().IntVar(&port, "port", 0, "Override server.port")

	return cmd
}
