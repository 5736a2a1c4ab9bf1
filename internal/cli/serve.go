package cli

import (
	"github.com/spf13/cobra"

	"github.com/jasperwreed/chatgpt-stats/internal/config"
	"github.com/jasperwreed/chatgpt-stats/internal/web"
)

func NewServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics dashboard over HTTP",
		Long: `Start a local web server with an interactive dashboard. The payload is
recomputed from the export at most once per cache interval; GET
/api/refresh forces a rebuild.

Configuration comes from the environment: CHATSTATS_PORT,
CHATSTATS_SOURCE, CHATSTATS_CACHE_TTL_SECONDS, and LOG_LEVEL. Flags
take precedence.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.InheritedFlags().Changed("file") || cfg.Source == "" {
				cfg.Source = sourcePath
			}

			log := config.NewLogger()
			return web.NewServer(cfg, log).ListenAndServe()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8203, "Port to listen on")

	return cmd
}
