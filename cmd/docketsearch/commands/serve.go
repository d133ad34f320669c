package commands

import (
	"docketsearch/internal/api"
	"docketsearch/lib/serviceutil"
	"docketsearch/lib/telemetry"

	"github.com/spf13/cobra"
)

var port int

func init() {
	serveCmd.Flags().IntVar(&port, "port", 0, "Port to listen on, overrides listen_port.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--port <port>]",
	Short: "Serves the searches as a JSON HTTP API.",
	Run: func(cmd *cobra.Command, args []string) {
		listenPort := config.ListenPort
		if port > 0 {
			listenPort = port
		}

		telemetry.InstrumentPerfStats(cmd.Context())
		handler := api.NewHandler(newSearcher(), config.AccessToken)
		err := serviceutil.StartHttpServer(cmd.Context(), listenPort, handler)
		if err != nil {
			serviceutil.Fatal("http server stopped", err)
		}
	},
}
