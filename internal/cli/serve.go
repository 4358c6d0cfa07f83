package cli

import (
	"fmt"

	"github.com/hevedar/appsketch/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveHost      string
	servePort      int
	serveAdvertise bool
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve <file>",
		Short: "Serve a live browser preview of a sketch file",
		Long: `Start a local HTTP server that renders the sketch file as phone-frame
previews and pushes updates to connected browsers over WebSocket
whenever the file changes.

The page keeps reconnecting if the server restarts. With --advertise
the server announces itself on the local network via mDNS so phones
and tablets can find it.

Examples:
  appsketch serve login.sketch
  appsketch serve --port 8080 login.sketch
  appsketch serve --host 0.0.0.0 --advertise login.sketch`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.Flags().StringVar(&serveHost, "host", "", "address to bind (default from config)")
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (default from config)")
	cmd.Flags().BoolVar(&serveAdvertise, "advertise", false, "advertise the server on the local network via mDNS")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	filename := args[0]

	if err := validateWatchFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}

	cfg := GetGlobalConfig()

	host := cfg.Preview.Host
	port := cfg.Preview.Port
	advertise := cfg.Preview.Advertise
	if cmd.Flag("host").Changed {
		host = serveHost
	}
	if cmd.Flag("port").Changed {
		port = servePort
	}
	if cmd.Flag("advertise").Changed {
		advertise = serveAdvertise
	}

	srv, err := server.New(&server.Config{
		Path:      filename,
		Host:      host,
		Port:      port,
		Debounce:  cfg.Preview.Debounce,
		Advertise: advertise,
		Title:     cfg.Render.HTMLTitle,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}
