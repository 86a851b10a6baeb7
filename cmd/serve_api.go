package cmd

import (
	"github.com/nsyszr/decoderfleet/pkg/cmd/server"
	"github.com/spf13/cobra"
)

var serveAPICmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the REST API",
	Run:   server.RunServeAPI(c),
}

func init() {
	serveCmd.AddCommand(serveAPICmd)

	serveAPICmd.Flags().String("seed", "", "YAML file with subscribers to load at startup")
}
