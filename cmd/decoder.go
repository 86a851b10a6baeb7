package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var decoderCmd = &cobra.Command{
	Use:   "decoder",
	Short: "Query and control decoders through the vendor endpoint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	},
}

var decoderInfoCmd = &cobra.Command{
	Use:   "info <address>",
	Short: "Print the state of a decoder",
	Run:   cmdHandler.Decoder.Info,
}

var decoderResetCmd = &cobra.Command{
	Use:   "reset <address>",
	Short: "Restart a decoder",
	Run:   cmdHandler.Decoder.Reset,
}

var decoderScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the decoders of the address pool that answer",
	Run:   cmdHandler.Decoder.Scan,
}

func init() {
	RootCmd.AddCommand(decoderCmd)
	decoderCmd.AddCommand(decoderInfoCmd)
	decoderCmd.AddCommand(decoderResetCmd)
	decoderCmd.AddCommand(decoderScanCmd)

	decoderScanCmd.Flags().String("pool", "", "address pool to scan (default is ADDRESS_POOL)")
}
