package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Audit event tools",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	},
}

var eventsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print audit events mirrored to NATS",
	Run:   cmdHandler.Events.Watch,
}

func init() {
	RootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsWatchCmd)
}
