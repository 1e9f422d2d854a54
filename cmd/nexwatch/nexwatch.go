package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/cmd/nexwatch/sim"
	"github.com/nexwatch/nexwatch/cmd/nexwatch/watch"
)

var globalUsage = `nexwatch is a terminal monitor for a task execution backend.

It keeps a live view of system status, tasks, and logs by combining a
websocket push stream with periodic polling, and lets you start or stop
the system and submit new tasks without leaving the terminal.`

// Version is set at build time
var Version = "0.0.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nexwatch",
		Short: "Watch and control a task execution backend from the terminal.",
		Long:  globalUsage,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of nexwatch",
		Long:  ``,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nexwatch version: %s\n", Version)
		},
	}

	watch.Version = Version
	cmd.AddCommand(versionCmd, watch.Cmd, sim.Cmd)

	return cmd
}

func main() {
	cmd := newRootCmd()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
