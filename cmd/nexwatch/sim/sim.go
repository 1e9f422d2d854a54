package sim

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	backend "github.com/nexwatch/nexwatch/pkg/sim"
)

// cmdline arguments
var addr string
var taskDuration time.Duration

func init() {
	Cmd.Flags().StringVarP(&addr, "addr", "a", ":8000", "Listen address for the simulated backend.")
	Cmd.Flags().DurationVar(&taskDuration, "task-duration", backend.DefaultTaskDuration, "How long a submitted task runs before completing.")
}

var Cmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a simulated backend",
	Long: `Run an in-process backend that serves the full HTTP and push API.
Useful for demos and for developing against a predictable server.`,
	Example: "  nexwatch sim\n" +
		"  nexwatch sim -a :9000 --task-duration 10s",
	Run: runCmd,
}

func runCmd(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := backend.NewServer(backend.WithTaskDuration(taskDuration))

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		log.Fatalf("Simulator error: %s", err.Error())
	}
}
