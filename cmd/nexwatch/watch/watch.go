package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/pkg/config"
	"github.com/nexwatch/nexwatch/pkg/state"
	"github.com/nexwatch/nexwatch/pkg/tui"
)

// cmdline arguments
var serverURL string
var pushURL string
var cfgPath string
var pollSeconds int
var logCapacity int
var noReconnect bool
var lightTheme bool
var verbose bool

// Version is set by the main package
var Version string

func init() {
	Cmd.Flags().StringVarP(&serverURL, "server", "s", config.DefaultServerURL, "Backend base URL.")
	Cmd.Flags().StringVar(&pushURL, "push-url", "", "Websocket push URL. Derived from the server URL when unset.")
	Cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML configuration file.")
	Cmd.Flags().IntVarP(&pollSeconds, "poll", "p", config.DefaultPollSeconds, "Seconds between status and task polls.")
	Cmd.Flags().IntVar(&logCapacity, "log-capacity", state.DefaultLogCapacity, "Number of backend log entries to retain.")
	Cmd.Flags().BoolVar(&noReconnect, "no-reconnect", false, "Disable automatic push reconnection.")
	Cmd.Flags().BoolVar(&lightTheme, "light", false, "Use the light color theme.")
	Cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output.")
}

var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the backend interactively",
	Long: `Open the interactive monitor. Status and tasks refresh on a poll
timer and on push notifications; logs stream over the push channel.`,
	Example: "  nexwatch watch\n" +
		"  nexwatch watch -s http://backend:8000\n" +
		"  nexwatch watch -c ~/.nexwatch.yaml --light",
	Run: runCmd,
}

// buildConfig layers flags over the optional config file. An explicit flag
// always wins over a file value.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("server") {
		cfg.ServerURL = serverURL
	}
	if cmd.Flags().Changed("push-url") {
		cfg.PushURL = pushURL
	}
	if cmd.Flags().Changed("poll") {
		cfg.PollSeconds = pollSeconds
	}
	if cmd.Flags().Changed("log-capacity") {
		cfg.LogCapacity = logCapacity
	}
	if cmd.Flags().Changed("no-reconnect") {
		cfg.Reconnect = !noReconnect
	}
	if cmd.Flags().Changed("light") {
		cfg.LightTheme = lightTheme
	}

	if err := cfg.Normalize(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runCmd(cmd *cobra.Command, _ []string) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		log.Fatalf("Configuration error: %s", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := tui.NewManager(cfg, Version)

	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	if err := mgr.Run(ctx); err != nil {
		log.Fatalf("TUI error: %s", err.Error())
	}
}
