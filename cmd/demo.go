package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"glide/internal/config"
	"glide/internal/tui"
	"glide/pkg/logging"
)

func newDemoCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive list binding demo",
		Long: `Starts a terminal UI backed by an observable vector of tasks.
Every mutation flows through the virtualized list source's
notification stream before it reaches the list control, and the
selected row's details open in an anchored flyout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			level := parseLogLevel(cfg.Global.LogLevel)
			if debugMode {
				level = logging.LevelDebug
			}
			logCh := logging.InitForTUI(level)
			defer logging.CloseTUIChannel()

			p := tui.NewProgram(cfg, logCh)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running demo: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	return cmd
}

func parseLogLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
