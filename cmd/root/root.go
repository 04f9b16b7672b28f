// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"gagyebu/ledger-csv/internal/config"
	"gagyebu/ledger-csv/internal/container"
	"gagyebu/ledger-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      []string
	Output     string
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the container is built.
	Log = logging.Default()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "ledger-csv",
		Short: "Normalize and categorize household expense spreadsheets.",
		Long: `ledger-csv reads household expense exports (CSV, XLSX or Google Sheets),
finds the header row, cleans dates and amounts, assigns a two-level category
from an ordered keyword table and writes a canonical ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to ledger-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer == nil {
				return
			}
			if err := appContainer.Close(); err != nil {
				Log.WithError(err).Warn("Failed to close container")
			}
		},
		SilenceUsage: true,
	}

	// SharedFlags holds the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	appContainer *container.Container
	initOnce     sync.Once
)

// Init registers the persistent flags. It is safe to call more than once.
func Init() {
	initOnce.Do(func() {
		Cmd.PersistentFlags().StringSliceVarP(&SharedFlags.Input, "input", "i", nil, "Input file(s) or directory")
		Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
		Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.ledger-csv, .ledger-csv and .)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	})
}

// LoadConfig loads the configuration and applies the logging flag overrides.
func LoadConfig() (*config.Config, error) {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	SetContainer(c)
	return nil
}

// SetContainer installs the container used by the commands.
func SetContainer(c *container.Container) {
	appContainer = c
	if c != nil {
		Log = c.GetLogger()
	}
}

// GetContainer returns the container built for the running command, or nil
// before PersistentPreRunE has run.
func GetContainer() *container.Container {
	return appContainer
}

// Inputs returns the --input values followed by positional arguments.
func Inputs(args []string) []string {
	out := make([]string, 0, len(SharedFlags.Input)+len(args))
	out = append(out, SharedFlags.Input...)
	return append(out, args...)
}
