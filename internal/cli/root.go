package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/arcward/isasplit/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

// NewRootCommand builds the isasplit command tree
func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "isasplit",
		Short: "Sort EDI X12 835/837 interchanges by client",
		Long: `isasplit reads every file under a source directory, splits each file into
its ISA interchanges, and writes each interchange to a zip archive named after
the client it belongs to (the 835 payee or the 837 billing provider NPI).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(newSplitCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd(version))
	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd := NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig loads the config given with --config, applying --verbose
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "isasplit %s\n", version)
		},
	}
}
