package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/arcward/isasplit/internal/splitter"
	"github.com/spf13/cobra"
)

var splitWorkers int

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <source-dir> <target-dir>",
		Short: "Split a directory of X12 files into per-client archives",
		Long: `Split reads every file under source-dir and writes one <client id>.zip per
client to target-dir, which must not exist yet. Files without a valid ISA
header are skipped and recorded in target-dir/log.gz.`,
		Args: cobra.ExactArgs(2),
		RunE: runSplit,
	}
	cmd.Flags().IntVarP(&splitWorkers, "workers", "w", 0, "Number of files to process concurrently (default from config)")
	return cmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if splitWorkers > 0 {
		cfg.Workers = splitWorkers
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := splitter.New(args[0], args[1], cfg, logger)
	s.OnProgress = func(p splitter.Progress) splitter.ProgressAction {
		logger.Debug("progress", "done", p.Value, "total", p.Max)
		return splitter.Continue
	}
	manifest, err := s.Run(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Split %d envelopes from %d files into %d client archives\n", manifest.Envelopes, manifest.Files, len(manifest.Clients))
	if len(manifest.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d files with invalid ISA headers\n", len(manifest.Skipped))
	}
	return nil
}
