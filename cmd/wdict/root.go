package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	wdictlog "github.com/pyqlsa/wdict/internal/log"
)

// NewRootCmd creates the root command for wdict.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wdict",
		Short: "Build a deduplicated wordlist by crawling a site or directory",
		Long: `wdict crawls a remote site or a local directory tree, extracts candidate
words from the content it finds, runs them through a configurable filter
pipeline, and writes the accepted set to a wordlist file.

A crawl can be snapshotted mid-run and resumed later from the same state.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().CountP("verbose", "v", "increase logging verbosity (repeatable)")
	cmd.PersistentFlags().CountP("quiet", "q", "decrease logging verbosity (repeatable)")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// verbosity computes net verbosity in [-2, 2] from the -v/-q counting
// flags, mirroring the teacher's getVerboseFlag but as a signed scale
// instead of a single boolean; setupLogger maps it to a slog level.
func verbosity(cmd *cobra.Command) int {
	v, _ := cmd.Flags().GetCount("verbose")
	q, _ := cmd.Flags().GetCount("quiet")
	net := v - q
	if net > 2 {
		net = 2
	}
	if net < -2 {
		net = -2
	}
	return net
}

func setupLogger(net int) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case net <= -2:
		level = slog.LevelError + 4
	case net == -1:
		level = slog.LevelError
	case net == 1:
		level = slog.LevelDebug
	case net >= 2:
		level = slog.LevelDebug - 4
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(wdictlog.NewSecureHandler(handler))
}
