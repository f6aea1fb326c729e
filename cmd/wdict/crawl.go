package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/pyqlsa/wdict/internal/config"
	"github.com/pyqlsa/wdict/internal/crawler"
	"github.com/pyqlsa/wdict/internal/dictionary"
	"github.com/pyqlsa/wdict/internal/filter"
	"github.com/pyqlsa/wdict/internal/policy"
	"github.com/pyqlsa/wdict/internal/state"
	"github.com/pyqlsa/wdict/internal/werr"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl a site or directory and build a wordlist",
		Long: `Crawl fetches a remote site or walks a local directory tree, extracts
candidate words, runs them through a filter pipeline, and writes the
accepted set to a wordlist file.

Exactly one of --url, --theme, --path, --resume, or --resume-strict must be given.

Examples:
  # Crawl a site two levels deep
  wdict crawl --url https://example.com --depth 2 -o words.txt

  # Crawl a named theme's seed URL
  wdict crawl --theme tolkien -o words.txt

  # Build a wordlist from a local directory
  wdict crawl --path ./docs -o words.txt

  # Resume an interrupted crawl
  wdict crawl --resume state.json -o words.txt`,
		RunE: runCrawlCmd,
	}

	cmd.Flags().String("url", "", "seed URL to crawl")
	cmd.Flags().String("theme", "", "named theme whose seed URL to crawl (see --list-themes)")
	cmd.Flags().String("path", "", "local directory to crawl")
	cmd.Flags().String("resume", "", "state file to resume a previous crawl from")
	cmd.Flags().String("resume-strict", "", "like --resume, but fail unless the supplied flags match the saved config")
	cmd.Flags().Bool("list-themes", false, "print recognized theme names and exit")

	cmd.Flags().Int("depth", config.DefaultDepth, "maximum frontier depth; 0 fetches only the seed")
	cmd.Flags().Int("min-word-length", config.DefaultMinWordLength, "minimum accepted word length, in runes")
	cmd.Flags().Int("max-word-length", config.DefaultMaxWordLength, "maximum accepted word length, in runes; the default is unbounded")
	cmd.Flags().Bool("include-js", false, "extract words from <script> content and follow script src links")
	cmd.Flags().Bool("include-css", false, "extract words from <style> content and follow stylesheet links")
	cmd.Flags().StringSlice("filter", nil, "filter pipeline step, repeatable and order-sensitive (see --list-filters)")
	cmd.Flags().Bool("list-filters", false, "print recognized filter names and exit")
	cmd.Flags().String("site-policy", string(policy.Same), "remote link-following policy: same, subdomain, sibling, all")

	cmd.Flags().String("user-agent", config.DefaultUserAgent, "HTTP User-Agent header")
	cmd.Flags().StringSlice("header", nil, "additional HTTP header as key=value, repeatable")
	cmd.Flags().String("site-overrides", "", "YAML file of per-host header/rate/depth overrides")

	cmd.Flags().Int("req-per-sec", config.DefaultReqPerSec, "fetch starts allowed per rolling second")
	cmd.Flags().Int("limit-concurrent", config.DefaultLimitConcurrent, "maximum in-flight fetches")

	cmd.Flags().StringP("output", "o", "", "wordlist output path")
	cmd.Flags().Bool("append", false, "union the output file's existing words into the result before writing")
	cmd.Flags().Bool("no-write", false, "do not write the wordlist; useful with --output-state only")

	cmd.Flags().String("state", "", "state snapshot path (default: XDG state dir)")
	cmd.Flags().Bool("output-state", false, "write a state snapshot after the run")

	cmd.Flags().Bool("markdown-summary", false, "also print the end-of-run summary as a Markdown fragment")

	return cmd
}

func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	if ok, _ := cmd.Flags().GetBool("list-themes"); ok {
		for _, name := range themeNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}
	if ok, _ := cmd.Flags().GetBool("list-filters"); ok {
		for k := filter.Deunicode; k <= filter.None; k++ {
			fmt.Fprintln(cmd.OutOrStdout(), k.String())
		}
		return nil
	}

	logger := setupLogger(verbosity(cmd))

	cfg, resumeSnap, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, snapshotting and exiting")
		cancel()
	}()

	var c *crawler.Crawler
	if resumeSnap != nil {
		c, err = crawler.Resume(resumeSnap, cfg, cfg.ResumeStrict, logger)
		if err != nil {
			return err
		}
	} else {
		c, err = crawler.New(cfg, logger)
		if err != nil {
			return err
		}
		c.Seed()
	}
	logger.Info("crawl starting", "run_id", c.RunID())

	runErr := c.Run(ctx)

	if cfg.OutputState {
		if err := state.Save(cfg.StatePath, c.Snapshot()); err != nil {
			return err
		}
		logger.Info("state snapshot written", "path", cfg.StatePath)
	}

	if !cfg.NoWrite {
		mode := dictionary.FlushOverwrite
		if cfg.Append {
			mode = dictionary.FlushAppend
		}
		if err := c.Dictionary().Flush(cfg.OutputPath, mode); err != nil {
			return fmt.Errorf("writing dictionary: %w: %w", werr.ErrOutput, err)
		}
	}

	printSummary(cmd, c.Stats(), c.Dictionary().Len())

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// buildConfig translates cobra flags into a config.Config. If --resume was
// given, it also loads and returns the StateSnapshot to resume from.
func buildConfig(cmd *cobra.Command) (*config.Config, *state.Snapshot, error) {
	cfg := config.New()
	f := cmd.Flags()

	url, _ := f.GetString("url")
	theme, _ := f.GetString("theme")
	path, _ := f.GetString("path")
	resumePath, _ := f.GetString("resume")
	resumeStrictPath, _ := f.GetString("resume-strict")

	starts := 0
	if url != "" {
		starts++
	}
	if theme != "" {
		starts++
	}
	if path != "" {
		starts++
	}
	if resumePath != "" {
		starts++
	}
	if resumeStrictPath != "" {
		starts++
	}
	if starts != 1 {
		return nil, nil, fmt.Errorf("exactly one of --url, --theme, --path, --resume, --resume-strict must be given: %w", werr.ErrUsage)
	}

	var resumeSnap *state.Snapshot
	switch {
	case theme != "":
		resolved, ok := themeURL(theme)
		if !ok {
			return nil, nil, fmt.Errorf("unrecognized theme %q (see --list-themes): %w", theme, werr.ErrUsage)
		}
		cfg.Start = config.StartRemote
		cfg.URL = resolved
	case url != "":
		cfg.Start = config.StartRemote
		cfg.URL = url
	case path != "":
		cfg.Start = config.StartLocal
		cfg.Path = path
	case resumePath != "":
		cfg.Start = config.StartResume
		cfg.ResumePath = resumePath
		snap, err := state.Load(resumePath)
		if err != nil {
			return nil, nil, err
		}
		resumeSnap = snap
	case resumeStrictPath != "":
		cfg.Start = config.StartResume
		cfg.ResumePath = resumeStrictPath
		cfg.ResumeStrict = true
		snap, err := state.Load(resumeStrictPath)
		if err != nil {
			return nil, nil, err
		}
		resumeSnap = snap
	}

	cfg.Depth, _ = f.GetInt("depth")
	cfg.MinWordLength, _ = f.GetInt("min-word-length")
	cfg.MaxWordLength, _ = f.GetInt("max-word-length")
	cfg.IncludeJS, _ = f.GetBool("include-js")
	cfg.IncludeCSS, _ = f.GetBool("include-css")

	filterNames, _ := f.GetStringSlice("filter")
	for _, name := range filterNames {
		k, ok := filter.Parse(name)
		if !ok {
			return nil, nil, fmt.Errorf("unrecognized filter %q: %w", name, werr.ErrUsage)
		}
		cfg.Filters = append(cfg.Filters, k)
	}

	sitePolicy, _ := f.GetString("site-policy")
	cfg.SitePolicy = policy.Policy(sitePolicy)

	cfg.UserAgent, _ = f.GetString("user-agent")

	headerPairs, _ := f.GetStringSlice("header")
	for _, kv := range headerPairs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --header %q, expected key=value: %w", kv, werr.ErrUsage)
		}
		cfg.Headers[http.CanonicalHeaderKey(k)] = v
	}

	overridesPath, _ := f.GetString("site-overrides")
	if overridesPath != "" {
		overrides, err := config.LoadOverrides(overridesPath)
		if err != nil {
			return nil, nil, err
		}
		cfg.SiteOverrides = overrides
	}

	cfg.ReqPerSec, _ = f.GetInt("req-per-sec")
	cfg.LimitConcurrent, _ = f.GetInt("limit-concurrent")

	cfg.OutputPath, _ = f.GetString("output")
	cfg.Append, _ = f.GetBool("append")
	cfg.NoWrite, _ = f.GetBool("no-write")

	cfg.OutputState, _ = f.GetBool("output-state")
	cfg.StatePath, _ = f.GetString("state")
	if cfg.OutputState && cfg.StatePath == "" {
		cfg.StatePath = config.XDGStateDir() + "/state.json"
	}

	return cfg, resumeSnap, nil
}

// printSummary renders a short end-of-run stats block, colorized when
// stdout is a terminal, optionally followed by a Markdown fragment of the
// same data.
func printSummary(cmd *cobra.Command, stats crawler.Stats, wordCount int) {
	out := cmd.OutOrStdout()
	useColor := isatty.IsTerminal(os.Stdout.Fd())

	rows := [][]string{
		{"visited", humanize.Comma(stats.Visited)},
		{"skipped", humanize.Comma(stats.Skipped)},
		{"errored", humanize.Comma(stats.Errored)},
		{"words accepted", humanize.Comma(stats.WordsAccepted)},
		{"dictionary size", humanize.Comma(int64(wordCount))},
		{"elapsed", stats.Elapsed.Round(time.Millisecond).String()},
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 32))
	sb.WriteString("\nCRAWL SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 32))
	sb.WriteString("\n\n")
	for _, row := range rows {
		label := row[0]
		if useColor && stats.Errored > 0 && label == "errored" {
			label = color.RedString(label)
		}
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", label+":", row[1]))
	}
	sb.WriteString("\n")
	fmt.Fprint(out, sb.String())

	markdownSummary, _ := cmd.Flags().GetBool("markdown-summary")
	if !markdownSummary {
		return
	}

	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)
	md.H2("crawl summary")
	md.Table(markdown.TableSet{
		Header: []string{"metric", "value"},
		Rows:   rows,
	})
	_ = md.Build()
	fmt.Fprint(out, buf.String())
}
