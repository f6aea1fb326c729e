package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pyqlsa/wdict/internal/config"
	"github.com/pyqlsa/wdict/internal/dictionary"
	"github.com/pyqlsa/wdict/internal/extract"
	"github.com/pyqlsa/wdict/internal/location"
	"github.com/pyqlsa/wdict/internal/policy"
	"github.com/pyqlsa/wdict/internal/ratelimit"
	"github.com/pyqlsa/wdict/internal/state"
	"github.com/pyqlsa/wdict/internal/werr"
)

// Stats summarizes a completed or in-progress run, surfaced by the CLI
// layer's human summary report.
type Stats struct {
	Visited       int64
	Skipped       int64
	Errored       int64
	WordsAccepted int64
	Elapsed       time.Duration
}

// Crawler owns the frontier, the visited set, the dictionary, and the
// fetch pipeline for a single run. It is safe for concurrent use by the
// goroutines Run fans out internally; it is not safe to call Seed or Run
// concurrently from multiple callers.
type Crawler struct {
	cfg    *config.Config
	log    *slog.Logger
	client *http.Client
	gate   *ratelimit.Gate
	dict   *dictionary.Dictionary

	// runID identifies this crawl across a save/resume chain; it is
	// minted once in New and carried forward unchanged by Resume, so
	// every snapshot and log line for one logical run shares it.
	runID string

	frontier *frontier
	visited  *visitedSet

	originSeed location.Location

	visitedCount int64
	skippedCount int64
	erroredCount int64
	wordsCount   int64
	elapsed      time.Duration
}

// New builds a Crawler from cfg. The seed location is resolved from
// cfg.Start/URL/Path immediately so site-policy decisions have an origin
// to compare against; callers still need to call Seed to enqueue it.
func New(cfg *config.Config, log *slog.Logger) (*Crawler, error) {
	if log == nil {
		log = slog.Default()
	}

	origin, err := seedLocation(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving seed location: %w", err)
	}

	return &Crawler{
		cfg:        cfg,
		log:        log,
		client:     &http.Client{Timeout: config.RequestTimeout()},
		gate:       ratelimit.New(cfg.LimitConcurrent, cfg.ReqPerSec),
		dict:       dictionary.New(),
		frontier:   newFrontier(),
		visited:    newVisitedSet(),
		originSeed: origin,
		runID:      uuid.New().String(),
	}, nil
}

func seedLocation(cfg *config.Config) (location.Location, error) {
	switch cfg.Start {
	case config.StartRemote:
		return location.NewRemote(cfg.URL)
	case config.StartLocal:
		return location.NewLocal(cfg.Path)
	default:
		return location.Location{}, fmt.Errorf("config has no resolvable seed location: %w", werr.ErrUsage)
	}
}

// Seed enqueues the configured starting location at depth 0.
func (c *Crawler) Seed() {
	c.enqueue(0, c.originSeed)
}

// Dictionary returns the accumulated word set.
func (c *Crawler) Dictionary() *dictionary.Dictionary { return c.dict }

// RunID returns the crawl's stable identifier, shared by every snapshot
// saved across a resume chain for this run.
func (c *Crawler) RunID() string { return c.runID }

// Stats returns a snapshot of the run's counters.
func (c *Crawler) Stats() Stats {
	return Stats{
		Visited:       atomic.LoadInt64(&c.visitedCount),
		Skipped:       atomic.LoadInt64(&c.skippedCount),
		Errored:       atomic.LoadInt64(&c.erroredCount),
		WordsAccepted: atomic.LoadInt64(&c.wordsCount),
		Elapsed:       c.elapsed,
	}
}

// Run drives the frontier from depth 0 through cfg.Depth inclusive,
// fully draining each depth's queue before advancing. Fetches within a
// depth level fan out concurrently, bounded by the rate/concurrency
// gate; per-location errors are logged and do not abort the run. Run
// returns non-nil only if ctx is cancelled.
func (c *Crawler) Run(ctx context.Context) error {
	start := time.Now()
	defer func() { c.elapsed = time.Since(start) }()

	for depth := 0; depth <= c.cfg.Depth; depth++ {
		items := c.frontier.drain(depth)
		if len(items) == 0 {
			continue
		}

		canEnqueueChildren := depth < c.cfg.Depth
		g, gctx := errgroup.WithContext(ctx)
		for _, item := range items {
			item := item
			g.Go(func() error {
				c.fetchAndProcess(gctx, item, depth, canEnqueueChildren)
				return gctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}
	return nil
}

// fetchAndProcess admits item through the rate/concurrency gate (remote
// only), marks it visited once admission succeeds, fetches it, extracts
// and filters words into the dictionary, and enqueues eligible out-links
// one depth deeper.
//
// Visited is marked only after a successful Acquire: a fetch still
// waiting at the gate when ctx is cancelled never started, so it must
// stay off the visited set and in the frontier for a resumed run to
// pick up — marking it visited before admission would silently drop it
// forever.
func (c *Crawler) fetchAndProcess(ctx context.Context, item location.Location, depth int, enqueueChildren bool) {
	if item.IsRemote() {
		reqPerSec := 0
		if c.cfg.SiteOverrides != nil {
			reqPerSec = c.cfg.SiteOverrides.For(item.Host()).ReqPerSec
		}
		if acqErr := c.gate.Acquire(ctx, item.Host(), reqPerSec); acqErr != nil {
			c.frontier.push(depth, item)
			return
		}
	}

	if !c.visited.tryMark(item.String()) {
		if item.IsRemote() {
			c.gate.Release()
		}
		atomic.AddInt64(&c.skippedCount, 1)
		return
	}

	var words []string
	var outLinks []string
	var err error

	if item.IsRemote() {
		words, outLinks, err = c.fetchRemote(ctx, item)
		c.gate.Release()
	} else {
		words, outLinks, err = c.fetchLocal(item)
	}

	if err != nil {
		c.recordError(item, err)
		return
	}
	atomic.AddInt64(&c.visitedCount, 1)

	for _, w := range words {
		transformed, keep := c.cfg.Filters.Run(w)
		if !keep {
			continue
		}
		n := utf8.RuneCountInString(transformed)
		if n < c.cfg.MinWordLength || n > c.cfg.MaxWordLength {
			continue
		}
		if c.dict.Insert(transformed) {
			atomic.AddInt64(&c.wordsCount, 1)
		}
	}

	if !enqueueChildren {
		return
	}
	for _, link := range outLinks {
		child, err := childLocation(item, link)
		if err != nil {
			continue
		}
		if !c.eligible(child) {
			continue
		}
		if !c.withinHostDepth(child, depth+1) {
			continue
		}
		c.enqueue(depth+1, child)
	}
}

// withinHostDepth reports whether depth is still within loc's host's
// depth override, if one is configured. A host override caps how deep
// into that host the crawl goes independently of (and possibly tighter
// than) the global cfg.Depth ceiling already enforced by Run; hosts
// with no override, and all local locations, are unaffected.
func (c *Crawler) withinHostDepth(loc location.Location, depth int) bool {
	if !loc.IsRemote() || c.cfg.SiteOverrides == nil {
		return true
	}
	if d := c.cfg.SiteOverrides.For(loc.Host()).Depth; d > 0 {
		return depth <= d
	}
	return true
}

func childLocation(parent location.Location, link string) (location.Location, error) {
	if parent.IsRemote() {
		return location.NewRemote(link)
	}
	return location.NewLocal(link)
}

// fetchRemote performs a single HTTP GET and extracts words/out-links
// from the response body.
func (c *Crawler) fetchRemote(ctx context.Context, loc location.Location) (words, outLinks []string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.URL().String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("building request for %s: %w", loc, joinErr(werr.ErrNetwork, err))
	}

	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.SiteOverrides != nil {
		for k, v := range c.cfg.SiteOverrides.For(loc.Host()).Headers {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", loc, joinErr(werr.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("fetching %s: status %d: %w", loc, resp.StatusCode, werr.ErrNetwork)
	}

	kind := extract.KindFromContentType(resp.Header.Get("Content-Type"))
	res, err := extract.Extract(resp.Body, kind, loc.URL(), extract.Options{
		IncludeJS:  c.cfg.IncludeJS,
		IncludeCSS: c.cfg.IncludeCSS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", loc, joinErr(werr.ErrParse, err))
	}
	return res.Words, res.OutLinks, nil
}

// fetchLocal reads a local file or, for a directory, returns its
// immediate children as out-links.
func (c *Crawler) fetchLocal(loc location.Location) (words, outLinks []string, err error) {
	info, err := os.Stat(loc.Path())
	if err != nil {
		return nil, nil, fmt.Errorf("stat %s: %w", loc.Path(), joinErr(werr.ErrFilesystem, err))
	}

	if info.IsDir() {
		children, err := extract.LocalChildren(loc.Path())
		if err != nil {
			return nil, nil, fmt.Errorf("reading directory %s: %w", loc.Path(), joinErr(werr.ErrFilesystem, err))
		}
		return nil, children, nil
	}

	f, err := os.Open(loc.Path())
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", loc.Path(), joinErr(werr.ErrFilesystem, err))
	}
	defer f.Close()

	kind := extract.KindFromExtension(filepath.Ext(loc.Path()))
	res, err := extract.Extract(f, kind, nil, extract.Options{
		IncludeJS:  c.cfg.IncludeJS,
		IncludeCSS: c.cfg.IncludeCSS,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", loc.Path(), joinErr(werr.ErrParse, err))
	}
	return res.Words, nil, nil
}

// enqueue pushes loc onto depth's frontier queue unless it is already
// known visited. This is a best-effort dedup; the authoritative check is
// visitedSet.tryMark at fetch start.
func (c *Crawler) enqueue(depth int, loc location.Location) {
	if c.visited.contains(loc.String()) {
		return
	}
	c.frontier.push(depth, loc)
}

// eligible reports whether loc may be fetched given the origin seed and
// the configured site policy. Local locations ignore the policy variant
// and are constrained to descendants of the seed path.
func (c *Crawler) eligible(loc location.Location) bool {
	if loc.IsLocal() {
		return c.originSeed.IsLocal() && policy.MatchesLocal(c.originSeed.Path(), loc.Path())
	}
	if !c.originSeed.IsRemote() {
		return false
	}
	return policy.Matches(c.cfg.SitePolicy, c.originSeed.Host(), loc.Host())
}

func (c *Crawler) recordError(loc location.Location, err error) {
	atomic.AddInt64(&c.erroredCount, 1)
	c.log.Warn("fetch failed", "location", loc.String(), "error", err)
}

func joinErr(sentinel, inner error) error {
	return fmt.Errorf("%w: %w", sentinel, inner)
}

// Snapshot produces a StateSnapshot reflecting the current visited set
// and remaining frontier.
func (c *Crawler) Snapshot() *state.Snapshot {
	visited := c.visited.keys()

	depthCount := c.frontier.depthCount()
	frontierStrs := make([][]string, depthCount)
	for d := 0; d < depthCount; d++ {
		items := c.frontier.peek(d)
		strs := make([]string, len(items))
		for i, it := range items {
			strs[i] = it.String()
		}
		frontierStrs[d] = strs
	}

	return state.New(c.runID, c.cfg, visited, frontierStrs, c.dict.Len())
}

// Resume rebuilds a Crawler from a loaded StateSnapshot. suppliedCfg's
// tunable fields take effect while the snapshot's seed identity
// (Start/URL/Path) is preserved so site-policy decisions still compare
// against the original origin. When strict is true, the snapshot's config
// must field-by-field equal that effective config (suppliedCfg with the
// snapshot's seed identity) or Resume fails with
// werr.ErrResumeConfigMismatch.
func Resume(snap *state.Snapshot, suppliedCfg *config.Config, strict bool, log *slog.Logger) (*Crawler, error) {
	effective := *suppliedCfg
	effective.Start = snap.Config.Start
	effective.URL = snap.Config.URL
	effective.Path = snap.Config.Path

	if strict && !snap.Config.Equal(&effective) {
		return nil, fmt.Errorf("resumed config does not match supplied config: %w", werr.ErrResumeConfigMismatch)
	}

	c, err := New(&effective, log)
	if err != nil {
		return nil, err
	}
	c.runID = snap.RunID

	for _, v := range snap.Visited {
		c.visited.tryMark(v)
	}
	for depth, strs := range snap.Frontier {
		for _, s := range strs {
			loc, err := location.Parse(s)
			if err != nil {
				continue
			}
			c.frontier.push(depth, loc)
		}
	}
	atomic.AddInt64(&c.wordsCount, int64(snap.AcceptedWordCount))

	return c, nil
}
