package config

import (
	"math"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/pyqlsa/wdict/internal/filter"
	"github.com/pyqlsa/wdict/internal/policy"
)

// Default configuration values.
const (
	// DefaultDepth gives a shallow-but-useful crawl without the caller
	// needing to think about it on the first run.
	DefaultDepth = 2

	// DefaultMinWordLength excludes one- and two-character noise by default.
	DefaultMinWordLength = 3

	// DefaultMaxWordLength is effectively unbounded: the spec leaves the
	// exact ceiling unspecified, and "no ceiling" is the least
	// surprising default for a dictionary-building tool.
	DefaultMaxWordLength = math.MaxInt

	// DefaultReqPerSec is a conservative ceiling that avoids tripping
	// naive rate limiting on the target site.
	DefaultReqPerSec = 5

	// DefaultLimitConcurrent bounds in-flight fetches.
	DefaultLimitConcurrent = 4

	// DefaultUserAgent identifies wdict in HTTP requests.
	DefaultUserAgent = "wdict/1.0 (+https://github.com/pyqlsa/wdict)"

	// AppName is the application name used for XDG directory paths.
	AppName = "wdict"

	// requestTimeout is the fixed per-fetch HTTP client timeout.
	requestTimeout = 30 * time.Second
)

// StartKind discriminates the three ways a run can be seeded.
type StartKind int

const (
	// StartRemote seeds the crawl from a URL.
	StartRemote StartKind = iota
	// StartLocal seeds the crawl from a local directory.
	StartLocal
	// StartResume seeds the crawl from a previously saved state snapshot.
	StartResume
)

// Config holds every recognized crawl option. It is built by the CLI
// layer from flags plus, optionally, a site-override file, and is
// immutable for the duration of a run once Validate succeeds.
//
// Design decision: one flat struct rather than nested sub-structs,
// matching the teacher's internal/config.Config — the option count is
// manageable and nesting would only add indirection for callers.
type Config struct {
	// Start selects how the crawl is seeded.
	Start StartKind
	// URL is the seed URL; set when Start == StartRemote.
	URL string
	// Path is the seed directory; set when Start == StartLocal.
	Path string
	// ResumePath is the state file to resume from; set when
	// Start == StartResume.
	ResumePath string
	// ResumeStrict, when true, requires the resumed snapshot's config to
	// field-by-field equal this Config; otherwise this Config replaces
	// the snapshot's.
	ResumeStrict bool

	// Depth is the maximum frontier depth; 0 fetches only the seed.
	Depth int

	// MinWordLength and MaxWordLength are inclusive bounds applied after
	// the filter pipeline, on the final transformed word.
	MinWordLength int
	MaxWordLength int

	// IncludeJS and IncludeCSS control whether <script>/<style> content
	// is extracted and whether their linked resources are followed.
	IncludeJS  bool
	IncludeCSS bool

	// Filters is the ordered FilterPipeline applied to every candidate
	// word.
	Filters filter.Pipeline

	// SitePolicy decides which discovered remote hosts are eligible.
	SitePolicy policy.Policy

	// UserAgent is sent as the HTTP User-Agent header.
	UserAgent string
	// Headers are additional request headers; keys are matched
	// case-insensitively, last write wins on duplicates.
	Headers map[string]string

	// ReqPerSec bounds fetch starts per rolling second.
	ReqPerSec int
	// LimitConcurrent bounds in-flight fetches.
	LimitConcurrent int

	// OutputPath is where the dictionary is written.
	OutputPath string
	// Append, when true, unions the output file's existing contents
	// into the set before writing.
	Append bool
	// NoWrite, when true, skips writing the dictionary entirely.
	NoWrite bool

	// StatePath is where a state snapshot is saved after the run, if
	// OutputState is true.
	StatePath string
	// OutputState, when true, persists a StateSnapshot at the end of
	// the run (successful or not).
	OutputState bool

	// SiteOverrides holds any per-site tuning loaded from a YAML file.
	// Nil if no override file was supplied.
	SiteOverrides *Overrides
}

// New returns a Config populated with defaults. Callers still need to
// set Start and the corresponding target before calling Validate.
func New() *Config {
	return &Config{
		Depth:           DefaultDepth,
		MinWordLength:   DefaultMinWordLength,
		MaxWordLength:   DefaultMaxWordLength,
		SitePolicy:      policy.Same,
		UserAgent:       DefaultUserAgent,
		Headers:         make(map[string]string),
		ReqPerSec:       DefaultReqPerSec,
		LimitConcurrent: DefaultLimitConcurrent,
	}
}

// XDGStateDir returns the XDG state directory for wdict, used as the
// default location for resumable snapshots when the caller doesn't
// specify --state explicitly.
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// RequestTimeout returns the fixed per-fetch HTTP client timeout.
func RequestTimeout() time.Duration { return requestTimeout }

// Validate checks that Config describes a runnable crawl, returning the
// first problem found.
//
// Design decision: fail fast on the first error rather than collect all
// of them, matching the teacher's internal/config.Config.Validate — a
// single flat struct with a handful of interacting invariants doesn't
// benefit from an error-list API.
func (c *Config) Validate() error {
	switch c.Start {
	case StartRemote:
		if c.URL == "" {
			return ErrNoTarget
		}
	case StartLocal:
		if c.Path == "" {
			return ErrNoTarget
		}
	case StartResume:
		if c.ResumePath == "" {
			return ErrNoTarget
		}
	default:
		return ErrNoTarget
	}

	if c.Depth < 0 {
		return ErrInvalidDepth
	}
	if c.MinWordLength < 0 || c.MaxWordLength < 0 {
		return ErrInvalidWordLength
	}
	if c.MinWordLength > c.MaxWordLength {
		return ErrInvalidWordLength
	}
	if c.ReqPerSec <= 0 {
		return ErrInvalidReqPerSec
	}
	if c.LimitConcurrent <= 0 {
		return ErrInvalidLimitConcurrent
	}
	if !c.SitePolicy.Valid() {
		return ErrInvalidSitePolicy
	}
	if c.Append && c.NoWrite {
		return ErrConflictingOutputModes
	}

	return nil
}

// Equal reports whether c and other describe the same crawl, field by
// field. Used by strict resume to detect a mismatch between a loaded
// snapshot's config and the one supplied on the command line.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c.Start != other.Start || c.URL != other.URL || c.Path != other.Path ||
		c.Depth != other.Depth || c.MinWordLength != other.MinWordLength ||
		c.MaxWordLength != other.MaxWordLength || c.IncludeJS != other.IncludeJS ||
		c.IncludeCSS != other.IncludeCSS || c.SitePolicy != other.SitePolicy ||
		c.UserAgent != other.UserAgent || c.ReqPerSec != other.ReqPerSec ||
		c.LimitConcurrent != other.LimitConcurrent || c.OutputPath != other.OutputPath ||
		c.Append != other.Append || c.NoWrite != other.NoWrite {
		return false
	}
	if len(c.Filters) != len(other.Filters) {
		return false
	}
	for i, f := range c.Filters {
		if f != other.Filters[i] {
			return false
		}
	}
	if len(c.Headers) != len(other.Headers) {
		return false
	}
	for k, v := range c.Headers {
		if other.Headers[k] != v {
			return false
		}
	}
	return true
}
