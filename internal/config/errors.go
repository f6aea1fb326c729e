package config

import (
	"fmt"

	"github.com/pyqlsa/wdict/internal/werr"
)

// Configuration validation errors. Each wraps werr.ErrUsage so callers
// mapping to a process exit code only need to check the taxonomy, not
// every individual sentinel.
//
// Design decision: package-level sentinels checked with errors.Is,
// matching the teacher's internal/config/errors.go and
// internal/tor/errors.go.
var (
	// ErrNoTarget is returned when none of --url, --path, or --resume
	// was supplied.
	ErrNoTarget = fmt.Errorf("no target specified: provide --url, --path, or --resume: %w", werr.ErrUsage)

	// ErrInvalidDepth is returned when Depth is negative.
	ErrInvalidDepth = fmt.Errorf("invalid depth: must be non-negative: %w", werr.ErrUsage)

	// ErrInvalidWordLength is returned when MinWordLength or
	// MaxWordLength is negative, or MinWordLength exceeds MaxWordLength.
	ErrInvalidWordLength = fmt.Errorf("invalid word length bounds: min must be non-negative and <= max: %w", werr.ErrUsage)

	// ErrInvalidReqPerSec is returned when ReqPerSec is not positive.
	ErrInvalidReqPerSec = fmt.Errorf("invalid requests-per-second: must be positive: %w", werr.ErrUsage)

	// ErrInvalidLimitConcurrent is returned when LimitConcurrent is not
	// positive.
	ErrInvalidLimitConcurrent = fmt.Errorf("invalid concurrency limit: must be positive: %w", werr.ErrUsage)

	// ErrInvalidSitePolicy is returned when SitePolicy is not one of the
	// four recognized variants.
	ErrInvalidSitePolicy = fmt.Errorf("invalid site policy: %w", werr.ErrUsage)

	// ErrConflictingOutputModes is returned when both --append and
	// --no-write are set.
	ErrConflictingOutputModes = fmt.Errorf("conflicting output modes: --append and --no-write cannot be used together: %w", werr.ErrUsage)
)
