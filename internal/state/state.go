// Package state implements the crawl-state snapshot that makes a run
// resumable: the visited set, the remaining frontier, and the config
// that produced them.
//
// Design decision: the snapshot is a JSON document rather than the
// teacher's SQLite-backed crawldb, matching spec's "textual structured
// document" requirement — a wordlist crawl's state is small enough that
// a single file beats a database, and it keeps the output
// human-inspectable.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/blake2b"

	"github.com/pyqlsa/wdict/internal/config"
	"github.com/pyqlsa/wdict/internal/werr"
)

// Snapshot is the serializable form of a crawl in progress or complete.
type Snapshot struct {
	// RunID identifies the crawl across a save/resume chain: a fresh
	// snapshot gets a new one, and Resume carries the loaded snapshot's
	// RunID forward instead of minting another, so every snapshot
	// belonging to the same logical run shares one ID in logs.
	RunID string `json:"run_id"`
	// Config is the configuration that produced this snapshot.
	Config *config.Config `json:"config"`
	// Visited holds the normalized string form of every fetched
	// location.
	Visited []string `json:"visited"`
	// Frontier holds the remaining, not-yet-fetched locations, indexed
	// by depth: Frontier[d] is the queue for depth d.
	Frontier [][]string `json:"frontier"`
	// AcceptedWordCount is the number of words in the dictionary at
	// snapshot time.
	AcceptedWordCount int `json:"accepted_word_count"`
	// Checksum is a blake2b-256 digest over the sorted Visited slice,
	// letting Load cheaply detect a hand-edited or bit-flipped file
	// beyond what JSON parsing alone would catch.
	Checksum string `json:"checksum"`
}

// computeChecksum hashes the sorted, newline-joined Visited set.
func computeChecksum(visited []string) string {
	sorted := append([]string(nil), visited...)
	sort.Strings(sorted)
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on a bad key length, and we pass
		// none.
		panic(fmt.Sprintf("blake2b.New256: %v", err))
	}
	for _, v := range sorted {
		h.Write([]byte(v))
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// New builds a Snapshot from its constituent parts, computing the
// checksum. runID should be the crawl's stable run identifier, carried
// forward across every snapshot saved for the same logical run.
func New(runID string, cfg *config.Config, visited []string, frontier [][]string, acceptedWordCount int) *Snapshot {
	return &Snapshot{
		RunID:             runID,
		Config:            cfg,
		Visited:           visited,
		Frontier:          frontier,
		AcceptedWordCount: acceptedWordCount,
		Checksum:          computeChecksum(visited),
	}
}

// Verify reports whether the snapshot's stored checksum matches its
// Visited set. Checksum is an expansion beyond the four fields the
// documented state format requires, so a snapshot with no checksum at
// all (e.g. a hand-authored or externally produced state file) verifies
// trivially rather than being rejected as malformed.
func (s *Snapshot) Verify() bool {
	if s.Checksum == "" {
		return true
	}
	return s.Checksum == computeChecksum(s.Visited)
}

// Save writes the snapshot to path, replacing any existing file. The
// write goes through a temp file plus rename so a crash mid-write never
// leaves a truncated snapshot behind.
func Save(path string, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state snapshot: %w: %w", werr.ErrOutput, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".wdict-state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w: %w", werr.ErrOutput, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing state file: %w: %w", werr.ErrOutput, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing state temp file: %w: %w", werr.ErrOutput, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing state file at %s: %w: %w", path, werr.ErrOutput, err)
	}
	return nil
}

// Load reads and parses a snapshot from path. Returns werr.ErrStateMissing
// if the path does not exist, werr.ErrStateMalformed if it exists but
// can't be parsed or fails checksum verification.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("state file %s does not exist: %w", path, werr.ErrStateMissing)
		}
		return nil, fmt.Errorf("reading state file %s: %w", path, werr.ErrStateMalformed)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w: %w", path, werr.ErrStateMalformed, err)
	}
	if snap.Config == nil {
		return nil, fmt.Errorf("state file %s missing config: %w", path, werr.ErrStateMalformed)
	}
	if !snap.Verify() {
		return nil, fmt.Errorf("state file %s failed checksum verification: %w", path, werr.ErrStateMalformed)
	}
	return &snap, nil
}
