// Package dictionary implements the accepted-word set and its flush
// modes.
//
// Design decision: Dictionary wraps a plain map[string]struct{} behind a
// mutex rather than a sync.Map, matching the teacher's preference for
// explicit locking around small maps of bounded concurrent writers (see
// internal/database/crawldb.go); a crawl's write pattern is many
// goroutines inserting distinct words, never iterating while writing.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// FlushMode controls how Dictionary.Flush writes the word set to disk.
type FlushMode int

const (
	// FlushOverwrite replaces the output file's contents unconditionally.
	// This is the default.
	FlushOverwrite FlushMode = iota
	// FlushAppend reads any existing output file first, unions its words
	// into the set, then writes the union.
	FlushAppend
	// FlushNoWrite keeps the set in memory only; Flush is a no-op.
	FlushNoWrite
)

// Dictionary is the deduplicated, concurrency-safe set of accepted
// words for one crawl.
type Dictionary struct {
	mu    sync.Mutex
	words map[string]struct{}
}

// New returns an empty Dictionary.
func New() *Dictionary {
	return &Dictionary{words: make(map[string]struct{})}
}

// Insert adds word to the set. Returns true if word was not already
// present.
func (d *Dictionary) Insert(word string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.words[word]; ok {
		return false
	}
	d.words[word] = struct{}{}
	return true
}

// Len returns the number of accepted words currently held.
func (d *Dictionary) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.words)
}

// Words returns a sorted snapshot of the current word set.
func (d *Dictionary) Words() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Flush writes the word set to path according to mode. Overwrite and
// Append are atomic from the caller's perspective: the content is
// written to a temp file in the same directory as path and then moved
// into place with os.Rename, so a crash mid-write never corrupts the
// existing output.
func (d *Dictionary) Flush(path string, mode FlushMode) error {
	if mode == FlushNoWrite {
		return nil
	}

	if mode == FlushAppend {
		existing, err := readWords(path)
		if err != nil {
			return fmt.Errorf("reading existing dictionary for append: %w", err)
		}
		d.mu.Lock()
		for _, w := range existing {
			d.words[w] = struct{}{}
		}
		d.mu.Unlock()
	}

	words := d.Words()

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".wdict-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for dictionary write: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := bufio.NewWriter(tmp)
	for _, word := range words {
		if _, err := w.WriteString(word); err != nil {
			tmp.Close()
			return fmt.Errorf("writing dictionary: %w", err)
		}
		if _, err := w.WriteString("\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("writing dictionary: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing dictionary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing dictionary temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing dictionary at %s: %w", path, err)
	}
	return nil
}

// readWords reads a newline-delimited word file. A missing file is not
// an error — it returns an empty slice, since append mode with no prior
// output is the common first-run case.
func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
