// Package crawler owns the frontier, the visited set, and the
// fetch-extract-filter-insert loop that turns a seed Location into a
// Dictionary.
//
// Design decision: depth is drained level by level rather than with a
// single FIFO queue (contrast the teacher's internal/crawler.Spider),
// because every location at depth d must be fetched before any location
// at depth d+1 starts — that ordering is what gives a snapshot taken
// between depth levels its deterministic resume semantics.
package crawler
