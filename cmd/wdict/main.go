// Package main provides the entry point for the wdict CLI.
//
// wdict crawls a remote site or a local directory tree and builds a
// deduplicated wordlist from the text it finds.
//
// Usage:
//
//	wdict crawl --url https://example.com
//	wdict crawl --path ./docs
//	wdict crawl --resume state.json
//
// See --help for all available options.
package main

import (
	"fmt"
	"os"

	"github.com/pyqlsa/wdict/internal/werr"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(werr.ExitCode(err))
	}
}
