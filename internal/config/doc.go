// Package config defines the crawl configuration: the enumerated options
// a caller supplies to seed a run, plus an optional per-site YAML
// override file for headers, depth, and crawl-rate tuning.
package config
