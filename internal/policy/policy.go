// Package policy decides whether a discovered location is eligible for
// crawling given the starting origin.
//
// Design decision: SitePolicy is a string-backed enum with methods rather
// than an interface, matching the teacher's small-enum style in
// internal/model/severity.go — there are exactly four variants and none of
// them carry extra state.
package policy

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Policy selects how aggressively the crawler follows links away from the
// starting host.
type Policy string

const (
	// Same allows only the exact starting host.
	Same Policy = "same"
	// Subdomain allows the starting host and any of its subdomains.
	Subdomain Policy = "subdomain"
	// Sibling allows any host sharing the starting host's registrable
	// domain.
	Sibling Policy = "sibling"
	// All allows any host.
	All Policy = "all"
)

// String implements fmt.Stringer.
func (p Policy) String() string { return string(p) }

// Valid reports whether p is one of the four recognized variants.
func (p Policy) Valid() bool {
	switch p {
	case Same, Subdomain, Sibling, All:
		return true
	default:
		return false
	}
}

// Matches returns whether candidateHost is eligible for crawling given the
// seedHost and the configured policy. Hosts are compared case-insensitively;
// callers are expected to have already lowercased both, but Matches
// lowercases defensively.
func Matches(p Policy, seedHost, candidateHost string) bool {
	seedHost = strings.ToLower(seedHost)
	candidateHost = strings.ToLower(candidateHost)
	if candidateHost == "" {
		return false
	}

	switch p {
	case Same:
		return candidateHost == seedHost
	case Subdomain:
		return candidateHost == seedHost || strings.HasSuffix(candidateHost, "."+seedHost)
	case Sibling:
		seedReg, err1 := registrable(seedHost)
		candReg, err2 := registrable(candidateHost)
		if err1 != nil || err2 != nil {
			return false
		}
		return seedReg == candReg
	case All:
		return true
	default:
		return false
	}
}

// registrable returns the registrable domain (public suffix + one label)
// for host, e.g. "foo.bar.example.co.uk" -> "example.co.uk".
func registrable(host string) (string, error) {
	return publicsuffix.EffectiveTLDPlusOne(host)
}

// MatchesLocal returns whether candidatePath (absolute, cleaned) is a
// descendant of seedPath (absolute, cleaned). Local locations are always
// constrained this way regardless of the configured Policy variant.
func MatchesLocal(seedPath, candidatePath string) bool {
	if candidatePath == seedPath {
		return true
	}
	sep := string(seedSeparator)
	prefix := seedPath
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	return strings.HasPrefix(candidatePath, prefix)
}

const seedSeparator = '/'
