// Package location provides the unified identifier the crawler uses for
// both remote URLs and local file paths.
//
// Design decision: we model Location as a single immutable struct with a
// private kind discriminant rather than an interface with two
// implementations, because the set of variants is closed and small — a
// switch over the kind is clearer than a type assertion, and it keeps
// Location cheap to pass by value (mirrors the teacher's small value types
// such as internal/model/onion_address.go).
package location

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

type kind int

const (
	kindRemote kind = iota
	kindLocal
)

// Location identifies a single crawl target: either a remote URL or a local
// file path. Locations are immutable once constructed; equality is by
// normalized string form.
type Location struct {
	k        kind
	raw      *url.URL
	path     string
	normal   string
	origin   string
}

// NewRemote returns a Location wrapping the given absolute URL. The host is
// lowercased and the fragment stripped for normalization purposes, per the
// "normalization of URLs" design note.
func NewRemote(rawURL string) (Location, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Location{}, fmt.Errorf("parsing remote location: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Location{}, fmt.Errorf("unsupported scheme %q for remote location", u.Scheme)
	}
	if u.Host == "" {
		return Location{}, fmt.Errorf("remote location missing host: %q", rawURL)
	}
	norm := normalizeURL(u)
	return Location{
		k:      kindRemote,
		raw:    u,
		normal: norm,
		origin: strings.ToLower(u.Hostname()),
	}, nil
}

// NewRemoteRelative resolves href against base and returns the resulting
// remote Location.
func NewRemoteRelative(base Location, href string) (Location, error) {
	if base.k != kindRemote {
		return Location{}, fmt.Errorf("cannot resolve relative href against a local location")
	}
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return Location{}, fmt.Errorf("empty or fragment-only href")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return Location{}, fmt.Errorf("parsing href %q: %w", href, err)
	}
	resolved := base.raw.ResolveReference(ref)
	return NewRemote(resolved.String())
}

// NewLocal returns a Location wrapping the given local file path. The path
// is made absolute via filepath.Abs; it is not required to exist yet (the
// extractor surfaces FilesystemError separately when the path can't be
// read).
func NewLocal(path string) (Location, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Location{}, fmt.Errorf("resolving local path %q: %w", path, err)
	}
	abs = filepath.Clean(abs)
	return Location{
		k:      kindLocal,
		path:   abs,
		normal: "file://" + filepath.ToSlash(abs),
		origin: filepath.ToSlash(abs),
	}, nil
}

// NewLocalChild returns a Location for a path discovered underneath dir.
func NewLocalChild(dir, child string) (Location, error) {
	if filepath.IsAbs(child) {
		return NewLocal(child)
	}
	return NewLocal(filepath.Join(dir, child))
}

// Parse reconstructs a Location from its normalized string form, as
// produced by String(). Used to rehydrate the frontier and visited set
// from a saved StateSnapshot.
func Parse(normalized string) (Location, error) {
	if path, ok := strings.CutPrefix(normalized, "file://"); ok {
		return NewLocal(path)
	}
	return NewRemote(normalized)
}

// IsRemote reports whether this Location is a Remote variant.
func (l Location) IsRemote() bool { return l.k == kindRemote }

// IsLocal reports whether this Location is a Local variant.
func (l Location) IsLocal() bool { return l.k == kindLocal }

// URL returns the underlying *url.URL for a Remote location, or nil
// otherwise.
func (l Location) URL() *url.URL { return l.raw }

// Path returns the underlying filesystem path for a Local location, or ""
// otherwise.
func (l Location) Path() string { return l.path }

// Origin returns the origin used by site policy decisions: the lowercased
// host for Remote locations, the location's own absolute, cleaned path
// (slash-separated) for Local locations.
func (l Location) Origin() string { return l.origin }

// String returns the normalized string form used for equality and the
// Visited set key.
func (l Location) String() string { return l.normal }

// Equal reports whether two Locations are equal by normalized string form.
func (l Location) Equal(other Location) bool { return l.normal == other.normal }

// Host returns the lowercased host of a Remote location, or "" for Local.
func (l Location) Host() string {
	if l.k != kindRemote || l.raw == nil {
		return ""
	}
	return strings.ToLower(l.raw.Hostname())
}

// normalizeURL lowercases the host, strips the default port and fragment,
// and resolves "."/".." segments, while preserving the query string.
func normalizeURL(u *url.URL) string {
	n := *u
	n.Host = strings.ToLower(stripDefaultPort(n))
	n.Fragment = ""
	n.Path = cleanURLPath(n.Path)
	return n.String()
}

func stripDefaultPort(u url.URL) string {
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "" {
		return host
	}
	if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
		return host
	}
	return host + ":" + port
}

func cleanURLPath(p string) string {
	if p == "" {
		return ""
	}
	cleaned := filepath.ToSlash(filepath.Clean(p))
	if cleaned == "." {
		return "/"
	}
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}
	return cleaned
}
