package policy

import "testing"

// Test vectors ported from the original Rust implementation's
// src/site.rs macro-generated test tables.
func TestMatchesSame(t *testing.T) {
	tests := []struct {
		seed, cand string
		want       bool
	}{
		{"www.example.com", "www.example.com", true},
		{"example.com", "example.com", true},
		{"foo.bar.example.com", "foo.bar.example.com", true},
		{"example.com", "www.example.com", false},
		{"bar.example.com", "foo.bar.example.com", false},
		{"example.com", "abc.example.com", false},
		{"www.example.com", "example.com", false},
		{"foo.bar.example.com", "bar.example.com", false},
		{"abc.example.com", "example.com", false},
		{"foo.bar.example.com", "abc.example.com", false},
		{"foo.bar.example.com", "abc.example.co.uk", false},
	}
	for _, tt := range tests {
		if got := Matches(Same, tt.seed, tt.cand); got != tt.want {
			t.Errorf("Matches(Same, %q, %q) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}

func TestMatchesSubdomain(t *testing.T) {
	tests := []struct {
		seed, cand string
		want       bool
	}{
		{"www.example.com", "www.example.com", true},
		{"example.com", "example.com", true},
		{"foo.bar.example.com", "foo.bar.example.com", true},
		{"example.com", "www.example.com", true},
		{"bar.example.com", "foo.bar.example.com", true},
		{"example.com", "abc.example.com", true},
		{"www.example.com", "example.com", false},
		{"foo.bar.example.com", "bar.example.com", false},
		{"abc.example.com", "example.com", false},
		{"foo.bar.example.com", "abc.example.com", false},
		{"foo.bar.example.com", "abc.example.co.uk", false},
	}
	for _, tt := range tests {
		if got := Matches(Subdomain, tt.seed, tt.cand); got != tt.want {
			t.Errorf("Matches(Subdomain, %q, %q) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}

func TestMatchesSibling(t *testing.T) {
	tests := []struct {
		seed, cand string
		want       bool
	}{
		{"www.example.com", "www.example.com", true},
		{"example.com", "example.com", true},
		{"foo.bar.example.com", "foo.bar.example.com", true},
		{"example.com", "www.example.com", true},
		{"bar.example.com", "foo.bar.example.com", true},
		{"example.com", "abc.example.com", true},
		{"www.example.com", "example.com", true},
		{"foo.bar.example.com", "bar.example.com", true},
		{"abc.example.com", "example.com", true},
		{"foo.bar.example.com", "abc.example.com", true},
		{"foo.bar.example.com", "abc.example.co.uk", false},
	}
	for _, tt := range tests {
		if got := Matches(Sibling, tt.seed, tt.cand); got != tt.want {
			t.Errorf("Matches(Sibling, %q, %q) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}

func TestMatchesAll(t *testing.T) {
	tests := []struct {
		seed, cand string
		want       bool
	}{
		{"www.example.com", "www.example.com", true},
		{"foo.bar.example.com", "abc.example.co.uk", true},
		{"example.com", "", false}, // no host on candidate
	}
	for _, tt := range tests {
		if got := Matches(All, tt.seed, tt.cand); got != tt.want {
			t.Errorf("Matches(All, %q, %q) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}

func TestMatchesLocal(t *testing.T) {
	tests := []struct {
		seed, cand string
		want       bool
	}{
		{"/home/user/site", "/home/user/site", true},
		{"/home/user/site", "/home/user/site/a/b.txt", true},
		{"/home/user/site", "/home/user/siteother", false},
		{"/home/user/site", "/home/user", false},
		{"/home/user/site", "/etc/passwd", false},
	}
	for _, tt := range tests {
		if got := MatchesLocal(tt.seed, tt.cand); got != tt.want {
			t.Errorf("MatchesLocal(%q, %q) = %v, want %v", tt.seed, tt.cand, got, tt.want)
		}
	}
}

func TestPolicyValid(t *testing.T) {
	for _, p := range []Policy{Same, Subdomain, Sibling, All} {
		if !p.Valid() {
			t.Errorf("%v should be valid", p)
		}
	}
	if Policy("bogus").Valid() {
		t.Error("bogus policy should not be valid")
	}
}
