package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pyqlsa/wdict/internal/policy"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	if cfg.Depth != DefaultDepth {
		t.Errorf("Depth = %d, want %d", cfg.Depth, DefaultDepth)
	}
	if cfg.MinWordLength != DefaultMinWordLength {
		t.Errorf("MinWordLength = %d, want %d", cfg.MinWordLength, DefaultMinWordLength)
	}
	if cfg.MaxWordLength != DefaultMaxWordLength {
		t.Errorf("MaxWordLength = %d, want %d", cfg.MaxWordLength, DefaultMaxWordLength)
	}
	if cfg.SitePolicy != policy.Same {
		t.Errorf("SitePolicy = %v, want %v", cfg.SitePolicy, policy.Same)
	}
	if cfg.ReqPerSec != DefaultReqPerSec {
		t.Errorf("ReqPerSec = %d, want %d", cfg.ReqPerSec, DefaultReqPerSec)
	}
	if cfg.LimitConcurrent != DefaultLimitConcurrent {
		t.Errorf("LimitConcurrent = %d, want %d", cfg.LimitConcurrent, DefaultLimitConcurrent)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := New()
		c.Start = StartRemote
		c.URL = "https://example.com"
		return c
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing url returns ErrNoTarget", func(t *testing.T) {
		c := valid()
		c.URL = ""
		if err := c.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("negative depth returns ErrInvalidDepth", func(t *testing.T) {
		c := valid()
		c.Depth = -1
		if err := c.Validate(); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("expected ErrInvalidDepth, got %v", err)
		}
	})

	t.Run("min exceeds max returns ErrInvalidWordLength", func(t *testing.T) {
		c := valid()
		c.MinWordLength = 10
		c.MaxWordLength = 5
		if err := c.Validate(); !errors.Is(err, ErrInvalidWordLength) {
			t.Errorf("expected ErrInvalidWordLength, got %v", err)
		}
	})

	t.Run("zero req per sec returns ErrInvalidReqPerSec", func(t *testing.T) {
		c := valid()
		c.ReqPerSec = 0
		if err := c.Validate(); !errors.Is(err, ErrInvalidReqPerSec) {
			t.Errorf("expected ErrInvalidReqPerSec, got %v", err)
		}
	})

	t.Run("zero concurrency limit returns ErrInvalidLimitConcurrent", func(t *testing.T) {
		c := valid()
		c.LimitConcurrent = 0
		if err := c.Validate(); !errors.Is(err, ErrInvalidLimitConcurrent) {
			t.Errorf("expected ErrInvalidLimitConcurrent, got %v", err)
		}
	})

	t.Run("invalid site policy returns ErrInvalidSitePolicy", func(t *testing.T) {
		c := valid()
		c.SitePolicy = policy.Policy("bogus")
		if err := c.Validate(); !errors.Is(err, ErrInvalidSitePolicy) {
			t.Errorf("expected ErrInvalidSitePolicy, got %v", err)
		}
	})

	t.Run("append and no-write both set returns ErrConflictingOutputModes", func(t *testing.T) {
		c := valid()
		c.Append = true
		c.NoWrite = true
		if err := c.Validate(); !errors.Is(err, ErrConflictingOutputModes) {
			t.Errorf("expected ErrConflictingOutputModes, got %v", err)
		}
	})

	t.Run("local start requires path", func(t *testing.T) {
		c := New()
		c.Start = StartLocal
		if err := c.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
		c.Path = "/tmp/site"
		if err := c.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("resume start requires resume path", func(t *testing.T) {
		c := New()
		c.Start = StartResume
		if err := c.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})
}

func TestOverridesFor(t *testing.T) {
	o := &Overrides{
		Defaults: SiteOverride{
			Depth:     2,
			ReqPerSec: 5,
			Headers:   map[string]string{"X-Default": "1"},
		},
		Sites: map[string]SiteOverride{
			"example.com": {
				Depth:   4,
				Headers: map[string]string{"X-Custom": "2"},
			},
		},
	}

	got := o.For("example.com")
	if got.Depth != 4 {
		t.Errorf("Depth = %d, want 4", got.Depth)
	}
	if got.ReqPerSec != 5 {
		t.Errorf("ReqPerSec = %d, want 5 (inherited from defaults)", got.ReqPerSec)
	}
	if got.Headers["X-Default"] != "1" || got.Headers["X-Custom"] != "2" {
		t.Errorf("Headers = %v, want both default and site keys", got.Headers)
	}

	fallback := o.For("unknown.com")
	if fallback.Depth != 2 {
		t.Errorf("Depth = %d, want default 2", fallback.Depth)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Run("missing file returns ErrOverridesNotFound", func(t *testing.T) {
		_, err := LoadOverrides("/nonexistent/path/overrides.yaml")
		if !errors.Is(err, ErrOverridesNotFound) {
			t.Fatalf("expected ErrOverridesNotFound, got %v", err)
		}
	})

	t.Run("loads valid YAML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "overrides.yaml")
		content := `defaults:
  reqPerSec: 3
sites:
  example.com:
    depth: 5
    headers:
      Authorization: "Bearer token"
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		o, err := LoadOverrides(path)
		if err != nil {
			t.Fatalf("LoadOverrides: %v", err)
		}
		if o.Defaults.ReqPerSec != 3 {
			t.Errorf("Defaults.ReqPerSec = %d, want 3", o.Defaults.ReqPerSec)
		}
		site := o.Sites["example.com"]
		if site.Depth != 5 {
			t.Errorf("site depth = %d, want 5", site.Depth)
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Errorf("expected Authorization header, got %v", site.Headers)
		}
	})

	t.Run("invalid YAML returns error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "overrides.yaml")
		if err := os.WriteFile(path, []byte("invalid: yaml: [}"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := LoadOverrides(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

func TestXDGStateDir(t *testing.T) {
	if XDGStateDir() == "" {
		t.Error("expected non-empty XDG state dir")
	}
}
