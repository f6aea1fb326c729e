package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrOverridesNotFound is returned when the site-override file does not
// exist.
var ErrOverridesNotFound = errors.New("site override file not found")

// LoadOverrides loads a site-override document from a YAML file. If the
// file does not exist, it returns ErrOverridesNotFound so the caller can
// decide whether an explicitly-supplied path should be fatal.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path) //nolint:gosec // caller-supplied path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrOverridesNotFound
		}
		return nil, err
	}

	var o Overrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o.Sites == nil {
		o.Sites = make(map[string]SiteOverride)
	}
	return &o, nil
}
