package config

// SiteOverride holds per-host tuning applied on top of the global Config
// when the crawler fetches a location on that host.
type SiteOverride struct {
	// Headers are additional HTTP headers to include for this host.
	Headers map[string]string `yaml:"headers,omitempty"`

	// ReqPerSec overrides the global requests-per-second ceiling for
	// this host. Zero means "use the global value".
	ReqPerSec int `yaml:"reqPerSec,omitempty"`

	// Depth overrides the global crawl depth for this host. Zero means
	// "use the global value".
	Depth int `yaml:"depth,omitempty"`
}

// Overrides represents a site-override document: a default applied to
// every host plus per-host exceptions keyed by hostname.
type Overrides struct {
	// Sites maps hostnames to their site-specific overrides.
	Sites map[string]SiteOverride `yaml:"sites,omitempty"`

	// Defaults is applied to every host unless overridden per-site.
	Defaults SiteOverride `yaml:"defaults,omitempty"`
}

// For returns the effective override for host, merging Defaults with any
// host-specific entry.
func (o *Overrides) For(host string) SiteOverride {
	result := o.Defaults

	if site, ok := o.Sites[host]; ok {
		if site.ReqPerSec != 0 {
			result.ReqPerSec = site.ReqPerSec
		}
		if site.Depth != 0 {
			result.Depth = site.Depth
		}
		if len(site.Headers) > 0 {
			merged := make(map[string]string, len(result.Headers)+len(site.Headers))
			for k, v := range result.Headers {
				merged[k] = v
			}
			for k, v := range site.Headers {
				merged[k] = v
			}
			result.Headers = merged
		}
	}
	return result
}
