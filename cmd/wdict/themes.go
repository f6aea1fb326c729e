package main

import (
	"embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesFS embed.FS

var themes map[string]string

func init() {
	data, err := themesFS.ReadFile("themes.yaml")
	if err != nil {
		panic(fmt.Sprintf("reading embedded themes.yaml: %v", err))
	}
	if err := yaml.Unmarshal(data, &themes); err != nil {
		panic(fmt.Sprintf("parsing embedded themes.yaml: %v", err))
	}
}

// themeURL resolves a theme name to its seed URL. The second return value
// is false if name is not a recognized theme.
func themeURL(name string) (string, bool) {
	url, ok := themes[name]
	return url, ok
}

// themeNames returns the recognized theme names, sorted.
func themeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
