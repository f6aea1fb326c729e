package extract

import (
	"net/url"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"hello world", []string{"hello", "world"}},
		{"don't stop", []string{"don't", "stop"}},
		{"'quoted' word", []string{"quoted", "word"}},
		{"a1 b2c3", []string{"a1", "b2c3"}},
		{"  ", nil},
		{"foo-bar_baz", []string{"foo", "bar", "baz"}},
	}
	for _, tt := range tests {
		got := tokenize(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("tokenize(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestExtractHTMLBasic(t *testing.T) {
	base, _ := url.Parse("https://example.com/dir/page.html")
	html := `<html><body>
		<a href="/other.html">link text</a>
		<script>var secret = "not extracted";</script>
		<style>.cls { color: red; }</style>
		<!-- a comment word -->
		<p>hello world</p>
	</body></html>`

	res, err := Extract(strings.NewReader(html), MediaHTML, base, Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(res.OutLinks) != 1 || res.OutLinks[0] != "https://example.com/other.html" {
		t.Errorf("OutLinks = %v", res.OutLinks)
	}
	joined := strings.Join(res.Words, " ")
	if strings.Contains(joined, "secret") {
		t.Errorf("script text leaked without IncludeJS: %v", res.Words)
	}
	if strings.Contains(joined, "comment") {
		t.Errorf("comment text leaked: %v", res.Words)
	}
	if !strings.Contains(joined, "hello") {
		t.Errorf("expected visible text to be extracted: %v", res.Words)
	}
}

func TestExtractHTMLIncludeJSAndCSS(t *testing.T) {
	base, _ := url.Parse("https://example.com/")
	html := `<html><head>
		<link rel="stylesheet" href="style.css">
	</head><body>
		<script src="app.js">var secretWord = 1;</script>
	</body></html>`

	res, err := Extract(strings.NewReader(html), MediaHTML, base, Options{IncludeJS: true, IncludeCSS: true})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	joined := strings.Join(res.Words, " ")
	if !strings.Contains(joined, "secretWord") {
		t.Errorf("expected script text when IncludeJS set: %v", res.Words)
	}
	wantLinks := map[string]bool{
		"https://example.com/style.css": false,
		"https://example.com/app.js":    false,
	}
	for _, l := range res.OutLinks {
		if _, ok := wantLinks[l]; ok {
			wantLinks[l] = true
		}
	}
	for l, found := range wantLinks {
		if !found {
			t.Errorf("expected out-link %q, got %v", l, res.OutLinks)
		}
	}
}

func TestKindFromContentTypeAndExtension(t *testing.T) {
	if KindFromContentType("text/html; charset=utf-8") != MediaHTML {
		t.Error("expected MediaHTML")
	}
	if KindFromContentType("text/css") != MediaCSS {
		t.Error("expected MediaCSS")
	}
	if KindFromContentType("application/javascript") != MediaJS {
		t.Error("expected MediaJS")
	}
	if KindFromContentType("text/plain") != MediaText {
		t.Error("expected MediaText")
	}
	if KindFromExtension(".HTM") != MediaHTML {
		t.Error("expected MediaHTML for .HTM")
	}
}
