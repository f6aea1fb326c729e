// Package extract turns fetched bytes (remote HTML/CSS/JS/text, or local
// files) into candidate words and out-links.
//
// Design decision: a single Extract entry point dispatches on MediaKind
// rather than exposing a separate extractor type per kind, mirroring the
// teacher's internal/crawler/parser.go Parser.Parse single-pass design —
// one walk over the content produces both words and links together.
package extract

import (
	"io"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// MediaKind classifies the fetched payload so Extract knows how to read
// it.
type MediaKind int

const (
	// MediaHTML is parsed as a DOM tree.
	MediaHTML MediaKind = iota
	// MediaCSS is tokenized in full as word candidates.
	MediaCSS
	// MediaJS is tokenized in full as word candidates.
	MediaJS
	// MediaText is tokenized in full as word candidates.
	MediaText
)

// KindFromContentType maps an HTTP Content-Type header value to a
// MediaKind, falling back to MediaText for anything unrecognized.
func KindFromContentType(contentType string) MediaKind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "html"):
		return MediaHTML
	case strings.Contains(ct, "css"):
		return MediaCSS
	case strings.Contains(ct, "javascript"), strings.Contains(ct, "ecmascript"):
		return MediaJS
	default:
		return MediaText
	}
}

// KindFromExtension maps a local file extension (including the leading
// dot, e.g. ".html") to a MediaKind.
func KindFromExtension(ext string) MediaKind {
	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return MediaHTML
	case ".css":
		return MediaCSS
	case ".js", ".mjs":
		return MediaJS
	default:
		return MediaText
	}
}

// Options controls which parts of an HTML document are visited.
type Options struct {
	// IncludeJS, when true, extracts text content of <script> nodes and
	// enqueues their src attributes as out-links.
	IncludeJS bool
	// IncludeCSS, when true, extracts text content of <style> nodes and
	// enqueues <link rel="stylesheet"> hrefs as out-links.
	IncludeCSS bool
}

// Result holds everything extracted from a single fetched document.
type Result struct {
	// Words are the raw token candidates, pre-filter-pipeline.
	Words []string
	// OutLinks are absolute URLs discovered in the document, already
	// resolved against the base URL.
	OutLinks []string
}

// Extract dispatches on kind and returns the words and out-links found in
// content. base is the URL the content was fetched from, used to resolve
// relative references; base may be nil for CSS/JS/text extraction.
func Extract(content io.Reader, kind MediaKind, base *url.URL, opts Options) (Result, error) {
	switch kind {
	case MediaHTML:
		return extractHTML(content, base, opts)
	default:
		body, err := io.ReadAll(content)
		if err != nil {
			return Result{}, err
		}
		return Result{Words: tokenize(string(body))}, nil
	}
}

// linkAttrs maps an element name to the attribute holding its reference,
// for the out-link element set named in the extraction rules: <a href>,
// <area href>, <frame src>, <iframe src>, <img src>.
var linkAttrs = map[string]string{
	"a":      "href",
	"area":   "href",
	"frame":  "src",
	"iframe": "src",
	"img":    "src",
}

func extractHTML(content io.Reader, base *url.URL, opts Options) (Result, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var walk func(n *html.Node, skipText bool)
	walk = func(n *html.Node, skipText bool) {
		switch n.Type {
		case html.TextNode:
			if !skipText {
				res.Words = append(res.Words, tokenize(n.Data)...)
			}
		case html.ElementNode:
			switch n.Data {
			case "script":
				if opts.IncludeJS {
					if src := attr(n, "src"); src != "" {
						res.addLink(base, src)
					}
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, !opts.IncludeJS)
				}
				return
			case "style":
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, !opts.IncludeCSS)
				}
				return
			case "link":
				if opts.IncludeCSS && isStylesheet(n) {
					if href := attr(n, "href"); href != "" {
						res.addLink(base, href)
					}
				}
			default:
				if refAttr, ok := linkAttrs[n.Data]; ok {
					if ref := attr(n, refAttr); ref != "" {
						res.addLink(base, ref)
					}
				}
			}
		case html.CommentNode:
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, skipText)
		}
	}
	walk(doc, false)
	return res, nil
}

func isStylesheet(n *html.Node) bool {
	return strings.EqualFold(attr(n, "rel"), "stylesheet")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

func (r *Result) addLink(base *url.URL, ref string) {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return
	}
	if strings.HasPrefix(ref, "javascript:") || strings.HasPrefix(ref, "mailto:") ||
		strings.HasPrefix(ref, "tel:") || strings.HasPrefix(ref, "data:") {
		return
	}
	u, err := url.Parse(ref)
	if err != nil {
		return
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	r.OutLinks = append(r.OutLinks, u.String())
}

// tokenize splits s into word candidates on any Unicode non-letter/
// non-digit/non-apostrophe boundary, discarding zero-length tokens and
// trimming leading/trailing apostrophes. Locale-independent.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		tok := strings.Trim(cur.String(), "'")
		if tok != "" {
			tokens = append(tokens, tok)
		}
		cur.Reset()
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			cur.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
