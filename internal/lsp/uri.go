package lsp

import (
	"net/url"
	"path/filepath"

	"github.com/sourcegraph/go-lsp"
)

// uriToPath maps a file:// URI to a local path. Other schemes (untitled:,
// git:) yield "" and the document is checked by content alone.
func uriToPath(uri lsp.DocumentURI) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(string(uri))
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = string(uri)
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

func pathToURI(path string) lsp.DocumentURI {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return lsp.DocumentURI(u.String())
}
