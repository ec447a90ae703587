// Package preview holds the preview client's state: the session, the
// render surface, the pane resizer and the document assembly rules.
package preview

import (
	"strings"

	"webgen_ai_server/internal/types"
)

const (
	headClose = "</head>"
	bodyClose = "</body>"
)

// AssembleDocument builds the single document the preview surface loads.
// HTML that already carries a <style> block is returned untouched.
func AssembleDocument(bundle types.ProjectBundle) string {
	if HasEmbeddedStyle(bundle.HTML) {
		return bundle.HTML
	}
	return InjectScript(InjectStyle(bundle.HTML, bundle.CSS), bundle.JS)
}

// HasEmbeddedStyle reports whether html contains a <style> opening tag,
// with or without attributes, in any case.
func HasEmbeddedStyle(html string) bool {
	lower := strings.ToLower(html)
	for i := 0; ; {
		idx := strings.Index(lower[i:], "<style")
		if idx < 0 {
			return false
		}
		next := i + idx + len("<style")
		if next < len(lower) {
			switch lower[next] {
			case '>', ' ', '\t', '\n', '\r', '\f', '/':
				return true
			}
		}
		i = next
	}
}

// InjectStyle places css in a style block just before the first </head>.
// Without a </head> the html comes back unchanged.
func InjectStyle(html, css string) string {
	return insertBefore(html, headClose, "<style>"+css+"</style>")
}

// InjectScript places js in a script block just before the first </body>.
// Without a </body> the html comes back unchanged.
func InjectScript(html, js string) string {
	return insertBefore(html, bodyClose, "<script>"+js+"</script>")
}

func insertBefore(html, marker, block string) string {
	idx := strings.Index(html, marker)
	if idx < 0 {
		return html
	}
	return html[:idx] + block + html[idx:]
}
