package dsl

import "strings"

var imageSchemes = []string{"http://", "https://", "ftp://"}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// ValidImageSrc reports whether a src value is acceptable for an image
// component: a http(s) or ftp URL, an absolute path starting with a
// single slash, or a bare image filename. Everything else is rejected,
// including javascript: and data: URIs and protocol-relative //host
// forms. Renderers apply the same check again before emitting markup.
func ValidImageSrc(src string) bool {
	for _, scheme := range imageSchemes {
		if strings.HasPrefix(src, scheme) {
			return true
		}
	}
	if strings.HasPrefix(src, "/") {
		return !strings.HasPrefix(src, "//")
	}
	if strings.Contains(src, "/") {
		return false
	}
	lower := strings.ToLower(src)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
