package render

import (
	"strings"

	"github.com/hevedar/appsketch/internal/dsl"
)

// blockedSchemes are refused before the allow-list even runs. The
// parser flags these values too, but markup output must stay safe for
// documents rendered with their diagnostics ignored.
var blockedSchemes = []string{"javascript:", "data:", "vbscript:", "file:"}

// SafeImageSrc returns the src value when it is safe to embed in
// markup, or the empty string when the renderer should fall back to a
// placeholder.
func SafeImageSrc(src string) string {
	lower := strings.ToLower(strings.TrimSpace(src))
	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}
	if !dsl.ValidImageSrc(src) {
		return ""
	}
	return src
}
