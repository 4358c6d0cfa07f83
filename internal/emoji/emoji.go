package emoji

// glyphMap holds emoji and plain-text fallback mappings
var glyphMap = map[string][2]string{
	// [emoji, fallback]
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"success":    {"✅", "[OK]"},
	"screen":     {"📱", "[SCR]"},
	"component":  {"🧩", "[CMP]"},
	"container":  {"🗂️", "[BOX]"},
	"link":       {"🔗", "[->]"},
	"navigation": {"🧭", "[NAV]"},
	"document":   {"📄", "[DOC]"},
	"stats":      {"📊", "[STATS]"},
	"watch":      {"👀", "[WATCH]"},
	"server":     {"🌐", "[SRV]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on the no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := glyphMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
