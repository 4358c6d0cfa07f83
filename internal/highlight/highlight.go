// Package highlight classifies sketch source lines into colorable
// tokens. Its grammar is looser than the parser's on purpose: partially
// typed lines still highlight sensibly, and a highlighting mismatch
// never implies a parse diagnostic or vice versa.
package highlight

import "strings"

// Kind labels a token for styling
type Kind string

const (
	KindComment Kind = "comment"
	KindKeyword Kind = "keyword"
	KindString  Kind = "string"
	KindAttr    Kind = "attr"
	KindName    Kind = "name"
	KindArrow   Kind = "arrow"
	KindBrace   Kind = "brace"
	KindPunct   Kind = "punct"
	KindText    Kind = "text"
)

// Token is a classified span of one line. Start and End are byte
// offsets into the line; tokens are ordered and never overlap, and the
// gaps between them are whitespace.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Text  string
}

var keywords = map[string]bool{
	"screen":           true,
	"vertical_stack":   true,
	"horizontal_stack": true,
	"label":            true,
	"input":            true,
	"button":           true,
	"image":            true,
	"navigation_stack": true,
	"tab_stack":        true,
	"drawer_stack":     true,
}

// Tokenize classifies every line of a document
func Tokenize(src string) [][]Token {
	lines := strings.Split(src, "\n")
	tokens := make([][]Token, len(lines))
	for i, line := range lines {
		tokens[i] = TokenizeLine(line)
	}
	return tokens
}

// TokenizeLine classifies a single line
func TokenizeLine(line string) []Token {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
		start := strings.Index(line, trimmed)
		return []Token{{Kind: KindComment, Start: start, End: len(line), Text: line[start:]}}
	}

	var tokens []Token
	emit := func(kind Kind, start, end int) {
		tokens = append(tokens, Token{Kind: kind, Start: start, End: end, Text: line[start:end]})
	}

	i := 0
	for i < len(line) {
		ch := line[i]
		switch {
		case ch == ' ' || ch == '\t':
			i++

		case ch == '"':
			// Unterminated strings run to end of line so the editor
			// colors them while the author is still typing.
			end := i + 1
			for end < len(line) && line[end] != '"' {
				end++
			}
			if end < len(line) {
				end++
			}
			emit(KindString, i, end)
			i = end

		case ch == '{' || ch == '}':
			emit(KindBrace, i, i+1)
			i++

		case ch == '-' && i+1 < len(line) && line[i+1] == '>':
			emit(KindArrow, i, i+2)
			i += 2

		case ch == '[' || ch == ']' || ch == ',' || ch == '=':
			emit(KindPunct, i, i+1)
			i++

		case isWordChar(ch):
			end := i
			// Words may contain '-', but not the '-' of an arrow.
			for end < len(line) && isWordChar(line[end]) {
				if line[end] == '-' && end+1 < len(line) && line[end+1] == '>' {
					break
				}
				end++
			}
			word := line[i:end]
			switch {
			case keywords[word]:
				emit(KindKeyword, i, end)
			case end < len(line) && line[end] == '=':
				emit(KindAttr, i, end)
			default:
				emit(KindName, i, end)
			}
			i = end

		default:
			end := i
			for end < len(line) && !isBoundary(line[end]) {
				end++
			}
			emit(KindText, i, end)
			i = end
		}
	}
	return tokens
}

func isWordChar(ch byte) bool {
	return ch == '_' || ch == '-' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isBoundary(ch byte) bool {
	switch ch {
	case ' ', '\t', '"', '{', '}', '[', ']', ',', '=':
		return true
	}
	return isWordChar(ch)
}
