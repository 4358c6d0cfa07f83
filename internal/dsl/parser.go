// Package dsl parses the sketch screen-description language into a typed
// model. The language is line oriented: top-level constructs start at
// indentation zero, screen and container bodies are indented two spaces
// past their parent, and layout containers close with a brace or by
// de-indentation. Parsing is best effort and never fails; every problem
// becomes a Diagnostic and the surrounding content is still kept.
package dsl

import (
	"fmt"
	"strings"
)

// nestedIndent is how far a body line must sit past its context's base
// indentation.
const nestedIndent = 2

// parseContext is one entry of the open-block stack. Exactly one of
// screen and container is non-nil.
type parseContext struct {
	screen     *Screen
	container  *Container
	baseIndent int
}

func (ctx *parseContext) appendChild(el Element) {
	if ctx.screen != nil {
		ctx.screen.Children = append(ctx.screen.Children, el)
		return
	}
	ctx.container.Children = append(ctx.container.Children, el)
}

// describe names the context the way diagnostics refer to it.
func (ctx *parseContext) describe() string {
	if ctx.screen != nil {
		return fmt.Sprintf("screen %q", ctx.screen.Name)
	}
	return string(ctx.container.Kind)
}

type parser struct {
	result *ParseResult
	stack  []parseContext
}

// Parse converts sketch source text into a ParseResult. It is pure and
// deterministic: no I/O, no shared state, and the same input always
// yields the same result, so callers may re-parse on every edit.
func Parse(src string) *ParseResult {
	p := &parser{
		result: &ParseResult{
			Screens:     []*Screen{},
			Links:       []ScreenLink{},
			Diagnostics: []Diagnostic{},
		},
	}

	lines := strings.Split(src, "\n")
	p.result.LineCount = len(lines)
	for i, raw := range lines {
		p.parseLine(i+1, raw)
	}
	p.finalize()
	p.validateLinks()
	return p.result
}

func (p *parser) parseLine(lineNo int, raw string) {
	// Trailing whitespace never matters; this also strips the \r of
	// CRLF input.
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") {
		return
	}
	indent := len(line) - len(strings.TrimLeft(line, " \t"))

	if strings.HasPrefix(trimmed, "}") {
		p.closeBrace(lineNo, indent, trimmed)
		return
	}

	// De-indentation closes containers without an explicit brace.
	for p.top() != nil && p.top().container != nil && indent <= p.top().baseIndent {
		p.pop()
	}
	// A screen body only ends when a new top-level construct starts.
	if top := p.top(); top != nil && top.screen != nil && indent == 0 {
		p.pop()
	}

	if len(p.stack) == 0 {
		p.parseTopLevel(lineNo, line, trimmed)
		return
	}
	p.parseNested(lineNo, indent, trimmed)
}

// closeBrace resolves a line whose content starts with '}'. Recovery is
// deliberately forgiving: a brace below the innermost container's base
// indentation may belong to an outer block, so inner blocks close
// silently first, mirroring the de-indentation rule.
func (p *parser) closeBrace(lineNo, indent int, trimmed string) {
	rest := strings.TrimSpace(trimmed[1:])
	for {
		top := p.top()
		if top == nil {
			p.errorf(lineNo, "unexpected content at top level: %s", trimmed)
			return
		}
		if top.screen != nil {
			p.errorf(lineNo, "closing brace not valid within a screen context")
			return
		}

		switch {
		case indent == top.baseIndent:
			p.pop()
		case indent < top.baseIndent:
			p.pop()
			continue
		case indent < top.baseIndent+nestedIndent:
			p.errorf(lineNo, "misplaced closing brace for %s: expected indentation %d, found %d",
				top.container.Kind, top.baseIndent, indent)
			p.pop()
		default:
			// Indented past the block's own body start, so it cannot be
			// closing this container.
			p.errorf(lineNo, "extraneous or misplaced closing brace")
			return
		}
		if rest != "" {
			p.errorf(lineNo, "unexpected content after closing brace on the same line")
		}
		return
	}
}

// parseTopLevel classifies a line with no open context. The five forms
// are tried in declaration-priority order so that the keyword-led
// constructs win over the more permissive link form.
func (p *parser) parseTopLevel(lineNo int, line, trimmed string) {
	switch {
	case reNavStack.MatchString(line):
		m := reNavStack.FindStringSubmatch(line)
		p.registerNavigation(&NavigationConfig{Kind: NavStack, Root: m[1], LineNumber: lineNo}, lineNo)

	case reTabStack.MatchString(line):
		m := reTabStack.FindStringSubmatch(line)
		tabs := splitTabNames(m[1])
		if len(tabs) == 0 {
			p.errorf(lineNo, "tab_stack must define at least one tab screen name")
			return
		}
		p.registerNavigation(&NavigationConfig{Kind: NavTabs, Tabs: tabs, LineNumber: lineNo}, lineNo)

	case reDrawerStack.MatchString(line):
		m := reDrawerStack.FindStringSubmatch(line)
		p.registerNavigation(&NavigationConfig{Kind: NavDrawer, Root: m[1], Drawer: m[2], LineNumber: lineNo}, lineNo)

	case reLink.MatchString(line):
		m := reLink.FindStringSubmatch(line)
		p.result.Links = append(p.result.Links, ScreenLink{Source: m[1], Target: m[2], LineNumber: lineNo})

	case reScreen.MatchString(line):
		m := reScreen.FindStringSubmatch(line)
		name := m[1]
		if p.result.Screen(name) != nil {
			p.errorf(lineNo, "Duplicate screen name: %s", name)
		}
		screen := &Screen{Name: name, Children: []Element{}, LineNumber: lineNo}
		p.result.Screens = append(p.result.Screens, screen)
		p.push(parseContext{screen: screen})

	default:
		p.errorf(lineNo, "unexpected content at top level: %s", trimmed)
	}
}

// registerNavigation keeps the first navigation construct and reports
// every later one.
func (p *parser) registerNavigation(nav *NavigationConfig, lineNo int) {
	if p.result.Navigation != nil {
		p.errorf(lineNo, "only one global navigation construct is allowed; ignoring subsequent declaration")
		return
	}
	p.result.Navigation = nav
}

// parseNested classifies a body line of the innermost open screen or
// container.
func (p *parser) parseNested(lineNo, indent int, trimmed string) {
	top := p.top()
	expected := top.baseIndent + nestedIndent
	if indent < expected {
		p.errorf(lineNo, "incorrect indentation: expected at least %d spaces inside %s, found %d",
			expected, top.describe(), indent)
		return
	}

	switch {
	case reStackOpen.MatchString(trimmed):
		m := reStackOpen.FindStringSubmatch(trimmed)
		container := &Container{Kind: ContainerKind(m[1]), Children: []Element{}, LineNumber: lineNo}
		top.appendChild(container)
		p.push(parseContext{container: container, baseIndent: indent})

	case reLabel.MatchString(trimmed):
		m := reLabel.FindStringSubmatch(trimmed)
		top.appendChild(&Component{Kind: ComponentLabel, Text: m[1], LineNumber: lineNo})

	case reInput.MatchString(trimmed):
		m := reInput.FindStringSubmatch(trimmed)
		top.appendChild(&Component{Kind: ComponentInput, Placeholder: m[1], LineNumber: lineNo})

	case reButton.MatchString(trimmed):
		m := reButton.FindStringSubmatch(trimmed)
		top.appendChild(&Component{Kind: ComponentButton, Text: m[1], LineNumber: lineNo})

	case reImage.MatchString(trimmed):
		m := reImage.FindStringSubmatch(trimmed)
		src := m[1]
		if !ValidImageSrc(src) {
			p.errorf(lineNo, "invalid image src: %s", src)
		}
		// The component is still created so the preview can show the
		// offending value in place.
		top.appendChild(&Component{Kind: ComponentImage, Src: src, LineNumber: lineNo})

	default:
		p.errorf(lineNo, "invalid syntax or misplaced content within '%s': %s", top.describe(), trimmed)
	}
}

// finalize reports the innermost container left open at end of input.
// Outer blocks and open screens close implicitly, so only the block the
// author was most recently inside is flagged.
func (p *parser) finalize() {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if c := p.stack[i].container; c != nil {
			p.errorf(c.LineNumber, "Unclosed %s block started on this line (missing '}'?)", c.Kind)
			break
		}
	}
	p.stack = p.stack[:0]
}

func (p *parser) top() *parseContext {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func (p *parser) push(ctx parseContext) {
	p.stack = append(p.stack, ctx)
}

func (p *parser) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *parser) errorf(lineNo int, format string, args ...interface{}) {
	p.result.Diagnostics = append(p.result.Diagnostics, Diagnostic{
		Message:    fmt.Sprintf(format, args...),
		LineNumber: lineNo,
	})
}

// splitTabNames splits the bracketed tab list; empty entries from
// stray commas or whitespace are dropped.
func splitTabNames(list string) []string {
	parts := strings.Split(list, ",")
	tabs := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			tabs = append(tabs, name)
		}
	}
	return tabs
}
