package dsl

import "regexp"

// Screen, link and navigation names share one shape.
const namePattern = `[A-Za-z0-9_-]+`

// Top-level forms, anchored so they only match at indentation zero. The
// link form is tried after the keyword-led constructs and before screen
// declarations.
var (
	reNavStack    = regexp.MustCompile(`^navigation_stack\s+root=(` + namePattern + `)$`)
	reTabStack    = regexp.MustCompile(`^tab_stack\s+tabs=\[([^\]]*)\]$`)
	reDrawerStack = regexp.MustCompile(`^drawer_stack\s+root=(` + namePattern + `)\s+drawer=(` + namePattern + `)$`)
	reLink        = regexp.MustCompile(`^(` + namePattern + `)\s*->\s*(` + namePattern + `)$`)
	reScreen      = regexp.MustCompile(`^screen\s+(` + namePattern + `)$`)
)

// Body forms, matched against the trimmed line.
var (
	reStackOpen = regexp.MustCompile(`^(vertical_stack|horizontal_stack)\s*\{$`)
	reLabel     = regexp.MustCompile(`^label\s+"([^"]*)"$`)
	reInput     = regexp.MustCompile(`^input(?:\s+placeholder="([^"]*)")?$`)
	reButton    = regexp.MustCompile(`^button\s+"([^"]*)"$`)
	reImage     = regexp.MustCompile(`^image\s+src="([^"]*)"$`)
)
