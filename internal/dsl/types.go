package dsl

// ComponentKind identifies a leaf UI component
type ComponentKind string

const (
	ComponentLabel  ComponentKind = "label"
	ComponentInput  ComponentKind = "input"
	ComponentButton ComponentKind = "button"
	ComponentImage  ComponentKind = "image"
)

// ContainerKind identifies a layout container direction
type ContainerKind string

const (
	ContainerVertical   ContainerKind = "vertical_stack"
	ContainerHorizontal ContainerKind = "horizontal_stack"
)

// NavKind identifies the flavor of the global navigation construct
type NavKind string

const (
	NavStack  NavKind = "navigation_stack"
	NavTabs   NavKind = "tab_stack"
	NavDrawer NavKind = "drawer_stack"
)

// Element is a node in a screen's content tree, either a *Component or
// a *Container
type Element interface {
	element()

	// Line returns the 1-based source line the element was declared on
	Line() int
}

// Component represents a leaf UI element inside a screen or container
type Component struct {
	Kind        ComponentKind `json:"kind"`
	Text        string        `json:"text,omitempty"`
	Placeholder string        `json:"placeholder,omitempty"`
	Src         string        `json:"src,omitempty"`
	LineNumber  int           `json:"line_number"`
}

func (*Component) element() {}

func (c *Component) Line() int { return c.LineNumber }

// Container represents a layout block grouping child elements; containers
// nest to arbitrary depth
type Container struct {
	Kind       ContainerKind `json:"kind"`
	Children   []Element     `json:"children"`
	LineNumber int           `json:"line_number"`
}

func (*Container) element() {}

func (c *Container) Line() int { return c.LineNumber }

// Screen represents a top-level screen declaration and its content tree
type Screen struct {
	Name       string    `json:"name"`
	Children   []Element `json:"children"`
	LineNumber int       `json:"line_number"`
}

// NavigationConfig represents the single global navigation construct.
// Root is set for navigation_stack and drawer_stack, Tabs for tab_stack,
// Drawer for drawer_stack.
type NavigationConfig struct {
	Kind       NavKind  `json:"kind"`
	Root       string   `json:"root,omitempty"`
	Tabs       []string `json:"tabs,omitempty"`
	Drawer     string   `json:"drawer,omitempty"`
	LineNumber int      `json:"line_number"`
}

// ScreenLink represents a navigation edge between two screens by name
type ScreenLink struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	LineNumber int    `json:"line_number"`
}

// Diagnostic describes a problem found while parsing, tied to the
// physical source line that triggered it
type Diagnostic struct {
	Message    string `json:"message"`
	LineNumber int    `json:"line_number"`
}

// ParseResult is the complete outcome of parsing one document. Parsing
// never fails: malformed input yields a partial model plus diagnostics.
type ParseResult struct {
	Screens     []*Screen         `json:"screens"`
	Navigation  *NavigationConfig `json:"navigation,omitempty"`
	Links       []ScreenLink      `json:"links"`
	Diagnostics []Diagnostic      `json:"diagnostics"`
	LineCount   int               `json:"line_count"`
}

// Screen returns the first screen declared with the given name, or nil
// if no such screen exists. Duplicate declarations keep all screens, so
// later ones are only reachable through the Screens slice.
func (r *ParseResult) Screen(name string) *Screen {
	for _, s := range r.Screens {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// HasDiagnostics reports whether parsing recorded any problems
func (r *ParseResult) HasDiagnostics() bool {
	return len(r.Diagnostics) > 0
}
