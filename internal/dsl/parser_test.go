package dsl

import (
	"reflect"
	"strings"
	"testing"
)

func join(lines ...string) string {
	return strings.Join(lines, "\n")
}

func component(t *testing.T, el Element) *Component {
	t.Helper()
	c, ok := el.(*Component)
	if !ok {
		t.Fatalf("want *Component, got %T", el)
	}
	return c
}

func container(t *testing.T, el Element) *Container {
	t.Helper()
	c, ok := el.(*Container)
	if !ok {
		t.Fatalf("want *Container, got %T", el)
	}
	return c
}

func TestParseMinimalScreen(t *testing.T) {
	result := Parse(join(
		"screen Home",
		`  label "Hi"`,
	))

	if len(result.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %v", result.Diagnostics)
	}
	if len(result.Screens) != 1 {
		t.Fatalf("want 1 screen, got %d", len(result.Screens))
	}
	s := result.Screens[0]
	if s.Name != "Home" || s.LineNumber != 1 {
		t.Errorf("want screen Home at line 1, got %s at line %d", s.Name, s.LineNumber)
	}
	if len(s.Children) != 1 {
		t.Fatalf("want 1 child, got %d", len(s.Children))
	}
	c := component(t, s.Children[0])
	if c.Kind != ComponentLabel || c.Text != "Hi" || c.LineNumber != 2 {
		t.Errorf("want label %q at line 2, got %+v", "Hi", c)
	}
}

func TestParseComponents(t *testing.T) {
	result := Parse(join(
		"screen Form",
		`  label "Name"`,
		"  input",
		`  input placeholder="Email"`,
		`  button "Submit"`,
		`  image src="logo.png"`,
	))

	if len(result.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %v", result.Diagnostics)
	}
	s := result.Screens[0]
	if len(s.Children) != 5 {
		t.Fatalf("want 5 children, got %d", len(s.Children))
	}

	checks := []struct {
		kind ComponentKind
		text string
		ph   string
		src  string
	}{
		{ComponentLabel, "Name", "", ""},
		{ComponentInput, "", "", ""},
		{ComponentInput, "", "Email", ""},
		{ComponentButton, "Submit", "", ""},
		{ComponentImage, "", "", "logo.png"},
	}
	for i, want := range checks {
		c := component(t, s.Children[i])
		if c.Kind != want.kind || c.Text != want.text || c.Placeholder != want.ph || c.Src != want.src {
			t.Errorf("child %d: want %+v, got %+v", i, want, c)
		}
	}
}

func TestParseNestedContainers(t *testing.T) {
	result := Parse(join(
		"screen Home",
		"  vertical_stack {",
		`    label "Top"`,
		"    horizontal_stack {",
		`      button "Left"`,
		`      button "Right"`,
		"    }",
		`    label "Bottom"`,
		"  }",
	))

	if len(result.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %v", result.Diagnostics)
	}
	outer := container(t, result.Screens[0].Children[0])
	if outer.Kind != ContainerVertical {
		t.Errorf("want vertical_stack, got %s", outer.Kind)
	}
	if len(outer.Children) != 3 {
		t.Fatalf("want 3 children in outer stack, got %d", len(outer.Children))
	}
	inner := container(t, outer.Children[1])
	if inner.Kind != ContainerHorizontal || len(inner.Children) != 2 {
		t.Errorf("want horizontal_stack with 2 children, got %s with %d", inner.Kind, len(inner.Children))
	}
}

func TestTopLevelConstructs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		validate func(*testing.T, *ParseResult)
	}{
		{
			name:  "navigation stack",
			input: "navigation_stack root=Home\nscreen Home",
			validate: func(t *testing.T, r *ParseResult) {
				if r.Navigation == nil || r.Navigation.Kind != NavStack || r.Navigation.Root != "Home" {
					t.Errorf("want navigation_stack root=Home, got %+v", r.Navigation)
				}
				if len(r.Diagnostics) != 0 {
					t.Errorf("want no diagnostics, got %v", r.Diagnostics)
				}
			},
		},
		{
			name:  "tab stack",
			input: "tab_stack tabs=[Home, Profile, Settings]",
			validate: func(t *testing.T, r *ParseResult) {
				want := []string{"Home", "Profile", "Settings"}
				if r.Navigation == nil || !reflect.DeepEqual(r.Navigation.Tabs, want) {
					t.Errorf("want tabs %v, got %+v", want, r.Navigation)
				}
			},
		},
		{
			name:  "empty tab list is an error and registers nothing",
			input: "tab_stack tabs=[]",
			validate: func(t *testing.T, r *ParseResult) {
				if r.Navigation != nil {
					t.Errorf("want no navigation, got %+v", r.Navigation)
				}
				if len(r.Diagnostics) != 1 || !strings.Contains(r.Diagnostics[0].Message, "at least one tab") {
					t.Errorf("want empty-tab diagnostic, got %v", r.Diagnostics)
				}
			},
		},
		{
			name:  "drawer stack",
			input: "drawer_stack root=Main drawer=Menu",
			validate: func(t *testing.T, r *ParseResult) {
				n := r.Navigation
				if n == nil || n.Kind != NavDrawer || n.Root != "Main" || n.Drawer != "Menu" {
					t.Errorf("want drawer_stack root=Main drawer=Menu, got %+v", n)
				}
			},
		},
		{
			name:  "screen link",
			input: "screen A\nscreen B\nA -> B",
			validate: func(t *testing.T, r *ParseResult) {
				if len(r.Links) != 1 || r.Links[0].Source != "A" || r.Links[0].Target != "B" || r.Links[0].LineNumber != 3 {
					t.Errorf("want link A->B at line 3, got %+v", r.Links)
				}
				if len(r.Diagnostics) != 0 {
					t.Errorf("want no diagnostics, got %v", r.Diagnostics)
				}
			},
		},
		{
			name:  "unexpected top-level content",
			input: "widget Foo",
			validate: func(t *testing.T, r *ParseResult) {
				if len(r.Diagnostics) != 1 || !strings.Contains(r.Diagnostics[0].Message, "unexpected content at top level: widget Foo") {
					t.Errorf("want unexpected-content diagnostic, got %v", r.Diagnostics)
				}
			},
		},
		{
			name:  "indented line with no open context",
			input: "  screen A",
			validate: func(t *testing.T, r *ParseResult) {
				if len(r.Screens) != 0 {
					t.Errorf("want no screens, got %d", len(r.Screens))
				}
				if len(r.Diagnostics) != 1 || !strings.Contains(r.Diagnostics[0].Message, "unexpected content at top level") {
					t.Errorf("want unexpected-content diagnostic, got %v", r.Diagnostics)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Parse(tt.input))
		})
	}
}

func TestOrphanComponentAtTopLevel(t *testing.T) {
	result := Parse(`label "Hi"`)

	if len(result.Screens) != 0 {
		t.Errorf("want no screens, got %d", len(result.Screens))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "unexpected content at top level") || d.LineNumber != 1 {
		t.Errorf("want top-level diagnostic at line 1, got %+v", d)
	}
}

func TestUnclosedContainer(t *testing.T) {
	result := Parse(join(
		"screen Home",
		"  vertical_stack {",
		`    label "Hi"`,
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "Unclosed vertical_stack") {
		t.Errorf("want unclosed diagnostic, got %q", d.Message)
	}
	if d.LineNumber != 2 {
		t.Errorf("want diagnostic at opening line 2, got %d", d.LineNumber)
	}
	// The partially parsed content is still there.
	stack := container(t, result.Screens[0].Children[0])
	if len(stack.Children) != 1 {
		t.Errorf("want label kept inside unclosed stack, got %d children", len(stack.Children))
	}
}

func TestUnclosedReportsInnermostOnly(t *testing.T) {
	result := Parse(join(
		"screen Home",
		"  vertical_stack {",
		"    horizontal_stack {",
		`      label "Hi"`,
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "Unclosed horizontal_stack") || d.LineNumber != 3 {
		t.Errorf("want innermost unclosed at line 3, got %+v", d)
	}
}

func TestDanglingLink(t *testing.T) {
	result := Parse(join(
		"screen A",
		"A -> B",
	))

	if len(result.Links) != 1 {
		t.Fatalf("want link recorded despite missing target, got %d", len(result.Links))
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if d.Message != `Destination screen "B" in link not defined.` {
		t.Errorf("unexpected message %q", d.Message)
	}
	if d.LineNumber != 2 {
		t.Errorf("want diagnostic at link line 2, got %d", d.LineNumber)
	}
}

func TestDanglingLinkSource(t *testing.T) {
	result := Parse(join(
		"screen B",
		"A -> B",
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	if result.Diagnostics[0].Message != `Source screen "A" in link not defined.` {
		t.Errorf("unexpected message %q", result.Diagnostics[0].Message)
	}
}

func TestForwardReferenceLink(t *testing.T) {
	result := Parse(join(
		"A -> B",
		"screen B",
		"screen A",
	))

	if len(result.Diagnostics) != 0 {
		t.Errorf("forward references should be clean, got %v", result.Diagnostics)
	}
}

func TestDuplicateNavigationKeepsFirst(t *testing.T) {
	result := Parse(join(
		"navigation_stack root=A",
		"tab_stack tabs=[A]",
		"screen A",
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	if !strings.Contains(result.Diagnostics[0].Message, "only one global navigation construct") {
		t.Errorf("unexpected message %q", result.Diagnostics[0].Message)
	}
	if result.Navigation == nil || result.Navigation.Kind != NavStack || result.Navigation.Root != "A" {
		t.Errorf("want first navigation kept, got %+v", result.Navigation)
	}
}

func TestMisplacedBraceRecovery(t *testing.T) {
	result := Parse(join(
		"screen S",
		"  vertical_stack {",
		"    horizontal_stack {",
		`      label "x"`,
		"    }",
		"   }",
		"S -> S",
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want exactly 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "misplaced closing brace for vertical_stack") || d.LineNumber != 6 {
		t.Errorf("want misplaced-brace diagnostic at line 6, got %+v", d)
	}
	if !strings.Contains(d.Message, "expected indentation 2") || !strings.Contains(d.Message, "found 3") {
		t.Errorf("want both indentations named, got %q", d.Message)
	}
	// Recovery: the link after the broken block still parses.
	if len(result.Links) != 1 {
		t.Errorf("want link parsed after recovery, got %d", len(result.Links))
	}
}

func TestExtraneousBrace(t *testing.T) {
	result := Parse(join(
		"screen S",
		"  vertical_stack {",
		"      }",
		"  }",
	))

	var messages []string
	for _, d := range result.Diagnostics {
		messages = append(messages, d.Message)
	}
	if len(result.Diagnostics) != 1 || !strings.Contains(messages[0], "extraneous or misplaced closing brace") {
		t.Errorf("want one extraneous-brace diagnostic, got %v", messages)
	}
}

func TestClosingBraceInsideScreen(t *testing.T) {
	result := Parse(join(
		"screen S",
		`  label "x"`,
		"}",
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "closing brace not valid within a screen context") || d.LineNumber != 3 {
		t.Errorf("want screen-brace diagnostic at line 3, got %+v", d)
	}
}

func TestContentAfterClosingBrace(t *testing.T) {
	result := Parse(join(
		"screen S",
		"  vertical_stack {",
		`    label "x"`,
		`  } label "y"`,
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	if !strings.Contains(result.Diagnostics[0].Message, "unexpected content after closing brace") {
		t.Errorf("unexpected message %q", result.Diagnostics[0].Message)
	}
	// The stack still closed; nothing after the brace was swallowed.
	stack := container(t, result.Screens[0].Children[0])
	if len(stack.Children) != 1 {
		t.Errorf("want 1 child, got %d", len(stack.Children))
	}
}

func TestIncorrectIndentation(t *testing.T) {
	result := Parse(join(
		"screen S",
		` label "x"`,
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if !strings.Contains(d.Message, "incorrect indentation") || !strings.Contains(d.Message, `screen "S"`) {
		t.Errorf("unexpected message %q", d.Message)
	}
	if len(result.Screens[0].Children) != 0 {
		t.Errorf("under-indented line must be skipped, got %d children", len(result.Screens[0].Children))
	}
}

func TestInvalidNestedContent(t *testing.T) {
	result := Parse(join(
		"screen S",
		"  vertical_stack {",
		"    bogus thing",
		"  }",
	))

	if len(result.Diagnostics) != 1 {
		t.Fatalf("want 1 diagnostic, got %v", result.Diagnostics)
	}
	want := "invalid syntax or misplaced content within 'vertical_stack': bogus thing"
	if result.Diagnostics[0].Message != want {
		t.Errorf("want %q, got %q", want, result.Diagnostics[0].Message)
	}
}

func TestDuplicateScreensBothKept(t *testing.T) {
	result := Parse(join(
		"screen A",
		`  label "first"`,
		"screen A",
		`  label "second"`,
	))

	if len(result.Screens) != 2 {
		t.Fatalf("want both screens kept, got %d", len(result.Screens))
	}
	if len(result.Diagnostics) != 1 || !strings.Contains(result.Diagnostics[0].Message, "Duplicate screen name: A") {
		t.Errorf("want duplicate diagnostic, got %v", result.Diagnostics)
	}
	first := component(t, result.Screens[0].Children[0])
	second := component(t, result.Screens[1].Children[0])
	if first.Text != "first" || second.Text != "second" {
		t.Errorf("content attached to wrong screens: %q / %q", first.Text, second.Text)
	}
	if result.Screen("A") != result.Screens[0] {
		t.Errorf("lookup should return the first declaration")
	}
}

func TestBraceAndDeindentClose(t *testing.T) {
	braced := Parse(join(
		"screen A",
		"  vertical_stack {",
		`    label "One"`,
		"  }",
		`  label "Two"`,
	))
	deindented := Parse(join(
		"screen A",
		"  vertical_stack {",
		`    label "One"`,
		`  label "Two"`,
	))

	for _, r := range []*ParseResult{braced, deindented} {
		if len(r.Diagnostics) != 0 {
			t.Fatalf("want no diagnostics, got %v", r.Diagnostics)
		}
		s := r.Screens[0]
		if len(s.Children) != 2 {
			t.Fatalf("want stack and trailing label as siblings, got %d children", len(s.Children))
		}
		stack := container(t, s.Children[0])
		if len(stack.Children) != 1 || component(t, stack.Children[0]).Text != "One" {
			t.Errorf("stack content wrong: %+v", stack.Children)
		}
		if component(t, s.Children[1]).Text != "Two" {
			t.Errorf("trailing label wrong: %+v", s.Children[1])
		}
	}
}

func TestDeindentClosesMultipleLevels(t *testing.T) {
	result := Parse(join(
		"screen A",
		"  vertical_stack {",
		"    horizontal_stack {",
		`      label "a"`,
		`  label "b"`,
	))

	if len(result.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %v", result.Diagnostics)
	}
	s := result.Screens[0]
	if len(s.Children) != 2 {
		t.Fatalf("want 2 children on screen, got %d", len(s.Children))
	}
	if component(t, s.Children[1]).Text != "b" {
		t.Errorf("de-indented label should attach to the screen")
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	result := Parse(join(
		"// leading comment",
		"# another comment",
		"",
		"screen A",
		"",
		"  // inside the screen",
		`  label "x"`,
		"   ",
	))

	if len(result.Diagnostics) != 0 {
		t.Fatalf("want no diagnostics, got %v", result.Diagnostics)
	}
	if len(result.Screens) != 1 || len(result.Screens[0].Children) != 1 {
		t.Errorf("comments and blanks must not affect structure: %+v", result.Screens)
	}
}

func TestCRLFInput(t *testing.T) {
	unix := "screen A\n  label \"Hi\"\n"
	dos := strings.ReplaceAll(unix, "\n", "\r\n")

	a, b := Parse(unix), Parse(dos)
	if len(a.Diagnostics) != 0 || len(b.Diagnostics) != 0 {
		t.Fatalf("want clean parses, got %v / %v", a.Diagnostics, b.Diagnostics)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("CRLF input must parse identically to LF input")
	}
}

func TestParseIdempotent(t *testing.T) {
	src := join(
		"navigation_stack root=Home",
		"screen Home",
		"  vertical_stack {",
		`    label "Hi"`,
		"  junk here",
		"screen Home",
		"Home -> Missing",
	)

	first := Parse(src)
	second := Parse(src)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parses of the same input must be identical")
	}
}

func TestDiagnosticLinesWithinInput(t *testing.T) {
	src := join(
		"bogus",
		"screen A",
		" label \"bad indent\"",
		"  vertical_stack {",
		"      }",
		"screen A",
		"A -> Missing",
		"tab_stack tabs=[]",
		"}",
	)

	result := Parse(src)
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected diagnostics from malformed input")
	}
	for _, d := range result.Diagnostics {
		if d.LineNumber < 1 || d.LineNumber > result.LineCount {
			t.Errorf("diagnostic line %d outside input range 1..%d: %q", d.LineNumber, result.LineCount, d.Message)
		}
	}
}

func TestImageSrcDiagnostic(t *testing.T) {
	result := Parse(join(
		"screen A",
		`  image src="javascript:alert(1)"`,
	))

	if len(result.Diagnostics) != 1 || !strings.Contains(result.Diagnostics[0].Message, "invalid image src") {
		t.Fatalf("want invalid-src diagnostic, got %v", result.Diagnostics)
	}
	c := component(t, result.Screens[0].Children[0])
	if c.Src != "javascript:alert(1)" {
		t.Errorf("component must keep the literal value, got %q", c.Src)
	}
}
