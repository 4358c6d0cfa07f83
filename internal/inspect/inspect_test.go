package inspect

import (
	"strings"
	"testing"

	"github.com/hevedar/appsketch/internal/dsl"
)

func TestSummarize(t *testing.T) {
	src := strings.Join([]string{
		"navigation_stack root=Home",
		"screen Home",
		"  vertical_stack {",
		`    label "Welcome"`,
		"    horizontal_stack {",
		`      button "Go"`,
		"    }",
		"  }",
		"screen Detail",
		`  label "Details"`,
		"screen Orphan",
		"Home -> Detail",
	}, "\n")

	s := Summarize(dsl.Parse(src))

	if s.ScreenCount != 3 {
		t.Errorf("want 3 screens, got %d", s.ScreenCount)
	}
	if s.ContainerCount != 2 {
		t.Errorf("want 2 containers, got %d", s.ContainerCount)
	}
	if s.ComponentCount != 3 {
		t.Errorf("want 3 components, got %d", s.ComponentCount)
	}
	if s.MaxDepth != 2 {
		t.Errorf("want depth 2, got %d", s.MaxDepth)
	}
	if s.LinkCount != 1 || !s.HasNavigation {
		t.Errorf("want 1 link with navigation, got %d links nav=%v", s.LinkCount, s.HasNavigation)
	}
	if s.ComponentsByKind[dsl.ComponentLabel] != 2 || s.ComponentsByKind[dsl.ComponentButton] != 1 {
		t.Errorf("unexpected kind counts: %v", s.ComponentsByKind)
	}
	if len(s.Unreferenced) != 1 || s.Unreferenced[0] != "Orphan" {
		t.Errorf("want Orphan unreferenced, got %v", s.Unreferenced)
	}

	home := s.Screens[0]
	if home.Name != "Home" || home.Outbound != 1 || home.Inbound != 0 {
		t.Errorf("unexpected Home stats: %+v", home)
	}
	detail := s.Screens[1]
	if detail.Inbound != 1 {
		t.Errorf("want Detail inbound 1, got %+v", detail)
	}
}

func TestSummarizeEmptyDocument(t *testing.T) {
	s := Summarize(dsl.Parse(""))

	if s.ScreenCount != 0 || s.ComponentCount != 0 || s.MaxDepth != 0 {
		t.Errorf("empty document should produce zero counts: %+v", s)
	}
	if len(s.Unreferenced) != 0 {
		t.Errorf("want no unreferenced screens, got %v", s.Unreferenced)
	}
}

func TestSummarizeDuplicateScreens(t *testing.T) {
	src := "screen A\nscreen A\n"
	s := Summarize(dsl.Parse(src))

	if s.ScreenCount != 2 {
		t.Errorf("duplicates count individually, got %d", s.ScreenCount)
	}
	if len(s.Unreferenced) != 1 {
		t.Errorf("unreferenced names are deduplicated, got %v", s.Unreferenced)
	}
	if s.DiagnosticCount != 1 {
		t.Errorf("want the duplicate diagnostic counted, got %d", s.DiagnosticCount)
	}
}
