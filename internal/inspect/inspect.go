// Package inspect derives structural statistics from a parsed sketch
// document. The summary feeds renderer footers, verbose check output
// and the editor status bar; it never produces diagnostics of its own.
package inspect

import (
	"github.com/hevedar/appsketch/internal/dsl"
)

// Summary aggregates structural facts about one document
type Summary struct {
	ScreenCount      int                       `json:"screen_count"`
	ContainerCount   int                       `json:"container_count"`
	ComponentCount   int                       `json:"component_count"`
	ComponentsByKind map[dsl.ComponentKind]int `json:"components_by_kind"`
	MaxDepth         int                       `json:"max_depth"`
	LinkCount        int                       `json:"link_count"`
	DiagnosticCount  int                       `json:"diagnostic_count"`
	HasNavigation    bool                      `json:"has_navigation"`
	Unreferenced     []string                  `json:"unreferenced,omitempty"`
	Screens          []ScreenStats             `json:"screens"`
}

// ScreenStats describes a single screen declaration
type ScreenStats struct {
	Name       string `json:"name"`
	LineNumber int    `json:"line_number"`
	Components int    `json:"components"`
	Containers int    `json:"containers"`
	Depth      int    `json:"depth"`
	Inbound    int    `json:"inbound"`
	Outbound   int    `json:"outbound"`
}

// Summarize walks the document tree and counts what it finds. Depth
// counts container nesting only: a screen holding bare components has
// depth zero.
func Summarize(result *dsl.ParseResult) *Summary {
	s := &Summary{
		ScreenCount:      len(result.Screens),
		ComponentsByKind: make(map[dsl.ComponentKind]int),
		LinkCount:        len(result.Links),
		DiagnosticCount:  len(result.Diagnostics),
		HasNavigation:    result.Navigation != nil,
		Screens:          make([]ScreenStats, 0, len(result.Screens)),
	}

	referenced := referencedNames(result)
	seen := make(map[string]bool)
	for _, screen := range result.Screens {
		stats := ScreenStats{Name: screen.Name, LineNumber: screen.LineNumber}
		for _, el := range screen.Children {
			walk(el, 1, &stats)
		}
		for _, link := range result.Links {
			if link.Source == screen.Name {
				stats.Outbound++
			}
			if link.Target == screen.Name {
				stats.Inbound++
			}
		}
		s.Screens = append(s.Screens, stats)
		s.ContainerCount += stats.Containers
		s.ComponentCount += stats.Components
		if stats.Depth > s.MaxDepth {
			s.MaxDepth = stats.Depth
		}

		if !referenced[screen.Name] && !seen[screen.Name] {
			s.Unreferenced = append(s.Unreferenced, screen.Name)
		}
		seen[screen.Name] = true
	}

	for kind, n := range componentKinds(result) {
		s.ComponentsByKind[kind] = n
	}
	return s
}

// referencedNames collects every screen name mentioned by a link or the
// navigation construct.
func referencedNames(result *dsl.ParseResult) map[string]bool {
	referenced := make(map[string]bool)
	for _, link := range result.Links {
		referenced[link.Source] = true
		referenced[link.Target] = true
	}
	if nav := result.Navigation; nav != nil {
		referenced[nav.Root] = true
		referenced[nav.Drawer] = true
		for _, tab := range nav.Tabs {
			referenced[tab] = true
		}
	}
	return referenced
}

func componentKinds(result *dsl.ParseResult) map[dsl.ComponentKind]int {
	kinds := make(map[dsl.ComponentKind]int)
	var visit func(el dsl.Element)
	visit = func(el dsl.Element) {
		switch node := el.(type) {
		case *dsl.Component:
			kinds[node.Kind]++
		case *dsl.Container:
			for _, child := range node.Children {
				visit(child)
			}
		}
	}
	for _, screen := range result.Screens {
		for _, el := range screen.Children {
			visit(el)
		}
	}
	return kinds
}

// walk updates per-screen counters. depth is the container nesting
// level the element would introduce if it is a container.
func walk(el dsl.Element, depth int, stats *ScreenStats) {
	switch node := el.(type) {
	case *dsl.Component:
		stats.Components++
	case *dsl.Container:
		stats.Containers++
		if depth > stats.Depth {
			stats.Depth = depth
		}
		for _, child := range node.Children {
			walk(child, depth+1, stats)
		}
	}
}
