// Package layout positions the screen-flow graph for the SVG and HTML
// renderers. Screens become nodes arranged in columns by link distance
// from the flow roots; links become edges between node centers.
package layout

import (
	"github.com/hevedar/appsketch/internal/dsl"
)

// Options controls node sizing and spacing
type Options struct {
	NodeWidth  float64
	NodeHeight float64
	HGap       float64
	VGap       float64
	MarginX    float64
	MarginY    float64
}

// DefaultOptions returns sensible defaults
func DefaultOptions() *Options {
	return &Options{
		NodeWidth:  150,
		NodeHeight: 60,
		HGap:       70,
		VGap:       30,
		MarginX:    40,
		MarginY:    40,
	}
}

// Node is one positioned screen. X and Y are the top-left corner.
type Node struct {
	Name  string  `json:"name"`
	Index int     `json:"index"`
	Level int     `json:"level"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge connects two nodes by index into Graph.Nodes. From == To for a
// screen linking to itself.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Graph is a positioned screen-flow graph
type Graph struct {
	Nodes  []Node  `json:"nodes"`
	Edges  []Edge  `json:"edges"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Compute lays out one node per screen declaration and one edge per
// link with resolvable endpoints. Links refer to screens by name, so
// with duplicate declarations the edge attaches to the first one. The
// result is deterministic for identical input.
func Compute(result *dsl.ParseResult, opts *Options) *Graph {
	if opts == nil {
		opts = DefaultOptions()
	}

	g := &Graph{Nodes: make([]Node, 0, len(result.Screens))}
	byName := make(map[string]int, len(result.Screens))
	for i, screen := range result.Screens {
		g.Nodes = append(g.Nodes, Node{Name: screen.Name, Index: i})
		if _, ok := byName[screen.Name]; !ok {
			byName[screen.Name] = i
		}
	}
	if len(g.Nodes) == 0 {
		g.Width = opts.MarginX * 2
		g.Height = opts.MarginY * 2
		return g
	}

	inbound := make([]int, len(g.Nodes))
	for _, link := range result.Links {
		from, okFrom := byName[link.Source]
		to, okTo := byName[link.Target]
		if !okFrom || !okTo {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: from, To: to})
		if from != to {
			inbound[to]++
		}
	}

	levels := assignLevels(g, result, byName, inbound)
	place(g, levels, opts)
	return g
}

// assignLevels walks the link graph breadth first. The navigation root
// seeds the flow when it resolves; otherwise screens nobody links to
// act as roots, and any node left unvisited (cycles, islands) starts a
// fresh column-zero root in declaration order.
func assignLevels(g *Graph, result *dsl.ParseResult, byName map[string]int, inbound []int) []int {
	levels := make([]int, len(g.Nodes))
	visited := make([]bool, len(g.Nodes))

	var queue []int
	enqueue := func(i, level int) {
		if !visited[i] {
			visited[i] = true
			levels[i] = level
			queue = append(queue, i)
		}
	}

	if nav := result.Navigation; nav != nil {
		if i, ok := byName[nav.Root]; ok {
			enqueue(i, 0)
		}
		for _, tab := range nav.Tabs {
			if i, ok := byName[tab]; ok {
				enqueue(i, 0)
			}
		}
	}
	for i := range g.Nodes {
		if inbound[i] == 0 {
			enqueue(i, 0)
		}
	}

	for start := 0; ; {
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, e := range g.Edges {
				if e.From == cur && e.From != e.To {
					enqueue(e.To, levels[cur]+1)
				}
			}
		}
		for start < len(g.Nodes) && visited[start] {
			start++
		}
		if start == len(g.Nodes) {
			break
		}
		enqueue(start, 0)
	}
	return levels
}

// place turns levels into grid coordinates: level is the column, and
// rows fill each column in declaration order.
func place(g *Graph, levels []int, opts *Options) {
	rows := make(map[int]int)
	maxLevel, maxRow := 0, 0
	for i := range g.Nodes {
		level := levels[i]
		row := rows[level]
		rows[level]++

		g.Nodes[i].Level = level
		g.Nodes[i].X = opts.MarginX + float64(level)*(opts.NodeWidth+opts.HGap)
		g.Nodes[i].Y = opts.MarginY + float64(row)*(opts.NodeHeight+opts.VGap)

		if level > maxLevel {
			maxLevel = level
		}
		if row > maxRow {
			maxRow = row
		}
	}
	g.Width = opts.MarginX*2 + float64(maxLevel+1)*opts.NodeWidth + float64(maxLevel)*opts.HGap
	g.Height = opts.MarginY*2 + float64(maxRow+1)*opts.NodeHeight + float64(maxRow)*opts.VGap
}
