package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hevedar/appsketch/internal/dsl"
	"github.com/hevedar/appsketch/internal/layout"
)

// svgRenderer renders the screen-flow graph as a standalone SVG
type svgRenderer struct {
	opts *layout.Options
}

// NewSVG creates a new flow-graph renderer
func NewSVG(opts *layout.Options) Renderer {
	if opts == nil {
		opts = layout.DefaultOptions()
	}
	return &svgRenderer{opts: opts}
}

func (r *svgRenderer) Render(result *dsl.ParseResult) ([]byte, error) {
	graph := layout.Compute(result, r.opts)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`,
		graph.Width, graph.Height, graph.Width, graph.Height))
	buf.WriteString("\n")

	r.writeDefs(&buf)
	for _, edge := range graph.Edges {
		r.writeEdge(&buf, graph, edge)
	}
	for _, node := range graph.Nodes {
		r.writeNode(&buf, result, node)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func (r *svgRenderer) writeDefs(buf *bytes.Buffer) {
	buf.WriteString(`<defs>`)
	buf.WriteString(`<style>`)
	buf.WriteString(`.screen-node { fill: #fdfdfd; stroke: #4a78c2; stroke-width: 2; rx: 8; }`)
	buf.WriteString(`.screen-label { font-family: system-ui, Arial; font-size: 13px; fill: #222; text-anchor: middle; dominant-baseline: middle; }`)
	buf.WriteString(`.screen-meta { font-family: system-ui, Arial; font-size: 9px; fill: #888; text-anchor: middle; }`)
	buf.WriteString(`.flow-edge { stroke: #666; stroke-width: 1.5; fill: none; }`)
	buf.WriteString(`.arrowhead { fill: #666; }`)
	buf.WriteString(`</style>`)
	buf.WriteString(`<marker id="flow-arrowhead" markerWidth="10" markerHeight="7" refX="9" refY="3.5" orient="auto">`)
	buf.WriteString(`<polygon points="0 0, 10 3.5, 0 7" class="arrowhead"/>`)
	buf.WriteString(`</marker>`)
	buf.WriteString(`</defs>`)
	buf.WriteString("\n")
}

func (r *svgRenderer) writeNode(buf *bytes.Buffer, result *dsl.ParseResult, node layout.Node) {
	buf.WriteString(fmt.Sprintf(`<rect class="screen-node" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="8"/>`,
		node.X, node.Y, r.opts.NodeWidth, r.opts.NodeHeight))
	buf.WriteString("\n")

	cx := node.X + r.opts.NodeWidth/2
	cy := node.Y + r.opts.NodeHeight/2
	buf.WriteString(fmt.Sprintf(`<text class="screen-label" x="%.1f" y="%.1f">%s</text>`,
		cx, cy-4, escapeXML(node.Name)))
	buf.WriteString("\n")

	if node.Index < len(result.Screens) {
		n := len(result.Screens[node.Index].Children)
		buf.WriteString(fmt.Sprintf(`<text class="screen-meta" x="%.1f" y="%.1f">%d elements</text>`,
			cx, cy+12, n))
		buf.WriteString("\n")
	}
}

func (r *svgRenderer) writeEdge(buf *bytes.Buffer, graph *layout.Graph, edge layout.Edge) {
	from, to := graph.Nodes[edge.From], graph.Nodes[edge.To]

	if edge.From == edge.To {
		// Self link: small loop above the node.
		x := from.X + r.opts.NodeWidth/2
		y := from.Y
		buf.WriteString(fmt.Sprintf(`<path class="flow-edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f" marker-end="url(#flow-arrowhead)"/>`,
			x-15, y, x-25, y-30, x+25, y-30, x+15, y))
		buf.WriteString("\n")
		return
	}

	var x1, y1, x2, y2 float64
	y1 = from.Y + r.opts.NodeHeight/2
	y2 = to.Y + r.opts.NodeHeight/2
	if to.X >= from.X {
		x1 = from.X + r.opts.NodeWidth
		x2 = to.X
	} else {
		x1 = from.X
		x2 = to.X + r.opts.NodeWidth
	}
	buf.WriteString(fmt.Sprintf(`<line class="flow-edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" marker-end="url(#flow-arrowhead)"/>`,
		x1, y1, x2, y2))
	buf.WriteString("\n")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
