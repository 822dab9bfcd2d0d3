package floorplan

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/symisland/pkg/core/placement"
)

// ToDOT converts an ASF-B*-tree topology to Graphviz DOT. Left-child edges
// (placed right of the parent) are solid, right-child edges (stacked above)
// are dashed; self-symmetric modules are tinted to show the boundary chain.
func ToDOT(root *placement.Node, group *placement.SymmetryGroup) string {
	var buf bytes.Buffer
	buf.WriteString("digraph asf {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	var walk func(n *placement.Node)
	walk = func(n *placement.Node) {
		if n == nil {
			return
		}
		attrs := ""
		if group != nil && group.IsSelfSymmetric(n.Name) {
			attrs = ", fillcolor=\"#fdd0a2\""
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", n.Name, n.Name, attrs)
		if n.Left != nil {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"L\"];\n", n.Name, n.Left.Name)
		}
		if n.Right != nil {
			fmt.Fprintf(&buf, "  %q -> %q [label=\"R\", style=dashed];\n", n.Name, n.Right.Name)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)

	buf.WriteString("}\n")
	return buf.String()
}

// RenderTreeSVG rasterizes a DOT tree description to SVG using Graphviz.
func RenderTreeSVG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.SVG)
}

// RenderTreePNG rasterizes a DOT tree description to PNG using Graphviz.
func RenderTreePNG(dot string) ([]byte, error) {
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render DOT: %w", err)
	}
	return buf.Bytes(), nil
}
