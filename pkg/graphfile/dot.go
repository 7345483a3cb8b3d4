package graphfile

import (
	"fmt"
	"strings"

	"github.com/ha1tch/springgraph/pkg/graph"
)

// DOTScale converts layout units to DOT points.
const DOTScale = 72.0

// GenerateDOT converts a laid out graph to Graphviz DOT format. Node
// positions are pinned with pos="x,y!", so `neato -n` keeps the layout.
// The y axis is flipped because DOT points grow upwards.
func GenerateDOT(g *graph.Graph, title string) string {
	var sb strings.Builder

	sb.WriteString("digraph G {\n")
	sb.WriteString("    node [shape=circle, fontname=\"Helvetica\", fontsize=11];\n")
	sb.WriteString("    edge [color=\"grey\"];\n")
	sb.WriteString("\n")

	if title != "" {
		sb.WriteString("    labelloc=\"t\";\n")
		sb.WriteString(fmt.Sprintf("    label=\"%s\";\n", escapeDOT(title)))
		sb.WriteString("\n")
	}

	for _, n := range g.Nodes {
		x, y := n.Position.X*DOTScale, -n.Position.Y*DOTScale
		if y == 0 {
			y = 0 // no "-0.00"
		}
		attrs := []string{fmt.Sprintf("pos=\"%.2f,%.2f!\"", x, y)}
		if l, ok := n.Payload.(interface{ Label() string }); ok && l.Label() != "" {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(l.Label())))
		}
		sb.WriteString(fmt.Sprintf("    \"%s\" [%s];\n", escapeDOT(n.Key), strings.Join(attrs, ", ")))
	}
	if g.Len() > 0 {
		sb.WriteString("\n")
	}

	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("    \"%s\" -> \"%s\"", escapeDOT(e.Source.Key), escapeDOT(e.Target.Key)))
		if e.Weight != 0 {
			sb.WriteString(fmt.Sprintf(" [weight=%g]", e.Weight))
		}
		sb.WriteString(";\n")
	}

	sb.WriteString("}\n")

	return sb.String()
}

func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
