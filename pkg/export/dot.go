// Package export renders dependency views and cycle lists as Graphviz
// documents.
//
// DOT generation is pure string assembly; SVG rendering goes through the
// goccy/go-graphviz WASM port, so no system Graphviz installation is
// required.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depscope/pkg/depgraph"
)

// ViewToDOT converts a dependency or reverse view into DOT format.
//
// The root is emphasized with a doubled border. Forward views draw edges
// root -> dependency and annotate each dependency with its own count;
// reverse views draw dependent -> root, matching the edge direction of the
// underlying relation.
func ViewToDOT(v *depgraph.View) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [peripheries=2];\n", v.Root)
	for _, e := range v.Entries {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", e.Name, entryLabel(e, v.Reverse))
	}

	buf.WriteString("\n")
	for _, e := range v.Entries {
		if v.Reverse {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Name, v.Root)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", v.Root, e.Name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func entryLabel(e depgraph.Entry, reverse bool) string {
	if reverse {
		return e.Name
	}
	if e.Lookup != nil {
		return e.Name + "\n(dependencies unknown)"
	}
	if e.DepCount == 1 {
		return e.Name + "\n1 dependency"
	}
	return fmt.Sprintf("%s\n%d dependencies", e.Name, e.DepCount)
}

// CyclesToDOT converts a cycle list into DOT format. Each edge appearing in
// any cycle is drawn once, in red; nodes keep their default style.
func CyclesToDOT(root string, cycles []depgraph.Cycle) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cycles {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	fmt.Fprintf(&buf, "  %q [peripheries=2];\n", root)
	buf.WriteString("\n")

	seen := map[string]bool{}
	for _, cycle := range cycles {
		for i := 0; i+1 < len(cycle); i++ {
			key := cycle[i] + "\x00" + cycle[i+1]
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&buf, "  %q -> %q [color=red];\n", cycle[i], cycle[i+1])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT document to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatForPath returns "svg" or "dot" based on the output file extension,
// defaulting to DOT for unknown extensions.
func FormatForPath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return "svg"
	}
	return "dot"
}
