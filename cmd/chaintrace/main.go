package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
	"github.com/dd0wney/cluso-chaintrace/pkg/chain"
)

var (
	originStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF"))

	dimmedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	layerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))
)

func main() {
	catalogPath := flag.String("catalog", "catalog.yaml", "Catalog manifest file (.yaml or .yaml.snappy)")
	jsonOut := flag.Bool("json", false, "Emit the chain as JSON")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: chaintrace [-catalog file] [-json] <node-id>")
		os.Exit(2)
	}
	startID := flag.Arg(0)

	cat, err := catalog.LoadFile(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load catalog: %v\n", err)
		os.Exit(1)
	}

	steps := chain.Traverse(cat, startID)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(steps); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode chain: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(steps) == 0 {
		fmt.Printf("node %q is not in the catalog; empty chain\n", startID)
		return
	}

	printChain(cat, steps)
}

// printChain renders the whole catalog grouped by layer. Chain members get
// their relation styling, everything else is dimmed — the same three visual
// states an interactive front-end toggles.
func printChain(cat *catalog.Catalog, steps []chain.Step) {
	inChain := make(map[string]chain.Relation, len(steps))
	for _, s := range steps {
		inChain[s.ID] = s.Relation
	}

	for _, layer := range catalog.Layers() {
		var lines []string
		for _, id := range cat.IDs() {
			n, _ := cat.Get(id)
			if n.Layer != layer {
				continue
			}
			lines = append(lines, renderNode(n, inChain))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Println(layerStyle.Render(layer.String()))
		for _, line := range lines {
			fmt.Println("  " + line)
		}
	}
}

func renderNode(n *catalog.Node, inChain map[string]chain.Relation) string {
	label := n.ID
	if n.Label != "" {
		label = fmt.Sprintf("%s  %s", n.ID, n.Label)
	}

	rel, member := inChain[n.ID]
	if !member {
		return dimmedStyle.Render(label)
	}

	switch rel {
	case chain.RelationOrigin:
		return originStyle.Render("● " + label + "  (origin)")
	case chain.RelationUpstream:
		return highlightStyle.Render("↑ " + label + "  (upstream)")
	default:
		return highlightStyle.Render("↓ " + label + "  (downstream)")
	}
}
