// Package chain computes the bidirectional dependency chain of a single
// node: everything reachable forward through outbound edges, plus everything
// that can reach the node backward, deduplicated and ordered by layer rank
// for display.
package chain

import (
	"sort"

	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
)

// Relation describes how a chain member relates to the selected origin node.
type Relation int

const (
	// RelationOrigin marks the node the traversal started from.
	RelationOrigin Relation = iota
	// RelationDownstream marks nodes reachable from the origin via
	// outbound edges.
	RelationDownstream
	// RelationUpstream marks nodes that can reach the origin via their
	// outbound edges.
	RelationUpstream
)

// String returns the wire name of a relation.
func (r Relation) String() string {
	switch r {
	case RelationOrigin:
		return "origin"
	case RelationDownstream:
		return "downstream"
	case RelationUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// Step is one element of a traversal result. Exactly one step exists per
// distinct node id in a chain, even when the node is reachable via multiple
// paths.
type Step struct {
	ID           string        `json:"id"`
	Layer        catalog.Layer `json:"-"`
	LayerName    string        `json:"layer"`
	Label        string        `json:"label"`
	Location     string        `json:"location,omitempty"`
	Description  string        `json:"description,omitempty"`
	Relation     Relation      `json:"-"`
	RelationName string        `json:"relation"`
}

// Traverse computes the full chain the start node participates in.
//
// The forward pass runs depth-first from startID in edge-list order, tagging
// discovered nodes downstream. The backward pass then discovers transitive
// predecessors depth-first, tagging them upstream. Both passes share one
// visited set, so a node reached forward is never re-tagged upstream even
// when both apply: forward relation wins. That tie-break is load-bearing for
// cycle and diamond shapes.
//
// The result is sorted solely by layer rank, with a stable sort so that
// same-layer nodes keep their discovery order across repeated calls.
//
// An unknown or empty startID yields an empty chain, not an error: callers
// may hold stale ids, and "no selection" is a valid state.
func Traverse(cat *catalog.Catalog, startID string) []Step {
	start, ok := cat.Get(startID)
	if !ok {
		return []Step{}
	}

	visited := make(map[string]bool, cat.Len())
	steps := make([]Step, 0, 8)

	visitForward(cat, start, RelationOrigin, visited, &steps)
	visitBackward(cat, startID, visited, &steps)

	sort.SliceStable(steps, func(i, j int) bool {
		return steps[i].Layer.Rank() < steps[j].Layer.Rank()
	})

	return steps
}

// visitForward records node and recurses into its outbound edges in edge-list
// order. Edge targets missing from the catalog are silently dropped.
func visitForward(cat *catalog.Catalog, node *catalog.Node, rel Relation, visited map[string]bool, steps *[]Step) {
	if visited[node.ID] {
		return
	}
	visited[node.ID] = true
	*steps = append(*steps, newStep(node, rel))

	for _, targetID := range node.Edges {
		target, ok := cat.Get(targetID)
		if !ok {
			continue
		}
		visitForward(cat, target, RelationDownstream, visited, steps)
	}
}

// visitBackward discovers direct predecessors of id and recurses into each
// one not yet claimed by the forward pass. The shared visited set guarantees
// termination on cycles and keeps forward tags intact.
func visitBackward(cat *catalog.Catalog, id string, visited map[string]bool, steps *[]Step) {
	for _, predID := range cat.Predecessors(id) {
		if visited[predID] {
			continue
		}
		pred, ok := cat.Get(predID)
		if !ok {
			continue
		}
		visited[predID] = true
		*steps = append(*steps, newStep(pred, RelationUpstream))
		visitBackward(cat, predID, visited, steps)
	}
}

func newStep(node *catalog.Node, rel Relation) Step {
	return Step{
		ID:           node.ID,
		Layer:        node.Layer,
		LayerName:    node.Layer.String(),
		Label:        node.Label,
		Location:     node.Location,
		Description:  node.Description,
		Relation:     rel,
		RelationName: rel.String(),
	}
}

// IDs returns the node ids of a chain in order. Convenience for callers that
// only need membership, like highlight toggling.
func IDs(steps []Step) []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}
