package catalog

import (
	"fmt"
)

// Catalog is an immutable id → Node mapping with O(1) lookup.
//
// A Catalog is built once, from an external source (manifest file, static
// analysis scan), and never mutated afterwards. That makes it safe to share
// across concurrent traversals without coordination.
//
// Referential integrity is deliberately NOT required: a node's edge list may
// name ids that are not in the catalog. Such dangling targets are filtered
// lazily during traversal, which tolerates partial catalogs produced by
// incomplete scans.
type Catalog struct {
	nodes map[string]*Node
	ids   []string // manifest order, fixes predecessor-scan order
}

// New builds a Catalog from the given nodes, preserving their order.
//
// It rejects empty ids, duplicate ids, and unknown layer values. The map key
// for every entry is the node's own ID field, so key/id mismatch cannot
// occur by construction.
func New(nodes []Node) (*Catalog, error) {
	c := &Catalog{
		nodes: make(map[string]*Node, len(nodes)),
		ids:   make([]string, 0, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, fmt.Errorf("node at index %d has empty id", i)
		}
		if !n.Layer.Valid() {
			return nil, fmt.Errorf("node %q has unknown layer value %d", n.ID, n.Layer)
		}
		if _, exists := c.nodes[n.ID]; exists {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}

		// Copy the edge slice so later mutation of the caller's input
		// cannot reach into the catalog.
		if n.Edges != nil {
			edges := make([]string, len(n.Edges))
			copy(edges, n.Edges)
			n.Edges = edges
		}

		c.nodes[n.ID] = &n
		c.ids = append(c.ids, n.ID)
	}

	return c, nil
}

// Get returns the node with the given id, or (nil, false) if absent.
// It never fabricates a placeholder node.
func (c *Catalog) Get(id string) (*Node, bool) {
	n, ok := c.nodes[id]
	return n, ok
}

// HasEdge reports whether toID appears in fromID's outbound edge list.
// Both endpoints must exist in the catalog; a dangling reference to a
// missing node never counts as an edge.
func (c *Catalog) HasEdge(fromID, toID string) bool {
	from, ok := c.nodes[fromID]
	if !ok {
		return false
	}
	if _, ok := c.nodes[toID]; !ok {
		return false
	}
	for _, e := range from.Edges {
		if e == toID {
			return true
		}
	}
	return false
}

// Len returns the number of nodes in the catalog.
func (c *Catalog) Len() int {
	return len(c.nodes)
}

// IDs returns all node ids in manifest order. The returned slice is a copy.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ids))
	copy(ids, c.ids)
	return ids
}

// Predecessors returns the ids of all nodes with a direct edge to id, in
// manifest order. The scan order is stable across calls, which keeps
// traversal output deterministic for a given catalog.
func (c *Catalog) Predecessors(id string) []string {
	var preds []string
	for _, candidate := range c.ids {
		if c.HasEdge(candidate, id) {
			preds = append(preds, candidate)
		}
	}
	return preds
}

// EdgeCount returns the number of resolvable edges (both endpoints present).
func (c *Catalog) EdgeCount() int {
	count := 0
	for _, id := range c.ids {
		n := c.nodes[id]
		for _, target := range n.Edges {
			if _, ok := c.nodes[target]; ok {
				count++
			}
		}
	}
	return count
}

// DanglingEdges returns "from -> to" descriptions for every edge whose
// target is absent from the catalog. Useful for surfacing scanner gaps;
// traversal itself just skips these.
func (c *Catalog) DanglingEdges() []string {
	var dangling []string
	for _, id := range c.ids {
		n := c.nodes[id]
		for _, target := range n.Edges {
			if _, ok := c.nodes[target]; !ok {
				dangling = append(dangling, fmt.Sprintf("%s -> %s", id, target))
			}
		}
	}
	return dangling
}
