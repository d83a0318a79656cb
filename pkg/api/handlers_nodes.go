package api

import (
	"net/http"
	"strings"

	"github.com/dd0wney/cluso-chaintrace/pkg/catalog"
)

// NodeResponse is the JSON shape of one catalog node
type NodeResponse struct {
	ID          string   `json:"id"`
	Layer       string   `json:"layer"`
	Label       string   `json:"label"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Edges       []string `json:"edges"`
}

// NodesResponse lists all catalog nodes in manifest order
type NodesResponse struct {
	Nodes []NodeResponse `json:"nodes"`
	Count int            `json:"count"`
}

// LayersResponse lists the layer enumeration in rank order
type LayersResponse struct {
	Layers []string `json:"layers"`
}

func nodeToResponse(n *catalog.Node) NodeResponse {
	edges := n.Edges
	if edges == nil {
		edges = []string{}
	}
	return NodeResponse{
		ID:          n.ID,
		Layer:       n.Layer.String(),
		Label:       n.Label,
		Location:    n.Location,
		Description: n.Description,
		Edges:       edges,
	}
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	cat := s.Catalog()
	resp := NodesResponse{Nodes: make([]NodeResponse, 0, cat.Len())}
	for _, id := range cat.IDs() {
		n, _ := cat.Get(id)
		resp.Nodes = append(resp.Nodes, nodeToResponse(n))
	}
	resp.Count = len(resp.Nodes)

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/nodes/")
	if id == "" {
		s.respondError(w, http.StatusBadRequest, "Node id is required")
		return
	}

	node, ok := s.Catalog().Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "Node not found")
		return
	}

	s.respondJSON(w, http.StatusOK, nodeToResponse(node))
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	resp := LayersResponse{}
	for _, l := range catalog.Layers() {
		resp.Layers = append(resp.Layers, l.String())
	}

	s.respondJSON(w, http.StatusOK, resp)
}
