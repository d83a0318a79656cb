package catalog

import "fmt"

// Layer identifies the architectural layer a node belongs to.
// The numeric order is the display order: presentation renders first,
// storage last. Traversal never consults layers; only output ordering does.
type Layer int

const (
	LayerPresentation Layer = iota
	LayerState
	LayerFrontendService
	LayerBridge
	LayerHandler
	LayerBackendService
	LayerStorage
)

// String returns the canonical name of a layer.
func (l Layer) String() string {
	switch l {
	case LayerPresentation:
		return "presentation"
	case LayerState:
		return "state"
	case LayerFrontendService:
		return "frontend-service"
	case LayerBridge:
		return "bridge"
	case LayerHandler:
		return "handler"
	case LayerBackendService:
		return "backend-service"
	case LayerStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Rank returns the fixed display rank of a layer. Lower ranks render first.
func (l Layer) Rank() int {
	return int(l)
}

// Valid reports whether l is one of the known layer values.
func (l Layer) Valid() bool {
	return l >= LayerPresentation && l <= LayerStorage
}

// ParseLayer converts a layer name to a Layer. An unknown name is a
// data-integrity error, never silently mapped to a default, because layer
// rank drives display ordering.
func ParseLayer(s string) (Layer, error) {
	switch s {
	case "presentation":
		return LayerPresentation, nil
	case "state":
		return LayerState, nil
	case "frontend-service":
		return LayerFrontendService, nil
	case "bridge":
		return LayerBridge, nil
	case "handler":
		return LayerHandler, nil
	case "backend-service":
		return LayerBackendService, nil
	case "storage":
		return LayerStorage, nil
	default:
		return 0, fmt.Errorf("unknown layer %q", s)
	}
}

// Layers returns all known layers in rank order.
func Layers() []Layer {
	return []Layer{
		LayerPresentation,
		LayerState,
		LayerFrontendService,
		LayerBridge,
		LayerHandler,
		LayerBackendService,
		LayerStorage,
	}
}

// Node is a single component in the architecture graph.
//
// Edges is an explicit ordered slice of target node ids. Edge order is part
// of the data contract: it fixes depth-first exploration order. Targets that
// do not exist in the catalog are legal and are skipped at traversal time.
type Node struct {
	ID          string
	Layer       Layer
	Label       string
	Location    string
	Description string
	Edges       []string
}
