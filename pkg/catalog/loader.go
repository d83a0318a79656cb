package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang/snappy"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance for manifest documents
var validate = validator.New()

// manifestNode is the external catalog-builder data contract: one node as it
// appears in a manifest file. Layer is a name here and resolved against the
// known enumeration during Load.
type manifestNode struct {
	ID          string   `yaml:"id" validate:"required,max=200"`
	Layer       string   `yaml:"layer" validate:"required"`
	Label       string   `yaml:"label" validate:"max=200"`
	Location    string   `yaml:"location"`
	Description string   `yaml:"description"`
	Edges       []string `yaml:"edges" validate:"omitempty,dive,required"`
}

// manifest is the root document of a catalog manifest file.
type manifest struct {
	Nodes []manifestNode `yaml:"nodes" validate:"required,min=1,dive"`
}

// Load parses a YAML manifest into a Catalog.
//
// Unknown layer names and structural problems (missing ids, duplicates) are
// errors. Dangling edge targets are not: they stay in the node's edge list
// and are filtered at traversal time. Use DanglingEdges on the result to
// surface them as warnings.
func Load(data []byte) (*Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse catalog manifest: %w", err)
	}

	if err := validate.Struct(&m); err != nil {
		return nil, formatManifestError(err)
	}

	nodes := make([]Node, 0, len(m.Nodes))
	for _, mn := range m.Nodes {
		layer, err := ParseLayer(mn.Layer)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", mn.ID, err)
		}
		nodes = append(nodes, Node{
			ID:          mn.ID,
			Layer:       layer,
			Label:       mn.Label,
			Location:    mn.Location,
			Description: mn.Description,
			Edges:       mn.Edges,
		})
	}

	return New(nodes)
}

// LoadFile reads a manifest from disk. Files with a .snappy suffix are
// block-decompressed first; large static-analysis scans ship compressed.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog manifest: %w", err)
	}

	if strings.HasSuffix(path, ".snappy") {
		data, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress catalog manifest: %w", err)
		}
	}

	return Load(data)
}

// EncodeManifest serializes a catalog back to manifest YAML, preserving
// manifest order. The inverse of Load, used to snapshot generated catalogs.
func EncodeManifest(c *Catalog) ([]byte, error) {
	m := manifest{Nodes: make([]manifestNode, 0, c.Len())}
	for _, id := range c.IDs() {
		n, _ := c.Get(id)
		m.Nodes = append(m.Nodes, manifestNode{
			ID:          n.ID,
			Layer:       n.Layer.String(),
			Label:       n.Label,
			Location:    n.Location,
			Description: n.Description,
			Edges:       n.Edges,
		})
	}
	return yaml.Marshal(&m)
}

// EncodeCompressedManifest serializes and snappy-compresses a catalog.
func EncodeCompressedManifest(c *Catalog) ([]byte, error) {
	data, err := EncodeManifest(c)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, data), nil
}

// formatManifestError converts validator errors into readable messages
// without leaking struct internals.
func formatManifestError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid catalog manifest: field %s failed %q validation", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid catalog manifest: %w", err)
}
