package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
nodes:
  - id: ui.settings
    layer: presentation
    label: Settings page
    location: src/pages/settings.tsx
    edges: [hook.useSettings]
  - id: hook.useSettings
    layer: state
    label: useSettings
    edges: [svc.settings, ghost.module]
  - id: svc.settings
    layer: frontend-service
    label: settingsService
    edges: []
`

func TestLoad_Valid(t *testing.T) {
	c, err := Load([]byte(sampleManifest))
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	n, ok := c.Get("ui.settings")
	require.True(t, ok)
	assert.Equal(t, LayerPresentation, n.Layer)
	assert.Equal(t, "Settings page", n.Label)
	assert.Equal(t, []string{"hook.useSettings"}, n.Edges)

	// Dangling targets survive loading and are reported, not rejected.
	assert.Equal(t, []string{"hook.useSettings -> ghost.module"}, c.DanglingEdges())
}

func TestLoad_UnknownLayer(t *testing.T) {
	doc := `
nodes:
  - id: a
    layer: database
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown layer")
}

func TestLoad_MissingID(t *testing.T) {
	doc := `
nodes:
  - layer: state
    label: anonymous
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
}

func TestLoad_EmptyManifest(t *testing.T) {
	_, err := Load([]byte("nodes: []"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("nodes: [{{"))
	require.Error(t, err)
}

func TestLoad_DuplicateID(t *testing.T) {
	doc := `
nodes:
  - id: a
    layer: state
  - id: a
    layer: bridge
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestLoadFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoadFile_Snappy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml.snappy")
	compressed := snappy.Encode(nil, []byte(sampleManifest))
	require.NoError(t, os.WriteFile(path, compressed, 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEncodeManifest_RoundTrip(t *testing.T) {
	c, err := Load([]byte(sampleManifest))
	require.NoError(t, err)

	data, err := EncodeManifest(c)
	require.NoError(t, err)

	reloaded, err := Load(data)
	require.NoError(t, err)
	assert.Equal(t, c.IDs(), reloaded.IDs())
	for _, id := range c.IDs() {
		orig, _ := c.Get(id)
		got, _ := reloaded.Get(id)
		assert.Equal(t, orig, got, "node %s", id)
	}
}

func TestEncodeCompressedManifest_RoundTrip(t *testing.T) {
	c, err := Load([]byte(sampleManifest))
	require.NoError(t, err)

	data, err := EncodeCompressedManifest(c)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "catalog.yaml.snappy")
	require.NoError(t, os.WriteFile(path, data, 0644))

	reloaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.IDs(), reloaded.IDs())
}
