package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncforge/source"
)

type nilRootGraph struct {
	*source.MemoryGraph
}

func (nilRootGraph) Root() *source.Namespace { return nil }

func elementNames(els []Element) []string {
	out := make([]string, 0, len(els))
	for _, e := range els {
		out = append(out, e.Name)
	}
	return out
}

func sampleGraph() *source.MemoryGraph {
	g := source.NewMemoryGraph()
	root := g.Root()
	g.AddOperation(root, "a", nil)
	g.AddModel(root, "Order", nil, nil)
	g.Add(root, "undecorated", nil)
	g.Add(root, "emptyMeta", &source.Metadata{})
	inner := g.Namespace("inner")
	g.AddOperation(inner, "c", nil)
	g.AddSecurity(inner, "key", &source.SecurityMeta{Type: "plain"})
	g.AddOperation(root, "b", nil)
	deeper := g.Namespace("inner.deeper")
	g.AddOperation(deeper, "d", nil)
	g.AddOperation(g.Namespace("second"), "e", nil)
	return g
}

func TestDiscoverDepthFirstOrder(t *testing.T) {
	res, err := Discover(context.Background(), sampleGraph())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, elementNames(res.Operations))
	assert.Equal(t, []string{"Order"}, elementNames(res.Models))
	assert.Equal(t, []string{"key"}, elementNames(res.SecurityConfigs))
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 7, res.Len())
}

func TestDiscoverDeterministic(t *testing.T) {
	g := sampleGraph()
	first, err := Discover(context.Background(), g)
	require.NoError(t, err)
	second, err := Discover(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDiscoverDegrades(t *testing.T) {
	res, err := Discover(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, res.Len())
	assert.Len(t, res.Warnings, 1)

	res, err = Discover(context.Background(), nilRootGraph{source.NewMemoryGraph()})
	require.NoError(t, err)
	assert.Zero(t, res.Len())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "no root")
}

func TestDiscoverSkipsNilAndRepeatedNamespaces(t *testing.T) {
	g := source.NewMemoryGraph()
	root := g.Root()
	g.AddOperation(root, "a", nil)
	root.Elements = append(root.Elements, nil)
	shared := g.Namespace("shared")
	g.AddOperation(shared, "s", nil)
	root.Namespaces = append(root.Namespaces, shared, nil)

	res, err := Discover(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "s"}, elementNames(res.Operations))
	assert.Len(t, res.Warnings, 2)
}

func TestDiscoverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Discover(ctx, sampleGraph())
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Zero(t, res.Len())
}
