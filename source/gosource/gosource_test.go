package gosource

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncforge/source"
)

func loadSource(t *testing.T, src string) (*source.MemoryGraph, error) {
	t.Helper()
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "fixture.go", src, parser.ParseComments)
	require.NoError(t, err)
	g := source.NewMemoryGraph()
	return g, loadFiles(g, g.Root(), fset, []*ast.File{f})
}

func TestParseDirective(t *testing.T) {
	pos := token.Position{Filename: "x.go", Line: 3}

	d, ok, err := parseDirective("//asyncapi:binding kafka topic=orders&partitions=3", pos)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, KindBinding, d.Kind)
	assert.Equal(t, "kafka", d.Arg)
	assert.Equal(t, "orders", d.Values.Get("topic"))

	_, ok, err = parseDirective("// regular comment", pos)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = parseDirective("//asyncapi:bogus", pos)
	assert.ErrorContains(t, err, "unknown directive")

	_, _, err = parseDirective("//asyncapi:server", pos)
	assert.ErrorContains(t, err, "needs a name")

	_, _, err = parseDirective("//asyncapi:operation a=1 b=2", pos)
	assert.Error(t, err)
}

func TestLoadFilesFixture(t *testing.T) {
	g, err := Load(context.Background(), "testdata/shop", ".")
	require.NoError(t, err)

	require.NotNil(t, g.Info())
	assert.Equal(t, "Shop", g.Info().Title)

	servers, err := g.NamespaceServers()
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, "production", servers[0].Name)
	require.Len(t, servers[0].Bindings, 1)
	assert.Equal(t, "https://registry.local", servers[0].Bindings[0].Config.Values.Get("schemaRegistryUrl"))

	ops := g.ListOperations()
	require.Len(t, ops, 2)
	assert.Equal(t, "PublishOrder", ops[0].Name)
	assert.Equal(t, "refundIssued", ops[1].Name)

	meta, _ := g.Metadata(ops[0].ID)
	assert.Equal(t, "orders/created", meta.Operation.ChannelPath)
	assert.Equal(t, "Order", meta.Operation.Payload)
	require.Len(t, meta.Operation.Bindings, 1)
	assert.Equal(t, "kafka", meta.Operation.Bindings[0].Type)

	models := g.ListMessageModels()
	require.Len(t, models, 1)
	meta, _ = g.Metadata(models[0].ID)
	schema := meta.Model.Schema
	require.NotNil(t, schema)
	assert.ElementsMatch(t, []string{"id", "lines", "placedAt"}, schema.Required)
	assert.Contains(t, schema.Properties, "note")
	assert.NotContains(t, schema.Properties, "internal")
	lines := schema.Properties["lines"]
	require.NotNil(t, lines.Items)
	assert.Contains(t, lines.Items.Schema.Properties, "sku")
	assert.Equal(t, "Order placed", meta.Message.Title)

	sec := g.ListSecurityConfigs()
	require.Len(t, sec, 1)
	assert.Equal(t, "bearer", sec[0].Name)
}

func TestModelReferencesOtherModel(t *testing.T) {
	g, err := loadSource(t, `package p

//asyncapi:model
type Envelope struct {
	Body Body `+"`json:\"body\"`"+`
}

//asyncapi:model
type Body struct{}
`)
	require.NoError(t, err)
	models := g.ListMessageModels()
	require.Len(t, models, 2)
	meta, _ := g.Metadata(models[0].ID)
	body := meta.Model.Schema.Properties["body"]
	assert.Equal(t, "#/components/schemas/Body", body.Ref.String())
}

func TestDirectiveErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "package p\n\n//asyncapi:operation nope=1\nfunc F() {}\n"},
		{"message without model", "package p\n\n//asyncapi:message title=x\ntype T struct{}\n"},
		{"dangling binding", "package p\n\n//asyncapi:binding kafka topic=x\nfunc F() {}\n"},
		{"operation in package doc", "//asyncapi:operation\npackage p\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadSource(t, tt.src)
			assert.Error(t, err)
		})
	}
}
