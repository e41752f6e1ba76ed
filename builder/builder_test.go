package builder

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/source"
)

type panickingGraph struct {
	*source.MemoryGraph
}

func (panickingGraph) NamespaceServers() ([]*source.ServerDecl, error) {
	panic("adapter exploded")
}

func marshal(t *testing.T, doc *document.Document) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func TestCreateInitialDocumentMapTotality(t *testing.T) {
	b := New()
	doc := b.CreateInitialDocument(source.NewMemoryGraph())

	assert.Equal(t, document.Version, doc.AsyncAPI)
	require.NotNil(t, doc.Info)
	assert.Equal(t, DefaultTitle, doc.Info.Title)
	assert.Equal(t, DefaultVersion, doc.Info.Version)
	assert.Equal(t, DefaultDescription, doc.Info.Description)

	require.NotNil(t, doc.Channels)
	require.NotNil(t, doc.Operations)
	require.NotNil(t, doc.Components)
	assert.NotNil(t, doc.Components.Schemas)
	assert.NotNil(t, doc.Components.Messages)
	assert.NotNil(t, doc.Components.SecuritySchemes)
	assert.Nil(t, doc.Servers, "no declared servers leaves servers absent")
	assert.Empty(t, b.Warnings())
}

func TestCreateInitialDocumentServers(t *testing.T) {
	g := source.NewMemoryGraph()
	g.AddServer(&source.ServerDecl{Name: "prod", Host: "broker:9092", Protocol: "kafka", Security: []string{"sasl"}})
	g.AddServer(&source.ServerDecl{Name: "dev", Host: "localhost:9092", Protocol: "kafka"})

	doc := New().CreateInitialDocument(g)
	require.NotNil(t, doc.Servers)
	assert.Equal(t, []string{"prod", "dev"}, doc.Servers.Keys())
	prod, _ := doc.Servers.Get("prod")
	require.Len(t, prod.Security, 1)
	assert.Equal(t, "#/components/securitySchemes/sasl", prod.Security[0].Ref)
}

func TestCreateInitialDocumentRecoversServerFailure(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		g := source.NewMemoryGraph()
		g.ServersErr = errors.New("no namespace")
		b := New()
		doc := b.CreateInitialDocument(g)
		assert.Nil(t, doc.Servers)
		require.Len(t, b.Warnings(), 1)
		assert.Contains(t, b.Warnings()[0].Message, "no namespace")
		assert.NotNil(t, doc.Channels)
	})
	t.Run("panic", func(t *testing.T) {
		b := New()
		doc := b.CreateInitialDocument(panickingGraph{source.NewMemoryGraph()})
		assert.Nil(t, doc.Servers)
		require.Len(t, b.Warnings(), 1)
		assert.Contains(t, b.Warnings()[0].Message, "adapter exploded")
	})
}

func TestReusedBuilderForgetsServerDecls(t *testing.T) {
	g := source.NewMemoryGraph()
	g.AddServer(&source.ServerDecl{Name: "prod", Host: "broker:9092", Protocol: "kafka"})
	b := New()
	b.CreateInitialDocument(g)
	require.Len(t, b.ServerDecls(), 1)

	failing := source.NewMemoryGraph()
	failing.ServersErr = errors.New("no namespace")
	b.CreateInitialDocument(failing)
	assert.Empty(t, b.ServerDecls())

	b.CreateInitialDocument(g)
	require.Len(t, b.ServerDecls(), 1)
	b.CreateInitialDocument(nil)
	assert.Empty(t, b.ServerDecls())
}

func TestEnsureIdempotent(t *testing.T) {
	tests := []struct {
		name string
		doc  *document.Document
	}{
		{"empty", &document.Document{}},
		{"partial components", &document.Document{Components: &document.Components{}}},
		{"initialized", New().CreateInitialDocument(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnsureStructure(tt.doc)
			EnsureComponents(tt.doc)
			once := marshal(t, tt.doc)

			for range 3 {
				EnsureStructure(tt.doc)
				EnsureComponents(tt.doc)
			}
			assert.Equal(t, once, marshal(t, tt.doc))
		})
	}
}

func TestEnsureStructurePreservesContent(t *testing.T) {
	doc := New().CreateInitialDocument(nil)
	SetChannel(doc, "c", &document.Channel{Address: "c"})
	SetSchema(doc, "S", &spec.Schema{})
	EnsureStructure(doc)
	EnsureComponents(doc)
	assert.Equal(t, 1, doc.Channels.Len())
	assert.Equal(t, 1, doc.Components.Schemas.Len())

	assert.NotPanics(t, func() {
		EnsureStructure(nil)
		EnsureComponents(nil)
	})
}

func TestUpdateInfoShallowMerge(t *testing.T) {
	doc := New().CreateInitialDocument(nil)
	doc.Info.TermsOfService = "https://tos"
	UpdateInfo(doc, &document.Info{Title: "Orders", Contact: &document.Contact{Name: "team"}})

	assert.Equal(t, "Orders", doc.Info.Title)
	assert.Equal(t, DefaultVersion, doc.Info.Version)
	assert.Equal(t, DefaultDescription, doc.Info.Description)
	assert.Equal(t, "https://tos", doc.Info.TermsOfService)
	assert.Equal(t, "team", doc.Info.Contact.Name)

	UpdateInfo(doc, nil)
	assert.Equal(t, "Orders", doc.Info.Title)
}

func TestSetHelpersLastWriteWins(t *testing.T) {
	doc := New().CreateInitialDocument(nil)
	assert.False(t, SetMessage(doc, "m", &document.Message{Title: "first"}))
	assert.True(t, SetMessage(doc, "m", &document.Message{Title: "second"}))
	m, _ := doc.Components.Messages.Get("m")
	assert.Equal(t, "second", m.Title)

	assert.False(t, SetOperation(doc, "op", &document.Operation{Action: document.ActionSend}))
	assert.False(t, SetSecurityScheme(doc, "s", HTTPScheme("bearer", "", "")))
	assert.False(t, SetServer(doc, "prod", &document.Server{Host: "h"}))
	assert.True(t, SetServer(doc, "prod", &document.Server{Host: "h2"}))
}

func TestSecuritySchemeFor(t *testing.T) {
	tests := []struct {
		meta source.SecurityMeta
		want document.SecurityScheme
	}{
		{
			source.SecurityMeta{Type: document.SchemeHTTPAPIKey, ParamName: "X-Key", In: "header", Scheme: "ignored"},
			document.SecurityScheme{Type: document.SchemeHTTPAPIKey, Name: "X-Key", In: "header"},
		},
		{
			source.SecurityMeta{Type: document.SchemeHTTP, Scheme: "bearer", BearerFormat: "JWT", In: "ignored"},
			document.SecurityScheme{Type: document.SchemeHTTP, Scheme: "bearer", BearerFormat: "JWT"},
		},
		{
			source.SecurityMeta{Type: document.SchemeAPIKey, In: "user"},
			document.SecurityScheme{Type: document.SchemeAPIKey, In: "user"},
		},
		{
			source.SecurityMeta{Type: document.SchemeOpenIDConnect, OpenIDConnectURL: "https://id", Scopes: []string{"a"}},
			document.SecurityScheme{Type: document.SchemeOpenIDConnect, OpenIDConnectURL: "https://id", Scopes: []string{"a"}},
		},
		{
			source.SecurityMeta{Type: document.SchemeScramSha256, ParamName: "ignored"},
			document.SecurityScheme{Type: document.SchemeScramSha256},
		},
	}
	for _, tt := range tests {
		t.Run(tt.meta.Type, func(t *testing.T) {
			got := SecuritySchemeFor(&tt.meta)
			assert.Equal(t, tt.want, *got)
			assert.Empty(t, got.Validate())
		})
	}
}
