package document

import (
	"strings"
	"testing"

	"github.com/go-openapi/spec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := &Document{
		AsyncAPI:   Version,
		Info:       &Info{Title: "Orders", Version: "1.0.0", Description: "Order events"},
		Servers:    NewOrderedMap[*Server](),
		Channels:   NewOrderedMap[*Channel](),
		Operations: NewOrderedMap[*Operation](),
		Components: &Components{
			Schemas:         NewOrderedMap[*spec.Schema](),
			Messages:        NewOrderedMap[*Message](),
			SecuritySchemes: NewOrderedMap[*SecurityScheme](),
		},
	}
	doc.Channels.Set("channel_orderCreated", &Channel{
		Address:  "orders/created",
		Messages: map[string]*Reference{"orderCreatedMessage": Ref("#/components/messages/orderCreatedMessage")},
		Bindings: Bindings{"kafka": map[string]any{"topic": "orders"}},
	})
	doc.Channels.Set("channel_archive", &Channel{Address: "archive"})
	doc.Operations.Set("orderCreated", &Operation{
		Action:  ActionSend,
		Channel: Ref("#/channels/channel_orderCreated"),
	})
	doc.Components.Messages.Set("orderCreatedMessage", &Message{
		Name:    "orderCreatedMessage",
		Payload: spec.RefSchema("#/components/schemas/Order"),
	})
	doc.Components.Schemas.Set("Order", &spec.Schema{SchemaProps: spec.SchemaProps{Type: spec.StringOrArray{"object"}}})
	return doc
}

func TestMarshalYAMLIsBlockStyleAndOrdered(t *testing.T) {
	out, err := Marshal(sampleDocument(), KindYAML)
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "asyncapi: 3.0.0\n"), text)
	assert.NotContains(t, text, "{\"", "no flow-style JSON objects should leak into YAML")
	assert.Less(t, strings.Index(text, "channel_orderCreated:"), strings.Index(text, "channel_archive:"))
	assert.Contains(t, text, "version: 1.0.0")
}

func TestMarshalJSONThenParse(t *testing.T) {
	doc := sampleDocument()
	out, err := Marshal(doc, KindJSON)
	require.NoError(t, err)

	back, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, Version, back.AsyncAPI)
	assert.Equal(t, []string{"channel_orderCreated", "channel_archive"}, back.Channels.Keys())
	op, ok := back.Operations.Get("orderCreated")
	require.True(t, ok)
	assert.Equal(t, "#/channels/channel_orderCreated", op.Channel.Ref)
	msg, ok := back.Components.Messages.Get("orderCreatedMessage")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Order", msg.Payload.Ref.String())
}

func TestParseYAMLKeepsKeyOrder(t *testing.T) {
	src := `
asyncapi: 3.0.0
info:
  title: T
  version: "2"
channels:
  second:
    address: b
  first:
    address: a
operations: {}
`
	doc, err := Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, doc.Channels.Keys())
	assert.Equal(t, "2", doc.Info.Version)
	assert.Equal(t, 0, doc.Operations.Len())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
	_, err = Parse([]byte("asyncapi: [unterminated"))
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("JSON")
	require.NoError(t, err)
	assert.Equal(t, KindJSON, k)
	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindYAML, k)
	_, err = ParseKind("toml")
	assert.Error(t, err)

	assert.Equal(t, KindJSON, KindFromPath("out/api.JSON"))
	assert.Equal(t, KindYAML, KindFromPath("api.yml"))
}

func TestStats(t *testing.T) {
	s := sampleDocument().Stats()
	assert.Equal(t, Stats{Channels: 2, Operations: 1, Messages: 1, Schemas: 1, Bindings: 1}, s)
	assert.Equal(t, Stats{}, (*Document)(nil).Stats())
}
