package bindings

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/source"
)

func yamlDecl(t *testing.T, bindingType, src string) source.BindingDecl {
	t.Helper()
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	return source.BindingDecl{Type: bindingType, Config: source.RawConfig{Node: doc.Content[0]}}
}

type echoConfig struct {
	Value string `yaml:"value" schema:"value"`
}

func (echoConfig) BindingType() string { return "echo" }

type echoPlugin struct {
	NotApplicable[echoConfig]
}

func (echoPlugin) Type() string { return "echo" }

func (echoPlugin) Capabilities() Capabilities {
	return Capabilities{Type: "echo", Levels: []Level{LevelChannel}}
}

func (echoPlugin) ValidateConfig(context.Context, echoConfig) error { return nil }

func (echoPlugin) GenerateChannelBinding(c echoConfig) (Fragment, bool) {
	return Fragment{"value": c.Value}, true
}

func TestDefaultRegistryTypes(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"amqp", "http", "kafka", "mqtt", "sns", "sqs", "ws"}, r.Types())
	assert.Len(t, r.Capabilities(), 7)

	other := DefaultRegistry()
	require.NoError(t, Register(other, echoPlugin{}))
	_, ok := r.Lookup("echo")
	assert.False(t, ok, "registries are independent values")
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, Register(r, echoPlugin{}))
	assert.Error(t, Register(r, echoPlugin{}))
}

func TestLookupUnregistered(t *testing.T) {
	r := NewRegistry()
	p, ok := r.Lookup("carrier-pigeon")
	assert.False(t, ok)
	assert.Nil(t, p)

	var nilReg *Registry
	_, ok = nilReg.Lookup("kafka")
	assert.False(t, ok)

	_, _, err := r.Decode(source.BindingDecl{Type: "carrier-pigeon"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, aserrors.ErrUnsupportedBinding))
}

func TestDecodeYAMLAndValues(t *testing.T) {
	r := DefaultRegistry()

	p, cfg, err := r.Decode(yamlDecl(t, "kafka", "topic: orders\npartitions: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "kafka", p.Type())
	assert.Equal(t, KafkaConfig{Topic: "orders", Partitions: 3}, cfg)

	_, cfg, err = r.Decode(source.BindingDecl{Type: "amqp", Config: source.RawConfig{Values: url.Values{"queue": {"jobs"}, "cc": {"a", "b"}}}})
	require.NoError(t, err)
	assert.Equal(t, AMQPConfig{Queue: "jobs", CC: []string{"a", "b"}}, cfg)

	_, cfg, err = r.Decode(source.BindingDecl{Type: "ws"})
	require.NoError(t, err)
	assert.Equal(t, WSConfig{}, cfg)

	_, _, err = r.Decode(yamlDecl(t, "kafka", "partitions: [1, 2]\n"))
	assert.True(t, errors.Is(err, aserrors.ErrBinding))
}

func TestAdapterRejectsWrongVariant(t *testing.T) {
	p, ok := DefaultRegistry().Lookup("kafka")
	require.True(t, ok)
	_, applicable := p.GenerateChannelBinding(MQTTConfig{})
	assert.False(t, applicable)
	assert.Error(t, p.ValidateConfig(context.Background(), MQTTConfig{}))
}

func TestGenerateDispatch(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, Register(r, echoPlugin{}))
	p, _ := r.Lookup("echo")
	f, ok := Generate(p, LevelChannel, echoConfig{Value: "x"})
	require.True(t, ok)
	assert.Equal(t, "x", f["value"])
	_, ok = Generate(p, LevelServer, echoConfig{})
	assert.False(t, ok)
	_, ok = Generate(p, Level("bogus"), echoConfig{})
	assert.False(t, ok)
}
