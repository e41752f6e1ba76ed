package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/bindings"
	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/internal/refs"
	"github.com/erraggy/asyncforge/internal/severity"
	"github.com/erraggy/asyncforge/processing"
	"github.com/erraggy/asyncforge/sink"
	"github.com/erraggy/asyncforge/source"
	"github.com/erraggy/asyncforge/validator"
)

func newPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(bindings.DefaultRegistry(), opts...)
	require.NoError(t, err)
	return p
}

func messages(diags []Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Message)
	}
	return out
}

func TestEmptyGraph(t *testing.T) {
	res, err := newPipeline(t).Run(context.Background(), source.NewMemoryGraph())
	require.NoError(t, err)

	doc := res.Document
	assert.Equal(t, document.Version, doc.AsyncAPI)
	assert.Zero(t, doc.Channels.Len())
	assert.Zero(t, doc.Operations.Len())
	assert.Zero(t, doc.Components.Messages.Len())
	assert.Zero(t, doc.Components.Schemas.Len())
	assert.Zero(t, doc.Components.SecuritySchemes.Len())
	assert.False(t, validator.QuickCheck(doc))

	assert.True(t, res.Valid())
	assert.Equal(t, 0, res.Validation.ErrorCount)
	assert.Equal(t, 2, res.Validation.WarningCount)
	assert.Len(t, res.Warnings(), 2)
	assert.Empty(t, res.Errors())
	assert.Len(t, res.Timings, 4)
}

func TestSingleOperation(t *testing.T) {
	for _, tt := range []struct {
		opType string
		action string
	}{
		{"", document.ActionSend},
		{source.OpTypeSubscribe, document.ActionReceive},
	} {
		t.Run("type="+tt.opType, func(t *testing.T) {
			g := source.NewMemoryGraph()
			g.AddOperation(g.Root(), "publishOrder", &source.OperationMeta{OpType: tt.opType})

			res, err := newPipeline(t).Run(context.Background(), g)
			require.NoError(t, err)
			assert.Empty(t, res.Validation.Errors)
			assert.True(t, res.Valid())

			ch, ok := res.Document.Channels.Get("channel_publishOrder")
			require.True(t, ok)
			assert.Equal(t, "publishorder", ch.Address)
			op, _ := res.Document.Operations.Get("publishOrder")
			assert.Equal(t, tt.action, op.Action)
			assert.True(t, res.Document.Components.Messages.Has("publishOrderMessage"))
			assert.True(t, validator.QuickCheck(res.Document))
		})
	}
}

func TestDanglingChannelReference(t *testing.T) {
	g := source.NewMemoryGraph()
	g.AddOperation(g.Root(), "publishOrder", nil)
	res, err := newPipeline(t).Run(context.Background(), g)
	require.NoError(t, err)

	op, _ := res.Document.Operations.Get("publishOrder")
	op.Channel = document.Ref(refs.Channel("missingChannel"))
	vr := validator.Validate(res.Document)
	assert.False(t, vr.Valid)
	require.Equal(t, 1, vr.ErrorCount)
	assert.Contains(t, vr.Errors[0].Message, "publishOrder")
	assert.Contains(t, vr.Errors[0].Message, "missingChannel")
}

func TestSameMessageNameLastWriteWins(t *testing.T) {
	g := source.NewMemoryGraph()
	g.AddModel(g.Root(), "First", nil, &source.MessageConfig{Name: "shared", Title: "first"})
	g.AddModel(g.Root(), "Second", nil, &source.MessageConfig{Name: "shared", Title: "second"})

	res, err := newPipeline(t).Run(context.Background(), g)
	require.NoError(t, err)
	msg, _ := res.Document.Components.Messages.Get("shared")
	assert.Equal(t, "second", msg.Title)
	assert.Equal(t, 1, res.Document.Components.Messages.Len())
	for _, d := range res.Diagnostics {
		assert.NotEqual(t, StageProcessing, d.Stage, d.Message)
	}

	res, err = newPipeline(t, WithCollisionPolicy(processing.CollisionError)).Run(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, StageProcessing, res.Errors()[0].Stage)
	assert.True(t, res.Valid(), "collision errors are reported but the document stays valid")
}

func TestMissingRequiredBindingIdentifier(t *testing.T) {
	var cfg yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("partitions: 3"), &cfg))

	g := source.NewMemoryGraph()
	g.AddOperation(g.Root(), "publishOrder", &source.OperationMeta{
		Bindings: []source.BindingDecl{{Type: "kafka", Config: source.RawConfig{Node: cfg.Content[0]}}},
	})
	g.AddOperation(g.Root(), "cancelOrder", nil)

	res, err := newPipeline(t).Run(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, res.Valid())
	assert.Equal(t, 2, res.Document.Operations.Len())

	var bindingWarnings []Diagnostic
	for _, d := range res.Warnings() {
		if d.Stage == StageBinding {
			bindingWarnings = append(bindingWarnings, d)
		}
	}
	require.Len(t, bindingWarnings, 1, messages(res.Diagnostics))
	assert.Equal(t, "publishOrder", bindingWarnings[0].Element)
	ch, _ := res.Document.Channels.Get("channel_publishOrder")
	assert.Empty(t, ch.Bindings)
}

func TestLoadedDescription(t *testing.T) {
	g, err := source.LoadFile("../source/testdata/orders.yaml")
	require.NoError(t, err)

	mem := sink.NewMemorySink()
	res, err := newPipeline(t,
		WithSink(mem),
		WithOutputName("shop"),
		WithFormats(document.KindYAML, document.KindJSON),
	).Run(context.Background(), g)
	require.NoError(t, err)
	assert.True(t, res.Valid(), res.Validation.ErrorMessages())
	assert.Empty(t, res.Diagnostics, messages(res.Diagnostics))

	assert.Equal(t, "Shop Events", res.Document.Info.Title)
	assert.Equal(t, "2.1.0", res.Document.Info.Version)
	assert.Equal(t, []string{"channel_publishOrder", "channel_onShipment", "channel_invoiceIssued"}, res.Document.Channels.Keys())
	srv, ok := res.Document.Servers.Get("production")
	require.True(t, ok)
	assert.Contains(t, srv.Bindings, "kafka")

	assert.Equal(t, []string{"shop.yaml", "shop.json"}, mem.Files())
	require.Len(t, res.Artifacts, 2)
	data, _ := mem.Get("shop.json")
	assert.Equal(t, len(data), res.Artifacts[1].Size)
	parsed, err := document.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, res.Document.Channels.Keys(), parsed.Channels.Keys())
}

func TestInvalidDocumentIsNotWritten(t *testing.T) {
	g := source.NewMemoryGraph()
	g.SetInfo(&document.Info{Title: "x"})
	g.AddOperation(g.Root(), "op", nil)
	g.AddSecurity(g.Root(), "broken", &source.SecurityMeta{Type: document.SchemeHTTP})

	mem := sink.NewMemorySink()
	res, err := newPipeline(t, WithSink(mem)).Run(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Empty(t, mem.Files())
	assert.Empty(t, res.Artifacts)
	last := res.Diagnostics[len(res.Diagnostics)-1]
	assert.Equal(t, StageEmit, last.Stage)
	assert.Equal(t, severity.SeverityWarning, last.Severity)

	res, err = newPipeline(t, WithSink(mem), WithWriteInvalid(true)).Run(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, res.Valid())
	assert.Equal(t, []string{"asyncapi.yaml"}, mem.Files())
}

type failingSink struct{}

func (failingSink) Write(context.Context, string, []byte, document.Kind) error {
	return errors.New("disk full")
}

func TestSinkFailure(t *testing.T) {
	g := source.NewMemoryGraph()
	g.AddOperation(g.Root(), "op", nil)
	res, err := newPipeline(t, WithSink(failingSink{})).Run(context.Background(), g)
	require.Error(t, err)
	assert.ErrorIs(t, err, aserrors.ErrSink)
	require.NotNil(t, res.Document)
	assert.True(t, res.Valid())
	require.Len(t, res.Errors(), 1)
	assert.Equal(t, StageEmit, res.Errors()[0].Stage)
}

func TestFatalInputs(t *testing.T) {
	p := newPipeline(t)
	_, err := p.Run(context.Background(), nil)
	assert.ErrorIs(t, err, aserrors.ErrFatal)

	noRegistry, err := New(nil)
	require.NoError(t, err)
	res, err := noRegistry.Run(context.Background(), source.NewMemoryGraph())
	assert.ErrorIs(t, err, aserrors.ErrFatal)
	assert.Nil(t, res.Document, "no stage runs")
	assert.Empty(t, res.Timings)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, source.NewMemoryGraph())
	assert.ErrorIs(t, err, aserrors.ErrFatal)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvalidOptions(t *testing.T) {
	for name, opt := range map[string]Option{
		"empty output":   WithOutputName(""),
		"no formats":     WithFormats(),
		"bad format":     WithFormats("toml"),
		"negative limit": WithConcurrency(-1),
	} {
		_, err := New(bindings.DefaultRegistry(), opt)
		assert.ErrorIs(t, err, aserrors.ErrConfig, name)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()
	m.MustRegister(reg)

	g := source.NewMemoryGraph()
	g.AddOperation(g.Root(), "publishOrder", nil)
	p := newPipeline(t, WithMetricsCollector(m))
	_, err := p.Run(context.Background(), g)
	require.NoError(t, err)
	_, err = p.Run(context.Background(), source.NewMemoryGraph())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runs.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.elements.WithLabelValues("channel")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.issues.WithLabelValues(StageValidation, "warning")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.stageDuration))

	_, err = New(bindings.DefaultRegistry(), WithMetrics(reg))
	assert.ErrorIs(t, err, aserrors.ErrConfig, "collectors are already registered")

	fresh := prometheus.NewRegistry()
	_, err = New(bindings.DefaultRegistry(), WithMetrics(fresh))
	require.NoError(t, err)
}

func TestStageResult(t *testing.T) {
	ok := Ok(StageDiscovery, 3)
	assert.False(t, ok.Failed())
	assert.Equal(t, 3, ok.Value)

	failed := Fail[int](StageProcessing, errors.New("boom"))
	assert.True(t, failed.Failed())
	assert.Equal(t, StageProcessing, failed.Stage)
}
