package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/asyncforge/aserrors"
	"github.com/erraggy/asyncforge/document"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		kind document.Kind
		want string
	}{
		{"asyncapi", document.KindYAML, "asyncapi.yaml"},
		{"asyncapi", document.KindJSON, "asyncapi.json"},
		{"asyncapi.json", document.KindJSON, "asyncapi.json"},
		{"asyncapi.yml", document.KindYAML, "asyncapi.yml"},
		{"asyncapi.json", document.KindYAML, "asyncapi.json.yaml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileName(tt.name, tt.kind))
	}
}

func TestFileSinkWrite(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSink(filepath.Join(dir, "out"))

	require.NoError(t, s.Write(context.Background(), "api/asyncapi", []byte("asyncapi: 3.0.0\n"), document.KindYAML))

	path := filepath.Join(dir, "out", "api", "asyncapi.yaml")
	assert.Equal(t, path, s.Path("api/asyncapi", document.KindYAML))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "asyncapi: 3.0.0\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileSinkRejectsEscapingNames(t *testing.T) {
	s := NewFileSink(t.TempDir())
	for _, name := range []string{"", "../evil", "/etc/passwd"} {
		err := s.Write(context.Background(), name, []byte("{}"), document.KindJSON)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, aserrors.ErrSink)
		assert.ErrorIs(t, err, aserrors.ErrInvalidDestination)
	}
}

func TestFileSinkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFileSink(t.TempDir()).Write(ctx, "x", nil, document.KindJSON)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()
	buf := []byte("{}")
	require.NoError(t, s.Write(ctx, "asyncapi", buf, document.KindJSON))
	require.NoError(t, s.Write(ctx, "asyncapi", []byte("a: 1\n"), document.KindYAML))
	require.NoError(t, s.Write(ctx, "asyncapi", []byte(`{"a":1}`), document.KindJSON))
	buf[0] = 'X'

	assert.Equal(t, []string{"asyncapi.json", "asyncapi.yaml"}, s.Files())
	got, ok := s.Get("asyncapi.json")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(got))

	var zero MemorySink
	require.NoError(t, zero.Write(ctx, "z", nil, document.KindYAML))
	assert.Equal(t, []string{"z.yaml"}, zero.Files())
}
