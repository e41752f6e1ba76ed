package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const ordersFile = "../../../source/testdata/orders.yaml"

// validDocument is a complete AsyncAPI document with resolvable references.
const validDocument = `asyncapi: 3.0.0
info:
  title: Orders
  version: 1.0.0
  description: Order events
channels:
  orders:
    address: orders
    messages:
      Order:
        $ref: '#/components/messages/Order'
operations:
  publishOrder:
    action: send
    channel:
      $ref: '#/channels/orders'
    messages:
      - $ref: '#/channels/orders/messages/Order'
components:
  messages:
    Order:
      name: Order
      contentType: application/json
      payload:
        type: object
`

// danglingDocument references a channel that does not exist.
const danglingDocument = `asyncapi: 3.0.0
info:
  title: Orders
  version: 1.0.0
channels:
  orders:
    address: orders
operations:
  publishOrder:
    action: send
    channel:
      $ref: '#/channels/missing'
`

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the command tree with colors disabled.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	app := &App{Stdin: strings.NewReader(stdin), Stdout: &stdout, Stderr: &stderr}
	code := Execute(context.Background(), app, args)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
