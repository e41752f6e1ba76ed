package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRef(t *testing.T) {
	var nilChannel *Channel
	assert.False(t, nilChannel.IsRef())
	assert.False(t, (&Channel{Address: "orders"}).IsRef())
	assert.True(t, (&Channel{Ref: "#/channels/orders"}).IsRef())

	var nilOperation *Operation
	assert.False(t, nilOperation.IsRef())
	assert.True(t, (&Operation{Ref: "common.yaml#/operations/x"}).IsRef())

	assert.False(t, (&Message{Name: "Order"}).IsRef())
	assert.True(t, (&Message{Ref: "#/components/messages/Order"}).IsRef())

	var nilServer *Server
	assert.False(t, nilServer.IsRef())
	assert.True(t, (&Server{Ref: "#/servers/production"}).IsRef())
}
