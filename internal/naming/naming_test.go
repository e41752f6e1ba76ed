package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelAndMessageNames(t *testing.T) {
	assert.Equal(t, "channel_publishOrder", ChannelName("publishOrder"))
	assert.Equal(t, "publishOrderMessage", MessageName("publishOrder"))
	assert.Equal(t, "publishorder", DefaultAddress("publishOrder"))

	// Pure and repeatable.
	assert.Equal(t, ChannelName("x"), ChannelName("x"))
}

func TestWords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"publishOrder", []string{"publish", "Order"}},
		{"order_created", []string{"order", "created"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"orderID", []string{"order", "ID"}},
		{"v2Event", []string{"v2", "Event"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.in))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Publish Order", Title("publishOrder"))
	assert.Equal(t, "Order Created", Title("order-created"))
	assert.Equal(t, "HTTP Server", Title("HTTPServer"))
	assert.Equal(t, "", Title(""))
}
