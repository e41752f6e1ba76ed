package refs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	assert.Equal(t, "#/channels/channel_publishOrder", Channel("channel_publishOrder"))
	assert.Equal(t, "#/components/schemas/Order", Schema("Order"))
	assert.Equal(t, "#/components/messages/a~1b", Message("a/b"))
	assert.Equal(t, "#/components/securitySchemes/apiKey", SecurityScheme("apiKey"))
	assert.Equal(t, "#/channels/ch/messages/m", ChannelMessage("ch", "m"))
}

func TestIsLocal(t *testing.T) {
	assert.True(t, IsLocal("#/channels/x"))
	assert.False(t, IsLocal("other.yaml#/channels/x"))
	assert.False(t, IsLocal(""))
}

func TestName(t *testing.T) {
	name, ok := Name("#/channels/a~1b", PrefixChannels)
	assert.True(t, ok)
	assert.Equal(t, "a/b", name)

	_, ok = Name("#/components/messages/x", PrefixChannels)
	assert.False(t, ok)

	_, ok = Name("#/channels/x/messages/y", PrefixChannels)
	assert.False(t, ok)

	_, ok = Name("#/channels/", PrefixChannels)
	assert.False(t, ok)
}
