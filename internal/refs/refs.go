// Package refs builds and splits the local "$ref" pointers used inside an
// AsyncAPI document.
package refs

import (
	"strings"

	"github.com/go-openapi/jsonpointer"
)

// Local reference prefixes.
const (
	PrefixChannels        = "#/channels/"
	PrefixServers         = "#/servers/"
	PrefixSchemas         = "#/components/schemas/"
	PrefixMessages        = "#/components/messages/"
	PrefixSecuritySchemes = "#/components/securitySchemes/"
)

// Channel builds "#/channels/{name}".
func Channel(name string) string {
	return PrefixChannels + jsonpointer.Escape(name)
}

// Schema builds "#/components/schemas/{name}".
func Schema(name string) string {
	return PrefixSchemas + jsonpointer.Escape(name)
}

// Message builds "#/components/messages/{name}".
func Message(name string) string {
	return PrefixMessages + jsonpointer.Escape(name)
}

// SecurityScheme builds "#/components/securitySchemes/{name}".
func SecurityScheme(name string) string {
	return PrefixSecuritySchemes + jsonpointer.Escape(name)
}

// ChannelMessage builds "#/channels/{channel}/messages/{message}", the form an
// operation uses to point at one of its channel's messages.
func ChannelMessage(channel, message string) string {
	return Channel(channel) + "/messages/" + jsonpointer.Escape(message)
}

// IsLocal reports whether ref points inside the current document.
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// Name returns the final unescaped token of ref when ref starts with prefix.
// The boolean is false when the prefix does not match or the remainder is not
// a single token.
func Name(ref, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return jsonpointer.Unescape(rest), true
}
