// Package naming derives document keys and titles from element names.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// ChannelPrefix is prepended to an operation name to form its channel key.
	ChannelPrefix = "channel_"
	// MessageSuffix is appended to an operation name to form its message key.
	MessageSuffix = "Message"
)

// ChannelName returns the channel key synthesized for an operation.
// The mapping is pure: the same operation name always yields the same key.
// Example: "publishOrder" -> "channel_publishOrder"
func ChannelName(operation string) string {
	return ChannelPrefix + operation
}

// MessageName returns the message component key synthesized for an operation.
// Example: "publishOrder" -> "publishOrderMessage"
func MessageName(operation string) string {
	return operation + MessageSuffix
}

// DefaultAddress returns the channel address used when an operation carries
// no explicit channel path: the lower-cased operation name.
func DefaultAddress(operation string) string {
	return strings.ToLower(operation)
}

// Words splits an identifier into words at case changes and separators.
// Example: "publishOrderV2" -> ["publish", "Order", "V2"]
// Example: "order_created" -> ["order", "created"]
func Words(s string) []string {
	var words []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == '.' || r == '/' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && len(cur) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			// "HTTPServer" splits before "Server", "orderID" keeps "ID".
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

// Title converts an identifier into a human-readable title.
// Example: "publishOrder" -> "Publish Order"
func Title(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	caser := cases.Title(language.English, cases.NoLower)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
