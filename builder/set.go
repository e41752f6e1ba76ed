package builder

import (
	"github.com/go-openapi/spec"

	"github.com/erraggy/asyncforge/document"
)

// SetChannel writes doc.Channels[name], reporting whether it replaced an entry.
func SetChannel(doc *document.Document, name string, ch *document.Channel) bool {
	EnsureStructure(doc)
	return doc.Channels.Set(name, ch)
}

// SetOperation writes doc.Operations[name], reporting whether it replaced an entry.
func SetOperation(doc *document.Document, name string, op *document.Operation) bool {
	EnsureStructure(doc)
	return doc.Operations.Set(name, op)
}

// SetMessage writes components.messages[name], reporting whether it replaced an entry.
func SetMessage(doc *document.Document, name string, msg *document.Message) bool {
	EnsureComponents(doc)
	return doc.Components.Messages.Set(name, msg)
}

// SetSchema writes components.schemas[name], reporting whether it replaced an entry.
func SetSchema(doc *document.Document, name string, s *spec.Schema) bool {
	EnsureComponents(doc)
	return doc.Components.Schemas.Set(name, s)
}

// SetSecurityScheme writes components.securitySchemes[name], reporting
// whether it replaced an entry.
func SetSecurityScheme(doc *document.Document, name string, s *document.SecurityScheme) bool {
	EnsureComponents(doc)
	return doc.Components.SecuritySchemes.Set(name, s)
}

// SetServer writes doc.Servers[name], creating the servers map if needed.
func SetServer(doc *document.Document, name string, s *document.Server) bool {
	if doc.Servers == nil {
		doc.Servers = document.NewOrderedMap[*document.Server]()
	}
	return doc.Servers.Set(name, s)
}
