package document

import (
	"github.com/go-openapi/spec"
)

// Version is the AsyncAPI specification version emitted in every document.
const Version = "3.0.0"

// DefaultContentType is used for messages that do not declare a content type.
const DefaultContentType = "application/json"

// Operation actions.
const (
	ActionSend    = "send"
	ActionReceive = "receive"
)

// ValidActions lists the only values permitted in Operation.Action.
var ValidActions = []string{ActionSend, ActionReceive}

// Document is the root of an AsyncAPI 3.0 document.
type Document struct {
	AsyncAPI           string                  `yaml:"asyncapi" json:"asyncapi"`
	ID                 string                  `yaml:"id,omitempty" json:"id,omitempty"`
	Info               *Info                   `yaml:"info,omitempty" json:"info,omitempty"`
	DefaultContentType string                  `yaml:"defaultContentType,omitempty" json:"defaultContentType,omitempty"`
	Servers            *OrderedMap[*Server]    `yaml:"servers,omitempty" json:"servers,omitempty"`
	Channels           *OrderedMap[*Channel]   `yaml:"channels,omitempty" json:"channels,omitempty"`
	Operations         *OrderedMap[*Operation] `yaml:"operations,omitempty" json:"operations,omitempty"`
	Components         *Components             `yaml:"components,omitempty" json:"components,omitempty"`
}

// Info provides metadata about the API.
type Info struct {
	Title          string   `yaml:"title,omitempty" json:"title,omitempty"`
	Version        string   `yaml:"version,omitempty" json:"version,omitempty"`
	Description    string   `yaml:"description,omitempty" json:"description,omitempty"`
	TermsOfService string   `yaml:"termsOfService,omitempty" json:"termsOfService,omitempty"`
	Contact        *Contact `yaml:"contact,omitempty" json:"contact,omitempty"`
	License        *License `yaml:"license,omitempty" json:"license,omitempty"`
	Tags           []*Tag   `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Contact information for the exposed API.
type Contact struct {
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	URL   string `yaml:"url,omitempty" json:"url,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// License information for the exposed API.
type License struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Tag adds metadata to a single tag.
type Tag struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Server describes a message broker or other connection target.
type Server struct {
	Ref             string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Host            string       `yaml:"host,omitempty" json:"host,omitempty"`
	Protocol        string       `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	ProtocolVersion string       `yaml:"protocolVersion,omitempty" json:"protocolVersion,omitempty"`
	Pathname        string       `yaml:"pathname,omitempty" json:"pathname,omitempty"`
	Title           string       `yaml:"title,omitempty" json:"title,omitempty"`
	Summary         string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description     string       `yaml:"description,omitempty" json:"description,omitempty"`
	Security        []*Reference `yaml:"security,omitempty" json:"security,omitempty"`
	Bindings        Bindings     `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// Channel is an addressable path over which messages flow.
type Channel struct {
	Ref         string                `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Address     string                `yaml:"address,omitempty" json:"address,omitempty"`
	Title       string                `yaml:"title,omitempty" json:"title,omitempty"`
	Summary     string                `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Messages    map[string]*Reference `yaml:"messages,omitempty" json:"messages,omitempty"`
	Servers     []*Reference          `yaml:"servers,omitempty" json:"servers,omitempty"`
	Bindings    Bindings              `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// Operation is a named intent to send or receive messages over a channel.
type Operation struct {
	Ref         string       `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Action      string       `yaml:"action,omitempty" json:"action,omitempty"`
	Channel     *Reference   `yaml:"channel,omitempty" json:"channel,omitempty"`
	Title       string       `yaml:"title,omitempty" json:"title,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty"`
	Security    []*Reference `yaml:"security,omitempty" json:"security,omitempty"`
	Messages    []*Reference `yaml:"messages,omitempty" json:"messages,omitempty"`
	Bindings    Bindings     `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// Message describes a message payload and its metadata.
type Message struct {
	Ref           string           `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Name          string           `yaml:"name,omitempty" json:"name,omitempty"`
	Title         string           `yaml:"title,omitempty" json:"title,omitempty"`
	Summary       string           `yaml:"summary,omitempty" json:"summary,omitempty"`
	Description   string           `yaml:"description,omitempty" json:"description,omitempty"`
	ContentType   string           `yaml:"contentType,omitempty" json:"contentType,omitempty"`
	Headers       *spec.Schema     `yaml:"headers,omitempty" json:"headers,omitempty"`
	Payload       *spec.Schema     `yaml:"payload,omitempty" json:"payload,omitempty"`
	CorrelationID *CorrelationID   `yaml:"correlationId,omitempty" json:"correlationId,omitempty"`
	Examples      []MessageExample `yaml:"examples,omitempty" json:"examples,omitempty"`
	Bindings      Bindings         `yaml:"bindings,omitempty" json:"bindings,omitempty"`
}

// CorrelationID identifies the message field used to correlate requests and replies.
type CorrelationID struct {
	Ref         string `yaml:"$ref,omitempty" json:"$ref,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Location    string `yaml:"location,omitempty" json:"location,omitempty"`
}

// MessageExample is an example of a message payload and headers.
type MessageExample struct {
	Name    string         `yaml:"name,omitempty" json:"name,omitempty"`
	Summary string         `yaml:"summary,omitempty" json:"summary,omitempty"`
	Headers map[string]any `yaml:"headers,omitempty" json:"headers,omitempty"`
	Payload any            `yaml:"payload,omitempty" json:"payload,omitempty"`
}

// Components holds reusable objects. Once a document is initialized every
// map is non-nil.
type Components struct {
	Schemas         *OrderedMap[*spec.Schema]    `yaml:"schemas,omitempty" json:"schemas,omitempty"`
	Messages        *OrderedMap[*Message]        `yaml:"messages,omitempty" json:"messages,omitempty"`
	SecuritySchemes *OrderedMap[*SecurityScheme] `yaml:"securitySchemes,omitempty" json:"securitySchemes,omitempty"`
}

// Bindings maps a binding-type identifier to its transport-specific fragment.
type Bindings map[string]any

// Reference points at another part of the document.
type Reference struct {
	Ref string `yaml:"$ref" json:"$ref"`
}

// Ref returns a Reference to target.
func Ref(target string) *Reference {
	return &Reference{Ref: target}
}

// IsRef reports whether the channel is a reference object.
func (c *Channel) IsRef() bool { return c != nil && c.Ref != "" }

// IsRef reports whether the operation is a reference object.
func (o *Operation) IsRef() bool { return o != nil && o.Ref != "" }

// IsRef reports whether the message is a reference object.
func (m *Message) IsRef() bool { return m != nil && m.Ref != "" }

// IsRef reports whether the server is a reference object.
func (s *Server) IsRef() bool { return s != nil && s.Ref != "" }
