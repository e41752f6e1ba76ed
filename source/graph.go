package source

import (
	"net/url"

	"github.com/go-openapi/spec"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncforge/document"
)

// NodeID is the stable identity of an element in the source graph.
type NodeID string

// Node is an addressable element inside a namespace.
type Node struct {
	ID   NodeID
	Name string
}

// Namespace is a container of elements and nested namespaces. Elements keep
// the order in which they were declared.
type Namespace struct {
	Name       string
	Elements   []*Node
	Namespaces []*Namespace
}

// Graph is the contract Discovery and the Document Builder consume. All
// methods are read-only.
type Graph interface {
	// Root returns the outermost namespace, or nil when the description is empty.
	Root() *Namespace
	// ListOperations returns decorated operations in depth-first order.
	ListOperations() []*Node
	// ListMessageModels returns decorated message models in depth-first order.
	ListMessageModels() []*Node
	// ListSecurityConfigs returns decorated security declarations in depth-first order.
	ListSecurityConfigs() []*Node
	// Metadata returns the side-table record attached to id.
	Metadata(id NodeID) (*Metadata, bool)
	// NamespaceServers returns the namespace-level server declarations.
	NamespaceServers() ([]*ServerDecl, error)
	// Info returns the declared API info, or nil when none was declared.
	Info() *document.Info
}

// Metadata is the typed decoration attached to a node. At most one of
// Operation, Model and Security is normally set; Message only accompanies a
// Model.
type Metadata struct {
	Operation *OperationMeta
	Model     *ModelMeta
	Message   *MessageConfig
	Security  *SecurityMeta
}

// Decorated reports whether the metadata marks the node as relevant to
// document generation.
func (m *Metadata) Decorated() bool {
	return m != nil && (m.Operation != nil || m.Model != nil || m.Security != nil)
}

// Operation types.
const (
	OpTypePublish   = "publish"
	OpTypeSubscribe = "subscribe"
)

// OperationMeta decorates an operation.
type OperationMeta struct {
	ChannelPath string
	// OpType is "subscribe" for receiving operations. Anything else sends.
	OpType      string
	Title       string
	Summary     string
	Description string
	// Payload names the message model carried by the operation.
	Payload  string
	Security []string
	Bindings []BindingDecl
}

// ModelMeta decorates a message model.
type ModelMeta struct {
	Schema *spec.Schema
}

// MessageConfig is the message configuration attached to a model.
type MessageConfig struct {
	// Name overrides the components.messages key. Defaults to the model name.
	Name          string
	Title         string
	Summary       string
	Description   string
	ContentType   string
	Headers       string
	CorrelationID *document.CorrelationID
	Examples      []document.MessageExample
	Bindings      []BindingDecl
}

// SecurityMeta decorates a security declaration.
type SecurityMeta struct {
	Type             string
	Description      string
	ParamName        string
	In               string
	Scheme           string
	BearerFormat     string
	Flows            *document.OAuthFlows
	OpenIDConnectURL string
	Scopes           []string
}

// ServerDecl is a namespace-level server declaration.
type ServerDecl struct {
	Name            string
	Host            string
	Protocol        string
	ProtocolVersion string
	Pathname        string
	Description     string
	Security        []string
	Bindings        []BindingDecl
}

// BindingDecl is a loosely typed binding declaration as written in the
// source. The binding registry turns it into a typed configuration.
type BindingDecl struct {
	Type   string
	Config RawConfig
}

// RawConfig carries the undecoded configuration for a binding declaration.
// Exactly one of Node and Values is expected to be set; both empty means an
// empty configuration.
type RawConfig struct {
	Node   *yaml.Node
	Values url.Values
}
