package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-openapi/spec"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/asyncforge/document"
)

// description is the YAML service-description format read by Parse.
//
//	info: {title: Orders, version: 1.2.0}
//	servers:
//	  production: {host: broker:9092, protocol: kafka}
//	operations:
//	  - name: publishOrder
//	    channel: orders/created
//	    payload: Order
//	    bindings:
//	      kafka: {topic: orders}
//	models:
//	  - name: Order
//	    schema: {type: object}
//	namespaces:
//	  - name: billing
//	    operations: [...]
type description struct {
	Info          *document.Info `yaml:"info"`
	Servers       yaml.Node      `yaml:"servers"`
	namespaceSpec `yaml:",inline"`
}

type namespaceSpec struct {
	Name       string          `yaml:"name"`
	Operations []operationSpec `yaml:"operations"`
	Models     []modelSpec     `yaml:"models"`
	Security   []securitySpec  `yaml:"security"`
	Namespaces []namespaceSpec `yaml:"namespaces"`
}

type operationSpec struct {
	Name        string    `yaml:"name"`
	Channel     string    `yaml:"channel"`
	Type        string    `yaml:"type"`
	Title       string    `yaml:"title"`
	Summary     string    `yaml:"summary"`
	Description string    `yaml:"description"`
	Payload     string    `yaml:"payload"`
	Security    []string  `yaml:"security"`
	Bindings    yaml.Node `yaml:"bindings"`
}

type modelSpec struct {
	Name    string         `yaml:"name"`
	Schema  map[string]any `yaml:"schema"`
	Message *messageSpec   `yaml:"message"`
}

type messageSpec struct {
	Name          string                    `yaml:"name"`
	Title         string                    `yaml:"title"`
	Summary       string                    `yaml:"summary"`
	Description   string                    `yaml:"description"`
	ContentType   string                    `yaml:"contentType"`
	Headers       string                    `yaml:"headers"`
	CorrelationID *document.CorrelationID   `yaml:"correlationId"`
	Examples      []document.MessageExample `yaml:"examples"`
	Bindings      yaml.Node                 `yaml:"bindings"`
}

type securitySpec struct {
	Name             string               `yaml:"name"`
	Type             string               `yaml:"type"`
	Description      string               `yaml:"description"`
	ParameterName    string               `yaml:"parameterName"`
	In               string               `yaml:"in"`
	Scheme           string               `yaml:"scheme"`
	BearerFormat     string               `yaml:"bearerFormat"`
	Flows            *document.OAuthFlows `yaml:"flows"`
	OpenIDConnectURL string               `yaml:"openIdConnectUrl"`
	Scopes           []string             `yaml:"scopes"`
}

type serverSpec struct {
	Host            string    `yaml:"host"`
	Protocol        string    `yaml:"protocol"`
	ProtocolVersion string    `yaml:"protocolVersion"`
	Pathname        string    `yaml:"pathname"`
	Description     string    `yaml:"description"`
	Security        []string  `yaml:"security"`
	Bindings        yaml.Node `yaml:"bindings"`
}

// LoadFile reads and parses a YAML service description.
func LoadFile(path string) (*MemoryGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: reading %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return g, nil
}

// Parse builds a MemoryGraph from a YAML service description.
func Parse(data []byte) (*MemoryGraph, error) {
	var desc description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parsing description: %w", err)
	}

	g := NewMemoryGraph()
	g.SetInfo(desc.Info)
	g.root.Name = desc.Name

	if err := g.loadServers(&desc.Servers); err != nil {
		return nil, err
	}
	if err := g.loadNamespace(g.root, &desc.namespaceSpec); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *MemoryGraph) loadServers(node *yaml.Node) error {
	if absent(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: servers must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var s serverSpec
		if err := node.Content[i+1].Decode(&s); err != nil {
			return fmt.Errorf("server %q: %w", name, err)
		}
		decls, err := bindingDecls(&s.Bindings)
		if err != nil {
			return fmt.Errorf("server %q: %w", name, err)
		}
		g.AddServer(&ServerDecl{
			Name:            name,
			Host:            s.Host,
			Protocol:        s.Protocol,
			ProtocolVersion: s.ProtocolVersion,
			Pathname:        s.Pathname,
			Description:     s.Description,
			Security:        s.Security,
			Bindings:        decls,
		})
	}
	return nil
}

func (g *MemoryGraph) loadNamespace(ns *Namespace, decl *namespaceSpec) error {
	for i := range decl.Operations {
		op := &decl.Operations[i]
		if op.Name == "" {
			return fmt.Errorf("namespace %q: operation %d has no name", ns.Name, i)
		}
		decls, err := bindingDecls(&op.Bindings)
		if err != nil {
			return fmt.Errorf("operation %q: %w", op.Name, err)
		}
		g.AddOperation(ns, op.Name, &OperationMeta{
			ChannelPath: op.Channel,
			OpType:      op.Type,
			Title:       op.Title,
			Summary:     op.Summary,
			Description: op.Description,
			Payload:     op.Payload,
			Security:    op.Security,
			Bindings:    decls,
		})
	}

	for i := range decl.Models {
		m := &decl.Models[i]
		if m.Name == "" {
			return fmt.Errorf("namespace %q: model %d has no name", ns.Name, i)
		}
		schema, err := toSchema(m.Schema)
		if err != nil {
			return fmt.Errorf("model %q: %w", m.Name, err)
		}
		msg, err := messageConfig(m.Message)
		if err != nil {
			return fmt.Errorf("model %q: %w", m.Name, err)
		}
		g.AddModel(ns, m.Name, &ModelMeta{Schema: schema}, msg)
	}

	for i := range decl.Security {
		s := &decl.Security[i]
		if s.Name == "" || s.Type == "" {
			return fmt.Errorf("namespace %q: security declaration %d needs name and type", ns.Name, i)
		}
		g.AddSecurity(ns, s.Name, &SecurityMeta{
			Type:             s.Type,
			Description:      s.Description,
			ParamName:        s.ParameterName,
			In:               s.In,
			Scheme:           s.Scheme,
			BearerFormat:     s.BearerFormat,
			Flows:            s.Flows,
			OpenIDConnectURL: s.OpenIDConnectURL,
			Scopes:           s.Scopes,
		})
	}

	for i := range decl.Namespaces {
		child := &decl.Namespaces[i]
		if child.Name == "" {
			return fmt.Errorf("namespace %q: nested namespace %d has no name", ns.Name, i)
		}
		if err := g.loadNamespace(ns.child(child.Name), child); err != nil {
			return err
		}
	}
	return nil
}

func messageConfig(m *messageSpec) (*MessageConfig, error) {
	if m == nil {
		return nil, nil
	}
	decls, err := bindingDecls(&m.Bindings)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}
	return &MessageConfig{
		Name:          m.Name,
		Title:         m.Title,
		Summary:       m.Summary,
		Description:   m.Description,
		ContentType:   m.ContentType,
		Headers:       m.Headers,
		CorrelationID: m.CorrelationID,
		Examples:      m.Examples,
		Bindings:      decls,
	}, nil
}

// bindingDecls turns a `bindings:` mapping into declarations, keeping key order.
func bindingDecls(node *yaml.Node) ([]BindingDecl, error) {
	if absent(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: bindings must be a mapping of binding type to configuration", node.Line)
	}
	decls := make([]BindingDecl, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		decls = append(decls, BindingDecl{
			Type:   node.Content[i].Value,
			Config: RawConfig{Node: node.Content[i+1]},
		})
	}
	return decls, nil
}

// absent reports whether a key was omitted or explicitly null.
func absent(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

// toSchema converts a decoded YAML schema into a spec.Schema by way of JSON,
// which is the only encoding spec.Schema understands.
func toSchema(raw map[string]any) (*spec.Schema, error) {
	if raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	var s spec.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	return &s, nil
}
