package source

import (
	"fmt"
	"strings"

	"github.com/erraggy/asyncforge/document"
)

// MemoryGraph is an in-memory Graph. Build it with NewMemoryGraph and the
// Namespace helpers, or load it from a YAML service description.
type MemoryGraph struct {
	root    *Namespace
	meta    map[NodeID]*Metadata
	ids     map[NodeID]bool
	servers []*ServerDecl
	info    *document.Info

	// ServersErr, when set, is returned by NamespaceServers.
	ServersErr error
}

var _ Graph = (*MemoryGraph)(nil)

// NewMemoryGraph returns a graph with an empty root namespace.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		root: &Namespace{},
		meta: make(map[NodeID]*Metadata),
		ids:  make(map[NodeID]bool),
	}
}

// Root returns the root namespace.
func (g *MemoryGraph) Root() *Namespace { return g.root }

// Info returns the declared info block.
func (g *MemoryGraph) Info() *document.Info { return g.info }

// SetInfo records the declared info block.
func (g *MemoryGraph) SetInfo(info *document.Info) { g.info = info }

// Metadata returns the record attached to id.
func (g *MemoryGraph) Metadata(id NodeID) (*Metadata, bool) {
	m, ok := g.meta[id]
	return m, ok
}

// NamespaceServers returns the declared servers in declaration order.
func (g *MemoryGraph) NamespaceServers() ([]*ServerDecl, error) {
	if g.ServersErr != nil {
		return nil, g.ServersErr
	}
	return g.servers, nil
}

// AddServer appends a server declaration.
func (g *MemoryGraph) AddServer(s *ServerDecl) {
	g.servers = append(g.servers, s)
}

// ListOperations returns nodes decorated as operations.
func (g *MemoryGraph) ListOperations() []*Node {
	return g.list(func(m *Metadata) bool { return m.Operation != nil })
}

// ListMessageModels returns nodes decorated as message models.
func (g *MemoryGraph) ListMessageModels() []*Node {
	return g.list(func(m *Metadata) bool { return m.Model != nil })
}

// ListSecurityConfigs returns nodes decorated as security declarations.
func (g *MemoryGraph) ListSecurityConfigs() []*Node {
	return g.list(func(m *Metadata) bool { return m.Security != nil })
}

func (g *MemoryGraph) list(keep func(*Metadata) bool) []*Node {
	var out []*Node
	Walk(g.root, func(n *Node) {
		if m, ok := g.meta[n.ID]; ok && keep(m) {
			out = append(out, n)
		}
	})
	return out
}

// Walk visits every node under ns depth-first: a namespace's own elements in
// declaration order, then its nested namespaces.
func Walk(ns *Namespace, visit func(*Node)) {
	if ns == nil {
		return
	}
	for _, n := range ns.Elements {
		if n != nil {
			visit(n)
		}
	}
	for _, child := range ns.Namespaces {
		Walk(child, visit)
	}
}

// Namespace returns the nested namespace with the given dotted path under
// the root, creating missing levels. The empty path is the root.
func (g *MemoryGraph) Namespace(path string) *Namespace {
	ns := g.root
	if path == "" {
		return ns
	}
	for _, part := range strings.Split(path, ".") {
		ns = ns.child(part)
	}
	return ns
}

// child returns the nested namespace called name, creating it if needed.
func (ns *Namespace) child(name string) *Namespace {
	full := joinPath(ns.Name, name)
	for _, c := range ns.Namespaces {
		if c.Name == full {
			return c
		}
	}
	c := &Namespace{Name: full}
	ns.Namespaces = append(ns.Namespaces, c)
	return c
}

// Add appends a node named name to ns and attaches meta to it. The returned
// ID is unique within the graph even when names repeat.
func (g *MemoryGraph) Add(ns *Namespace, name string, meta *Metadata) *Node {
	id := g.nextID(ns, name)
	n := &Node{ID: id, Name: name}
	g.ids[id] = true
	ns.Elements = append(ns.Elements, n)
	if meta != nil {
		g.meta[id] = meta
	}
	return n
}

// AddOperation is shorthand for Add with operation metadata.
func (g *MemoryGraph) AddOperation(ns *Namespace, name string, meta *OperationMeta) *Node {
	if meta == nil {
		meta = &OperationMeta{}
	}
	return g.Add(ns, name, &Metadata{Operation: meta})
}

// AddModel is shorthand for Add with model metadata and an optional message
// configuration.
func (g *MemoryGraph) AddModel(ns *Namespace, name string, model *ModelMeta, msg *MessageConfig) *Node {
	if model == nil {
		model = &ModelMeta{}
	}
	return g.Add(ns, name, &Metadata{Model: model, Message: msg})
}

// AddSecurity is shorthand for Add with security metadata.
func (g *MemoryGraph) AddSecurity(ns *Namespace, name string, meta *SecurityMeta) *Node {
	return g.Add(ns, name, &Metadata{Security: meta})
}

func (g *MemoryGraph) nextID(ns *Namespace, name string) NodeID {
	base := joinPath(ns.Name, name)
	id := NodeID(base)
	for i := 2; ; i++ {
		if !g.ids[id] {
			return id
		}
		id = NodeID(fmt.Sprintf("%s#%d", base, i))
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
