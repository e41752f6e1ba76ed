// Package gosource builds a source graph from //asyncapi: directives in Go
// source code.
//
// Directives are line comments attached to a declaration's doc comment:
//
//	//asyncapi:operation channel=orders/created&payload=Order
//	//asyncapi:binding kafka topic=orders
//	func PublishOrder(ctx context.Context, o Order) error
//
//	//asyncapi:model
//	//asyncapi:message title=Order+placed
//	type Order struct {
//		ID string `json:"id"`
//	}
//
// Arguments use URL query syntax. server and info directives belong in the
// package doc comment. Each loaded package becomes a namespace.
package gosource

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/erraggy/asyncforge/document"
	"github.com/erraggy/asyncforge/source"
)

// Load loads the packages matching patterns, relative to dir, and returns a
// graph of their directives.
func Load(ctx context.Context, dir string, patterns ...string) (*source.MemoryGraph, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("gosource: load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("gosource: no packages found matching %v", patterns)
	}

	g := source.NewMemoryGraph()
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("gosource: package %s: %v", pkg.PkgPath, pkg.Errors[0])
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ns := g.Root()
		if len(pkgs) > 1 {
			ns = g.Namespace(strings.ReplaceAll(pkg.PkgPath, ".", "_"))
		}
		if err := loadFiles(g, ns, pkg.Fset, pkg.Syntax); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// loadFiles adds the directives found in files to ns.
func loadFiles(g *source.MemoryGraph, ns *source.Namespace, fset *token.FileSet, files []*ast.File) error {
	l := &loader{g: g, ns: ns, fset: fset, types: make(map[string]ast.Expr), models: make(map[string]bool)}
	for _, f := range files {
		l.collectTypes(f)
	}
	for _, f := range files {
		if err := l.file(f); err != nil {
			return err
		}
	}
	return nil
}

type loader struct {
	g      *source.MemoryGraph
	ns     *source.Namespace
	fset   *token.FileSet
	types  map[string]ast.Expr
	models map[string]bool
}

// collectTypes records every type declaration and which ones are models, so
// schemas can reference models and inline everything else.
func (l *loader) collectTypes(f *ast.File) {
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			l.types[ts.Name.Name] = ts.Type
			if hasDirective(typeDoc(gd, ts), KindModel) {
				l.models[ts.Name.Name] = true
			}
		}
	}
}

func (l *loader) file(f *ast.File) error {
	if err := l.group(f.Doc, "", nil); err != nil {
		return err
	}
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if err := l.group(d.Doc, d.Name.Name, nil); err != nil {
				return err
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if err := l.group(typeDoc(d, s), s.Name.Name, s.Type); err != nil {
						return err
					}
				case *ast.ValueSpec:
					doc := s.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					if err := l.group(doc, s.Names[0].Name, nil); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// group applies the directives in one doc comment. declName is empty for
// the package doc comment; typeExpr is set for type declarations.
func (l *loader) group(cg *ast.CommentGroup, declName string, typeExpr ast.Expr) error {
	if cg == nil {
		return nil
	}
	var (
		name     = declName
		meta     source.Metadata
		server   *source.ServerDecl
		first    *Directive
		bindings []source.BindingDecl
	)
	for _, c := range cg.List {
		d, ok, err := parseDirective(c.Text, l.fset.Position(c.Pos()))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		switch d.Kind {
		case KindInfo:
			var args infoArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			l.g.SetInfo(&document.Info{Title: args.Title, Version: args.Version, Description: args.Description})
			continue
		case KindServer:
			var args serverArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			server = &source.ServerDecl{
				Name:            d.Arg,
				Host:            args.Host,
				Protocol:        args.Protocol,
				ProtocolVersion: args.ProtocolVersion,
				Pathname:        args.Pathname,
				Description:     args.Description,
				Security:        args.Security,
			}
			l.g.AddServer(server)
			continue
		case KindBinding:
			decl := source.BindingDecl{Type: d.Arg, Config: source.RawConfig{Values: d.Values}}
			if server != nil {
				server.Bindings = append(server.Bindings, decl)
			} else {
				bindings = append(bindings, decl)
			}
			continue
		}

		if first == nil {
			first = &d
		}
		if declName == "" {
			return fmt.Errorf("%s: %s%s must precede a declaration", d.Pos, prefix, d.Kind)
		}
		switch d.Kind {
		case KindOperation:
			var args operationArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			if args.Name != "" {
				name = args.Name
			}
			meta.Operation = &source.OperationMeta{
				ChannelPath: args.Channel,
				OpType:      args.Type,
				Title:       args.Title,
				Summary:     args.Summary,
				Description: args.Description,
				Payload:     args.Payload,
				Security:    args.Security,
			}
		case KindModel:
			var args modelArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			if args.Name != "" {
				name = args.Name
			}
			meta.Model = &source.ModelMeta{Schema: l.schemaFor(typeExpr, 0)}
		case KindMessage:
			var args messageArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			meta.Message = &source.MessageConfig{
				Name:        args.Name,
				Title:       args.Title,
				Summary:     args.Summary,
				Description: args.Description,
				ContentType: args.ContentType,
				Headers:     args.Headers,
			}
		case KindSecurity:
			var args securityArgs
			if err := d.decode(&args); err != nil {
				return err
			}
			if args.Name != "" {
				name = args.Name
			}
			meta.Security = securityMeta(args)
		}
	}

	if len(bindings) > 0 {
		switch {
		case meta.Operation != nil:
			meta.Operation.Bindings = bindings
		case meta.Model != nil:
			if meta.Message == nil {
				meta.Message = &source.MessageConfig{}
			}
			meta.Message.Bindings = bindings
		default:
			return fmt.Errorf("%s: %s%s needs an operation, model or server in the same comment", l.fset.Position(cg.Pos()), prefix, KindBinding)
		}
	}
	if meta.Message != nil && meta.Model == nil {
		return fmt.Errorf("%s: %s%s requires %s%s", first.Pos, prefix, KindMessage, prefix, KindModel)
	}
	if meta.Decorated() {
		l.g.Add(l.ns, name, &meta)
	}
	return nil
}

func securityMeta(args securityArgs) *source.SecurityMeta {
	m := &source.SecurityMeta{
		Type:             args.Type,
		Description:      args.Description,
		ParamName:        args.Param,
		In:               args.In,
		Scheme:           args.Scheme,
		BearerFormat:     args.BearerFormat,
		OpenIDConnectURL: args.OpenIDConnectURL,
		Scopes:           args.Scopes,
	}
	if args.Flow == "" {
		return m
	}
	flow := &document.OAuthFlow{
		AuthorizationURL: args.AuthorizationURL,
		TokenURL:         args.TokenURL,
		AvailableScopes:  make(map[string]string, len(args.Scopes)),
	}
	for _, s := range args.Scopes {
		flow.AvailableScopes[s] = ""
	}
	m.Flows = &document.OAuthFlows{}
	switch args.Flow {
	case "implicit":
		m.Flows.Implicit = flow
	case "password":
		m.Flows.Password = flow
	case "clientCredentials":
		m.Flows.ClientCredentials = flow
	case "authorizationCode":
		m.Flows.AuthorizationCode = flow
	}
	return m
}

func typeDoc(gd *ast.GenDecl, ts *ast.TypeSpec) *ast.CommentGroup {
	if ts.Doc != nil {
		return ts.Doc
	}
	if len(gd.Specs) == 1 {
		return gd.Doc
	}
	return nil
}

func hasDirective(cg *ast.CommentGroup, kind Kind) bool {
	if cg == nil {
		return false
	}
	for _, c := range cg.List {
		fields := strings.Fields(strings.TrimPrefix(c.Text, prefix))
		if strings.HasPrefix(c.Text, prefix) && len(fields) > 0 && Kind(fields[0]) == kind {
			return true
		}
	}
	return false
}
