package gosource

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-openapi/spec"

	"github.com/erraggy/asyncforge/internal/refs"
)

// maxInlineDepth bounds inlining of non-model named types.
const maxInlineDepth = 8

// schemaFor derives a JSON schema from a Go type expression. Named types
// that are themselves models become references; other named types declared
// in the package are inlined.
func (l *loader) schemaFor(expr ast.Expr, depth int) *spec.Schema {
	switch t := expr.(type) {
	case nil:
		return nil
	case *ast.Ident:
		if s := builtinSchema(t.Name); s != nil {
			return s
		}
		if l.models[t.Name] && depth > 0 {
			return spec.RefSchema(refs.Schema(t.Name))
		}
		if decl, ok := l.types[t.Name]; ok && depth < maxInlineDepth {
			return l.schemaFor(decl, depth+1)
		}
		return new(spec.Schema).Typed("object", "")
	case *ast.StarExpr:
		return l.schemaFor(t.X, depth)
	case *ast.ArrayType:
		if id, ok := t.Elt.(*ast.Ident); ok && id.Name == "byte" {
			return spec.StrFmtProperty("byte")
		}
		return spec.ArrayProperty(l.schemaFor(t.Elt, depth+1))
	case *ast.MapType:
		return spec.MapProperty(l.schemaFor(t.Value, depth+1))
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok && pkg.Name == "time" && t.Sel.Name == "Time" {
			return spec.DateTimeProperty()
		}
		return new(spec.Schema).Typed("object", "")
	case *ast.StructType:
		return l.structSchema(t, depth)
	default:
		return new(spec.Schema)
	}
}

func (l *loader) structSchema(st *ast.StructType, depth int) *spec.Schema {
	s := new(spec.Schema).Typed("object", "")
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			continue
		}
		name, omitempty, skip := jsonName(field)
		for _, id := range field.Names {
			if !id.IsExported() || skip {
				continue
			}
			prop := name
			if prop == "" {
				prop = id.Name
			}
			if fs := l.schemaFor(field.Type, depth+1); fs != nil {
				s.SetProperty(prop, *fs)
			}
			if !omitempty {
				if _, ptr := field.Type.(*ast.StarExpr); !ptr {
					s.Required = append(s.Required, prop)
				}
			}
		}
	}
	return s
}

// jsonName reads the json struct tag of a field.
func jsonName(field *ast.Field) (name string, omitempty, skip bool) {
	if field.Tag == nil {
		return "", false, false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return "", false, false
	}
	tag := reflect.StructTag(raw).Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	return name, strings.Contains(opts, "omitempty"), false
}

func builtinSchema(name string) *spec.Schema {
	switch name {
	case "string":
		return spec.StringProperty()
	case "bool":
		return spec.BoolProperty()
	case "int", "int8", "int16", "int32", "uint", "uint8", "uint16", "uint32":
		return spec.Int32Property()
	case "int64", "uint64":
		return spec.Int64Property()
	case "float32":
		return spec.Float32Property()
	case "float64":
		return spec.Float64Property()
	case "any":
		return new(spec.Schema)
	}
	return nil
}
