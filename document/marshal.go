package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// Kind is a serialization format.
type Kind string

const (
	KindJSON Kind = "json"
	KindYAML Kind = "yaml"
)

// KindFromPath picks a Kind from a file extension. Anything other than
// .json is treated as YAML.
func KindFromPath(path string) Kind {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return KindJSON
	}
	return KindYAML
}

// ParseKind parses a format name. The empty string means YAML.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return KindYAML, nil
	case "json":
		return KindJSON, nil
	default:
		return "", fmt.Errorf("document: unsupported format %q (want json or yaml)", s)
	}
}

// Marshal encodes doc in the requested format. Map entries keep insertion order.
func Marshal(doc *Document, kind Kind) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document: nil document")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("document: encoding JSON: %w", err)
	}
	if kind == KindJSON {
		return append(data, '\n'), nil
	}
	return jsonToYAML(data)
}

// jsonToYAML re-encodes ordered JSON as block-style YAML.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("document: converting to YAML: %w", err)
	}
	clearStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("document: encoding YAML: %w", err)
	}
	return out, nil
}

// clearStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks block style and only quotes where needed.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Parse decodes a JSON or YAML document. YAML input keeps its key order.
func Parse(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("document: empty input")
	}
	if trimmed[0] != '{' {
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("document: parsing YAML: %w", err)
		}
		var buf bytes.Buffer
		if err := writeNodeJSON(&buf, &node); err != nil {
			return nil, err
		}
		trimmed = buf.Bytes()
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("document: decoding: %w", err)
	}
	return &doc, nil
}

// writeNodeJSON writes n as JSON, preserving mapping key order.
func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeNodeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeNodeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(n.Content[i].Value)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return fmt.Errorf("document: line %d: %w", n.Line, err)
		}
		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("document: line %d: %w", n.Line, err)
		}
		buf.Write(out)
		return nil
	}
}
