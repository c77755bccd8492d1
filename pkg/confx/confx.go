// Package confx resolves named configuration keys such as PlatformApiUrl to
// string values from environment variables, static maps and YAML files.
package confx

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrMissingKey is returned when no provider knows the requested key.
var ErrMissingKey = errors.New("confx: missing configuration key")

// Provider resolves a configuration key to its value.
type Provider interface {
	Value(key string) (string, error)
}

func missing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingKey, key)
}

// Env reads keys from the process environment. The key PlatformApiUrl is
// looked up as PLATFORM_API_URL, prefixed with Prefix when set.
type Env struct {
	Prefix string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

func (e Env) Value(key string) (string, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	name := e.Prefix + EnvName(key)
	if v, ok := lookup(name); ok && v != "" {
		return v, nil
	}
	return "", missing(key)
}

// EnvName converts a CamelCase key to UPPER_SNAKE_CASE. Runs of capitals are
// kept together, so BaseURL becomes BASE_URL.
func EnvName(key string) string {
	runes := []rune(key)
	var b strings.Builder
	for i, r := range runes {
		if r == '.' || r == '-' || r == ':' {
			b.WriteByte('_')
			continue
		}
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Map is a fixed set of keys, mostly useful in tests.
type Map map[string]string

func (m Map) Value(key string) (string, error) {
	if v, ok := m[key]; ok && v != "" {
		return v, nil
	}
	return "", missing(key)
}

// YAMLFile loads a flat YAML document of key: value pairs. Nested maps are
// flattened with "." between segments.
func YAMLFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("confx: read %s: %w", path, err)
	}
	return ParseYAML(data)
}

// ParseYAML is YAMLFile over an in-memory document. Scalars keep their source
// text, so 1e6 stays "1e6" and quoted strings lose only their quotes.
// Sequence entries are keyed by index.
func ParseYAML(data []byte) (Map, error) {
	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("confx: parse yaml: %w", err)
	}
	out := make(Map)
	for _, doc := range file.Docs {
		switch doc.Body.(type) {
		case nil:
			continue
		case *ast.MappingNode, *ast.MappingValueNode:
			flatten(out, "", doc.Body)
		default:
			return nil, fmt.Errorf("confx: parse yaml: document is not a mapping")
		}
	}
	return out, nil
}

func flatten(out Map, prefix string, node ast.Node) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch n := node.(type) {
	case nil, *ast.NullNode:
		out[prefix] = ""
	case *ast.MappingNode:
		for _, mv := range n.Values {
			flatten(out, prefix, mv)
		}
	case *ast.MappingValueNode:
		flatten(out, join(n.Key.GetToken().Value), n.Value)
	case *ast.SequenceNode:
		for i, v := range n.Values {
			flatten(out, join(strconv.Itoa(i)), v)
		}
	case *ast.TagNode:
		flatten(out, prefix, n.Value)
	case *ast.AnchorNode:
		flatten(out, prefix, n.Value)
	case *ast.StringNode:
		out[prefix] = n.Value
	case *ast.LiteralNode:
		out[prefix] = n.Value.Value
	default:
		out[prefix] = n.GetToken().Value
	}
}

// Chain asks each provider in order; the first one that knows the key wins.
// Errors other than ErrMissingKey stop the lookup.
type Chain []Provider

func (c Chain) Value(key string) (string, error) {
	for _, p := range c {
		v, err := p.Value(key)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrMissingKey) {
			return "", err
		}
	}
	return "", missing(key)
}
