package maps

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m *OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, entry := range m.Seq() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Key.String()}
		if entry.Key.IsIndex() {
			keyNode.Tag = "!!int"
		}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(entry.Value); err != nil {
			return nil, fmt.Errorf("encoding value of key %q: %w", entry.Key, err)
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}

	return node, nil
}

// MaxAliasExpansion bounds the number of nodes decoded through aliases in
// one document.
const MaxAliasExpansion = 100_000

var (
	// ErrCyclicAlias is returned when an alias points back into the node that
	// holds it.
	ErrCyclicAlias = errors.New("cyclic alias")

	// ErrAliasExpansion is returned when aliases expand past
	// MaxAliasExpansion nodes.
	ErrAliasExpansion = errors.New("alias expansion limit exceeded")
)

// UnmarshalYAML decodes a YAML mapping, keeping the document's key order.
// When V is any, nested mappings decode to *OrderedMap[any] and sequences to
// []any, so order survives at every level.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	return decodeMapping(newNodeDecoder(), m, node)
}

// DecodeNode converts a YAML node into plain Go values: mappings become
// *OrderedMap[any], sequences []any, and scalars the types yaml.v3 picks for
// an interface target. Aliases are expanded; an alias that refers to a node
// containing it fails with ErrCyclicAlias.
func DecodeNode(node *yaml.Node) (any, error) {
	return newNodeDecoder().decode(node)
}

// nodeDecoder carries the alias bookkeeping of one decode.
type nodeDecoder struct {
	open     map[*yaml.Node]struct{} // containers being decoded
	aliases  int                     // alias nesting at the current node
	expanded int                     // nodes decoded below an alias
}

func newNodeDecoder() *nodeDecoder {
	return &nodeDecoder{open: make(map[*yaml.Node]struct{})}
}

// enter resolves document and alias wrappers and registers the node. The
// returned func must be called once the node is decoded.
func (d *nodeDecoder) enter(node *yaml.Node) (*yaml.Node, func(), error) {
	aliases := 0

	for node != nil {
		if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
			node = node.Content[0]

			continue
		}

		if node.Kind == yaml.AliasNode {
			if node.Alias == nil {
				return nil, nil, fmt.Errorf("line %d: unknown anchor %q", node.Line, node.Value)
			}

			aliases++
			node = node.Alias

			continue
		}

		break
	}

	if node == nil {
		node = &yaml.Node{}
	}

	if _, inside := d.open[node]; inside {
		return nil, nil, fmt.Errorf("line %d: %w: anchor %q contains itself", node.Line, ErrCyclicAlias, node.Anchor)
	}

	d.aliases += aliases

	if d.aliases > 0 {
		d.expanded++
		if d.expanded > MaxAliasExpansion {
			d.aliases -= aliases

			return nil, nil, fmt.Errorf("line %d: %w (%d nodes)", node.Line, ErrAliasExpansion, MaxAliasExpansion)
		}
	}

	d.open[node] = struct{}{}

	return node, func() {
		delete(d.open, node)
		d.aliases -= aliases
	}, nil
}

func (d *nodeDecoder) decode(node *yaml.Node) (any, error) {
	node, leave, err := d.enter(node)
	if err != nil {
		return nil, err
	}
	defer leave()

	switch node.Kind {
	case yaml.MappingNode:
		m := New[any]()
		if err := decodeEntries(d, m, node); err != nil {
			return nil, err
		}

		return m, nil
	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, child := range node.Content {
			item, err := d.decode(child)
			if err != nil {
				return nil, err
			}

			items = append(items, item)
		}

		return items, nil
	case 0, yaml.DocumentNode:
		// An empty document.
		return nil, nil //nolint:nilnil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return value, nil
	}
}

func decodeMapping[V any](d *nodeDecoder, m *OrderedMap[V], node *yaml.Node) error {
	node, leave, err := d.enter(node)
	if err != nil {
		return err
	}
	defer leave()

	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: cannot decode %s into an ordered map", node.Line, kindName(node.Kind))
	}

	*m = OrderedMap[V]{}

	return decodeEntries(d, m, node)
}

// decodeEntries adds the entries of the mapping node to m.
func decodeEntries[V any](d *nodeDecoder, m *OrderedMap[V], node *yaml.Node) error {
	m.data = make(map[Key]V, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := resolve(node.Content[i]), node.Content[i+1]

		var value V

		if target, ok := any(&value).(*any); ok {
			decoded, err := d.decode(valueNode)
			if err != nil {
				return err
			}

			*target = decoded
		} else if err := valueNode.Decode(&value); err != nil {
			return fmt.Errorf("decoding value of key %q: %w", keyNode.Value, err)
		}

		m.Add(KeyOf(keyNode.Value), value)
	}

	return nil
}

// MarshalJSON encodes the map as a JSON object in insertion order. Index
// keys become their decimal strings.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, entry := range m.Seq() {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(entry.Key.String())
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding value of key %q: %w", entry.Key, err)
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}

	return &yaml.Node{}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "a document"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an empty node"
	}
}
