package discovery

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

// Render writes a payload as a one-item YAML list headed by the component type:
//
//	sensor:
//	  - platform: "mqtt"
//	    state_topic: "zigbee2mqtt/<FRIENDLY_NAME>"
//
// Strings are always double quoted; numbers, booleans and null are plain
// and untagged.
func Render(componentType string, payload registry.Fields) (string, error) {
	item := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range payload {
		value, err := valueNode(field.Value)
		if err != nil {
			return "", fmt.Errorf("key %q: %w", field.Key, err)
		}
		item.Content = append(item.Content, keyNode(field.Key), value)
	}

	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			keyNode(componentType),
			{Kind: yaml.SequenceNode, Content: []*yaml.Node{item}},
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	return buf.String(), nil
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

// Value kinds a payload entry can hold
const (
	kindScalar  = "scalar"
	kindList    = "list"
	kindMapping = "mapping"
)

// valueKind classifies a payload value. Values that are neither scalars,
// lists nor mappings are reported by their Go type.
func valueKind(v any) string {
	if v == nil {
		return kindScalar
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kindScalar
	case reflect.Slice, reflect.Array:
		return kindList
	case reflect.Map, reflect.Struct:
		return kindMapping
	default:
		return rv.Type().String()
	}
}

func valueNode(v any) (*yaml.Node, error) {
	if v == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Value: "null"}, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: rv.String(), Style: yaml.DoubleQuotedStyle}, nil
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatBool(rv.Bool())}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatInt(rv.Int(), 10)}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatUint(rv.Uint(), 10)}, nil
	case reflect.Float32:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(rv.Float(), 'f', -1, 32)}, nil
	case reflect.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(rv.Float(), 'f', -1, 64)}, nil
	case reflect.Slice, reflect.Array:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i).Interface()
			if valueKind(item) != kindScalar {
				return nil, fmt.Errorf("nested %T is not supported", item)
			}
			n, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
