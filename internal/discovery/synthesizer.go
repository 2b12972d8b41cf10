package discovery

import (
	"fmt"
	"reflect"

	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

// Payload keys with special meaning
const (
	KeyPlatform           = "platform"
	KeyStateTopic         = "state_topic"
	KeyAvailabilityTopic  = "availability_topic"
	KeyCommandTopic       = "command_topic"
	KeyCommandTopicPrefix = "command_topic_prefix"
)

// Synthesizer builds Home Assistant MQTT discovery payloads for devices
type Synthesizer struct {
	topics Topics
}

// NewSynthesizer creates a synthesizer publishing under the given topics
func NewSynthesizer(topics Topics) *Synthesizer {
	return &Synthesizer{topics: topics}
}

// Base returns the template every payload starts from
func (s *Synthesizer) Base() registry.Fields {
	return registry.Fields{
		{Key: KeyPlatform, Value: "mqtt"},
		{Key: KeyStateTopic, Value: s.topics.State()},
		{Key: KeyAvailabilityTopic, Value: s.topics.Availability()},
	}
}

// Synthesize merges the variant's payload over the base template and derives
// the command topic. The variant is left untouched; the returned fields never
// contain command_topic_prefix.
func (s *Synthesizer) Synthesize(model string, variant registry.Variant) (registry.Fields, error) {
	if err := checkOverride(model, variant.Payload); err != nil {
		return nil, err
	}

	merged := merge(s.Base(), variant.Payload)

	prefix, hasPrefix := merged.Get(KeyCommandTopicPrefix)
	payload := make(registry.Fields, 0, len(merged))
	for _, field := range merged {
		switch field.Key {
		case KeyCommandTopicPrefix:
			continue
		case KeyCommandTopic:
			// presence alone selects derivation; the configured value is replaced
			p := ""
			if hasPrefix && prefix != nil {
				p = fmt.Sprint(prefix)
			}
			field.Value = s.topics.Command(p)
		}
		payload = append(payload, field)
	}

	return payload, nil
}

// Block synthesizes the payload of a variant and renders it under the
// variant's component type heading
func (s *Synthesizer) Block(model string, variant registry.Variant) (string, error) {
	payload, err := s.Synthesize(model, variant)
	if err != nil {
		return "", err
	}

	out, err := Render(variant.Type, payload)
	if err != nil {
		return "", fmt.Errorf("failed to render %s payload for %s: %w", variant.Type, model, err)
	}

	return out, nil
}

// merge returns a new field list: base keys keep their position when
// overridden, keys only present in override are appended in order.
func merge(base, override registry.Fields) registry.Fields {
	merged := make(registry.Fields, len(base), len(base)+len(override))
	copy(merged, base)

	index := make(map[string]int, len(base)+len(override))
	for i, field := range merged {
		index[field.Key] = i
	}

	for _, field := range override {
		if i, ok := index[field.Key]; ok {
			merged[i].Value = field.Value
			continue
		}
		index[field.Key] = len(merged)
		merged = append(merged, field)
	}

	return merged
}

// checkOverride rejects values the single-line list-item form cannot hold:
// anything but scalars and lists of scalars
func checkOverride(model string, fields registry.Fields) error {
	for _, field := range fields {
		switch kind := valueKind(field.Value); kind {
		case kindScalar:
		case kindList:
			rv := reflect.ValueOf(field.Value)
			for i := 0; i < rv.Len(); i++ {
				if valueKind(rv.Index(i).Interface()) != kindScalar {
					return &MalformedOverrideError{Model: model, Key: field.Key, Kind: "nested list"}
				}
			}
		default:
			return &MalformedOverrideError{Model: model, Key: field.Key, Kind: kind}
		}
	}
	return nil
}
