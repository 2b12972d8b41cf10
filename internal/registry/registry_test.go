package registry_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

const devicesYAML = `
- model: WXKG01LM
  vendor: Xiaomi
  description: MiJia wireless switch
  supports: single, double, triple, quadruple, many and long click
- model: LED1545G12
  vendor: IKEA
  description: TRADFRI LED bulb E27 980 lumen
  supports: on/off, brightness, color temperature
`

const mappingYAML = `
WXKG01LM:
  - type: sensor
    discovery_payload:
      icon: mdi:toggle-switch
      value_template: "{{ value_json.click }}"
LED1545G12:
  - type: light
    discovery_payload:
      brightness: true
      color_temp: true
      schema: json
      command_topic: true
`

func TestParseRegistry(t *testing.T) {
	reg, err := registry.ParseRegistry([]byte(devicesYAML))
	require.NoError(t, err)
	require.Len(t, reg, 2)

	assert.Equal(t, "WXKG01LM", reg[0].Model)
	assert.Equal(t, "Xiaomi", reg[0].Vendor)
	assert.Equal(t, "on/off, brightness, color temperature", reg[1].Supports)
	assert.Equal(t, []string{"WXKG01LM", "LED1545G12"}, reg.Models())
}

func TestParseRegistry_RequiresModelAndVendor(t *testing.T) {
	_, err := registry.ParseRegistry([]byte("- vendor: IKEA\n"))
	assert.ErrorContains(t, err, "model is required")

	_, err = registry.ParseRegistry([]byte("- model: X\n"))
	assert.ErrorContains(t, err, "vendor is required")
}

func TestParseMapping_PreservesKeyOrder(t *testing.T) {
	mapping, err := registry.ParseMapping([]byte(mappingYAML))
	require.NoError(t, err)

	variants := mapping["LED1545G12"]
	require.Len(t, variants, 1)
	assert.Equal(t, "light", variants[0].Type)
	assert.Equal(t, []string{"brightness", "color_temp", "schema", "command_topic"}, variants[0].Payload.Keys())

	schema, ok := variants[0].Payload.Get("schema")
	require.True(t, ok)
	assert.Equal(t, "json", schema)

	tpl, ok := mapping["WXKG01LM"][0].Payload.Get("value_template")
	require.True(t, ok)
	assert.Equal(t, "{{ value_json.click }}", tpl)
}

func TestParseMapping_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "duplicate key",
			input:   "A:\n  - type: sensor\n    discovery_payload:\n      icon: x\n      icon: y\n",
			wantErr: `duplicate payload key "icon"`,
		},
		{
			name:    "payload not a mapping",
			input:   "A:\n  - type: sensor\n    discovery_payload: [1, 2]\n",
			wantErr: "must be a mapping",
		},
		{
			name:    "missing type",
			input:   "A:\n  - discovery_payload:\n      icon: x\n",
			wantErr: "type is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.ParseMapping([]byte(tt.input))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseMapping_NullPayload(t *testing.T) {
	mapping, err := registry.ParseMapping([]byte("A:\n  - type: sensor\n    discovery_payload:\n"))
	require.NoError(t, err)
	assert.Empty(t, mapping["A"][0].Payload)
}

func TestMappingLookup(t *testing.T) {
	mapping := registry.Mapping{
		"A":     {{Type: "sensor"}},
		"EMPTY": {},
	}

	variants, err := mapping.Lookup("A")
	require.NoError(t, err)
	assert.Len(t, variants, 1)

	_, err = mapping.Lookup("MISSING")
	var integrityErr *registry.DataIntegrityError
	require.ErrorAs(t, err, &integrityErr)
	assert.Equal(t, "MISSING", integrityErr.Model)
	assert.ErrorIs(t, err, registry.ErrMissingDiscovery)

	_, err = mapping.Lookup("EMPTY")
	assert.ErrorIs(t, err, registry.ErrNoVariants)
}

func TestMappingValidate(t *testing.T) {
	reg := registry.Registry{
		{Model: "A", Vendor: "V"},
		{Model: "B", Vendor: "V"},
		{Model: "B", Vendor: "V"},
		{Model: "C", Vendor: "V"},
	}
	mapping := registry.Mapping{"A": {{Type: "sensor"}}}

	err := mapping.Validate(reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrMissingDiscovery)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	assert.Len(t, joined.Unwrap(), 2)

	mapping["B"] = []registry.Variant{{Type: "sensor"}}
	mapping["C"] = []registry.Variant{{Type: "sensor"}}
	assert.NoError(t, mapping.Validate(reg))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	devicesPath := filepath.Join(dir, "devices.yaml")
	mappingPath := filepath.Join(dir, "discovery.yaml")
	require.NoError(t, os.WriteFile(devicesPath, []byte(devicesYAML), 0644))
	require.NoError(t, os.WriteFile(mappingPath, []byte(mappingYAML), 0644))

	reg, err := registry.LoadRegistry(devicesPath)
	require.NoError(t, err)
	mapping, err := registry.LoadMapping(mappingPath)
	require.NoError(t, err)
	assert.NoError(t, mapping.Validate(reg))

	_, err = registry.LoadRegistry(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, registry.ErrMissingDiscovery))
}
