package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luismrgarcia/zigbee2mqtt/internal/catalog"
	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

func TestPathFriendly(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{model: "A/B C:D", want: "A-B-C-D"},
		{model: "WXKG01LM", want: "WXKG01LM"},
		{model: "a//b", want: "a--b"},
		{model: " :/", want: "---"},
		{model: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.PathFriendly(tt.model))
		})
	}
}

func TestDedupe_FirstPositionLastValue(t *testing.T) {
	reg := registry.Registry{
		{Model: "A", Vendor: "V1"},
		{Model: "B", Vendor: "V2"},
		{Model: "A", Vendor: "V3"},
	}

	got := catalog.Dedupe(reg)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Model)
	assert.Equal(t, "V3", got[0].Vendor)
	assert.Equal(t, "B", got[1].Model)

	// input untouched
	assert.Equal(t, "V1", reg[0].Vendor)
	assert.Len(t, reg, 3)
}

func TestBuilderRow(t *testing.T) {
	b := catalog.NewBuilder("", "")
	row := b.Row(registry.Descriptor{
		Model:       "ZNCZ02LM",
		Vendor:      "Xiaomi",
		Description: "Mi power plug ZigBee",
		Supports:    "on/off, power measurement",
	})

	assert.Equal(t, "ZNCZ02LM", row.Model)
	assert.Equal(t, "Xiaomi Mi power plug ZigBee (on/off, power measurement)", row.Label)
	assert.Equal(t, "![ZNCZ02LM](images/devices/ZNCZ02LM.jpg)", row.Image)
	assert.Equal(t,
		"| ZNCZ02LM | Xiaomi Mi power plug ZigBee (on/off, power measurement) | ![ZNCZ02LM](images/devices/ZNCZ02LM.jpg) |",
		row.Markdown())

	custom := catalog.NewBuilder("assets/img", ".png").Row(registry.Descriptor{Model: "A/B", Vendor: "V"})
	assert.Equal(t, "![A-B](assets/img/A-B.png)", custom.Image)
}

func TestBuilderGroups(t *testing.T) {
	reg := registry.Registry{
		{Model: "Z1", Vendor: "Zigbee Co"},
		{Model: "A1", Vendor: "Acme"},
		{Model: "Z2", Vendor: "Zigbee Co"},
		{Model: "A0", Vendor: "Acme"},
		{Model: "Z1", Vendor: "Zigbee Co", Description: "updated"},
	}

	groups := catalog.NewBuilder("", "").Groups(reg)
	require.Len(t, groups, 2)

	assert.Equal(t, "Acme", groups[0].Vendor)
	assert.Equal(t, "Zigbee Co", groups[1].Vendor)

	// registry order inside a vendor, not sorted
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "A1", groups[0].Rows[0].Model)
	assert.Equal(t, "A0", groups[0].Rows[1].Model)

	require.Len(t, groups[1].Rows, 2)
	assert.Equal(t, "Z1", groups[1].Rows[0].Model)
	assert.Contains(t, groups[1].Rows[0].Label, "updated")
	assert.Equal(t, "Z2", groups[1].Rows[1].Model)
}

func TestBuilderGroups_VendorMovedByDuplicate(t *testing.T) {
	reg := registry.Registry{
		{Model: "A", Vendor: "V1"},
		{Model: "B", Vendor: "V2"},
		{Model: "A", Vendor: "V3"},
	}

	groups := catalog.NewBuilder("", "").Groups(reg)
	require.Len(t, groups, 2)
	assert.Equal(t, "V2", groups[0].Vendor)
	assert.Equal(t, "V3", groups[1].Vendor)
	assert.Equal(t, "A", groups[1].Rows[0].Model)
}

func TestBuilderGroups_Empty(t *testing.T) {
	assert.Empty(t, catalog.NewBuilder("", "").Groups(nil))
}
