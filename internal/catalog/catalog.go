// Package catalog builds the supported devices table: one section per
// vendor, one row per model.
package catalog

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

const (
	// DefaultImagesPath is where device pictures live, relative to the documents
	DefaultImagesPath = "images/devices"

	// DefaultImageExt is the file extension of device pictures
	DefaultImageExt = ".jpg"
)

var pathFriendlyReplacer = strings.NewReplacer("/", "-", ":", "-", " ", "-")

// PathFriendly turns a model into a token usable as a file name.
// Every '/', ':' and ' ' maps to a single '-'; runs are not collapsed.
func PathFriendly(model string) string {
	return pathFriendlyReplacer.Replace(model)
}

// Dedupe collapses repeated models. A later listing overwrites the fields of
// an earlier one, but the model keeps the position of its first listing.
func Dedupe(reg registry.Registry) []registry.Descriptor {
	index := make(map[string]int, len(reg))
	devices := make([]registry.Descriptor, 0, len(reg))

	for _, d := range reg {
		if i, ok := index[d.Model]; ok {
			devices[i] = d
			continue
		}
		index[d.Model] = len(devices)
		devices = append(devices, d)
	}

	return devices
}

// Row is one line of a vendor table
type Row struct {
	Model string
	Label string
	Image string
}

// Markdown renders the row as a markdown table line, without trailing newline
func (r Row) Markdown() string {
	return fmt.Sprintf("| %s | %s | %s |", r.Model, r.Label, r.Image)
}

// VendorGroup holds the rows of a single vendor
type VendorGroup struct {
	Vendor string
	Rows   []Row
}

// Builder turns a registry into vendor groups
type Builder struct {
	imagesPath string
	imageExt   string
}

// NewBuilder creates a builder that links pictures under imagesPath
func NewBuilder(imagesPath, imageExt string) *Builder {
	if imagesPath == "" {
		imagesPath = DefaultImagesPath
	}
	if imageExt == "" {
		imageExt = DefaultImageExt
	}
	return &Builder{
		imagesPath: imagesPath,
		imageExt:   imageExt,
	}
}

// Row renders the table row of a device
func (b *Builder) Row(d registry.Descriptor) Row {
	token := PathFriendly(d.Model)
	return Row{
		Model: d.Model,
		Label: fmt.Sprintf("%s %s (%s)", d.Vendor, d.Description, d.Supports),
		Image: fmt.Sprintf("![%s](%s)", token, path.Join(b.imagesPath, token+b.imageExt)),
	}
}

// Groups deduplicates the registry and groups its devices by vendor.
// Vendors are sorted ascending; devices keep their deduplicated order.
func (b *Builder) Groups(reg registry.Registry) []VendorGroup {
	byVendor := make(map[string][]Row)
	var vendors []string

	for _, d := range Dedupe(reg) {
		if _, ok := byVendor[d.Vendor]; !ok {
			vendors = append(vendors, d.Vendor)
		}
		byVendor[d.Vendor] = append(byVendor[d.Vendor], b.Row(d))
	}

	sort.Strings(vendors)

	groups := make([]VendorGroup, 0, len(vendors))
	for _, vendor := range vendors {
		groups = append(groups, VendorGroup{
			Vendor: vendor,
			Rows:   byVendor[vendor],
		})
	}

	return groups
}
