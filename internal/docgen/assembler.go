package docgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/luismrgarcia/zigbee2mqtt/internal/catalog"
	"github.com/luismrgarcia/zigbee2mqtt/internal/config"
	"github.com/luismrgarcia/zigbee2mqtt/internal/discovery"
	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

const (
	tableHeader    = "| Model | Description | Picture |\n"
	tableSeparator = "| ------------- | ------------- | -------------------------- |\n"
)

// Document is a generated markdown file
type Document struct {
	Name    string
	Content string
}

// Assembler builds document bodies and whole documents
type Assembler struct {
	cfg     config.Config
	catalog *catalog.Builder
	synth   *discovery.Synthesizer
	logger  *log.Logger
}

// NewAssembler creates an assembler for the given configuration
func NewAssembler(cfg config.Config, logger *log.Logger) *Assembler {
	return &Assembler{
		cfg:     cfg,
		catalog: catalog.NewBuilder(cfg.ImagesPath, cfg.ImageExt),
		synth:   discovery.NewSynthesizer(cfg.Topics()),
		logger:  logger.WithPrefix("docgen"),
	}
}

// CatalogBody renders one table per vendor, vendors in ascending order
func (a *Assembler) CatalogBody(reg registry.Registry) string {
	var sb strings.Builder

	groups := a.catalog.Groups(reg)
	for _, group := range groups {
		sb.WriteString("### " + group.Vendor + "\n")
		sb.WriteString(tableHeader)
		sb.WriteString(tableSeparator)
		for _, row := range group.Rows {
			sb.WriteString(row.Markdown() + "\n")
		}
		sb.WriteString("\n")
	}

	a.logger.Debug("catalog body built", "vendors", len(groups), "listings", len(reg))
	return sb.String()
}

// IntegrationBody renders a discovery payload section for every registry
// listing, repeats included. The first model whose discovery configuration
// cannot be resolved or rendered aborts the body.
func (a *Assembler) IntegrationBody(reg registry.Registry, mapping registry.Mapping) (string, error) {
	var sb strings.Builder

	for _, d := range reg {
		section, err := a.modelSection(d.Model, mapping)
		if err != nil {
			return "", err
		}
		sb.WriteString(section)
	}

	a.logger.Debug("integration body built", "sections", len(reg))
	return sb.String(), nil
}

// modelSection renders the heading and payload block of one model. Nothing is
// returned for the model unless all its variants render.
func (a *Assembler) modelSection(model string, mapping registry.Mapping) (string, error) {
	variants, err := mapping.Lookup(model)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("### " + model + "\n")
	sb.WriteString("```yaml\n")

	for i, variant := range variants {
		block, err := a.synth.Block(model, variant)
		if err != nil {
			return "", err
		}
		sb.WriteString(block)
		if i < len(variants)-1 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("```\n\n")
	return sb.String(), nil
}

// CatalogDocument returns the complete supported devices page
func (a *Assembler) CatalogDocument(reg registry.Registry) (Document, error) {
	intro, err := renderProse(catalogIntro, a.proseContext())
	if err != nil {
		return Document{}, err
	}

	return Document{
		Name:    a.cfg.CatalogFile,
		Content: intro + a.CatalogBody(reg),
	}, nil
}

// IntegrationDocument returns the complete Home Assistant integration guide
func (a *Assembler) IntegrationDocument(reg registry.Registry, mapping registry.Mapping) (Document, error) {
	intro, err := renderProse(integrationIntro, a.proseContext())
	if err != nil {
		return Document{}, err
	}

	body, err := a.IntegrationBody(reg, mapping)
	if err != nil {
		return Document{}, err
	}

	return Document{
		Name:    a.cfg.IntegrationFile,
		Content: intro + body,
	}, nil
}

// Generate builds both documents. A failure in one document does not prevent
// the other: every document that could be built is returned together with
// the joined errors.
func (a *Assembler) Generate(reg registry.Registry, mapping registry.Mapping) ([]Document, error) {
	var docs []Document
	var errs []error

	catalogDoc, err := a.CatalogDocument(reg)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to build %s: %w", a.cfg.CatalogFile, err))
	} else {
		docs = append(docs, catalogDoc)
	}

	integrationDoc, err := a.IntegrationDocument(reg, mapping)
	if err != nil {
		errs = append(errs, fmt.Errorf("failed to build %s: %w", a.cfg.IntegrationFile, err))
	} else {
		docs = append(docs, integrationDoc)
	}

	return docs, errors.Join(errs...)
}

func (a *Assembler) proseContext() proseContext {
	topics := a.cfg.Topics()
	return proseContext{
		BaseTopic:    a.cfg.BaseTopic,
		StateTopic:   topics.State(),
		FriendlyName: a.cfg.FriendlyName,
	}
}
