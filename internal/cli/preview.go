package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luismrgarcia/zigbee2mqtt/internal/docgen"
	"github.com/luismrgarcia/zigbee2mqtt/internal/preview"
)

func previewCmd(opts *options) *cobra.Command {
	var width int
	var raw bool

	c := &cobra.Command{
		Use:       "preview [catalog|integration]",
		Short:     "Render a generated document in the terminal",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"catalog", "integration"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "catalog"
			if len(args) == 1 {
				which = args[0]
			}

			in, err := opts.load()
			if err != nil {
				return err
			}

			assembler := docgen.NewAssembler(in.cfg, opts.logger)

			var doc docgen.Document
			switch which {
			case "integration":
				doc, err = assembler.IntegrationDocument(in.reg, in.mapping)
			default:
				doc, err = assembler.CatalogDocument(in.reg)
			}
			if err != nil {
				return err
			}

			content := doc.Content
			if !raw {
				content, err = preview.Render(doc.Content, width)
				if err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}

	c.Flags().IntVar(&width, "width", 0, "wrap width (default: terminal width)")
	c.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")

	return c
}
