package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luismrgarcia/zigbee2mqtt/internal/docgen"
)

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every registry model has a renderable discovery configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := opts.load()
			if err != nil {
				return err
			}

			if err := docgen.NewAssembler(in.cfg, opts.logger).Check(in.reg, in.mapping); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}
