package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/luismrgarcia/zigbee2mqtt/internal/config"
	"github.com/luismrgarcia/zigbee2mqtt/internal/logging"
	"github.com/luismrgarcia/zigbee2mqtt/internal/registry"
)

// options holds the persistent flags shared by all commands
type options struct {
	configPath    string
	devicesPath   string
	discoveryPath string
	logLevel      string
	jsonLogs      bool

	logger *log.Logger
}

// inputs is everything a command needs to build documents
type inputs struct {
	cfg     config.Config
	reg     registry.Registry
	mapping registry.Mapping
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "z2m-docgen",
		Short:        "Generate the zigbee2mqtt supported devices and Home Assistant integration pages",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger = logging.New(logging.Options{
				Level:  opts.logLevel,
				Output: cmd.ErrOrStderr(),
				JSON:   opts.jsonLogs,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.z2m-docgen/config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.devicesPath, "devices", "data/devices.yaml", "device registry file")
	cmd.PersistentFlags().StringVar(&opts.discoveryPath, "discovery", "data/discovery.yaml", "Home Assistant discovery mapping file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "json-logs", false, "always log as JSON")

	cmd.AddCommand(
		generateCmd(opts),
		validateCmd(opts),
		previewCmd(opts),
	)

	return cmd
}

func (o *options) load() (inputs, error) {
	var in inputs

	configPath := o.configPath
	if configPath == "" {
		p, err := config.GetDefaultConfigPath()
		if err != nil {
			return in, fmt.Errorf("failed to locate config: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return in, err
	}

	reg, err := registry.LoadRegistry(o.devicesPath)
	if err != nil {
		return in, err
	}

	mapping, err := registry.LoadMapping(o.discoveryPath)
	if err != nil {
		return in, err
	}

	o.logger.Debug("inputs loaded",
		"config", configPath,
		"devices", len(reg),
		"mapped_models", len(mapping))

	in.cfg = cfg
	in.reg = reg
	in.mapping = mapping
	return in, nil
}
