package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/luismrgarcia/zigbee2mqtt/internal/catalog"
	"github.com/luismrgarcia/zigbee2mqtt/internal/discovery"
)

// Config holds documentation generator settings
type Config struct {
	BaseTopic       string    `yaml:"base_topic"`
	FriendlyName    string    `yaml:"friendly_name"`
	ImagesPath      string    `yaml:"images_path"`
	ImageExt        string    `yaml:"image_ext"`
	CatalogFile     string    `yaml:"catalog_file"`
	IntegrationFile string    `yaml:"integration_file"`
	Git             GitConfig `yaml:"git"`
}

// GitConfig holds the commit identity used when committing regenerated documents
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		BaseTopic:       discovery.DefaultBaseTopic,
		FriendlyName:    discovery.DefaultFriendlyName,
		ImagesPath:      catalog.DefaultImagesPath,
		ImageExt:        catalog.DefaultImageExt,
		CatalogFile:     "Supported-devices.md",
		IntegrationFile: "Integrating-with-Home-Assistant.md",
		Git: GitConfig{
			AuthorName:  "zigbee2mqtt docgen",
			AuthorEmail: "docgen@localhost",
		},
	}
}

// GetDefaultConfigPath returns the default config path
func GetDefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".z2m-docgen", "config.yaml"), nil
}

// Load reads the config file at path. A missing file yields the defaults;
// keys absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Save writes the config to path, creating its directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks that required settings are present
func (c Config) Validate() error {
	if c.BaseTopic == "" {
		return fmt.Errorf("invalid config: base_topic must not be empty")
	}
	if c.FriendlyName == "" {
		return fmt.Errorf("invalid config: friendly_name must not be empty")
	}
	if c.CatalogFile == "" || c.IntegrationFile == "" {
		return fmt.Errorf("invalid config: document file names must not be empty")
	}
	if c.CatalogFile == c.IntegrationFile {
		return fmt.Errorf("invalid config: catalog_file and integration_file must differ")
	}
	return nil
}

// Topics returns the discovery topics described by the config
func (c Config) Topics() discovery.Topics {
	return discovery.Topics{
		BaseTopic:    c.BaseTopic,
		FriendlyName: c.FriendlyName,
	}
}
