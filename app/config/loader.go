package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads, defaults and validates the pipeline configuration file.
// Validation failures are configuration errors: fatal before any network
// call is attempted.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}

	return &config, nil
}

// setDefaults applies default values to configuration
func setDefaults(config *Config) {
	if config.Modules.Ingestor.MaxPerFeed == 0 {
		config.Modules.Ingestor.MaxPerFeed = 5
	}
	if config.Modules.Ingestor.Timeout == 0 {
		config.Modules.Ingestor.Timeout = 30 // seconds
	}
	if config.Modules.Processor.Timeout == 0 {
		config.Modules.Processor.Timeout = 30
	}
	if config.Modules.MediaStudio.Image.Timeout == 0 {
		config.Modules.MediaStudio.Image.Timeout = 60
	}
	if config.Modules.MediaStudio.Image.SaveDir == "" {
		config.Modules.MediaStudio.Image.SaveDir = "outputs/images"
	}
	if config.Modules.MediaStudio.Image.Resolution == "" {
		config.Modules.MediaStudio.Image.Resolution = "1024x1024"
	}
}

// validate checks the configuration shape. Unlike provider responses,
// configuration errors are never soft-defaulted away.
func validate(config *Config) error {
	if config.Modules.Processor.Provider == "" {
		return fmt.Errorf("processor provider is required")
	}
	if config.Modules.Processor.SystemPrompt == "" {
		return fmt.Errorf("processor system_prompt is required")
	}

	if config.Modules.Processor.Temperature < 0 || config.Modules.Processor.Temperature > 2 {
		return fmt.Errorf("processor temperature must be between 0 and 2")
	}
	if config.Modules.Processor.Timeout < 0 {
		return fmt.Errorf("processor timeout must be non-negative")
	}

	if config.Pipeline.EnableImageGen && config.Modules.MediaStudio.Image.Provider == "" {
		return fmt.Errorf("media_studio image provider is required when image generation is enabled")
	}

	if config.Pipeline.EnableIngestor {
		ing := config.Modules.Ingestor
		if !ing.EnableRSS && !ing.EnableTrends {
			return fmt.Errorf("ingestor is enabled but both rss and trends sources are disabled")
		}
		if ing.EnableRSS && len(ing.RSSURLs) == 0 {
			return fmt.Errorf("ingestor rss is enabled but no rss_urls are configured")
		}
	}

	return nil
}
