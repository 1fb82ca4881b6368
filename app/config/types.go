package config

// Config represents the full pipeline configuration loaded from YAML
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Modules  ModulesConfig  `yaml:"modules"`
}

// PipelineConfig contains the stage toggles
type PipelineConfig struct {
	EnableIngestor  bool `yaml:"enable_ingestor"`
	EnableImageGen  bool `yaml:"enable_image_gen"`
	EnablePublisher bool `yaml:"enable_publisher"`
}

// ModulesConfig contains per-module scoped settings
type ModulesConfig struct {
	Ingestor        IngestorConfig           `yaml:"ingestor"`
	Processor       ProcessorConfig          `yaml:"processor"`
	MediaStudio     MediaStudioConfig        `yaml:"media_studio"`
	PublishChannels map[string]ChannelConfig `yaml:"publish_channels"`
}

// IngestorConfig configures the raw material sources
type IngestorConfig struct {
	EnableRSS    bool     `yaml:"enable_rss"`
	EnableTrends bool     `yaml:"enable_trends"`
	RSSURLs      []string `yaml:"rss_urls"`
	Keywords     []string `yaml:"keywords"`
	MaxPerFeed   int      `yaml:"max_per_feed"`
	Timeout      int      `yaml:"timeout"` // seconds
}

// ProcessorConfig configures the text-generation provider.
// Provider and SystemPrompt are mandatory.
type ProcessorConfig struct {
	Provider     string  `yaml:"provider"`
	SystemPrompt string  `yaml:"system_prompt"`
	Model        string  `yaml:"model"`
	Temperature  float64 `yaml:"temperature"`
	Timeout      int     `yaml:"timeout"` // seconds
}

// MediaStudioConfig configures the image-generation stage
type MediaStudioConfig struct {
	Image ImageConfig `yaml:"image"`
}

// ImageConfig configures the image-generation provider
type ImageConfig struct {
	Provider         string `yaml:"provider"`
	Model            string `yaml:"model"`
	Resolution       string `yaml:"resolution"`
	SaveDir          string `yaml:"save_dir"`
	QualityEnhancers string `yaml:"quality_enhancers"`
	Timeout          int    `yaml:"timeout"` // seconds
}

// ChannelConfig configures a single publish platform
type ChannelConfig struct {
	Enabled   bool   `yaml:"enabled"`
	PostImage *bool  `yaml:"post_image"`
	ChatID    string `yaml:"chat_id"`    // telegram
	ChannelID string `yaml:"channel_id"` // discord
	Channel   string `yaml:"channel"`    // slack
}

// PostImageEnabled reports whether the channel should attach the rendered
// image to its post. Defaults to true when not set.
func (c ChannelConfig) PostImageEnabled() bool {
	return c.PostImage == nil || *c.PostImage
}
