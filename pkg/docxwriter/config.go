package docxwriter

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Config contains all configuration options for a document build
type Config struct {
	// OutputDir is the directory the document is written to. It is created
	// when missing.
	OutputDir string `toml:"output_dir"`
	// Watermark is the hidden attribution text appended after all content
	Watermark string `toml:"watermark"`
	// DisableWatermark suppresses the watermark paragraph
	DisableWatermark bool `toml:"no_watermark"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error)
	LogLevel string `toml:"log_level"`
	// Author is written to the document core properties as dc:creator
	Author string `toml:"author"`
	// Language is a BCP 47 tag used for proofing and dc:language
	Language string `toml:"language"`
	// ImageCacheSize is the number of decoded pictures kept between builds.
	// 0 disables the cache.
	ImageCacheSize int `toml:"image_cache_size"`
	// ImageCacheTTL is how long a cached picture is kept. 0 means no expiration.
	ImageCacheTTL time.Duration `toml:"image_cache_ttl"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "data",
		Watermark: DefaultWatermarkText,
		LogLevel:  "info",
		Author:    "docxwriter",
		Language:  "en-US",

		ImageCacheSize: 32,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	config.ApplyEnvironment()
	return config
}

// ApplyEnvironment overrides fields with any DOCXWRITER_* variables that are set
func (c *Config) ApplyEnvironment() {
	// DOCXWRITER_OUTPUT_DIR
	if val := os.Getenv("DOCXWRITER_OUTPUT_DIR"); val != "" {
		c.OutputDir = val
	}

	// DOCXWRITER_WATERMARK
	if val, ok := os.LookupEnv("DOCXWRITER_WATERMARK"); ok {
		c.Watermark = val
	}

	// DOCXWRITER_NO_WATERMARK
	if val := os.Getenv("DOCXWRITER_NO_WATERMARK"); val != "" {
		c.DisableWatermark = parseBool(val)
	}

	// DOCXWRITER_LOG_LEVEL
	if val := os.Getenv("DOCXWRITER_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	// DOCXWRITER_AUTHOR
	if val := os.Getenv("DOCXWRITER_AUTHOR"); val != "" {
		c.Author = val
	}

	// DOCXWRITER_LANGUAGE
	if val := os.Getenv("DOCXWRITER_LANGUAGE"); val != "" {
		c.Language = val
	}

	// DOCXWRITER_IMAGE_CACHE_SIZE
	if val := os.Getenv("DOCXWRITER_IMAGE_CACHE_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size >= 0 {
			c.ImageCacheSize = size
		}
	}

	// DOCXWRITER_IMAGE_CACHE_TTL
	if val := os.Getenv("DOCXWRITER_IMAGE_CACHE_TTL"); val != "" {
		if ttl, err := time.ParseDuration(val); err == nil && ttl >= 0 {
			c.ImageCacheTTL = ttl
		}
	}
}

// LoadConfigFile reads a TOML file on top of the defaults. Environment
// variables are applied after the file. Unknown keys are rejected.
func LoadConfigFile(path string) (*Config, error) {
	config := DefaultConfig()
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, &InputError{Path: path, Message: "failed to read config", Cause: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, &InputError{Path: path, Message: "unknown config keys: " + strings.Join(keys, ", ")}
	}
	config.ApplyEnvironment()
	return config, nil
}

// WatermarkText returns the watermark to render, or "" when disabled
func (c *Config) WatermarkText() string {
	if c.DisableWatermark {
		return ""
	}
	return c.Watermark
}

// LanguageTag returns the canonical form of Language
func (c *Config) LanguageTag() string {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return c.Language
	}
	return tag.String()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return errors.New("output directory cannot be empty")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}

	if c.ImageCacheSize < 0 {
		return errors.New("image cache size cannot be negative")
	}

	if c.ImageCacheTTL < 0 {
		return errors.New("image cache TTL cannot be negative")
	}

	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
