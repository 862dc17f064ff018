// Package config loads the guidedoc configuration and prepares the program
// logger.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
	"go.uber.org/zap"

	"github.com/ukaji3/guidedoc-go/pkg/guidedoc"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/layout"
	"github.com/ukaji3/guidedoc-go/pkg/guidedoc/source"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	SourceConfig struct {
		Location  string        `yaml:"location"`
		Sheet     string        `yaml:"sheet"`
		Range     string        `yaml:"range"`
		AllSheets *bool         `yaml:"all_sheets,omitempty"`
		Timeout   time.Duration `yaml:"timeout" validate:"gte=0"`
		CacheSize int           `yaml:"cache_size" validate:"min=1"`
		CacheTTL  time.Duration `yaml:"cache_ttl" validate:"gte=0"`
	}

	FontsConfig struct {
		Title            int `yaml:"title" validate:"min=1"`
		CategoryTitle    int `yaml:"category_title" validate:"min=1"`
		SubcategoryTitle int `yaml:"subcategory_title" validate:"min=1"`
		Body             int `yaml:"body" validate:"min=1"`
		Description      int `yaml:"description" validate:"min=1"`
	}

	LayoutConfig struct {
		ContentWidth           int         `yaml:"content_width" validate:"min=1"`
		Padding                int         `yaml:"padding" validate:"gte=0"`
		ItemSpacing            int         `yaml:"item_spacing" validate:"gte=0"`
		DividerRule            int         `yaml:"divider_rule" validate:"gte=0"`
		TableHeaderRule        int         `yaml:"table_header_rule" validate:"gte=0"`
		TableRowRule           int         `yaml:"table_row_rule" validate:"gte=0"`
		DescriptionColumnWidth int         `yaml:"description_column_width" validate:"min=1,ltefield=ContentWidth"`
		ImageWidth             int         `yaml:"image_width" validate:"min=1"`
		ImageHeight            int         `yaml:"image_height" validate:"min=1"`
		Fonts                  FontsConfig `yaml:"fonts"`
	}

	ServerConfig struct {
		Addr           string   `yaml:"addr" validate:"required,hostname_port"`
		AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Source  SourceConfig  `yaml:"source"`
		Layout  LayoutConfig  `yaml:"layout"`
		Logging LoggingConfig `yaml:"logging"`
		Server  ServerConfig  `yaml:"server"`
	}
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		cfg.Source.Location = strings.TrimSpace(os.ExpandEnv(cfg.Source.Location))
		if err := validate.Struct(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the default configuration and performs
// validation. An empty path returns the defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0

	cfg, err := unmarshalConfig(defaultConfig, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration file.
func Prepare() []byte {
	return bytes.Clone(defaultConfig)
}

// Dump serializes cfg back to yaml.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// Metrics returns the layout sizes.
func (c *LayoutConfig) Metrics() layout.Metrics {
	return layout.Metrics{
		ContentWidth:             c.ContentWidth,
		Padding:                  c.Padding,
		ItemSpacing:              c.ItemSpacing,
		DividerRule:              c.DividerRule,
		TableHeaderRule:          c.TableHeaderRule,
		TableRowRule:             c.TableRowRule,
		DescriptionColumnWidth:   c.DescriptionColumnWidth,
		ImageWidth:               c.ImageWidth,
		ImageHeight:              c.ImageHeight,
		TitleFontSize:            c.Fonts.Title,
		CategoryTitleFontSize:    c.Fonts.CategoryTitle,
		SubcategoryTitleFontSize: c.Fonts.SubcategoryTitle,
		BodyFontSize:             c.Fonts.Body,
		DescriptionFontSize:      c.Fonts.Description,
	}
}

// LoadOptions returns the workbook selection of the source.
func (c *SourceConfig) LoadOptions() guidedoc.LoadOptions {
	return guidedoc.LoadOptions{Sheet: c.Sheet, Range: c.Range, AllSheets: c.AllSheets}
}

// Open returns the configured source. A non-empty location overrides the
// configured one.
func (c *SourceConfig) Open(location string, log *zap.Logger) (source.Source, error) {
	if location == "" {
		location = c.Location
	}
	return source.New(location, source.Options{
		Load:    c.LoadOptions(),
		Timeout: c.Timeout,
		Logger:  log,
	})
}

// Options returns the synthesis options of the configuration.
func (c *Config) Options(log *zap.Logger) guidedoc.Options {
	return guidedoc.Options{Metrics: c.Layout.Metrics(), Logger: log}
}
