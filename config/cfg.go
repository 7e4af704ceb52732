package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"tabular/common"
	"tabular/tables"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	WidthsConfig struct {
		Precision int     `yaml:"precision" validate:"gte=0,lte=8"`
		Tolerance float64 `yaml:"tolerance" validate:"gte=0,lte=100"`
		MinWidth  float64 `yaml:"min_width" validate:"gte=0,lt=100"`
	}

	TablesConfig struct {
		MapCacheSize int                  `yaml:"map_cache_size" validate:"gte=0"`
		Widths       WidthsConfig         `yaml:"widths"`
		SplitCells   common.SplitCellType `yaml:"split_cells" validate:"gte=0"`
		FixAfterEdit bool                 `yaml:"fix_after_edit"`
	}

	OutputConfig struct {
		NameTemplate          string `yaml:"name_template"`
		FileNameTransliterate bool   `yaml:"file_name_transliterate"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Tables    TablesConfig   `yaml:"tables"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, gencfg addresses fields by
	// their yaml names
	OutputNameTemplateFieldName TemplateFieldName = "name_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
)

// Options converts tables section into package options for tables.
func (conf *TablesConfig) Options() tables.Options {
	return tables.Options{
		MapCacheSize: conf.MapCacheSize,
		Widths: tables.WidthPolicy{
			Precision: int32(conf.Widths.Precision),
			Tolerance: conf.Widths.Tolerance,
			MinWidth:  conf.Widths.MinWidth,
		},
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields we defined are allowed, yaml.Unmarshal would silently
	// ignore the rest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration expands embedded configuration template, superimposes
// values from the file at path (if any) and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
