package config

import (
	"fmt"

	"github.com/TFMV/salesgen/pkg/sales"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// --- Configuration Structs ---

type GeneratorConfig struct {
	Records int    `mapstructure:"records" yaml:"records"`
	Seed    uint64 `mapstructure:"seed" yaml:"seed"`
	Pricing string `mapstructure:"pricing" yaml:"pricing"`
}

type OutputConfig struct {
	Path    string `mapstructure:"path" yaml:"path"`
	Preview int    `mapstructure:"preview" yaml:"preview"`
}

type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

type ServerConfig struct {
	Port       int  `mapstructure:"port" yaml:"port"`
	MaxRecords int  `mapstructure:"max_records" yaml:"max_records"`
	Prefork    bool `mapstructure:"prefork" yaml:"prefork"`
}

type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" yaml:"generator"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
}

// DefaultOutputPath is the file the dataset is written to.
const DefaultOutputPath = "product_sales_data.csv"

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generator.records", sales.DefaultRecordCount)
	v.SetDefault("generator.seed", sales.DefaultSeed)
	v.SetDefault("generator.pricing", string(sales.PricingLegacy))
	v.SetDefault("output.path", DefaultOutputPath)
	v.SetDefault("output.preview", 60)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.max_records", 100000)
	v.SetDefault("server.prefork", false)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := unmarshal(v)
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// --- Load Configuration ---

// Load reads configPath into v, which may already carry bound flags, and
// decodes the result.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		}
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// --- Validation Functions ---

// validate is a helper function to reduce repetition.
func validate(condition bool, format string, a ...any) error {
	if !condition {
		return fmt.Errorf(format, a...)
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator validation failed: %w", err)
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log validation failed: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}
	return nil
}

func (gc *GeneratorConfig) Validate() error {
	if err := validate(gc.Records >= 0, "records must not be negative, got %d", gc.Records); err != nil {
		return err
	}
	_, err := sales.ParsePricingMode(gc.Pricing)
	return err
}

// PricingMode returns the parsed pricing mode. Call Validate first.
func (gc *GeneratorConfig) PricingMode() sales.PricingMode {
	m, _ := sales.ParsePricingMode(gc.Pricing)
	return m
}

func (oc *OutputConfig) Validate() error {
	if err := validate(oc.Path != "", "output path is required"); err != nil {
		return err
	}
	return validate(oc.Preview >= 0, "preview rows must not be negative, got %d", oc.Preview)
}

func (lc *LogConfig) Validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(lc.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
	}
	return nil
}

func (sc *ServerConfig) Validate() error {
	if err := validate(sc.Port > 0 && sc.Port < 65536, "server port must be between 1 and 65535, got %d", sc.Port); err != nil {
		return err
	}
	return validate(sc.MaxRecords > 0, "server max records must be positive, got %d", sc.MaxRecords)
}
