// Package config maps the viper configuration of csrgen into typed settings
package config

import (
	"log/slog"
	"path/filepath"

	"github.com/Manu343726/csrgen/pkg/export"
	"github.com/Manu343726/csrgen/pkg/logging"
	"github.com/Manu343726/csrgen/pkg/soc"
	"github.com/Manu343726/csrgen/pkg/soc/description"
	"github.com/Manu343726/csrgen/pkg/soc/xtrx"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Configuration keys, also usable as CSRGEN_* environment variables (dots and dashes become underscores)
const (
	KeyDescription         = "description"
	KeyLogLevel            = "log.level"
	KeyLogFile             = "log.file"
	KeyOutputDir           = "output.dir"
	KeyOutputKernelSubdir  = "output.kernel-subdir"
	KeyHeaderPrefix        = "header.prefix"
	KeyWithAccessFunctions = "header.with-access-functions"
	KeySysClkFreq          = "soc.sys-clk-freq"
	KeyWithPCIe            = "soc.with-pcie"
	KeyPCIeLanes           = "soc.pcie-lanes"
	KeyWithLedChaser       = "soc.with-led-chaser"
	KeyWithAnalyzer        = "soc.with-analyzer"
	KeyAnalyzerDepth       = "soc.analyzer-depth"
)

type Config struct {
	// YAML SoC description. The built-in XTRX SoC is used if empty
	Description string       `mapstructure:"description"`
	Log         LogConfig    `mapstructure:"log"`
	Output      OutputConfig `mapstructure:"output"`
	Header      HeaderConfig `mapstructure:"header"`
	SoC         SoCConfig    `mapstructure:"soc"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`

	// Headers go to Dir/KernelSubdir, where the kernel driver build looks for them
	KernelSubdir string `mapstructure:"kernel-subdir"`
}

type HeaderConfig struct {
	Prefix              string `mapstructure:"prefix"`
	WithAccessFunctions bool   `mapstructure:"with-access-functions"`
}

type SoCConfig struct {
	SysClkFreq    int64 `mapstructure:"sys-clk-freq"`
	WithPCIe      bool  `mapstructure:"with-pcie"`
	PCIeLanes     int   `mapstructure:"pcie-lanes"`
	WithLedChaser bool  `mapstructure:"with-led-chaser"`
	WithAnalyzer  bool  `mapstructure:"with-analyzer"`
	AnalyzerDepth int   `mapstructure:"analyzer-depth"`
}

// Registers the default value of every key
func SetDefaults(v *viper.Viper) {
	defaults := xtrx.DefaultOptions()

	v.SetDefault(KeyDescription, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyOutputDir, "build")
	v.SetDefault(KeyOutputKernelSubdir, filepath.Join("software", "kernel"))
	v.SetDefault(KeyHeaderPrefix, "")
	v.SetDefault(KeyWithAccessFunctions, false)
	v.SetDefault(KeySysClkFreq, defaults.SysClkFreq)
	v.SetDefault(KeyWithPCIe, defaults.WithPCIe)
	v.SetDefault(KeyPCIeLanes, defaults.PCIeLanes)
	v.SetDefault(KeyWithLedChaser, defaults.WithLedChaser)
	v.SetDefault(KeyWithAnalyzer, defaults.WithAnalyzer)
	v.SetDefault(KeyAnalyzerDepth, defaults.AnalyzerDepth)
}

// Decodes the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) XTRXOptions() xtrx.Options {
	return xtrx.Options{
		SysClkFreq:    c.SoC.SysClkFreq,
		WithPCIe:      c.SoC.WithPCIe,
		PCIeLanes:     c.SoC.PCIeLanes,
		WithLedChaser: c.SoC.WithLedChaser,
		WithAnalyzer:  c.SoC.WithAnalyzer,
		AnalyzerDepth: c.SoC.AnalyzerDepth,
	}
}

// Loads the configured SoC description, or builds the XTRX SoC if there is none
func (c *Config) LoadSoC(fs afero.Fs) (*soc.SoC, error) {
	if c.Description != "" {
		return description.LoadFile(fs, c.Description)
	}

	return xtrx.New(c.XTRXOptions())
}

// Directory generated headers are written to
func (c *Config) HeadersDir() string {
	return filepath.Join(c.Output.Dir, c.Output.KernelSubdir)
}

func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level: c.Log.Level,
		File:  c.Log.File,
	}
}

func (c *Config) GeneratorOptions(fs afero.Fs, logger *slog.Logger) export.Options {
	return export.Options{
		Prefix:              c.Header.Prefix,
		WithAccessFunctions: c.Header.WithAccessFunctions,
		Fs:                  fs,
		Logger:              logger,
	}
}
