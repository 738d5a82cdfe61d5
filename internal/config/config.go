package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brafe/qc/internal/bend"
	"github.com/brafe/qc/internal/dimension"
	"github.com/brafe/qc/internal/loi"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-project state directory
	Dir        = ".qc"
	configFile = ".qc/config.yaml"
	lockFile   = ".qc/config.yaml.lock"
)

// Report defaults
const (
	DefaultReportPrefix = "Brafe"
	DefaultReportDir    = "reports"
	DefaultDelimiter    = ","
)

var (
	// ErrUnknownKey is returned for dotted keys that do not exist
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is wrapped when a value cannot be parsed or is out of range
	ErrInvalidValue = errors.New("invalid config value")
)

// BendConfig extends the test parameters with CSV decoding options
type BendConfig struct {
	bend.Params `yaml:",inline"`
	Delimiter   string `yaml:"delimiter"`
}

// Config is the project configuration stored in .qc/config.yaml
type Config struct {
	Operator     string         `yaml:"operator,omitempty"`
	ReportPrefix string         `yaml:"report_prefix"`
	ReportDir    string         `yaml:"report_dir"`
	Dimensional  dimension.Spec `yaml:"dimensional"`
	Bend         BendConfig     `yaml:"bend"`
	LOI          loi.Limits     `yaml:"loi"`
}

// Default returns the factory configuration
func Default() *Config {
	return &Config{
		ReportPrefix: DefaultReportPrefix,
		ReportDir:    DefaultReportDir,
		Dimensional:  dimension.DefaultSpec(),
		Bend: BendConfig{
			Params:    bend.DefaultParams(),
			Delimiter: DefaultDelimiter,
		},
		LOI: loi.DefaultLimits(),
	}
}

// Load reads the config from disk. Fields absent from the file keep their
// defaults; a missing file yields the defaults.
func Load(baseDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(baseDir, configFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", configFile, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets the environment pin operator and report directory
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("QC_OPERATOR")); v != "" {
		c.Operator = v
	}
	if v := strings.TrimSpace(os.Getenv("QC_REPORT_DIR")); v != "" {
		c.ReportDir = v
	}
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.yaml.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// Update loads, mutates and saves the config while holding the config lock.
// Environment overrides are not persisted.
func Update(baseDir string, fn func(*Config) error) error {
	return withConfigLock(baseDir, func() error {
		cfg := Default()
		data, err := os.ReadFile(filepath.Join(baseDir, configFile))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return fmt.Errorf("parse %s: %w", configFile, err)
			}
		}
		if err := fn(cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		return Save(baseDir, cfg)
	})
}

// Validate checks every section of the config
func (c *Config) Validate() error {
	if err := c.Dimensional.Validate(); err != nil {
		return fmt.Errorf("dimensional: %w", err)
	}
	if err := bend.ValidateParams(c.Bend.Params); err != nil {
		return fmt.Errorf("bend: %w", err)
	}
	if _, err := c.Bend.DelimiterRune(); err != nil {
		return fmt.Errorf("bend: %w", err)
	}
	if err := c.LOI.Validate(); err != nil {
		return fmt.Errorf("loi: %w", err)
	}
	if strings.TrimSpace(c.ReportPrefix) == "" {
		return fmt.Errorf("%w: report prefix must not be empty", ErrInvalidValue)
	}
	return nil
}

// DelimiterRune returns the single-character CSV delimiter
func (b BendConfig) DelimiterRune() (rune, error) {
	d := b.Delimiter
	switch d {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(d)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidValue, d)
	}
	return r[0], nil
}

// ResolveOperator returns the configured operator, falling back to the login name
func (c *Config) ResolveOperator() string {
	if c.Operator != "" {
		return c.Operator
	}
	for _, env := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return "unknown"
}

// ResolveReportDir returns the report directory, relative paths anchored at baseDir
func (c *Config) ResolveReportDir(baseDir string) string {
	dir := c.ReportDir
	if dir == "" {
		dir = DefaultReportDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(baseDir, dir)
}
