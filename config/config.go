package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "rokuwake.yaml"

type Config struct {
	Device DeviceConfig `yaml:"device"`
	Script ScriptConfig `yaml:"script"`
	Task   TaskConfig   `yaml:"task"`
	Log    LogConfig    `yaml:"log"`
}

type DeviceConfig struct {
	Address      string `yaml:"address"`
	Port         int    `yaml:"port"`
	ProbeTimeout string `yaml:"probe_timeout"`
	ProbeWorkers int    `yaml:"probe_workers"`
	Marker       string `yaml:"marker"`
}

type ScriptConfig struct {
	// Path of the generated trigger script. Empty means the platform default
	// file name in the working directory.
	Path string `yaml:"path"`
}

type TaskConfig struct {
	Name string `yaml:"name"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads path. A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Device.Port == 0 {
		c.Device.Port = 8060
	}
	if c.Device.ProbeTimeout == "" {
		c.Device.ProbeTimeout = "250ms"
	}
	if c.Device.ProbeWorkers == 0 {
		c.Device.ProbeWorkers = 16
	}
	if c.Device.Marker == "" {
		c.Device.Marker = "roku"
	}
	if c.Task.Name == "" {
		c.Task.Name = "RokuAutoLaunch"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Device.Port < 1 || c.Device.Port > 65535 {
		return fmt.Errorf("device.port %d out of range", c.Device.Port)
	}
	if c.Device.ProbeWorkers < 1 {
		return fmt.Errorf("device.probe_workers must be at least 1, got %d", c.Device.ProbeWorkers)
	}
	if _, err := c.ProbeTimeout(); err != nil {
		return err
	}
	return nil
}

func (c *Config) ProbeTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Device.ProbeTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid device.probe_timeout %q: %w", c.Device.ProbeTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("device.probe_timeout must be positive, got %s", d)
	}
	return d, nil
}
