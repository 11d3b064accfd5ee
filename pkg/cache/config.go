package cache

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls whether and where outputs are cached. It is read from a
// YAML file kept alongside the run directory.
type Config struct {
	// Path of the database file.
	Path string `yaml:"path"`
	// Enabled turns caching on. The zero Config leaves it off.
	Enabled bool `yaml:"enabled"`
}

// LoadConfig reads a Config from the file. A missing file yields the zero
// Config and no error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
