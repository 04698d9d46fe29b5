package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// Holds list-shaped settings that are easier to manage in YAML than env vars:
// the dashboard city picker and hand-authored ephemeride overrides.
type YAMLConfig struct {
	Cities      []CityConfig       `yaml:"cities"`
	Ephemerides []EphemerideConfig `yaml:"ephemerides"`
}

// CityConfig defines a selectable city for the weather endpoint.
type CityConfig struct {
	Name      string  `yaml:"name" json:"name"`
	Latitude  float64 `yaml:"latitude" json:"latitude"`
	Longitude float64 `yaml:"longitude" json:"longitude"`
}

// EphemerideConfig defines a curated fact override keyed by month-day (MM-DD).
type EphemerideConfig struct {
	MonthDay    string `yaml:"month_day"`
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Year        int    `yaml:"year"`
	Category    string `yaml:"category"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Cities) == 0 {
		cfg.Cities = DefaultCities()
	}

	return &cfg, nil
}

// DefaultCities returns the built-in city list used when no config file exists.
func DefaultCities() []CityConfig {
	return []CityConfig{
		{Name: "Madrid", Latitude: 40.4168, Longitude: -3.7038},
		{Name: "Barcelona", Latitude: 41.3874, Longitude: 2.1686},
		{Name: "London", Latitude: 51.5074, Longitude: -0.1278},
		{Name: "New York", Latitude: 40.7128, Longitude: -74.0060},
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
	}
}
