package bramble

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings toggles picking features at runtime without tearing the
// pipeline down, e.g. to freeze interaction while a loading screen is up.
type Settings struct {
	// Enabled gates the whole pipeline. When false, Tick only clears
	// per-frame state.
	Enabled bool `yaml:"enabled"`
	// InputEnabled gates built-in input sources such as [EbitenInput].
	// Input fed to the registry directly is not affected.
	InputEnabled bool `yaml:"input_enabled"`
	// FocusEnabled gates hover resolution, interaction states, and event
	// emission. Backends are still polled so submissions stay cheap to
	// re-enable.
	FocusEnabled bool `yaml:"focus_enabled"`
}

// DefaultSettings returns the default toggles: everything enabled.
func DefaultSettings() Settings {
	return Settings{Enabled: true, InputEnabled: true, FocusEnabled: true}
}

// Config is the YAML-loadable pipeline configuration.
type Config struct {
	Settings    Settings `yaml:"settings"`
	SourceOrder []string `yaml:"source_order"`
}

// DefaultConfig returns the configuration used when nothing is loaded.
func DefaultConfig() Config {
	return Config{Settings: DefaultSettings()}
}

// LoadConfig parses a YAML configuration. Absent fields keep their
// defaults, so a file may set only what it changes:
//
//	settings:
//	  focus_enabled: false
//	source_order: [ui, world]
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
