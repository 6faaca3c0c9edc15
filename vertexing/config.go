package vertexing

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("vertexing: unknown configuration format")

// Config is the set of heavy-flavour selections used by the analyses.
type Config struct {
	Dplus DplusCuts `toml:"dplus" yaml:"dplus"`
}

func DefaultConfig() *Config {
	return &Config{
		Dplus: DefaultDplusCuts(),
	}
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) configuration
// file. Fields missing from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vertexing: could not read config: %w", err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(raw, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("vertexing: could not decode %s: %w", path, err)
	}

	if err := cfg.Dplus.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) DplusCuts() DplusCuts {
	return cfg.Dplus
}

// PrintStatus writes the configured cuts to w.
func (cfg *Config) PrintStatus(w io.Writer) {
	fmt.Fprintf(w, "D+ -> K pi pi cuts:\n")
	cfg.Dplus.print(w)
}
