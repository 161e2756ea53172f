package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

type LoadResult struct {
	Config *Config
	File   string // empty when only defaults were used
	Format Format
}

func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "frametile"), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the standard location: config.yaml when
// it exists, else config.toml, else the defaults.
func Load() (*Config, error) {
	res, err := LoadWithSource()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSource is Load that also reports which file was used.
func LoadWithSource() (*LoadResult, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, name)
		exists, err := pathExists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			return LoadFromPath(path)
		}
	}
	return &LoadResult{Config: DefaultConfig(), Format: FormatYAML}, nil
}

// LoadFromPath loads a config file, picking the decoder from the extension.
// A missing file yields the defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	format := formatForPath(path)
	cfg := DefaultConfig()

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return &LoadResult{Config: cfg, Format: format}, nil
	}

	switch format {
	case FormatTOML:
		err = decodeStrictTOML(path, cfg)
	default:
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		err = decodeStrictYAML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		if verr, ok := err.(*ValidationError); ok {
			verr.File = path
		}
		return nil, err
	}
	return &LoadResult{Config: cfg, File: path, Format: format}, nil
}

func formatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// decodeStrictTOML decodes over the values already in out and rejects keys
// the config does not know.
func decodeStrictTOML(path string, out *Config) error {
	meta, err := toml.DecodeFile(path, out)
	if err != nil {
		return err
	}
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Encode writes cfg in the given format.
func Encode(w io.Writer, cfg *Config, format Format) error {
	if format == FormatTOML {
		return toml.NewEncoder(w).Encode(cfg)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
