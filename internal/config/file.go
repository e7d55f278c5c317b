package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional YAML config file.
const FileName = ".stew.yaml"

// FileConfig is the content of a .stew.yaml file. Unset keys stay nil.
type FileConfig struct {
	OutputFormat               *string `yaml:"output_format"`
	JPEGQuality                *int    `yaml:"jpeg_quality"`
	PNMASCII                   *bool   `yaml:"pnm_ascii"`
	DisableColorTypeAdjustment *bool   `yaml:"disable_color_type_adjustment"`
}

// LoadFile reads the config file. An explicit path must exist. Without one,
// the file is searched for in the working directory and then in the user
// config directory; finding none is not an error and yields (nil, "", nil).
func LoadFile(explicit string) (*FileConfig, string, error) {
	path := explicit
	if path == "" {
		path = findConfigPath()
		if path == "" {
			return nil, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			return nil, "", nil
		}
		return nil, path, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, path, nil
}

// findConfigPath checks the working directory first, then
// <UserConfigDir>/stew/.stew.yaml.
func findConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "stew", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
