package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings is the CLI configuration file. Flags override file values.
type Settings struct {
	StylesDir string `toml:"styles_dir"`
	OutputDir string `toml:"output_dir"`
	Style     string `toml:"style"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "sfoglia", "settings.toml")
}

// loadSettings reads the TOML settings file. A missing file yields zero
// settings; only an explicitly requested path that cannot be read is an
// error.
func loadSettings(path string, explicit bool) (Settings, error) {
	var s Settings
	if path == "" {
		return s, nil
	}

	_, err := toml.DecodeFile(path, &s)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return Settings{}, nil
	}
	return s, err
}
