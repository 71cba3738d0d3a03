// Package config loads kingknight settings from the XDG config directory.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"kingknight/board"
)

const appName = "kingknight"

var (
	cfgFile  = filepath.Join(appName, "config.json")
	saveFile = filepath.Join(appName, "save.json")
	logFile  = filepath.Join(appName, "debug.log")
)

// MaxBoardSize is the largest board_size accepted.
const MaxBoardSize = board.MaxSize

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	LightSquare int `json:"light_square"`
	DarkSquare  int `json:"dark_square"`
	King        int `json:"king"`
	Knight      int `json:"knight"`
	Goal        int `json:"goal"`
	CursorBG    int `json:"cursor_bg"`
	SelectedBG  int `json:"selected_bg"`
	TargetBG    int `json:"target_bg"`
	Coordinates int `json:"coordinates"`
}

type ConfigSymbols struct {
	King   rune `json:"king"`
	Knight rune `json:"knight"`
	Goal   rune `json:"goal"`
	Target rune `json:"target"`
}

type Theme struct {
	HighlightTargets bool          `json:"highlight_targets"`
	Colors           ConfigColors  `json:"colors"`
	Symbols          ConfigSymbols `json:"symbols"`
}

type Config struct {
	BoardSize int    `json:"board_size"`
	SaveFile  string `json:"save_file"`
	LogFile   string `json:"log_file"`
	Theme     Theme  `json:"theme"`
}

// InitConfig loads the user config over the defaults and validates it.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, &InvalidConfig{err.Error()}
		}
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.BoardSize < board.MinSize || c.BoardSize > MaxBoardSize {
		return &InvalidConfig{fmt.Sprintf("board_size must be between %d and %d, got %d", board.MinSize, MaxBoardSize, c.BoardSize)}
	}
	s := c.Theme.Symbols
	for _, r := range []rune{s.King, s.Knight, s.Goal, s.Target} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

// SavePath returns the configured save file, or the XDG data location.
func (c *Config) SavePath() (string, error) {
	if c.SaveFile != "" {
		return c.SaveFile, nil
	}
	return xdg.DataFile(saveFile)
}

// LogPath returns the configured debug log, or the XDG state location.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	return xdg.StateFile(logFile)
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	configReader, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return json.Unmarshal(configReader, a)
}
