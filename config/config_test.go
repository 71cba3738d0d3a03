package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfigValid(t *testing.T) {
	c := DefaultConfig
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.BoardSize != 8 {
		t.Errorf("default board size = %d, want 8", c.BoardSize)
	}
}

func TestValidateBoardSize(t *testing.T) {
	for _, size := range []int{0, 2, 27, -8} {
		c := DefaultConfig
		c.BoardSize = size
		err := c.Validate()
		var invalid *InvalidConfig
		if !errors.As(err, &invalid) {
			t.Errorf("board size %d: got %v, want InvalidConfig", size, err)
		}
	}
	for _, size := range []int{3, 8, 26} {
		c := DefaultConfig
		c.BoardSize = size
		if err := c.Validate(); err != nil {
			t.Errorf("board size %d: %v", size, err)
		}
	}
}

func TestValidateSymbols(t *testing.T) {
	c := DefaultConfig
	c.Theme.Symbols.Knight = '\t'
	if err := c.Validate(); err == nil {
		t.Error("control character symbol should be rejected")
	}
}

func TestConfigFileRoundTrip(t *testing.T) {
	want := DefaultConfig
	want.BoardSize = 10
	want.SaveFile = "/tmp/kk.json"
	want.Theme.Symbols.Goal = 'X'

	path := filepath.Join(t.TempDir(), "config.json")
	if err := saveCfgFile(path, &want, 0664); err != nil {
		t.Fatalf("saveCfgFile: %v", err)
	}
	got := DefaultConfig
	if err := readCfgFile(path, &got); err != nil {
		t.Fatalf("readCfgFile: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestExplicitPaths(t *testing.T) {
	c := DefaultConfig
	c.SaveFile = "/tmp/save.json"
	c.LogFile = "/tmp/debug.log"
	if p, err := c.SavePath(); err != nil || p != "/tmp/save.json" {
		t.Errorf("SavePath = %q, %v", p, err)
	}
	if p, err := c.LogPath(); err != nil || p != "/tmp/debug.log" {
		t.Errorf("LogPath = %q, %v", p, err)
	}
}

func TestSaveThenInitConfig(t *testing.T) {
	// cleanups run in reverse, so xdg reloads after the variable is restored
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	c, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig without a file: %v", err)
	}
	c.Theme.HighlightTargets = false
	c.Theme.Colors.Goal = 4
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := InitConfig()
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("reloaded config mismatch (-want +got):\n%s", diff)
	}
}
