package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackhole.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConfigDefaults(t *testing.T) {
	c := defaultConfig()
	if c.Title != "Wormhole" || c.Width != 1920 || c.Height != 1080 {
		t.Errorf("window defaults = %q %dx%d", c.Title, c.Width, c.Height)
	}
	if c.Render.Scale != 0.75 || c.Render.BloomLevels != 5 || c.Render.Gamma != 2.5 {
		t.Errorf("render defaults = %+v", c.Render)
	}
	if !c.Disk.Lensing || !c.Disk.DrawHole || c.Disk.DensityV != 2 {
		t.Errorf("disk defaults = %+v", c.Disk)
	}
	if got := len(c.options()); got != 11 {
		t.Errorf("options() produced %d options", got)
	}
}

func TestConfigPartialOverride(t *testing.T) {
	path := writeConfig(t, `
title = "Gargantua"

[render]
scale = 0.5
bloom_strength = 0.3

[disk]
speed = 1.5
`)
	c := defaultConfig()
	if err := c.load(path); err != nil {
		t.Fatal(err)
	}
	if c.Title != "Gargantua" {
		t.Errorf("title = %q", c.Title)
	}
	if c.Render.Scale != 0.5 || c.Render.BloomStrength != 0.3 {
		t.Errorf("render = %+v", c.Render)
	}
	if c.Disk.Speed != 1.5 {
		t.Errorf("disk speed = %v", c.Disk.Speed)
	}
	// Untouched keys keep their defaults.
	if c.Width != 1920 || c.Render.Gamma != 2.5 || c.Disk.DensityH != 4 {
		t.Error("defaults lost on partial override")
	}
}

func TestConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[render]
scail = 0.5
`)
	c := defaultConfig()
	if err := c.load(path); err == nil {
		t.Fatal("typoed key accepted")
	}
}

func TestConfigMissingFile(t *testing.T) {
	c := defaultConfig()
	if err := c.load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
