package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all wip configuration. Every field has a sensible default;
// the save/restore commands additionally accept the remote as a positional
// argument, which wins over both layers.
// Resolved via: defaults → global (~/.config/wip/config.toml) → .wip.toml
type Config struct {
	// Remote is the git remote name. Almost always "origin".
	Remote string `toml:"remote"`

	// IndexArtifact is the filename of the staged-changes patch committed
	// onto the WIP branch.
	IndexArtifact string `toml:"index_artifact"`

	// OtherArtifact is the filename of the unstaged + untracked patch.
	OtherArtifact string `toml:"other_artifact"`
}

// Load reads config with layered precedence:
//  1. Hardcoded defaults (remote="origin", artifact names)
//  2. Global (~/.config/wip/config.toml)
//  3. Repo-local (.wip.toml in the tree root)
//
// Each layer only overrides fields it explicitly sets.
func Load(dir string) (*Config, error) {
	cfg := &Config{
		Remote:        "origin",
		IndexArtifact: ".wip-index.patch",
		OtherArtifact: ".wip-other.patch",
	}

	if globalPath, err := globalConfigPath(); err == nil {
		if err := mergeFile(cfg, globalPath); err != nil {
			return nil, err
		}
	}

	if err := mergeFile(cfg, filepath.Join(dir, ".wip.toml")); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeFile overlays one TOML file onto cfg. A missing file is fine.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var layer Config
	if err := toml.Unmarshal(data, &layer); err != nil {
		return fmt.Errorf("config (%s): %w", path, err)
	}
	mergeConfig(cfg, &layer)
	return nil
}

// mergeConfig copies non-zero fields from src into dst.
func mergeConfig(dst, src *Config) {
	if src.Remote != "" {
		dst.Remote = src.Remote
	}
	if src.IndexArtifact != "" {
		dst.IndexArtifact = src.IndexArtifact
	}
	if src.OtherArtifact != "" {
		dst.OtherArtifact = src.OtherArtifact
	}
}

// globalConfigPath returns ~/.config/wip/config.toml.
func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wip", "config.toml"), nil
}
