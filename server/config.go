// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/sculpt/server/blob"
	"github.com/SoftbearStudios/sculpt/server/terrain"
	"github.com/SoftbearStudios/sculpt/server/terrain/noise"
	"github.com/SoftbearStudios/sculpt/server/tool"
	"github.com/SoftbearStudios/sculpt/server/world"
	"gopkg.in/yaml.v3"
	"os"
)

var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is read from a YAML file. Missing values take defaults.
	Config struct {
		Port           int           `yaml:"port"`
		MaxConnections int           `yaml:"max_connections"`
		FrameRate      int           `yaml:"frame_rate"`
		Metrics        bool          `yaml:"metrics"`
		Terrain        TerrainConfig `yaml:"terrain"`
		Blob           BlobConfig    `yaml:"blob"`
	}

	TerrainConfig struct {
		Seed       int64       `yaml:"seed"`
		Hilliness  float32     `yaml:"hilliness"`
		Size       float32     `yaml:"size"`
		Resolution int         `yaml:"resolution"`
		Basis      noise.Basis `yaml:"basis"`
		Workers    int         `yaml:"workers"` // 0 for all CPUs
	}

	BlobConfig struct {
		Spacing float32 `yaml:"spacing"`
		Radius  float32 `yaml:"radius"`
	}
)

func DefaultConfig() Config {
	return Config{
		Port:           8192,
		MaxConnections: 256,
		FrameRate:      world.DefaultFrameRate,
		Metrics:        true,
		Terrain: TerrainConfig{
			Seed:       noise.DefaultSeed,
			Hilliness:  noise.DefaultHilliness,
			Size:       terrain.GenerateSize,
			Resolution: terrain.GenerateResolution,
			Basis:      noise.BasisValue,
		},
		Blob: BlobConfig{
			Spacing: blob.DefaultSpacing,
			Radius:  blob.DefaultRadius,
		},
	}
}

// LoadConfig reads path over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxConnections <= 0 {
		return fmt.Errorf("%w: max_connections must be positive", ErrInvalidConfig)
	}
	if c.FrameRate <= 0 || c.FrameRate > world.MaxFrameRate {
		return fmt.Errorf("%w: frame_rate must be in [1, %d]", ErrInvalidConfig, world.MaxFrameRate)
	}
	if !(c.Terrain.Hilliness >= noise.MinHilliness && c.Terrain.Hilliness <= noise.MaxHilliness) {
		return fmt.Errorf("%w: terrain.hilliness must be in [%v, %v]", ErrInvalidConfig, noise.MinHilliness, noise.MaxHilliness)
	}
	if !(c.Terrain.Size > 0 && c.Terrain.Size <= terrain.MaxSize) {
		return fmt.Errorf("%w: terrain.size must be in (0, %d]", ErrInvalidConfig, terrain.MaxSize)
	}
	if c.Terrain.Resolution < 2 || c.Terrain.Resolution > terrain.MaxResolution {
		return fmt.Errorf("%w: terrain.resolution must be in [2, %d]", ErrInvalidConfig, terrain.MaxResolution)
	}
	switch c.Terrain.Basis {
	case noise.BasisValue, noise.BasisPerlin, noise.BasisSimplex:
	case "":
		c.Terrain.Basis = noise.BasisValue
	default:
		return fmt.Errorf("%w: terrain.basis %q", ErrInvalidConfig, c.Terrain.Basis)
	}
	if c.Blob.Spacing < 0 || c.Blob.Radius < 0 {
		return fmt.Errorf("%w: blob spacing and radius can't be negative", ErrInvalidConfig)
	}
	return nil
}

// ToolOptions are the controller options for each session.
func (c *Config) ToolOptions() tool.Options {
	params := noise.DefaultParams()
	params.Seed = c.Terrain.Seed
	params.Basis = c.Terrain.Basis
	params.Hilliness = c.Terrain.Hilliness

	return tool.Options{
		Params:      params,
		Size:        c.Terrain.Size,
		Resolution:  c.Terrain.Resolution,
		Workers:     c.Terrain.Workers,
		BlobSpacing: c.Blob.Spacing,
		BlobRadius:  c.Blob.Radius,
	}
}
