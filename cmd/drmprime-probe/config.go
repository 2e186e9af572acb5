//go:build linux

package main

import (
	"fmt"
	"os"

	"github.com/xaionaro-go/drmprime/decoder"
	"github.com/xaionaro-go/drmprime/egl"
	"github.com/xaionaro-go/drmprime/glconv"
	"github.com/xaionaro-go/drmprime/types"
	"gopkg.in/yaml.v3"
)

type Config struct {
	RenderNode string            `yaml:"render_node"`
	Chroma     types.PixelFormat `yaml:"chroma"`
	PoolSize   uint              `yaml:"pool_size"`
	MaxFrames  uint              `yaml:"max_frames"`
	Decoder    decoder.Config    `yaml:"decoder"`
	GLConv     glconv.Config     `yaml:"glconv"`
	EGL        egl.Config        `yaml:"egl"`
}

func DefaultConfig() Config {
	return Config{
		RenderNode: "/dev/dri/renderD128",
		Chroma:     types.PixelFormatDRMPrimeNV12,
		PoolSize:   8,
		MaxFrames:  10,
		Decoder:    decoder.DefaultConfig(),
		GLConv:     glconv.DefaultConfig(),
		EGL:        egl.DefaultConfig(),
	}
}

func readConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse '%s': %w", path, err)
	}
	return cfg, nil
}
