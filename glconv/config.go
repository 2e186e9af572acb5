package glconv

import (
	"fmt"
	"strings"
)

type Config struct {
	// TextureTarget is the target the planes are bound to.
	TextureTarget TextureTarget `yaml:"texture_target"`
}

func DefaultConfig() Config {
	return Config{
		TextureTarget: TextureTarget2D,
	}
}

func (t TextureTarget) MarshalText() ([]byte, error) {
	switch t {
	case TextureTarget2D:
		return []byte("2d"), nil
	case TextureTargetExternalOES:
		return []byte("external_oes"), nil
	}
	return nil, fmt.Errorf("unknown texture target 0x%04X", uint32(t))
}

func (t *TextureTarget) UnmarshalText(b []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(b))) {
	case "2d", "gl_texture_2d":
		*t = TextureTarget2D
	case "external_oes", "gl_texture_external_oes":
		*t = TextureTargetExternalOES
	default:
		return fmt.Errorf("unknown texture target '%s'", b)
	}
	return nil
}
