// video_format.go defines the VideoFormat structure.

package types

import (
	"fmt"
)

type VideoFormat struct {
	Chroma PixelFormat `yaml:"chroma"`
	Width  uint32      `yaml:"width"`
	Height uint32      `yaml:"height"`
}

func (f VideoFormat) String() string {
	return fmt.Sprintf("%s:%dx%d", f.Chroma, f.Width, f.Height)
}
