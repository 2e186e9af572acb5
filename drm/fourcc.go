// fourcc.go defines the DRM fourcc codes and format modifiers used by drmprime.

// Package drm describes DRM PRIME buffers: fourcc codes, format modifiers
// and the frame descriptor a hardware decoder exports.
package drm

import (
	"fmt"
)

// FourCC is a DRM pixel format code (see drm_fourcc.h).
type FourCC uint32

func fourCC(a, b, c, d byte) FourCC {
	return FourCC(a) | FourCC(b)<<8 | FourCC(c)<<16 | FourCC(d)<<24
}

var (
	FormatR8     = fourCC('R', '8', ' ', ' ')
	FormatR16    = fourCC('R', '1', '6', ' ')
	FormatGR88   = fourCC('G', 'R', '8', '8')
	FormatGR1616 = fourCC('G', 'R', '3', '2')

	FormatNV12   = fourCC('N', 'V', '1', '2')
	FormatNV21   = fourCC('N', 'V', '2', '1')
	FormatYUV420 = fourCC('Y', 'U', '1', '2')
	FormatP010   = fourCC('P', '0', '1', '0')
)

func (f FourCC) String() string {
	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08X", uint32(f))
		}
	}
	return string(b[:])
}

// PlaneCount returns the fixed amount of planes a buffer of the format
// consists of, or zero if the format is not known to drmprime.
func (f FourCC) PlaneCount() int {
	switch f {
	case FormatNV12, FormatNV21, FormatP010:
		return 2
	case FormatYUV420:
		return 3
	case FormatR8, FormatR16, FormatGR88, FormatGR1616:
		return 1
	}
	return 0
}

// Modifier is a DRM format modifier (tiling/compression layout tag).
type Modifier uint64

const (
	ModifierLinear  = Modifier(0)
	ModifierInvalid = Modifier(0x00ffffffffffffff)
)

// Lo returns the lower 32 bits, as passed in EGL_DMA_BUF_PLANE0_MODIFIER_LO_EXT.
func (m Modifier) Lo() uint32 {
	return uint32(m & 0xffffffff)
}

// Hi returns the upper 32 bits, as passed in EGL_DMA_BUF_PLANE0_MODIFIER_HI_EXT.
func (m Modifier) Hi() uint32 {
	return uint32(m >> 32)
}

func (m Modifier) String() string {
	switch m {
	case ModifierLinear:
		return "linear"
	case ModifierInvalid:
		return "invalid"
	}
	return fmt.Sprintf("0x%016X", uint64(m))
}
