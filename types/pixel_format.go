// pixel_format.go defines the PixelFormat (chroma) enum and its methods.

package types

import (
	"fmt"
	"strings"
)

// PixelFormat is a picture chroma as negotiated between the decoder and
// the video output.
type PixelFormat int

const (
	UndefinedPixelFormat = PixelFormat(iota)

	// buffer-backed chromas: the picture carries a DRM PRIME frame
	PixelFormatDRMPrimeNV12
	PixelFormatDRMPrimeNV21
	PixelFormatDRMPrimeYUV420P
	PixelFormatDRMPrimeP010

	// software chromas the fragment shader samples from
	PixelFormatNV12
	PixelFormatNV21
	PixelFormatI420
	PixelFormatP010

	EndOfPixelFormat
)

func (f PixelFormat) String() string {
	switch f {
	case UndefinedPixelFormat:
		return "<undefined>"
	case PixelFormatDRMPrimeNV12:
		return "drmp_nv12"
	case PixelFormatDRMPrimeNV21:
		return "drmp_nv21"
	case PixelFormatDRMPrimeYUV420P:
		return "drmp_yuv420p"
	case PixelFormatDRMPrimeP010:
		return "drmp_p010"
	case PixelFormatNV12:
		return "nv12"
	case PixelFormatNV21:
		return "nv21"
	case PixelFormatI420:
		return "i420"
	case PixelFormatP010:
		return "p010"
	}
	return fmt.Sprintf("unknown_%X", int64(f))
}

// IsDRMPrime returns true if the pixels of a picture of this format live in
// a DRM PRIME buffer instead of the picture planes.
func (f PixelFormat) IsDRMPrime() bool {
	switch f {
	case PixelFormatDRMPrimeNV12,
		PixelFormatDRMPrimeNV21,
		PixelFormatDRMPrimeYUV420P,
		PixelFormatDRMPrimeP010:
		return true
	}
	return false
}

// PlaneCount returns the amount of memory planes of the format.
func (f PixelFormat) PlaneCount() int {
	switch f {
	case PixelFormatDRMPrimeNV12, PixelFormatNV12,
		PixelFormatDRMPrimeNV21, PixelFormatNV21,
		PixelFormatDRMPrimeP010, PixelFormatP010:
		return 2
	case PixelFormatDRMPrimeYUV420P, PixelFormatI420:
		return 3
	}
	return 0
}

// SamplingFormat returns the software chroma that describes the layout of
// the DRM PRIME buffer; for any other format it returns the format itself.
func (f PixelFormat) SamplingFormat() PixelFormat {
	switch f {
	case PixelFormatDRMPrimeNV12:
		return PixelFormatNV12
	case PixelFormatDRMPrimeNV21:
		return PixelFormatNV21
	case PixelFormatDRMPrimeYUV420P:
		return PixelFormatI420
	case PixelFormatDRMPrimeP010:
		return PixelFormatP010
	}
	return f
}

func PixelFormatFromString(s string) (PixelFormat, error) {
	s = strings.Trim(strings.ToLower(s), " \"\n\r\t")
	for candidate := UndefinedPixelFormat + 1; candidate < EndOfPixelFormat; candidate++ {
		if candidate.String() == s {
			return candidate, nil
		}
	}
	return UndefinedPixelFormat, fmt.Errorf("unknown pixel format: '%s'", s)
}

func (f PixelFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *PixelFormat) UnmarshalText(b []byte) error {
	v, err := PixelFormatFromString(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Set implements pflag.Value.
func (f *PixelFormat) Set(s string) error {
	return f.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (f *PixelFormat) Type() string {
	return "pixel-format"
}
