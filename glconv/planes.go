package glconv

import (
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/types"
)

// PlaneFormats returns the formats each plane of a buffer of the given
// format is imported as: every plane becomes a separate single- or
// dual-channel image.
func PlaneFormats(format drm.FourCC) ([]drm.FourCC, bool) {
	switch format {
	case drm.FormatNV12, drm.FormatNV21:
		return []drm.FourCC{drm.FormatR8, drm.FormatGR88}, true
	case drm.FormatYUV420:
		return []drm.FourCC{drm.FormatR8, drm.FormatR8, drm.FormatR8}, true
	case drm.FormatP010:
		return []drm.FourCC{drm.FormatR16, drm.FormatGR1616}, true
	}
	return nil, false
}

// BufferFormat returns the DRM format a decoder exports for the chroma.
func BufferFormat(chroma types.PixelFormat) (drm.FourCC, bool) {
	switch chroma {
	case types.PixelFormatDRMPrimeNV12:
		return drm.FormatNV12, true
	case types.PixelFormatDRMPrimeNV21:
		return drm.FormatNV21, true
	case types.PixelFormatDRMPrimeYUV420P:
		return drm.FormatYUV420, true
	case types.PixelFormatDRMPrimeP010:
		return drm.FormatP010, true
	}
	return 0, false
}

// PlaneSizes returns the texture size of every plane of a 4:2:0 picture.
func PlaneSizes(format types.VideoFormat) (widths, heights []int32) {
	n := format.Chroma.PlaneCount()
	w, h := int32(format.Width), int32(format.Height)
	for i := 0; i < n; i++ {
		if i == 0 {
			widths = append(widths, w)
			heights = append(heights, h)
			continue
		}
		widths = append(widths, (w+1)/2)
		heights = append(heights, (h+1)/2)
	}
	return
}
