package glconv

import (
	"fmt"
	"strings"

	"github.com/xaionaro-go/drmprime/drm"
)

// Attribute is an EGL attribute name.
type Attribute int32

// values from EGL/egl.h and EGL/eglext.h
const (
	AttributeNone                   = Attribute(0x3038) // EGL_NONE
	AttributeWidth                  = Attribute(0x3057) // EGL_WIDTH
	AttributeHeight                 = Attribute(0x3056) // EGL_HEIGHT
	AttributeLinuxDRMFourCC         = Attribute(0x3271) // EGL_LINUX_DRM_FOURCC_EXT
	AttributeDMABufPlane0FD         = Attribute(0x3272) // EGL_DMA_BUF_PLANE0_FD_EXT
	AttributeDMABufPlane0Offset     = Attribute(0x3273) // EGL_DMA_BUF_PLANE0_OFFSET_EXT
	AttributeDMABufPlane0Pitch      = Attribute(0x3274) // EGL_DMA_BUF_PLANE0_PITCH_EXT
	AttributeDMABufPlane0ModifierLo = Attribute(0x3443) // EGL_DMA_BUF_PLANE0_MODIFIER_LO_EXT
	AttributeDMABufPlane0ModifierHi = Attribute(0x3444) // EGL_DMA_BUF_PLANE0_MODIFIER_HI_EXT
)

// TargetLinuxDMABuf is EGL_LINUX_DMA_BUF_EXT.
const TargetLinuxDMABuf = 0x3270

func (a Attribute) String() string {
	switch a {
	case AttributeNone:
		return "EGL_NONE"
	case AttributeWidth:
		return "EGL_WIDTH"
	case AttributeHeight:
		return "EGL_HEIGHT"
	case AttributeLinuxDRMFourCC:
		return "EGL_LINUX_DRM_FOURCC_EXT"
	case AttributeDMABufPlane0FD:
		return "EGL_DMA_BUF_PLANE0_FD_EXT"
	case AttributeDMABufPlane0Offset:
		return "EGL_DMA_BUF_PLANE0_OFFSET_EXT"
	case AttributeDMABufPlane0Pitch:
		return "EGL_DMA_BUF_PLANE0_PITCH_EXT"
	case AttributeDMABufPlane0ModifierLo:
		return "EGL_DMA_BUF_PLANE0_MODIFIER_LO_EXT"
	case AttributeDMABufPlane0ModifierHi:
		return "EGL_DMA_BUF_PLANE0_MODIFIER_HI_EXT"
	}
	return fmt.Sprintf("0x%04X", int32(a))
}

type AttributeValue struct {
	Key   Attribute
	Value int32
}

// ImageAttributes is an ordered EGL attribute list (without the EGL_NONE
// terminator).
type ImageAttributes []AttributeValue

// PlaneImageAttributes returns the attributes importing a single plane of
// a DMA buffer as a single image of the given (mapped) format.
func PlaneImageAttributes(
	width, height int32,
	format drm.FourCC,
	fd int,
	offset, pitch int64,
	modifier drm.Modifier,
) ImageAttributes {
	return ImageAttributes{
		{AttributeWidth, width},
		{AttributeHeight, height},
		{AttributeLinuxDRMFourCC, int32(format)},
		{AttributeDMABufPlane0FD, int32(fd)},
		{AttributeDMABufPlane0Offset, int32(offset)},
		{AttributeDMABufPlane0Pitch, int32(pitch)},
		{AttributeDMABufPlane0ModifierLo, int32(modifier.Lo())},
		{AttributeDMABufPlane0ModifierHi, int32(modifier.Hi())},
	}
}

// Get returns the value of the attribute.
func (attrs ImageAttributes) Get(key Attribute) (int32, bool) {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}
	return 0, false
}

// EGL returns the flat key/value list terminated with EGL_NONE, as
// eglCreateImageKHR expects it.
func (attrs ImageAttributes) EGL() []int32 {
	result := make([]int32, 0, len(attrs)*2+1)
	for _, attr := range attrs {
		result = append(result, int32(attr.Key), attr.Value)
	}
	return append(result, int32(AttributeNone))
}

func (attrs ImageAttributes) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, attr := range attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", attr.Key, attr.Value)
	}
	b.WriteString("}")
	return b.String()
}
