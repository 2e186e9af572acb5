// pool.go implements Buffer on top of a libav frame.

package frame

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/types"
	"github.com/xaionaro-go/unsafetools"
)

// AVFrame is a Buffer backed by an AVFrame the decoder receives
// AV_PIX_FMT_DRM_PRIME frames into; data[0] of such a frame points to an
// AVDRMFrameDescriptor.
type AVFrame struct {
	*astiav.Frame
}

var _ Buffer = (*AVFrame)(nil)

// Alloc allocates an empty AVFrame.
func Alloc() (Buffer, error) {
	f := astiav.AllocFrame()
	if f == nil {
		return nil, fmt.Errorf("av_frame_alloc: %w", types.ErrNoMem)
	}
	return &AVFrame{Frame: f}, nil
}

func (f *AVFrame) String() string {
	return fmt.Sprintf("AVFrame(%p, %s, %dx%d)", f.Frame, f.PixelFormat(), f.Width(), f.Height())
}

func (f *AVFrame) DRMFrameDescriptor() *drm.FrameDescriptor {
	if f.Frame == nil || f.PixelFormat() != astiav.PixelFormatDrmPrime {
		return nil
	}
	return descriptorFromAVFrame(f.avFramePointer())
}

func (f *AVFrame) Unref() {
	f.Frame.Unref()
}

func (f *AVFrame) Free() {
	f.Frame.Free()
	f.Frame = nil
}

// avFramePointer returns the AVFrame* wrapped by astiav.
func (f *AVFrame) avFramePointer() unsafe.Pointer {
	return unsafetools.FieldByNameInValue(reflect.ValueOf(f.Frame), "c").Elem().UnsafePointer()
}
