// frame.go defines Buffer, the raw decoder buffer bridged to a picture.

// Package frame provides the raw decoder buffers drmprime hands over from
// the decoder to the GPU importer: libav frames carrying a DRM PRIME
// descriptor.
package frame

import (
	"github.com/xaionaro-go/drmprime/drm"
)

// Buffer is decoder-owned memory a picture context refers to. The decoder
// fills it; the importer only reads it.
type Buffer interface {
	// DRMFrameDescriptor returns the descriptor exported by the decoder,
	// or nil if the buffer does not hold a DRM PRIME frame.
	DRMFrameDescriptor() *drm.FrameDescriptor

	// Unref drops the reference to the decoded contents (and with it the
	// decoder's hold on the DMA buffers) and resets the buffer to empty.
	// The buffer may be filled again afterwards.
	Unref()

	// Free releases the buffer itself. It must not be used afterwards.
	Free()
}
