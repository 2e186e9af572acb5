// Package frametest provides an in-memory frame.Buffer for tests.
package frametest

import (
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/frame"
)

// Buffer records what was done with it. Fill sets the descriptor as a
// decoder would.
type Buffer struct {
	Descriptor *drm.FrameDescriptor
	UnrefCount int
	Freed      bool
}

var _ frame.Buffer = (*Buffer)(nil)

func New() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Fill(desc *drm.FrameDescriptor) {
	if b.Freed {
		panic("use after free")
	}
	b.Descriptor = desc
}

func (b *Buffer) DRMFrameDescriptor() *drm.FrameDescriptor {
	if b.Freed {
		panic("use after free")
	}
	return b.Descriptor
}

func (b *Buffer) Unref() {
	if b.Freed {
		panic("use after free")
	}
	b.UnrefCount++
	b.Descriptor = nil
}

func (b *Buffer) Free() {
	if b.Freed {
		panic("double free")
	}
	b.Freed = true
}

// Allocator returns an allocation function that fails after `limit`
// successful allocations (never, if limit is negative), and the slice of
// the buffers it allocated.
func Allocator(limit int) (func() (frame.Buffer, error), *[]*Buffer) {
	var allocated []*Buffer
	return func() (frame.Buffer, error) {
		if limit >= 0 && len(allocated) >= limit {
			return nil, errAlloc
		}
		b := New()
		allocated = append(allocated, b)
		return b, nil
	}, &allocated
}
