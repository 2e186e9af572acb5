// esdrm.go implements the DRM PRIME picture pool and context attachment.

// Package esdrm bridges pooled pictures to the raw decoder buffers holding
// DRM PRIME frames, so the decoder, the picture reference counting and the
// GPU importer share one buffer without copying it.
package esdrm

import (
	"context"
	"errors"
	"fmt"

	"github.com/xaionaro-go/drmprime/frame"
	"github.com/xaionaro-go/drmprime/internal"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
)

// AllocFunc allocates an empty raw buffer for a pool slot.
type AllocFunc func() (frame.Buffer, error)

// NewPool allocates count pictures, each backed by an empty raw buffer
// (allocated with alloc, frame.Alloc if nil) and an unattached context.
// Either all the pictures are allocated or none: on failure the already
// allocated ones are released before returning.
func NewPool(
	ctx context.Context,
	format types.VideoFormat,
	count uint,
	alloc AllocFunc,
) (_ret *picture.Pool, _err error) {
	logger.Tracef(ctx, "NewPool(%s, %d)", format, count)
	defer func() { logger.Tracef(ctx, "/NewPool(%s, %d): %v", format, count, _err) }()

	if count == 0 {
		return nil, fmt.Errorf("requested an empty pool")
	}
	if alloc == nil {
		alloc = frame.Alloc
	}

	pics := make([]*picture.Picture, 0, count)
	for i := uint(0); i < count; i++ {
		pic, err := newSlotPicture(format, alloc)
		if err != nil {
			logger.Debugf(ctx, "unable to allocate picture #%d, releasing the %d already allocated", i, len(pics))
			for _, pic := range pics {
				pic.Release()
			}
			return nil, fmt.Errorf("unable to allocate picture #%d of %d: %w", i, count, err)
		}
		pics = append(pics, pic)
	}

	return picture.NewPool(ctx, pics), nil
}

func newSlotPicture(
	format types.VideoFormat,
	alloc AllocFunc,
) (*picture.Picture, error) {
	buffer, err := alloc()
	switch {
	case err != nil && !errors.Is(err, types.ErrNoMem):
		return nil, fmt.Errorf("%w: %w", types.ErrNoMem, err)
	case err != nil:
		return nil, err
	case buffer == nil:
		return nil, types.ErrNoMem
	}

	s := &slot{ctx: slotContext{buffer: buffer}}
	return picture.New(format, s, destroySlotPicture), nil
}

func destroySlotPicture(pic *picture.Picture) {
	s := pic.Sys.(*slot)
	if s.ctx.buffer != nil {
		s.ctx.buffer.Free()
		s.ctx.buffer = nil
	}
	pic.Sys = nil
}

// AttachContext attaches the slot context to the picture, which must come
// from a pool created by NewPool and must not have a context yet.
func AttachContext(
	ctx context.Context,
	pic *picture.Picture,
) {
	internal.Assert(ctx, pic != nil, "picture is nil")
	s, _ := pic.Sys.(*slot)
	internal.Assert(ctx, s != nil, "picture has no esdrm slot: ", pic)
	internal.Assert(ctx, pic.Context() == nil, "picture already has a context attached: ", pic)

	s.ctx.pic = pic
	pic.SetContext(&s.ctx)
}

// GetData returns the raw buffer of a picture with an attached context.
// The ownership stays with the picture.
func GetData(
	ctx context.Context,
	pic *picture.Picture,
) frame.Buffer {
	internal.Assert(ctx, pic != nil, "picture is nil")
	internal.Assert(ctx, pic.Context() != nil, "picture has no context attached: ", pic)

	buffer := BufferFromContext(pic.Context())
	internal.Assert(ctx, buffer != nil, "picture context is not an esdrm one: ", pic)
	return buffer
}
