// context.go implements the picture contexts bridging a pooled picture to
// its raw decoder buffer.

package esdrm

import (
	"fmt"

	"github.com/xaionaro-go/drmprime/frame"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
)

// slot is the backing store (picture.Sys) of a pooled picture.
type slot struct {
	ctx slotContext
}

// slotContext is the context embedded into the slot. It is attached to the
// pooled picture itself and lives as long as the slot; destroying it only
// unreferences the decoded contents, so the slot can be decoded into again.
type slotContext struct {
	pic    *picture.Picture
	buffer frame.Buffer
}

var _ picture.Context = (*slotContext)(nil)

func (c *slotContext) Copy() (picture.Context, error) {
	return copyContext(c.pic, c.buffer)
}

func (c *slotContext) Destroy() {
	if c.buffer != nil {
		c.buffer.Unref()
	}
	c.pic = nil
}

// pictureContext is a copy handed to a downstream consumer. It keeps the
// pooled picture (and so the raw buffer) alive with a hold of its own.
type pictureContext struct {
	pic    *picture.Picture
	buffer frame.Buffer
}

var _ picture.Context = (*pictureContext)(nil)

// allocPictureContext returns nil on allocation failure.
var allocPictureContext = func() *pictureContext {
	return &pictureContext{}
}

func copyContext(
	pic *picture.Picture,
	buffer frame.Buffer,
) (picture.Context, error) {
	c, err := newPictureContext(pic, buffer)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newPictureContext(
	pic *picture.Picture,
	buffer frame.Buffer,
) (*pictureContext, error) {
	if pic == nil {
		return nil, fmt.Errorf("the context is not attached to a picture")
	}
	c := allocPictureContext()
	if c == nil {
		return nil, fmt.Errorf("unable to allocate a picture context: %w", types.ErrNoMem)
	}
	c.buffer = buffer
	c.pic = pic.Hold()
	return c, nil
}

func (c *pictureContext) Copy() (picture.Context, error) {
	return copyContext(c.pic, c.buffer)
}

func (c *pictureContext) Destroy() {
	pic := c.pic
	c.pic = nil
	c.buffer = nil
	if pic != nil {
		pic.Release()
	}
}

// BufferFromContext returns the raw buffer a context created by this
// package refers to, or nil for any other context.
func BufferFromContext(c picture.Context) frame.Buffer {
	switch c := c.(type) {
	case *slotContext:
		return c.buffer
	case *pictureContext:
		return c.buffer
	}
	return nil
}
