// provider.go implements the decoder-side buffer provider handing pooled
// DRM PRIME pictures to the decoder.

// Package decoder connects a libav hardware decoder to the esdrm picture
// pool: the decoder receives its DRM PRIME frames straight into the raw
// buffers of pooled pictures.
package decoder

import (
	"context"
	"fmt"

	"github.com/asticode/go-astiav"
	"github.com/xaionaro-go/drmprime/esdrm"
	"github.com/xaionaro-go/drmprime/frame"
	"github.com/xaionaro-go/drmprime/logger"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
)

// Provider hands the raw buffers of pooled pictures to the decoder. It
// holds no decoding logic.
type Provider struct {
	Description string
}

// Create returns a provider if the decoder output format is the one the
// provider backs with buffers; otherwise it declines with
// types.ErrNotHandled, so the caller may try another provider.
func Create(
	ctx context.Context,
	pixFmt astiav.PixelFormat,
) (*Provider, error) {
	if pixFmt != astiav.PixelFormatDrmPrime {
		logger.Debugf(ctx, "declining pixel format %s", pixFmt)
		return nil, fmt.Errorf("pixel format %s: %w", pixFmt, types.ErrNotHandled)
	}
	return &Provider{
		Description: "esdrm",
	}, nil
}

func (p *Provider) String() string {
	return p.Description
}

// Get attaches the context of the pooled picture and returns its raw
// buffer for the decoder to write the decoded frame into. The picture
// keeps the ownership of the buffer.
func (p *Provider) Get(
	ctx context.Context,
	pic *picture.Picture,
) (frame.Buffer, error) {
	if pic != nil && !pic.Format.Chroma.IsDRMPrime() {
		return nil, fmt.Errorf("picture chroma %s: %w", pic.Format.Chroma, types.ErrNotHandled)
	}
	esdrm.AttachContext(ctx, pic)
	return esdrm.GetData(ctx, pic), nil
}

// GetAVFrame is Get for libav decoders: it returns the frame to pass to
// avcodec_receive_frame.
func (p *Provider) GetAVFrame(
	ctx context.Context,
	pic *picture.Picture,
) (*astiav.Frame, error) {
	buffer, err := p.Get(ctx, pic)
	if err != nil {
		return nil, err
	}
	f, ok := buffer.(*frame.AVFrame)
	if !ok {
		return nil, fmt.Errorf("the raw buffer is %T, not a libav frame: %w", buffer, types.ErrNotHandled)
	}
	return f.Frame, nil
}

func (p *Provider) Close(ctx context.Context) error {
	logger.Debugf(ctx, "closing the %s buffer provider", p)
	return nil
}
