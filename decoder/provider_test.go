package decoder

import (
	"context"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/drmprime/drm"
	"github.com/xaionaro-go/drmprime/esdrm"
	"github.com/xaionaro-go/drmprime/frame/frametest"
	"github.com/xaionaro-go/drmprime/picture"
	"github.com/xaionaro-go/drmprime/types"
)

var testFormat = types.VideoFormat{
	Chroma: types.PixelFormatDRMPrimeNV12,
	Width:  1920,
	Height: 1080,
}

func TestCreateDeclines(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, pixFmt := range []astiav.PixelFormat{
		astiav.PixelFormatYuv420P,
		astiav.PixelFormatNv12,
		astiav.PixelFormatVaapi,
	} {
		p, err := Create(ctx, pixFmt)
		require.ErrorIs(t, err, types.ErrNotHandled, pixFmt)
		require.True(t, types.IsDecline(err))
		require.Nil(t, p)
	}

	p, err := Create(ctx, astiav.PixelFormatDrmPrime)
	require.NoError(t, err)
	require.Equal(t, "esdrm", p.String())
	require.NoError(t, p.Close(ctx))
}

func TestProviderGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alloc, allocated := frametest.Allocator(-1)
	pool, err := esdrm.NewPool(ctx, testFormat, 2, alloc)
	require.NoError(t, err)
	defer pool.Close(ctx)

	p, err := Create(ctx, astiav.PixelFormatDrmPrime)
	require.NoError(t, err)

	pic := pool.Get(ctx)
	buf, err := p.Get(ctx, pic)
	require.NoError(t, err)
	require.NotNil(t, pic.Context())

	// the decoder writes into the very buffer owned by the pool slot
	fake := buf.(*frametest.Buffer)
	require.Contains(t, *allocated, fake)
	fake.Fill(&drm.FrameDescriptor{})
	require.Same(t, fake, esdrm.GetData(ctx, pic))

	require.Panics(t, func() { _, _ = p.Get(ctx, pic) })
	pic.Release()
	require.Equal(t, 1, fake.UnrefCount)

	// not a libav frame
	pic = pool.Get(ctx)
	_, err = p.GetAVFrame(ctx, pic)
	require.ErrorIs(t, err, types.ErrNotHandled)
	pic.Release()
}

func TestProviderGetDeclinesSoftwareChroma(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alloc, _ := frametest.Allocator(-1)
	pool, err := esdrm.NewPool(ctx, types.VideoFormat{Chroma: types.PixelFormatNV12}, 1, alloc)
	require.NoError(t, err)
	defer pool.Close(ctx)

	p, err := Create(ctx, astiav.PixelFormatDrmPrime)
	require.NoError(t, err)

	pic := pool.Get(ctx)
	defer pic.Release()
	_, err = p.Get(ctx, pic)
	require.ErrorIs(t, err, types.ErrNotHandled)
	require.Nil(t, pic.Context())
}

func TestProviderGetForeignPicture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	p, err := Create(ctx, astiav.PixelFormatDrmPrime)
	require.NoError(t, err)

	require.Panics(t, func() { _, _ = p.Get(ctx, picture.New(testFormat, nil, nil)) })
	require.Panics(t, func() { _, _ = p.Get(ctx, nil) })
}

func TestNewDeclinesSoftwareDevice(t *testing.T) {
	t.Parallel()

	params := astiav.AllocCodecParameters()
	defer params.Free()
	params.SetCodecID(astiav.CodecIDH264)

	cfg := DefaultConfig()
	cfg.HardwareDeviceType = types.HardwareDeviceTypeNone
	d, err := New(context.Background(), params, cfg)
	require.ErrorIs(t, err, types.ErrNotHandled)
	require.Nil(t, d)
}
