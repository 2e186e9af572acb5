package picture

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/drmprime/types"
)

var testFormat = types.VideoFormat{
	Chroma: types.PixelFormatDRMPrimeNV12,
	Width:  1920,
	Height: 1080,
}

type countingContext struct {
	src       *Picture
	destroyed *int
	copyErr   error
}

func (c *countingContext) Copy() (Context, error) {
	if c.copyErr != nil {
		return nil, c.copyErr
	}
	return &countingContext{src: c.src.Hold(), destroyed: c.destroyed}, nil
}

func (c *countingContext) Destroy() {
	*c.destroyed++
	if c.src != nil {
		c.src.Release()
	}
}

func TestPictureRelease(t *testing.T) {
	destroyed := 0
	pic := New(testFormat, nil, func(*Picture) { destroyed++ })
	require.EqualValues(t, 1, pic.Refs())

	pic.Hold()
	pic.Release()
	require.Zero(t, destroyed)

	pic.Release()
	require.Equal(t, 1, destroyed)

	require.Panics(t, pic.Release)
}

func TestPoolRecycleDestroysContext(t *testing.T) {
	ctx := context.Background()
	freed := 0
	pics := []*Picture{
		New(testFormat, nil, func(*Picture) { freed++ }),
		New(testFormat, nil, func(*Picture) { freed++ }),
	}
	p := NewPool(ctx, pics)
	require.Equal(t, 2, p.Size())

	pic := p.Get(ctx)
	require.NotNil(t, pic)
	require.EqualValues(t, 1, pic.Refs())

	ctxDestroyed := 0
	pic.SetContext(&countingContext{destroyed: &ctxDestroyed})
	pic.Release()
	require.Equal(t, 1, ctxDestroyed)
	require.Nil(t, pic.Context())
	require.Equal(t, 2, p.IdleCount(ctx))
	require.Zero(t, freed)

	p.Close(ctx)
	require.Equal(t, 2, freed)
	require.Nil(t, p.Get(ctx))
}

func TestCopyContext(t *testing.T) {
	ctx := context.Background()
	p := NewPool(ctx, []*Picture{New(testFormat, nil, nil)})
	defer p.Close(ctx)

	src := p.Get(ctx)
	destroyed := 0
	src.SetContext(&countingContext{destroyed: &destroyed})

	// the copy holds src, so src stays out of the pool
	dst := New(testFormat, nil, nil)
	require.NoError(t, CopyContext(dst, src))
	require.EqualValues(t, 2, src.Refs())
	require.ErrorIs(t, CopyContext(dst, src), ErrContextAttached)

	src.Release()
	require.Zero(t, p.IdleCount(ctx))
	require.NotNil(t, src.Context())

	dst.Release()
	require.Equal(t, 2, destroyed)
	require.Equal(t, 1, p.IdleCount(ctx))
	require.Nil(t, src.Context())
}

func TestCopyContextFailure(t *testing.T) {
	src := New(testFormat, nil, nil)
	destroyed := 0
	copyErr := errors.New("no memory")
	src.SetContext(&countingContext{destroyed: &destroyed, copyErr: copyErr})

	dst := New(testFormat, nil, nil)
	require.ErrorIs(t, CopyContext(dst, src), copyErr)
	require.Nil(t, dst.Context())
	require.NoError(t, CopyContext(src, dst))
}
