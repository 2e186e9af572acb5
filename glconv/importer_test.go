package glconv

import (
	"context"
	"math"
	"testing"

	"github.com/asticode/go-astiav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/drmprime/decoder"
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

func nv12Descriptor() *drm.FrameDescriptor {
	return &drm.FrameDescriptor{
		Objects: []drm.Object{{FD: 7, Size: 1920 * 1080 * 3 / 2}},
		Layers: []drm.Layer{{
			Format: drm.FormatNV12,
			Planes: []drm.Plane{
				{Offset: 0, Pitch: 1920},
				{Offset: 2073600, Pitch: 1920},
			},
		}},
	}
}

type testEnv struct {
	platform  *fakePlatform
	importer  *Importer
	pool      *picture.Pool
	allocated *[]*frametest.Buffer
}

func newTestEnv(t *testing.T, format types.VideoFormat) *testEnv {
	ctx := context.Background()
	platform := newFakePlatform()
	imp, err := Open(ctx, platform, format, DefaultConfig())
	require.NoError(t, err)

	alloc, allocated := frametest.Allocator(-1)
	imp.AllocFunc = alloc
	pool, err := imp.GetPool(ctx, 3)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close(ctx) })

	return &testEnv{
		platform:  platform,
		importer:  imp,
		pool:      pool,
		allocated: allocated,
	}
}

// decode emulates the decoder filling a pooled picture.
func (env *testEnv) decode(t *testing.T, desc *drm.FrameDescriptor) *picture.Picture {
	ctx := context.Background()
	provider, err := decoder.Create(ctx, astiav.PixelFormatDrmPrime)
	require.NoError(t, err)

	pic := env.pool.Get(ctx)
	require.NotNil(t, pic)
	buffer, err := provider.Get(ctx, pic)
	require.NoError(t, err)
	buffer.(*frametest.Buffer).Fill(desc)
	return pic
}

func TestZeroCopyNV12(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	pic := env.decode(t, nv12Descriptor())
	defer pic.Release()

	widths, heights := PlaneSizes(testFormat)
	textures := []Texture{1, 2}
	require.NoError(t, env.importer.UpdateTextures(ctx, pic, textures, widths, heights))

	p := env.platform
	require.Len(t, p.created, 2)
	require.Len(t, p.destroyed, 2)
	require.Empty(t, p.live)
	require.Len(t, p.bindings, 2)
	for i, b := range p.bindings {
		assert.Equal(t, TextureTarget2D, b.Target)
		assert.Equal(t, textures[i], b.Texture)
	}

	expected := []ImageAttributes{
		PlaneImageAttributes(1920, 1080, drm.FormatR8, 7, 0, 1920, drm.ModifierLinear),
		PlaneImageAttributes(960, 540, drm.FormatGR88, 7, 2073600, 1920, drm.ModifierLinear),
	}
	require.Equal(t, expected, p.created)

	require.Equal(t, types.ImportStatistics{
		Imported: types.StatisticsItem{Count: 1, Bytes: 1920 * 1080 * 3 / 2},
		Planes:   types.StatisticsItem{Count: 2},
	}, env.importer.GetStats())
}

func TestUpdateTexturesPlaneCountRejection(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	desc := nv12Descriptor()
	desc.Layers[0].Planes = desc.Layers[0].Planes[:1]
	pic := env.decode(t, desc)
	defer pic.Release()

	err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, []int32{1920, 960}, []int32{1080, 540})
	require.ErrorIs(t, err, types.ErrUnsupported)
	require.Empty(t, env.platform.created)
	require.Empty(t, env.platform.bindings)
	require.Equal(t, uint64(1), env.importer.GetStats().Declined.Count)
}

func TestUpdateTexturesPartialImportCleanup(t *testing.T) {
	ctx := context.Background()
	format := types.VideoFormat{Chroma: types.PixelFormatDRMPrimeYUV420P, Width: 1920, Height: 1080}

	for failPlane := 0; failPlane < 3; failPlane++ {
		env := newTestEnv(t, format)
		env.platform.failPlane = failPlane

		pic := env.decode(t, &drm.FrameDescriptor{
			Objects: []drm.Object{{FD: 9}},
			Layers: []drm.Layer{{
				Format: drm.FormatYUV420,
				Planes: []drm.Plane{
					{Offset: 0, Pitch: 1920},
					{Offset: 2073600, Pitch: 960},
					{Offset: 2592000, Pitch: 960},
				},
			}},
		})

		widths, heights := PlaneSizes(format)
		err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2, 3}, widths, heights)
		require.ErrorIs(t, err, types.ErrImportFailed)
		var planeErr types.ErrPlaneImport
		require.ErrorAs(t, err, &planeErr)
		require.Equal(t, failPlane, planeErr.Plane)

		require.Len(t, env.platform.created, failPlane)
		require.Len(t, env.platform.destroyed, failPlane)
		require.Empty(t, env.platform.live)
		require.Empty(t, env.platform.bindings)
		require.Equal(t, uint64(1), env.importer.GetStats().Failed.Count)
		require.Zero(t, env.importer.GetStats().Imported.Count)
		pic.Release()
	}
}

func TestUpdateTexturesFormatMapping(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		chroma       types.PixelFormat
		fourcc       drm.FourCC
		planeFormats []drm.FourCC
	}{
		{types.PixelFormatDRMPrimeNV12, drm.FormatNV12, []drm.FourCC{drm.FormatR8, drm.FormatGR88}},
		{types.PixelFormatDRMPrimeNV21, drm.FormatNV21, []drm.FourCC{drm.FormatR8, drm.FormatGR88}},
		{types.PixelFormatDRMPrimeYUV420P, drm.FormatYUV420, []drm.FourCC{drm.FormatR8, drm.FormatR8, drm.FormatR8}},
		{types.PixelFormatDRMPrimeP010, drm.FormatP010, []drm.FourCC{drm.FormatR16, drm.FormatGR1616}},
	} {
		tc := tc
		t.Run(tc.chroma.String(), func(t *testing.T) {
			format := types.VideoFormat{Chroma: tc.chroma, Width: 64, Height: 32}
			env := newTestEnv(t, format)

			fourcc, ok := BufferFormat(tc.chroma)
			require.True(t, ok)
			require.Equal(t, tc.fourcc, fourcc)

			planes := make([]drm.Plane, len(tc.planeFormats))
			textures := make([]Texture, len(tc.planeFormats))
			for i := range planes {
				planes[i] = drm.Plane{Offset: int64(i) * 4096, Pitch: 128}
				textures[i] = Texture(10 + i)
			}
			desc := &drm.FrameDescriptor{
				Objects: []drm.Object{{FD: 3}},
				Layers:  []drm.Layer{{Format: tc.fourcc, Planes: planes}},
			}

			widths, heights := PlaneSizes(format)
			for round := 0; round < 2; round++ {
				pic := env.decode(t, desc)
				require.NoError(t, env.importer.UpdateTextures(ctx, pic, textures, widths, heights))
				pic.Release()
			}

			p := env.platform
			require.Len(t, p.created, 2*len(tc.planeFormats))
			for i, attrs := range p.created {
				v, ok := attrs.Get(AttributeLinuxDRMFourCC)
				require.True(t, ok)
				require.Equal(t, int32(tc.planeFormats[i%len(tc.planeFormats)]), v)
			}
			require.Empty(t, p.live)
			require.Equal(t, tc.chroma.SamplingFormat(), env.importer.SamplingChroma())
		})
	}
}

func TestUpdateTexturesNoBuffer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	pic := env.pool.Get(ctx)
	defer pic.Release()

	err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, []int32{1, 1}, []int32{1, 1})
	require.ErrorIs(t, err, types.ErrNoBuffer)
}

func TestUpdateTexturesNoDescriptor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	pic := env.decode(t, nil)
	defer pic.Release()

	err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, []int32{1, 1}, []int32{1, 1})
	require.ErrorIs(t, err, types.ErrNoDescriptor)
	require.Empty(t, env.platform.created)
}

func TestUpdateTexturesShortSlices(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	pic := env.decode(t, nv12Descriptor())
	defer pic.Release()

	err := env.importer.UpdateTextures(ctx, pic, []Texture{1}, []int32{1920, 960}, []int32{1080, 540})
	require.ErrorIs(t, err, types.ErrUnsupported)
	require.Empty(t, env.platform.created)
}

func TestUpdateTexturesBadObjectIndex(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	desc := nv12Descriptor()
	desc.Layers[0].Planes[1].ObjectIndex = 1
	pic := env.decode(t, desc)
	defer pic.Release()

	widths, heights := PlaneSizes(testFormat)
	err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, widths, heights)
	require.ErrorIs(t, err, types.ErrImportFailed)
	require.Empty(t, env.platform.created)
}

func TestUpdateTexturesNoObjects(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	desc := nv12Descriptor()
	desc.Objects = nil
	pic := env.decode(t, desc)
	defer pic.Release()

	widths, heights := PlaneSizes(testFormat)
	err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, widths, heights)
	require.ErrorIs(t, err, types.ErrImportFailed)
	require.Empty(t, env.platform.created)
	require.Equal(t, uint64(1), env.importer.GetStats().Failed.Count)
}

func TestUpdateTexturesAttributeOverflow(t *testing.T) {
	ctx := context.Background()
	for name, mutate := range map[string]func(desc *drm.FrameDescriptor){
		"pitch":           func(desc *drm.FrameDescriptor) { desc.Layers[0].Planes[0].Pitch = 1 << 31 },
		"offset":          func(desc *drm.FrameDescriptor) { desc.Layers[0].Planes[1].Offset = math.MaxInt32 + 1 },
		"negative offset": func(desc *drm.FrameDescriptor) { desc.Layers[0].Planes[1].Offset = -1 },
	} {
		mutate := mutate
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, testFormat)
			desc := nv12Descriptor()
			mutate(desc)
			pic := env.decode(t, desc)
			defer pic.Release()

			widths, heights := PlaneSizes(testFormat)
			err := env.importer.UpdateTextures(ctx, pic, []Texture{1, 2}, widths, heights)
			require.ErrorIs(t, err, types.ErrUnsupported)
			require.True(t, types.IsDecline(err))
			require.Empty(t, env.platform.created)
			require.Empty(t, env.platform.bindings)
		})
	}
}

func TestUpdateTexturesThroughCopy(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)

	pic := env.decode(t, nv12Descriptor())
	downstream := picture.New(testFormat, nil, nil)
	require.NoError(t, picture.CopyContext(downstream, pic))
	pic.Release()

	widths, heights := PlaneSizes(testFormat)
	require.NoError(t, env.importer.UpdateTextures(ctx, downstream, []Texture{1, 2}, widths, heights))
	require.Len(t, env.platform.bindings, 2)

	downstream.Release()
	require.Equal(t, 3, env.pool.IdleCount(ctx))
}

func TestOpenDeclines(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for _, chroma := range []types.PixelFormat{
		types.UndefinedPixelFormat,
		types.PixelFormatNV12,
		types.PixelFormatI420,
	} {
		_, err := Open(ctx, newFakePlatform(), types.VideoFormat{Chroma: chroma, Width: 16, Height: 16}, DefaultConfig())
		require.ErrorIs(t, err, types.ErrUnsupported, chroma)
		require.True(t, types.IsDecline(err))
	}

	for name, mutate := range map[string]func(p *fakePlatform){
		"no image KHR":           func(p *fakePlatform) { p.noImageKHR = true },
		"no dma-buf import":      func(p *fakePlatform) { p.eglExts = "EGL_KHR_image_base EGL_EXT_image_dma_buf_import_modifiers" },
		"no OES_EGL_image":       func(p *fakePlatform) { p.glExts = "GL_OES_EGL_image_external GL_OES_EGL_image_externalx" },
		"no image target 2D":     func(p *fakePlatform) { p.noTarget2D = true },
		"empty extension string": func(p *fakePlatform) { p.eglExts, p.glExts = "", "" },
	} {
		p := newFakePlatform()
		mutate(p)
		_, err := Open(ctx, p, testFormat, DefaultConfig())
		require.ErrorIs(t, err, types.ErrUnsupported, name)
	}
}

func TestOpenExternalOES(t *testing.T) {
	ctx := context.Background()
	p := newFakePlatform()
	p.glExts = "GL_OES_EGL_image_external"

	_, err := Open(ctx, p, testFormat, DefaultConfig())
	require.ErrorIs(t, err, types.ErrUnsupported)
	require.Contains(t, err.Error(), ExtensionOESEGLImage)
	require.NotContains(t, err.Error(), ExtensionOESEGLImageExternal)

	imp, err := Open(ctx, p, testFormat, Config{TextureTarget: TextureTargetExternalOES})
	require.NoError(t, err)
	require.True(t, imp.Capabilities.OESEGLImage)
	require.True(t, imp.Capabilities.DMABufImportModifiers)
	require.NoError(t, imp.Close(ctx))

	p.glExts = "GL_OES_EGL_image"
	_, err = Open(ctx, p, testFormat, Config{TextureTarget: TextureTargetExternalOES})
	require.ErrorIs(t, err, types.ErrUnsupported)
	require.Contains(t, err.Error(), ExtensionOESEGLImageExternal)
}

func TestGetPoolUsesImporterFormat(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, testFormat)
	require.Equal(t, 3, env.pool.Size())
	require.Len(t, *env.allocated, 3)

	pic := env.pool.Get(ctx)
	defer pic.Release()
	require.Equal(t, testFormat, pic.Format)
	require.Nil(t, esdrm.BufferFromContext(pic.Context()))
}
